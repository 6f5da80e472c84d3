package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AgentTarik/pizzeria-api/internal/hours"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresStore struct {
	DB *sql.DB
}

func NewPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(15)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(1 * time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &PostgresStore{DB: db}, nil
}

// Migrate creates the tables the service reads and writes.
func (p *PostgresStore) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			customer_name TEXT NOT NULL DEFAULT '',
			total NUMERIC(12,2) NOT NULL,
			pix_transaction_id TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS pizzeria_settings (
			id SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
			name TEXT NOT NULL DEFAULT '',
			pix_key TEXT NOT NULL DEFAULT '',
			pix_name TEXT NOT NULL DEFAULT '',
			is_open BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS operating_hours (
			day_of_week SMALLINT PRIMARY KEY CHECK (day_of_week BETWEEN 0 AND 6),
			open_time TEXT NOT NULL,
			close_time TEXT NOT NULL,
			is_open BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS special_closures (
			closure_date DATE PRIMARY KEY,
			reason TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS staff_users (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			role TEXT NOT NULL,
			password_hash TEXT NOT NULL
		)`,
	}
	for _, s := range stmts {
		if _, err := p.DB.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Orders Repo

func (p *PostgresStore) CreateOrder(ctx context.Context, o Order) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	_, err := p.DB.ExecContext(ctx,
		`INSERT INTO orders (id, customer_name, total, created_at) VALUES ($1, $2, $3, $4)`,
		o.ID, o.CustomerName, o.Total, o.CreatedAt)
	if isUniqueViolation(err) {
		return ErrOrderAlreadyExists
	}
	return err
}

func (p *PostgresStore) GetOrder(ctx context.Context, id uuid.UUID) (Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var o Order
	var txID sql.NullString
	err := p.DB.QueryRowContext(ctx,
		`SELECT id, customer_name, total, pix_transaction_id, created_at FROM orders WHERE id = $1`, id).
		Scan(&o.ID, &o.CustomerName, &o.Total, &txID, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Order{}, ErrOrderNotFound
		}
		return Order{}, err
	}
	o.PixTransactionID = txID.String
	return o, nil
}

func (p *PostgresStore) SetPixTransactionID(ctx context.Context, id uuid.UUID, txID string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := p.DB.ExecContext(ctx,
		`UPDATE orders SET pix_transaction_id = $2 WHERE id = $1`, id, txID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// Settings Repo

func (p *PostgresStore) GetSettings(ctx context.Context) (Settings, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var s Settings
	err := p.DB.QueryRowContext(ctx,
		`SELECT name, pix_key, pix_name, is_open FROM pizzeria_settings LIMIT 1`).
		Scan(&s.Name, &s.PixKey, &s.PixName, &s.IsOpen)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Settings{}, ErrSettingsNotFound
		}
		return Settings{}, err
	}
	return s, nil
}

func (p *PostgresStore) UpdateSettings(ctx context.Context, s Settings) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := p.DB.ExecContext(ctx, `
		INSERT INTO pizzeria_settings (id, name, pix_key, pix_name, is_open)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    pix_key = EXCLUDED.pix_key,
		    pix_name = EXCLUDED.pix_name,
		    is_open = EXCLUDED.is_open
	`, s.Name, s.PixKey, s.PixName, s.IsOpen)
	return err
}

// Hours Repo

func (p *PostgresStore) ListHours(ctx context.Context) (hours.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := p.DB.QueryContext(ctx, `
		SELECT day_of_week, open_time, close_time, is_open
		FROM operating_hours
		ORDER BY day_of_week`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out hours.Schedule
	for rows.Next() {
		var e hours.Entry
		if err := rows.Scan(&e.Day, &e.Open, &e.Close, &e.Enabled); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (p *PostgresStore) UpsertHour(ctx context.Context, e hours.Entry) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := p.DB.ExecContext(ctx, `
		INSERT INTO operating_hours (day_of_week, open_time, close_time, is_open)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (day_of_week) DO UPDATE
		SET open_time = EXCLUDED.open_time,
		    close_time = EXCLUDED.close_time,
		    is_open = EXCLUDED.is_open
	`, e.Day, e.Open, e.Close, e.Enabled)
	return err
}

func (p *PostgresStore) ListClosures(ctx context.Context) ([]hours.Closure, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := p.DB.QueryContext(ctx,
		`SELECT closure_date, reason FROM special_closures ORDER BY closure_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []hours.Closure
	for rows.Next() {
		var d time.Time
		var reason sql.NullString
		if err := rows.Scan(&d, &reason); err != nil {
			return nil, err
		}
		out = append(out, hours.Closure{Date: d.Format("2006-01-02"), Reason: reason.String})
	}
	return out, rows.Err()
}

func (p *PostgresStore) AddClosure(ctx context.Context, c hours.Closure) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := p.DB.ExecContext(ctx, `
		INSERT INTO special_closures (closure_date, reason) VALUES ($1::date, NULLIF($2, ''))
		ON CONFLICT (closure_date) DO UPDATE SET reason = EXCLUDED.reason
	`, c.Date, c.Reason)
	return err
}

func (p *PostgresStore) RemoveClosure(ctx context.Context, date string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := p.DB.ExecContext(ctx,
		`DELETE FROM special_closures WHERE closure_date = $1::date`, date)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrClosureNotFound
	}
	return nil
}

// Staff Repo

func (p *PostgresStore) CreateStaff(ctx context.Context, u StaffUser) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := p.DB.ExecContext(ctx,
		`INSERT INTO staff_users (id, name, email, role, password_hash) VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Name, u.Email, u.Role, u.PasswordHash)
	if isUniqueViolation(err) {
		return ErrStaffAlreadyExists
	}
	return err
}

func (p *PostgresStore) GetStaffByEmail(ctx context.Context, email string) (StaffUser, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u StaffUser
	err := p.DB.QueryRowContext(ctx,
		`SELECT id, name, email, role, password_hash FROM staff_users WHERE email = $1`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return StaffUser{}, ErrStaffNotFound
		}
		return StaffUser{}, err
	}
	return u, nil
}
