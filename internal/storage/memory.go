package storage

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/AgentTarik/pizzeria-api/internal/hours"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderAlreadyExists = errors.New("order already exists")
	ErrSettingsNotFound   = errors.New("store settings not found")
	ErrClosureNotFound    = errors.New("closure not found")
	ErrStaffNotFound      = errors.New("staff user not found")
	ErrStaffAlreadyExists = errors.New("staff user already exists")
)

type Order struct {
	ID               uuid.UUID
	CustomerName     string
	Total            decimal.Decimal
	PixTransactionID string
	CreatedAt        time.Time
}

// Settings is the store configuration row.
type Settings struct {
	Name    string
	PixKey  string
	PixName string
	IsOpen  bool
}

type StaffUser struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Role         string
	PasswordHash string
}

type OrderRepo interface {
	CreateOrder(ctx context.Context, o Order) error
	GetOrder(ctx context.Context, id uuid.UUID) (Order, error)
	SetPixTransactionID(ctx context.Context, id uuid.UUID, txID string) error
}

type SettingsRepo interface {
	GetSettings(ctx context.Context) (Settings, error)
	UpdateSettings(ctx context.Context, s Settings) error
}

type HoursRepo interface {
	ListHours(ctx context.Context) (hours.Schedule, error)
	UpsertHour(ctx context.Context, e hours.Entry) error
	ListClosures(ctx context.Context) ([]hours.Closure, error)
	AddClosure(ctx context.Context, c hours.Closure) error
	RemoveClosure(ctx context.Context, date string) error
}

type StaffRepo interface {
	CreateStaff(ctx context.Context, u StaffUser) error
	GetStaffByEmail(ctx context.Context, email string) (StaffUser, error)
}

// MemoryStore implements every repo in process.
type MemoryStore struct {
	mu       sync.RWMutex
	orders   map[uuid.UUID]Order
	settings *Settings
	hours    map[int]hours.Entry
	closures map[string]hours.Closure
	staff    map[string]StaffUser
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		orders:   make(map[uuid.UUID]Order),
		hours:    make(map[int]hours.Entry),
		closures: make(map[string]hours.Closure),
		staff:    make(map[string]StaffUser),
	}
}

// Orders

func (s *MemoryStore) CreateOrder(_ context.Context, o Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[o.ID]; ok {
		return ErrOrderAlreadyExists
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	s.orders[o.ID] = o
	return nil
}

func (s *MemoryStore) GetOrder(_ context.Context, id uuid.UUID) (Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return Order{}, ErrOrderNotFound
	}
	return o, nil
}

func (s *MemoryStore) SetPixTransactionID(_ context.Context, id uuid.UUID, txID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return ErrOrderNotFound
	}
	o.PixTransactionID = txID
	s.orders[id] = o
	return nil
}

// Settings

func (s *MemoryStore) GetSettings(_ context.Context) (Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.settings == nil {
		return Settings{}, ErrSettingsNotFound
	}
	return *s.settings, nil
}

func (s *MemoryStore) UpdateSettings(_ context.Context, st Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = &st
	return nil
}

// Operating hours

func (s *MemoryStore) ListHours(_ context.Context) (hours.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(hours.Schedule, 0, len(s.hours))
	for _, e := range s.hours {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

func (s *MemoryStore) UpsertHour(_ context.Context, e hours.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hours[e.Day] = e
	return nil
}

func (s *MemoryStore) ListClosures(_ context.Context) ([]hours.Closure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]hours.Closure, 0, len(s.closures))
	for _, c := range s.closures {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (s *MemoryStore) AddClosure(_ context.Context, c hours.Closure) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closures[c.Date] = c
	return nil
}

func (s *MemoryStore) RemoveClosure(_ context.Context, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.closures[date]; !ok {
		return ErrClosureNotFound
	}
	delete(s.closures, date)
	return nil
}

// Staff

func (s *MemoryStore) CreateStaff(_ context.Context, u StaffUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.staff[u.Email]; ok {
		return ErrStaffAlreadyExists
	}
	s.staff[u.Email] = u
	return nil
}

func (s *MemoryStore) GetStaffByEmail(_ context.Context, email string) (StaffUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.staff[email]
	if !ok {
		return StaffUser{}, ErrStaffNotFound
	}
	return u, nil
}
