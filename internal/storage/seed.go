package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AgentTarik/pizzeria-api/internal/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SeedRepo is what ApplySeed writes into.
type SeedRepo interface {
	OrderRepo
	SettingsRepo
	HoursRepo
	StaffRepo
}

// ApplySeed loads settings, schedule, closures, staff accounts and demo orders from the
// config file. Existing staff accounts and orders are left untouched.
func ApplySeed(ctx context.Context, repo SeedRepo, seed config.Seed) error {
	if seed.StoreName != "" || seed.PixKey != "" || seed.PixName != "" {
		err := repo.UpdateSettings(ctx, Settings{
			Name:    seed.StoreName,
			PixKey:  seed.PixKey,
			PixName: seed.PixName,
			IsOpen:  seed.IsOpen == nil || *seed.IsOpen,
		})
		if err != nil {
			return err
		}
	}
	for _, e := range seed.Schedule {
		if err := repo.UpsertHour(ctx, e); err != nil {
			return err
		}
	}
	for _, c := range seed.Closures {
		if err := repo.AddClosure(ctx, c); err != nil {
			return err
		}
	}
	for _, s := range seed.Staff {
		err := repo.CreateStaff(ctx, StaffUser{
			ID:           uuid.New(),
			Name:         s.Name,
			Email:        strings.ToLower(strings.TrimSpace(s.Email)),
			Role:         s.Role,
			PasswordHash: s.PasswordHash,
		})
		if err != nil && !errors.Is(err, ErrStaffAlreadyExists) {
			return err
		}
	}
	for _, o := range seed.Orders {
		id, err := uuid.Parse(o.ID)
		if err != nil {
			return fmt.Errorf("seed order %q: %w", o.ID, err)
		}
		total, err := decimal.NewFromString(o.Total)
		if err != nil {
			return fmt.Errorf("seed order %s total: %w", o.ID, err)
		}
		err = repo.CreateOrder(ctx, Order{ID: id, CustomerName: o.CustomerName, Total: total})
		if err != nil && !errors.Is(err, ErrOrderAlreadyExists) {
			return err
		}
	}
	return nil
}
