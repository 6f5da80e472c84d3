// Package payment turns an order into a PIX code, preferring a dynamic
// provider charge and degrading to a static payload.
package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AgentTarik/pizzeria-api/internal/config"
	"github.com/AgentTarik/pizzeria-api/internal/efipay"
	"github.com/AgentTarik/pizzeria-api/internal/outbox"
	"github.com/AgentTarik/pizzeria-api/internal/pix"
	"github.com/AgentTarik/pizzeria-api/internal/storage"
	"github.com/AgentTarik/pizzeria-api/telemetry"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	ProviderEfiPay         = "efipay"
	ProviderStaticFallback = "static_fallback"
	ProviderStatic         = "static"

	defaultPayerName = "Cliente"
)

var ErrInvalidAmount = errors.New("order total must be positive")

// Charger requests a dynamic charge and returns its copy-and-paste code.
type Charger interface {
	RequestDynamicCharge(ctx context.Context, amount decimal.Decimal, txID, payerName string) (string, error)
}

type Result struct {
	Code      string
	TxID      string
	Amount    decimal.Decimal
	Provider  string
	MaskedKey string
}

type Service struct {
	Log      *zap.Logger
	Orders   storage.OrderRepo
	Settings storage.SettingsRepo
	Defaults config.Pix

	// Charger is nil when no provider credentials are configured.
	Charger Charger

	// Events receives one event per generated code. Optional.
	Events func(outbox.PixGenerated)
	Now    func() time.Time
}

// Generate builds the PIX code for an order. The amount always comes from the
// stored order. Provider failures fall back to the static payload; a missing
// order, a storage error or a non-positive total are returned to the caller.
func (s *Service) Generate(ctx context.Context, orderID uuid.UUID, customerName string) (Result, error) {
	log := s.Log.With(zap.String("order_id", orderID.String()))

	order, err := s.Orders.GetOrder(ctx, orderID)
	if err != nil {
		return Result{}, fmt.Errorf("load order: %w", err)
	}
	amount := order.Total
	if !amount.IsPositive() {
		return Result{}, fmt.Errorf("%w: %s", ErrInvalidAmount, amount.StringFixed(2))
	}

	charge := s.staticCharge(ctx, log, amount, pix.DeriveTxID(orderID.String()))

	payer := strings.TrimSpace(customerName)
	if payer == "" {
		payer = defaultPayerName
	}

	res := Result{
		TxID:      charge.TxID,
		Amount:    amount,
		MaskedKey: pix.MaskKey(charge.PixKey),
	}
	if s.Charger == nil {
		res.Code, res.Provider = pix.BuildStatic(charge), ProviderStatic
	} else if code, err := s.dynamic(ctx, amount, charge.TxID, payer); err != nil {
		log.Warn("pix provider failed; falling back to static payload",
			zap.String("tx_id", charge.TxID), zap.Error(err))
		res.Code, res.Provider = pix.BuildStatic(charge), ProviderStaticFallback
	} else {
		res.Code, res.Provider = code, ProviderEfiPay
	}

	if err := s.Orders.SetPixTransactionID(ctx, orderID, charge.TxID); err != nil {
		return Result{}, fmt.Errorf("save pix transaction id: %w", err)
	}

	telemetry.IncPixGenerated(res.Provider)
	log.Info("pix generated",
		zap.String("tx_id", res.TxID),
		zap.String("provider", res.Provider),
		zap.String("amount", amount.StringFixed(2)))

	if s.Events != nil {
		s.Events(outbox.PixGenerated{
			EventID:     uuid.NewString(),
			EventType:   outbox.EventPixGenerated,
			OrderID:     orderID.String(),
			TxID:        res.TxID,
			Amount:      amount.StringFixed(2),
			Provider:    res.Provider,
			GeneratedAt: s.now().UTC(),
		})
	}
	return res, nil
}

// staticCharge resolves the receiving key and merchant name from store
// settings, falling back to the configured defaults.
func (s *Service) staticCharge(ctx context.Context, log *zap.Logger, amount decimal.Decimal, txID string) pix.Charge {
	st, err := s.Settings.GetSettings(ctx)
	if err != nil && !errors.Is(err, storage.ErrSettingsNotFound) {
		log.Warn("store settings unavailable; using defaults", zap.Error(err))
	}

	return pix.Charge{
		PixKey:       firstNonEmpty(st.PixKey, s.Defaults.Key, config.DefaultPixKey),
		MerchantName: firstNonEmpty(st.PixName, st.Name, s.Defaults.MerchantName, config.DefaultMerchantName),
		MerchantCity: firstNonEmpty(s.Defaults.MerchantCity, config.DefaultMerchantCity),
		Amount:       amount,
		TxID:         txID,
	}
}

func (s *Service) dynamic(ctx context.Context, amount decimal.Decimal, txID, payer string) (string, error) {
	start := time.Now()
	code, err := s.Charger.RequestDynamicCharge(ctx, amount, txID, payer)
	telemetry.ObserveProviderDuration(time.Since(start))
	if err != nil {
		telemetry.IncPixProviderFailure(stageOf(err))
		return "", err
	}
	if err := pix.Verify(code); err != nil {
		telemetry.IncPixProviderFailure("verify")
		return "", fmt.Errorf("provider returned invalid code: %w", err)
	}
	return code, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func stageOf(err error) string {
	var pe *efipay.Error
	if errors.As(err, &pe) {
		return string(pe.Stage)
	}
	return "unknown"
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
