// Package outbox publishes payment events off the request path.
package outbox

import (
	"context"
	"time"

	"github.com/AgentTarik/pizzeria-api/telemetry"
	"go.uber.org/zap"
)

const EventPixGenerated = "pix.generated.v1"

// PixGenerated is emitted once a PIX code has been handed to a customer.
type PixGenerated struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	OrderID     string    `json:"order_id"`
	TxID        string    `json:"tx_id"`
	Amount      string    `json:"amount"`
	Provider    string    `json:"provider"`
	GeneratedAt time.Time `json:"generated_at"`
}

type Publisher interface {
	Publish(ctx context.Context, key string, v any) error
}

type Validator interface {
	Validate(doc any) error
}

type Worker struct {
	log      *zap.Logger
	pub      Publisher
	v        Validator
	ch       chan PixGenerated
	pubLimit time.Duration
}

func NewWorker(log *zap.Logger, pub Publisher, v Validator, queueSize int) *Worker {
	return &Worker{
		log:      log,
		pub:      pub,
		v:        v,
		ch:       make(chan PixGenerated, queueSize),
		pubLimit: 5 * time.Second,
	}
}

// Enqueue never blocks: when the queue is full the event is dropped.
func (w *Worker) Enqueue(e PixGenerated) bool {
	select {
	case w.ch <- e:
		telemetry.SetWorkerQueueCurrent(len(w.ch))
		return true
	default:
		telemetry.IncEventsFailed("queue_full")
		w.log.Warn("event queue full; dropping event",
			zap.String("order_id", e.OrderID),
			zap.String("tx_id", e.TxID))
		return false
	}
}

func (w *Worker) Run(ctx context.Context) {
	w.log.Info("event worker started")
	for {
		select {
		case <-ctx.Done():
			w.log.Info("event worker stopped")
			return
		case e := <-w.ch:
			telemetry.SetWorkerQueueCurrent(len(w.ch))
			w.publish(ctx, e)
		}
	}
}

func (w *Worker) publish(ctx context.Context, e PixGenerated) {
	if w.v != nil {
		if err := w.v.Validate(e); err != nil {
			telemetry.IncEventsFailed("schema")
			w.log.Error("event failed schema validation", zap.String("order_id", e.OrderID), zap.Error(err))
			return
		}
	}
	ctx, cancel := context.WithTimeout(ctx, w.pubLimit)
	defer cancel()
	if err := w.pub.Publish(ctx, e.OrderID, e); err != nil {
		telemetry.IncEventsFailed("kafka")
		w.log.Error("failed to publish event", zap.String("order_id", e.OrderID), zap.Error(err))
		return
	}
	telemetry.IncEventsPublished()
	w.log.Info("event published",
		zap.String("event_type", e.EventType),
		zap.String("order_id", e.OrderID),
		zap.String("provider", e.Provider))
}

// LogPublisher stands in for Kafka when no broker is configured.
type LogPublisher struct {
	Log *zap.Logger
}

func (p LogPublisher) Publish(_ context.Context, key string, v any) error {
	p.Log.Debug("event (kafka disabled)", zap.String("key", key), zap.Any("event", v))
	return nil
}
