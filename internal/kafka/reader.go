package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
)

// Record is one message read back from a topic. Value stays raw JSON when the
// payload is JSON and is quoted as a string otherwise.
type Record struct {
	Offset    int64           `json:"offset"`
	Partition int             `json:"partition"`
	Time      time.Time       `json:"time"`
	Key       string          `json:"key,omitempty"`
	Value     json.RawMessage `json:"value"`
}

// ReadFromStart reads up to limit messages from partition 0 of topic,
// starting at the oldest offset. Hitting ctx's deadline is not an error: the
// records read so far are returned. Any other read failure is returned along
// with the partial result.
func ReadFromStart(ctx context.Context, brokers []string, topic string, limit int) ([]Record, error) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   brokers,
		Topic:     topic,
		Partition: 0,
		MinBytes:  1e3,
		MaxBytes:  10e6,
		MaxWait:   200 * time.Millisecond,
	})
	defer r.Close()

	if err := r.SetOffset(kafka.FirstOffset); err != nil {
		return nil, err
	}

	out := make([]Record, 0, limit)
	for len(out) < limit {
		m, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
				return out, nil
			}
			return out, err
		}
		out = append(out, toRecord(m))
	}
	return out, nil
}

func toRecord(m kafka.Message) Record {
	rec := Record{Offset: m.Offset, Partition: m.Partition, Time: m.Time, Key: string(m.Key)}
	if json.Valid(m.Value) {
		rec.Value = json.RawMessage(m.Value)
	} else {
		b, _ := json.Marshal(string(m.Value))
		rec.Value = b
	}
	return rec
}
