package kafka

import (
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
)

func TestToRecord(t *testing.T) {
	ts := time.Date(2026, 10, 19, 21, 0, 0, 0, time.UTC)

	rec := toRecord(kafka.Message{Offset: 7, Partition: 0, Time: ts, Key: []byte("order-1"), Value: []byte(`{"tx_id":"PED1"}`)})
	if rec.Offset != 7 || rec.Key != "order-1" || !rec.Time.Equal(ts) || string(rec.Value) != `{"tx_id":"PED1"}` {
		t.Fatalf("json record = %+v", rec)
	}

	rec = toRecord(kafka.Message{Value: []byte("not json")})
	if string(rec.Value) != `"not json"` || rec.Key != "" {
		t.Fatalf("text record = %+v (%s)", rec, rec.Value)
	}
}
