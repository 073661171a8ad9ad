package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"aaamo-store/internal/domain"

	"github.com/gorilla/websocket"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func testOrder() *domain.Order {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	items := []domain.CartItem{
		{Product: domain.Product{ID: "prod_001", Name: "جراب", Price: 250}, Quantity: 2},
		{Product: domain.Product{ID: "prod_003", Name: "شاحن", Price: 450}, Quantity: 1},
	}
	return domain.NewOrder(nil, domain.CustomerDetails{
		Name:        "منى",
		Phone:       "01012345678",
		Address:     "شارع التحرير",
		Governorate: "الجيزة",
	}, items, domain.PaymentCOD, now)
}

func TestOrderCreatedEnvelope(t *testing.T) {
	order := testOrder()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("EET", 2*3600))

	env, err := OrderCreated(order, now)
	if err != nil {
		t.Fatalf("OrderCreated() error = %v", err)
	}

	if env.EventType != EventOrderCreated || env.EventVersion != 1 || env.Producer != "aaamo-store" {
		t.Errorf("Unexpected envelope header: %+v", env)
	}
	if env.CorrelationID != order.ID {
		t.Errorf("Expected correlation id %s, got %s", order.ID, env.CorrelationID)
	}
	if env.OccurredAt.Location() != time.UTC {
		t.Error("Expected occurred_at in UTC")
	}
	if env.EventID == "" {
		t.Error("Expected an event id")
	}

	var payload OrderCreatedPayload
	if err := json.Unmarshal(env.Payload, &payload); err != nil {
		t.Fatalf("Invalid payload: %v", err)
	}
	if payload.ItemCount != 3 || payload.FinalAmount != 1000 || payload.Status != domain.OrderStatusPending {
		t.Errorf("Unexpected payload: %+v", payload)
	}
}

type recordingPublisher struct {
	mu   sync.Mutex
	envs []Envelope
	err  error
}

func (r *recordingPublisher) Publish(ctx context.Context, env Envelope) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.envs = append(r.envs, env)
	return r.err
}

func TestMultiPublisherFansOut(t *testing.T) {
	ok := &recordingPublisher{}
	failing := &recordingPublisher{err: errors.New("broker down")}
	multi := MultiPublisher{failing, ok, NewLogPublisher(zap.NewNop())}

	env, _ := OrderStatusChanged("order_1_abcde", domain.OrderStatusPending, domain.OrderStatusProcessing, time.Now())
	err := multi.Publish(context.Background(), env)

	if err == nil || !strings.Contains(err.Error(), "broker down") {
		t.Errorf("Expected joined error, got %v", err)
	}
	if len(ok.envs) != 1 || len(failing.envs) != 1 {
		t.Error("Every publisher must receive the envelope even when one fails")
	}
}

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	closed bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func TestKafkaPublisherFlushesOnClose(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, 8, zap.NewNop())

	order := testOrder()
	created, _ := OrderCreated(order, time.Now())
	changed, _ := OrderStatusChanged(order.ID, domain.OrderStatusPending, domain.OrderStatusShipping, time.Now())

	for _, env := range []Envelope{created, changed} {
		if err := p.Publish(context.Background(), env); err != nil {
			t.Fatalf("Publish() error = %v", err)
		}
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		t.Error("Expected writer to be closed")
	}
	if len(w.msgs) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(w.msgs))
	}
	for _, m := range w.msgs {
		if string(m.Key) != order.ID {
			t.Errorf("Expected key %s, got %s", order.ID, m.Key)
		}
		if len(m.Headers) == 0 || m.Headers[0].Key != "event_type" {
			t.Errorf("Missing event_type header: %v", m.Headers)
		}
	}
	if string(w.msgs[1].Headers[0].Value) != EventOrderStatusChanged {
		t.Errorf("Events must keep publish order, got %s", w.msgs[1].Headers[0].Value)
	}
}

type blockingWriter struct {
	release chan struct{}
}

func (b *blockingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	<-b.release
	return nil
}

func (b *blockingWriter) Close() error { return nil }

func TestKafkaPublisherReportsFullBuffer(t *testing.T) {
	w := &blockingWriter{release: make(chan struct{})}
	p := newKafkaPublisher(w, 1, zap.NewNop())

	env, _ := OrderStatusChanged("order_1_abcde", domain.OrderStatusPending, domain.OrderStatusOnHold, time.Now())

	var full bool
	for i := 0; i < 5; i++ {
		if err := p.Publish(context.Background(), env); errors.Is(err, ErrPublisherFull) {
			full = true
			break
		}
	}
	if !full {
		t.Error("Expected ErrPublisherFull once the buffer is exhausted")
	}

	close(w.release)
	_ = p.Close()
}

func TestHubBroadcastsToDashboards(t *testing.T) {
	hub := NewHub(zap.NewNop())
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.ClientCount() != 1 {
		t.Fatalf("Expected 1 connected client, got %d", hub.ClientCount())
	}

	env, _ := OrderCreated(testOrder(), time.Now())
	if err := hub.Publish(context.Background(), env); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}

	var got Envelope
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Invalid message: %v", err)
	}
	if got.EventID != env.EventID || got.EventType != EventOrderCreated {
		t.Errorf("Unexpected envelope: %+v", got)
	}
}
