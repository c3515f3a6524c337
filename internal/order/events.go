package order

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"gridiron-be/internal/kafka"
	"gridiron-be/internal/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	TopicOrderPlaced        = "order.placed"
	TopicOrderStatusUpdated = "order.status.updated"

	EventOrderPlaced        = "OrderPlaced"
	EventOrderStatusUpdated = "OrderStatusUpdated"
)

type Envelope struct {
	EventID      string          `json:"eventId"`
	EventType    string          `json:"eventType"`
	EventVersion int             `json:"eventVersion"`
	OccurredAt   time.Time       `json:"occurredAt"`
	Producer     string          `json:"producer"`
	RequestID    string          `json:"requestId,omitempty"`
	Payload      json.RawMessage `json:"payload"`
}

type PlacedItem struct {
	ProductID *int64          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type OrderPlacedPayload struct {
	OrderID    int64           `json:"orderId"`
	UserID     int64           `json:"userId"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Items      []PlacedItem    `json:"items"`
}

type OrderStatusUpdatedPayload struct {
	OrderID int64       `json:"orderId"`
	From    OrderStatus `json:"from"`
	To      OrderStatus `json:"to"`
}

// Publisher is satisfied by *kafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, topic string, key, value []byte, headers ...kafkago.Header)
}

type noopPublisher struct{}

// NewNoopPublisher is used when no brokers are configured.
func NewNoopPublisher() Publisher { return noopPublisher{} }

func (noopPublisher) Publish(context.Context, string, []byte, []byte, ...kafkago.Header) {}

// Events turns committed order changes into envelopes on the order topics.
type Events struct {
	pub      Publisher
	producer string
	now      func() time.Time
}

func NewEvents(pub Publisher, producer string) *Events {
	return &Events{pub: pub, producer: producer, now: time.Now}
}

func (e *Events) emit(ctx context.Context, topic, eventType string, orderID int64, payload any) {
	env := Envelope{
		EventID:      uuid.NewString(),
		EventType:    eventType,
		EventVersion: 1,
		OccurredAt:   e.now().UTC(),
		Producer:     e.producer,
		RequestID:    logger.RequestIDFrom(ctx),
		Payload:      kafka.MustMarshal(payload),
	}

	e.pub.Publish(ctx, topic,
		[]byte(strconv.FormatInt(orderID, 10)),
		kafka.MustMarshal(env),
		kafkago.Header{Key: "event_type", Value: []byte(eventType)},
	)

	logger.FromCtx(ctx).Debug("order event published",
		zap.String("topic", topic),
		zap.String("event_id", env.EventID),
		zap.Int64("order_id", orderID),
	)
}

func (e *Events) OrderPlaced(ctx context.Context, o *Order) {
	items := make([]PlacedItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, PlacedItem{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}

	e.emit(ctx, TopicOrderPlaced, EventOrderPlaced, o.ID, OrderPlacedPayload{
		OrderID:    o.ID,
		UserID:     o.UserID,
		TotalPrice: o.TotalPrice,
		Items:      items,
	})
}

func (e *Events) OrderStatusUpdated(ctx context.Context, orderID int64, from, to OrderStatus) {
	e.emit(ctx, TopicOrderStatusUpdated, EventOrderStatusUpdated, orderID, OrderStatusUpdatedPayload{
		OrderID: orderID,
		From:    from,
		To:      to,
	})
}
