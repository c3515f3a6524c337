package kafka

import (
	"context"
	"sync"
	"time"

	"gridiron-be/internal/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer hands messages to a background writer goroutine so request
// handlers never wait on the brokers.
type Producer struct {
	w       messageWriter
	inbox   chan kafka.Message
	closeCh chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewProducer(brokers []string, buf int) *Producer {
	return newProducer(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	}, buf)
}

func newProducer(w messageWriter, buf int) *Producer {
	return &Producer{
		w:       w,
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
	}
}

// Start runs the writer loop until Close drains the inbox.
func (p *Producer) Start() {
	go func() {
		defer close(p.closeCh)
		for m := range p.inbox {
			if err := p.w.WriteMessages(context.Background(), m); err != nil {
				logger.L().Error("kafka: write failed",
					zap.String("topic", m.Topic),
					zap.ByteString("key", m.Key),
					zap.Error(err),
				)
			}
		}
		if err := p.w.Close(); err != nil {
			logger.L().Warn("kafka: close writer", zap.Error(err))
		}
	}()
}

// Publish enqueues one message. A full inbox or a closed producer drops the
// message rather than blocking the caller.
func (p *Producer) Publish(_ context.Context, topic string, key, value []byte, headers ...kafka.Header) {
	msg := kafka.Message{
		Topic:   topic,
		Key:     key,
		Value:   value,
		Time:    time.Now(),
		Headers: headers,
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		logger.L().Warn("kafka: producer closed, dropping message",
			zap.String("topic", topic),
			zap.ByteString("key", key),
		)
		return
	}

	select {
	case p.inbox <- msg:
	default:
		logger.L().Warn("kafka: inbox full, dropping message",
			zap.String("topic", topic),
			zap.ByteString("key", key),
		)
	}
}

// Close stops accepting messages; the loop flushes what is queued. Calling
// it more than once is harmless.
func (p *Producer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.inbox)
}

// WaitClosed blocks until the writer loop has exited.
func (p *Producer) WaitClosed() { <-p.closeCh }
