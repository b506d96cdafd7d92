package broker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"cineapp/internal/pkg/config"
	"cineapp/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitPublisher sends outbox payloads to a durable queue named after the
// topic, through the default exchange. The connection is opened lazily and
// reopened after the broker drops it.
type RabbitPublisher struct {
	url    string
	logger *slog.Logger

	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	declared map[string]struct{}
}

func NewRabbitPublisher(cfg config.BrokerConfig, logger *slog.Logger) *RabbitPublisher {
	return &RabbitPublisher{
		url:      cfg.URL,
		logger:   logger,
		declared: make(map[string]struct{}),
	}
}

func (p *RabbitPublisher) Publish(ctx context.Context, topic, kind string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	if _, ok := p.declared[topic]; !ok {
		if _, err := ch.QueueDeclare(topic, true, false, false, false, nil); err != nil {
			p.reset()
			return errs.Wrapf(err, "declare queue %s", topic)
		}
		p.declared[topic] = struct{}{}
	}

	err = ch.PublishWithContext(ctx, "", topic, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         kind,
		Timestamp:    time.Now().UTC(),
		Body:         payload,
	})
	if err != nil {
		p.reset()
		return errs.Wrapf(err, "publish %s to %s", kind, topic)
	}
	return nil
}

func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closeLocked()
}

func (p *RabbitPublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}

	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			return nil, errs.Wrap(err, "dial broker")
		}
		p.conn = conn
		p.logger.Info("broker connection established")
	}

	ch, err := p.conn.Channel()
	if err != nil {
		p.reset()
		return nil, errs.Wrap(err, "open broker channel")
	}
	p.ch = ch
	p.declared = make(map[string]struct{})
	return ch, nil
}

// reset drops the current connection so the next publish dials again.
func (p *RabbitPublisher) reset() {
	if err := p.closeLocked(); err != nil {
		p.logger.Warn("broker close after failure", "error", err.Error())
	}
}

func (p *RabbitPublisher) closeLocked() error {
	var firstErr error
	if p.ch != nil {
		if err := p.ch.Close(); err != nil && !errs.Is(err, amqp.ErrClosed) {
			firstErr = err
		}
		p.ch = nil
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && !errs.Is(err, amqp.ErrClosed) && firstErr == nil {
			firstErr = err
		}
		p.conn = nil
	}
	return firstErr
}
