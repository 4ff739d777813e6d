package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"

	"salon-booking/internal/pkg/errs"
	"salon-booking/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

type dialFunc func() (publishChannel, io.Closer, error)

// AMQPPublisher sends booking events to a durable topic exchange; the event type is the routing key.
// A channel closed by the broker is redialled on the next Publish.
type AMQPPublisher struct {
	mu       sync.Mutex
	dial     dialFunc
	conn     io.Closer
	ch       publishChannel
	exchange string
}

func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	return newAMQPPublisher(exchange, func() (publishChannel, io.Closer, error) {
		return dialExchange(url, exchange)
	})
}

func newAMQPPublisher(exchange string, dial dialFunc) (*AMQPPublisher, error) {
	p := &AMQPPublisher{dial: dial, exchange: exchange}
	if err := p.reconnectLocked(); err != nil {
		return nil, err
	}
	return p, nil
}

func dialExchange(url, exchange string) (publishChannel, io.Closer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, errs.Wrap(err, "dial rabbitmq")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, errs.Wrap(err, "open channel")
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, errs.Wrap(err, "declare exchange")
	}

	closed := ch.NotifyClose(make(chan *amqp.Error, 1))
	go func() {
		// nil means a clean Close from our side
		if amqpErr, ok := <-closed; ok && amqpErr != nil {
			slog.Warn("rabbitmq channel closed, will redial on next publish",
				"exchange", exchange, "code", amqpErr.Code, "reason", amqpErr.Reason)
		}
	}()
	return ch, conn, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, ev shared.BookingEvent) error {
	msg, err := toPublishing(ev)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == nil || p.ch.IsClosed() {
		if err := p.reconnectLocked(); err != nil {
			return errs.Wrapf(err, "publish %s", ev.Type)
		}
	}
	if err := p.ch.PublishWithContext(ctx, p.exchange, string(ev.Type), false, false, msg); err != nil {
		return errs.Wrapf(err, "publish %s", ev.Type)
	}
	return nil
}

func (p *AMQPPublisher) reconnectLocked() error {
	p.closeLocked()
	ch, conn, err := p.dial()
	if err != nil {
		return err
	}
	p.ch, p.conn = ch, conn
	return nil
}

func (p *AMQPPublisher) closeLocked() error {
	var err error
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		err = p.conn.Close()
		p.conn = nil
	}
	return err
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closeLocked()
}

func toPublishing(ev shared.BookingEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, errs.Wrap(err, "marshal booking event")
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.BookingID.String() + ":" + string(ev.Type),
		Timestamp:    ev.OccurredAt,
		Type:         string(ev.Type),
		Body:         body,
	}, nil
}
