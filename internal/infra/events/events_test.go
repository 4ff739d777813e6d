//go:build unit

package events

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"salon-booking/internal/usecase/shared"
	"salon-booking/tests/common/builder"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPublishing(t *testing.T) {
	b := builder.NewBookingBuilder().BuildReconstructed()
	ev := shared.NewBookingEvent(shared.EventBookingRescheduled, b, time.Now())

	msg, err := toPublishing(ev)
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "booking.rescheduled", msg.Type)
	assert.Equal(t, b.ID().String()+":booking.rescheduled", msg.MessageId)

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Body, &body))
	assert.Equal(t, "booking.rescheduled", body["type"])
	assert.Equal(t, b.ID().String(), body["bookingId"])
	assert.Equal(t, "15:00", body["endTime"])
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	b := builder.NewBookingBuilder().BuildReconstructed()

	err := NewLogPublisher(logger).Publish(context.Background(), shared.NewBookingEvent(shared.EventBookingCancelled, b, time.Now()))
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "booking event", line["msg"])
	assert.Equal(t, "booking.cancelled", line["type"])
	assert.Equal(t, b.ID().String(), line["booking_id"])
}

type fakeChannel struct {
	closed    bool
	published []amqp.Publishing
	keys      []string
}

func (f *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	if f.closed {
		return amqp.ErrClosed
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) IsClosed() bool { return f.closed }

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

type fakeConn struct{ closed bool }

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

type fakeDialer struct {
	channels []*fakeChannel
	conns    []*fakeConn
	failNext error
}

func (d *fakeDialer) dial() (publishChannel, io.Closer, error) {
	if err := d.failNext; err != nil {
		d.failNext = nil
		return nil, nil, err
	}
	ch, conn := &fakeChannel{}, &fakeConn{}
	d.channels = append(d.channels, ch)
	d.conns = append(d.conns, conn)
	return ch, conn, nil
}

func TestAMQPPublisher_Reconnect(t *testing.T) {
	ctx := context.Background()
	ev := shared.NewBookingEvent(shared.EventBookingCreated, builder.NewBookingBuilder().BuildReconstructed(), time.Now())

	t.Run("publishes on the open channel", func(t *testing.T) {
		d := &fakeDialer{}
		pub, err := newAMQPPublisher("bookings", d.dial)
		require.NoError(t, err)

		require.NoError(t, pub.Publish(ctx, ev))
		require.Len(t, d.channels, 1)
		assert.Equal(t, []string{"booking.created"}, d.channels[0].keys)
	})

	t.Run("redials after the broker closed the channel", func(t *testing.T) {
		d := &fakeDialer{}
		pub, err := newAMQPPublisher("bookings", d.dial)
		require.NoError(t, err)

		d.channels[0].closed = true
		require.NoError(t, pub.Publish(ctx, ev))

		require.Len(t, d.channels, 2)
		assert.True(t, d.conns[0].closed, "stale connection should be closed")
		assert.Empty(t, d.channels[0].published)
		assert.Len(t, d.channels[1].published, 1)
	})

	t.Run("failed redial is retried on the next publish", func(t *testing.T) {
		d := &fakeDialer{}
		pub, err := newAMQPPublisher("bookings", d.dial)
		require.NoError(t, err)

		d.channels[0].closed = true
		d.failNext = assert.AnError
		assert.ErrorIs(t, pub.Publish(ctx, ev), assert.AnError)

		require.NoError(t, pub.Publish(ctx, ev))
		require.Len(t, d.channels, 2)
		assert.Len(t, d.channels[1].published, 1)
	})

	t.Run("initial dial failure is returned", func(t *testing.T) {
		d := &fakeDialer{failNext: assert.AnError}
		_, err := newAMQPPublisher("bookings", d.dial)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("close releases channel and connection", func(t *testing.T) {
		d := &fakeDialer{}
		pub, err := newAMQPPublisher("bookings", d.dial)
		require.NoError(t, err)

		require.NoError(t, pub.Close())
		assert.True(t, d.channels[0].closed)
		assert.True(t, d.conns[0].closed)
	})
}
