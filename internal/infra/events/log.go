package events

import (
	"context"
	"log/slog"

	"salon-booking/internal/usecase/shared"
)

// LogPublisher stands in for a broker when none is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, ev shared.BookingEvent) error {
	p.logger.InfoContext(ctx, "booking event",
		"type", string(ev.Type),
		"booking_id", ev.BookingID.String(),
		"resource_id", ev.ResourceID.String(),
		"status", ev.Status,
		"date", ev.Date,
		"start_time", ev.StartTime,
		"end_time", ev.EndTime,
	)
	return nil
}
