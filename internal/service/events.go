package service

import (
	"context"

	"github.com/iliyamo/hotel-booking/internal/queue"
)

// EventPublisher delivers booking events.  *queue.Publisher and
// queue.NopPublisher implement it.
type EventPublisher interface {
	Publish(ctx context.Context, queueName string, ev queue.BookingEvent) error
}
