package messaging

import "context"

// Broker is the transport used to fan out booking events to observers.
// Delivery is best-effort; subscribers that fall behind miss messages.
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}
