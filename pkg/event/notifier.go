package event

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nazaclinic/booking-api/pkg/messaging"
)

// Kind is a booking event kind broadcast to connected observers.
type Kind string

const (
	KindNewAppointment     Kind = "newAppointment"
	KindAppointmentUpdated Kind = "appointmentUpdated"
)

// Event is the wire form published on the broker channel.
type Event struct {
	ID        uuid.UUID   `json:"id"`
	Kind      Kind        `json:"kind"`
	Payload   interface{} `json:"payload,omitempty"`
	EmittedAt time.Time   `json:"emitted_at"`
}

// Notifier broadcasts booking state changes. Emission is fire-and-forget:
// implementations must not fail the calling operation.
type Notifier interface {
	Emit(ctx context.Context, kind Kind, payload interface{})
}

// Channel is the broker channel all booking events are published on.
const Channel = "booking.events"

type brokerNotifier struct {
	broker messaging.Broker
	logger zerolog.Logger
}

func NewBrokerNotifier(broker messaging.Broker, logger zerolog.Logger) Notifier {
	return &brokerNotifier{broker: broker, logger: logger}
}

func (n *brokerNotifier) Emit(ctx context.Context, kind Kind, payload interface{}) {
	evt := Event{
		ID:        uuid.New(),
		Kind:      kind,
		Payload:   payload,
		EmittedAt: time.Now(),
	}

	if err := n.broker.Publish(ctx, Channel, evt); err != nil {
		n.logger.Warn().Err(err).Str("kind", string(kind)).Msg("event emission failed")
	}
}

type noopNotifier struct{}

// NewNoopNotifier returns a notifier that discards all events.
func NewNoopNotifier() Notifier {
	return noopNotifier{}
}

func (noopNotifier) Emit(context.Context, Kind, interface{}) {}
