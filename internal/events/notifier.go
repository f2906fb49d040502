package events

//go:generate go run go.uber.org/mock/mockgen -source=./notifier.go -destination=./mocks/notifier_mock.go -package=mocks

import (
	"context"
	"lodge/config"
	"lodge/infras/kafka"
	"lodge/infras/otel"
	"lodge/internal/domains/reservation/model"
	"lodge/shared/constant"
	"lodge/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	EventReservationCreated  = "reservation.created"
	EventReservationChanged  = "reservation.changed"
	EventReservationDeleted  = "reservation.deleted"
	EventAvailabilityChanged = "availability.changed"
)

type ReservationEvent struct {
	Event       string             `json:"event"`
	Reservation *model.Reservation `json:"reservation,omitempty"`
	ID          string             `json:"id,omitempty"`
	RoomID      string             `json:"room_id,omitempty"`
	CheckIn     *time.Time         `json:"check_in,omitempty"`
	CheckOut    *time.Time         `json:"check_out,omitempty"`
	EmittedAt   time.Time          `json:"emitted_at"`
}

// Notifier fans reservation changes out to interested consumers. Delivery is
// best-effort: callers invoke it after commit and failures are only logged.
type Notifier interface {
	ReservationCreated(ctx context.Context, res model.Reservation)
	ReservationChanged(ctx context.Context, res model.Reservation)
	ReservationDeleted(ctx context.Context, id string)
	AvailabilityChanged(ctx context.Context, roomID string, checkIn, checkOut time.Time)
}

type kafkaNotifier struct {
	client kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

func NewNotifier(client kafka.Client, cfg *config.Config, otel otel.Otel) Notifier {
	return &kafkaNotifier{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

func (n *kafkaNotifier) ReservationCreated(ctx context.Context, res model.Reservation) {
	n.publish(ctx, res.ID, ReservationEvent{
		Event:       EventReservationCreated,
		Reservation: &res,
	})
}

func (n *kafkaNotifier) ReservationChanged(ctx context.Context, res model.Reservation) {
	n.publish(ctx, res.ID, ReservationEvent{
		Event:       EventReservationChanged,
		Reservation: &res,
	})
}

func (n *kafkaNotifier) ReservationDeleted(ctx context.Context, id string) {
	n.publish(ctx, id, ReservationEvent{
		Event: EventReservationDeleted,
		ID:    id,
	})
}

func (n *kafkaNotifier) AvailabilityChanged(ctx context.Context, roomID string, checkIn, checkOut time.Time) {
	n.publish(ctx, roomID, ReservationEvent{
		Event:    EventAvailabilityChanged,
		RoomID:   roomID,
		CheckIn:  &checkIn,
		CheckOut: &checkOut,
	})
}

func (n *kafkaNotifier) publish(ctx context.Context, key string, event ReservationEvent) {
	ctx, scope := n.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+"."+event.Event)
	defer scope.End()

	event.EmittedAt = timezone.Now()

	message := kafka.Message{
		Key:   key,
		Value: event,
	}

	topic := n.cfg.Kafka.Topics.ReservationEvents

	if err := n.client.SendMessages(ctx, topic, message); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("event", event.Event).Str("key", key).Msg("failed to publish reservation event")
	}
}
