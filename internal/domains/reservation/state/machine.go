package state

import (
	"context"
	"lodge/internal/domains/reservation/model"
	paymentService "lodge/internal/domains/payment/service"
	roomRepository "lodge/internal/domains/room/repository"
	"lodge/shared/failure"

	"github.com/jmoiron/sqlx"
)

// Handler is implemented once per lifecycle status. CanTransitionTo validates
// the requested transition including any cross-cutting guard; HandleTransition
// applies the room side effects within the caller's transaction and returns
// any extra reservation fields the transition sets.
type Handler interface {
	Status() model.Status
	CanTransitionTo(ctx context.Context, res model.Reservation, target model.Status) error
	HandleTransition(ctx context.Context, tx *sqlx.Tx, res model.Reservation, target model.Status, actor string) (map[string]any, error)
}

// Machine selects the handler for a reservation's current status. Every
// status-affecting mutation in the service layer goes through it; there is no
// parallel set of inline status checks.
type Machine struct {
	handlers map[model.Status]Handler
}

func NewMachine(rooms roomRepository.Room, payments paymentService.Guard) *Machine {
	handlers := map[model.Status]Handler{
		model.StatusPending:    &pendingHandler{},
		model.StatusConfirmed:  &confirmedHandler{rooms: rooms},
		model.StatusCheckedIn:  &checkedInHandler{rooms: rooms, payments: payments},
		model.StatusCheckedOut: &checkedOutHandler{rooms: rooms},
		model.StatusCanceled:   &canceledHandler{},
	}

	return &Machine{handlers: handlers}
}

func (m *Machine) Handler(status model.Status) (Handler, error) {
	handler, ok := m.handlers[status]
	if !ok {
		return nil, failure.BadRequestFromString("unknown reservation status: " + status.String()) //nolint:wrapcheck
	}

	return handler, nil
}

// tableCheck is the shared table consultation used by every handler.
func tableCheck(current, target model.Status) error {
	if result := Transition(current, target); !result.Valid {
		return failure.InvalidTransition(current.String(), target.String()) //nolint:wrapcheck
	}

	return nil
}
