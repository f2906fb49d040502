package state

import (
	"lodge/internal/domains/reservation/model"
)

// Result is the outcome of consulting the transition table for a
// (current, target) pair. IsActive is the active flag the reservation carries
// after an accepted transition; it is derived here and never set directly.
type Result struct {
	Valid    bool
	NoOp     bool
	IsActive bool
}

// Transition consults the lifecycle table. It is pure: the outcome depends on
// nothing but the two statuses.
//
//	pending    -> confirmed | canceled
//	confirmed  -> pending | checked_in | canceled
//	checked_in -> checked_out | canceled
//	checked_out, canceled: terminal (self no-op only)
func Transition(current, target model.Status) Result {
	if current == target {
		return Result{Valid: true, NoOp: true, IsActive: !current.IsTerminal()}
	}

	switch current {
	case model.StatusPending:
		switch target {
		case model.StatusConfirmed:
			return Result{Valid: true, IsActive: true}
		case model.StatusCanceled:
			return Result{Valid: true, IsActive: false}
		}
	case model.StatusConfirmed:
		switch target {
		case model.StatusPending, model.StatusCheckedIn:
			return Result{Valid: true, IsActive: true}
		case model.StatusCanceled:
			return Result{Valid: true, IsActive: false}
		}
	case model.StatusCheckedIn:
		switch target {
		case model.StatusCheckedOut, model.StatusCanceled:
			return Result{Valid: true, IsActive: false}
		}
	}

	return Result{}
}
