package state

import (
	"lodge/internal/domains/reservation/model"
)

// Actions are the operations a client may invoke next for a reservation in a
// given status. The same table guards the batch deactivate/reactivate
// use-cases, so there is a single authority for "what can happen now".
type Actions struct {
	CanConfirm    bool `json:"can_confirm"`
	CanCheckIn    bool `json:"can_check_in"`
	CanCheckOut   bool `json:"can_check_out"`
	CanCancel     bool `json:"can_cancel"`
	CanModify     bool `json:"can_modify"`
	CanAdjustStay bool `json:"can_adjust_stay"`
	CanReactivate bool `json:"can_reactivate"`
}

func ActionsFor(status model.Status) Actions {
	switch status {
	case model.StatusPending:
		return Actions{CanConfirm: true, CanCancel: true, CanModify: true}
	case model.StatusConfirmed:
		return Actions{CanCheckIn: true, CanCancel: true, CanModify: true, CanAdjustStay: true}
	case model.StatusCheckedIn:
		return Actions{CanCheckOut: true, CanAdjustStay: true}
	case model.StatusCanceled:
		return Actions{CanReactivate: true}
	default:
		return Actions{}
	}
}
