package model

import (
	"fmt"
	"lodge/shared/model"
	"time"

	"github.com/jmoiron/sqlx/types"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID                   = "id"
	FieldRoomID               = "room_id"
	FieldCustomerID           = "customer_id"
	FieldStatus               = "status"
	FieldIsActive             = "is_active"
	FieldCheckInDate          = "check_in_date"
	FieldCheckOutDate         = "check_out_date"
	FieldReservationDate      = "reservation_date"
	FieldAppliedLateCheckout  = "applied_late_checkout"
	FieldPendingPaymentDelete = "pending_payment_delete"
	FieldGuests               = "guests"
	FieldObservations         = "observations"
	FieldOrigin               = "origin"
	FieldReason               = "reason"
)

// Status is the reservation lifecycle state. Transitions between statuses are
// governed exclusively by the state machine in the state package.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCanceled   Status = "canceled"
)

// ParseStatus converts a request string into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCanceled:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown reservation status: %q", s)
	}
}

// IsTerminal reports whether the status admits no outgoing transition other
// than the no-op to itself.
func (s Status) IsTerminal() bool {
	return s == StatusCheckedOut || s == StatusCanceled
}

func (s Status) String() string {
	return string(s)
}

// BlockingStatuses are the statuses whose reservations occupy the room for
// availability purposes. Checked-out and canceled reservations never block.
func BlockingStatuses() []string {
	return []string{string(StatusPending), string(StatusConfirmed), string(StatusCheckedIn)}
}

// Guest is a companion record carried on the reservation. The payload is
// opaque to the availability and lifecycle logic.
type Guest struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Document string `json:"document"`
	Contact  string `json:"contact"`
}

type Reservation struct {
	ID                   string         `db:"id"`
	RoomID               string         `db:"room_id"`
	CustomerID           string         `db:"customer_id"`
	Status               string         `db:"status"`
	IsActive             bool           `db:"is_active"`
	CheckInDate          time.Time      `db:"check_in_date"`
	CheckOutDate         time.Time      `db:"check_out_date"`
	ReservationDate      time.Time      `db:"reservation_date"`
	AppliedLateCheckout  bool           `db:"applied_late_checkout"`
	PendingPaymentDelete bool           `db:"pending_payment_delete"`
	Guests               types.JSONText `db:"guests"`
	Observations         string         `db:"observations"`
	Origin               string         `db:"origin"`
	Reason               string         `db:"reason"`
	model.Metadata
}
