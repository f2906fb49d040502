package model

import "lodge/shared/model"

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID            = "id"
	FieldReservationID = "reservation_id"
	FieldAmount        = "amount"
	FieldStatus        = "status"
)

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusVoid    = "void"
)

type Payment struct {
	ID            string  `db:"id"`
	ReservationID string  `db:"reservation_id"`
	Amount        float64 `db:"amount"`
	Status        string  `db:"status"`
	model.Metadata
}
