package model

import "lodge/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldRoomTypeID    = "room_type_id"
	FieldName          = "name"
	FieldStatus        = "status"
	FieldRestockTowels = "restock_towels"
	FieldRestockSoap   = "restock_soap"
	FieldImage         = "image"
	FieldActive        = "active"
)

// Room status is a function of the most recent reservation transition for the
// room, except for the housekeeping cleaning->available step.
const (
	StatusAvailable = "available"
	StatusReserved  = "reserved"
	StatusOccupied  = "occupied"
	StatusCleaning  = "cleaning"
)

type Room struct {
	ID            string `db:"id"`
	RoomTypeID    string `db:"room_type_id"`
	Name          string `db:"name"`
	Status        string `db:"status"`
	RestockTowels bool   `db:"restock_towels"`
	RestockSoap   bool   `db:"restock_soap"`
	Image         string `db:"image"`
	Active        bool   `db:"active"`
	model.Metadata
}
