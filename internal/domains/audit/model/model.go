package model

import "time"

const (
	TableName  = "audit_logs"
	EntityName = "audit_log"

	FieldID          = "id"
	FieldEntityID    = "entity_id"
	FieldEntityType  = "entity_type"
	FieldAction      = "action"
	FieldPerformedBy = "performed_by"
	FieldCreatedAt   = "created_at"
)

type AuditLog struct {
	ID          string    `db:"id"`
	EntityID    string    `db:"entity_id"`
	EntityType  string    `db:"entity_type"`
	Action      string    `db:"action"`
	PerformedBy string    `db:"performed_by"`
	CreatedAt   time.Time `db:"created_at"`
}
