package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	auditcontext "github.com/smallbiznis/hoteldesk/internal/auditcontext"
	"gorm.io/datatypes"
)

type EntityType string

const (
	EntityBooking EntityType = "booking"
	EntityStock   EntityType = "stock"
)

type Action string

const (
	ActionCreated  Action = "created"
	ActionUpdated  Action = "updated"
	ActionDeleted  Action = "deleted"
	ActionRestored Action = "restored"
	ActionAdjusted Action = "adjusted"
)

// Change is one field level difference. A nil OldValue marks an initial value.
type Change struct {
	Key      string `json:"key"`
	OldValue any    `json:"oldValue"`
	NewValue any    `json:"newValue"`
}

// Record is an immutable audit trail row. It is never updated or deleted.
type Record struct {
	ID         snowflake.ID                           `gorm:"primaryKey" json:"id"`
	EntityType EntityType                             `gorm:"type:varchar(32);not null;index:idx_audit_entity,priority:1" json:"entityType"`
	EntityID   snowflake.ID                           `gorm:"not null;index:idx_audit_entity,priority:2" json:"entityId"`
	Action     Action                                 `gorm:"type:varchar(32);not null" json:"action"`
	Changes    datatypes.JSONSlice[Change]            `gorm:"not null" json:"changes"`
	Actor      datatypes.JSONType[auditcontext.Actor] `gorm:"not null" json:"actor"`
	Note       string                                 `gorm:"type:text" json:"note"`
	RequestID  string                                 `gorm:"type:varchar(64)" json:"requestId,omitempty"`
	CreatedAt  time.Time                              `gorm:"not null;index:idx_audit_entity,priority:3" json:"createdAt"`
}

func (Record) TableName() string { return "audit_records" }

// Entry is what callers hand to the audit service. The acting user and the
// request id are taken from the context.
type Entry struct {
	EntityType EntityType
	EntityID   snowflake.ID
	Action     Action
	Changes    []Change
	Note       string
}
