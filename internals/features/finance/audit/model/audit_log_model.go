// file: internals/features/finance/audit/model/audit_log_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* ================================================
   MODEL: audit_logs
   Append-only. Written inside the same transaction
   as the change it describes; never updated or
   soft-deleted.
================================================ */

type AuditLogModel struct {
	AuditLogID uuid.UUID `json:"audit_log_id" gorm:"column:audit_log_id;type:uuid;default:gen_random_uuid();primaryKey"`

	AuditLogEntityType string    `json:"audit_log_entity_type" gorm:"column:audit_log_entity_type;type:varchar(40);not null;index:idx_audit_logs_entity,priority:1"`
	AuditLogEntityID   uuid.UUID `json:"audit_log_entity_id" gorm:"column:audit_log_entity_id;type:uuid;not null;index:idx_audit_logs_entity,priority:2"`

	AuditLogAction string `json:"audit_log_action" gorm:"column:audit_log_action;type:varchar(40);not null;index"`

	// Free-form before/after payload (jsonb).
	AuditLogChanges datatypes.JSON `json:"audit_log_changes,omitempty" gorm:"column:audit_log_changes;type:jsonb"`

	AuditLogPerformedBy uuid.UUID `json:"audit_log_performed_by" gorm:"column:audit_log_performed_by;type:uuid;not null;index"`

	AuditLogCreatedAt time.Time `json:"audit_log_created_at" gorm:"column:audit_log_created_at;type:timestamptz;not null;autoCreateTime;index"`
}

func (AuditLogModel) TableName() string { return "audit_logs" }

/* ================================================
   MODEL: audit_money_changes
   Companion row for audit entries whose action
   moved money, so balance drift can be traced
   without parsing the jsonb payload.
================================================ */

type AuditMoneyChangeModel struct {
	AuditMoneyChangeID uuid.UUID `json:"audit_money_change_id" gorm:"column:audit_money_change_id;type:uuid;default:gen_random_uuid();primaryKey"`

	AuditMoneyChangeAuditLogID uuid.UUID `json:"audit_money_change_audit_log_id" gorm:"column:audit_money_change_audit_log_id;type:uuid;not null;index"`

	AuditMoneyChangeDeltaIDR int64 `json:"audit_money_change_delta_idr" gorm:"column:audit_money_change_delta_idr;type:bigint;not null"`

	AuditMoneyChangeCreatedAt time.Time `json:"audit_money_change_created_at" gorm:"column:audit_money_change_created_at;type:timestamptz;not null;autoCreateTime"`
}

func (AuditMoneyChangeModel) TableName() string { return "audit_money_changes" }
