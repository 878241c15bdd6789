// file: internals/features/finance/audit/service/audit_service.go
package service

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	auditModel "sekolahku_backend/internals/features/finance/audit/model"
)

// Entry is one auditable event. Changes may be any JSON-marshalable
// value (typically a map with before/after keys).
type Entry struct {
	EntityType    string
	EntityID      uuid.UUID
	Action        string
	Changes       any
	PerformedBy   uuid.UUID
	MoneyDeltaIDR *int64
}

// Log appends an audit row inside the caller's transaction. The caller
// MUST pass its tx so the audit entry commits or rolls back atomically
// with the change it describes.
func Log(tx *gorm.DB, e Entry) error {
	var payload datatypes.JSON
	if e.Changes != nil {
		raw, err := json.Marshal(e.Changes)
		if err != nil {
			return fmt.Errorf("audit: marshal changes: %w", err)
		}
		payload = datatypes.JSON(raw)
	}

	row := auditModel.AuditLogModel{
		AuditLogEntityType:  e.EntityType,
		AuditLogEntityID:    e.EntityID,
		AuditLogAction:      e.Action,
		AuditLogChanges:     payload,
		AuditLogPerformedBy: e.PerformedBy,
	}
	if err := tx.Create(&row).Error; err != nil {
		return fmt.Errorf("audit: insert log: %w", err)
	}

	if e.MoneyDeltaIDR != nil {
		mc := auditModel.AuditMoneyChangeModel{
			AuditMoneyChangeAuditLogID: row.AuditLogID,
			AuditMoneyChangeDeltaIDR:   *e.MoneyDeltaIDR,
		}
		if err := tx.Create(&mc).Error; err != nil {
			return fmt.Errorf("audit: insert money change: %w", err)
		}
	}
	return nil
}
