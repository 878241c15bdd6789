// file: internals/features/finance/audit/controller/audit_log_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditModel "sekolahku_backend/internals/features/finance/audit/model"
	helper "sekolahku_backend/internals/helpers"
	"sekolahku_backend/internals/helpers/errs"
)

type AuditLogHandler struct {
	DB *gorm.DB
}

func NewAuditLogHandler(db *gorm.DB) *AuditLogHandler {
	return &AuditLogHandler{DB: db}
}

/* =========================
   GET /api/a/audit-logs
   Filters: entity_type, entity_id, action, performed_by
========================= */

func (h *AuditLogHandler) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := h.DB.WithContext(c.Context()).Model(&auditModel.AuditLogModel{})
	if v := c.Query("entity_type"); v != "" {
		q = q.Where("audit_log_entity_type = ?", v)
	}
	if v := c.Query("entity_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid entity_id")
		}
		q = q.Where("audit_log_entity_id = ?", id)
	}
	if v := c.Query("action"); v != "" {
		q = q.Where("audit_log_action = ?", v)
	}
	if v := c.Query("performed_by"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid performed_by")
		}
		q = q.Where("audit_log_performed_by = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonAppError(c, errs.FromDB(err, "audit logs"))
	}

	var rows []auditModel.AuditLogModel
	if err := q.Order("audit_log_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonAppError(c, errs.FromDB(err, "audit logs"))
	}

	return helper.JsonList(c, "audit logs", rows,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
