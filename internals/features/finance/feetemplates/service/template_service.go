// file: internals/features/finance/feetemplates/service/template_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	auditService "sekolahku_backend/internals/features/finance/audit/service"
	tplModel "sekolahku_backend/internals/features/finance/feetemplates/model"
	"sekolahku_backend/internals/helpers/errs"
)

/* ===========================================================
   TEMPLATE LIFECYCLE
   Pricing edits bump the version and write an immutable
   snapshot, so historical statements stay reconstructible.
=========================================================== */

func CreateTemplate(ctx context.Context, db *gorm.DB, m *tplModel.FeeTemplateModel, performedBy uuid.UUID) error {
	if m.FeeTemplateBaseAmountIDR < 0 {
		return errs.Validation("fee_template_base_amount_idr", "base amount must be non-negative")
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return errs.FromDB(err, "fee template")
		}
		if err := snapshotVersion(tx, m, performedBy); err != nil {
			return err
		}
		return auditService.Log(tx, auditService.Entry{
			EntityType:  "fee_template",
			EntityID:    m.FeeTemplateID,
			Action:      "template.create",
			Changes:     map[string]any{"after": m},
			PerformedBy: performedBy,
		})
	})
}

// TemplateUpdate carries only the mutable columns; nil means keep.
// DueDate is doubly indirect: the outer nil keeps the stored value,
// an inner nil clears the date.
type TemplateUpdate struct {
	BaseAmountIDR *int64
	GradeIDs      *[]string
	ClassIDs      *[]string
	CategoryIDs   *[]string
	DueDate       **time.Time
	IsActive      *bool
	Note          *string
}

// UpdateTemplate applies a partial update. Any change to pricing or
// scope bumps the version and snapshots the new shape.
func UpdateTemplate(ctx context.Context, db *gorm.DB, templateID uuid.UUID, upd TemplateUpdate, performedBy uuid.UUID) (*tplModel.FeeTemplateModel, error) {
	var row tplModel.FeeTemplateModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, "fee_template_id = ?", templateID).Error; err != nil {
			return errs.FromDB(err, "fee template")
		}
		before := row

		versioned := false
		if upd.BaseAmountIDR != nil && *upd.BaseAmountIDR != row.FeeTemplateBaseAmountIDR {
			if *upd.BaseAmountIDR < 0 {
				return errs.Validation("fee_template_base_amount_idr", "base amount must be non-negative")
			}
			row.FeeTemplateBaseAmountIDR = *upd.BaseAmountIDR
			versioned = true
		}
		if upd.GradeIDs != nil {
			row.FeeTemplateGradeIDs = *upd.GradeIDs
			versioned = true
		}
		if upd.ClassIDs != nil {
			row.FeeTemplateClassIDs = *upd.ClassIDs
			versioned = true
		}
		if upd.CategoryIDs != nil {
			row.FeeTemplateCategoryIDs = *upd.CategoryIDs
			versioned = true
		}
		if upd.DueDate != nil {
			row.FeeTemplateDueDate = *upd.DueDate
			versioned = true
		}
		if upd.IsActive != nil {
			row.FeeTemplateIsActive = *upd.IsActive
		}
		if upd.Note != nil {
			row.FeeTemplateNote = upd.Note
		}

		if versioned {
			row.FeeTemplateVersion++
		}

		if err := tx.Model(&tplModel.FeeTemplateModel{}).
			Where("fee_template_id = ?", row.FeeTemplateID).
			Updates(map[string]any{
				"fee_template_base_amount_idr": row.FeeTemplateBaseAmountIDR,
				"fee_template_grade_ids":       row.FeeTemplateGradeIDs,
				"fee_template_class_ids":       row.FeeTemplateClassIDs,
				"fee_template_category_ids":    row.FeeTemplateCategoryIDs,
				"fee_template_due_date":        row.FeeTemplateDueDate,
				"fee_template_is_active":       row.FeeTemplateIsActive,
				"fee_template_version":         row.FeeTemplateVersion,
				"fee_template_note":            row.FeeTemplateNote,
			}).Error; err != nil {
			return errs.FromDB(err, "fee template")
		}

		if versioned {
			if err := snapshotVersion(tx, &row, performedBy); err != nil {
				return err
			}
		}

		return auditService.Log(tx, auditService.Entry{
			EntityType:  "fee_template",
			EntityID:    row.FeeTemplateID,
			Action:      "template.update",
			Changes:     map[string]any{"before": before, "after": row},
			PerformedBy: performedBy,
		})
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// DeactivateTemplate retires a template from future resolution runs.
// Existing obligations and history are untouched.
func DeactivateTemplate(ctx context.Context, db *gorm.DB, templateID uuid.UUID, performedBy uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&tplModel.FeeTemplateModel{}).
			Where("fee_template_id = ?", templateID).
			Where("fee_template_is_active = TRUE").
			Update("fee_template_is_active", false)
		if res.Error != nil {
			return errs.FromDB(res.Error, "fee template")
		}
		if res.RowsAffected == 0 {
			return errs.NotFound("active fee template not found")
		}
		return auditService.Log(tx, auditService.Entry{
			EntityType:  "fee_template",
			EntityID:    templateID,
			Action:      "template.deactivate",
			PerformedBy: performedBy,
		})
	})
}

func snapshotVersion(tx *gorm.DB, m *tplModel.FeeTemplateModel, performedBy uuid.UUID) error {
	snap := tplModel.FeeTemplateVersionModel{
		FeeTemplateVersionTemplateID:    m.FeeTemplateID,
		FeeTemplateVersionNumber:        m.FeeTemplateVersion,
		FeeTemplateVersionBaseAmountIDR: m.FeeTemplateBaseAmountIDR,
		FeeTemplateVersionGradeIDs:      m.FeeTemplateGradeIDs,
		FeeTemplateVersionClassIDs:      m.FeeTemplateClassIDs,
		FeeTemplateVersionCategoryIDs:   m.FeeTemplateCategoryIDs,
		FeeTemplateVersionDueDate:       m.FeeTemplateDueDate,
		FeeTemplateVersionCreatedBy:     performedBy,
	}
	if err := tx.Create(&snap).Error; err != nil {
		return errs.FromDB(err, "fee template version")
	}
	return nil
}
