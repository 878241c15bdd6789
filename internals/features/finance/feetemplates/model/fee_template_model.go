// file: internals/features/finance/feetemplates/model/fee_template_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

/* ==============================
   ENUM — billing frequency
============================== */

type FeeFrequency string

const (
	FeeFrequencyOnce FeeFrequency = "once"
	FeeFrequencyTerm FeeFrequency = "per_term"
	FeeFrequencyYear FeeFrequency = "per_year"
)

/* ==============================================
   MODEL fee_templates
   Scope arrays are open-world: an empty array on
   a dimension means "applies to everyone there".
============================================== */

type FeeTemplateModel struct {
	FeeTemplateID uuid.UUID `json:"fee_template_id" gorm:"column:fee_template_id;type:uuid;default:gen_random_uuid();primaryKey"`

	FeeTemplateFeeTypeID      uuid.UUID `json:"fee_template_fee_type_id" gorm:"column:fee_template_fee_type_id;type:uuid;not null;index:idx_fee_templates_type_period,priority:1"`
	FeeTemplateAcademicYearID uuid.UUID `json:"fee_template_academic_year_id" gorm:"column:fee_template_academic_year_id;type:uuid;not null;index:idx_fee_templates_type_period,priority:2"`
	FeeTemplateTermID         uuid.UUID `json:"fee_template_term_id" gorm:"column:fee_template_term_id;type:uuid;not null;index:idx_fee_templates_type_period,priority:3"`

	FeeTemplateBaseAmountIDR int64 `json:"fee_template_base_amount_idr" gorm:"column:fee_template_base_amount_idr;type:bigint;not null;check:fee_template_base_amount_idr>=0"`

	// Scope + target
	FeeTemplateGradeIDs           pq.StringArray `json:"fee_template_grade_ids" gorm:"column:fee_template_grade_ids;type:uuid[]"`
	FeeTemplateClassIDs           pq.StringArray `json:"fee_template_class_ids" gorm:"column:fee_template_class_ids;type:uuid[]"`
	FeeTemplateCategoryIDs        pq.StringArray `json:"fee_template_category_ids" gorm:"column:fee_template_category_ids;type:uuid[]"`
	FeeTemplateSpecialProgrammeID *uuid.UUID     `json:"fee_template_special_programme_id,omitempty" gorm:"column:fee_template_special_programme_id;type:uuid"`

	FeeTemplateIsActive  bool         `json:"fee_template_is_active" gorm:"column:fee_template_is_active;type:boolean;not null;default:true;index"`
	FeeTemplateVersion   int          `json:"fee_template_version" gorm:"column:fee_template_version;type:int;not null;default:1"`
	FeeTemplateDueDate   *time.Time   `json:"fee_template_due_date,omitempty" gorm:"column:fee_template_due_date;type:date"`
	FeeTemplateFrequency FeeFrequency `json:"fee_template_frequency" gorm:"column:fee_template_frequency;type:varchar(20);not null;default:'per_term'"`

	FeeTemplateNote *string `json:"fee_template_note,omitempty" gorm:"column:fee_template_note;type:text"`

	FeeTemplateCreatedAt time.Time      `json:"fee_template_created_at" gorm:"column:fee_template_created_at;type:timestamptz;not null;autoCreateTime"`
	FeeTemplateUpdatedAt time.Time      `json:"fee_template_updated_at" gorm:"column:fee_template_updated_at;type:timestamptz;not null;autoUpdateTime"`
	FeeTemplateDeletedAt gorm.DeletedAt `json:"fee_template_deleted_at,omitempty" gorm:"column:fee_template_deleted_at;type:timestamptz;index"`
}

func (FeeTemplateModel) TableName() string { return "fee_templates" }

func (m *FeeTemplateModel) BeforeCreate(tx *gorm.DB) error {
	if m.FeeTemplateVersion == 0 {
		m.FeeTemplateVersion = 1
	}
	if m.FeeTemplateFrequency == "" {
		m.FeeTemplateFrequency = FeeFrequencyTerm
	}
	return nil
}

/* ==============================================
   MODEL fee_template_versions
   Immutable snapshot written on every edit so
   prior pricing stays reconstructible.
============================================== */

type FeeTemplateVersionModel struct {
	FeeTemplateVersionID         uuid.UUID `json:"fee_template_version_id" gorm:"column:fee_template_version_id;type:uuid;default:gen_random_uuid();primaryKey"`
	FeeTemplateVersionTemplateID uuid.UUID `json:"fee_template_version_template_id" gorm:"column:fee_template_version_template_id;type:uuid;not null;index:idx_fee_template_versions_tpl,priority:1;uniqueIndex:uniq_template_version,priority:1"`
	FeeTemplateVersionNumber     int       `json:"fee_template_version_number" gorm:"column:fee_template_version_number;type:int;not null;uniqueIndex:uniq_template_version,priority:2"`

	FeeTemplateVersionBaseAmountIDR int64          `json:"fee_template_version_base_amount_idr" gorm:"column:fee_template_version_base_amount_idr;type:bigint;not null"`
	FeeTemplateVersionGradeIDs      pq.StringArray `json:"fee_template_version_grade_ids" gorm:"column:fee_template_version_grade_ids;type:uuid[]"`
	FeeTemplateVersionClassIDs      pq.StringArray `json:"fee_template_version_class_ids" gorm:"column:fee_template_version_class_ids;type:uuid[]"`
	FeeTemplateVersionCategoryIDs   pq.StringArray `json:"fee_template_version_category_ids" gorm:"column:fee_template_version_category_ids;type:uuid[]"`
	FeeTemplateVersionDueDate       *time.Time     `json:"fee_template_version_due_date,omitempty" gorm:"column:fee_template_version_due_date;type:date"`

	FeeTemplateVersionCreatedBy uuid.UUID `json:"fee_template_version_created_by" gorm:"column:fee_template_version_created_by;type:uuid;not null"`
	FeeTemplateVersionCreatedAt time.Time `json:"fee_template_version_created_at" gorm:"column:fee_template_version_created_at;type:timestamptz;not null;autoCreateTime"`
}

func (FeeTemplateVersionModel) TableName() string { return "fee_template_versions" }
