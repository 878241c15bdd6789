// file: internals/features/finance/feetemplates/model/fee_type_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeeTypeModel is the catalog entry a template prices. The optional
// school id scopes a type to one school; NULL means platform-wide.
type FeeTypeModel struct {
	FeeTypeID       uuid.UUID  `json:"fee_type_id" gorm:"column:fee_type_id;type:uuid;default:gen_random_uuid();primaryKey"`
	FeeTypeSchoolID *uuid.UUID `json:"fee_type_school_id,omitempty" gorm:"column:fee_type_school_id;type:uuid;index"`

	FeeTypeName             string `json:"fee_type_name" gorm:"column:fee_type_name;type:varchar(120);not null"`
	FeeTypeDefaultAmountIDR *int64 `json:"fee_type_default_amount_idr,omitempty" gorm:"column:fee_type_default_amount_idr;type:bigint"`
	FeeTypeIsActive         bool   `json:"fee_type_is_active" gorm:"column:fee_type_is_active;type:boolean;not null;default:true;index"`

	FeeTypeCreatedAt time.Time      `json:"fee_type_created_at" gorm:"column:fee_type_created_at;type:timestamptz;not null;autoCreateTime"`
	FeeTypeUpdatedAt time.Time      `json:"fee_type_updated_at" gorm:"column:fee_type_updated_at;type:timestamptz;not null;autoUpdateTime"`
	FeeTypeDeletedAt gorm.DeletedAt `json:"fee_type_deleted_at,omitempty" gorm:"column:fee_type_deleted_at;type:timestamptz;index"`
}

func (FeeTypeModel) TableName() string { return "fee_types" }
