// file: internals/features/finance/feetemplates/controller/fee_type_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	tplModel "sekolahku_backend/internals/features/finance/feetemplates/model"
	helper "sekolahku_backend/internals/helpers"
	"sekolahku_backend/internals/helpers/errs"
)

type FeeTypeHandler struct {
	DB *gorm.DB
}

func NewFeeTypeHandler(db *gorm.DB) *FeeTypeHandler {
	return &FeeTypeHandler{DB: db}
}

type createFeeTypeRequest struct {
	SchoolID         *uuid.UUID `json:"school_id"`
	Name             string     `json:"name" validate:"required,min=2,max=120"`
	DefaultAmountIDR *int64     `json:"default_amount_idr" validate:"omitempty,gte=0"`
}

/* =========================
   POST /api/a/fee-types
========================= */

func (h *FeeTypeHandler) Create(c *fiber.Ctx) error {
	var req createFeeTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fieldErrs := helper.ValidateStruct(&req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	row := tplModel.FeeTypeModel{
		FeeTypeSchoolID:         req.SchoolID,
		FeeTypeName:             req.Name,
		FeeTypeDefaultAmountIDR: req.DefaultAmountIDR,
		FeeTypeIsActive:         true,
	}
	if err := h.DB.WithContext(c.Context()).Create(&row).Error; err != nil {
		return helper.JsonAppError(c, errs.FromDB(err, "fee type"))
	}
	return helper.JsonCreated(c, "fee type created", row)
}

/* =========================
   GET /api/a/fee-types
========================= */

func (h *FeeTypeHandler) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 50, 200)

	q := h.DB.WithContext(c.Context()).Model(&tplModel.FeeTypeModel{})
	if v := c.Query("school_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
		}
		q = q.Where("fee_type_school_id = ? OR fee_type_school_id IS NULL", id)
	}
	if v := c.Query("is_active"); v != "" {
		q = q.Where("fee_type_is_active = ?", v == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonAppError(c, errs.FromDB(err, "fee types"))
	}

	var rows []tplModel.FeeTypeModel
	if err := q.Order("fee_type_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonAppError(c, errs.FromDB(err, "fee types"))
	}

	return helper.JsonList(c, "fee types", rows,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
