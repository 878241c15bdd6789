// file: internals/features/finance/exceptions/controller/fee_exception_controller.go
package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/finance/exceptions/dto"
	excModel "sekolahku_backend/internals/features/finance/exceptions/model"
	"sekolahku_backend/internals/features/finance/exceptions/service"
	helper "sekolahku_backend/internals/helpers"
	"sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/errs"
)

type FeeExceptionHandler struct {
	DB *gorm.DB
}

func NewFeeExceptionHandler(db *gorm.DB) *FeeExceptionHandler {
	return &FeeExceptionHandler{DB: db}
}

/* =========================
   POST /api/a/fee-exceptions
========================= */

func (h *FeeExceptionHandler) Create(c *fiber.Ctx) error {
	actor, err := auth.ActorID(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.CreateFeeExceptionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fieldErrs := helper.ValidateStruct(&req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	m := req.ToModel(actor)
	if err := service.CreateException(c.Context(), h.DB, m, actor); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "fee exception created", dto.ToFeeExceptionResponse(m))
}

/* =========================
   POST /api/a/fee-exceptions/:id/cancel
========================= */

func (h *FeeExceptionHandler) Cancel(c *fiber.Ctx) error {
	actor, err := auth.ActorID(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid fee exception id")
	}

	row, err := service.CancelException(c.Context(), h.DB, id, actor)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "fee exception cancelled", dto.ToFeeExceptionResponse(row))
}

/* =========================
   GET /api/a/students/:student_id/fee-exceptions
   Query: status (optional), fee_template_id (optional)
========================= */

func (h *FeeExceptionHandler) ListByStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student id")
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := h.DB.WithContext(c.Context()).Model(&excModel.FeeExceptionModel{}).
		Where("fee_exception_student_id = ?", studentID)
	if v := c.Query("status"); v != "" {
		q = q.Where("fee_exception_status = ?", v)
	}
	if v := c.Query("fee_template_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid fee_template_id")
		}
		q = q.Where("fee_exception_fee_template_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonAppError(c, errs.FromDB(err, "fee exceptions"))
	}

	var rows []excModel.FeeExceptionModel
	if err := q.Order("fee_exception_start_date DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonAppError(c, errs.FromDB(err, "fee exceptions"))
	}

	return helper.JsonList(c, "fee exceptions",
		dto.ToFeeExceptionResponses(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

/* =========================
   GET /api/a/students/:student_id/fee-exceptions/active
   Query: fee_template_id (required), on (optional date, default today)
========================= */

func (h *FeeExceptionHandler) GetActive(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student id")
	}
	templateID, err := uuid.Parse(c.Query("fee_template_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid fee_template_id")
	}

	on := time.Now()
	if v := c.Query("on"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid on date, use YYYY-MM-DD")
		}
		on = parsed
	}

	row, err := service.GetActiveException(c.Context(), h.DB, studentID, templateID, on)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if row == nil {
		return helper.JsonOK(c, "no active fee exception", nil)
	}
	return helper.JsonOK(c, "active fee exception", dto.ToFeeExceptionResponse(row))
}
