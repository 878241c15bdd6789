// file: internals/features/finance/payments/controller/payment_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/finance/payments/dto"
	payModel "sekolahku_backend/internals/features/finance/payments/model"
	"sekolahku_backend/internals/features/finance/payments/service"
	helper "sekolahku_backend/internals/helpers"
	"sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/errs"
)

type PaymentHandler struct {
	DB *gorm.DB
}

func NewPaymentHandler(db *gorm.DB) *PaymentHandler {
	return &PaymentHandler{DB: db}
}

/* =========================
   POST /api/a/payments
========================= */

func (h *PaymentHandler) Allocate(c *fiber.Ctx) error {
	actor, err := auth.ActorID(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.AllocatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fieldErrs := helper.ValidateStruct(&req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	res, err := service.AllocatePayment(c.Context(), h.DB, req.ToInput(), actor)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if res.NoApplicableFees {
		return helper.JsonOK(c, "no applicable fees for this student and period", fiber.Map{
			"no_applicable_fees": true,
		})
	}
	return helper.JsonCreated(c, "payment allocated", dto.ToPaymentResponse(res))
}

/* =========================
   POST /api/a/payments/bulk
========================= */

func (h *PaymentHandler) BulkAllocate(c *fiber.Ctx) error {
	actor, err := auth.ActorID(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.BulkAllocateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fieldErrs := helper.ValidateStruct(&req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	res, err := service.AllocatePayments(c.Context(), h.DB, req.ToInputs(), actor)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "bulk allocation finished", res)
}

/* =========================
   PUT /api/a/payments/:id
========================= */

func (h *PaymentHandler) Edit(c *fiber.Ctx) error {
	actor, err := auth.ActorID(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payment id")
	}

	var req dto.EditPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fieldErrs := helper.ValidateStruct(&req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	res, err := service.EditPayment(c.Context(), h.DB, req.ToInput(id), actor)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "payment updated", dto.ToPaymentResponse(res))
}

/* =========================
   GET /api/a/payments/:id
========================= */

func (h *PaymentHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payment id")
	}

	var payment payModel.PaymentModel
	if err := h.DB.WithContext(c.Context()).
		First(&payment, "payment_id = ?", id).Error; err != nil {
		return helper.JsonAppError(c, errs.FromDB(err, "payment"))
	}

	var allocations []payModel.FeeAllocationModel
	if err := h.DB.WithContext(c.Context()).
		Where("fee_allocation_payment_id = ?", id).
		Find(&allocations).Error; err != nil {
		return helper.JsonAppError(c, errs.FromDB(err, "fee allocations"))
	}

	res := &service.AllocateResult{Payment: &payment, Allocations: allocations}
	return helper.JsonOK(c, "payment", dto.ToPaymentResponse(res))
}

/* =========================
   GET /api/a/students/:student_id/payments
========================= */

func (h *PaymentHandler) ListByStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student id")
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := h.DB.WithContext(c.Context()).Model(&payModel.PaymentModel{}).
		Where("payment_student_id = ?", studentID)
	if v := c.Query("academic_year_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid academic_year_id")
		}
		q = q.Where("payment_academic_year_id = ?", id)
	}
	if v := c.Query("term_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid term_id")
		}
		q = q.Where("payment_term_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonAppError(c, errs.FromDB(err, "payments"))
	}

	var rows []payModel.PaymentModel
	if err := q.Order("payment_date DESC, payment_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonAppError(c, errs.FromDB(err, "payments"))
	}

	return helper.JsonList(c, "payments", rows,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

/* =========================
   GET /api/a/students/:student_id/fee-summary
   Query: academic_year_id, term_id (required)
========================= */

func (h *PaymentHandler) Summary(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student id")
	}
	yearID, err := uuid.Parse(c.Query("academic_year_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid academic_year_id")
	}
	termID, err := uuid.Parse(c.Query("term_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid term_id")
	}

	summary, err := service.GetFeeSummary(c.Context(), h.DB, studentID, yearID, termID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "fee summary", summary)
}

/* =========================
   GET /api/a/fee-summaries
   Cohort statement. Query: academic_year_id, term_id (required),
   grade_id, class_id (optional)
========================= */

func (h *PaymentHandler) Summaries(c *fiber.Ctx) error {
	yearID, err := uuid.Parse(c.Query("academic_year_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid academic_year_id")
	}
	termID, err := uuid.Parse(c.Query("term_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid term_id")
	}

	filter := service.SummaryFilter{AcademicYearID: yearID, TermID: termID}
	if v := c.Query("grade_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid grade_id")
		}
		filter.GradeID = &id
	}
	if v := c.Query("class_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid class_id")
		}
		filter.ClassID = &id
	}

	summaries, err := service.GetFeeSummaries(c.Context(), h.DB, filter)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "fee summaries", summaries)
}

/* =========================
   GET /api/a/students/:student_id/outstanding
========================= */

func (h *PaymentHandler) Outstanding(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student id")
	}
	yearID, err := uuid.Parse(c.Query("academic_year_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid academic_year_id")
	}
	termID, err := uuid.Parse(c.Query("term_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid term_id")
	}

	rows, err := service.ListOutstanding(c.Context(), h.DB, studentID, yearID, termID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "outstanding obligations", rows)
}

/* =========================
   GET /api/a/students/:student_id/credit
========================= */

func (h *PaymentHandler) CreditBalance(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student id")
	}

	balance, err := service.CreditBalanceIDR(c.Context(), h.DB, studentID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var units []payModel.ExcessFeeModel
	if err := h.DB.WithContext(c.Context()).
		Where("excess_fee_student_id = ?", studentID).
		Where("excess_fee_is_used = FALSE").
		Order("excess_fee_created_at ASC").
		Find(&units).Error; err != nil {
		return helper.JsonAppError(c, errs.FromDB(err, "excess fees"))
	}

	return helper.JsonOK(c, "credit balance", fiber.Map{
		"student_id":         studentID,
		"credit_balance_idr": balance,
		"units":              units,
	})
}
