// file: internals/features/finance/feetemplates/controller/fee_template_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/finance/feetemplates/dto"
	tplModel "sekolahku_backend/internals/features/finance/feetemplates/model"
	"sekolahku_backend/internals/features/finance/feetemplates/service"
	helper "sekolahku_backend/internals/helpers"
	"sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/errs"
)

type FeeTemplateHandler struct {
	DB *gorm.DB
}

func NewFeeTemplateHandler(db *gorm.DB) *FeeTemplateHandler {
	return &FeeTemplateHandler{DB: db}
}

/* =========================
   POST /api/a/fee-templates
========================= */

func (h *FeeTemplateHandler) Create(c *fiber.Ctx) error {
	actor, err := auth.ActorID(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.CreateFeeTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fieldErrs := helper.ValidateStruct(&req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	m := req.ToModel()
	if err := service.CreateTemplate(c.Context(), h.DB, m, actor); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "fee template created", dto.ToFeeTemplateResponse(m))
}

/* =========================
   PATCH /api/a/fee-templates/:id
========================= */

func (h *FeeTemplateHandler) Update(c *fiber.Ctx) error {
	actor, err := auth.ActorID(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid fee template id")
	}

	var req dto.UpdateFeeTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fieldErrs := helper.ValidateStruct(&req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	row, err := service.UpdateTemplate(c.Context(), h.DB, id, req.ToUpdate(), actor)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "fee template updated", dto.ToFeeTemplateResponse(row))
}

/* =========================
   DELETE /api/a/fee-templates/:id
   Retirement, not removal.
========================= */

func (h *FeeTemplateHandler) Deactivate(c *fiber.Ctx) error {
	actor, err := auth.ActorID(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid fee template id")
	}

	if err := service.DeactivateTemplate(c.Context(), h.DB, id, actor); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "fee template deactivated", fiber.Map{"id": id})
}

/* =========================
   GET /api/a/fee-templates
   Filters: academic_year_id, term_id, fee_type_id, is_active
========================= */

func (h *FeeTemplateHandler) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := h.DB.WithContext(c.Context()).Model(&tplModel.FeeTemplateModel{})
	if v := c.Query("academic_year_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid academic_year_id")
		}
		q = q.Where("fee_template_academic_year_id = ?", id)
	}
	if v := c.Query("term_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid term_id")
		}
		q = q.Where("fee_template_term_id = ?", id)
	}
	if v := c.Query("fee_type_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid fee_type_id")
		}
		q = q.Where("fee_template_fee_type_id = ?", id)
	}
	if v := c.Query("is_active"); v != "" {
		q = q.Where("fee_template_is_active = ?", v == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonAppError(c, errs.FromDB(err, "fee templates"))
	}

	var rows []tplModel.FeeTemplateModel
	if err := q.Order("fee_template_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonAppError(c, errs.FromDB(err, "fee templates"))
	}

	return helper.JsonList(c, "fee templates",
		dto.ToFeeTemplateResponses(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

/* =========================
   GET /api/a/fee-templates/:id
========================= */

func (h *FeeTemplateHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid fee template id")
	}

	var row tplModel.FeeTemplateModel
	if err := h.DB.WithContext(c.Context()).
		First(&row, "fee_template_id = ?", id).Error; err != nil {
		return helper.JsonAppError(c, errs.FromDB(err, "fee template"))
	}
	return helper.JsonOK(c, "fee template", dto.ToFeeTemplateResponse(&row))
}

/* =========================
   GET /api/a/fee-templates/:id/versions
========================= */

func (h *FeeTemplateHandler) ListVersions(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid fee template id")
	}

	var rows []tplModel.FeeTemplateVersionModel
	if err := h.DB.WithContext(c.Context()).
		Where("fee_template_version_template_id = ?", id).
		Order("fee_template_version_number DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonAppError(c, errs.FromDB(err, "fee template versions"))
	}
	return helper.JsonOK(c, "fee template versions", rows)
}

/* =========================
   GET /api/a/students/:student_id/applicable-fees
   Query: academic_year_id, term_id (required)
========================= */

func (h *FeeTemplateHandler) ResolveForStudent(c *fiber.Ctx) error {
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

	attrs, err := service.LoadStudentAttributes(c.Context(), h.DB, studentID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	rows, err := service.ResolveApplicableFees(c.Context(), h.DB, attrs, yearID, termID, nil)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "applicable fees", dto.ToFeeTemplateResponses(rows))
}
