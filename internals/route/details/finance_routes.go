// file: internals/route/details/finance_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditController "sekolahku_backend/internals/features/finance/audit/controller"
	excController "sekolahku_backend/internals/features/finance/exceptions/controller"
	tplController "sekolahku_backend/internals/features/finance/feetemplates/controller"
	payController "sekolahku_backend/internals/features/finance/payments/controller"
)

// FinanceAdminRoutes mounts the fee engine under an already
// authenticated group.
func FinanceAdminRoutes(api fiber.Router, db *gorm.DB) {
	feeTypes := tplController.NewFeeTypeHandler(db)
	templates := tplController.NewFeeTemplateHandler(db)
	exceptions := excController.NewFeeExceptionHandler(db)
	payments := payController.NewPaymentHandler(db)
	auditLogs := auditController.NewAuditLogHandler(db)

	// Fee type catalog
	api.Post("/fee-types", feeTypes.Create)
	api.Get("/fee-types", feeTypes.List)

	// Fee templates
	api.Post("/fee-templates", templates.Create)
	api.Get("/fee-templates", templates.List)
	api.Get("/fee-templates/:id", templates.GetByID)
	api.Patch("/fee-templates/:id", templates.Update)
	api.Delete("/fee-templates/:id", templates.Deactivate)
	api.Get("/fee-templates/:id/versions", templates.ListVersions)

	// Exceptions
	api.Post("/fee-exceptions", exceptions.Create)
	api.Post("/fee-exceptions/:id/cancel", exceptions.Cancel)

	// Payments
	api.Post("/payments", payments.Allocate)
	api.Post("/payments/bulk", payments.BulkAllocate)
	api.Get("/payments/:id", payments.GetByID)
	api.Put("/payments/:id", payments.Edit)

	// Cohort statements
	api.Get("/fee-summaries", payments.Summaries)

	// Per-student views
	api.Get("/students/:student_id/applicable-fees", templates.ResolveForStudent)
	api.Get("/students/:student_id/fee-exceptions", exceptions.ListByStudent)
	api.Get("/students/:student_id/fee-exceptions/active", exceptions.GetActive)
	api.Get("/students/:student_id/payments", payments.ListByStudent)
	api.Get("/students/:student_id/fee-summary", payments.Summary)
	api.Get("/students/:student_id/outstanding", payments.Outstanding)
	api.Get("/students/:student_id/credit", payments.CreditBalance)

	// Audit trail
	api.Get("/audit-logs", auditLogs.List)
}
