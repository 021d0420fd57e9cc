// file: internals/features/finance/invoices/controller/invoice_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sdc_backend/internals/features/finance/invoices/dto"
	"sdc_backend/internals/features/finance/invoices/model"
	"sdc_backend/internals/features/finance/invoices/service"
	helper "sdc_backend/internals/helpers"
	"sdc_backend/internals/helpers/apperr"
)

type InvoiceController struct {
	Svc *service.Service
}

func NewInvoiceController(db *gorm.DB) *InvoiceController {
	return &InvoiceController{Svc: service.New(db)}
}

// POST /api/a/invoices
func (ctl *InvoiceController) Create(c *fiber.Ctx) error {
	var req dto.CreateInvoiceRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	out, err := ctl.Svc.CreateInvoice(c.UserContext(), req.ToInput())
	if err != nil {
		return apperr.Respond(c, err)
	}
	return helper.JsonCreated(c, "invoice created", out)
}

// GET /api/a/invoices?work_order_id=&status=
func (ctl *InvoiceController) List(c *fiber.Ctx) error {
	woID, err := helper.ParseOptionalUUIDQuery(c, "work_order_id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	paging := helper.ResolvePaging(c, 20, 200)
	rows, total, err := ctl.Svc.List(c.UserContext(), service.ListFilter{
		WorkOrderID: woID,
		Status:      strings.ToLower(strings.TrimSpace(c.Query("status"))),
		Paging:      paging,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}
	pg := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "ok", rows, &pg)
}

func (ctl *InvoiceController) action(c *fiber.Ctx, msg string, fn func(*fiber.Ctx, uuid.UUID) (*model.InvoiceModel, error)) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	out, err := fn(c, id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return helper.JsonUpdated(c, msg, out)
}

// POST /api/a/invoices/:id/issue
func (ctl *InvoiceController) Issue(c *fiber.Ctx) error {
	return ctl.action(c, "invoice issued", func(c *fiber.Ctx, id uuid.UUID) (*model.InvoiceModel, error) {
		return ctl.Svc.Issue(c.UserContext(), id)
	})
}

// POST /api/a/invoices/:id/pay
func (ctl *InvoiceController) Pay(c *fiber.Ctx) error {
	return ctl.action(c, "invoice paid", func(c *fiber.Ctx, id uuid.UUID) (*model.InvoiceModel, error) {
		return ctl.Svc.MarkPaid(c.UserContext(), id)
	})
}

// POST /api/a/invoices/:id/cancel
func (ctl *InvoiceController) Cancel(c *fiber.Ctx) error {
	return ctl.action(c, "invoice cancelled", func(c *fiber.Ctx, id uuid.UUID) (*model.InvoiceModel, error) {
		return ctl.Svc.Cancel(c.UserContext(), id)
	})
}

// GET /api/u/finance/overview?work_order_id=
func (ctl *InvoiceController) Overview(c *fiber.Ctx) error {
	woID, err := helper.ParseOptionalUUIDQuery(c, "work_order_id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	out, err := ctl.Svc.FinancialOverview(c.UserContext(), woID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}
