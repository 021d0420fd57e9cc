// file: internals/features/workorders/master_work_orders/controller/master_work_order_controller.go
package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sdc_backend/internals/features/workorders/master_work_orders/dto"
	"sdc_backend/internals/features/workorders/master_work_orders/service"
	helper "sdc_backend/internals/helpers"
	"sdc_backend/internals/helpers/apperr"
)

type MasterWorkOrderController struct {
	Svc *service.Service
}

func NewMasterWorkOrderController(db *gorm.DB) *MasterWorkOrderController {
	return &MasterWorkOrderController{Svc: service.New(db)}
}

// POST /api/a/work-orders
func (ctl *MasterWorkOrderController) Create(c *fiber.Ctx) error {
	var req dto.CreateMasterWorkOrderRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	req.Normalize()

	out, err := ctl.Svc.CreateWorkOrder(c.UserContext(), req.ToInput())
	if err != nil {
		return apperr.Respond(c, err)
	}
	return helper.JsonCreated(c, "work order created", out)
}

// GET /api/u/work-orders
func (ctl *MasterWorkOrderController) List(c *fiber.Ctx) error {
	var q dto.ListMasterWorkOrderQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid query")
	}
	orderBy, err := helper.SafeOrderClause(c, dto.SortColumns, "created_at")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	paging := helper.ResolvePaging(c, 20, 100)

	rows, total, err := ctl.Svc.ListWorkOrders(c.UserContext(), service.ListFilter{
		Status:  q.Status,
		Search:  q.Q,
		OrderBy: orderBy,
		Paging:  paging,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}
	pg := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "ok", rows, &pg)
}

// GET /api/u/work-orders/:id
func (ctl *MasterWorkOrderController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	out, err := ctl.Svc.GetWorkOrder(c.UserContext(), id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

// POST /api/a/work-orders/:id/complete
func (ctl *MasterWorkOrderController) Complete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return apperr.Respond(c, err)
	}
	actor, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	out, err := ctl.Svc.CompleteWorkOrder(c.UserContext(), id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	log.Printf("[WorkOrder] %s completed by user %s", id, actor)
	return helper.JsonOK(c, "work order completed", out)
}
