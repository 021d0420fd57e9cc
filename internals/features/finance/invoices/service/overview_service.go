package service

import (
	"context"

	"github.com/google/uuid"

	woModel "sdc_backend/internals/features/workorders/master_work_orders/model"
	"sdc_backend/internals/helpers/apperr"
)

// Figures are the money columns of the financial overview.
type Figures struct {
	ContractValue float64 `json:"contract_value"`
	Invoiced      float64 `json:"invoiced"`
	Paid          float64 `json:"paid"`
	Outstanding   float64 `json:"outstanding"`
}

type WorkOrderFigures struct {
	WorkOrderID     uuid.UUID `json:"work_order_id"`
	WorkOrderNumber string    `json:"work_order_number"`
	Status          string    `json:"status"`
	Figures
}

type Overview struct {
	Totals       Figures            `json:"totals"`
	PerWorkOrder []WorkOrderFigures `json:"per_work_order"`
}

type contractRow struct {
	WorkOrderID uuid.UUID `gorm:"column:work_order_id"`
	Value       float64   `gorm:"column:value"`
}

type invoiceSumRow struct {
	WorkOrderID uuid.UUID `gorm:"column:work_order_id"`
	Invoiced    float64   `gorm:"column:invoiced"`
	Paid        float64   `gorm:"column:paid"`
}

// FinancialOverview totals contract value (SDC snapshots), invoiced (issued+paid)
// and paid amounts per work order. Drafts and cancelled invoices are not counted.
func (s *Service) FinancialOverview(ctx context.Context, workOrderID *uuid.UUID) (*Overview, error) {
	db := s.DB.WithContext(ctx)

	var wos []woModel.MasterWorkOrderModel
	q := db.Select("master_work_order_id, master_work_order_number, master_work_order_status").
		Order("master_work_order_number ASC")
	if workOrderID != nil {
		q = q.Where("master_work_order_id = ?", *workOrderID)
	}
	if err := q.Find(&wos).Error; err != nil {
		return nil, err
	}
	if workOrderID != nil && len(wos) == 0 {
		return nil, apperr.NotFound("work order %s not found", *workOrderID)
	}

	out := &Overview{PerWorkOrder: make([]WorkOrderFigures, 0, len(wos))}
	if len(wos) == 0 {
		return out, nil
	}
	ids := make([]uuid.UUID, 0, len(wos))
	for _, w := range wos {
		ids = append(ids, w.MasterWorkOrderID)
	}

	var contracts []contractRow
	if err := db.Table("sdcs").
		Select("sdc_work_order_id AS work_order_id, COALESCE(SUM(sdc_contract_value), 0) AS value").
		Where("sdc_work_order_id IN ?", ids).
		Group("sdc_work_order_id").
		Scan(&contracts).Error; err != nil {
		return nil, err
	}
	var sums []invoiceSumRow
	if err := db.Table("invoices").
		Select(`invoice_work_order_id AS work_order_id,
			COALESCE(SUM(CASE WHEN invoice_status IN ('issued','paid') THEN invoice_amount ELSE 0 END), 0) AS invoiced,
			COALESCE(SUM(CASE WHEN invoice_status = 'paid' THEN invoice_amount ELSE 0 END), 0) AS paid`).
		Where("invoice_work_order_id IN ?", ids).
		Group("invoice_work_order_id").
		Scan(&sums).Error; err != nil {
		return nil, err
	}

	contractBy := make(map[uuid.UUID]float64, len(contracts))
	for _, c := range contracts {
		contractBy[c.WorkOrderID] = c.Value
	}
	sumBy := make(map[uuid.UUID]invoiceSumRow, len(sums))
	for _, r := range sums {
		sumBy[r.WorkOrderID] = r
	}

	for _, w := range wos {
		f := Figures{
			ContractValue: round2(contractBy[w.MasterWorkOrderID]),
			Invoiced:      round2(sumBy[w.MasterWorkOrderID].Invoiced),
			Paid:          round2(sumBy[w.MasterWorkOrderID].Paid),
		}
		f.Outstanding = round2(f.Invoiced - f.Paid)
		out.PerWorkOrder = append(out.PerWorkOrder, WorkOrderFigures{
			WorkOrderID:     w.MasterWorkOrderID,
			WorkOrderNumber: w.MasterWorkOrderNumber,
			Status:          string(w.MasterWorkOrderStatus),
			Figures:         f,
		})
		out.Totals.ContractValue += f.ContractValue
		out.Totals.Invoiced += f.Invoiced
		out.Totals.Paid += f.Paid
	}
	out.Totals.ContractValue = round2(out.Totals.ContractValue)
	out.Totals.Invoiced = round2(out.Totals.Invoiced)
	out.Totals.Paid = round2(out.Totals.Paid)
	out.Totals.Outstanding = round2(out.Totals.Invoiced - out.Totals.Paid)
	return out, nil
}
