package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"sdc_backend/internals/features/finance/invoices/service"
)

type CreateInvoiceRequest struct {
	WorkOrderID uuid.UUID  `json:"invoice_work_order_id" validate:"required"`
	SDCID       *uuid.UUID `json:"invoice_sdc_id"`
	Amount      *float64   `json:"invoice_amount" validate:"omitempty,gt=0"`
	DueDate     *string    `json:"invoice_due_date" validate:"omitempty,datetime=2006-01-02"`
	Notes       *string    `json:"invoice_notes" validate:"omitempty,max=2000"`
}

func (r CreateInvoiceRequest) ToInput() service.CreateInput {
	in := service.CreateInput{
		WorkOrderID: r.WorkOrderID,
		SDCID:       r.SDCID,
		Amount:      r.Amount,
	}
	if r.DueDate != nil {
		// format already checked by the validator
		if t, err := time.Parse("2006-01-02", *r.DueDate); err == nil {
			in.DueDate = &t
		}
	}
	if r.Notes != nil {
		if n := strings.TrimSpace(*r.Notes); n != "" {
			in.Notes = &n
		}
	}
	return in
}
