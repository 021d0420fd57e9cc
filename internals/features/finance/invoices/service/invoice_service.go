// file: internals/features/finance/invoices/service/invoice_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	sdcModel "sdc_backend/internals/features/centers/sdcs/model"
	model "sdc_backend/internals/features/finance/invoices/model"
	woModel "sdc_backend/internals/features/workorders/master_work_orders/model"
	helper "sdc_backend/internals/helpers"
	"sdc_backend/internals/helpers/apperr"
)

type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{DB: db}
}

type CreateInput struct {
	WorkOrderID uuid.UUID
	SDCID       *uuid.UUID
	Amount      *float64
	DueDate     *time.Time
	Notes       *string
}

type ListFilter struct {
	WorkOrderID *uuid.UUID
	Status      string
	Paging      helper.Paging
}

// FormatInvoiceNumber renders INV-<work order number>-<seq>, seq zero-padded to 3.
func FormatInvoiceNumber(workOrderNumber string, seq int) string {
	return fmt.Sprintf("INV-%s-%03d", workOrderNumber, seq)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// CreateInvoice raises a draft invoice. Without an explicit amount the SDC's
// contract value is billed. A completed work order only accepts invoices for
// one of its existing SDCs.
func (s *Service) CreateInvoice(ctx context.Context, in CreateInput) (*model.InvoiceModel, error) {
	var out model.InvoiceModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// the work order lock serializes sequence numbers
		var wo woModel.MasterWorkOrderModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("master_work_order_id, master_work_order_number, master_work_order_status").
			Where("master_work_order_id = ?", in.WorkOrderID).
			Take(&wo).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("work order %s not found", in.WorkOrderID)
			}
			return err
		}
		if !wo.IsActive() && in.SDCID == nil {
			return apperr.New(apperr.KindWorkOrderClosed, "work order %s is %s; invoice an SDC instead", wo.MasterWorkOrderNumber, wo.MasterWorkOrderStatus)
		}

		var amount float64
		if in.SDCID != nil {
			var sdc sdcModel.SDCModel
			if err := tx.Select("sdc_id, sdc_work_order_id, sdc_contract_value").
				Where("sdc_id = ?", *in.SDCID).
				Take(&sdc).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("sdc %s not found", *in.SDCID)
				}
				return err
			}
			if sdc.SDCWorkOrderID != wo.MasterWorkOrderID {
				return apperr.Validation("sdc %s does not belong to work order %s", sdc.SDCID, wo.MasterWorkOrderNumber)
			}
			amount = sdc.SDCContractValue
		}
		if in.Amount != nil {
			amount = *in.Amount
		}
		amount = round2(amount)
		if amount <= 0 {
			return apperr.Validation("amount must be greater than 0")
		}

		var maxSeq int
		if err := tx.Model(&model.InvoiceModel{}).
			Select("COALESCE(MAX(invoice_seq), 0)").
			Where("invoice_work_order_id = ?", wo.MasterWorkOrderID).
			Scan(&maxSeq).Error; err != nil {
			return err
		}

		out = model.InvoiceModel{
			InvoiceWorkOrderID: wo.MasterWorkOrderID,
			InvoiceSDCID:       in.SDCID,
			InvoiceSeq:         maxSeq + 1,
			InvoiceNumber:      FormatInvoiceNumber(wo.MasterWorkOrderNumber, maxSeq+1),
			InvoiceAmount:      amount,
			InvoiceStatus:      model.InvoiceStatusDraft,
			InvoiceNotes:       in.Notes,
			InvoiceDueDate:     in.DueDate,
		}
		if err := tx.Create(&out).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return apperr.New(apperr.KindConflict, "invoice number %s already exists", out.InvoiceNumber)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[Invoice] created %s amount=%.2f", out.InvoiceNumber, out.InvoiceAmount)
	return &out, nil
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, to model.InvoiceStatus) (*model.InvoiceModel, error) {
	var m model.InvoiceModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("invoice_id = ?", id).
			Take(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("invoice %s not found", id)
			}
			return err
		}
		if !m.InvoiceStatus.CanTransition(to) {
			return apperr.New(apperr.KindInvalidTransition, "invoice %s cannot move from %s to %s", m.InvoiceNumber, m.InvoiceStatus, to).
				WithDetail("from", m.InvoiceStatus).
				WithDetail("to", to)
		}

		now := time.Now()
		updates := map[string]any{"invoice_status": to}
		switch to {
		case model.InvoiceStatusIssued:
			updates["invoice_issued_at"] = now
			m.InvoiceIssuedAt = &now
		case model.InvoiceStatusPaid:
			updates["invoice_paid_at"] = now
			m.InvoicePaidAt = &now
		case model.InvoiceStatusCancelled:
			updates["invoice_cancelled_at"] = now
			m.InvoiceCancelledAt = &now
		}
		if err := tx.Model(&m).Updates(updates).Error; err != nil {
			return err
		}
		m.InvoiceStatus = to
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[Invoice] %s -> %s", m.InvoiceNumber, to)
	return &m, nil
}

func (s *Service) Issue(ctx context.Context, id uuid.UUID) (*model.InvoiceModel, error) {
	return s.transition(ctx, id, model.InvoiceStatusIssued)
}

func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID) (*model.InvoiceModel, error) {
	return s.transition(ctx, id, model.InvoiceStatusPaid)
}

func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*model.InvoiceModel, error) {
	return s.transition(ctx, id, model.InvoiceStatusCancelled)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]model.InvoiceModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.InvoiceModel{})
	if f.WorkOrderID != nil {
		q = q.Where("invoice_work_order_id = ?", *f.WorkOrderID)
	}
	if f.Status != "" {
		if !model.InvoiceStatus(f.Status).Valid() {
			return nil, 0, apperr.Validation("unknown invoice status %q", f.Status)
		}
		q = q.Where("invoice_status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	rows := make([]model.InvoiceModel, 0)
	if err := q.Order("invoice_created_at DESC, invoice_number DESC").
		Limit(f.Paging.Limit).Offset(f.Paging.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
