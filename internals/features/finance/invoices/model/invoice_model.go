// file: internals/features/finance/invoices/model/invoice_model.go
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Enum invoice_status
   ========================= */

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusIssued    InvoiceStatus = "issued"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusIssued, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// CanTransition: draft→issued→paid, draft|issued→cancelled.
func (s InvoiceStatus) CanTransition(to InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft:
		return to == InvoiceStatusIssued || to == InvoiceStatusCancelled
	case InvoiceStatusIssued:
		return to == InvoiceStatusPaid || to == InvoiceStatusCancelled
	case InvoiceStatusPaid, InvoiceStatusCancelled:
		return false
	}
	return false
}

/* =========================
   Model invoices
   ========================= */

type InvoiceModel struct {
	InvoiceID uuid.UUID `json:"invoice_id" gorm:"column:invoice_id;type:uuid;primaryKey"`

	InvoiceWorkOrderID uuid.UUID  `json:"invoice_work_order_id" gorm:"column:invoice_work_order_id;type:uuid;not null;uniqueIndex:ux_invoices_wo_seq,priority:1"`
	InvoiceSDCID       *uuid.UUID `json:"invoice_sdc_id,omitempty" gorm:"column:invoice_sdc_id;type:uuid;index"`

	InvoiceSeq    int           `json:"invoice_seq" gorm:"column:invoice_seq;not null;uniqueIndex:ux_invoices_wo_seq,priority:2"`
	InvoiceNumber string        `json:"invoice_number" gorm:"column:invoice_number;type:varchar(120);not null;uniqueIndex:ux_invoices_number"`
	InvoiceAmount float64       `json:"invoice_amount" gorm:"column:invoice_amount;type:numeric(14,2);not null"`
	InvoiceStatus InvoiceStatus `json:"invoice_status" gorm:"column:invoice_status;type:varchar(20);not null;index:idx_invoices_status"`
	InvoiceNotes  *string       `json:"invoice_notes,omitempty" gorm:"column:invoice_notes;type:text"`

	InvoiceDueDate     *time.Time `json:"invoice_due_date,omitempty" gorm:"column:invoice_due_date"`
	InvoiceIssuedAt    *time.Time `json:"invoice_issued_at,omitempty" gorm:"column:invoice_issued_at"`
	InvoicePaidAt      *time.Time `json:"invoice_paid_at,omitempty" gorm:"column:invoice_paid_at"`
	InvoiceCancelledAt *time.Time `json:"invoice_cancelled_at,omitempty" gorm:"column:invoice_cancelled_at"`

	InvoiceCreatedAt time.Time `json:"invoice_created_at" gorm:"column:invoice_created_at;not null;autoCreateTime"`
	InvoiceUpdatedAt time.Time `json:"invoice_updated_at" gorm:"column:invoice_updated_at;not null;autoUpdateTime"`
}

func (InvoiceModel) TableName() string { return "invoices" }

func (m *InvoiceModel) BeforeCreate(tx *gorm.DB) error {
	if m.InvoiceID == uuid.Nil {
		m.InvoiceID = uuid.New()
	}
	if m.InvoiceStatus == "" {
		m.InvoiceStatus = InvoiceStatusDraft
	}
	if !m.InvoiceStatus.Valid() {
		return fmt.Errorf("invalid invoice_status %q", m.InvoiceStatus)
	}
	if m.InvoiceAmount <= 0 {
		return fmt.Errorf("invoice_amount must be > 0")
	}
	return nil
}
