// Package jobs holds scheduled background work.
package jobs

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"sdc_backend/internals/configs"
	allocationSvc "sdc_backend/internals/features/workorders/allocation/service"
	woModel "sdc_backend/internals/features/workorders/master_work_orders/model"
	"sdc_backend/internals/helpers/apperr"
)

type LedgerAuditConfig struct {
	Enabled  bool
	Schedule string
	Timeout  time.Duration
}

func LoadLedgerAuditConfig() LedgerAuditConfig {
	enabled, _ := strconv.ParseBool(configs.GetEnv("LEDGER_AUDIT_ENABLED", "false"))
	timeout, err := time.ParseDuration(configs.GetEnv("LEDGER_AUDIT_TIMEOUT", "2m"))
	if err != nil || timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return LedgerAuditConfig{
		Enabled:  enabled,
		Schedule: configs.GetEnv("LEDGER_AUDIT_CRON", "*/30 * * * *"),
		Timeout:  timeout,
	}
}

type Violation struct {
	WorkOrderID     uuid.UUID `json:"work_order_id"`
	WorkOrderNumber string    `json:"work_order_number"`
	Message         string    `json:"message"`
}

type AuditReport struct {
	Checked    int         `json:"checked"`
	Violations []Violation `json:"violations"`
}

// RunLedgerAudit recomputes the allocation of every work order and collects
// the ones whose stored SDCs break the allocation invariants.
func RunLedgerAudit(ctx context.Context, db *gorm.DB) (*AuditReport, error) {
	var wos []woModel.MasterWorkOrderModel
	if err := db.WithContext(ctx).
		Select("master_work_order_id, master_work_order_number").
		Order("master_work_order_number ASC").
		Find(&wos).Error; err != nil {
		return nil, err
	}

	report := &AuditReport{Violations: make([]Violation, 0)}
	for _, wo := range wos {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Checked++
		_, err := allocationSvc.ComputeAllocationStatus(ctx, db, wo.MasterWorkOrderID)
		if err == nil {
			continue
		}
		var ae *apperr.Error
		if errors.As(err, &ae) && ae.Kind == apperr.KindInvariantViolation {
			report.Violations = append(report.Violations, Violation{
				WorkOrderID:     wo.MasterWorkOrderID,
				WorkOrderNumber: wo.MasterWorkOrderNumber,
				Message:         ae.Message,
			})
			continue
		}
		return report, err
	}
	return report, nil
}

// StartLedgerAuditCron schedules RunLedgerAudit. The caller stops the returned cron on shutdown.
func StartLedgerAuditCron(db *gorm.DB, cfg LedgerAuditConfig) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	_, err := c.AddFunc(cfg.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
		defer cancel()

		report, err := RunLedgerAudit(ctx, db)
		if err != nil {
			log.Printf("[LEDGER-AUDIT] run failed: %v", err)
			return
		}
		for _, v := range report.Violations {
			log.Printf("[ALERT] ledger audit wo=%s (%s): %s", v.WorkOrderNumber, v.WorkOrderID, v.Message)
		}
		log.Printf("[LEDGER-AUDIT] checked=%d violations=%d", report.Checked, len(report.Violations))
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[LEDGER-AUDIT] started schedule=%q timeout=%s", cfg.Schedule, cfg.Timeout)
	c.Start()
	return c, nil
}
