// file: internals/features/resources/registry/service/registry_service.go
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	sdcModel "sdc_backend/internals/features/centers/sdcs/model"
	model "sdc_backend/internals/features/resources/registry/model"
	woModel "sdc_backend/internals/features/workorders/master_work_orders/model"
	"sdc_backend/internals/helpers/apperr"
)

// Service owns the availability state of trainers, managers and infrastructure.
// Status and back-reference are only ever written together by the helpers below.
type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// Assignment is what Assign returns to the caller.
type Assignment struct {
	Kind        model.ResourceKind `json:"kind"`
	ResourceID  uuid.UUID          `json:"resource_id"`
	Status      string             `json:"status"`
	SDCID       *uuid.UUID         `json:"sdc_id,omitempty"`
	WorkOrderID *uuid.UUID         `json:"work_order_id,omitempty"`
	AssignedAt  *time.Time         `json:"assigned_at,omitempty"`
}

type lifecycleRow struct {
	Status      string     `gorm:"column:status"`
	SDCID       *uuid.UUID `gorm:"column:sdc_id"`
	WorkOrderID *uuid.UUID `gorm:"column:work_order_id"`
}

// lockResource loads the lifecycle columns of one resource with FOR UPDATE.
func lockResource(tx *gorm.DB, d model.Descriptor, id uuid.UUID) (lifecycleRow, error) {
	var row lifecycleRow
	err := tx.Table(d.Table).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select(d.StatusCol+" AS status, "+d.SDCCol+" AS sdc_id, "+d.WorkOrderCol+" AS work_order_id").
		Where(d.IDCol+" = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return row, apperr.NotFound("%s %s not found", singular(d.Kind), id)
	}
	if err != nil {
		return row, err
	}
	if !d.ValidStatus(row.Status) {
		return row, apperr.InvariantViolation("%s %s has unknown status %q", singular(d.Kind), id, row.Status)
	}
	return row, nil
}

func markReserved(tx *gorm.DB, d model.Descriptor, id, sdcID, workOrderID uuid.UUID, at time.Time) error {
	res := tx.Table(d.Table).
		Where(d.IDCol+" = ? AND "+d.StatusCol+" = ?", id, d.Available).
		Updates(map[string]any{
			d.StatusCol:     d.Reserved,
			d.SDCCol:        sdcID,
			d.WorkOrderCol:  workOrderID,
			d.AssignedAtCol: at,
			d.UpdatedAtCol:  at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		// row changed between lock and update; only possible without row locks
		return apperr.New(apperr.KindResourceUnavailable, "%s %s is no longer available", singular(d.Kind), id)
	}
	return nil
}

func markAvailable(tx *gorm.DB, d model.Descriptor, where string, args ...any) (int64, error) {
	res := tx.Table(d.Table).
		Where(where, args...).
		Updates(map[string]any{
			d.StatusCol:     d.Available,
			d.SDCCol:        nil,
			d.WorkOrderCol:  nil,
			d.AssignedAtCol: nil,
			d.UpdatedAtCol:  time.Now(),
		})
	return res.RowsAffected, res.Error
}

/* =========================================================
   Transaction-scoped helpers (used by provisioning & lifecycle)
========================================================= */

// ReserveForSDC flips an available resource to its reserved status, pointing at sdcID.
// Anything other than available yields ResourceUnavailable.
func ReserveForSDC(tx *gorm.DB, kind model.ResourceKind, id, sdcID, workOrderID uuid.UUID) error {
	d, err := model.DescriptorFor(kind)
	if err != nil {
		return apperr.Validation("%v", err)
	}
	row, err := lockResource(tx, d, id)
	if err != nil {
		return err
	}
	if row.Status != d.Available {
		return apperr.New(apperr.KindResourceUnavailable, "%s %s is %s", singular(kind), id, row.Status).
			WithDetail("resource_id", id).
			WithDetail("status", row.Status)
	}
	return markReserved(tx, d, id, sdcID, workOrderID, time.Now())
}

// CheckAvailable locks the resource and fails with ResourceUnavailable unless it is available.
func CheckAvailable(tx *gorm.DB, kind model.ResourceKind, id uuid.UUID) error {
	d, err := model.DescriptorFor(kind)
	if err != nil {
		return apperr.Validation("%v", err)
	}
	row, err := lockResource(tx, d, id)
	if err != nil {
		return err
	}
	if row.Status != d.Available {
		return apperr.New(apperr.KindResourceUnavailable, "%s %s is %s", singular(kind), id, row.Status).
			WithDetail("resource_id", id).
			WithDetail("status", row.Status)
	}
	return nil
}

// ReleaseHeldBySDCs releases every resource of kind still pointing at one of sdcIDs.
// Resources released manually earlier are untouched.
func ReleaseHeldBySDCs(tx *gorm.DB, kind model.ResourceKind, sdcIDs []uuid.UUID) (int64, error) {
	if len(sdcIDs) == 0 {
		return 0, nil
	}
	d, err := model.DescriptorFor(kind)
	if err != nil {
		return 0, err
	}
	return markAvailable(tx, d, d.SDCCol+" IN ? AND "+d.StatusCol+" = ?", sdcIDs, d.Reserved)
}

/* =========================================================
   Operations
========================================================= */

// Assign reserves the resource for the SDC identified by consumerID.
func (s *Service) Assign(ctx context.Context, kind model.ResourceKind, id, consumerID uuid.UUID) (*Assignment, error) {
	d, err := model.DescriptorFor(kind)
	if err != nil {
		return nil, apperr.Validation("%v", err)
	}

	var out *Assignment
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ref sdcModel.SDCModel
		if err := tx.Select("sdc_id, sdc_work_order_id").
			Where("sdc_id = ?", consumerID).
			Take(&ref).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("sdc %s not found", consumerID)
			}
			return err
		}

		// lock order: work order, resource, sdc (same as provisioning and completion)
		var wo woModel.MasterWorkOrderModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("master_work_order_id, master_work_order_number, master_work_order_status").
			Where("master_work_order_id = ?", ref.SDCWorkOrderID).
			Take(&wo).Error; err != nil {
			return err
		}
		if !wo.IsActive() {
			return apperr.New(apperr.KindWorkOrderClosed, "work order %s is %s", wo.MasterWorkOrderNumber, wo.MasterWorkOrderStatus)
		}

		row, err := lockResource(tx, d, id)
		if err != nil {
			return err
		}
		if row.Status != d.Available {
			return apperr.New(apperr.KindAlreadyAssigned, "%s %s is %s", singular(kind), id, row.Status).
				WithDetail("status", row.Status)
		}

		var sdc sdcModel.SDCModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("sdc_id = ?", consumerID).
			Take(&sdc).Error; err != nil {
			return err
		}

		if held := slotOf(&sdc, kind); held != nil {
			return apperr.New(apperr.KindAlreadyAssigned, "sdc %s already holds %s %s", sdc.SDCName, singular(kind), *held)
		}

		now := time.Now()
		if err := markReserved(tx, d, id, sdc.SDCID, sdc.SDCWorkOrderID, now); err != nil {
			return err
		}
		if err := tx.Model(&sdcModel.SDCModel{}).
			Where("sdc_id = ?", sdc.SDCID).
			Update(d.SDCSlotCol, id).Error; err != nil {
			return err
		}

		sdcID, woID := sdc.SDCID, sdc.SDCWorkOrderID
		out = &Assignment{
			Kind:        kind,
			ResourceID:  id,
			Status:      d.Reserved,
			SDCID:       &sdcID,
			WorkOrderID: &woID,
			AssignedAt:  &now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[Registry] assigned %s %s to sdc %s", singular(kind), id, consumerID)
	return out, nil
}

// Release returns the resource to available and clears its back-reference.
// A second release fails with NotAssigned and changes nothing.
func (s *Service) Release(ctx context.Context, kind model.ResourceKind, id uuid.UUID) (*Assignment, error) {
	d, err := model.DescriptorFor(kind)
	if err != nil {
		return nil, apperr.Validation("%v", err)
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := lockResource(tx, d, id)
		if err != nil {
			return err
		}
		if !d.HoldsReference(row.Status) {
			return apperr.New(apperr.KindNotAssigned, "%s %s is %s", singular(kind), id, row.Status).
				WithDetail("status", row.Status)
		}
		if _, err := markAvailable(tx, d, d.IDCol+" = ?", id); err != nil {
			return err
		}
		if row.SDCID != nil {
			// clear the slot only if the SDC still points at this resource
			if err := tx.Model(&sdcModel.SDCModel{}).
				Where("sdc_id = ? AND "+d.SDCSlotCol+" = ?", *row.SDCID, id).
				Update(d.SDCSlotCol, nil).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[Registry] released %s %s", singular(kind), id)
	return &Assignment{Kind: kind, ResourceID: id, Status: d.Available}, nil
}

// SetMaintenance parks an available infrastructure in maintenance, or brings it back.
func (s *Service) SetMaintenance(ctx context.Context, id uuid.UUID, on bool) (*model.InfrastructureModel, error) {
	var out model.InfrastructureModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("infrastructure_id = ?", id).
			Take(&out).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("infrastructure %s not found", id)
			}
			return err
		}

		from, to := model.InfrastructureStatusAvailable, model.InfrastructureStatusMaintenance
		if !on {
			from, to = to, from
		}
		switch out.InfrastructureStatus {
		case from:
		case to:
			return apperr.New(apperr.KindInvalidTransition, "infrastructure %s is already %s", id, to)
		case model.InfrastructureStatusInUse:
			return apperr.New(apperr.KindResourceUnavailable, "infrastructure %s is in use", id)
		default:
			return apperr.InvariantViolation("infrastructure %s has unknown status %q", id, out.InfrastructureStatus)
		}

		if err := tx.Model(&out).Update("infrastructure_status", to).Error; err != nil {
			return err
		}
		out.InfrastructureStatus = to
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func slotOf(sdc *sdcModel.SDCModel, kind model.ResourceKind) *uuid.UUID {
	switch kind {
	case model.KindTrainer:
		return sdc.SDCTrainerID
	case model.KindManager:
		return sdc.SDCManagerID
	case model.KindInfrastructure:
		return sdc.SDCInfrastructureID
	}
	return nil
}

func singular(kind model.ResourceKind) string {
	switch kind {
	case model.KindTrainer:
		return "trainer"
	case model.KindManager:
		return "manager"
	case model.KindInfrastructure:
		return "infrastructure"
	}
	return string(kind)
}
