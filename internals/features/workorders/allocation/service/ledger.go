// file: internals/features/workorders/allocation/service/ledger.go
package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	jobRoleModel "sdc_backend/internals/features/catalog/job_roles/model"
	sdcModel "sdc_backend/internals/features/centers/sdcs/model"
	woModel "sdc_backend/internals/features/workorders/master_work_orders/model"
	"sdc_backend/internals/helpers/apperr"
)

// JobRoleAllocation is the per job role line of a snapshot.
type JobRoleAllocation struct {
	JobRoleID   uuid.UUID `json:"job_role_id"`
	JobRoleCode string    `json:"job_role_code"`
	JobRoleName string    `json:"job_role_name"`
	Target      int       `json:"target"`
	Allocated   int       `json:"allocated"`
	Remaining   int       `json:"remaining"`
	SDCCount    int       `json:"sdc_count"`
}

// Snapshot is derived from the work order and its SDC rows; it is never stored.
type Snapshot struct {
	WorkOrderID      uuid.UUID               `json:"work_order_id"`
	WorkOrderNumber  string                  `json:"work_order_number"`
	Status           woModel.WorkOrderStatus `json:"status"`
	JobRoles         []JobRoleAllocation     `json:"job_roles"`
	TotalTarget      int                     `json:"total_target"`
	TotalAllocated   int                     `json:"total_allocated"`
	TotalRemaining   int                     `json:"total_remaining"`
	SDCsCreated      int                     `json:"sdcs_created"`
	IsFullyAllocated bool                    `json:"is_fully_allocated"`
}

// ForJobRole returns the line for jobRoleID.
func (s *Snapshot) ForJobRole(jobRoleID uuid.UUID) (JobRoleAllocation, bool) {
	for _, jr := range s.JobRoles {
		if jr.JobRoleID == jobRoleID {
			return jr, true
		}
	}
	return JobRoleAllocation{}, false
}

type targetRow struct {
	JobRoleID uuid.UUID `gorm:"column:job_role_id"`
	Code      *string   `gorm:"column:job_role_code"`
	Name      *string   `gorm:"column:job_role_name"`
	Target    int       `gorm:"column:target"`
}

type allocatedRow struct {
	JobRoleID uuid.UUID `gorm:"column:job_role_id"`
	Allocated int       `gorm:"column:allocated"`
	SDCs      int       `gorm:"column:sdcs"`
}

// ComputeAllocationStatus derives the allocation snapshot of a work order.
// db may be a transaction; the provisioning workflow evaluates it under its row lock.
func ComputeAllocationStatus(ctx context.Context, db *gorm.DB, workOrderID uuid.UUID) (*Snapshot, error) {
	var wo woModel.MasterWorkOrderModel
	if err := db.WithContext(ctx).
		Select("master_work_order_id, master_work_order_number, master_work_order_total_target, master_work_order_status").
		Where("master_work_order_id = ?", workOrderID).
		Take(&wo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("work order %s not found", workOrderID)
		}
		return nil, err
	}

	var targets []targetRow
	if err := db.WithContext(ctx).
		Table(woModel.WorkOrderJobRoleModel{}.TableName()+" AS wjr").
		Select("wjr.work_order_job_role_job_role_id AS job_role_id, jr.job_role_code, jr.job_role_name, wjr.work_order_job_role_target AS target").
		Joins("LEFT JOIN "+jobRoleModel.JobRoleModel{}.TableName()+" AS jr ON jr.job_role_id = wjr.work_order_job_role_job_role_id").
		Where("wjr.work_order_job_role_work_order_id = ?", workOrderID).
		Order("wjr.work_order_job_role_position ASC").
		Scan(&targets).Error; err != nil {
		return nil, err
	}

	var allocated []allocatedRow
	if err := db.WithContext(ctx).
		Model(&sdcModel.SDCModel{}).
		Select("sdc_job_role_id AS job_role_id, COALESCE(SUM(sdc_target_students), 0) AS allocated, COUNT(*) AS sdcs").
		Where("sdc_work_order_id = ?", workOrderID).
		Group("sdc_job_role_id").
		Scan(&allocated).Error; err != nil {
		return nil, err
	}

	return buildSnapshot(wo, targets, allocated)
}

func buildSnapshot(wo woModel.MasterWorkOrderModel, targets []targetRow, allocated []allocatedRow) (*Snapshot, error) {
	byRole := make(map[uuid.UUID]allocatedRow, len(allocated))
	for _, a := range allocated {
		byRole[a.JobRoleID] = a
	}

	snap := &Snapshot{
		WorkOrderID:     wo.MasterWorkOrderID,
		WorkOrderNumber: wo.MasterWorkOrderNumber,
		Status:          wo.MasterWorkOrderStatus,
		JobRoles:        make([]JobRoleAllocation, 0, len(targets)),
		TotalTarget:     wo.MasterWorkOrderTotalTarget,
	}

	for _, t := range targets {
		a := byRole[t.JobRoleID]
		delete(byRole, t.JobRoleID)

		line := JobRoleAllocation{
			JobRoleID: t.JobRoleID,
			Target:    t.Target,
			Allocated: a.Allocated,
			Remaining: t.Target - a.Allocated,
			SDCCount:  a.SDCs,
		}
		if t.Code != nil {
			line.JobRoleCode = *t.Code
		}
		if t.Name != nil {
			line.JobRoleName = *t.Name
		}
		if line.Remaining < 0 {
			log.Printf("[Allocation] invariant violation wo=%s job_role=%s target=%d allocated=%d",
				wo.MasterWorkOrderID, t.JobRoleID, t.Target, a.Allocated)
			return nil, apperr.InvariantViolation("job role %s over-allocated on work order %s", t.JobRoleID, wo.MasterWorkOrderNumber)
		}
		snap.JobRoles = append(snap.JobRoles, line)
		snap.TotalAllocated += a.Allocated
		snap.SDCsCreated += a.SDCs
	}

	// SDCs whose job role is not declared on the work order can only come from a write-path bug.
	for roleID, a := range byRole {
		log.Printf("[Allocation] invariant violation wo=%s undeclared job_role=%s allocated=%d",
			wo.MasterWorkOrderID, roleID, a.Allocated)
		return nil, apperr.InvariantViolation("work order %s has SDCs for undeclared job role %s", wo.MasterWorkOrderNumber, roleID)
	}

	snap.TotalRemaining = snap.TotalTarget - snap.TotalAllocated
	if snap.TotalRemaining < 0 {
		log.Printf("[Allocation] invariant violation wo=%s total_target=%d total_allocated=%d",
			wo.MasterWorkOrderID, snap.TotalTarget, snap.TotalAllocated)
		return nil, apperr.InvariantViolation("work order %s allocated beyond its total target", wo.MasterWorkOrderNumber)
	}
	snap.IsFullyAllocated = snap.TotalRemaining == 0
	return snap, nil
}
