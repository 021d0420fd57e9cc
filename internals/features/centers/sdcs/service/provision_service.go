// file: internals/features/centers/sdcs/service/provision_service.go
package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	jobRoleModel "sdc_backend/internals/features/catalog/job_roles/model"
	model "sdc_backend/internals/features/centers/sdcs/model"
	regModel "sdc_backend/internals/features/resources/registry/model"
	registry "sdc_backend/internals/features/resources/registry/service"
	allocation "sdc_backend/internals/features/workorders/allocation/service"
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

// ProvisionInput carries one SDC creation request. Resource ids are optional.
type ProvisionInput struct {
	WorkOrderID      uuid.UUID
	DistrictName     string
	Suffix           string
	JobRoleID        uuid.UUID
	TargetStudents   int
	InfrastructureID *uuid.UUID
	ManagerID        *uuid.UUID
	TrainerID        *uuid.UUID
}

type resourceRef struct {
	kind regModel.ResourceKind
	id   uuid.UUID
}

func (in ProvisionInput) resources() []resourceRef {
	var out []resourceRef
	if in.InfrastructureID != nil {
		out = append(out, resourceRef{regModel.KindInfrastructure, *in.InfrastructureID})
	}
	if in.ManagerID != nil {
		out = append(out, resourceRef{regModel.KindManager, *in.ManagerID})
	}
	if in.TrainerID != nil {
		out = append(out, resourceRef{regModel.KindTrainer, *in.TrainerID})
	}
	return out
}

// ProvisionSDC creates an SDC under an active work order and reserves its resources.
// The allocation check, the insert and the resource flips commit or roll back together;
// the work order row lock serializes concurrent calls on the same work order.
func (s *Service) ProvisionSDC(ctx context.Context, in ProvisionInput) (*model.SDCModel, error) {
	if in.TargetStudents < 1 {
		return nil, apperr.Validation("target_students must be at least 1")
	}

	var out model.SDCModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1) work order, locked
		var wo woModel.MasterWorkOrderModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("master_work_order_id = ?", in.WorkOrderID).
			Take(&wo).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("work order %s not found", in.WorkOrderID)
			}
			return err
		}
		if !wo.IsActive() {
			return apperr.New(apperr.KindWorkOrderClosed, "work order %s is %s", wo.MasterWorkOrderNumber, wo.MasterWorkOrderStatus)
		}

		// 2) job role declared on the work order
		if err := tx.Where("work_order_job_role_work_order_id = ?", wo.MasterWorkOrderID).
			Order("work_order_job_role_position ASC").
			Find(&wo.JobRoles).Error; err != nil {
			return err
		}
		if !wo.HasJobRole(in.JobRoleID) {
			return apperr.New(apperr.KindInvalidJobRole, "job role %s is not part of work order %s", in.JobRoleID, wo.MasterWorkOrderNumber).
				WithDetail("job_role_id", in.JobRoleID)
		}

		// 3) allocation, evaluated under the lock
		snap, err := allocation.ComputeAllocationStatus(ctx, tx, wo.MasterWorkOrderID)
		if err != nil {
			return err
		}
		line, ok := snap.ForJobRole(in.JobRoleID)
		if !ok {
			return apperr.InvariantViolation("job role %s missing from allocation of %s", in.JobRoleID, wo.MasterWorkOrderNumber)
		}
		if in.TargetStudents > line.Remaining {
			return apperr.AllocationExceeded(line.Remaining).WithDetail("job_role_id", in.JobRoleID)
		}

		// 4-5) resources must be available
		refs := in.resources()
		for _, r := range refs {
			if err := registry.CheckAvailable(tx, r.kind, r.id); err != nil {
				return err
			}
		}

		// 6) district + name
		district, err := resolveDistrict(tx, &wo, in.DistrictName)
		if err != nil {
			return err
		}
		name := BuildSDCName(district, in.Suffix)
		var taken int64
		if err := tx.Model(&model.SDCModel{}).
			Where("sdc_work_order_id = ? AND sdc_name = ?", wo.MasterWorkOrderID, name).
			Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return duplicateName(name, wo.MasterWorkOrderNumber)
		}

		// 7) persist with the contract snapshot
		var jr jobRoleModel.JobRoleModel
		if err := tx.Select("job_role_id, job_role_rate_per_hour, job_role_total_training_hours").
			Where("job_role_id = ?", in.JobRoleID).
			Take(&jr).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.KindInvalidJobRole, "job role %s does not exist", in.JobRoleID)
			}
			return err
		}

		out = model.SDCModel{
			SDCID:               uuid.New(),
			SDCWorkOrderID:      wo.MasterWorkOrderID,
			SDCName:             name,
			SDCDistrict:         district,
			SDCSuffix:           normalizeToken(in.Suffix),
			SDCJobRoleID:        in.JobRoleID,
			SDCTargetStudents:   in.TargetStudents,
			SDCRatePerHour:      jr.JobRoleRatePerHour,
			SDCTrainingHours:    jr.JobRoleTotalTrainingHours,
			SDCContractValue:    jobRoleModel.ContractValue(in.TargetStudents, jr.JobRoleTotalTrainingHours, jr.JobRoleRatePerHour),
			SDCInfrastructureID: in.InfrastructureID,
			SDCManagerID:        in.ManagerID,
			SDCTrainerID:        in.TrainerID,
		}
		if err := tx.Create(&out).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return duplicateName(name, wo.MasterWorkOrderNumber)
			}
			return err
		}
		if err := tx.Create(&model.SDCProgressModel{SDCProgressSDCID: out.SDCID}).Error; err != nil {
			return err
		}

		// 8) flip resources with back-references to the new SDC
		for _, r := range refs {
			if err := registry.ReserveForSDC(tx, r.kind, r.id, out.SDCID, wo.MasterWorkOrderID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[SDCProvision] created %s (wo=%s job_role=%s target=%d value=%.2f)",
		out.SDCName, out.SDCWorkOrderID, out.SDCJobRoleID, out.SDCTargetStudents, out.SDCContractValue)
	return &out, nil
}

// resolveDistrict returns the canonical district name. When the work order declares
// districts, the request must match one and its sdc_count must not be used up.
func resolveDistrict(tx *gorm.DB, wo *woModel.MasterWorkOrderModel, requested string) (string, error) {
	if normalizeToken(requested) == "" {
		return "", apperr.Validation("district_name is required")
	}
	if err := tx.Where("work_order_district_work_order_id = ?", wo.MasterWorkOrderID).
		Order("work_order_district_position ASC").
		Find(&wo.Districts).Error; err != nil {
		return "", err
	}
	if len(wo.Districts) == 0 {
		return strings.TrimSpace(requested), nil
	}

	for _, d := range wo.Districts {
		if !sameDistrict(d.WorkOrderDistrictName, requested) {
			continue
		}
		var used int64
		if err := tx.Model(&model.SDCModel{}).
			Where("sdc_work_order_id = ? AND sdc_district = ?", wo.MasterWorkOrderID, d.WorkOrderDistrictName).
			Count(&used).Error; err != nil {
			return "", err
		}
		if int(used) >= d.WorkOrderDistrictSDCCount {
			return "", apperr.New(apperr.KindDistrictQuotaReached, "district %s already has %d of %d SDCs",
				d.WorkOrderDistrictName, used, d.WorkOrderDistrictSDCCount).
				WithDetail("sdc_count", d.WorkOrderDistrictSDCCount)
		}
		return d.WorkOrderDistrictName, nil
	}
	return "", apperr.New(apperr.KindInvalidDistrict, "district %q is not part of work order %s", requested, wo.MasterWorkOrderNumber)
}

func duplicateName(name, woNumber string) error {
	return apperr.New(apperr.KindDuplicateSDCName, "%s already exists under work order %s", name, woNumber).
		WithDetail("sdc_name", name)
}
