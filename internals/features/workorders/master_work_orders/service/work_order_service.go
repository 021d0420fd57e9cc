// file: internals/features/workorders/master_work_orders/service/work_order_service.go
package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	jobRoleModel "sdc_backend/internals/features/catalog/job_roles/model"
	sdcModel "sdc_backend/internals/features/centers/sdcs/model"
	regModel "sdc_backend/internals/features/resources/registry/model"
	registry "sdc_backend/internals/features/resources/registry/service"
	model "sdc_backend/internals/features/workorders/master_work_orders/model"
	helper "sdc_backend/internals/helpers"
	"sdc_backend/internals/helpers/apperr"
)

type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{DB: db}
}

/* =========================================================
   Inputs / views
========================================================= */

type JobRoleTarget struct {
	JobRoleID uuid.UUID
	Target    int
}

type DistrictQuota struct {
	Name     string
	SDCCount int
}

type CreateInput struct {
	Number       string
	AwardingBody string
	SchemeName   string
	TotalTarget  int
	JobRoles     []JobRoleTarget
	Districts    []DistrictQuota
}

// WorkOrderView is a work order with its derived figures.
type WorkOrderView struct {
	model.MasterWorkOrderModel
	SDCsCreatedCount   int     `json:"sdcs_created_count"`
	TotalContractValue float64 `json:"total_contract_value"`
}

// CompletionResult reports how many resources a completion released, per kind.
type CompletionResult struct {
	WorkOrderID            uuid.UUID `json:"work_order_id"`
	CompletedAt            time.Time `json:"completed_at"`
	TrainersReleased       int64     `json:"trainers_released"`
	ManagersReleased       int64     `json:"managers_released"`
	InfrastructureReleased int64     `json:"infrastructure_released"`
}

type ListFilter struct {
	Status  string
	Search  string
	OrderBy string
	Paging  helper.Paging
}

/* =========================================================
   Create
========================================================= */

// CreateWorkOrder validates the job-role split and district list, then inserts
// the work order with its children in one transaction.
func (s *Service) CreateWorkOrder(ctx context.Context, in CreateInput) (*WorkOrderView, error) {
	if err := validateCreate(&in); err != nil {
		return nil, err
	}

	var wo model.MasterWorkOrderModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := make([]uuid.UUID, 0, len(in.JobRoles))
		for _, jr := range in.JobRoles {
			ids = append(ids, jr.JobRoleID)
		}
		var roles []jobRoleModel.JobRoleModel
		if err := tx.Select("job_role_id, job_role_code, job_role_is_active").
			Where("job_role_id IN ?", ids).
			Find(&roles).Error; err != nil {
			return err
		}
		known := make(map[uuid.UUID]jobRoleModel.JobRoleModel, len(roles))
		for _, r := range roles {
			known[r.JobRoleID] = r
		}
		for _, jr := range in.JobRoles {
			r, ok := known[jr.JobRoleID]
			if !ok {
				return apperr.New(apperr.KindInvalidJobRole, "job role %s does not exist", jr.JobRoleID).
					WithDetail("job_role_id", jr.JobRoleID)
			}
			if !r.JobRoleIsActive {
				return apperr.New(apperr.KindInvalidJobRole, "job role %s is deactivated", r.JobRoleCode).
					WithDetail("job_role_id", jr.JobRoleID)
			}
		}

		wo = model.MasterWorkOrderModel{
			MasterWorkOrderID:           uuid.New(),
			MasterWorkOrderNumber:       in.Number,
			MasterWorkOrderAwardingBody: in.AwardingBody,
			MasterWorkOrderSchemeName:   in.SchemeName,
			MasterWorkOrderTotalTarget:  in.TotalTarget,
			MasterWorkOrderStatus:       model.WorkOrderStatusActive,
		}
		if err := tx.Omit(clause.Associations).Create(&wo).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return apperr.New(apperr.KindConflict, "work order number %s already exists", in.Number)
			}
			return err
		}

		for i, jr := range in.JobRoles {
			wo.JobRoles = append(wo.JobRoles, model.WorkOrderJobRoleModel{
				WorkOrderJobRoleWorkOrderID: wo.MasterWorkOrderID,
				WorkOrderJobRoleJobRoleID:   jr.JobRoleID,
				WorkOrderJobRoleTarget:      jr.Target,
				WorkOrderJobRolePosition:    i + 1,
			})
		}
		if err := tx.Create(&wo.JobRoles).Error; err != nil {
			return err
		}

		for i, d := range in.Districts {
			wo.Districts = append(wo.Districts, model.WorkOrderDistrictModel{
				WorkOrderDistrictWorkOrderID: wo.MasterWorkOrderID,
				WorkOrderDistrictName:        d.Name,
				WorkOrderDistrictSDCCount:    d.SDCCount,
				WorkOrderDistrictPosition:    i + 1,
			})
		}
		if len(wo.Districts) > 0 {
			if err := tx.Create(&wo.Districts).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[WorkOrder] created %s total_target=%d job_roles=%d districts=%d",
		wo.MasterWorkOrderNumber, wo.MasterWorkOrderTotalTarget, len(wo.JobRoles), len(wo.Districts))
	return &WorkOrderView{MasterWorkOrderModel: wo}, nil
}

func validateCreate(in *CreateInput) error {
	in.Number = strings.TrimSpace(in.Number)
	if in.Number == "" {
		return apperr.Validation("work order number is required")
	}
	if in.TotalTarget < 1 {
		return apperr.Validation("total_target must be at least 1")
	}
	if len(in.JobRoles) == 0 {
		return apperr.Validation("at least one job role is required")
	}

	seen := make(map[uuid.UUID]struct{}, len(in.JobRoles))
	sum := 0
	for _, jr := range in.JobRoles {
		if jr.Target < 1 {
			return apperr.Validation("target for job role %s must be at least 1", jr.JobRoleID)
		}
		if _, dup := seen[jr.JobRoleID]; dup {
			return apperr.Validation("job role %s listed more than once", jr.JobRoleID)
		}
		seen[jr.JobRoleID] = struct{}{}
		sum += jr.Target
	}
	if sum != in.TotalTarget {
		return apperr.New(apperr.KindTargetMismatch, "job role targets sum to %d, total target is %d", sum, in.TotalTarget).
			WithDetail("sum", sum).
			WithDetail("total_target", in.TotalTarget)
	}

	names := make(map[string]struct{}, len(in.Districts))
	for i := range in.Districts {
		d := &in.Districts[i]
		d.Name = strings.Join(strings.Fields(d.Name), " ")
		if d.Name == "" {
			return apperr.Validation("district name is required")
		}
		if d.SDCCount < 1 {
			return apperr.Validation("sdc_count for district %s must be at least 1", d.Name)
		}
		key := strings.ToUpper(d.Name)
		if _, dup := names[key]; dup {
			return apperr.Validation("district %s listed more than once", d.Name)
		}
		names[key] = struct{}{}
	}
	return nil
}

/* =========================================================
   Read
========================================================= */

type derivedRow struct {
	WorkOrderID   uuid.UUID `gorm:"column:work_order_id"`
	SDCs          int       `gorm:"column:sdcs"`
	ContractValue float64   `gorm:"column:contract_value"`
}

func (s *Service) derive(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]derivedRow, error) {
	out := make(map[uuid.UUID]derivedRow, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []derivedRow
	if err := s.DB.WithContext(ctx).
		Model(&sdcModel.SDCModel{}).
		Select("sdc_work_order_id AS work_order_id, COUNT(*) AS sdcs, COALESCE(SUM(sdc_contract_value), 0) AS contract_value").
		Where("sdc_work_order_id IN ?", ids).
		Group("sdc_work_order_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.WorkOrderID] = r
	}
	return out, nil
}

func (s *Service) GetWorkOrder(ctx context.Context, id uuid.UUID) (*WorkOrderView, error) {
	var wo model.MasterWorkOrderModel
	err := s.DB.WithContext(ctx).
		Preload("JobRoles", func(db *gorm.DB) *gorm.DB {
			return db.Order("work_order_job_role_position ASC")
		}).
		Preload("Districts", func(db *gorm.DB) *gorm.DB {
			return db.Order("work_order_district_position ASC")
		}).
		Where("master_work_order_id = ?", id).
		Take(&wo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("work order %s not found", id)
		}
		return nil, err
	}

	d, err := s.derive(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	row := d[id]
	return &WorkOrderView{
		MasterWorkOrderModel: wo,
		SDCsCreatedCount:     row.SDCs,
		TotalContractValue:   row.ContractValue,
	}, nil
}

func (s *Service) ListWorkOrders(ctx context.Context, f ListFilter) ([]WorkOrderView, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.MasterWorkOrderModel{})
	if f.Status != "" {
		if !model.WorkOrderStatus(f.Status).Valid() {
			return nil, 0, apperr.Validation("unknown status %q", f.Status)
		}
		q = q.Where("master_work_order_status = ?", f.Status)
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		q = q.Where("LOWER(master_work_order_number) LIKE ?", "%"+strings.ToLower(term)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := f.OrderBy
	if orderBy == "" {
		orderBy = "master_work_order_created_at DESC"
	}
	var rows []model.MasterWorkOrderModel
	if err := q.Order(orderBy).
		Limit(f.Paging.Limit).Offset(f.Paging.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.MasterWorkOrderID)
	}
	d, err := s.derive(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	out := make([]WorkOrderView, 0, len(rows))
	for _, r := range rows {
		out = append(out, WorkOrderView{
			MasterWorkOrderModel: r,
			SDCsCreatedCount:     d[r.MasterWorkOrderID].SDCs,
			TotalContractValue:   d[r.MasterWorkOrderID].ContractValue,
		})
	}
	return out, total, nil
}

/* =========================================================
   Lifecycle
========================================================= */

// CompleteWorkOrder moves an active work order to completed and releases every
// resource still held by its SDCs. It is terminal: a second call fails with
// AlreadyCompleted and changes nothing.
func (s *Service) CompleteWorkOrder(ctx context.Context, id uuid.UUID) (*CompletionResult, error) {
	var out CompletionResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var wo model.MasterWorkOrderModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("master_work_order_id = ?", id).
			Take(&wo).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("work order %s not found", id)
			}
			return err
		}
		if !wo.IsActive() {
			return apperr.New(apperr.KindAlreadyCompleted, "work order %s is already completed", wo.MasterWorkOrderNumber)
		}

		var sdcIDs []uuid.UUID
		if err := tx.Model(&sdcModel.SDCModel{}).
			Where("sdc_work_order_id = ?", id).
			Pluck("sdc_id", &sdcIDs).Error; err != nil {
			return err
		}

		for _, kind := range regModel.AllKinds {
			n, err := registry.ReleaseHeldBySDCs(tx, kind, sdcIDs)
			if err != nil {
				return err
			}
			switch kind {
			case regModel.KindTrainer:
				out.TrainersReleased = n
			case regModel.KindManager:
				out.ManagersReleased = n
			case regModel.KindInfrastructure:
				out.InfrastructureReleased = n
			}
		}

		now := time.Now()
		if err := tx.Model(&wo).Updates(map[string]any{
			"master_work_order_status":       model.WorkOrderStatusCompleted,
			"master_work_order_completed_at": now,
		}).Error; err != nil {
			return err
		}
		out.WorkOrderID = id
		out.CompletedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[WorkOrder] completed %s: released trainers=%d managers=%d infrastructure=%d",
		id, out.TrainersReleased, out.ManagersReleased, out.InfrastructureReleased)
	return &out, nil
}
