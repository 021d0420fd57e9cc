// file: internals/features/catalog/job_roles/service/job_role_service.go
package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "sdc_backend/internals/features/catalog/job_roles/model"
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

type ListFilter struct {
	Category string
	Active   *bool
	Search   string
	Paging   helper.Paging
}

// columns a referenced job role still accepts; created SDCs keep their own snapshot
var editableWhenReferenced = map[string]struct{}{
	"job_role_rate_per_hour":        {},
	"job_role_total_training_hours": {},
	"job_role_default_daily_hours":  {},
	"job_role_is_active":            {},
}

func (s *Service) Create(ctx context.Context, m *model.JobRoleModel) error {
	if m.JobRoleCategory != "" && !m.JobRoleCategory.Valid() {
		return apperr.Validation("invalid category %q", m.JobRoleCategory)
	}
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return apperr.New(apperr.KindConflict, "job role code %s already exists", m.JobRoleCode)
		}
		return err
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.JobRoleModel, error) {
	var m model.JobRoleModel
	if err := s.DB.WithContext(ctx).Where("job_role_id = ?", id).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("job role %s not found", id)
		}
		return nil, err
	}
	return &m, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]model.JobRoleModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.JobRoleModel{})
	if f.Category != "" {
		q = q.Where("job_role_category = ?", strings.ToUpper(f.Category))
	}
	if f.Active != nil {
		q = q.Where("job_role_is_active = ?", *f.Active)
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("(LOWER(job_role_code) LIKE ? OR LOWER(job_role_name) LIKE ?)", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	rows := make([]model.JobRoleModel, 0)
	if err := q.Order("job_role_code ASC").
		Limit(f.Paging.Limit).Offset(f.Paging.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *Service) referenced(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&woModel.WorkOrderJobRoleModel{}).
		Where("work_order_job_role_job_role_id = ?", id).
		Count(&n).Error
	return n > 0, err
}

// Update patches a job role. Once a work order references it only pricing,
// hours and the active flag may change.
func (s *Service) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.JobRoleModel, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return s.Get(ctx, id)
	}
	used, err := s.referenced(ctx, id)
	if err != nil {
		return nil, err
	}
	if used {
		for col := range fields {
			if _, ok := editableWhenReferenced[col]; !ok {
				return nil, apperr.New(apperr.KindConflict, "%s cannot change while a work order references this job role", col).
					WithDetail("field", col)
			}
		}
	}
	if err := s.DB.WithContext(ctx).Model(&model.JobRoleModel{}).
		Where("job_role_id = ?", id).
		Updates(fields).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, apperr.New(apperr.KindConflict, "job role code already exists")
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// Deactivate hides the job role from new work orders; existing ones keep using it.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) (*model.JobRoleModel, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !m.JobRoleIsActive {
		return nil, apperr.New(apperr.KindInvalidTransition, "job role %s is already inactive", m.JobRoleCode)
	}
	if err := s.DB.WithContext(ctx).Model(m).Update("job_role_is_active", false).Error; err != nil {
		return nil, err
	}
	m.JobRoleIsActive = false
	return m, nil
}

// UpsertByCode inserts or refreshes catalog entries keyed by code (seeding).
func (s *Service) UpsertByCode(ctx context.Context, rows []model.JobRoleModel) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	for i := range rows {
		rows[i].JobRoleCode = strings.ToUpper(strings.TrimSpace(rows[i].JobRoleCode))
	}
	res := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "job_role_code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"job_role_name",
			"job_role_category",
			"job_role_rate_per_hour",
			"job_role_total_training_hours",
			"job_role_default_daily_hours",
			"job_role_awarding_body",
			"job_role_scheme_name",
			"job_role_updated_at",
		}),
	}).Create(&rows)
	if res.Error != nil {
		return 0, res.Error
	}
	log.Printf("[JobRoles] upserted %d catalog entries", res.RowsAffected)
	return res.RowsAffected, nil
}
