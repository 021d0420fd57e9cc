package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "sdc_backend/internals/features/resources/registry/model"
	helper "sdc_backend/internals/helpers"
	"sdc_backend/internals/helpers/apperr"
)

// ListFilter narrows List; Status must be a status of the requested kind.
type ListFilter struct {
	Status string
	Search string
	Paging helper.Paging
}

var searchCol = map[model.ResourceKind]string{
	model.KindTrainer:        "trainer_name",
	model.KindManager:        "manager_name",
	model.KindInfrastructure: "infrastructure_center_name",
}

func validStatus(kind model.ResourceKind, status string) bool {
	switch kind {
	case model.KindTrainer:
		return model.TrainerStatus(status).Valid()
	case model.KindManager:
		return model.ManagerStatus(status).Valid()
	case model.KindInfrastructure:
		return model.InfrastructureStatus(status).Valid()
	}
	return false
}

func getOne[T any](ctx context.Context, db *gorm.DB, d model.Descriptor, id uuid.UUID) (*T, error) {
	var m T
	if err := db.WithContext(ctx).Where(d.IDCol+" = ?", id).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("%s %s not found", singular(d.Kind), id)
		}
		return nil, err
	}
	return &m, nil
}

func listOf[T any](ctx context.Context, db *gorm.DB, d model.Descriptor, f ListFilter) ([]T, int64, error) {
	q := db.WithContext(ctx).Model(new(T))
	if f.Status != "" {
		q = q.Where(d.StatusCol+" = ?", f.Status)
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		q = q.Where("LOWER("+searchCol[d.Kind]+") LIKE ?", "%"+strings.ToLower(term)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	rows := make([]T, 0)
	if err := q.Order(searchCol[d.Kind] + " ASC").
		Limit(f.Paging.Limit).Offset(f.Paging.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func updateOne[T any](ctx context.Context, db *gorm.DB, d model.Descriptor, id uuid.UUID, fields map[string]any) (*T, error) {
	for col := range fields {
		switch col {
		case d.StatusCol, d.SDCCol, d.WorkOrderCol, d.AssignedAtCol, d.IDCol:
			// lifecycle columns only move through Assign/Release/SetMaintenance
			return nil, apperr.Validation("%s cannot be updated directly", col)
		}
	}
	if len(fields) > 0 {
		res := db.WithContext(ctx).Model(new(T)).Where(d.IDCol+" = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, apperr.NotFound("%s %s not found", singular(d.Kind), id)
		}
	}
	return getOne[T](ctx, db, d, id)
}

/* =========================================================
   Create (always starts available, no back-reference)
========================================================= */

func (s *Service) CreateTrainer(ctx context.Context, m *model.TrainerModel) error {
	m.TrainerStatus = model.TrainerStatusAvailable
	m.TrainerAssignedSDCID, m.TrainerAssignedWorkOrderID, m.TrainerAssignedAt = nil, nil, nil
	return s.DB.WithContext(ctx).Create(m).Error
}

func (s *Service) CreateManager(ctx context.Context, m *model.ManagerModel) error {
	m.ManagerStatus = model.ManagerStatusAvailable
	m.ManagerAssignedSDCID, m.ManagerAssignedWorkOrderID, m.ManagerAssignedAt = nil, nil, nil
	return s.DB.WithContext(ctx).Create(m).Error
}

func (s *Service) CreateInfrastructure(ctx context.Context, m *model.InfrastructureModel) error {
	m.InfrastructureStatus = model.InfrastructureStatusAvailable
	m.InfrastructureAssignedSDCID, m.InfrastructureAssignedWorkOrderID, m.InfrastructureAssignedAt = nil, nil, nil
	return s.DB.WithContext(ctx).Create(m).Error
}

/* =========================================================
   Read / update by kind
========================================================= */

func (s *Service) Get(ctx context.Context, kind model.ResourceKind, id uuid.UUID) (any, error) {
	d, err := model.DescriptorFor(kind)
	if err != nil {
		return nil, apperr.Validation("%v", err)
	}
	switch kind {
	case model.KindTrainer:
		return getOne[model.TrainerModel](ctx, s.DB, d, id)
	case model.KindManager:
		return getOne[model.ManagerModel](ctx, s.DB, d, id)
	default:
		return getOne[model.InfrastructureModel](ctx, s.DB, d, id)
	}
}

func (s *Service) List(ctx context.Context, kind model.ResourceKind, f ListFilter) (any, int64, error) {
	d, err := model.DescriptorFor(kind)
	if err != nil {
		return nil, 0, apperr.Validation("%v", err)
	}
	if f.Status != "" && !validStatus(kind, f.Status) {
		return nil, 0, apperr.Validation("unknown %s status %q", singular(kind), f.Status)
	}
	switch kind {
	case model.KindTrainer:
		return listOf[model.TrainerModel](ctx, s.DB, d, f)
	case model.KindManager:
		return listOf[model.ManagerModel](ctx, s.DB, d, f)
	default:
		return listOf[model.InfrastructureModel](ctx, s.DB, d, f)
	}
}

// Update patches descriptive fields; status and back-references are rejected.
func (s *Service) Update(ctx context.Context, kind model.ResourceKind, id uuid.UUID, fields map[string]any) (any, error) {
	d, err := model.DescriptorFor(kind)
	if err != nil {
		return nil, apperr.Validation("%v", err)
	}
	switch kind {
	case model.KindTrainer:
		return updateOne[model.TrainerModel](ctx, s.DB, d, id, fields)
	case model.KindManager:
		return updateOne[model.ManagerModel](ctx, s.DB, d, id, fields)
	default:
		return updateOne[model.InfrastructureModel](ctx, s.DB, d, id, fields)
	}
}
