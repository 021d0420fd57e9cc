package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	woModel "sdc_backend/internals/features/workorders/master_work_orders/model"
	"sdc_backend/internals/helpers/apperr"
)

type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// LoadRows reads one StageRow per SDC, optionally limited to a work order.
// SDCs without reported progress count as zero in every stage.
func (s *Service) LoadRows(ctx context.Context, workOrderID *uuid.UUID) ([]StageRow, error) {
	q := s.DB.WithContext(ctx).
		Table("sdcs AS s").
		Select(`s.sdc_id AS sdc_id,
			s.sdc_work_order_id AS work_order_id,
			w.master_work_order_number AS work_order_number,
			s.sdc_target_students AS target,
			COALESCE(p.sdc_progress_mobilized, 0) AS mobilized,
			COALESCE(p.sdc_progress_in_training, 0) AS in_training,
			COALESCE(p.sdc_progress_assessed, 0) AS assessed,
			COALESCE(p.sdc_progress_placed, 0) AS placed`).
		Joins("JOIN master_work_orders AS w ON w.master_work_order_id = s.sdc_work_order_id").
		Joins("LEFT JOIN sdc_progress AS p ON p.sdc_progress_sdc_id = s.sdc_id")
	if workOrderID != nil {
		q = q.Where("s.sdc_work_order_id = ?", *workOrderID)
	}

	rows := make([]StageRow, 0)
	if err := q.Order("w.master_work_order_number ASC, s.sdc_name ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Burndown returns the funnel snapshot; NotFound when workOrderID names no work order.
func (s *Service) Burndown(ctx context.Context, workOrderID *uuid.UUID) (*Burndown, error) {
	if workOrderID != nil {
		var wo woModel.MasterWorkOrderModel
		err := s.DB.WithContext(ctx).
			Select("master_work_order_id").
			Where("master_work_order_id = ?", *workOrderID).
			Take(&wo).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("work order %s not found", *workOrderID)
		}
		if err != nil {
			return nil, err
		}
	}

	rows, err := s.LoadRows(ctx, workOrderID)
	if err != nil {
		return nil, err
	}
	out := Build(rows)
	return &out, nil
}
