package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "sdc_backend/internals/features/centers/sdcs/model"
	helper "sdc_backend/internals/helpers"
	"sdc_backend/internals/helpers/apperr"
)

// SDCWithProgress is the read model returned by GetSDC / ListByWorkOrder.
type SDCWithProgress struct {
	model.SDCModel
	Progress model.SDCProgressModel `json:"progress"`
}

func (s *Service) GetSDC(ctx context.Context, id uuid.UUID) (*SDCWithProgress, error) {
	var m model.SDCModel
	if err := s.DB.WithContext(ctx).Where("sdc_id = ?", id).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("sdc %s not found", id)
		}
		return nil, err
	}
	out := &SDCWithProgress{SDCModel: m, Progress: model.SDCProgressModel{SDCProgressSDCID: id}}
	if err := s.DB.WithContext(ctx).Where("sdc_progress_sdc_id = ?", id).
		Limit(1).Find(&out.Progress).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListByWorkOrder pages through the SDCs of one work order, newest first.
func (s *Service) ListByWorkOrder(ctx context.Context, workOrderID uuid.UUID, p helper.Paging) ([]SDCWithProgress, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.SDCModel{}).Where("sdc_work_order_id = ?", workOrderID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.SDCModel
	if err := q.Order("sdc_created_at DESC, sdc_name ASC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	if len(rows) == 0 {
		return []SDCWithProgress{}, total, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.SDCID)
	}
	var prog []model.SDCProgressModel
	if err := s.DB.WithContext(ctx).Where("sdc_progress_sdc_id IN ?", ids).Find(&prog).Error; err != nil {
		return nil, 0, err
	}
	byID := make(map[uuid.UUID]model.SDCProgressModel, len(prog))
	for _, p := range prog {
		byID[p.SDCProgressSDCID] = p
	}

	out := make([]SDCWithProgress, 0, len(rows))
	for _, r := range rows {
		p, ok := byID[r.SDCID]
		if !ok {
			p = model.SDCProgressModel{SDCProgressSDCID: r.SDCID}
		}
		out = append(out, SDCWithProgress{SDCModel: r, Progress: p})
	}
	return out, total, nil
}

// ProgressInput holds the stage counters reported for one SDC.
type ProgressInput struct {
	Mobilized  int
	InTraining int
	Assessed   int
	Placed     int
}

// UpdateProgress upserts the stage counters of an SDC.
// Every counter must lie in [0, target_students]; stages are reported independently.
func (s *Service) UpdateProgress(ctx context.Context, sdcID uuid.UUID, in ProgressInput) (*model.SDCProgressModel, error) {
	var out model.SDCProgressModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sdc model.SDCModel
		if err := tx.Select("sdc_id, sdc_target_students").
			Where("sdc_id = ?", sdcID).
			Take(&sdc).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("sdc %s not found", sdcID)
			}
			return err
		}

		counters := []struct {
			name  string
			value int
		}{
			{"mobilized", in.Mobilized},
			{"in_training", in.InTraining},
			{"assessed", in.Assessed},
			{"placed", in.Placed},
		}
		for _, c := range counters {
			if c.value < 0 || c.value > sdc.SDCTargetStudents {
				return apperr.Validation("%s must be between 0 and %d", c.name, sdc.SDCTargetStudents).
					WithDetail("field", c.name)
			}
		}

		out = model.SDCProgressModel{
			SDCProgressSDCID:      sdcID,
			SDCProgressMobilized:  in.Mobilized,
			SDCProgressInTraining: in.InTraining,
			SDCProgressAssessed:   in.Assessed,
			SDCProgressPlaced:     in.Placed,
			SDCProgressUpdatedAt:  time.Now(),
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "sdc_progress_sdc_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"sdc_progress_mobilized",
				"sdc_progress_in_training",
				"sdc_progress_assessed",
				"sdc_progress_placed",
				"sdc_progress_updated_at",
			}),
		}).Create(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
