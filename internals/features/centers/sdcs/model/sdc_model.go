// file: internals/features/centers/sdcs/model/sdc_model.go
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SDCModel is a Skill Development Center provisioned under a master work order.
// Target, rate and hours are frozen at creation time.
type SDCModel struct {
	SDCID uuid.UUID `json:"sdc_id" gorm:"column:sdc_id;type:uuid;primaryKey"`

	SDCWorkOrderID uuid.UUID `json:"sdc_work_order_id" gorm:"column:sdc_work_order_id;type:uuid;not null;uniqueIndex:ux_sdcs_wo_name,priority:1;index:idx_sdcs_wo_job_role,priority:1"`
	SDCName        string    `json:"sdc_name" gorm:"column:sdc_name;type:varchar(160);not null;uniqueIndex:ux_sdcs_wo_name,priority:2"`
	SDCDistrict    string    `json:"sdc_district" gorm:"column:sdc_district;type:varchar(120);not null"`
	SDCSuffix      string    `json:"sdc_suffix" gorm:"column:sdc_suffix;type:varchar(40);not null;default:''"`
	SDCJobRoleID   uuid.UUID `json:"sdc_job_role_id" gorm:"column:sdc_job_role_id;type:uuid;not null;index:idx_sdcs_wo_job_role,priority:2"`

	SDCTargetStudents int `json:"sdc_target_students" gorm:"column:sdc_target_students;not null"`

	// contract snapshot
	SDCRatePerHour   float64 `json:"sdc_rate_per_hour" gorm:"column:sdc_rate_per_hour;type:numeric(12,2);not null"`
	SDCTrainingHours int     `json:"sdc_training_hours" gorm:"column:sdc_training_hours;not null"`
	SDCContractValue float64 `json:"sdc_contract_value" gorm:"column:sdc_contract_value;type:numeric(14,2);not null"`

	// resource slots
	SDCInfrastructureID *uuid.UUID `json:"sdc_infrastructure_id,omitempty" gorm:"column:sdc_infrastructure_id;type:uuid;index"`
	SDCManagerID        *uuid.UUID `json:"sdc_manager_id,omitempty" gorm:"column:sdc_manager_id;type:uuid;index"`
	SDCTrainerID        *uuid.UUID `json:"sdc_trainer_id,omitempty" gorm:"column:sdc_trainer_id;type:uuid;index"`

	SDCCreatedAt time.Time `json:"sdc_created_at" gorm:"column:sdc_created_at;not null;autoCreateTime"`
	SDCUpdatedAt time.Time `json:"sdc_updated_at" gorm:"column:sdc_updated_at;not null;autoUpdateTime"`
}

func (SDCModel) TableName() string { return "sdcs" }

func (m *SDCModel) BeforeCreate(tx *gorm.DB) error {
	if m.SDCID == uuid.Nil {
		m.SDCID = uuid.New()
	}
	if strings.TrimSpace(m.SDCName) == "" {
		return fmt.Errorf("sdc_name is required")
	}
	if m.SDCTargetStudents < 1 {
		return fmt.Errorf("sdc_target_students must be >= 1")
	}
	return nil
}

// SDCProgressModel holds the stage counters of one SDC (one row per SDC).
type SDCProgressModel struct {
	SDCProgressSDCID uuid.UUID `json:"sdc_progress_sdc_id" gorm:"column:sdc_progress_sdc_id;type:uuid;primaryKey"`

	SDCProgressMobilized  int `json:"sdc_progress_mobilized" gorm:"column:sdc_progress_mobilized;not null;default:0"`
	SDCProgressInTraining int `json:"sdc_progress_in_training" gorm:"column:sdc_progress_in_training;not null;default:0"`
	SDCProgressAssessed   int `json:"sdc_progress_assessed" gorm:"column:sdc_progress_assessed;not null;default:0"`
	SDCProgressPlaced     int `json:"sdc_progress_placed" gorm:"column:sdc_progress_placed;not null;default:0"`

	SDCProgressUpdatedAt time.Time `json:"sdc_progress_updated_at" gorm:"column:sdc_progress_updated_at;not null;autoUpdateTime"`
}

func (SDCProgressModel) TableName() string { return "sdc_progress" }
