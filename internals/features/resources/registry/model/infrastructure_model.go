// file: internals/features/resources/registry/model/infrastructure_model.go
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FacilityFlags is stored as JSON (jsonb on postgres).
type FacilityFlags struct {
	HasLab             bool `json:"has_lab"`
	HasLibrary         bool `json:"has_library"`
	HasHostel          bool `json:"has_hostel"`
	HasPowerBackup     bool `json:"has_power_backup"`
	HasCCTV            bool `json:"has_cctv"`
	IsDisabledFriendly bool `json:"is_disabled_friendly"`
}

type InfrastructureModel struct {
	InfrastructureID uuid.UUID `json:"infrastructure_id" gorm:"column:infrastructure_id;type:uuid;primaryKey"`

	InfrastructureCenterName string                            `json:"infrastructure_center_name" gorm:"column:infrastructure_center_name;type:varchar(200);not null"`
	InfrastructureAddress    string                            `json:"infrastructure_address" gorm:"column:infrastructure_address;type:text"`
	InfrastructureDistrict   string                            `json:"infrastructure_district" gorm:"column:infrastructure_district;type:varchar(120);index:idx_infrastructures_district"`
	InfrastructureCapacity   int                               `json:"infrastructure_capacity" gorm:"column:infrastructure_capacity;not null;default:0"`
	InfrastructureFacilities datatypes.JSONType[FacilityFlags] `json:"infrastructure_facilities" gorm:"column:infrastructure_facilities"`

	// lifecycle
	InfrastructureStatus              InfrastructureStatus `json:"infrastructure_status" gorm:"column:infrastructure_status;type:varchar(20);not null;default:'available';index:idx_infrastructures_status"`
	InfrastructureAssignedSDCID       *uuid.UUID           `json:"infrastructure_assigned_sdc_id,omitempty" gorm:"column:infrastructure_assigned_sdc_id;type:uuid;index"`
	InfrastructureAssignedWorkOrderID *uuid.UUID           `json:"infrastructure_assigned_work_order_id,omitempty" gorm:"column:infrastructure_assigned_work_order_id;type:uuid"`
	InfrastructureAssignedAt          *time.Time           `json:"infrastructure_assigned_at,omitempty" gorm:"column:infrastructure_assigned_at"`

	InfrastructureCreatedAt time.Time `json:"infrastructure_created_at" gorm:"column:infrastructure_created_at;not null;autoCreateTime"`
	InfrastructureUpdatedAt time.Time `json:"infrastructure_updated_at" gorm:"column:infrastructure_updated_at;not null;autoUpdateTime"`
}

func (InfrastructureModel) TableName() string { return "infrastructures" }

func (m *InfrastructureModel) BeforeCreate(tx *gorm.DB) error {
	if m.InfrastructureID == uuid.Nil {
		m.InfrastructureID = uuid.New()
	}
	if m.InfrastructureStatus == "" {
		m.InfrastructureStatus = InfrastructureStatusAvailable
	}
	if !m.InfrastructureStatus.Valid() {
		return fmt.Errorf("invalid infrastructure_status %q", m.InfrastructureStatus)
	}
	if m.InfrastructureCapacity < 0 {
		return fmt.Errorf("infrastructure_capacity must be >= 0")
	}
	return nil
}
