// file: internals/features/resources/registry/model/manager_model.go
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ManagerModel struct {
	ManagerID uuid.UUID `json:"manager_id" gorm:"column:manager_id;type:uuid;primaryKey"`

	ManagerName            string  `json:"manager_name" gorm:"column:manager_name;type:varchar(160);not null"`
	ManagerEmail           *string `json:"manager_email,omitempty" gorm:"column:manager_email;type:varchar(160)"`
	ManagerPhone           *string `json:"manager_phone,omitempty" gorm:"column:manager_phone;type:varchar(30)"`
	ManagerExperienceYears int     `json:"manager_experience_years" gorm:"column:manager_experience_years;not null;default:0"`
	ManagerLocation        string  `json:"manager_location" gorm:"column:manager_location;type:varchar(160);index:idx_managers_location"`

	// lifecycle
	ManagerStatus              ManagerStatus `json:"manager_status" gorm:"column:manager_status;type:varchar(20);not null;default:'available';index:idx_managers_status"`
	ManagerAssignedSDCID       *uuid.UUID    `json:"manager_assigned_sdc_id,omitempty" gorm:"column:manager_assigned_sdc_id;type:uuid;index"`
	ManagerAssignedWorkOrderID *uuid.UUID    `json:"manager_assigned_work_order_id,omitempty" gorm:"column:manager_assigned_work_order_id;type:uuid"`
	ManagerAssignedAt          *time.Time    `json:"manager_assigned_at,omitempty" gorm:"column:manager_assigned_at"`

	ManagerCreatedAt time.Time `json:"manager_created_at" gorm:"column:manager_created_at;not null;autoCreateTime"`
	ManagerUpdatedAt time.Time `json:"manager_updated_at" gorm:"column:manager_updated_at;not null;autoUpdateTime"`
}

func (ManagerModel) TableName() string { return "managers" }

func (m *ManagerModel) BeforeCreate(tx *gorm.DB) error {
	if m.ManagerID == uuid.Nil {
		m.ManagerID = uuid.New()
	}
	if m.ManagerStatus == "" {
		m.ManagerStatus = ManagerStatusAvailable
	}
	if !m.ManagerStatus.Valid() {
		return fmt.Errorf("invalid manager_status %q", m.ManagerStatus)
	}
	return nil
}
