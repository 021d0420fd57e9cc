// file: internals/features/resources/registry/model/trainer_model.go
package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// StringList is a postgres text[] (lib/pq array codec); other dialects store the
// same array literal in a text column.
type StringList pq.StringArray

func (s StringList) Value() (driver.Value, error) { return pq.StringArray(s).Value() }

func (s *StringList) Scan(src any) error { return (*pq.StringArray)(s).Scan(src) }

func (StringList) GormDataType() string { return "text" }

func (StringList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

type TrainerModel struct {
	TrainerID uuid.UUID `json:"trainer_id" gorm:"column:trainer_id;type:uuid;primaryKey"`

	TrainerName            string     `json:"trainer_name" gorm:"column:trainer_name;type:varchar(160);not null"`
	TrainerEmail           *string    `json:"trainer_email,omitempty" gorm:"column:trainer_email;type:varchar(160)"`
	TrainerPhone           *string    `json:"trainer_phone,omitempty" gorm:"column:trainer_phone;type:varchar(30)"`
	TrainerDomain          string     `json:"trainer_domain" gorm:"column:trainer_domain;type:varchar(120);not null;index:idx_trainers_domain"`
	TrainerSpecializations StringList `json:"trainer_specializations" gorm:"column:trainer_specializations"`
	TrainerQualification   *string    `json:"trainer_qualification,omitempty" gorm:"column:trainer_qualification;type:varchar(160)"`
	TrainerExperienceYears int        `json:"trainer_experience_years" gorm:"column:trainer_experience_years;not null;default:0"`

	// lifecycle
	TrainerStatus              TrainerStatus `json:"trainer_status" gorm:"column:trainer_status;type:varchar(20);not null;default:'available';index:idx_trainers_status"`
	TrainerAssignedSDCID       *uuid.UUID    `json:"trainer_assigned_sdc_id,omitempty" gorm:"column:trainer_assigned_sdc_id;type:uuid;index"`
	TrainerAssignedWorkOrderID *uuid.UUID    `json:"trainer_assigned_work_order_id,omitempty" gorm:"column:trainer_assigned_work_order_id;type:uuid"`
	TrainerAssignedAt          *time.Time    `json:"trainer_assigned_at,omitempty" gorm:"column:trainer_assigned_at"`

	TrainerCreatedAt time.Time `json:"trainer_created_at" gorm:"column:trainer_created_at;not null;autoCreateTime"`
	TrainerUpdatedAt time.Time `json:"trainer_updated_at" gorm:"column:trainer_updated_at;not null;autoUpdateTime"`
}

func (TrainerModel) TableName() string { return "trainers" }

func (m *TrainerModel) BeforeCreate(tx *gorm.DB) error {
	if m.TrainerID == uuid.Nil {
		m.TrainerID = uuid.New()
	}
	if m.TrainerStatus == "" {
		m.TrainerStatus = TrainerStatusAvailable
	}
	if !m.TrainerStatus.Valid() {
		return fmt.Errorf("invalid trainer_status %q", m.TrainerStatus)
	}
	return nil
}
