// file: internals/features/catalog/job_roles/model/job_role_model.go
package model

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- ENUM job_role_category -----------------------------------------------
type JobRoleCategory string

const (
	JobRoleCategoryA      JobRoleCategory = "A"
	JobRoleCategoryB      JobRoleCategory = "B"
	JobRoleCategoryCustom JobRoleCategory = "CUSTOM"
)

func (c JobRoleCategory) Valid() bool {
	switch c {
	case JobRoleCategoryA, JobRoleCategoryB, JobRoleCategoryCustom:
		return true
	}
	return false
}

// --- MODEL job_roles -------------------------------------------------------
type JobRoleModel struct {
	JobRoleID uuid.UUID `json:"job_role_id" gorm:"column:job_role_id;type:uuid;primaryKey"`

	JobRoleCode     string          `json:"job_role_code" gorm:"column:job_role_code;type:varchar(40);not null;uniqueIndex:ux_job_roles_code"`
	JobRoleName     string          `json:"job_role_name" gorm:"column:job_role_name;type:varchar(160);not null"`
	JobRoleCategory JobRoleCategory `json:"job_role_category" gorm:"column:job_role_category;type:varchar(10);not null;default:'CUSTOM'"`

	// Pricing
	JobRoleRatePerHour        float64 `json:"job_role_rate_per_hour" gorm:"column:job_role_rate_per_hour;type:numeric(12,2);not null"`
	JobRoleTotalTrainingHours int     `json:"job_role_total_training_hours" gorm:"column:job_role_total_training_hours;not null"`
	JobRoleDefaultDailyHours  int     `json:"job_role_default_daily_hours" gorm:"column:job_role_default_daily_hours;not null;default:8"`
	JobRoleAwardingBody       string  `json:"job_role_awarding_body" gorm:"column:job_role_awarding_body;type:varchar(160)"`
	JobRoleSchemeName         string  `json:"job_role_scheme_name" gorm:"column:job_role_scheme_name;type:varchar(160)"`
	JobRoleIsActive           bool    `json:"job_role_is_active" gorm:"column:job_role_is_active;not null;default:true;index:idx_job_roles_active"`

	JobRoleCreatedAt time.Time `json:"job_role_created_at" gorm:"column:job_role_created_at;not null;autoCreateTime"`
	JobRoleUpdatedAt time.Time `json:"job_role_updated_at" gorm:"column:job_role_updated_at;not null;autoUpdateTime"`
}

func (JobRoleModel) TableName() string { return "job_roles" }

// BeforeCreate: set ID + normalize code
func (m *JobRoleModel) BeforeCreate(tx *gorm.DB) error {
	if m.JobRoleID == uuid.Nil {
		m.JobRoleID = uuid.New()
	}
	m.JobRoleCode = strings.ToUpper(strings.TrimSpace(m.JobRoleCode))
	if m.JobRoleCode == "" {
		return fmt.Errorf("job_role_code is required")
	}
	if m.JobRoleCategory == "" {
		m.JobRoleCategory = JobRoleCategoryCustom
	}
	if !m.JobRoleCategory.Valid() {
		return fmt.Errorf("invalid job_role_category %q", m.JobRoleCategory)
	}
	return nil
}

// ContractValue returns target × hours × rate, rounded to paise.
func ContractValue(targetStudents, hours int, rate float64) float64 {
	v := float64(targetStudents) * float64(hours) * rate
	return math.Round(v*100) / 100
}
