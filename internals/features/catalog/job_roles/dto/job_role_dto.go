// file: internals/features/catalog/job_roles/dto/job_role_dto.go
package dto

import (
	"strings"

	model "sdc_backend/internals/features/catalog/job_roles/model"
)

type CreateJobRoleRequest struct {
	Code               string  `json:"job_role_code" validate:"required,max=40"`
	Name               string  `json:"job_role_name" validate:"required,max=160"`
	Category           string  `json:"job_role_category" validate:"omitempty,oneof=A B CUSTOM"`
	RatePerHour        float64 `json:"job_role_rate_per_hour" validate:"required,gt=0"`
	TotalTrainingHours int     `json:"job_role_total_training_hours" validate:"required,min=1"`
	DefaultDailyHours  int     `json:"job_role_default_daily_hours" validate:"omitempty,min=1,max=24"`
	AwardingBody       string  `json:"job_role_awarding_body" validate:"omitempty,max=160"`
	SchemeName         string  `json:"job_role_scheme_name" validate:"omitempty,max=160"`
}

func (r *CreateJobRoleRequest) Normalize() {
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.ToUpper(strings.TrimSpace(r.Category))
	if r.DefaultDailyHours == 0 {
		r.DefaultDailyHours = 8
	}
}

func (r CreateJobRoleRequest) ToModel() *model.JobRoleModel {
	return &model.JobRoleModel{
		JobRoleCode:               r.Code,
		JobRoleName:               r.Name,
		JobRoleCategory:           model.JobRoleCategory(r.Category),
		JobRoleRatePerHour:        r.RatePerHour,
		JobRoleTotalTrainingHours: r.TotalTrainingHours,
		JobRoleDefaultDailyHours:  r.DefaultDailyHours,
		JobRoleAwardingBody:       strings.TrimSpace(r.AwardingBody),
		JobRoleSchemeName:         strings.TrimSpace(r.SchemeName),
		JobRoleIsActive:           true,
	}
}

type UpdateJobRoleRequest struct {
	Code               *string  `json:"job_role_code" validate:"omitempty,max=40"`
	Name               *string  `json:"job_role_name" validate:"omitempty,max=160"`
	Category           *string  `json:"job_role_category" validate:"omitempty,oneof=A B CUSTOM"`
	RatePerHour        *float64 `json:"job_role_rate_per_hour" validate:"omitempty,gt=0"`
	TotalTrainingHours *int     `json:"job_role_total_training_hours" validate:"omitempty,min=1"`
	DefaultDailyHours  *int     `json:"job_role_default_daily_hours" validate:"omitempty,min=1,max=24"`
	AwardingBody       *string  `json:"job_role_awarding_body" validate:"omitempty,max=160"`
	SchemeName         *string  `json:"job_role_scheme_name" validate:"omitempty,max=160"`
	IsActive           *bool    `json:"job_role_is_active"`
}

func (r UpdateJobRoleRequest) ToUpdates() map[string]any {
	m := map[string]any{}
	if r.Code != nil {
		m["job_role_code"] = strings.ToUpper(strings.TrimSpace(*r.Code))
	}
	if r.Name != nil {
		m["job_role_name"] = strings.TrimSpace(*r.Name)
	}
	if r.Category != nil {
		m["job_role_category"] = strings.ToUpper(strings.TrimSpace(*r.Category))
	}
	if r.RatePerHour != nil {
		m["job_role_rate_per_hour"] = *r.RatePerHour
	}
	if r.TotalTrainingHours != nil {
		m["job_role_total_training_hours"] = *r.TotalTrainingHours
	}
	if r.DefaultDailyHours != nil {
		m["job_role_default_daily_hours"] = *r.DefaultDailyHours
	}
	if r.AwardingBody != nil {
		m["job_role_awarding_body"] = strings.TrimSpace(*r.AwardingBody)
	}
	if r.SchemeName != nil {
		m["job_role_scheme_name"] = strings.TrimSpace(*r.SchemeName)
	}
	if r.IsActive != nil {
		m["job_role_is_active"] = *r.IsActive
	}
	return m
}

type ListJobRoleQuery struct {
	Category string `query:"category"`
	Active   *bool  `query:"active"`
	Q        string `query:"q"`
}
