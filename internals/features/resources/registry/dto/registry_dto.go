// file: internals/features/resources/registry/dto/registry_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "sdc_backend/internals/features/resources/registry/model"
)

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

/* =======================================================
   ASSIGN
   ======================================================= */

type AssignRequest struct {
	ConsumerID uuid.UUID `json:"consumer_id" validate:"required"`
}

type MaintenanceRequest struct {
	Maintenance *bool `json:"maintenance" validate:"required"`
}

/* =======================================================
   TRAINERS
   ======================================================= */

type CreateTrainerRequest struct {
	Name            string   `json:"trainer_name" validate:"required,max=160"`
	Email           *string  `json:"trainer_email" validate:"omitempty,email,max=160"`
	Phone           *string  `json:"trainer_phone" validate:"omitempty,max=30"`
	Domain          string   `json:"trainer_domain" validate:"required,max=120"`
	Specializations []string `json:"trainer_specializations" validate:"omitempty,dive,max=80"`
	Qualification   *string  `json:"trainer_qualification" validate:"omitempty,max=160"`
	ExperienceYears int      `json:"trainer_experience_years" validate:"min=0,max=60"`
}

func (r CreateTrainerRequest) ToModel() *model.TrainerModel {
	return &model.TrainerModel{
		TrainerName:            strings.TrimSpace(r.Name),
		TrainerEmail:           trimPtr(r.Email),
		TrainerPhone:           trimPtr(r.Phone),
		TrainerDomain:          strings.TrimSpace(r.Domain),
		TrainerSpecializations: model.StringList(r.Specializations),
		TrainerQualification:   trimPtr(r.Qualification),
		TrainerExperienceYears: r.ExperienceYears,
	}
}

type UpdateTrainerRequest struct {
	Name            *string  `json:"trainer_name" validate:"omitempty,max=160"`
	Email           *string  `json:"trainer_email" validate:"omitempty,email,max=160"`
	Phone           *string  `json:"trainer_phone" validate:"omitempty,max=30"`
	Domain          *string  `json:"trainer_domain" validate:"omitempty,max=120"`
	Specializations []string `json:"trainer_specializations" validate:"omitempty,dive,max=80"`
	Qualification   *string  `json:"trainer_qualification" validate:"omitempty,max=160"`
	ExperienceYears *int     `json:"trainer_experience_years" validate:"omitempty,min=0,max=60"`
}

func (r UpdateTrainerRequest) ToUpdates() map[string]any {
	m := map[string]any{}
	if r.Name != nil {
		m["trainer_name"] = strings.TrimSpace(*r.Name)
	}
	if r.Email != nil {
		m["trainer_email"] = trimPtr(r.Email)
	}
	if r.Phone != nil {
		m["trainer_phone"] = trimPtr(r.Phone)
	}
	if r.Domain != nil {
		m["trainer_domain"] = strings.TrimSpace(*r.Domain)
	}
	if r.Specializations != nil {
		m["trainer_specializations"] = model.StringList(r.Specializations)
	}
	if r.Qualification != nil {
		m["trainer_qualification"] = trimPtr(r.Qualification)
	}
	if r.ExperienceYears != nil {
		m["trainer_experience_years"] = *r.ExperienceYears
	}
	return m
}

/* =======================================================
   MANAGERS
   ======================================================= */

type CreateManagerRequest struct {
	Name            string  `json:"manager_name" validate:"required,max=160"`
	Email           *string `json:"manager_email" validate:"omitempty,email,max=160"`
	Phone           *string `json:"manager_phone" validate:"omitempty,max=30"`
	ExperienceYears int     `json:"manager_experience_years" validate:"min=0,max=60"`
	Location        string  `json:"manager_location" validate:"omitempty,max=160"`
}

func (r CreateManagerRequest) ToModel() *model.ManagerModel {
	return &model.ManagerModel{
		ManagerName:            strings.TrimSpace(r.Name),
		ManagerEmail:           trimPtr(r.Email),
		ManagerPhone:           trimPtr(r.Phone),
		ManagerExperienceYears: r.ExperienceYears,
		ManagerLocation:        strings.TrimSpace(r.Location),
	}
}

type UpdateManagerRequest struct {
	Name            *string `json:"manager_name" validate:"omitempty,max=160"`
	Email           *string `json:"manager_email" validate:"omitempty,email,max=160"`
	Phone           *string `json:"manager_phone" validate:"omitempty,max=30"`
	ExperienceYears *int    `json:"manager_experience_years" validate:"omitempty,min=0,max=60"`
	Location        *string `json:"manager_location" validate:"omitempty,max=160"`
}

func (r UpdateManagerRequest) ToUpdates() map[string]any {
	m := map[string]any{}
	if r.Name != nil {
		m["manager_name"] = strings.TrimSpace(*r.Name)
	}
	if r.Email != nil {
		m["manager_email"] = trimPtr(r.Email)
	}
	if r.Phone != nil {
		m["manager_phone"] = trimPtr(r.Phone)
	}
	if r.ExperienceYears != nil {
		m["manager_experience_years"] = *r.ExperienceYears
	}
	if r.Location != nil {
		m["manager_location"] = strings.TrimSpace(*r.Location)
	}
	return m
}

/* =======================================================
   INFRASTRUCTURES
   ======================================================= */

type CreateInfrastructureRequest struct {
	CenterName string              `json:"infrastructure_center_name" validate:"required,max=200"`
	Address    string              `json:"infrastructure_address"`
	District   string              `json:"infrastructure_district" validate:"omitempty,max=120"`
	Capacity   int                 `json:"infrastructure_capacity" validate:"min=0"`
	Facilities model.FacilityFlags `json:"infrastructure_facilities"`
}

func (r CreateInfrastructureRequest) ToModel() *model.InfrastructureModel {
	return &model.InfrastructureModel{
		InfrastructureCenterName: strings.TrimSpace(r.CenterName),
		InfrastructureAddress:    strings.TrimSpace(r.Address),
		InfrastructureDistrict:   strings.TrimSpace(r.District),
		InfrastructureCapacity:   r.Capacity,
		InfrastructureFacilities: datatypes.NewJSONType(r.Facilities),
	}
}

type UpdateInfrastructureRequest struct {
	CenterName *string              `json:"infrastructure_center_name" validate:"omitempty,max=200"`
	Address    *string              `json:"infrastructure_address"`
	District   *string              `json:"infrastructure_district" validate:"omitempty,max=120"`
	Capacity   *int                 `json:"infrastructure_capacity" validate:"omitempty,min=0"`
	Facilities *model.FacilityFlags `json:"infrastructure_facilities"`
}

func (r UpdateInfrastructureRequest) ToUpdates() map[string]any {
	m := map[string]any{}
	if r.CenterName != nil {
		m["infrastructure_center_name"] = strings.TrimSpace(*r.CenterName)
	}
	if r.Address != nil {
		m["infrastructure_address"] = strings.TrimSpace(*r.Address)
	}
	if r.District != nil {
		m["infrastructure_district"] = strings.TrimSpace(*r.District)
	}
	if r.Capacity != nil {
		m["infrastructure_capacity"] = *r.Capacity
	}
	if r.Facilities != nil {
		m["infrastructure_facilities"] = datatypes.NewJSONType(*r.Facilities)
	}
	return m
}
