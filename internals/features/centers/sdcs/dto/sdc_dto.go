// file: internals/features/centers/sdcs/dto/sdc_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	"sdc_backend/internals/features/centers/sdcs/service"
)

type ProvisionSDCRequest struct {
	DistrictName     string     `json:"district_name" validate:"required,max=120"`
	Suffix           string     `json:"suffix" validate:"omitempty,max=40"`
	JobRoleID        uuid.UUID  `json:"job_role_id" validate:"required"`
	TargetStudents   int        `json:"target_students" validate:"required,min=1"`
	InfrastructureID *uuid.UUID `json:"infrastructure_id,omitempty"`
	ManagerID        *uuid.UUID `json:"manager_id,omitempty"`
	TrainerID        *uuid.UUID `json:"trainer_id,omitempty"`
}

func (r *ProvisionSDCRequest) Normalize() {
	r.DistrictName = strings.TrimSpace(r.DistrictName)
	r.Suffix = strings.TrimSpace(r.Suffix)
}

func (r ProvisionSDCRequest) ToInput(workOrderID uuid.UUID) service.ProvisionInput {
	return service.ProvisionInput{
		WorkOrderID:      workOrderID,
		DistrictName:     r.DistrictName,
		Suffix:           r.Suffix,
		JobRoleID:        r.JobRoleID,
		TargetStudents:   r.TargetStudents,
		InfrastructureID: r.InfrastructureID,
		ManagerID:        r.ManagerID,
		TrainerID:        r.TrainerID,
	}
}

type UpdateProgressRequest struct {
	Mobilized  int `json:"mobilized" validate:"min=0"`
	InTraining int `json:"in_training" validate:"min=0"`
	Assessed   int `json:"assessed" validate:"min=0"`
	Placed     int `json:"placed" validate:"min=0"`
}

func (r UpdateProgressRequest) ToInput() service.ProgressInput {
	return service.ProgressInput{
		Mobilized:  r.Mobilized,
		InTraining: r.InTraining,
		Assessed:   r.Assessed,
		Placed:     r.Placed,
	}
}
