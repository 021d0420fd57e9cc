// file: internals/features/workorders/master_work_orders/dto/master_work_order_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	"sdc_backend/internals/features/workorders/master_work_orders/service"
)

/* =======================================================
   REQUEST
   ======================================================= */

type JobRoleTargetRequest struct {
	JobRoleID uuid.UUID `json:"job_role_id" validate:"required"`
	Target    int       `json:"target" validate:"required,min=1"`
}

type DistrictRequest struct {
	Name     string `json:"district_name" validate:"required,max=120"`
	SDCCount int    `json:"sdc_count" validate:"required,min=1"`
}

type CreateMasterWorkOrderRequest struct {
	Number       string                 `json:"master_work_order_number" validate:"required,max=80"`
	AwardingBody string                 `json:"master_work_order_awarding_body" validate:"omitempty,max=160"`
	SchemeName   string                 `json:"master_work_order_scheme_name" validate:"omitempty,max=160"`
	TotalTarget  int                    `json:"master_work_order_total_target" validate:"required,min=1"`
	JobRoles     []JobRoleTargetRequest `json:"job_roles" validate:"required,min=1,dive"`
	Districts    []DistrictRequest      `json:"districts" validate:"omitempty,dive"`
}

func (r *CreateMasterWorkOrderRequest) Normalize() {
	r.Number = strings.TrimSpace(r.Number)
	r.AwardingBody = strings.TrimSpace(r.AwardingBody)
	r.SchemeName = strings.TrimSpace(r.SchemeName)
}

func (r CreateMasterWorkOrderRequest) ToInput() service.CreateInput {
	in := service.CreateInput{
		Number:       r.Number,
		AwardingBody: r.AwardingBody,
		SchemeName:   r.SchemeName,
		TotalTarget:  r.TotalTarget,
		JobRoles:     make([]service.JobRoleTarget, 0, len(r.JobRoles)),
		Districts:    make([]service.DistrictQuota, 0, len(r.Districts)),
	}
	for _, jr := range r.JobRoles {
		in.JobRoles = append(in.JobRoles, service.JobRoleTarget{JobRoleID: jr.JobRoleID, Target: jr.Target})
	}
	for _, d := range r.Districts {
		in.Districts = append(in.Districts, service.DistrictQuota{Name: d.Name, SDCCount: d.SDCCount})
	}
	return in
}

/* =======================================================
   QUERY
   ======================================================= */

// ListMasterWorkOrderQuery binds ?status=&q=
type ListMasterWorkOrderQuery struct {
	Status string `query:"status"`
	Q      string `query:"q"`
}

// SortColumns whitelists ?sort_by= for the list endpoint.
var SortColumns = map[string]string{
	"created_at":   "master_work_order_created_at",
	"number":       "master_work_order_number",
	"total_target": "master_work_order_total_target",
	"status":       "master_work_order_status",
}
