// file: internals/features/workorders/master_work_orders/model/master_work_order_model.go
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- ENUM work_order_status -------------------------------------------------
type WorkOrderStatus string

const (
	WorkOrderStatusActive    WorkOrderStatus = "active"
	WorkOrderStatusCompleted WorkOrderStatus = "completed"
)

func (s WorkOrderStatus) Valid() bool {
	switch s {
	case WorkOrderStatusActive, WorkOrderStatusCompleted:
		return true
	}
	return false
}

// --- MODEL master_work_orders ----------------------------------------------
type MasterWorkOrderModel struct {
	MasterWorkOrderID uuid.UUID `json:"master_work_order_id" gorm:"column:master_work_order_id;type:uuid;primaryKey"`

	MasterWorkOrderNumber       string          `json:"master_work_order_number" gorm:"column:master_work_order_number;type:varchar(80);not null;uniqueIndex:ux_master_work_orders_number"`
	MasterWorkOrderAwardingBody string          `json:"master_work_order_awarding_body" gorm:"column:master_work_order_awarding_body;type:varchar(160)"`
	MasterWorkOrderSchemeName   string          `json:"master_work_order_scheme_name" gorm:"column:master_work_order_scheme_name;type:varchar(160)"`
	MasterWorkOrderTotalTarget  int             `json:"master_work_order_total_target" gorm:"column:master_work_order_total_target;not null"`
	MasterWorkOrderStatus       WorkOrderStatus `json:"master_work_order_status" gorm:"column:master_work_order_status;type:varchar(20);not null;default:'active';index:idx_master_work_orders_status"`
	MasterWorkOrderCompletedAt  *time.Time      `json:"master_work_order_completed_at,omitempty" gorm:"column:master_work_order_completed_at"`

	MasterWorkOrderCreatedAt time.Time `json:"master_work_order_created_at" gorm:"column:master_work_order_created_at;not null;autoCreateTime"`
	MasterWorkOrderUpdatedAt time.Time `json:"master_work_order_updated_at" gorm:"column:master_work_order_updated_at;not null;autoUpdateTime"`

	JobRoles  []WorkOrderJobRoleModel  `json:"job_roles,omitempty" gorm:"foreignKey:WorkOrderJobRoleWorkOrderID;references:MasterWorkOrderID"`
	Districts []WorkOrderDistrictModel `json:"districts,omitempty" gorm:"foreignKey:WorkOrderDistrictWorkOrderID;references:MasterWorkOrderID"`
}

func (MasterWorkOrderModel) TableName() string { return "master_work_orders" }

func (m *MasterWorkOrderModel) BeforeCreate(tx *gorm.DB) error {
	if m.MasterWorkOrderID == uuid.Nil {
		m.MasterWorkOrderID = uuid.New()
	}
	m.MasterWorkOrderNumber = strings.TrimSpace(m.MasterWorkOrderNumber)
	if m.MasterWorkOrderNumber == "" {
		return fmt.Errorf("master_work_order_number is required")
	}
	if m.MasterWorkOrderTotalTarget < 1 {
		return fmt.Errorf("master_work_order_total_target must be >= 1")
	}
	if m.MasterWorkOrderStatus == "" {
		m.MasterWorkOrderStatus = WorkOrderStatusActive
	}
	return nil
}

func (m *MasterWorkOrderModel) IsActive() bool {
	return m.MasterWorkOrderStatus == WorkOrderStatusActive
}

// HasJobRole reports whether the job role is declared on this work order (JobRoles must be loaded).
func (m *MasterWorkOrderModel) HasJobRole(jobRoleID uuid.UUID) bool {
	for _, jr := range m.JobRoles {
		if jr.WorkOrderJobRoleJobRoleID == jobRoleID {
			return true
		}
	}
	return false
}

// --- MODEL work_order_job_roles ---------------------------------------------
type WorkOrderJobRoleModel struct {
	WorkOrderJobRoleID          uuid.UUID `json:"work_order_job_role_id" gorm:"column:work_order_job_role_id;type:uuid;primaryKey"`
	WorkOrderJobRoleWorkOrderID uuid.UUID `json:"work_order_job_role_work_order_id" gorm:"column:work_order_job_role_work_order_id;type:uuid;not null;uniqueIndex:ux_wo_job_roles_pair,priority:1"`
	WorkOrderJobRoleJobRoleID   uuid.UUID `json:"work_order_job_role_job_role_id" gorm:"column:work_order_job_role_job_role_id;type:uuid;not null;uniqueIndex:ux_wo_job_roles_pair,priority:2"`
	WorkOrderJobRoleTarget      int       `json:"work_order_job_role_target" gorm:"column:work_order_job_role_target;not null"`
	WorkOrderJobRolePosition    int       `json:"work_order_job_role_position" gorm:"column:work_order_job_role_position;not null;default:0"`
}

func (WorkOrderJobRoleModel) TableName() string { return "work_order_job_roles" }

func (m *WorkOrderJobRoleModel) BeforeCreate(tx *gorm.DB) error {
	if m.WorkOrderJobRoleID == uuid.Nil {
		m.WorkOrderJobRoleID = uuid.New()
	}
	if m.WorkOrderJobRoleTarget < 1 {
		return fmt.Errorf("work_order_job_role_target must be >= 1")
	}
	return nil
}

// --- MODEL work_order_districts ---------------------------------------------
type WorkOrderDistrictModel struct {
	WorkOrderDistrictID          uuid.UUID `json:"work_order_district_id" gorm:"column:work_order_district_id;type:uuid;primaryKey"`
	WorkOrderDistrictWorkOrderID uuid.UUID `json:"work_order_district_work_order_id" gorm:"column:work_order_district_work_order_id;type:uuid;not null;index"`
	WorkOrderDistrictName        string    `json:"work_order_district_name" gorm:"column:work_order_district_name;type:varchar(120);not null"`
	WorkOrderDistrictSDCCount    int       `json:"work_order_district_sdc_count" gorm:"column:work_order_district_sdc_count;not null"`
	WorkOrderDistrictPosition    int       `json:"work_order_district_position" gorm:"column:work_order_district_position;not null;default:0"`
}

func (WorkOrderDistrictModel) TableName() string { return "work_order_districts" }

func (m *WorkOrderDistrictModel) BeforeCreate(tx *gorm.DB) error {
	if m.WorkOrderDistrictID == uuid.Nil {
		m.WorkOrderDistrictID = uuid.New()
	}
	if m.WorkOrderDistrictSDCCount < 1 {
		return fmt.Errorf("work_order_district_sdc_count must be >= 1")
	}
	return nil
}
