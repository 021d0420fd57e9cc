// Package testutil opens migrated SQLite databases and inserts fixtures for
// service tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	database "sdc_backend/internals/databases"
	jobRoleModel "sdc_backend/internals/features/catalog/job_roles/model"
	sdcModel "sdc_backend/internals/features/centers/sdcs/model"
	regModel "sdc_backend/internals/features/resources/registry/model"
	woModel "sdc_backend/internals/features/workorders/master_work_orders/model"
)

// NewTestDB returns a migrated database in the test's temp dir.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "sdc_test.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// JobRole inserts an active catalog entry.
func JobRole(t testing.TB, db *gorm.DB, code string, rate float64, hours int) *jobRoleModel.JobRoleModel {
	t.Helper()
	m := &jobRoleModel.JobRoleModel{
		JobRoleCode:               code,
		JobRoleName:               code + " program",
		JobRoleCategory:           jobRoleModel.JobRoleCategoryA,
		JobRoleRatePerHour:        rate,
		JobRoleTotalTrainingHours: hours,
		JobRoleDefaultDailyHours:  8,
		JobRoleIsActive:           true,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

// Target is one job role line of a fixture work order.
type Target struct {
	JobRoleID uuid.UUID
	Target    int
}

// District is one district quota of a fixture work order.
type District struct {
	Name     string
	SDCCount int
}

// WorkOrder inserts an active work order whose total target is the sum of targets.
func WorkOrder(t testing.TB, db *gorm.DB, number string, targets []Target, districts ...District) *woModel.MasterWorkOrderModel {
	t.Helper()
	total := 0
	for _, tg := range targets {
		total += tg.Target
	}
	wo := &woModel.MasterWorkOrderModel{
		MasterWorkOrderNumber:      number,
		MasterWorkOrderTotalTarget: total,
		MasterWorkOrderStatus:      woModel.WorkOrderStatusActive,
	}
	require.NoError(t, db.Omit("JobRoles", "Districts").Create(wo).Error)

	for i, tg := range targets {
		row := woModel.WorkOrderJobRoleModel{
			WorkOrderJobRoleWorkOrderID: wo.MasterWorkOrderID,
			WorkOrderJobRoleJobRoleID:   tg.JobRoleID,
			WorkOrderJobRoleTarget:      tg.Target,
			WorkOrderJobRolePosition:    i,
		}
		require.NoError(t, db.Create(&row).Error)
		wo.JobRoles = append(wo.JobRoles, row)
	}
	for i, d := range districts {
		row := woModel.WorkOrderDistrictModel{
			WorkOrderDistrictWorkOrderID: wo.MasterWorkOrderID,
			WorkOrderDistrictName:        d.Name,
			WorkOrderDistrictSDCCount:    d.SDCCount,
			WorkOrderDistrictPosition:    i,
		}
		require.NoError(t, db.Create(&row).Error)
		wo.Districts = append(wo.Districts, row)
	}
	return wo
}

// SDC inserts an SDC row directly, bypassing the provisioning checks.
func SDC(t testing.TB, db *gorm.DB, wo *woModel.MasterWorkOrderModel, jobRoleID uuid.UUID, name string, target int) *sdcModel.SDCModel {
	t.Helper()
	m := &sdcModel.SDCModel{
		SDCWorkOrderID:    wo.MasterWorkOrderID,
		SDCName:           name,
		SDCDistrict:       name,
		SDCJobRoleID:      jobRoleID,
		SDCTargetStudents: target,
		SDCRatePerHour:    10,
		SDCTrainingHours:  10,
		SDCContractValue:  jobRoleModel.ContractValue(target, 10, 10),
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func Trainer(t testing.TB, db *gorm.DB, name string) *regModel.TrainerModel {
	t.Helper()
	m := &regModel.TrainerModel{
		TrainerName:            name,
		TrainerDomain:          "Electronics",
		TrainerSpecializations: regModel.StringList{"wiring"},
		TrainerStatus:          regModel.TrainerStatusAvailable,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func Manager(t testing.TB, db *gorm.DB, name string) *regModel.ManagerModel {
	t.Helper()
	m := &regModel.ManagerModel{
		ManagerName:   name,
		ManagerStatus: regModel.ManagerStatusAvailable,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func Infrastructure(t testing.TB, db *gorm.DB, name string, status regModel.InfrastructureStatus) *regModel.InfrastructureModel {
	t.Helper()
	m := &regModel.InfrastructureModel{
		InfrastructureCenterName: name,
		InfrastructureCapacity:   30,
		InfrastructureStatus:     status,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}
