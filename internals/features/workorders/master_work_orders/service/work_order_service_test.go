package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	regModel "sdc_backend/internals/features/resources/registry/model"
	registry "sdc_backend/internals/features/resources/registry/service"
	model "sdc_backend/internals/features/workorders/master_work_orders/model"
	helper "sdc_backend/internals/helpers"
	"sdc_backend/internals/helpers/apperr"
	"sdc_backend/internals/testutil"
)

func TestCreateWorkOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := New(db)
	ctx := context.Background()
	a := testutil.JobRole(t, db, "A-01", 40, 300)
	b := testutil.JobRole(t, db, "B-01", 35, 200)

	view, err := svc.CreateWorkOrder(ctx, CreateInput{
		Number:      " WO-2024-001 ",
		SchemeName:  "PMKVY",
		TotalTarget: 100,
		JobRoles:    []JobRoleTarget{{JobRoleID: a.JobRoleID, Target: 60}, {JobRoleID: b.JobRoleID, Target: 40}},
		Districts:   []DistrictQuota{{Name: "north   goa", SDCCount: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, "WO-2024-001", view.MasterWorkOrderNumber)
	assert.Equal(t, model.WorkOrderStatusActive, view.MasterWorkOrderStatus)

	got, err := svc.GetWorkOrder(ctx, view.MasterWorkOrderID)
	require.NoError(t, err)
	require.Len(t, got.JobRoles, 2)
	assert.Equal(t, a.JobRoleID, got.JobRoles[0].WorkOrderJobRoleJobRoleID)
	assert.Equal(t, 60, got.JobRoles[0].WorkOrderJobRoleTarget)
	require.Len(t, got.Districts, 1)
	assert.Equal(t, "north goa", got.Districts[0].WorkOrderDistrictName)
	assert.Equal(t, 0, got.SDCsCreatedCount)

	_, err = svc.CreateWorkOrder(ctx, CreateInput{
		Number:      "WO-2024-001",
		TotalTarget: 10,
		JobRoles:    []JobRoleTarget{{JobRoleID: a.JobRoleID, Target: 10}},
	})
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestCreateWorkOrder_TargetMismatch(t *testing.T) {
	db := testutil.NewTestDB(t)
	a := testutil.JobRole(t, db, "A-01", 40, 300)

	_, err := New(db).CreateWorkOrder(context.Background(), CreateInput{
		Number:      "WO-1",
		TotalTarget: 100,
		JobRoles:    []JobRoleTarget{{JobRoleID: a.JobRoleID, Target: 90}},
	})
	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindTargetMismatch, appErr.Kind)
	assert.Equal(t, 90, appErr.Details["sum"])
	assert.Equal(t, 100, appErr.Details["total_target"])

	var n int64
	require.NoError(t, db.Model(&model.MasterWorkOrderModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCreateWorkOrder_Rejections(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := New(db)
	ctx := context.Background()
	a := testutil.JobRole(t, db, "A-01", 40, 300)
	inactive := testutil.JobRole(t, db, "OLD-01", 40, 300)
	require.NoError(t, db.Model(inactive).Update("job_role_is_active", false).Error)

	tests := []struct {
		name string
		in   CreateInput
		want error
	}{
		{"missing number", CreateInput{TotalTarget: 10, JobRoles: []JobRoleTarget{{a.JobRoleID, 10}}}, apperr.ErrValidation},
		{"no job roles", CreateInput{Number: "WO-X", TotalTarget: 10}, apperr.ErrValidation},
		{"duplicate job role", CreateInput{Number: "WO-X", TotalTarget: 10, JobRoles: []JobRoleTarget{{a.JobRoleID, 5}, {a.JobRoleID, 5}}}, apperr.ErrValidation},
		{"unknown job role", CreateInput{Number: "WO-X", TotalTarget: 10, JobRoles: []JobRoleTarget{{uuid.New(), 10}}}, apperr.ErrInvalidJobRole},
		{"inactive job role", CreateInput{Number: "WO-X", TotalTarget: 10, JobRoles: []JobRoleTarget{{inactive.JobRoleID, 10}}}, apperr.ErrInvalidJobRole},
		{"duplicate district", CreateInput{
			Number: "WO-X", TotalTarget: 10,
			JobRoles:  []JobRoleTarget{{a.JobRoleID, 10}},
			Districts: []DistrictQuota{{"Pune", 1}, {"PUNE", 2}},
		}, apperr.ErrValidation},
		{"zero sdc count", CreateInput{
			Number: "WO-X", TotalTarget: 10,
			JobRoles:  []JobRoleTarget{{a.JobRoleID, 10}},
			Districts: []DistrictQuota{{"Pune", 0}},
		}, apperr.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateWorkOrder(ctx, tt.in)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestCompleteWorkOrder_ReleasesResources(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := New(db)
	reg := registry.New(db)
	ctx := context.Background()

	jr := testutil.JobRole(t, db, "A-01", 40, 300)
	wo := testutil.WorkOrder(t, db, "WO-1", []testutil.Target{{JobRoleID: jr.JobRoleID, Target: 100}})
	sdcA := testutil.SDC(t, db, wo, jr.JobRoleID, "SDC_A", 40)
	sdcB := testutil.SDC(t, db, wo, jr.JobRoleID, "SDC_B", 40)
	sdcC := testutil.SDC(t, db, wo, jr.JobRoleID, "SDC_C", 20)

	trA := testutil.Trainer(t, db, "Ravi")
	trB := testutil.Trainer(t, db, "Sunil")
	mgr := testutil.Manager(t, db, "Asha")
	infra := testutil.Infrastructure(t, db, "Center A", regModel.InfrastructureStatusAvailable)
	released := testutil.Trainer(t, db, "Early")

	for _, step := range []struct {
		kind regModel.ResourceKind
		id   uuid.UUID
		sdc  uuid.UUID
	}{
		{regModel.KindTrainer, trA.TrainerID, sdcA.SDCID},
		{regModel.KindTrainer, trB.TrainerID, sdcB.SDCID},
		{regModel.KindManager, mgr.ManagerID, sdcA.SDCID},
		{regModel.KindInfrastructure, infra.InfrastructureID, sdcB.SDCID},
		{regModel.KindTrainer, released.TrainerID, sdcC.SDCID},
	} {
		_, err := reg.Assign(ctx, step.kind, step.id, step.sdc)
		require.NoError(t, err)
	}
	// released by hand before completion; not counted again
	_, err := reg.Release(ctx, regModel.KindTrainer, released.TrainerID)
	require.NoError(t, err)

	res, err := svc.CompleteWorkOrder(ctx, wo.MasterWorkOrderID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.TrainersReleased)
	assert.Equal(t, int64(1), res.ManagersReleased)
	assert.Equal(t, int64(1), res.InfrastructureReleased)

	var trainers []regModel.TrainerModel
	require.NoError(t, db.Find(&trainers).Error)
	for _, tr := range trainers {
		assert.Equal(t, regModel.TrainerStatusAvailable, tr.TrainerStatus, tr.TrainerName)
		assert.Nil(t, tr.TrainerAssignedSDCID, tr.TrainerName)
	}
	var gotInfra regModel.InfrastructureModel
	require.NoError(t, db.Where("infrastructure_id = ?", infra.InfrastructureID).Take(&gotInfra).Error)
	assert.Equal(t, regModel.InfrastructureStatusAvailable, gotInfra.InfrastructureStatus)

	got, err := svc.GetWorkOrder(ctx, wo.MasterWorkOrderID)
	require.NoError(t, err)
	assert.Equal(t, model.WorkOrderStatusCompleted, got.MasterWorkOrderStatus)
	assert.NotNil(t, got.MasterWorkOrderCompletedAt)
	assert.Equal(t, 3, got.SDCsCreatedCount)
	assert.InDelta(t, sdcA.SDCContractValue+sdcB.SDCContractValue+sdcC.SDCContractValue, got.TotalContractValue, 0.001)

	_, err = svc.CompleteWorkOrder(ctx, wo.MasterWorkOrderID)
	assert.True(t, errors.Is(err, apperr.ErrAlreadyCompleted))

	_, err = svc.CompleteWorkOrder(ctx, uuid.New())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestListWorkOrders(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := New(db)
	ctx := context.Background()
	jr := testutil.JobRole(t, db, "A-01", 40, 300)
	testutil.WorkOrder(t, db, "WO-ALPHA", []testutil.Target{{JobRoleID: jr.JobRoleID, Target: 10}})
	done := testutil.WorkOrder(t, db, "WO-BETA", []testutil.Target{{JobRoleID: jr.JobRoleID, Target: 10}})
	_, err := svc.CompleteWorkOrder(ctx, done.MasterWorkOrderID)
	require.NoError(t, err)

	page := helper.Paging{Page: 1, PerPage: 20, Limit: 20}

	rows, total, err := svc.ListWorkOrders(ctx, ListFilter{Status: "active", Paging: page})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "WO-ALPHA", rows[0].MasterWorkOrderNumber)

	rows, total, err = svc.ListWorkOrders(ctx, ListFilter{Search: "beta", Paging: page})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "WO-BETA", rows[0].MasterWorkOrderNumber)

	_, _, err = svc.ListWorkOrders(ctx, ListFilter{Status: "archived", Paging: page})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}
