package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	jobRoleModel "sdc_backend/internals/features/catalog/job_roles/model"
	model "sdc_backend/internals/features/centers/sdcs/model"
	regModel "sdc_backend/internals/features/resources/registry/model"
	allocation "sdc_backend/internals/features/workorders/allocation/service"
	woModel "sdc_backend/internals/features/workorders/master_work_orders/model"
	"sdc_backend/internals/helpers/apperr"
	"sdc_backend/internals/testutil"
)

type fixture struct {
	db  *gorm.DB
	svc *Service
	jr  *jobRoleModel.JobRoleModel
	wo  *woModel.MasterWorkOrderModel
}

func newFixture(t *testing.T, target int, districts ...testutil.District) fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	jr := testutil.JobRole(t, db, "ELE-Q0101", 46.5, 390)
	wo := testutil.WorkOrder(t, db, "WO-2024-001", []testutil.Target{{JobRoleID: jr.JobRoleID, Target: target}}, districts...)
	return fixture{db: db, svc: New(db), jr: jr, wo: wo}
}

func (f fixture) input(district string, target int) ProvisionInput {
	return ProvisionInput{
		WorkOrderID:    f.wo.MasterWorkOrderID,
		DistrictName:   district,
		JobRoleID:      f.jr.JobRoleID,
		TargetStudents: target,
	}
}

func (f fixture) sdcCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.SDCModel{}).Count(&n).Error)
	return n
}

func TestProvisionSDC_AllocationScenario(t *testing.T) {
	f := newFixture(t, 100)
	ctx := context.Background()

	a, err := f.svc.ProvisionSDC(ctx, f.input("Pune", 60))
	require.NoError(t, err)
	assert.Equal(t, "SDC_PUNE", a.SDCName)

	snap, err := allocation.ComputeAllocationStatus(ctx, f.db, f.wo.MasterWorkOrderID)
	require.NoError(t, err)
	assert.Equal(t, 40, snap.JobRoles[0].Remaining)

	in := f.input("Nashik", 50)
	_, err = f.svc.ProvisionSDC(ctx, in)
	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindAllocationExceeded, appErr.Kind)
	require.NotNil(t, appErr.Remaining)
	assert.Equal(t, 40, *appErr.Remaining)

	in.TargetStudents = 40
	_, err = f.svc.ProvisionSDC(ctx, in)
	require.NoError(t, err)

	snap, err = allocation.ComputeAllocationStatus(ctx, f.db, f.wo.MasterWorkOrderID)
	require.NoError(t, err)
	assert.Equal(t, 0, snap.JobRoles[0].Remaining)
	assert.True(t, snap.IsFullyAllocated)
	assert.Equal(t, 2, snap.SDCsCreated)
}

func TestProvisionSDC_ContractSnapshotAndProgressRow(t *testing.T) {
	f := newFixture(t, 100)

	sdc, err := f.svc.ProvisionSDC(context.Background(), f.input("north goa", 30))
	require.NoError(t, err)
	assert.Equal(t, "SDC_NORTH_GOA", sdc.SDCName)
	assert.Equal(t, 46.5, sdc.SDCRatePerHour)
	assert.Equal(t, 390, sdc.SDCTrainingHours)
	assert.InDelta(t, 30*390*46.5, sdc.SDCContractValue, 0.001)

	got, err := f.svc.GetSDC(context.Background(), sdc.SDCID)
	require.NoError(t, err)
	assert.Equal(t, sdc.SDCID, got.Progress.SDCProgressSDCID)
	assert.Zero(t, got.Progress.SDCProgressPlaced)
}

func TestProvisionSDC_InfrastructureInUse(t *testing.T) {
	f := newFixture(t, 100)
	infra := testutil.Infrastructure(t, f.db, "Busy Center", regModel.InfrastructureStatusInUse)

	in := f.input("Pune", 10)
	in.InfrastructureID = &infra.InfrastructureID
	_, err := f.svc.ProvisionSDC(context.Background(), in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrResourceUnavailable))
	assert.Zero(t, f.sdcCount(t))
}

func TestProvisionSDC_ReservesResources(t *testing.T) {
	f := newFixture(t, 100)
	infra := testutil.Infrastructure(t, f.db, "Center A", regModel.InfrastructureStatusAvailable)
	mgr := testutil.Manager(t, f.db, "Asha")
	tr := testutil.Trainer(t, f.db, "Ravi")

	in := f.input("Pune", 25)
	in.InfrastructureID = &infra.InfrastructureID
	in.ManagerID = &mgr.ManagerID
	in.TrainerID = &tr.TrainerID
	sdc, err := f.svc.ProvisionSDC(context.Background(), in)
	require.NoError(t, err)

	var gotInfra regModel.InfrastructureModel
	require.NoError(t, f.db.Where("infrastructure_id = ?", infra.InfrastructureID).Take(&gotInfra).Error)
	assert.Equal(t, regModel.InfrastructureStatusInUse, gotInfra.InfrastructureStatus)
	require.NotNil(t, gotInfra.InfrastructureAssignedSDCID)
	assert.Equal(t, sdc.SDCID, *gotInfra.InfrastructureAssignedSDCID)
	require.NotNil(t, gotInfra.InfrastructureAssignedWorkOrderID)
	assert.Equal(t, f.wo.MasterWorkOrderID, *gotInfra.InfrastructureAssignedWorkOrderID)

	var gotMgr regModel.ManagerModel
	require.NoError(t, f.db.Where("manager_id = ?", mgr.ManagerID).Take(&gotMgr).Error)
	assert.Equal(t, regModel.ManagerStatusAssigned, gotMgr.ManagerStatus)

	var gotTr regModel.TrainerModel
	require.NoError(t, f.db.Where("trainer_id = ?", tr.TrainerID).Take(&gotTr).Error)
	assert.Equal(t, regModel.TrainerStatusAssigned, gotTr.TrainerStatus)
	require.NotNil(t, gotTr.TrainerAssignedSDCID)
	assert.Equal(t, sdc.SDCID, *gotTr.TrainerAssignedSDCID)

	// a reserved manager cannot back a second SDC
	in2 := f.input("Nashik", 5)
	in2.ManagerID = &mgr.ManagerID
	_, err = f.svc.ProvisionSDC(context.Background(), in2)
	assert.True(t, errors.Is(err, apperr.ErrResourceUnavailable))
}

func TestProvisionSDC_FailureLeavesNoPartialState(t *testing.T) {
	f := newFixture(t, 100)
	infra := testutil.Infrastructure(t, f.db, "Center A", regModel.InfrastructureStatusAvailable)
	missing := uuid.New()

	in := f.input("Pune", 25)
	in.InfrastructureID = &infra.InfrastructureID
	in.ManagerID = &missing
	_, err := f.svc.ProvisionSDC(context.Background(), in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	assert.Zero(t, f.sdcCount(t))
	var gotInfra regModel.InfrastructureModel
	require.NoError(t, f.db.Where("infrastructure_id = ?", infra.InfrastructureID).Take(&gotInfra).Error)
	assert.Equal(t, regModel.InfrastructureStatusAvailable, gotInfra.InfrastructureStatus)
	assert.Nil(t, gotInfra.InfrastructureAssignedSDCID)

	var progressRows int64
	require.NoError(t, f.db.Model(&model.SDCProgressModel{}).Count(&progressRows).Error)
	assert.Zero(t, progressRows)
}

func TestProvisionSDC_ConcurrentRequestsNeverOverAllocate(t *testing.T) {
	f := newFixture(t, 100)
	const workers = 10

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		exceeded int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := f.input("Pune", 15)
			in.Suffix = fmt.Sprintf("_%d", i)
			_, err := f.svc.ProvisionSDC(context.Background(), in)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, apperr.ErrAllocationExceeded):
				exceeded++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 6, ok)
	assert.Equal(t, workers-6, exceeded)

	snap, err := allocation.ComputeAllocationStatus(context.Background(), f.db, f.wo.MasterWorkOrderID)
	require.NoError(t, err)
	assert.Equal(t, 90, snap.TotalAllocated)
	assert.Equal(t, 10, snap.JobRoles[0].Remaining)
}

func TestProvisionSDC_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("target below one", func(t *testing.T) {
		f := newFixture(t, 100)
		_, err := f.svc.ProvisionSDC(ctx, f.input("Pune", 0))
		assert.True(t, errors.Is(err, apperr.ErrValidation))
	})

	t.Run("unknown work order", func(t *testing.T) {
		f := newFixture(t, 100)
		in := f.input("Pune", 5)
		in.WorkOrderID = uuid.New()
		_, err := f.svc.ProvisionSDC(ctx, in)
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})

	t.Run("completed work order", func(t *testing.T) {
		f := newFixture(t, 100)
		require.NoError(t, f.db.Model(&woModel.MasterWorkOrderModel{}).
			Where("master_work_order_id = ?", f.wo.MasterWorkOrderID).
			Update("master_work_order_status", woModel.WorkOrderStatusCompleted).Error)
		_, err := f.svc.ProvisionSDC(ctx, f.input("Pune", 5))
		assert.True(t, errors.Is(err, apperr.ErrWorkOrderClosed))
	})

	t.Run("job role not on work order", func(t *testing.T) {
		f := newFixture(t, 100)
		other := testutil.JobRole(t, f.db, "RAS-Q0104", 39, 280)
		in := f.input("Pune", 5)
		in.JobRoleID = other.JobRoleID
		_, err := f.svc.ProvisionSDC(ctx, in)
		assert.True(t, errors.Is(err, apperr.ErrInvalidJobRole))
	})

	t.Run("duplicate name", func(t *testing.T) {
		f := newFixture(t, 100)
		_, err := f.svc.ProvisionSDC(ctx, f.input("Pune", 5))
		require.NoError(t, err)
		_, err = f.svc.ProvisionSDC(ctx, f.input(" pune ", 5))
		assert.True(t, errors.Is(err, apperr.ErrDuplicateSDCName))

		in := f.input("Pune", 5)
		in.Suffix = "_2"
		sdc, err := f.svc.ProvisionSDC(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "SDC_PUNE_2", sdc.SDCName)
	})

	t.Run("empty district", func(t *testing.T) {
		f := newFixture(t, 100)
		_, err := f.svc.ProvisionSDC(ctx, f.input("   ", 5))
		assert.True(t, errors.Is(err, apperr.ErrValidation))
	})
}

func TestProvisionSDC_DistrictQuota(t *testing.T) {
	f := newFixture(t, 100, testutil.District{Name: "Pune", SDCCount: 1}, testutil.District{Name: "North Goa", SDCCount: 2})
	ctx := context.Background()

	sdc, err := f.svc.ProvisionSDC(ctx, f.input("pune", 10))
	require.NoError(t, err)
	assert.Equal(t, "Pune", sdc.SDCDistrict)

	in := f.input("Pune", 10)
	in.Suffix = "_2"
	_, err = f.svc.ProvisionSDC(ctx, in)
	assert.True(t, errors.Is(err, apperr.ErrDistrictQuotaReached))

	_, err = f.svc.ProvisionSDC(ctx, f.input("Nagpur", 10))
	assert.True(t, errors.Is(err, apperr.ErrInvalidDistrict))

	_, err = f.svc.ProvisionSDC(ctx, f.input("north goa", 10))
	require.NoError(t, err)
}

func TestUpdateProgress(t *testing.T) {
	f := newFixture(t, 100)
	ctx := context.Background()
	sdc, err := f.svc.ProvisionSDC(ctx, f.input("Pune", 20))
	require.NoError(t, err)

	_, err = f.svc.UpdateProgress(ctx, sdc.SDCID, ProgressInput{Mobilized: 20, InTraining: 18, Assessed: 12, Placed: 10})
	require.NoError(t, err)

	got, err := f.svc.GetSDC(ctx, sdc.SDCID)
	require.NoError(t, err)
	assert.Equal(t, 20, got.Progress.SDCProgressMobilized)
	assert.Equal(t, 10, got.Progress.SDCProgressPlaced)

	_, err = f.svc.UpdateProgress(ctx, sdc.SDCID, ProgressInput{Placed: 21})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	_, err = f.svc.UpdateProgress(ctx, sdc.SDCID, ProgressInput{Mobilized: -1})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	_, err = f.svc.UpdateProgress(ctx, uuid.New(), ProgressInput{})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	// several counters out of range: the first stage is reported, every time
	for i := 0; i < 20; i++ {
		_, err = f.svc.UpdateProgress(ctx, sdc.SDCID, ProgressInput{InTraining: -1, Assessed: 99, Placed: 99})
		var ae *apperr.Error
		require.True(t, errors.As(err, &ae))
		assert.Equal(t, "in_training", ae.Details["field"])
	}
}
