package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdc_backend/internals/helpers/apperr"
	"sdc_backend/internals/testutil"
)

func TestComputeAllocationStatus_NoSDCs(t *testing.T) {
	db := testutil.NewTestDB(t)
	jr := testutil.JobRole(t, db, "ELE-01", 40, 300)
	wo := testutil.WorkOrder(t, db, "WO-1", []testutil.Target{{JobRoleID: jr.JobRoleID, Target: 100}})

	snap, err := ComputeAllocationStatus(context.Background(), db, wo.MasterWorkOrderID)
	require.NoError(t, err)

	require.Len(t, snap.JobRoles, 1)
	assert.Equal(t, "ELE-01", snap.JobRoles[0].JobRoleCode)
	assert.Equal(t, 100, snap.JobRoles[0].Target)
	assert.Equal(t, 0, snap.JobRoles[0].Allocated)
	assert.Equal(t, 100, snap.JobRoles[0].Remaining)
	assert.Equal(t, 100, snap.TotalRemaining)
	assert.Equal(t, 0, snap.SDCsCreated)
	assert.False(t, snap.IsFullyAllocated)
}

func TestComputeAllocationStatus_PerJobRole(t *testing.T) {
	db := testutil.NewTestDB(t)
	a := testutil.JobRole(t, db, "A-01", 40, 300)
	b := testutil.JobRole(t, db, "B-01", 35, 200)
	wo := testutil.WorkOrder(t, db, "WO-2", []testutil.Target{
		{JobRoleID: a.JobRoleID, Target: 60},
		{JobRoleID: b.JobRoleID, Target: 40},
	})
	testutil.SDC(t, db, wo, a.JobRoleID, "SDC_ONE", 30)
	testutil.SDC(t, db, wo, a.JobRoleID, "SDC_TWO", 30)
	testutil.SDC(t, db, wo, b.JobRoleID, "SDC_THREE", 15)

	snap, err := ComputeAllocationStatus(context.Background(), db, wo.MasterWorkOrderID)
	require.NoError(t, err)

	lineA, ok := snap.ForJobRole(a.JobRoleID)
	require.True(t, ok)
	assert.Equal(t, 60, lineA.Allocated)
	assert.Equal(t, 0, lineA.Remaining)
	assert.Equal(t, 2, lineA.SDCCount)

	lineB, ok := snap.ForJobRole(b.JobRoleID)
	require.True(t, ok)
	assert.Equal(t, 15, lineB.Allocated)
	assert.Equal(t, 25, lineB.Remaining)

	assert.Equal(t, 75, snap.TotalAllocated)
	assert.Equal(t, 25, snap.TotalRemaining)
	assert.Equal(t, 3, snap.SDCsCreated)
	assert.False(t, snap.IsFullyAllocated)

	_, ok = snap.ForJobRole(uuid.New())
	assert.False(t, ok)
}

func TestComputeAllocationStatus_FullyAllocated(t *testing.T) {
	db := testutil.NewTestDB(t)
	jr := testutil.JobRole(t, db, "ELE-01", 40, 300)
	wo := testutil.WorkOrder(t, db, "WO-3", []testutil.Target{{JobRoleID: jr.JobRoleID, Target: 50}})
	testutil.SDC(t, db, wo, jr.JobRoleID, "SDC_X", 50)

	snap, err := ComputeAllocationStatus(context.Background(), db, wo.MasterWorkOrderID)
	require.NoError(t, err)
	assert.True(t, snap.IsFullyAllocated)
	assert.Equal(t, 0, snap.TotalRemaining)
}

func TestComputeAllocationStatus_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)

	_, err := ComputeAllocationStatus(context.Background(), db, uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestComputeAllocationStatus_OverAllocatedIsInvariantViolation(t *testing.T) {
	db := testutil.NewTestDB(t)
	jr := testutil.JobRole(t, db, "ELE-01", 40, 300)
	wo := testutil.WorkOrder(t, db, "WO-4", []testutil.Target{{JobRoleID: jr.JobRoleID, Target: 20}})
	// written behind the provisioning workflow's back
	testutil.SDC(t, db, wo, jr.JobRoleID, "SDC_BIG", 25)

	_, err := ComputeAllocationStatus(context.Background(), db, wo.MasterWorkOrderID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvariantViolation, apperr.KindOf(err))
}

func TestComputeAllocationStatus_UndeclaredJobRole(t *testing.T) {
	db := testutil.NewTestDB(t)
	declared := testutil.JobRole(t, db, "A-01", 40, 300)
	stray := testutil.JobRole(t, db, "B-01", 40, 300)
	wo := testutil.WorkOrder(t, db, "WO-5", []testutil.Target{{JobRoleID: declared.JobRoleID, Target: 20}})
	testutil.SDC(t, db, wo, stray.JobRoleID, "SDC_STRAY", 5)

	_, err := ComputeAllocationStatus(context.Background(), db, wo.MasterWorkOrderID)
	assert.Equal(t, apperr.KindInvariantViolation, apperr.KindOf(err))
}
