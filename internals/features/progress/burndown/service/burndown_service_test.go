package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdcModel "sdc_backend/internals/features/centers/sdcs/model"
	"sdc_backend/internals/helpers/apperr"
	"sdc_backend/internals/testutil"
)

func TestBurndown_FromStoredProgress(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	jr := testutil.JobRole(t, db, "ELE/Q0101", 10, 10)
	wo1 := testutil.WorkOrder(t, db, "WO-1", []testutil.Target{{JobRoleID: jr.JobRoleID, Target: 20}})
	wo2 := testutil.WorkOrder(t, db, "WO-2", []testutil.Target{{JobRoleID: jr.JobRoleID, Target: 40}})

	a := testutil.SDC(t, db, wo1, jr.JobRoleID, "SDC_A", 10)
	b := testutil.SDC(t, db, wo1, jr.JobRoleID, "SDC_B", 10)
	testutil.SDC(t, db, wo2, jr.JobRoleID, "SDC_C", 40)

	require.NoError(t, db.Create(&sdcModel.SDCProgressModel{
		SDCProgressSDCID: a.SDCID, SDCProgressMobilized: 10, SDCProgressInTraining: 10,
		SDCProgressAssessed: 10, SDCProgressPlaced: 10,
	}).Error)
	require.NoError(t, db.Create(&sdcModel.SDCProgressModel{
		SDCProgressSDCID: b.SDCID, SDCProgressMobilized: 5,
	}).Error)

	svc := New(db)

	t.Run("single work order", func(t *testing.T) {
		out, err := svc.Burndown(ctx, &wo1.MasterWorkOrderID)
		require.NoError(t, err)
		assert.Equal(t, 2, out.Overall.SDCs)
		assert.Equal(t, 20, out.Overall.Target)
		assert.Equal(t, 15, out.Overall.Mobilized)
		assert.Equal(t, 10, out.Overall.Placed)
		assert.Equal(t, 50.0, out.Overall.CompletionPct)
		require.Len(t, out.PerWorkOrder, 1)
		assert.Equal(t, "WO-1", out.PerWorkOrder[0].WorkOrderNumber)
	})

	t.Run("all work orders", func(t *testing.T) {
		out, err := svc.Burndown(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 3, out.Overall.SDCs)
		assert.Equal(t, 60, out.Overall.Target)
		assert.Equal(t, 16.67, out.Overall.CompletionPct)
		require.Len(t, out.PerWorkOrder, 2)

		// SDC_C has no progress row and counts as zero
		second := out.PerWorkOrder[1]
		assert.Equal(t, wo2.MasterWorkOrderID, second.WorkOrderID)
		assert.Equal(t, 40, second.Funnel.Target)
		assert.Zero(t, second.Funnel.Mobilized)
		assert.Zero(t, second.Funnel.CompletionPct)
	})

	t.Run("rows ordered by sdc name", func(t *testing.T) {
		rows, err := svc.LoadRows(ctx, &wo1.MasterWorkOrderID)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, a.SDCID, rows[0].SDCID)
		assert.Equal(t, b.SDCID, rows[1].SDCID)
	})
}

func TestBurndown_UnknownWorkOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	id := uuid.New()

	_, err := New(db).Burndown(context.Background(), &id)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestBurndown_EmptyWorkOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	jr := testutil.JobRole(t, db, "ELE/Q0101", 10, 10)
	wo := testutil.WorkOrder(t, db, "WO-1", []testutil.Target{{JobRoleID: jr.JobRoleID, Target: 20}})

	out, err := New(db).Burndown(context.Background(), &wo.MasterWorkOrderID)
	require.NoError(t, err)
	assert.Zero(t, out.Overall.SDCs)
	assert.Empty(t, out.PerWorkOrder)
}
