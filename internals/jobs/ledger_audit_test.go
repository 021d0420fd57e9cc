package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdc_backend/internals/testutil"
)

func TestRunLedgerAudit(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	jr := testutil.JobRole(t, db, "ELE-1", 10, 100)
	healthy := testutil.WorkOrder(t, db, "WO-1", []testutil.Target{{JobRoleID: jr.JobRoleID, Target: 50}})
	broken := testutil.WorkOrder(t, db, "WO-2", []testutil.Target{{JobRoleID: jr.JobRoleID, Target: 50}})

	testutil.SDC(t, db, healthy, jr.JobRoleID, "SDC_A", 50)
	// direct inserts bypass the provisioning checks
	testutil.SDC(t, db, broken, jr.JobRoleID, "SDC_B", 40)
	testutil.SDC(t, db, broken, jr.JobRoleID, "SDC_C", 40)

	report, err := RunLedgerAudit(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Checked)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, broken.MasterWorkOrderID, report.Violations[0].WorkOrderID)
	assert.Equal(t, "WO-2", report.Violations[0].WorkOrderNumber)
	assert.Contains(t, report.Violations[0].Message, "over-allocated")
}

func TestRunLedgerAudit_Empty(t *testing.T) {
	db := testutil.NewTestDB(t)

	report, err := RunLedgerAudit(context.Background(), db)
	require.NoError(t, err)
	assert.Zero(t, report.Checked)
	assert.Empty(t, report.Violations)
}

func TestRunLedgerAudit_Cancelled(t *testing.T) {
	db := testutil.NewTestDB(t)
	jr := testutil.JobRole(t, db, "ELE-1", 10, 100)
	testutil.WorkOrder(t, db, "WO-1", []testutil.Target{{JobRoleID: jr.JobRoleID, Target: 50}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunLedgerAudit(ctx, db)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStartLedgerAuditCron(t *testing.T) {
	db := testutil.NewTestDB(t)

	_, err := StartLedgerAuditCron(db, LedgerAuditConfig{Schedule: "not a schedule", Timeout: time.Second})
	assert.Error(t, err)

	c, err := StartLedgerAuditCron(db, LedgerAuditConfig{Schedule: "@every 1h", Timeout: time.Second})
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
	<-c.Stop().Done()
}

func TestLoadLedgerAuditConfig(t *testing.T) {
	t.Setenv("LEDGER_AUDIT_ENABLED", "true")
	t.Setenv("LEDGER_AUDIT_CRON", "@hourly")
	t.Setenv("LEDGER_AUDIT_TIMEOUT", "bogus")

	cfg := LoadLedgerAuditConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "@hourly", cfg.Schedule)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
}
