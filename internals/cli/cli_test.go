package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	burndownSvc "sdc_backend/internals/features/progress/burndown/service"
	allocationSvc "sdc_backend/internals/features/workorders/allocation/service"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMigrateSeedAndReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sdcctl.db")

	out, err := run(t, "--sqlite", path, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "migrated")

	out, err = run(t, "--sqlite", path, "seed", "job-roles", "--file", "../seeds/job_roles/data_job_roles.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "upserted 4 job roles")

	out, err = run(t, "--sqlite", path, "--format", "json", "burndown")
	require.NoError(t, err)
	var bd burndownSvc.Burndown
	require.NoError(t, json.Unmarshal([]byte(out), &bd))
	assert.Zero(t, bd.Overall.SDCs)

	out, err = run(t, "--sqlite", path, "audit")
	require.NoError(t, err)
	assert.Contains(t, out, "checked 0 work orders, 0 violation(s)")

	_, err = run(t, "--sqlite", path, "allocation", uuid.NewString())
	assert.Error(t, err)

	_, err = run(t, "--sqlite", path, "allocation", "not-a-uuid")
	assert.Error(t, err)
}

func TestInvalidFormat(t *testing.T) {
	_, err := run(t, "--sqlite", filepath.Join(t.TempDir(), "x.db"), "--format", "xml", "migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRenderAllocation_Text(t *testing.T) {
	snap := &allocationSvc.Snapshot{
		WorkOrderNumber: "WO-1",
		Status:          "active",
		JobRoles: []allocationSvc.JobRoleAllocation{
			{JobRoleCode: "ELE-Q0101", Target: 100, Allocated: 60, Remaining: 40, SDCCount: 1},
		},
		TotalTarget:    100,
		TotalAllocated: 60,
		TotalRemaining: 40,
		SDCsCreated:    1,
	}
	var buf bytes.Buffer
	require.NoError(t, renderAllocation(&buf, "text", snap))

	out := buf.String()
	assert.Contains(t, out, "WO-1 (active) fully allocated: false")
	assert.Contains(t, out, "ELE-Q0101")
	assert.Contains(t, out, "TOTAL")
}

func TestRenderBurndown_Text(t *testing.T) {
	bd := burndownSvc.Build([]burndownSvc.StageRow{
		{WorkOrderID: uuid.New(), WorkOrderNumber: "WO-1", Target: 10, Placed: 5},
	})
	var buf bytes.Buffer
	require.NoError(t, renderBurndown(&buf, "text", &bd))

	out := buf.String()
	assert.Contains(t, out, "OVERALL")
	assert.Contains(t, out, "50.00%")
}
