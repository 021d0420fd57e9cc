package job_roles

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdc_backend/internals/features/catalog/job_roles/model"
	"sdc_backend/internals/testutil"
)

func TestParseCatalog_BundledFile(t *testing.T) {
	content, err := os.ReadFile("data_job_roles.yaml")
	require.NoError(t, err)

	rows, err := ParseCatalog(content)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	first := rows[0]
	assert.Equal(t, "ELE-Q0101", first.JobRoleCode)
	assert.Equal(t, model.JobRoleCategoryA, first.JobRoleCategory)
	assert.Equal(t, 46.5, first.JobRoleRatePerHour)
	assert.Equal(t, 390, first.JobRoleTotalTrainingHours)
	assert.True(t, first.JobRoleIsActive)

	assert.Equal(t, 8, rows[1].JobRoleDefaultDailyHours, "daily hours default to 8")
}

func TestParseCatalog_Rejects(t *testing.T) {
	cases := map[string]string{
		"missing name": `
job_roles:
  - code: X1
    rate_per_hour: 10
    total_training_hours: 100`,
		"duplicate code": `
job_roles:
  - {code: x1, name: One, rate_per_hour: 10, total_training_hours: 100}
  - {code: X1, name: Two, rate_per_hour: 10, total_training_hours: 100}`,
		"zero rate": `
job_roles:
  - {code: X1, name: One, rate_per_hour: 0, total_training_hours: 100}`,
		"unknown category": `
job_roles:
  - {code: X1, name: One, category: Z, rate_per_hour: 10, total_training_hours: 100}`,
		"not yaml": "job_roles: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestParseCatalog_DefaultsCategory(t *testing.T) {
	rows, err := ParseCatalog([]byte(`
job_roles:
  - {code: " x1 ", name: One, rate_per_hour: 10, total_training_hours: 100}`))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "X1", rows[0].JobRoleCode)
	assert.Equal(t, model.JobRoleCategoryCustom, rows[0].JobRoleCategory)
}

func TestSeedJobRolesFromYAML_Idempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	n, err := SeedJobRolesFromYAML(ctx, db, "data_job_roles.yaml")
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)

	var before model.JobRoleModel
	require.NoError(t, db.Where("job_role_code = ?", "ELE-Q0101").Take(&before).Error)

	updated := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(updated, []byte(`
job_roles:
  - {code: ELE-Q0101, name: Assistant Electrician, category: A, rate_per_hour: 50, total_training_hours: 390}`), 0o644))

	_, err = SeedJobRolesFromYAML(ctx, db, updated)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.JobRoleModel{}).Count(&count).Error)
	assert.EqualValues(t, 4, count)

	var after model.JobRoleModel
	require.NoError(t, db.Where("job_role_code = ?", "ELE-Q0101").Take(&after).Error)
	assert.Equal(t, before.JobRoleID, after.JobRoleID)
	assert.Equal(t, 50.0, after.JobRoleRatePerHour)
}

func TestSeedJobRolesFromYAML_MissingFile(t *testing.T) {
	db := testutil.NewTestDB(t)
	_, err := SeedJobRolesFromYAML(context.Background(), db, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
