package seeds

import (
	"context"

	"gorm.io/gorm"

	jobRoles "sdc_backend/internals/seeds/job_roles"
)

const DefaultJobRoleCatalog = "internals/seeds/job_roles/data_job_roles.yaml"

func RunAllSeeds(ctx context.Context, db *gorm.DB) error {
	//* Catalog
	if _, err := jobRoles.SeedJobRolesFromYAML(ctx, db, DefaultJobRoleCatalog); err != nil {
		return err
	}
	return nil
}
