package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sdc_backend/internals/seeds"
	jobRoles "sdc_backend/internals/seeds/job_roles"
)

func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load reference data",
	}

	var file string
	jobRolesCmd := &cobra.Command{
		Use:          "job-roles",
		Short:        "Upsert the job role catalog from a YAML file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := rootOpts.open()
			if err != nil {
				return err
			}
			n, err := jobRoles.SeedJobRolesFromYAML(cmd.Context(), db, file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "upserted %d job roles\n", n)
			return nil
		},
	}
	jobRolesCmd.Flags().StringVar(&file, "file", seeds.DefaultJobRoleCatalog, "catalog YAML file")

	cmd.AddCommand(jobRolesCmd)
	return cmd
}
