package database

import (
	"log"

	"gorm.io/gorm"

	jobRoleModel "sdc_backend/internals/features/catalog/job_roles/model"
	sdcModel "sdc_backend/internals/features/centers/sdcs/model"
	invoiceModel "sdc_backend/internals/features/finance/invoices/model"
	registryModel "sdc_backend/internals/features/resources/registry/model"
	woModel "sdc_backend/internals/features/workorders/master_work_orders/model"
)

// Models in dependency order: parents before the rows that reference them.
func Models() []any {
	return []any{
		&jobRoleModel.JobRoleModel{},
		&woModel.MasterWorkOrderModel{},
		&woModel.WorkOrderJobRoleModel{},
		&woModel.WorkOrderDistrictModel{},
		&sdcModel.SDCModel{},
		&sdcModel.SDCProgressModel{},
		&registryModel.TrainerModel{},
		&registryModel.ManagerModel{},
		&registryModel.InfrastructureModel{},
		&invoiceModel.InvoiceModel{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	log.Printf("✅ migrated %d tables", len(Models()))
	return nil
}
