package model

import "fmt"

type ResourceKind string
type TrainerStatus string
type ManagerStatus string
type InfrastructureStatus string

const (
	KindTrainer        ResourceKind = "trainers"
	KindManager        ResourceKind = "managers"
	KindInfrastructure ResourceKind = "infrastructures"
)

const (
	TrainerStatusAvailable TrainerStatus = "available"
	TrainerStatusAssigned  TrainerStatus = "assigned"
)

const (
	ManagerStatusAvailable ManagerStatus = "available"
	ManagerStatusAssigned  ManagerStatus = "assigned"
)

const (
	InfrastructureStatusAvailable   InfrastructureStatus = "available"
	InfrastructureStatusInUse       InfrastructureStatus = "in_use"
	InfrastructureStatusMaintenance InfrastructureStatus = "maintenance"
)

func ParseResourceKind(s string) (ResourceKind, error) {
	switch ResourceKind(s) {
	case KindTrainer, KindManager, KindInfrastructure:
		return ResourceKind(s), nil
	}
	return "", fmt.Errorf("unknown resource kind %q", s)
}

func (s TrainerStatus) Valid() bool {
	switch s {
	case TrainerStatusAvailable, TrainerStatusAssigned:
		return true
	}
	return false
}

func (s TrainerStatus) IsReserved() bool {
	switch s {
	case TrainerStatusAssigned:
		return true
	case TrainerStatusAvailable:
		return false
	}
	return false
}

func (s ManagerStatus) Valid() bool {
	switch s {
	case ManagerStatusAvailable, ManagerStatusAssigned:
		return true
	}
	return false
}

func (s ManagerStatus) IsReserved() bool {
	switch s {
	case ManagerStatusAssigned:
		return true
	case ManagerStatusAvailable:
		return false
	}
	return false
}

func (s InfrastructureStatus) Valid() bool {
	switch s {
	case InfrastructureStatusAvailable, InfrastructureStatusInUse, InfrastructureStatusMaintenance:
		return true
	}
	return false
}

// IsReserved is true only for in_use; maintenance blocks assignment but holds no back-reference.
func (s InfrastructureStatus) IsReserved() bool {
	switch s {
	case InfrastructureStatusInUse:
		return true
	case InfrastructureStatusAvailable, InfrastructureStatusMaintenance:
		return false
	}
	return false
}

/* =========================================================
   Table descriptor per kind (shared lifecycle columns)
========================================================= */

// Descriptor names the columns that carry the shared status lifecycle of a kind.
type Descriptor struct {
	Kind          ResourceKind
	Table         string
	IDCol         string
	StatusCol     string
	SDCCol        string // back-reference to sdcs.sdc_id
	WorkOrderCol  string
	AssignedAtCol string
	UpdatedAtCol  string

	Available string
	Reserved  string

	// column on sdcs holding this kind
	SDCSlotCol string
}

func DescriptorFor(kind ResourceKind) (Descriptor, error) {
	switch kind {
	case KindTrainer:
		return Descriptor{
			Kind:          KindTrainer,
			Table:         TrainerModel{}.TableName(),
			IDCol:         "trainer_id",
			StatusCol:     "trainer_status",
			SDCCol:        "trainer_assigned_sdc_id",
			WorkOrderCol:  "trainer_assigned_work_order_id",
			AssignedAtCol: "trainer_assigned_at",
			UpdatedAtCol:  "trainer_updated_at",
			Available:     string(TrainerStatusAvailable),
			Reserved:      string(TrainerStatusAssigned),
			SDCSlotCol:    "sdc_trainer_id",
		}, nil
	case KindManager:
		return Descriptor{
			Kind:          KindManager,
			Table:         ManagerModel{}.TableName(),
			IDCol:         "manager_id",
			StatusCol:     "manager_status",
			SDCCol:        "manager_assigned_sdc_id",
			WorkOrderCol:  "manager_assigned_work_order_id",
			AssignedAtCol: "manager_assigned_at",
			UpdatedAtCol:  "manager_updated_at",
			Available:     string(ManagerStatusAvailable),
			Reserved:      string(ManagerStatusAssigned),
			SDCSlotCol:    "sdc_manager_id",
		}, nil
	case KindInfrastructure:
		return Descriptor{
			Kind:          KindInfrastructure,
			Table:         InfrastructureModel{}.TableName(),
			IDCol:         "infrastructure_id",
			StatusCol:     "infrastructure_status",
			SDCCol:        "infrastructure_assigned_sdc_id",
			WorkOrderCol:  "infrastructure_assigned_work_order_id",
			AssignedAtCol: "infrastructure_assigned_at",
			UpdatedAtCol:  "infrastructure_updated_at",
			Available:     string(InfrastructureStatusAvailable),
			Reserved:      string(InfrastructureStatusInUse),
			SDCSlotCol:    "sdc_infrastructure_id",
		}, nil
	}
	return Descriptor{}, fmt.Errorf("unknown resource kind %q", kind)
}

// ValidStatus reports whether status belongs to the lifecycle of d's kind.
func (d Descriptor) ValidStatus(status string) bool {
	switch d.Kind {
	case KindTrainer:
		return TrainerStatus(status).Valid()
	case KindManager:
		return ManagerStatus(status).Valid()
	case KindInfrastructure:
		return InfrastructureStatus(status).Valid()
	}
	return false
}

// HoldsReference reports whether a resource in status points at an SDC.
func (d Descriptor) HoldsReference(status string) bool {
	switch d.Kind {
	case KindTrainer:
		return TrainerStatus(status).IsReserved()
	case KindManager:
		return ManagerStatus(status).IsReserved()
	case KindInfrastructure:
		return InfrastructureStatus(status).IsReserved()
	}
	return false
}

// AllKinds is the release order used when a work order completes.
var AllKinds = []ResourceKind{KindTrainer, KindManager, KindInfrastructure}
