// Package service rolls SDC stage counters up into funnel views.
package service

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// StageRow is one SDC with its target and reported stage counters.
type StageRow struct {
	SDCID           uuid.UUID `gorm:"column:sdc_id"`
	WorkOrderID     uuid.UUID `gorm:"column:work_order_id"`
	WorkOrderNumber string    `gorm:"column:work_order_number"`
	Target          int       `gorm:"column:target"`
	Mobilized       int       `gorm:"column:mobilized"`
	InTraining      int       `gorm:"column:in_training"`
	Assessed        int       `gorm:"column:assessed"`
	Placed          int       `gorm:"column:placed"`
}

type Funnel struct {
	SDCs          int     `json:"sdcs"`
	Target        int     `json:"target"`
	Mobilized     int     `json:"mobilized"`
	InTraining    int     `json:"in_training"`
	Assessed      int     `json:"assessed"`
	Placed        int     `json:"placed"`
	CompletionPct float64 `json:"completion_pct"`
}

type WorkOrderFunnel struct {
	WorkOrderID     uuid.UUID `json:"work_order_id"`
	WorkOrderNumber string    `json:"work_order_number"`
	Funnel          Funnel    `json:"funnel"`
}

type Burndown struct {
	Overall      Funnel            `json:"overall"`
	PerWorkOrder []WorkOrderFunnel `json:"per_work_order"`
}

// Aggregate sums stage counters and targets. Completion is placed/target as a
// percentage rounded to two decimals, 0 when there is no target.
func Aggregate(rows []StageRow) Funnel {
	var f Funnel
	for _, r := range rows {
		f.SDCs++
		f.Target += r.Target
		f.Mobilized += r.Mobilized
		f.InTraining += r.InTraining
		f.Assessed += r.Assessed
		f.Placed += r.Placed
	}
	if f.Target > 0 {
		f.CompletionPct = math.Round(float64(f.Placed)/float64(f.Target)*100*100) / 100
	}
	return f
}

// Build produces the overall funnel plus one funnel per work order, ordered by number.
func Build(rows []StageRow) Burndown {
	groups := map[uuid.UUID][]StageRow{}
	numbers := map[uuid.UUID]string{}
	for _, r := range rows {
		groups[r.WorkOrderID] = append(groups[r.WorkOrderID], r)
		numbers[r.WorkOrderID] = r.WorkOrderNumber
	}

	out := Burndown{
		Overall:      Aggregate(rows),
		PerWorkOrder: make([]WorkOrderFunnel, 0, len(groups)),
	}
	for id, g := range groups {
		out.PerWorkOrder = append(out.PerWorkOrder, WorkOrderFunnel{
			WorkOrderID:     id,
			WorkOrderNumber: numbers[id],
			Funnel:          Aggregate(g),
		})
	}
	sort.Slice(out.PerWorkOrder, func(i, j int) bool {
		return out.PerWorkOrder[i].WorkOrderNumber < out.PerWorkOrder[j].WorkOrderNumber
	})
	return out
}
