package api

import (
	"context"

	"github.com/plantops/maintenance-kpi-monitoring/services/dashboard/common"
)

// Storage defines the holder of the current session dataset
type Storage interface {
	// ReplaceEquipments swaps the whole held dataset in one transaction, last write wins
	ReplaceEquipments(ctx context.Context, equipments []common.Equipment) error

	// GetEquipments returns the held dataset with each history in canonical month order
	GetEquipments(ctx context.Context) ([]common.Equipment, error)

	// Close shuts down the database connection
	Close() error

	IsInterfaceNil() bool
}

// Engine defines the pure aggregation operations, recomputed on every request
type Engine interface {
	// Consolidate merges the equipments' records into one series covering the period months
	Consolidate(equipments []common.Equipment, period common.Period) []common.MonthlyRecord

	// DeriveKPIs summarizes a consolidated series into the five KPI cards
	DeriveKPIs(series []common.MonthlyRecord) []common.KPICard

	// RankByAvailability sorts the equipments by their last-month availability, descending
	RankByAvailability(equipments []common.Equipment, period common.Period) []common.EquipmentRanked

	// GenerateAlerts returns the threshold violations sorted by severity, critical first
	GenerateAlerts(equipments []common.Equipment, period common.Period) []common.CriticalAlert

	IsInterfaceNil() bool
}
