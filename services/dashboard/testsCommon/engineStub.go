package testsCommon

import (
	"github.com/plantops/maintenance-kpi-monitoring/services/dashboard/common"
)

// EngineStub -
type EngineStub struct {
	ConsolidateHandler        func(equipments []common.Equipment, period common.Period) []common.MonthlyRecord
	DeriveKPIsHandler         func(series []common.MonthlyRecord) []common.KPICard
	RankByAvailabilityHandler func(equipments []common.Equipment, period common.Period) []common.EquipmentRanked
	GenerateAlertsHandler     func(equipments []common.Equipment, period common.Period) []common.CriticalAlert
}

// Consolidate -
func (stub *EngineStub) Consolidate(equipments []common.Equipment, period common.Period) []common.MonthlyRecord {
	if stub.ConsolidateHandler != nil {
		return stub.ConsolidateHandler(equipments, period)
	}

	return make([]common.MonthlyRecord, 0)
}

// DeriveKPIs -
func (stub *EngineStub) DeriveKPIs(series []common.MonthlyRecord) []common.KPICard {
	if stub.DeriveKPIsHandler != nil {
		return stub.DeriveKPIsHandler(series)
	}

	return make([]common.KPICard, 0)
}

// RankByAvailability -
func (stub *EngineStub) RankByAvailability(equipments []common.Equipment, period common.Period) []common.EquipmentRanked {
	if stub.RankByAvailabilityHandler != nil {
		return stub.RankByAvailabilityHandler(equipments, period)
	}

	return make([]common.EquipmentRanked, 0)
}

// GenerateAlerts -
func (stub *EngineStub) GenerateAlerts(equipments []common.Equipment, period common.Period) []common.CriticalAlert {
	if stub.GenerateAlertsHandler != nil {
		return stub.GenerateAlertsHandler(equipments, period)
	}

	return make([]common.CriticalAlert, 0)
}

// IsInterfaceNil -
func (stub *EngineStub) IsInterfaceNil() bool {
	return stub == nil
}
