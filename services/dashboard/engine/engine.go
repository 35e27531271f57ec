package engine

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/plantops/maintenance-kpi-monitoring/services/dashboard/common"
)

// percentScale converts the product of three 0-100 factors back into a single percentage
const percentScale = 10000

type kpiSpec struct {
	name        string
	label       string
	unit        string
	lowerBetter bool
	value       func(common.MonthlyRecord) float64
	format      func(float64) string
}

// the five tracked KPIs, in the fixed card order
var kpiSpecs = []kpiSpec{
	{
		name:   common.KPIMTBF,
		label:  "MTBF (Mean Time Between Failures)",
		unit:   "h",
		value:  func(r common.MonthlyRecord) float64 { return r.MTBF },
		format: func(v float64) string { return fmt.Sprintf("%.0fh", v) },
	},
	{
		name:        common.KPIMTTR,
		label:       "MTTR (Mean Time To Repair)",
		unit:        "h",
		lowerBetter: true,
		value:       func(r common.MonthlyRecord) float64 { return r.MTTR },
		format:      func(v float64) string { return fmt.Sprintf("%.2fh", v) },
	},
	{
		name:   common.KPIAvailability,
		label:  "Availability",
		unit:   "%",
		value:  func(r common.MonthlyRecord) float64 { return r.Availability },
		format: func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
	},
	{
		name:   common.KPIOEE,
		label:  "OEE (Overall Equipment Effectiveness)",
		unit:   "%",
		value:  oee,
		format: func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
	},
	{
		name:        common.KPICost,
		label:       "Maintenance Cost",
		unit:        "M",
		lowerBetter: true,
		value:       func(r common.MonthlyRecord) float64 { return r.Cost },
		format:      func(v float64) string { return fmt.Sprintf("R$ %.2fM", v) },
	},
}

// kpiEngine derives all dashboard projections from a read-only equipment snapshot
type kpiEngine struct {
	targets        common.KPITargetTable
	trendThreshold float64
}

// NewKPIEngine creates a new aggregation engine instance
func NewKPIEngine(targets common.KPITargetTable, trendThreshold float64) (*kpiEngine, error) {
	if len(targets) == 0 {
		return nil, errors.New("empty KPI target table")
	}
	if trendThreshold < 0 {
		return nil, errors.New("negative trend threshold")
	}

	return &kpiEngine{
		targets:        targets,
		trendThreshold: trendThreshold,
	}, nil
}

// Consolidate merges the equipments' records into one series covering the period months.
// Equipments without a record for a month are skipped; a month with no contributors
// yields an all-zero sentinel record. Cost and order counts are summed, the other
// metrics are averaged. An empty equipment list yields an empty series.
func (e *kpiEngine) Consolidate(equipments []common.Equipment, period common.Period) []common.MonthlyRecord {
	if len(equipments) == 0 {
		return []common.MonthlyRecord{}
	}

	series := make([]common.MonthlyRecord, 0, len(period.Months))
	for _, month := range period.Months {
		consolidated := common.MonthlyRecord{Month: month}
		numContributors := 0
		for _, equipment := range equipments {
			record, found := recordForMonth(equipment, month)
			if !found {
				continue
			}

			numContributors++
			consolidated.MTBF += record.MTBF
			consolidated.MTTR += record.MTTR
			consolidated.Availability += record.Availability
			consolidated.Performance += record.Performance
			consolidated.Quality += record.Quality
			consolidated.Cost += record.Cost
			consolidated.PreventiveCount += record.PreventiveCount
			consolidated.CorrectiveCount += record.CorrectiveCount
		}

		if numContributors == 0 {
			series = append(series, consolidated)
			continue
		}

		n := float64(numContributors)
		consolidated.MTBF = math.Round(consolidated.MTBF / n)
		consolidated.MTTR = roundTo(consolidated.MTTR/n, 2)
		consolidated.Availability = roundTo(consolidated.Availability/n, 1)
		consolidated.Performance = roundTo(consolidated.Performance/n, 1)
		consolidated.Quality = roundTo(consolidated.Quality/n, 1)
		consolidated.Cost = roundTo(consolidated.Cost, 2)
		series = append(series, consolidated)
	}

	return series
}

// DeriveKPIs summarizes a consolidated series into the five KPI cards.
// An empty series yields zero-valued cards flagged warning.
func (e *kpiEngine) DeriveKPIs(series []common.MonthlyRecord) []common.KPICard {
	cards := make([]common.KPICard, 0, len(kpiSpecs))
	if len(series) == 0 {
		for _, spec := range kpiSpecs {
			cards = append(cards, common.KPICard{
				Label:  spec.label,
				Value:  spec.format(0),
				Trend:  common.TrendUp,
				Change: "0%",
				Status: common.KPIStatusWarning,
				Target: e.targetFor(spec.name),
				Unit:   spec.unit,
			})
		}

		return cards
	}

	last := series[len(series)-1]
	prev := last
	if len(series) > 1 {
		prev = series[len(series)-2]
	}

	for _, spec := range kpiSpecs {
		current := spec.value(last)
		previous := spec.value(prev)
		change, trend := percentChange(current, previous, spec.lowerBetter)
		target := e.targetFor(spec.name)

		cards = append(cards, common.KPICard{
			Label:    spec.label,
			Value:    spec.format(current),
			RawValue: current,
			Trend:    trend,
			Change:   change,
			Status:   classify(current, target, spec.lowerBetter),
			Target:   target,
			Unit:     spec.unit,
		})
	}

	return cards
}

// RankByAvailability sorts the equipments by their last-month availability, descending.
// The sort is stable so equal availabilities keep their input order.
func (e *kpiEngine) RankByAvailability(equipments []common.Equipment, period common.Period) []common.EquipmentRanked {
	ranked := make([]common.EquipmentRanked, 0, len(equipments))
	if len(period.Months) == 0 {
		return ranked
	}

	lastMonth := period.Months[len(period.Months)-1]
	prevMonth := ""
	if len(period.Months) > 1 {
		prevMonth = period.Months[len(period.Months)-2]
	}

	for _, equipment := range equipments {
		availability := 0.0
		if record, found := recordForMonth(equipment, lastMonth); found {
			availability = record.Availability
		}

		// a missing prior month compares against the current value, never a spurious trend
		prevAvailability := availability
		if prevMonth != "" {
			if record, found := recordForMonth(equipment, prevMonth); found {
				prevAvailability = record.Availability
			}
		}

		difference := availability - prevAvailability
		trend := common.TrendStable
		if difference > e.trendThreshold {
			trend = common.TrendUp
		} else if difference < -e.trendThreshold {
			trend = common.TrendDown
		}

		ranked = append(ranked, common.EquipmentRanked{
			Equipment:         equipment,
			Availability:      availability,
			AvailabilityLabel: fmt.Sprintf("%.1f%%", availability),
			Trend:             trend,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Availability > ranked[j].Availability
	})

	return ranked
}

// GenerateAlerts inspects every equipment's last-month record against the target table
// and returns the violations sorted by severity, critical first. Equipments without a
// record for the last month are skipped entirely.
func (e *kpiEngine) GenerateAlerts(equipments []common.Equipment, period common.Period) []common.CriticalAlert {
	alerts := make([]common.CriticalAlert, 0)
	if len(period.Months) == 0 {
		return alerts
	}

	lastMonth := period.Months[len(period.Months)-1]
	for _, equipment := range equipments {
		record, found := recordForMonth(equipment, lastMonth)
		if !found {
			continue
		}

		alerts = append(alerts, e.equipmentAlerts(equipment, record)...)
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return severityRank(alerts[i].Severity) < severityRank(alerts[j].Severity)
	})

	return alerts
}

func (e *kpiEngine) equipmentAlerts(equipment common.Equipment, record common.MonthlyRecord) []common.CriticalAlert {
	alerts := make([]common.CriticalAlert, 0, 4)

	if target, found := e.targets[common.KPIAvailability]; found {
		if record.Availability < target.MinimumAcceptable {
			alerts = append(alerts, common.CriticalAlert{
				EquipmentID:   equipment.ID,
				EquipmentName: equipment.Name,
				Message:       fmt.Sprintf("Availability at %.1f%% is below the minimum acceptable %.1f%%", record.Availability, target.MinimumAcceptable),
				Severity:      common.SeverityCritical,
				KPI:           common.KPIAvailability,
				CurrentValue:  record.Availability,
				TargetValue:   target.Value,
			})
		} else if record.Availability < target.Value {
			alerts = append(alerts, common.CriticalAlert{
				EquipmentID:   equipment.ID,
				EquipmentName: equipment.Name,
				Message:       fmt.Sprintf("Availability at %.1f%% is below the %.1f%% target", record.Availability, target.Value),
				Severity:      common.SeverityWarning,
				KPI:           common.KPIAvailability,
				CurrentValue:  record.Availability,
				TargetValue:   target.Value,
			})
		}
	}

	if target, found := e.targets[common.KPIMTBF]; found {
		if record.MTBF < target.MinimumAcceptable {
			alerts = append(alerts, common.CriticalAlert{
				EquipmentID:   equipment.ID,
				EquipmentName: equipment.Name,
				Message:       fmt.Sprintf("MTBF of %.0fh is below the minimum acceptable %.0fh", record.MTBF, target.MinimumAcceptable),
				Severity:      common.SeverityCritical,
				KPI:           common.KPIMTBF,
				CurrentValue:  record.MTBF,
				TargetValue:   target.Value,
			})
		}
	}

	if target, found := e.targets[common.KPIMTTR]; found {
		// lower is better, MinimumAcceptable is a ceiling here
		if record.MTTR > target.MinimumAcceptable {
			alerts = append(alerts, common.CriticalAlert{
				EquipmentID:   equipment.ID,
				EquipmentName: equipment.Name,
				Message:       fmt.Sprintf("MTTR of %.1fh exceeds the acceptable ceiling of %.1fh", record.MTTR, target.MinimumAcceptable),
				Severity:      common.SeverityCritical,
				KPI:           common.KPIMTTR,
				CurrentValue:  record.MTTR,
				TargetValue:   target.Value,
			})
		}
	}

	if target, found := e.targets[common.KPIOEE]; found {
		oeeValue := oee(record)
		if oeeValue < target.MinimumAcceptable {
			alerts = append(alerts, common.CriticalAlert{
				EquipmentID:   equipment.ID,
				EquipmentName: equipment.Name,
				Message:       fmt.Sprintf("OEE at %.1f%% is below the minimum acceptable %.1f%%", oeeValue, target.MinimumAcceptable),
				Severity:      common.SeverityCritical,
				KPI:           common.KPIOEE,
				CurrentValue:  roundTo(oeeValue, 1),
				TargetValue:   target.Value,
			})
		}
	}

	if equipment.Criticality == common.CriticalityA && equipment.Status == common.EquipmentStatusStopped {
		alerts = append(alerts, common.CriticalAlert{
			EquipmentID:   equipment.ID,
			EquipmentName: equipment.Name,
			Message:       "Criticality A equipment is stopped, production impact is high",
			Severity:      common.SeverityCritical,
			KPI:           "Criticality",
		})
	}

	return alerts
}

// IsInterfaceNil returns true if the value under the interface is nil
func (e *kpiEngine) IsInterfaceNil() bool {
	return e == nil
}

func (e *kpiEngine) targetFor(name string) *common.KPITarget {
	target, found := e.targets[name]
	if !found {
		return nil
	}

	return &target
}

// FilterEquipments applies the category and equipment id filters; empty values match everything
func FilterEquipments(equipments []common.Equipment, category string, equipmentID string) []common.Equipment {
	filtered := make([]common.Equipment, 0, len(equipments))
	for _, equipment := range equipments {
		if category != "" && equipment.Category != category {
			continue
		}
		if equipmentID != "" && equipment.ID != equipmentID {
			continue
		}

		filtered = append(filtered, equipment)
	}

	return filtered
}

// Classify places a value in the four-tier status scale against its target.
// Boundaries are inclusive: meeting a threshold counts as reaching that tier.
func Classify(value float64, target *common.KPITarget, lowerBetter bool) string {
	if target == nil {
		return common.KPIStatusWarning
	}

	if lowerBetter {
		switch {
		case value <= target.WorldClass:
			return common.KPIStatusExcellent
		case value <= target.Value:
			return common.KPIStatusGood
		case value <= target.MinimumAcceptable:
			return common.KPIStatusWarning
		default:
			return common.KPIStatusCritical
		}
	}

	switch {
	case value >= target.WorldClass:
		return common.KPIStatusExcellent
	case value >= target.Value:
		return common.KPIStatusGood
	case value >= target.MinimumAcceptable:
		return common.KPIStatusWarning
	default:
		return common.KPIStatusCritical
	}
}

func classify(value float64, target *common.KPITarget, lowerBetter bool) string {
	return Classify(value, target, lowerBetter)
}

// percentChange computes the formatted change vs the prior value and the trend direction.
// A zero prior value is defined as a 0% change with a neutral "up" trend.
func percentChange(current float64, previous float64, lowerBetter bool) (string, string) {
	if previous == 0 {
		return "0%", common.TrendUp
	}

	delta := (current - previous) / previous * 100
	sign := ""
	if delta > 0 {
		sign = "+"
	}
	change := fmt.Sprintf("%s%.1f%%", sign, delta)

	trend := common.TrendUp
	if lowerBetter {
		if delta > 0 {
			trend = common.TrendDown
		}
	} else {
		if delta < 0 {
			trend = common.TrendDown
		}
	}

	return change, trend
}

func oee(record common.MonthlyRecord) float64 {
	return record.Availability * record.Performance * record.Quality / percentScale
}

func recordForMonth(equipment common.Equipment, month string) (common.MonthlyRecord, bool) {
	for _, record := range equipment.History {
		if record.Month == month {
			return record, true
		}
	}

	return common.MonthlyRecord{}, false
}

func severityRank(severity string) int {
	switch severity {
	case common.SeverityCritical:
		return 0
	case common.SeverityWarning:
		return 1
	default:
		return 2
	}
}

func roundTo(value float64, places int) float64 {
	pow := math.Pow10(places)
	return math.Round(value*pow) / pow
}
