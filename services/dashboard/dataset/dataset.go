package dataset

import (
	"time"

	"github.com/plantops/maintenance-kpi-monitoring/services/dashboard/common"
)

// TrendThreshold is the availability difference, in percentage points, above which
// a month-over-month move stops being classified as stable
const TrendThreshold = 0.5

// DefaultPeriodID is the period selected when the caller does not provide one
const DefaultPeriodID = "3m"

// MonthOrder is the canonical month ordering used to sort equipment histories
var MonthOrder = []string{
	"Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
	"Jul", "Ago", "Set", "Out", "Nov", "Dez",
}

// Periods holds the selectable time windows, trailing months in chronological order
var Periods = []common.Period{
	{ID: "2m", Label: "Last 2 months", Months: []string{"Jul", "Ago"}},
	{ID: "3m", Label: "Last 3 months", Months: []string{"Jun", "Jul", "Ago"}},
	{ID: "4m", Label: "Last 4 months", Months: []string{"Mai", "Jun", "Jul", "Ago"}},
}

// EquipmentData is the built-in demonstration dataset, used until a file is imported
var EquipmentData = []common.Equipment{
	{
		ID:          "comp-a1",
		Name:        "Compressor A1",
		Category:    "Compression",
		Status:      common.EquipmentStatusOperational,
		Criticality: "B",
		History: []common.MonthlyRecord{
			{Month: "Mai", MTBF: 280, MTTR: 3.4, Availability: 90, Performance: 90, Quality: 96, Cost: 0.5, PreventiveCount: 4, CorrectiveCount: 2},
			{Month: "Jun", MTBF: 310, MTTR: 3.1, Availability: 92, Performance: 91, Quality: 97, Cost: 0.45, PreventiveCount: 5, CorrectiveCount: 2},
			{Month: "Jul", MTBF: 360, MTTR: 2.8, Availability: 95, Performance: 92, Quality: 97, Cost: 0.4, PreventiveCount: 5, CorrectiveCount: 1},
			{Month: "Ago", MTBF: 390, MTTR: 2.6, Availability: 96, Performance: 93, Quality: 98, Cost: 0.35, PreventiveCount: 6, CorrectiveCount: 1},
		},
	},
	{
		ID:          "este-b2",
		Name:        "Esteira B2",
		Category:    "Conveyors",
		Status:      common.EquipmentStatusScheduledMaintenance,
		Criticality: "C",
		History: []common.MonthlyRecord{
			{Month: "Mai", MTBF: 330, MTTR: 2.7, Availability: 93, Performance: 92, Quality: 97, Cost: 0.38, PreventiveCount: 5, CorrectiveCount: 1},
			{Month: "Jun", MTBF: 360, MTTR: 2.6, Availability: 95, Performance: 93, Quality: 97, Cost: 0.36, PreventiveCount: 5, CorrectiveCount: 1},
			{Month: "Jul", MTBF: 410, MTTR: 2.4, Availability: 97, Performance: 94, Quality: 98, Cost: 0.34, PreventiveCount: 6, CorrectiveCount: 1},
			{Month: "Ago", MTBF: 440, MTTR: 2.2, Availability: 98, Performance: 95, Quality: 98, Cost: 0.33, PreventiveCount: 6, CorrectiveCount: 0},
		},
	},
	{
		ID:          "motor-c3",
		Name:        "Motor C3",
		Category:    "Motors",
		Status:      common.EquipmentStatusStopped,
		Criticality: common.CriticalityA,
		History: []common.MonthlyRecord{
			{Month: "Mai", MTBF: 270, MTTR: 3.2, Availability: 91, Performance: 88, Quality: 95, Cost: 0.62, PreventiveCount: 3, CorrectiveCount: 3},
			{Month: "Jun", MTBF: 295, MTTR: 3.0, Availability: 92, Performance: 89, Quality: 96, Cost: 0.58, PreventiveCount: 4, CorrectiveCount: 3},
			{Month: "Jul", MTBF: 330, MTTR: 2.9, Availability: 94, Performance: 90, Quality: 96, Cost: 0.56, PreventiveCount: 4, CorrectiveCount: 2},
			{Month: "Ago", MTBF: 365, MTTR: 2.7, Availability: 95, Performance: 91, Quality: 97, Cost: 0.52, PreventiveCount: 5, CorrectiveCount: 2},
		},
	},
}

// BacklogOrders is the sample work order backlog shown alongside the KPIs
var BacklogOrders = []common.BacklogOrder{
	{
		ID:            "wo-1001",
		EquipmentID:   "comp-a1",
		EquipmentName: "Compressor A1",
		Description:   "Replace intake filter and check oil level",
		Type:          common.OrderTypePreventive,
		Priority:      common.OrderPriorityMedium,
		Status:        common.OrderStatusPending,
		CreatedAt:     time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC),
	},
	{
		ID:            "wo-1002",
		EquipmentID:   "motor-c3",
		EquipmentName: "Motor C3",
		Description:   "Rewind stator after overheating shutdown",
		Type:          common.OrderTypeCorrective,
		Priority:      common.OrderPriorityHigh,
		Status:        common.OrderStatusPending,
		CreatedAt:     time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC),
	},
	{
		ID:            "wo-1003",
		EquipmentID:   "este-b2",
		EquipmentName: "Esteira B2",
		Description:   "Belt alignment and tensioning",
		Type:          common.OrderTypePreventive,
		Priority:      common.OrderPriorityLow,
		Status:        common.OrderStatusCompleted,
		CreatedAt:     time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2026, time.August, 5, 0, 0, 0, 0, time.UTC),
	},
	{
		ID:            "wo-1004",
		EquipmentID:   "este-b2",
		EquipmentName: "Esteira B2",
		Description:   "Roller bearing lubrication round",
		Type:          common.OrderTypePreventive,
		Priority:      common.OrderPriorityLow,
		Status:        common.OrderStatusPending,
		CreatedAt:     time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC),
	},
	{
		ID:            "wo-1005",
		EquipmentID:   "comp-a1",
		EquipmentName: "Compressor A1",
		Description:   "Vibration analysis follow-up",
		Type:          common.OrderTypeCorrective,
		Priority:      common.OrderPriorityMedium,
		Status:        common.OrderStatusCompleted,
		CreatedAt:     time.Date(2026, time.June, 25, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2026, time.July, 10, 0, 0, 0, 0, time.UTC),
	},
}

// MonthIndex returns the position of a month abbreviation in the canonical order, -1 when unknown
func MonthIndex(month string) int {
	for i, m := range MonthOrder {
		if m == month {
			return i
		}
	}

	return -1
}

// PeriodByID finds a selectable period by its identifier
func PeriodByID(id string) (common.Period, bool) {
	for _, p := range Periods {
		if p.ID == id {
			return p, true
		}
	}

	return common.Period{}, false
}
