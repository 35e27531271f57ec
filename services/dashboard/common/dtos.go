package common

import "time"

// Trend directions used by the KPI cards and the availability ranking
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// KPI status tiers derived against the target table
const (
	KPIStatusExcellent = "excellent"
	KPIStatusGood      = "good"
	KPIStatusWarning   = "warning"
	KPIStatusCritical  = "critical"
)

// Alert severities, ordered critical > warning > info
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// Tracked KPI names, also the keys of the target table
const (
	KPIMTBF         = "MTBF"
	KPIMTTR         = "MTTR"
	KPIAvailability = "Availability"
	KPIOEE          = "OEE"
	KPICost         = "Cost"
)

// Equipment operational states recognized by the alert rules
const (
	EquipmentStatusOperational          = "Operational"
	EquipmentStatusStopped              = "Stopped"
	EquipmentStatusScheduledMaintenance = "Scheduled Maintenance"
)

// CriticalityA marks the assets with the highest production impact
const CriticalityA = "A"

// Maintenance work order types
const (
	OrderTypePreventive = "preventive"
	OrderTypeCorrective = "corrective"
)

// Maintenance work order priorities
const (
	OrderPriorityHigh   = "high"
	OrderPriorityMedium = "medium"
	OrderPriorityLow    = "low"
)

// Maintenance work order states
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
)

// BacklogStatusAttention is the extra backlog-only tier between good and warning
const BacklogStatusAttention = "attention"

// MonthlyRecord holds one equipment's metrics for one calendar month
type MonthlyRecord struct {
	Month           string  `json:"month"`
	MTBF            float64 `json:"MTBF"`
	MTTR            float64 `json:"MTTR"`
	Availability    float64 `json:"availability"`
	Performance     float64 `json:"performance"`
	Quality         float64 `json:"quality"`
	Cost            float64 `json:"cost"`
	PreventiveCount int     `json:"preventiveCount,omitempty"`
	CorrectiveCount int     `json:"correctiveCount,omitempty"`
}

// Equipment represents a physical asset and its monthly history, ordered by canonical month
type Equipment struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Status      string          `json:"status"`
	Criticality string          `json:"criticality"`
	History     []MonthlyRecord `json:"history"`
}

// Period is a named selection of trailing months, chronological order
type Period struct {
	ID     string   `json:"id"`
	Label  string   `json:"label"`
	Months []string `json:"months"`
}

// KPITarget holds the per-KPI thresholds, all in the KPI's own unit
type KPITarget struct {
	Value             float64 `json:"value"`
	MinimumAcceptable float64 `json:"minimumAcceptable"`
	WorldClass        float64 `json:"worldClass"`
}

// KPITargetTable maps a KPI name to its thresholds
type KPITargetTable map[string]KPITarget

// KPICard is one KPI's current-period summary
type KPICard struct {
	Label    string     `json:"label"`
	Value    string     `json:"value"`
	RawValue float64    `json:"rawValue"`
	Trend    string     `json:"trend"`
	Change   string     `json:"change"`
	Status   string     `json:"status"`
	Target   *KPITarget `json:"target,omitempty"`
	Unit     string     `json:"unit,omitempty"`
}

// CriticalAlert is one threshold violation for one equipment
type CriticalAlert struct {
	EquipmentID   string  `json:"equipmentId"`
	EquipmentName string  `json:"equipmentName"`
	Message       string  `json:"message"`
	Severity      string  `json:"severity"`
	KPI           string  `json:"kpi"`
	CurrentValue  float64 `json:"currentValue"`
	TargetValue   float64 `json:"targetValue"`
}

// EquipmentRanked decorates an equipment with its current-period availability and trend
type EquipmentRanked struct {
	Equipment
	Availability      float64 `json:"availability"`
	AvailabilityLabel string  `json:"availabilityLabel"`
	Trend             string  `json:"trend"`
}

// BacklogOrder is one outstanding maintenance work order
type BacklogOrder struct {
	ID            string    `json:"id"`
	EquipmentID   string    `json:"equipmentId"`
	EquipmentName string    `json:"equipmentName"`
	Description   string    `json:"description"`
	Type          string    `json:"type"`
	Priority      string    `json:"priority"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	DueDate       time.Time `json:"dueDate"`
}

// BacklogSummary condenses the work order backlog into the dashboard indicator
type BacklogSummary struct {
	TotalOrders     int     `json:"totalOrders"`
	PendingOrders   int     `json:"pendingOrders"`
	OverdueOrders   int     `json:"overdueOrders"`
	AvgWaitTimeDays float64 `json:"avgWaitTimeDays"`
	Status          string  `json:"status"`
}

// PreventiveShare is the preventive vs corrective maintenance mix for one month
type PreventiveShare struct {
	Month      string  `json:"month"`
	Preventive int     `json:"preventive"`
	Corrective int     `json:"corrective"`
	Share      float64 `json:"share"`
}
