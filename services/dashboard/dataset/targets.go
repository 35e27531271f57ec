package dataset

import "github.com/plantops/maintenance-kpi-monitoring/services/dashboard/common"

// DefaultTargets holds the reference thresholds for every tracked KPI.
// For MTTR and Cost lower is better, so MinimumAcceptable is a ceiling
// and WorldClass sits below the target.
var DefaultTargets = common.KPITargetTable{
	common.KPIMTBF:         {Value: 350, MinimumAcceptable: 300, WorldClass: 450},
	common.KPIMTTR:         {Value: 3.0, MinimumAcceptable: 4.0, WorldClass: 2.0},
	common.KPIAvailability: {Value: 95, MinimumAcceptable: 90, WorldClass: 99},
	common.KPIOEE:          {Value: 85, MinimumAcceptable: 75, WorldClass: 92},
	common.KPICost:         {Value: 1.5, MinimumAcceptable: 2.0, WorldClass: 1.0},
}

// PreventiveShareTarget classifies the preventive share of the maintenance mix, in percent
var PreventiveShareTarget = common.KPITarget{Value: 80, MinimumAcceptable: 70, WorldClass: 85}
