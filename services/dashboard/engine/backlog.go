package engine

import (
	"time"

	"github.com/plantops/maintenance-kpi-monitoring/services/dashboard/common"
)

const hoursPerDay = 24

// SummarizeBacklog condenses the work orders into the backlog indicator.
// Overdue means pending and past the due date at the provided reference time.
func SummarizeBacklog(orders []common.BacklogOrder, now time.Time) common.BacklogSummary {
	summary := common.BacklogSummary{TotalOrders: len(orders)}

	waitDays := 0.0
	for _, order := range orders {
		if order.Status != common.OrderStatusPending {
			continue
		}

		summary.PendingOrders++
		if order.DueDate.Before(now) {
			summary.OverdueOrders++
		}
		waitDays += now.Sub(order.CreatedAt).Hours() / hoursPerDay
	}

	if summary.PendingOrders > 0 {
		summary.AvgWaitTimeDays = roundTo(waitDays/float64(summary.PendingOrders), 1)
	}

	backlogPercentage := 0.0
	if summary.TotalOrders > 0 {
		backlogPercentage = float64(summary.PendingOrders) / float64(summary.TotalOrders) * 100
	}

	switch {
	case summary.OverdueOrders > 5:
		summary.Status = common.KPIStatusCritical
	case summary.OverdueOrders > 2 || backlogPercentage > 60:
		summary.Status = common.KPIStatusWarning
	case backlogPercentage > 40:
		summary.Status = common.BacklogStatusAttention
	default:
		summary.Status = common.KPIStatusGood
	}

	return summary
}

// PreventiveShare computes the preventive vs corrective maintenance mix for each
// month of a consolidated series. A month with no orders has a 0 share.
func PreventiveShare(series []common.MonthlyRecord) []common.PreventiveShare {
	shares := make([]common.PreventiveShare, 0, len(series))
	for _, record := range series {
		total := record.PreventiveCount + record.CorrectiveCount
		share := 0.0
		if total > 0 {
			share = roundTo(float64(record.PreventiveCount)/float64(total)*100, 1)
		}

		shares = append(shares, common.PreventiveShare{
			Month:      record.Month,
			Preventive: record.PreventiveCount,
			Corrective: record.CorrectiveCount,
			Share:      share,
		})
	}

	return shares
}
