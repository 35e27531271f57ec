package api

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wcharczuk/go-chart/v2"
)

// handleChart renders the consolidated series as a PNG line chart,
// the server-side rendition of the dashboard's trend panel
func (s *server) handleChart(c *gin.Context) {
	period, filtered, ok := s.filteredEquipments(c)
	if !ok {
		return
	}

	series := s.engine.Consolidate(filtered, period)
	if len(series) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "not enough data to render a chart"})
		return
	}

	xValues := make([]float64, len(series))
	ticks := make([]chart.Tick, len(series))
	mtbf := make([]float64, len(series))
	mttr := make([]float64, len(series))
	availability := make([]float64, len(series))
	cost := make([]float64, len(series))
	for i, record := range series {
		xValues[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: record.Month}
		mtbf[i] = record.MTBF
		mttr[i] = record.MTTR
		availability[i] = record.Availability
		cost[i] = record.Cost
	}

	graph := chart.Chart{
		Title:  "Consolidated KPI trend",
		Width:  1200,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    20,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		XAxis: chart.XAxis{
			Ticks: ticks,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "MTBF (h)", XValues: xValues, YValues: mtbf},
			chart.ContinuousSeries{Name: "MTTR (h)", XValues: xValues, YValues: mttr},
			chart.ContinuousSeries{Name: "Availability (%)", XValues: xValues, YValues: availability},
			chart.ContinuousSeries{Name: "Cost (R$ M)", XValues: xValues, YValues: cost},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	err := graph.Render(chart.PNG, &buf)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
