package csvimport

import (
	"strings"
	"testing"

	"github.com/plantops/maintenance-kpi-monitoring/services/dashboard/common"
	"github.com/stretchr/testify/require"
)

func TestParseEquipments_GroupsRowsByID(t *testing.T) {
	t.Parallel()

	input := `id,name,category,month,MTBF,MTTR,Availability,Cost,Status
pump-1,Pump 1,Pumps,Jun,300,3.0,92,0.5,Operational
pump-1,Pump 1,Pumps,Jul,320,2.8,94,0.45,Operational
fan-2,Fan 2,Ventilation,Jul,250,2.0,96,0.2,Stopped
`

	equipments, err := ParseEquipments(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, equipments, 2)

	pump := equipments[0]
	require.Equal(t, "pump-1", pump.ID)
	require.Equal(t, "Pump 1", pump.Name)
	require.Equal(t, "Pumps", pump.Category)
	require.Equal(t, common.EquipmentStatusOperational, pump.Status)
	require.Len(t, pump.History, 2)
	require.Equal(t, 300.0, pump.History[0].MTBF)
	require.Equal(t, 0.45, pump.History[1].Cost)

	fan := equipments[1]
	require.Equal(t, common.EquipmentStatusStopped, fan.Status)
	require.Len(t, fan.History, 1)
}

func TestParseEquipments_MissingIDColumnErrors(t *testing.T) {
	t.Parallel()

	input := `name,category,month
Pump 1,Pumps,Jun
`

	equipments, err := ParseEquipments(strings.NewReader(input))
	require.Nil(t, equipments)
	require.ErrorContains(t, err, "missing required column 'id'")
}

func TestParseEquipments_EmptyFileErrors(t *testing.T) {
	t.Parallel()

	equipments, err := ParseEquipments(strings.NewReader(""))
	require.Nil(t, equipments)
	require.ErrorContains(t, err, "empty file")
}

func TestParseEquipments_MalformedQuotingErrors(t *testing.T) {
	t.Parallel()

	input := "id,name\n\"unterminated,Pump 1\n"

	equipments, err := ParseEquipments(strings.NewReader(input))
	require.Nil(t, equipments)
	require.ErrorContains(t, err, "failed to read delimited file")
}

func TestParseEquipments_BlankIDRowsAreDiscarded(t *testing.T) {
	t.Parallel()

	input := `id,name,month,MTBF
,ghost,Jun,100
pump-1,Pump 1,Jun,300
   ,ghost,Jul,100
`

	equipments, err := ParseEquipments(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, equipments, 1)
	require.Equal(t, "pump-1", equipments[0].ID)
}

func TestParseEquipments_Defaults(t *testing.T) {
	t.Parallel()

	input := `id,name,month,MTBF,Availability
pump-1,Pump 1,Jun,not-a-number,92
`

	equipments, err := ParseEquipments(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, equipments, 1)

	pump := equipments[0]
	require.Equal(t, common.EquipmentStatusOperational, pump.Status) // missing status column
	require.Zero(t, pump.History[0].MTBF)                            // non-numeric cell
	require.Equal(t, 92.0, pump.History[0].Availability)
	require.Zero(t, pump.History[0].Cost) // missing column entirely
}

func TestParseEquipments_HeaderIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	input := `ID,NAME,Month,mtbf,STATUS
pump-1,Pump 1,Jun,300,Stopped
`

	equipments, err := ParseEquipments(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, equipments, 1)
	require.Equal(t, common.EquipmentStatusStopped, equipments[0].Status)
	require.Equal(t, 300.0, equipments[0].History[0].MTBF)
}

func TestParseEquipments_DuplicateMonthKeepsLastRow(t *testing.T) {
	t.Parallel()

	input := `id,name,month,MTBF
pump-1,Pump 1,Jun,300
pump-1,Pump 1,Jun,999
`

	equipments, err := ParseEquipments(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, equipments[0].History, 1)
	require.Equal(t, 999.0, equipments[0].History[0].MTBF)
}

func TestParseEquipments_HistorySortedInCanonicalMonthOrder(t *testing.T) {
	t.Parallel()

	input := `id,name,month,MTBF
pump-1,Pump 1,Ago,390
pump-1,Pump 1,Jun,310
pump-1,Pump 1,Jul,360
`

	equipments, err := ParseEquipments(strings.NewReader(input))
	require.NoError(t, err)

	months := make([]string, 0, 3)
	for _, record := range equipments[0].History {
		months = append(months, record.Month)
	}
	require.Equal(t, []string{"Jun", "Jul", "Ago"}, months)
}

func TestParseEquipments_RowsWithoutMonthContributeNoRecord(t *testing.T) {
	t.Parallel()

	input := `id,name,category,month
pump-1,Pump 1,Pumps,
`

	equipments, err := ParseEquipments(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, equipments, 1)
	require.Empty(t, equipments[0].History)
}

func TestTemplate_RoundTripsThroughTheParser(t *testing.T) {
	t.Parallel()

	equipments, err := ParseEquipments(strings.NewReader(Template()))
	require.NoError(t, err)
	require.Len(t, equipments, 3)

	for _, equipment := range equipments {
		require.Len(t, equipment.History, 4)
		require.Equal(t, "Mai", equipment.History[0].Month)
		require.Equal(t, "Ago", equipment.History[3].Month)
	}

	require.Equal(t, "comp-a1", equipments[0].ID)
	require.Equal(t, common.EquipmentStatusScheduledMaintenance, equipments[1].Status)
	require.Equal(t, common.EquipmentStatusStopped, equipments[2].Status)
	require.Equal(t, 390.0, equipments[0].History[3].MTBF)
}