package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/plantops/maintenance-kpi-monitoring/services/dashboard/common"
	"github.com/plantops/maintenance-kpi-monitoring/services/dashboard/dataset"
)

// ParseEquipments reads a delimited equipment file into the domain shape.
// Rows are grouped by id, the first row of an id fixes name/category/status,
// duplicate (id, month) rows keep the last one and each history ends up
// sorted in canonical month order. Blank-id rows are discarded and
// non-numeric cells default to 0.
func ParseEquipments(r io.Reader) ([]common.Equipment, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read delimited file: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("empty file, expected a header row")
	}

	columns := headerIndex(rows[0])
	if _, found := columns["id"]; !found {
		return nil, errors.New("missing required column 'id'")
	}

	byID := make(map[string]*common.Equipment)
	order := make([]string, 0)

	for _, row := range rows[1:] {
		id := strings.TrimSpace(cell(row, columns, "id"))
		if id == "" {
			continue
		}

		equipment, found := byID[id]
		if !found {
			status := strings.TrimSpace(cell(row, columns, "status"))
			if status == "" {
				status = common.EquipmentStatusOperational
			}

			equipment = &common.Equipment{
				ID:          id,
				Name:        strings.TrimSpace(cell(row, columns, "name")),
				Category:    strings.TrimSpace(cell(row, columns, "category")),
				Status:      status,
				Criticality: strings.TrimSpace(cell(row, columns, "criticality")),
				History:     make([]common.MonthlyRecord, 0, len(dataset.MonthOrder)),
			}
			byID[id] = equipment
			order = append(order, id)
		}

		month := strings.TrimSpace(cell(row, columns, "month"))
		if month == "" {
			continue
		}

		upsertRecord(equipment, common.MonthlyRecord{
			Month:           month,
			MTBF:            numericCell(row, columns, "mtbf"),
			MTTR:            numericCell(row, columns, "mttr"),
			Availability:    numericCell(row, columns, "availability"),
			Performance:     numericCell(row, columns, "performance"),
			Quality:         numericCell(row, columns, "quality"),
			Cost:            numericCell(row, columns, "cost"),
			PreventiveCount: int(numericCell(row, columns, "preventive")),
			CorrectiveCount: int(numericCell(row, columns, "corrective")),
		})
	}

	equipments := make([]common.Equipment, 0, len(order))
	for _, id := range order {
		equipment := byID[id]
		sort.SliceStable(equipment.History, func(i, j int) bool {
			return dataset.MonthIndex(equipment.History[i].Month) < dataset.MonthIndex(equipment.History[j].Month)
		})
		equipments = append(equipments, *equipment)
	}

	return equipments, nil
}

// last write wins on a duplicate month for the same equipment
func upsertRecord(equipment *common.Equipment, record common.MonthlyRecord) {
	for i := range equipment.History {
		if equipment.History[i].Month == record.Month {
			equipment.History[i] = record
			return
		}
	}

	equipment.History = append(equipment.History, record)
}

func headerIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	return columns
}

func cell(row []string, columns map[string]int, name string) string {
	idx, found := columns[name]
	if !found || idx >= len(row) {
		return ""
	}

	return row[idx]
}

func numericCell(row []string, columns map[string]int, name string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(cell(row, columns, name)), 64)
	if err != nil {
		return 0
	}

	return value
}
