package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"synth911/models"
)

// HourlyStaffing groups agency requirements for an hour
type HourlyStaffing struct {
	Hour        int                        `json:"hour"`
	Total       int                        `json:"total"`
	Agencies    []models.AgencyRequirement `json:"agencies,omitempty"`
	UnmetDemand *models.UnmetDemand        `json:"unmet_demand,omitempty"`
}

// prepareStaffingData organizes a staffing plan hour by hour
func prepareStaffingData(plan *models.StaffingPlan) []HourlyStaffing {
	unmetByHour := make(map[int]*models.UnmetDemand)
	for i := range plan.UnmetDemands {
		unmetByHour[plan.UnmetDemands[i].Hour] = &plan.UnmetDemands[i]
	}

	hours := make([]HourlyStaffing, 24)
	for h := range 24 {
		hours[h].Hour = h
		if h < len(plan.HourlyRequirements) {
			hours[h].Agencies = plan.HourlyRequirements[h]
			for _, req := range plan.HourlyRequirements[h] {
				hours[h].Total += req.AgentsNeeded
			}
		}
		hours[h].UnmetDemand = unmetByHour[h]
	}
	return hours
}

// FormatStaffingText returns the text representation of the staffing plan
func FormatStaffingText(plan *models.StaffingPlan) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Call takers needed per hour (averaged over %d days)\n", plan.Days))

	for _, hour := range prepareStaffingData(plan) {
		sb.WriteString(formatStaffingLine(hour))
		sb.WriteString("\n")

		if hour.UnmetDemand != nil {
			unmet := hour.UnmetDemand
			sb.WriteString(fmt.Sprintf("  ⚠️  CAPACITY WARNING: Demand=%d, Allocated=%d, Unmet=%d\n",
				unmet.TotalDemand, unmet.AllocatedAgents, unmet.UnmetAgents))
			sb.WriteString("  Impacted agencies:\n")
			for _, a := range unmet.ImpactedAgencies {
				sb.WriteString(fmt.Sprintf("    • %s [Priority %d]: Requested=%d, Allocated=%d, Unmet=%d\n",
					a.Agency, a.Priority, a.RequestedAgents, a.AllocatedAgents, a.UnmetAgents))
			}
		}
	}

	return sb.String()
}

// FormatStaffingJSON returns the JSON representation of the staffing plan
func FormatStaffingJSON(plan *models.StaffingPlan) string {
	jsonBytes, _ := json.MarshalIndent(prepareStaffingData(plan), "", "  ")
	return string(jsonBytes)
}

// FormatStaffingCSV returns the CSV representation of the staffing plan
func FormatStaffingCSV(plan *models.StaffingPlan) string {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	writer.Write([]string{
		"Hour", "Total Agents", "Agency Details",
		"Capacity Warning", "Total Demand", "Allocated", "Unmet", "Impacted Agencies",
	})

	for _, hour := range prepareStaffingData(plan) {
		writer.Write(staffingRow(hour))
	}

	writer.Flush()
	return sb.String()
}

// staffingRow builds a single hour's CSV row
func staffingRow(hour HourlyStaffing) []string {
	var details []string
	for _, req := range hour.Agencies {
		details = append(details, fmt.Sprintf("%s(calls=%d,agents=%d)", req.Agency, req.Calls, req.AgentsNeeded))
	}

	row := []string{
		fmt.Sprintf("%02d:00", hour.Hour),
		fmt.Sprintf("%d", hour.Total),
		strings.Join(details, "; "),
	}

	unmet := hour.UnmetDemand
	if unmet == nil {
		return append(row, "No", "", "", "", "")
	}

	var impacted []string
	for _, a := range unmet.ImpactedAgencies {
		impacted = append(impacted, fmt.Sprintf("%s(priority=%d,requested=%d,allocated=%d,unmet=%d)",
			a.Agency, a.Priority, a.RequestedAgents, a.AllocatedAgents, a.UnmetAgents))
	}
	return append(row,
		"Yes",
		fmt.Sprintf("%d", unmet.TotalDemand),
		fmt.Sprintf("%d", unmet.AllocatedAgents),
		fmt.Sprintf("%d", unmet.UnmetAgents),
		strings.Join(impacted, "; "),
	)
}

// formatStaffingLine formats a single hour line for text output
func formatStaffingLine(hour HourlyStaffing) string {
	if hour.Total == 0 && len(hour.Agencies) == 0 {
		return fmt.Sprintf("%02d:00 : total=0 ; none", hour.Hour)
	}

	parts := make([]string, 0, len(hour.Agencies))
	for _, req := range hour.Agencies {
		parts = append(parts, fmt.Sprintf("%s=%d", req.Agency, req.AgentsNeeded))
	}
	return fmt.Sprintf("%02d:00 : total=%d ; [%s]", hour.Hour, hour.Total, strings.Join(parts, ", "))
}
