package formatter_test

import (
	"strings"
	"testing"

	"synth911/formatter"
	"synth911/models"

	"github.com/stretchr/testify/assert"
)

func staffingPlan(unmet ...models.UnmetDemand) *models.StaffingPlan {
	reqs := make([][]models.AgencyRequirement, 24)
	reqs[10] = []models.AgencyRequirement{
		{Agency: models.AgencyLaw, Calls: 12, AgentsNeeded: 3, Priority: 1},
		{Agency: models.AgencyEMS, Calls: 4, AgentsNeeded: 2, Priority: 2},
	}
	return &models.StaffingPlan{Days: 3, HourlyRequirements: reqs, UnmetDemands: unmet}
}

var shortfall = models.UnmetDemand{
	Hour:            10,
	TotalDemand:     7,
	AllocatedAgents: 5,
	UnmetAgents:     2,
	ImpactedAgencies: []models.ImpactedAgency{
		{Agency: models.AgencyFire, RequestedAgents: 2, AllocatedAgents: 0, UnmetAgents: 2, Priority: 3},
	},
}

func TestFormatStaffingText(t *testing.T) {
	tests := map[string]struct {
		plan     *models.StaffingPlan
		contains []string
	}{
		"EmptyPlan": {
			plan: &models.StaffingPlan{HourlyRequirements: make([][]models.AgencyRequirement, 24)},
			contains: []string{
				"averaged over 0 days",
				"00:00 : total=0 ; none",
				"23:00 : total=0 ; none",
			},
		},
		"SimplePlan": {
			plan: staffingPlan(),
			contains: []string{
				"10:00 : total=5 ; [LAW=3, EMS=2]",
				"11:00 : total=0 ; none",
			},
		},
		"WithUnmetDemand": {
			plan: staffingPlan(shortfall),
			contains: []string{
				"⚠️  CAPACITY WARNING: Demand=7, Allocated=5, Unmet=2",
				"Impacted agencies:",
				"• FIRE [Priority 3]: Requested=2, Allocated=0, Unmet=2",
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			output := formatter.FormatStaffingText(tt.plan)
			for _, s := range tt.contains {
				assert.Contains(t, output, s)
			}
		})
	}
}

func TestFormatStaffingJSON(t *testing.T) {
	output := formatter.FormatStaffingJSON(staffingPlan(shortfall))
	for _, s := range []string{
		`"hour": 10`,
		`"total": 5`,
		`"agency": "LAW"`,
		`"agents_needed": 3`,
		`"unmet_agents": 2`,
	} {
		assert.Contains(t, output, s)
	}
}

func TestFormatStaffingCSV(t *testing.T) {
	tests := map[string]struct {
		plan     *models.StaffingPlan
		contains []string
	}{
		"SimplePlan": {
			plan: staffingPlan(),
			contains: []string{
				"00:00,0,,No,,,,",
				"10:00,5,\"LAW(calls=12,agents=3); EMS(calls=4,agents=2)\",No,,,,",
			},
		},
		"WithUnmetDemand": {
			plan: staffingPlan(shortfall),
			contains: []string{
				"10:00,5,\"LAW(calls=12,agents=3); EMS(calls=4,agents=2)\",Yes,7,5,2,\"FIRE(priority=3,requested=2,allocated=0,unmet=2)\"",
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			output := formatter.FormatStaffingCSV(tt.plan)
			lines := strings.Split(output, "\n")

			assert.Equal(t, "Hour,Total Agents,Agency Details,Capacity Warning,Total Demand,Allocated,Unmet,Impacted Agencies", lines[0])
			for _, s := range tt.contains {
				assert.Contains(t, output, s)
			}
		})
	}
}
