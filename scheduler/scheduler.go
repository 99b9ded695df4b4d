package scheduler

import (
	"math"
	"sort"

	"synth911/models"
)

// GenerateStaffing calculates the number of call takers needed per hour of
// day for each agency. Demand is the phone workload of the records that
// fall in that hour, averaged over the days the table spans.
func GenerateStaffing(records []models.Record, utilization float64, capacityPerHour int) *models.StaffingPlan {
	hourlyRequests := make([][]models.AgencyRequirement, 24)
	for h := range 24 {
		hourlyRequests[h] = make([]models.AgencyRequirement, 0)
	}

	plan := models.StaffingPlan{
		Days:               countDays(records),
		HourlyRequirements: hourlyRequests,
		UnmetDemands:       make([]models.UnmetDemand, 0),
	}
	if plan.Days == 0 {
		return &plan
	}

	if utilization <= 0 || utilization > 1 {
		utilization = 1
	}

	type workload struct {
		calls        int
		phoneSeconds int
		priority     int
	}
	var loads [24]map[models.Agency]*workload
	for _, r := range records {
		h := r.EventTime.Hour()
		if loads[h] == nil {
			loads[h] = make(map[models.Agency]*workload)
		}
		w, ok := loads[h][r.Agency]
		if !ok {
			w = &workload{priority: r.PriorityNumber}
			loads[h][r.Agency] = w
		}
		w.calls++
		w.phoneSeconds += r.PhoneTime
		if r.PriorityNumber < w.priority {
			w.priority = r.PriorityNumber
		}
	}

	for h := range 24 {
		for _, agency := range models.AllAgencies {
			w, ok := loads[h][agency]
			if !ok {
				continue
			}

			callsPerHour := float64(w.calls) / float64(plan.Days)
			avgHandleSeconds := float64(w.phoneSeconds) / float64(w.calls)

			// Agents = ceil(calls_per_hour * avg_handle_time / 3600)
			agentsNeeded := int(math.Ceil(callsPerHour * avgHandleSeconds / 3600.0))

			// Adjust agents needed based on utilization
			agentsNeeded = int(math.Ceil(float64(agentsNeeded) / utilization))

			hourlyRequests[h] = append(hourlyRequests[h], models.AgencyRequirement{
				Agency:       agency,
				Calls:        w.calls,
				AgentsNeeded: agentsNeeded,
				Priority:     w.priority,
			})
		}
	}

	// Apply capacity constraints if capacityPerHour > 0
	if capacityPerHour > 0 {
		for h := range 24 {
			allocated, unmet := allocateWithConstraints(hourlyRequests[h], capacityPerHour)
			plan.HourlyRequirements[h] = allocated
			if unmet != nil {
				unmet.Hour = h
				plan.UnmetDemands = append(plan.UnmetDemands, *unmet)
			}
		}
	}

	return &plan
}

// countDays returns the number of distinct calendar days in records.
func countDays(records []models.Record) int {
	days := make(map[string]struct{})
	for _, r := range records {
		days[r.EventTime.Format("2006-01-02")] = struct{}{}
	}
	return len(days)
}

// allocateWithConstraints performs priority-based allocation.
// Time: O(n log n) for sort + O(n) for allocation = O(n log n)
func allocateWithConstraints(requests []models.AgencyRequirement, capacity int) ([]models.AgencyRequirement, *models.UnmetDemand) {
	if len(requests) == 0 {
		return requests, nil
	}

	totalDemand := 0
	for _, req := range requests {
		totalDemand += req.AgentsNeeded
	}

	// Fast path: if capacity exceeds demand, no allocation logic needed
	if capacity >= totalDemand {
		return requests, nil
	}

	// Sort by priority (1 = highest), stable so agency order breaks ties
	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].Priority < requests[j].Priority
	})

	allocated := make([]models.AgencyRequirement, 0, len(requests))
	impacted := make([]models.ImpactedAgency, 0)
	remaining := capacity

	for _, req := range requests {
		if remaining <= 0 {
			// No capacity left - fully unmet
			impacted = append(impacted, models.ImpactedAgency{
				Agency:          req.Agency,
				RequestedAgents: req.AgentsNeeded,
				AllocatedAgents: 0,
				UnmetAgents:     req.AgentsNeeded,
				Priority:        req.Priority,
			})
			continue
		}

		if remaining >= req.AgentsNeeded {
			allocated = append(allocated, req)
			remaining -= req.AgentsNeeded
			continue
		}

		// Partial allocation - give what's left
		partial := req
		partial.AgentsNeeded = remaining
		allocated = append(allocated, partial)
		impacted = append(impacted, models.ImpactedAgency{
			Agency:          req.Agency,
			RequestedAgents: req.AgentsNeeded,
			AllocatedAgents: remaining,
			UnmetAgents:     req.AgentsNeeded - remaining,
			Priority:        req.Priority,
		})
		remaining = 0
	}

	return allocated, &models.UnmetDemand{
		TotalDemand:      totalDemand,
		AllocatedAgents:  capacity,
		UnmetAgents:      totalDemand - capacity,
		ImpactedAgencies: impacted,
	}
}
