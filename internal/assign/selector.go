package assign

import (
	"sort"

	"groceryDeliveryManagement/internal/geo"
	"groceryDeliveryManagement/models"
)

// Selection reason strings, surfaced in logs and responses.
const (
	ReasonNearest     = "nearest"
	ReasonLeastLoaded = "least-loaded"
	ReasonNoAgents    = "no-agents"
)

// Result is the outcome of one selection. Assigned false is not an error;
// the order is still accepted and its delivery leg stays pending.
type Result struct {
	Assigned   bool     `json:"assigned"`
	AgentID    int64    `json:"agent_id,omitempty"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
	Reason     string   `json:"reason"`
}

// SelectAgent picks exactly one agent to offer the order to, or reports that
// none is available. Pure selection; persistence of the assignment is the
// caller's responsibility.
//
// Tiers, first match wins:
//  1. agents at or over the capacity cap are eliminated outright
//  2. nearest to pickup among agents with a known location; ties broken by
//     lowest assigned count, then lowest id
//  3. no usable locations (or no pickup point): least-loaded, ties by id
//  4. nobody left: Assigned false
func SelectAgent(agents []models.DeliveryAgent, pickup *geo.Point) Result {
	candidates := make([]models.DeliveryAgent, 0, len(agents))
	for _, a := range agents {
		if a.AssignedOrders < models.MaxConcurrentDeliveries {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) == 0 {
		return Result{Assigned: false, Reason: ReasonNoAgents}
	}

	if pickup != nil {
		type scored struct {
			agent models.DeliveryAgent
			km    float64
		}
		var located []scored
		for _, a := range candidates {
			if km, ok := geo.DistanceKm(a.Location(), pickup); ok {
				located = append(located, scored{agent: a, km: km})
			}
		}
		if len(located) > 0 {
			sort.Slice(located, func(i, j int) bool {
				if located[i].km != located[j].km {
					return located[i].km < located[j].km
				}
				if located[i].agent.AssignedOrders != located[j].agent.AssignedOrders {
					return located[i].agent.AssignedOrders < located[j].agent.AssignedOrders
				}
				return located[i].agent.ID < located[j].agent.ID
			})
			best := located[0]
			km := best.km
			return Result{Assigned: true, AgentID: best.agent.ID, DistanceKm: &km, Reason: ReasonNearest}
		}
	}

	// No candidate has usable location data (or the pickup point is
	// unknown): fall back to the least-loaded agent.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].AssignedOrders != candidates[j].AssignedOrders {
			return candidates[i].AssignedOrders < candidates[j].AssignedOrders
		}
		return candidates[i].ID < candidates[j].ID
	})
	return Result{Assigned: true, AgentID: candidates[0].ID, Reason: ReasonLeastLoaded}
}

// Rank returns every under-capacity candidate in selection order: located
// agents by the nearest tier's ordering first, then unlocated agents by the
// least-loaded ordering. Callers that must survive an assignment race walk
// the ranking until an atomic slot acquire succeeds.
func Rank(agents []models.DeliveryAgent, pickup *geo.Point) []models.DeliveryAgent {
	ranked := make([]models.DeliveryAgent, 0, len(agents))
	remaining := make([]models.DeliveryAgent, 0, len(agents))
	for _, a := range agents {
		if a.AssignedOrders < models.MaxConcurrentDeliveries {
			remaining = append(remaining, a)
		}
	}
	for len(remaining) > 0 {
		res := SelectAgent(remaining, pickup)
		if !res.Assigned {
			break
		}
		next := remaining[:0:0]
		for _, a := range remaining {
			if a.ID == res.AgentID {
				ranked = append(ranked, a)
			} else {
				next = append(next, a)
			}
		}
		remaining = next
	}
	return ranked
}
