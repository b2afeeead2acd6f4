package calllog

import (
	"strings"

	"github.com/unifiedui/admin-gateway/internal/services/filters"
)

// Refine applies the client-only filters (free-text search and duration
// bounds) to a fetched page. It returns a new slice and never modifies calls.
func Refine(calls []Call, client filters.Set) []Call {
	search := strings.ToLower(client.Get(filters.KeySearch))
	minDur, hasMin := client.MinDuration()
	maxDur, hasMax := client.MaxDuration()

	out := make([]Call, 0, len(calls))
	for _, call := range calls {
		if hasMin && call.DurationSec < minDur {
			continue
		}
		if hasMax && call.DurationSec > maxDur {
			continue
		}
		if search != "" && !matchesSearch(call, search) {
			continue
		}
		out = append(out, call)
	}
	return out
}

func matchesSearch(call Call, needle string) bool {
	fields := []string{
		call.Phone,
		call.AgentName,
		call.CampaignName,
		call.Summary,
		call.CallID,
		call.ID,
	}
	for _, field := range fields {
		if field != "" && strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
