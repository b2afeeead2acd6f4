package testutil

import (
	"fmt"
	"time"

	"github.com/unifiedui/admin-gateway/internal/services/calllog"
	"github.com/unifiedui/admin-gateway/internal/services/filters"
)

// NewTestCall creates a call with default values.
func NewTestCall(n int) calllog.Call {
	started := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC).Add(time.Duration(n) * time.Minute)
	return calllog.Call{
		ID:             fmt.Sprintf("rec-%d", n),
		CallID:         fmt.Sprintf("call-%d", n),
		ConversationID: fmt.Sprintf("conv-%d", n),
		Phone:          fmt.Sprintf("+4930000%03d", n),
		AgentName:      "Ada",
		CampaignName:   "Spring",
		Status:         calllog.CallStatusCompleted,
		Direction:      calllog.DirectionOutbound,
		DurationSec:    float64(30 + n),
		StartedAt:      &started,
	}
}

// NewTestPage creates a page of n calls out of total.
func NewTestPage(n, total, pageSize int) *filters.PageResult[calllog.Call] {
	items := make([]calllog.Call, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, NewTestCall(i))
	}
	return &filters.PageResult[calllog.Call]{Items: items, Total: total, PageSize: pageSize}
}
