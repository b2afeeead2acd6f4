// Package calllog provides the call-log browser's data access and
// client-side refinement on top of the request gateway.
package calllog

import "time"

// CallStatus is the outcome of a call.
type CallStatus string

const (
	CallStatusCompleted CallStatus = "completed"
	CallStatusFailed    CallStatus = "failed"
	CallStatusNoAnswer  CallStatus = "no-answer"
	CallStatusBusy      CallStatus = "busy"
	CallStatusOngoing   CallStatus = "in-progress"
)

// Direction is the direction of a call.
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// Call is the summary record shown in the call-log list.
type Call struct {
	ID             string     `json:"id"`
	CallID         string     `json:"callId,omitempty"`
	ConversationID string     `json:"conversationId,omitempty"`
	Phone          string     `json:"phone"`
	AgentID        string     `json:"agentId,omitempty"`
	AgentName      string     `json:"agentName,omitempty"`
	CampaignID     string     `json:"campaignId,omitempty"`
	CampaignName   string     `json:"campaignName,omitempty"`
	Status         CallStatus `json:"status"`
	Direction      Direction  `json:"direction,omitempty"`
	DurationSec    float64    `json:"durationSec"`
	StartedAt      *time.Time `json:"startedAt,omitempty"`
	EndedAt        *time.Time `json:"endedAt,omitempty"`
	Summary        string     `json:"summary,omitempty"`
}

// DetailID returns the identifier used to fetch the call's transcript.
// Candidates are tried in order: conversation id, call id, record id.
func (c Call) DetailID() string {
	for _, candidate := range []string{c.ConversationID, c.CallID, c.ID} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

// Speaker identifies who said a transcript turn.
type Speaker string

const (
	SpeakerAgent    Speaker = "agent"
	SpeakerCustomer Speaker = "customer"
	SpeakerSystem   Speaker = "system"
)

// Turn is one utterance in a transcript.
type Turn struct {
	Speaker   Speaker `json:"speaker"`
	Text      string  `json:"text"`
	OffsetSec float64 `json:"offsetSec"`
}

// Transcript is the full detail of a call.
type Transcript struct {
	CallID       string `json:"callId"`
	Turns        []Turn `json:"turns"`
	RecordingURL string `json:"recordingUrl,omitempty"`
	Summary      string `json:"summary,omitempty"`
}

// Agent is a calling agent as listed by the admin API.
type Agent struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// Campaign is a calling campaign as listed by the admin API.
type Campaign struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}
