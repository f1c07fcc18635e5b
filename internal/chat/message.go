package chat

import (
	"time"

	"github.com/talentwire/scout/internal/talent"
)

// MessageKind tags the two variants of a conversation message.
type MessageKind string

const (
	// KindQuery is raw user input.
	KindQuery MessageKind = "query"
	// KindResponse is a system answer with its ranked results.
	KindResponse MessageKind = "response"
)

// Message is one entry in the conversation. Query messages carry only
// Content; Response messages additionally carry Summary and Results.
type Message struct {
	Kind      MessageKind         `json:"type"`
	Content   string              `json:"content"`
	Summary   string              `json:"summary,omitempty"`
	Results   []talent.ResultItem `json:"results,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}

func NewQuery(content string, at time.Time) Message {
	return Message{
		Kind:      KindQuery,
		Content:   content,
		Timestamp: at,
	}
}

func NewResponse(content, summary string, results []talent.ResultItem, at time.Time) Message {
	if results == nil {
		results = []talent.ResultItem{}
	}

	return Message{
		Kind:      KindResponse,
		Content:   content,
		Summary:   summary,
		Results:   results,
		Timestamp: at,
	}
}
