package talent

import "fmt"

const feedbackPath = "/feedback"

type FeedbackType string

const (
	FeedbackLike    FeedbackType = "like"
	FeedbackDislike FeedbackType = "dislike"
)

// Feedback is one user judgment on one result impression.
type Feedback struct {
	SessionID  string       `json:"session_id"`
	ProfileID  string       `json:"profile_id"`
	FeedbackID string       `json:"search_result_feedback_id"`
	Type       FeedbackType `json:"feedback_type"`
	Comment    string       `json:"comment,omitempty"`
	QueryText  string       `json:"query_text,omitempty"`
	UserAgent  string       `json:"user_agent,omitempty"`
	// SearchTimestamp is the RFC 3339 instant of the query that produced the
	// impression, when known.
	SearchTimestamp string `json:"search_timestamp,omitempty"`
	// TimeToFeedback is whole seconds between the query and the judgment.
	TimeToFeedback int `json:"time_to_feedback"`
	RankPosition   int `json:"search_rank_position,omitempty"`
}

type FeedbackAck struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (c *Client) SubmitFeedback(feedback *Feedback) (*FeedbackAck, error) {
	var ack FeedbackAck
	if err := c.postJSON(fmt.Sprintf("%s%s", c.APIURL, feedbackPath), feedback, &ack); err != nil {
		return nil, err
	}

	return &ack, nil
}
