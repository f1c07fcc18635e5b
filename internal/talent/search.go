package talent

import "fmt"

const (
	SearchPath = "/search"
	RefinePath = "/refine"
)

type SearchRequest struct {
	Query     string `json:"query"`
	TopK      int    `json:"top_k,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

type RefineRequest struct {
	RefinementQuery string `json:"refinement_query"`
	SessionID       string `json:"session_id"`
	TopK            int    `json:"top_k,omitempty"`
}

type SearchResponse struct {
	Query            string       `json:"query,omitempty"`
	SessionID        string       `json:"session_id"`
	Results          []ResultItem `json:"results"`
	GeneratedSummary string       `json:"generated_summary,omitempty"`
	Message          string       `json:"message,omitempty"`
}

// ResultItem is one ranked profile impression. FeedbackID is unique per
// impression: the same profile shown again in a later turn carries a new one.
type ResultItem struct {
	Profile ProfileSummary `json:"profile"`
	// Score is whatever the ranker produced. Callers must not assume it is
	// normalized to [0, 1].
	Score          float64          `json:"score"`
	Explanation    string           `json:"explanation,omitempty"`
	FeedbackID     string           `json:"feedback_id"`
	RelevantChunks []map[string]any `json:"relevant_chunks,omitempty"`
}

func (c *Client) Search(req *SearchRequest) (*SearchResponse, error) {
	if req.TopK == 0 {
		req.TopK = DefaultTopK
	}

	var resp SearchResponse
	if err := c.postJSON(fmt.Sprintf("%s%s", c.APIURL, SearchPath), req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) Refine(req *RefineRequest) (*SearchResponse, error) {
	if req.TopK == 0 {
		req.TopK = DefaultTopK
	}

	var resp SearchResponse
	if err := c.postJSON(fmt.Sprintf("%s%s", c.APIURL, RefinePath), req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
