package talent

import "fmt"

const healthPath = "/health"

type HealthReport struct {
	Status string          `json:"status"`
	Checks map[string]bool `json:"checks,omitempty"`
}

func (c *Client) Health() (*HealthReport, error) {
	var report HealthReport
	if err := c.getJSON(fmt.Sprintf("%s%s", c.APIURL, healthPath), &report); err != nil {
		return nil, err
	}

	return &report, nil
}
