package talent

import (
	"fmt"
	"io"

	"github.com/mitchellh/mapstructure"
)

const (
	uploadPath     = "/profiles/upload"
	taskStatusPath = "/profiles/status"
	// Multipart field name the backend expects for the résumé file.
	uploadField = "resume_file"
)

// TaskStatus is the backend-reported state of one ingestion task.
type TaskStatus string

const (
	TaskPending TaskStatus = "PENDING"
	TaskStarted TaskStatus = "STARTED"
	TaskSuccess TaskStatus = "SUCCESS"
	TaskFailure TaskStatus = "FAILURE"
	TaskRetry   TaskStatus = "RETRY"
)

// IsTerminal reports whether no further status changes can happen.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskSuccess || s == TaskFailure
}

type UploadResponse struct {
	TaskID   string `json:"task_id"`
	Filename string `json:"filename"`
	Message  string `json:"message"`
}

type TaskStatusResponse struct {
	TaskID   string         `json:"task_id"`
	Status   TaskStatus     `json:"status"`
	Error    string         `json:"error,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// IngestionReport is the typed view of the metadata an ingestion task attaches
// to its terminal status.
type IngestionReport struct {
	ProfileID string `mapstructure:"profile_id"`
	Filename  string `mapstructure:"filename"`
	Pages     int    `mapstructure:"pages"`
}

// Report decodes the loosely-typed task metadata. Missing metadata yields an
// empty report, not an error.
func (r *TaskStatusResponse) Report() (*IngestionReport, error) {
	report := &IngestionReport{}
	if r.Metadata == nil {
		return report, nil
	}

	if err := mapstructure.Decode(r.Metadata, report); err != nil {
		return nil, fmt.Errorf("decode task metadata: %w", err)
	}

	return report, nil
}

func (c *Client) UploadResume(filename string, file io.Reader) (*UploadResponse, error) {
	var resp UploadResponse
	url := fmt.Sprintf("%s%s", c.APIURL, uploadPath)
	if err := c.postFile(url, uploadField, filename, file, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) GetTaskStatus(taskID string) (*TaskStatusResponse, error) {
	if taskID == "" {
		return nil, fmt.Errorf("task id is required")
	}

	var resp TaskStatusResponse
	url := fmt.Sprintf("%s%s/%s", c.APIURL, taskStatusPath, taskID)
	if err := c.getJSON(url, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
