package talent

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	defaultAPIURL = "http://localhost:8000"
	userAgent     = "talentwire/scout"
	// Default number of profiles requested per search.
	DefaultTopK = 5
)

type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(ctx context.Context, logger *zap.Logger, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultAPIURL
	}

	return &Client{
		ctx:    ctx,
		APIURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

// WithToken sets a bearer token sent with every request. The backend may run
// without authentication, so an empty token is fine.
func (c *Client) WithToken(token string) *Client {
	c.token = token
	return c
}

func (c *Client) WithTimeout(d time.Duration) *Client {
	if d > 0 {
		c.HTTPClient.Timeout = d
	}
	return c
}
