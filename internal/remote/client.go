package remote

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/stemwijzer/internal/logger"
)

const (
	userAgent      = "spigell/stemwijzer"
	defaultTimeout = 10 * time.Second

	calculatePath     = "/api/stemwijzer/calculate"
	favoritePartyPath = "/api/stemwijzer/favorite-party"
)

// Client talks to the remote stemwijzer backend.
type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	BaseURL    string
}

type Option func(*Client)

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// WithTimeout bounds a single request/response round trip.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.HTTPClient.Timeout = timeout
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.HTTPClient = client
		}
	}
}

func New(log *zap.Logger, baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")

	c := &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger:    logger.WithRemote(log, baseURL),
		UserAgent: userAgent,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}
