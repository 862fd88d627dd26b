package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"langportal/internal/config"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"
)

const (
	// DefaultModel is used when a request names no model
	DefaultModel = "llama3.2:1b"
	// DefaultPrompt is sent when a request carries no message
	DefaultPrompt = "What is the meaning of life?"
)

// Role identifies the author of a chat message
type Role string

// Roles a conversation is made of
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a chat as the model server encodes it
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Options are the sampling settings understood by the model server
type Options struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
	Options  Options   `json:"options"`
}

// Reply is the model server's answer to a chat request
type Reply struct {
	Model     string  `json:"model,omitempty"`
	CreatedAt string  `json:"created_at,omitempty"`
	Message   Message `json:"message"`
	Done      bool    `json:"done"`
}

// StatusError is returned when the model server answers with an error status
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("model server returned %d: %s", e.Code, e.Body)
}

// Completer sends a conversation to a model and returns its reply
type Completer interface {
	Chat(ctx context.Context, model string, messages []Message, opts Options) (Reply, error)
}

// Client talks to an Ollama compatible /api/chat endpoint
type Client struct {
	httpClient       *resty.Client
	maxRetryAttempts uint
	retryDelay       time.Duration
}

// NewClient creates a client for the configured model server
func NewClient(cfg config.ChatConfig) *Client {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(cfg.BaseURL, "/"))
	client.SetHeader("Content-Type", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &Client{
		httpClient:       client,
		maxRetryAttempts: cfg.Retries,
		retryDelay:       500 * time.Millisecond,
	}
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code >= http.StatusInternalServerError || statusErr.Code == http.StatusTooManyRequests
	}
	// transport failures such as refused connections and timeouts
	return !errors.Is(err, context.Canceled)
}

// Chat sends messages to the model, retrying transient failures with back-off.
// A response body that is not JSON is returned verbatim as the reply content.
func (c *Client) Chat(ctx context.Context, model string, messages []Message, opts Options) (Reply, error) {
	if model == "" {
		model = DefaultModel
	}

	var result Reply
	if err := retry.Do(
		func() error {
			reply, err := c.chat(ctx, model, messages, opts)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = reply
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.maxRetryAttempts+1),
		retry.Delay(c.retryDelay),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return Reply{}, err
	}
	return result, nil
}

func (c *Client) chat(ctx context.Context, model string, messages []Message, opts Options) (Reply, error) {
	res, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model:    model,
			Messages: messages,
			Stream:   false,
			Options:  opts,
		}).
		Post("/api/chat")
	if err != nil {
		return Reply{}, fmt.Errorf("post /api/chat: %w", err)
	}
	if res.IsError() {
		return Reply{}, &StatusError{Code: res.StatusCode(), Body: strings.TrimSpace(res.String())}
	}

	var reply Reply
	if err := json.Unmarshal(res.Body(), &reply); err != nil {
		return Reply{
			Model:   model,
			Message: Message{Role: RoleAssistant, Content: res.String()},
			Done:    true,
		}, nil
	}
	return reply, nil
}
