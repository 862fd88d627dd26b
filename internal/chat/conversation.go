package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Exchange is one question and answer of a conversation
type Exchange struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	UserMessage string    `json:"user_message"`
	BotResponse string    `json:"bot_response"`
}

// Settings control how a conversation queries the model
type Settings struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Conversation keeps the history of one user's chat with the model
type Conversation struct {
	mu        sync.Mutex
	completer Completer
	settings  Settings
	history   []Exchange
	now       func() time.Time
}

// NewConversation starts an empty conversation
func NewConversation(completer Completer, settings Settings) *Conversation {
	if settings.Model == "" {
		settings.Model = DefaultModel
	}
	settings.Temperature = clampTemperature(settings.Temperature)
	return &Conversation{
		completer: completer,
		settings:  settings,
		now:       time.Now,
	}
}

// Send asks the model with previous exchanges as context.
// History is only extended when the model answered.
func (c *Conversation) Send(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		message = DefaultPrompt
	}

	c.mu.Lock()
	settings := c.settings
	messages := make([]Message, 0, 2*len(c.history)+1)
	for _, ex := range c.history {
		messages = append(messages,
			Message{Role: RoleUser, Content: ex.UserMessage},
			Message{Role: RoleAssistant, Content: ex.BotResponse},
		)
	}
	c.mu.Unlock()

	messages = append(messages, Message{Role: RoleUser, Content: message})

	reply, err := c.completer.Chat(ctx, settings.Model, messages, Options{
		Temperature: settings.Temperature,
		NumPredict:  settings.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.history = append(c.history, Exchange{
		ID:          uuid.NewString(),
		Timestamp:   c.now(),
		UserMessage: message,
		BotResponse: reply.Message.Content,
	})
	c.mu.Unlock()

	return reply.Message.Content, nil
}

// History returns a copy of the exchanges so far
func (c *Conversation) History() []Exchange {
	c.mu.Lock()
	defer c.mu.Unlock()

	history := make([]Exchange, len(c.history))
	copy(history, c.history)
	return history
}

// Clear forgets all exchanges
func (c *Conversation) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = nil
}

// Settings returns the current model settings
func (c *Conversation) Settings() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// UpdateSettings changes temperature and max tokens; nil leaves a value unchanged.
// Temperature is clamped to [0, 1] and non-positive max tokens are ignored.
func (c *Conversation) UpdateSettings(temperature *float64, maxTokens *int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if temperature != nil {
		c.settings.Temperature = clampTemperature(*temperature)
	}
	if maxTokens != nil && *maxTokens > 0 {
		c.settings.MaxTokens = *maxTokens
	}
}

func clampTemperature(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
