package chat

import "sync"

// Registry hands out one conversation per user
type Registry struct {
	mu            sync.Mutex
	completer     Completer
	settings      Settings
	conversations map[int64]*Conversation
}

// NewRegistry creates a registry whose conversations start with settings
func NewRegistry(completer Completer, settings Settings) *Registry {
	return &Registry{
		completer:     completer,
		settings:      settings,
		conversations: make(map[int64]*Conversation),
	}
}

// For returns the conversation of a user, starting one if needed
func (r *Registry) For(userID int64) *Conversation {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv, ok := r.conversations[userID]
	if !ok {
		conv = NewConversation(r.completer, r.settings)
		r.conversations[userID] = conv
	}
	return conv
}
