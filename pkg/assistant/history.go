package assistant

import (
	"sync"

	"github.com/cloudwego/eino/schema"
)

// DefaultHistoryLimit is the number of conversation entries kept by default (five
// question/answer pairs).
const DefaultHistoryLimit = 10

// Entry is one message of the conversation log.
type Entry struct {
	Role    schema.RoleType
	Content string
}

// History is a sliding window over the most recent conversation entries. Once the window is full,
// adding an entry discards the oldest one.
//
// History is safe for concurrent use.
type History struct {
	mu      sync.Mutex
	limit   int
	entries []Entry
}

// NewHistory returns an empty History that keeps at most limit entries. A non-positive limit
// selects DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Add appends an entry, dropping the oldest entries if the window overflows.
func (h *History) Add(role schema.RoleType, content string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, Entry{Role: role, Content: content})
	if overflow := len(h.entries) - h.limit; overflow > 0 {
		h.entries = append([]Entry(nil), h.entries[overflow:]...)
	}
}

// Entries returns a copy of the retained entries, oldest first.
func (h *History) Entries() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Entry(nil), h.entries...)
}

// Messages converts the retained entries into chat messages, oldest first.
func (h *History) Messages() []*schema.Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	messages := make([]*schema.Message, 0, len(h.entries))
	for _, e := range h.entries {
		messages = append(messages, &schema.Message{Role: e.Role, Content: e.Content})
	}
	return messages
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

func (h *History) Limit() int {
	return h.limit
}

// Clear discards all entries.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}
