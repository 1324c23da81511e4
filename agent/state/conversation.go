package state

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	contractx "github.com/tanpawarit/Chative-College-Advisor/agent/contract"
)

var (
	ErrNilConversation = errors.New("conversation is nil")
	ErrInvalidRole     = errors.New("message role is invalid")
	ErrInvalidParts    = errors.New("message must carry exactly one text part")
)

// Conversation is the ordered transcript of one chat session. It is owned by
// a single UI session and is not safe for concurrent use.
type Conversation struct {
	ID        string              `json:"id"`
	Messages  []contractx.Message `json:"messages"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func NewConversation(now time.Time) *Conversation {
	return &Conversation{
		ID:        uuid.NewString(),
		Messages:  make([]contractx.Message, 0, 8),
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
}

func (c *Conversation) Touch(now time.Time) {
	c.UpdatedAt = now.UTC()
}

// Append adds a single-part message to the end of the transcript.
func (c *Conversation) Append(role contractx.Role, text string, now time.Time) (contractx.Message, error) {
	if c == nil {
		return contractx.Message{}, ErrNilConversation
	}
	if !role.Valid() {
		return contractx.Message{}, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	msg := contractx.NewMessage(role, text)
	c.Messages = append(c.Messages, msg)
	c.Touch(now)
	return msg, nil
}

// History returns a copy of the transcript.
func (c *Conversation) History() []contractx.Message {
	if c == nil {
		return nil
	}
	out := make([]contractx.Message, 0, len(c.Messages))
	for _, m := range c.Messages {
		out = append(out, contractx.Message{Role: m.Role, Parts: slices.Clone(m.Parts)})
	}
	return out
}

func (c *Conversation) Last() (contractx.Message, bool) {
	if c == nil || len(c.Messages) == 0 {
		return contractx.Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

func (c *Conversation) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Messages)
}

func (c *Conversation) Validate() error {
	if c == nil {
		return ErrNilConversation
	}
	for i, m := range c.Messages {
		if !m.Role.Valid() {
			return fmt.Errorf("%w: message %d has role %q", ErrInvalidRole, i, m.Role)
		}
		if len(m.Parts) != 1 {
			return fmt.Errorf("%w: message %d has %d parts", ErrInvalidParts, i, len(m.Parts))
		}
	}
	return nil
}
