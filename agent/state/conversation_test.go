package state

import (
	"errors"
	"testing"
	"time"

	contractx "github.com/tanpawarit/Chative-College-Advisor/agent/contract"
)

func TestNewConversation(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.FixedZone("ICT", 7*3600))
	a := NewConversation(now)
	b := NewConversation(now)

	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("conversation ids must be unique, got %q and %q", a.ID, b.ID)
	}
	if a.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", a.Len())
	}
	if a.CreatedAt.Location() != time.UTC {
		t.Fatalf("CreatedAt must be UTC, got %v", a.CreatedAt.Location())
	}
	if _, ok := a.Last(); ok {
		t.Fatal("Last() on empty conversation must report false")
	}
}

func TestConversationAppend(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	c := NewConversation(start)

	later := start.Add(time.Minute)
	if _, err := c.Append(contractx.RoleModel, "Hello!", start); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	msg, err := c.Append(contractx.RoleUser, "I like physics", later)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if msg.Role != contractx.RoleUser || msg.Text() != "I like physics" {
		t.Fatalf("unexpected message: %#v", msg)
	}

	last, ok := c.Last()
	if !ok || last.Text() != "I like physics" {
		t.Fatalf("Last() = %#v, %v", last, ok)
	}
	if !c.UpdatedAt.Equal(later) {
		t.Fatalf("UpdatedAt = %v, want %v", c.UpdatedAt, later)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestConversationAppendRejectsUnknownRole(t *testing.T) {
	t.Parallel()

	c := NewConversation(time.Now())
	_, err := c.Append(contractx.Role("system"), "hi", time.Now())
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("Append() error = %v, want ErrInvalidRole", err)
	}
	if c.Len() != 0 {
		t.Fatalf("rejected message was appended")
	}
}

func TestConversationHistoryIsACopy(t *testing.T) {
	t.Parallel()

	c := NewConversation(time.Now())
	_, _ = c.Append(contractx.RoleUser, "first", time.Now())

	h := c.History()
	h[0].Parts[0] = "mutated"

	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
	if c.Messages[0].Text() != "first" {
		t.Fatalf("history copy leaked into conversation: %q", c.Messages[0].Text())
	}
}

func TestConversationValidate(t *testing.T) {
	t.Parallel()

	c := NewConversation(time.Now())
	c.Messages = append(c.Messages, contractx.Message{Role: contractx.RoleUser, Parts: []string{"a", "b"}})
	if err := c.Validate(); !errors.Is(err, ErrInvalidParts) {
		t.Fatalf("Validate() error = %v, want ErrInvalidParts", err)
	}

	var nilConv *Conversation
	if err := nilConv.Validate(); !errors.Is(err, ErrNilConversation) {
		t.Fatalf("Validate() error = %v, want ErrNilConversation", err)
	}
}
