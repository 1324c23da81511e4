package advisornode

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/Chative-College-Advisor/agent/contract"
)

func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	if in.Conversation == nil {
		return nil, fmt.Errorf("%w: conversation is nil", contractx.ErrValidation)
	}
	if in.Session == nil {
		return nil, fmt.Errorf("%w: chat session is nil", contractx.ErrValidation)
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrInvalidMessage
	}

	return &GraphState{
		Conversation: in.Conversation,
		Session:      in.Session,
		Text:         text,
		Now:          nowFn().UTC(),
	}, nil
}
