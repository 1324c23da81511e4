package advisornode

import (
	"errors"
	"time"

	contractx "github.com/tanpawarit/Chative-College-Advisor/agent/contract"
	statex "github.com/tanpawarit/Chative-College-Advisor/agent/state"
)

var ErrInvalidMessage = errors.New("message is empty")

type GraphInput struct {
	Conversation *statex.Conversation
	Session      contractx.ChatSession
	Text         string
}

type GraphOutput struct {
	Reply contractx.Message
}

// GraphState is threaded through every node of one advisor turn.
type GraphState struct {
	Conversation *statex.Conversation
	Session      contractx.ChatSession
	Text         string
	Now          time.Time

	Reply contractx.Reply
	Hops  int
}
