package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/tanpawarit/Chative-College-Advisor/agent/contract"
)

// session keeps the eino message history of one conversation. Requests and
// replies are committed together, and only when the model call succeeds.
type session struct {
	runner  compose.Runnable[map[string]any, *schema.Message]
	history []*schema.Message

	callSeq int
	pending *contractx.FunctionCall
}

const unansweredCallResult = `{"result":"Error: tool call was not executed."}`

func (s *session) SendText(ctx context.Context, text string) (contractx.Reply, error) {
	reqs := make([]*schema.Message, 0, 2)
	// A call left unanswered by the previous turn still needs a tool response.
	if s.pending != nil {
		reqs = append(reqs, schema.ToolMessage(unansweredCallResult, s.pending.ID))
	}
	reqs = append(reqs, schema.UserMessage(text))
	return s.send(ctx, reqs...)
}

func (s *session) SendFunctionResult(ctx context.Context, result contractx.FunctionResult) (contractx.Reply, error) {
	callID := strings.TrimSpace(result.CallID)
	if callID == "" && s.pending != nil {
		callID = s.pending.ID
	}
	if callID == "" {
		return contractx.Reply{}, fmt.Errorf("%w: function result for %q has no matching call", contractx.ErrValidation, result.Name)
	}

	content, err := json.Marshal(map[string]any{"result": result.Payload})
	if err != nil {
		return contractx.Reply{}, fmt.Errorf("%w: encode function result: %v", contractx.ErrValidation, err)
	}
	return s.send(ctx, schema.ToolMessage(string(content), callID))
}

func (s *session) send(ctx context.Context, reqs ...*schema.Message) (contractx.Reply, error) {
	msgs := make([]*schema.Message, 0, len(s.history)+len(reqs)+1)
	msgs = append(msgs, s.history...)
	msgs = append(msgs, reqs...)

	out, err := s.runner.Invoke(ctx, map[string]any{historyKey: msgs})
	if err != nil {
		return contractx.Reply{}, fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}
	if out == nil {
		return contractx.Reply{}, fmt.Errorf("%w: empty model response", contractx.ErrSchemaViolation)
	}

	reply, committed, err := s.toReply(out)
	if err != nil {
		return contractx.Reply{}, err
	}

	s.history = append(msgs, committed)
	s.pending = reply.Call
	return reply, nil
}

// toReply maps a model message to a Reply. Only the first tool call is
// honored and the committed message is trimmed to it so every call in the
// history gets exactly one tool response.
func (s *session) toReply(msg *schema.Message) (contractx.Reply, *schema.Message, error) {
	if len(msg.ToolCalls) == 0 {
		text := strings.TrimSpace(msg.Content)
		if text == "" {
			return contractx.Reply{}, nil, fmt.Errorf("%w: model reply has neither text nor a tool call", contractx.ErrSchemaViolation)
		}
		return contractx.Reply{Text: text}, schema.AssistantMessage(msg.Content, nil), nil
	}

	tc := msg.ToolCalls[0]
	name := strings.TrimSpace(tc.Function.Name)
	if name == "" {
		return contractx.Reply{}, nil, fmt.Errorf("%w: tool call name is empty", contractx.ErrSchemaViolation)
	}

	args := map[string]any{}
	if raw := strings.TrimSpace(tc.Function.Arguments); raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return contractx.Reply{}, nil, fmt.Errorf("%w: invalid tool args for tool=%s: %v", contractx.ErrSchemaViolation, name, err)
		}
	}

	s.callSeq++
	if strings.TrimSpace(tc.ID) == "" {
		tc.ID = fmt.Sprintf("call_%d", s.callSeq)
	}
	if tc.Type == "" {
		tc.Type = "function"
	}

	committed := schema.AssistantMessage(msg.Content, []schema.ToolCall{tc})
	return contractx.Reply{
		Call: &contractx.FunctionCall{ID: tc.ID, Name: name, Args: args},
	}, committed, nil
}
