package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/tanpawarit/Chative-College-Advisor/agent/contract"
	toolx "github.com/tanpawarit/Chative-College-Advisor/agent/tool"
)

// Gateway opens chat sessions against a tool-calling chat model bound with
// the advisor's tool declarations.
type Gateway struct {
	runner compose.Runnable[map[string]any, *schema.Message]
}

var _ contractx.Gateway = (*Gateway)(nil)

func New(ctx context.Context, chatModel einomodel.ToolCallingChatModel, systemPrompt string) (*Gateway, error) {
	if chatModel == nil {
		return nil, errors.New("chat model is required")
	}
	systemPrompt = strings.TrimSpace(systemPrompt)
	if systemPrompt == "" {
		return nil, fmt.Errorf("%w: advisor system prompt is empty", contractx.ErrPromptMissing)
	}

	toolModel, err := chatModel.WithTools(toolx.Declarations())
	if err != nil {
		return nil, fmt.Errorf("%w: bind advisor tools: %v", contractx.ErrModelInvoke, err)
	}

	runner, err := compileChatGraph(ctx, toolModel, systemPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}
	return &Gateway{runner: runner}, nil
}

// StartSession seeds a new session with a prior transcript.
func (g *Gateway) StartSession(history []contractx.Message) (contractx.ChatSession, error) {
	msgs := make([]*schema.Message, 0, len(history))
	for i, m := range history {
		switch m.Role {
		case contractx.RoleUser:
			msgs = append(msgs, schema.UserMessage(m.Text()))
		case contractx.RoleModel:
			msgs = append(msgs, schema.AssistantMessage(m.Text(), nil))
		default:
			return nil, fmt.Errorf("%w: history message %d has role %q", contractx.ErrValidation, i, m.Role)
		}
	}
	return &session{runner: g.runner, history: msgs}, nil
}
