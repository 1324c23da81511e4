package advisornode

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Chative-College-Advisor/agent/contract"
)

func FinalizeReply(in *GraphState) (GraphOutput, error) {
	if in == nil || in.Conversation == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	text := strings.TrimSpace(in.Reply.Text)
	if text == "" {
		return GraphOutput{}, fmt.Errorf("%w: model reply has no text", contractx.ErrSchemaViolation)
	}

	msg, err := in.Conversation.Append(contractx.RoleModel, text, in.Now)
	if err != nil {
		return GraphOutput{}, err
	}
	return GraphOutput{Reply: msg}, nil
}
