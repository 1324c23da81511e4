package advisornode

import (
	"fmt"

	contractx "github.com/tanpawarit/Chative-College-Advisor/agent/contract"
)

func AppendUser(in *GraphState) (*GraphState, error) {
	if in == nil || in.Conversation == nil {
		return nil, fmt.Errorf("%w: graph conversation is nil", contractx.ErrValidation)
	}
	if _, err := in.Conversation.Append(contractx.RoleUser, in.Text, in.Now); err != nil {
		return nil, err
	}
	return in, nil
}
