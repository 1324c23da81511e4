package advisornode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Chative-College-Advisor/agent/contract"
)

func SendUser(ctx context.Context, in *GraphState) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	reply, err := in.Session.SendText(ctx, in.Text)
	if err != nil {
		return nil, err
	}
	in.Reply = reply
	return in, nil
}

// NeedsTool routes the graph after a model reply.
func NeedsTool(in *GraphState) bool {
	return in != nil && in.Reply.WantsTool()
}
