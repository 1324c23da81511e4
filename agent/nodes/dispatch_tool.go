package advisornode

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/Chative-College-Advisor/agent/contract"
)

// DispatchTool runs the requested tool and sends its result back on the same
// session, repeating while the model keeps asking for tools and the hop
// budget allows it.
func DispatchTool(
	ctx context.Context,
	in *GraphState,
	tools contractx.ToolDispatcher,
	maxHops int,
) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	for in.Reply.WantsTool() {
		call := in.Reply.Call
		if in.Hops >= maxHops {
			return nil, fmt.Errorf("%w: model requested %s after %d tool call(s)", contractx.ErrToolHopLimit, call.Name, in.Hops)
		}

		start := time.Now()
		result := tools.Dispatch(ctx, call.Name, call.Args)
		in.Hops++

		logger := log.Debug()
		if result.Failed() {
			logger = log.Warn().Str("error", result.Error)
		}
		logger.
			Str("conversation_id", in.Conversation.ID).
			Str("tool", call.Name).
			Int("hops", in.Hops).
			Dur("duration", time.Since(start)).
			Msg("tool dispatched")

		reply, err := in.Session.SendFunctionResult(ctx, contractx.FunctionResult{
			CallID:  call.ID,
			Name:    call.Name,
			Payload: toolPayload(result),
		})
		if err != nil {
			return nil, err
		}
		in.Reply = reply
	}
	return in, nil
}

// toolPayload keeps record lists structured and leaves messages as text.
func toolPayload(result contractx.ToolResult) any {
	if records, ok := result.Records(); ok {
		return records
	}
	return result.Content()
}
