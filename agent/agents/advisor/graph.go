package advisor

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	nodex "github.com/tanpawarit/Chative-College-Advisor/agent/nodes"
)

type turnErrKey struct{}

// recordErr keeps the first node error of a turn so the caller sees it
// without the graph's wrapping.
func recordErr[T any](ctx context.Context, out T, err error) (T, error) {
	if err != nil {
		if p, ok := ctx.Value(turnErrKey{}).(*error); ok && *p == nil {
			*p = err
		}
	}
	return out, err
}

func (a *Advisor) compileTurnGraph(
	ctx context.Context,
) (compose.Runnable[nodex.GraphInput, nodex.GraphOutput], error) {
	graph := compose.NewGraph[nodex.GraphInput, nodex.GraphOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.GraphState, error) {
			out, err := nodex.ValidateRequest(in, a.now)
			return recordErr(ctx, out, err)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("append_user",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			out, err := nodex.AppendUser(in)
			return recordErr(ctx, out, err)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node append_user: %w", err)
	}

	if err := graph.AddLambdaNode("send_user",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			out, err := nodex.SendUser(ctx, in)
			return recordErr(ctx, out, err)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node send_user: %w", err)
	}

	if err := graph.AddLambdaNode("dispatch_tool",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			out, err := nodex.DispatchTool(ctx, in, a.tools, a.maxToolHops)
			return recordErr(ctx, out, err)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node dispatch_tool: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_reply",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			out, err := nodex.FinalizeReply(in)
			return recordErr(ctx, out, err)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_reply: %w", err)
	}

	branch := compose.NewGraphBranch(
		func(ctx context.Context, in *nodex.GraphState) (string, error) {
			if nodex.NeedsTool(in) {
				return "dispatch_tool", nil
			}
			return "finalize_reply", nil
		},
		map[string]bool{
			"dispatch_tool":  true,
			"finalize_reply": true,
		},
	)
	if err := graph.AddBranch("send_user", branch); err != nil {
		return nil, fmt.Errorf("add branch after send_user: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "append_user"},
		{"append_user", "send_user"},
		{"dispatch_tool", "finalize_reply"},
		{"finalize_reply", compose.END},
	}
	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("advisor.handle_turn"))
	if err != nil {
		return nil, fmt.Errorf("compile advisor graph: %w", err)
	}
	return runner, nil
}
