package contract

import "context"

// Gateway opens chat sessions against the hosted model.
type Gateway interface {
	StartSession(history []Message) (ChatSession, error)
}

// ChatSession is one running conversation with the model. Both send methods
// return either plain text or a request to invoke a named tool.
type ChatSession interface {
	SendText(ctx context.Context, text string) (Reply, error)
	SendFunctionResult(ctx context.Context, result FunctionResult) (Reply, error)
}

type ToolDispatcher interface {
	Dispatch(ctx context.Context, tool string, args map[string]any) ToolResult
}

// Notifier receives the debug notices emitted for every tool invocation.
type Notifier interface {
	Notify(notice ToolNotice)
}

type NotifierFunc func(notice ToolNotice)

func (f NotifierFunc) Notify(notice ToolNotice) {
	f(notice)
}

type noopNotifier struct{}

func (noopNotifier) Notify(ToolNotice) {}

// NoopNotifier discards every notice.
var NoopNotifier Notifier = noopNotifier{}
