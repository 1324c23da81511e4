package advisornode

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	contractx "github.com/tanpawarit/Chative-College-Advisor/agent/contract"
	statex "github.com/tanpawarit/Chative-College-Advisor/agent/state"
)

type fakeSession struct {
	textReplies   []contractx.Reply
	resultReplies []contractx.Reply
	err           error
	texts         []string
	results       []contractx.FunctionResult
}

func (f *fakeSession) SendText(ctx context.Context, text string) (contractx.Reply, error) {
	f.texts = append(f.texts, text)
	if f.err != nil {
		return contractx.Reply{}, f.err
	}
	r := f.textReplies[0]
	f.textReplies = f.textReplies[1:]
	return r, nil
}

func (f *fakeSession) SendFunctionResult(ctx context.Context, result contractx.FunctionResult) (contractx.Reply, error) {
	f.results = append(f.results, result)
	if f.err != nil {
		return contractx.Reply{}, f.err
	}
	r := f.resultReplies[0]
	f.resultReplies = f.resultReplies[1:]
	return r, nil
}

type fakeDispatcher struct {
	output     string
	structured bool
	calls      []string
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, tool string, args map[string]any) contractx.ToolResult {
	f.calls = append(f.calls, tool)
	return contractx.ToolResult{Tool: tool, Output: f.output, Structured: f.structured}
}

func fixedNow() time.Time {
	return time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
}

func toolReply(name string) contractx.Reply {
	return contractx.Reply{Call: &contractx.FunctionCall{ID: "call_1", Name: name, Args: map[string]any{"major": "History"}}}
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	conv := statex.NewConversation(fixedNow())
	sess := &fakeSession{}

	if _, err := ValidateRequest(GraphInput{Conversation: conv, Session: sess, Text: "   "}, fixedNow); !errors.Is(err, ErrInvalidMessage) {
		t.Fatalf("ValidateRequest() error = %v, want ErrInvalidMessage", err)
	}
	if _, err := ValidateRequest(GraphInput{Session: sess, Text: "hi"}, fixedNow); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("ValidateRequest() error = %v, want ErrValidation", err)
	}

	st, err := ValidateRequest(GraphInput{Conversation: conv, Session: sess, Text: "  history  "}, fixedNow)
	if err != nil {
		t.Fatalf("ValidateRequest() error = %v", err)
	}
	if st.Text != "history" || !st.Now.Equal(fixedNow()) {
		t.Fatalf("unexpected state: %#v", st)
	}
	if conv.Len() != 0 {
		t.Fatal("validation must not touch the conversation")
	}
}

func TestDispatchToolSingleHop(t *testing.T) {
	t.Parallel()

	sess := &fakeSession{resultReplies: []contractx.Reply{{Text: "University of Delhi fits."}}}
	tools := &fakeDispatcher{output: `[{"name":"University of Delhi"}]`, structured: true}
	st := &GraphState{
		Conversation: statex.NewConversation(fixedNow()),
		Session:      sess,
		Reply:        toolReply("get_college_data"),
	}

	out, err := DispatchTool(context.Background(), st, tools, 1)
	if err != nil {
		t.Fatalf("DispatchTool() error = %v", err)
	}
	if out.Hops != 1 || len(tools.calls) != 1 {
		t.Fatalf("expected one dispatch, got hops=%d calls=%d", out.Hops, len(tools.calls))
	}
	if out.Reply.Text != "University of Delhi fits." {
		t.Fatalf("unexpected reply: %#v", out.Reply)
	}

	res := sess.results[0]
	if res.CallID != "call_1" || res.Name != "get_college_data" {
		t.Fatalf("unexpected function result: %#v", res)
	}
	if _, ok := res.Payload.(json.RawMessage); !ok {
		t.Fatalf("record lists must be forwarded as JSON, got %T", res.Payload)
	}
}

func TestDispatchToolKeepsMessagesAsText(t *testing.T) {
	t.Parallel()

	// A clarifying question that happens to look like a JSON array.
	const question = `["major","location"]`
	sess := &fakeSession{resultReplies: []contractx.Reply{{Text: "Which major?"}}}
	tools := &fakeDispatcher{output: question}
	st := &GraphState{
		Conversation: statex.NewConversation(fixedNow()),
		Session:      sess,
		Reply:        toolReply("validate_input"),
	}

	if _, err := DispatchTool(context.Background(), st, tools, 1); err != nil {
		t.Fatalf("DispatchTool() error = %v", err)
	}
	p, ok := sess.results[0].Payload.(string)
	if !ok || p != question {
		t.Fatalf("message payload must stay text, got %T %#v", sess.results[0].Payload, sess.results[0].Payload)
	}
}

func TestDispatchToolHopLimit(t *testing.T) {
	t.Parallel()

	sess := &fakeSession{resultReplies: []contractx.Reply{toolReply("search_scholarships")}}
	tools := &fakeDispatcher{output: "ok"}
	st := &GraphState{
		Conversation: statex.NewConversation(fixedNow()),
		Session:      sess,
		Reply:        toolReply("get_college_data"),
	}

	_, err := DispatchTool(context.Background(), st, tools, 1)
	if !errors.Is(err, contractx.ErrToolHopLimit) {
		t.Fatalf("DispatchTool() error = %v, want ErrToolHopLimit", err)
	}
	if len(tools.calls) != 1 {
		t.Fatalf("expected exactly one dispatch, got %d", len(tools.calls))
	}
}

func TestDispatchToolChainsWithinBudget(t *testing.T) {
	t.Parallel()

	sess := &fakeSession{resultReplies: []contractx.Reply{
		toolReply("search_scholarships"),
		{Text: "Done."},
	}}
	tools := &fakeDispatcher{output: "No scholarships found"}
	st := &GraphState{
		Conversation: statex.NewConversation(fixedNow()),
		Session:      sess,
		Reply:        toolReply("get_college_data"),
	}

	out, err := DispatchTool(context.Background(), st, tools, 2)
	if err != nil {
		t.Fatalf("DispatchTool() error = %v", err)
	}
	if out.Hops != 2 || out.Reply.Text != "Done." {
		t.Fatalf("unexpected state: hops=%d reply=%#v", out.Hops, out.Reply)
	}
	if p, ok := sess.results[1].Payload.(string); !ok || p != "No scholarships found" {
		t.Fatalf("messages must be forwarded as text, got %#v", sess.results[1].Payload)
	}
}

func TestSendUserPropagatesGatewayError(t *testing.T) {
	t.Parallel()

	boom := errors.New("network down")
	st := &GraphState{Session: &fakeSession{err: boom}, Text: "hi"}
	if _, err := SendUser(context.Background(), st); !errors.Is(err, boom) {
		t.Fatalf("SendUser() error = %v, want %v", err, boom)
	}
}

func TestFinalizeReply(t *testing.T) {
	t.Parallel()

	conv := statex.NewConversation(fixedNow())
	st := &GraphState{Conversation: conv, Reply: contractx.Reply{Text: "  Try Tech University.  "}, Now: fixedNow()}

	out, err := FinalizeReply(st)
	if err != nil {
		t.Fatalf("FinalizeReply() error = %v", err)
	}
	if out.Reply.Role != contractx.RoleModel || out.Reply.Text() != "Try Tech University." {
		t.Fatalf("unexpected reply: %#v", out.Reply)
	}
	if conv.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", conv.Len())
	}

	st.Reply = contractx.Reply{}
	if _, err := FinalizeReply(st); !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("FinalizeReply() error = %v, want ErrSchemaViolation", err)
	}
}
