package tool

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	catalogx "github.com/tanpawarit/Chative-College-Advisor/agent/catalog"
	contractx "github.com/tanpawarit/Chative-College-Advisor/agent/contract"
)

type recordingNotifier struct {
	notices []contractx.ToolNotice
}

func (r *recordingNotifier) Notify(n contractx.ToolNotice) {
	r.notices = append(r.notices, n)
}

func newTestDispatcher(t *testing.T, notifier contractx.Notifier) *Dispatcher {
	t.Helper()
	d, err := NewDispatcher(catalogx.Default(), notifier)
	if err != nil {
		t.Fatalf("NewDispatcher() error = %v", err)
	}
	return d
}

func TestDeclarations(t *testing.T) {
	t.Parallel()

	infos := Declarations()
	if len(infos) != 3 {
		t.Fatalf("expected 3 tool infos, got %d", len(infos))
	}
	want := []string{ToolGetCollegeData, ToolSearchScholarships, ToolValidateInput}
	for i, name := range want {
		if infos[i].Name != name {
			t.Fatalf("tool %d = %s, want %s", i, infos[i].Name, name)
		}
		if infos[i].ParamsOneOf == nil {
			t.Fatalf("tool %s has no params", name)
		}
	}

	schemas, err := DeclarationSchemas()
	if err != nil {
		t.Fatalf("DeclarationSchemas() error = %v", err)
	}

	var college struct {
		Type       string         `json:"type"`
		Required   []string       `json:"required"`
		Properties map[string]any `json:"properties"`
	}
	if err := json.Unmarshal(schemas[ToolGetCollegeData].Parameters, &college); err != nil {
		t.Fatalf("college parameters are not JSON: %v", err)
	}
	if college.Type != "object" || len(college.Properties) != 6 {
		t.Fatalf("unexpected college schema: %#v", college)
	}
	if len(college.Required) != 1 || college.Required[0] != "major" {
		t.Fatalf("unexpected required list: %#v", college.Required)
	}

	var scholarship map[string]any
	if err := json.Unmarshal(schemas[ToolSearchScholarships].Parameters, &scholarship); err != nil {
		t.Fatalf("scholarship parameters are not JSON: %v", err)
	}
	if _, ok := scholarship["required"]; ok {
		t.Fatal("search_scholarships must not declare required fields")
	}
	if schemas[ToolValidateInput].Description == "" {
		t.Fatal("validate_input has no description")
	}
}

func TestDispatchUnknownToolReturnsErrorResult(t *testing.T) {
	t.Parallel()

	notifier := &recordingNotifier{}
	d := newTestDispatcher(t, notifier)

	out := d.Dispatch(context.Background(), "book_flight", map[string]any{"to": "Mumbai"})
	if !out.Failed() {
		t.Fatal("expected failed result")
	}
	if !strings.Contains(out.Content(), "book_flight") {
		t.Fatalf("error must name the tool, got %q", out.Content())
	}
	if len(notifier.notices) != 1 || notifier.notices[0].Tool != "book_flight" {
		t.Fatalf("unknown tools must still be announced, got %#v", notifier.notices)
	}
}

func TestDispatchGetCollegeData(t *testing.T) {
	t.Parallel()

	notifier := &recordingNotifier{}
	d := newTestDispatcher(t, notifier)

	// Numbers arrive as float64 after JSON decoding of model arguments.
	out := d.Dispatch(context.Background(), ToolGetCollegeData, map[string]any{
		"major":    "computer science",
		"max_rank": float64(5),
	})
	if out.Failed() {
		t.Fatalf("unexpected error: %s", out.Error)
	}

	var colleges []catalogx.College
	if err := json.Unmarshal([]byte(out.Content()), &colleges); err != nil {
		t.Fatalf("output is not a college list: %v", err)
	}
	if len(colleges) != 3 || colleges[0].Name != "Indian Institute of Technology Bombay" {
		t.Fatalf("unexpected colleges: %#v", colleges)
	}
	if _, ok := out.Records(); !ok {
		t.Fatal("college list must be marked structured")
	}

	if len(notifier.notices) != 1 {
		t.Fatalf("expected one notice, got %d", len(notifier.notices))
	}
	if notifier.notices[0].Tool != ToolGetCollegeData || notifier.notices[0].Level != contractx.NoticeInfo {
		t.Fatalf("unexpected notice: %#v", notifier.notices[0])
	}
}

func TestDispatchNoResultsIsPlainText(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(t, nil)
	out := d.Dispatch(context.Background(), ToolGetCollegeData, map[string]any{"major": "Philosophy"})
	if out.Failed() {
		t.Fatalf("unexpected error: %s", out.Error)
	}
	if out.Content() != NoCollegesMessage {
		t.Fatalf("unexpected output: %q", out.Content())
	}
	if out.Structured {
		t.Fatal("no-results message must not be marked structured")
	}
}

func TestNoResultsMessagesAreVerbatim(t *testing.T) {
	t.Parallel()

	const colleges = "No colleges found matching the criteria in the simulated database. Please try broadening your search or modifying criteria."
	const scholarships = "No scholarships found matching your criteria in the simulated database. Try broadening your search."
	if NoCollegesMessage != colleges {
		t.Fatalf("NoCollegesMessage = %q", NoCollegesMessage)
	}
	if NoScholarshipsMessage != scholarships {
		t.Fatalf("NoScholarshipsMessage = %q", NoScholarshipsMessage)
	}
}

func TestDispatchTreatsNullArgumentsAsAbsent(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(t, nil)

	out := d.Dispatch(context.Background(), ToolGetCollegeData, map[string]any{
		"major":               "Computer Science",
		"min_rank":            nil,
		"max_rank":            nil,
		"location_preference": nil,
		"academic_skills":     nil,
		"extra_curriculars":   nil,
	})
	if out.Failed() {
		t.Fatalf("unexpected error: %s", out.Error)
	}
	var colleges []catalogx.College
	if err := json.Unmarshal([]byte(out.Content()), &colleges); err != nil {
		t.Fatalf("output is not a college list: %v", err)
	}
	if len(colleges) != 3 {
		t.Fatalf("expected 3 colleges, got %d", len(colleges))
	}

	out = d.Dispatch(context.Background(), ToolSearchScholarships, map[string]any{
		"college_name": "Tech University",
		"major":        nil,
	})
	if out.Failed() {
		t.Fatalf("unexpected error: %s", out.Error)
	}

	// A required parameter sent as null is still missing.
	out = d.Dispatch(context.Background(), ToolGetCollegeData, map[string]any{"major": nil})
	if !out.Failed() {
		t.Fatalf("expected error result, got %q", out.Content())
	}
}

func TestDispatchRejectsInvalidArguments(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(t, nil)
	cases := map[string]map[string]any{
		"missing major":    {"max_rank": float64(5)},
		"fractional rank":  {"major": "History", "min_rank": 1.5},
		"skills not array": {"major": "History", "academic_skills": "writing"},
	}
	for name, args := range cases {
		out := d.Dispatch(context.Background(), ToolGetCollegeData, args)
		if !out.Failed() {
			t.Fatalf("%s: expected error result, got %q", name, out.Content())
		}
		if !strings.Contains(out.Error, ToolGetCollegeData) {
			t.Fatalf("%s: unexpected error: %s", name, out.Error)
		}
	}
}

func TestDispatchValidateInputPassesMessageThrough(t *testing.T) {
	t.Parallel()

	notifier := &recordingNotifier{}
	d := newTestDispatcher(t, notifier)

	const question = "Which major are you interested in?"
	out := d.Dispatch(context.Background(), ToolValidateInput, map[string]any{
		"required_info":   []any{"major"},
		"message_to_user": question,
	})
	if out.Failed() {
		t.Fatalf("unexpected error: %s", out.Error)
	}
	if out.Content() != question {
		t.Fatalf("Content() = %q, want %q", out.Content(), question)
	}
	if _, ok := out.Records(); ok {
		t.Fatal("clarifying question must not be marked structured")
	}
	if len(notifier.notices) != 1 || notifier.notices[0].Level != contractx.NoticeWarning {
		t.Fatalf("unexpected notices: %#v", notifier.notices)
	}
}

func TestDispatchValidateInputArrayLikeMessageStaysText(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(t, nil)
	out := d.Dispatch(context.Background(), ToolValidateInput, map[string]any{
		"required_info":   []any{"major", "location"},
		"message_to_user": `["major","location"]`,
	})
	if out.Failed() {
		t.Fatalf("unexpected error: %s", out.Error)
	}
	if out.Structured {
		t.Fatalf("clarifying question must stay text, got %#v", out)
	}
}

func TestDispatchSearchScholarshipsWithoutArgs(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(t, nil)
	out := d.Dispatch(context.Background(), ToolSearchScholarships, nil)
	if out.Failed() {
		t.Fatalf("unexpected error: %s", out.Error)
	}

	var scholarships []catalogx.Scholarship
	if err := json.Unmarshal([]byte(out.Content()), &scholarships); err != nil {
		t.Fatalf("output is not a scholarship list: %v", err)
	}
	if len(scholarships) != MaxScholarshipResults {
		t.Fatalf("expected %d scholarships, got %d", MaxScholarshipResults, len(scholarships))
	}
}
