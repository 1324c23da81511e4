package contract

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleModel
}

type Message struct {
	Role  Role     `json:"role"`
	Parts []string `json:"parts"`
}

func NewMessage(role Role, text string) Message {
	return Message{Role: role, Parts: []string{text}}
}

// Text returns the single text payload of the message.
func (m Message) Text() string {
	if len(m.Parts) == 0 {
		return ""
	}
	return m.Parts[0]
}

type FunctionCall struct {
	ID   string         `json:"id,omitempty"`
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

type FunctionResult struct {
	CallID  string `json:"call_id,omitempty"`
	Name    string `json:"name"`
	Payload any    `json:"result"`
}

// Reply is either free text or a function call request, never both.
type Reply struct {
	Text string        `json:"text,omitempty"`
	Call *FunctionCall `json:"call,omitempty"`
}

func (r Reply) WantsTool() bool {
	return r.Call != nil
}

type ToolResult struct {
	Tool   string `json:"tool"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
	// Structured is set when Output is a JSON list of records rather than a
	// message.
	Structured bool `json:"structured,omitempty"`
}

// Content is the string forwarded back to the model. Errors are forwarded
// the same way as regular output.
func (r ToolResult) Content() string {
	if r.Error != "" {
		return r.Error
	}
	return r.Output
}

func (r ToolResult) Failed() bool {
	return r.Error != ""
}

// Records returns the record list when the result carries one.
func (r ToolResult) Records() (json.RawMessage, bool) {
	if r.Failed() || !r.Structured {
		return nil, false
	}
	return json.RawMessage(r.Output), true
}

type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
)

type ToolNotice struct {
	Tool  string         `json:"tool"`
	Args  map[string]any `json:"args,omitempty"`
	Level NoticeLevel    `json:"level"`
}

func (n ToolNotice) String() string {
	keys := make([]string, 0, len(n.Args))
	for k := range n.Args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, n.Args[k]))
	}
	return fmt.Sprintf("DEBUG: Tool Call: %s(%s)", n.Tool, strings.Join(parts, ", "))
}
