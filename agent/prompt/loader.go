package prompt

import (
	_ "embed"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Chative-College-Advisor/agent/contract"
)

//go:embed template/advisor.txt
var advisorRaw string

// PromptSet holds loaded prompt content.
type PromptSet struct {
	Advisor string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Advisor: strings.TrimSpace(advisorRaw),
	}
}

// Validate rejects prompts the gateway cannot render. System prompts go
// through FString formatting, so braces are not allowed.
func (p PromptSet) Validate() error {
	if p.Advisor == "" {
		return fmt.Errorf("%w: advisor", contractx.ErrPromptMissing)
	}
	if strings.ContainsAny(p.Advisor, "{}") {
		return fmt.Errorf("%w: advisor prompt must not contain braces", contractx.ErrValidation)
	}
	return nil
}
