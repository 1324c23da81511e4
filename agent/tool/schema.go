package tool

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/xeipuuv/gojsonschema"
)

// ToolSchema is the printable form of a tool declaration.
type ToolSchema struct {
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

// parameterSchema renders the tool's parameters as the JSON schema the model
// receives.
func parameterSchema(info *schema.ToolInfo) (json.RawMessage, error) {
	sc, err := info.ParamsOneOf.ToOpenAPIV3()
	if err != nil {
		return nil, fmt.Errorf("convert %s parameters: %w", info.Name, err)
	}
	if sc == nil {
		return json.RawMessage(`{"type":"object"}`), nil
	}
	raw, err := json.Marshal(sc)
	if err != nil {
		return nil, fmt.Errorf("encode %s parameters: %w", info.Name, err)
	}
	return raw, nil
}

func compileSchema(info *schema.ToolInfo) (*gojsonschema.Schema, error) {
	raw, err := parameterSchema(info)
	if err != nil {
		return nil, err
	}
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("compile argument schema: %w", err)
	}
	return compiled, nil
}

// withoutNulls drops keys the model sent as JSON null so optional
// parameters read as absent.
func withoutNulls(args map[string]any) map[string]any {
	out := make(map[string]any, len(args))
	for k, v := range args {
		if v == nil {
			continue
		}
		out[k] = v
	}
	return out
}

func validateArgs(compiled *gojsonschema.Schema, args map[string]any) error {
	result, err := compiled.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return fmt.Errorf("validate arguments: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
