package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
	"github.com/xeipuuv/gojsonschema"

	catalogx "github.com/tanpawarit/Chative-College-Advisor/agent/catalog"
	contractx "github.com/tanpawarit/Chative-College-Advisor/agent/contract"
)

type declaration struct {
	name   string
	desc   string
	params map[string]*schema.ParameterInfo
}

var declarations = []declaration{
	{
		name: ToolGetCollegeData,
		desc: "Retrieves data for colleges based on criteria like major, rank, location, and specific interests. Use this to find colleges.",
		params: map[string]*schema.ParameterInfo{
			"major": {
				Type:     schema.String,
				Desc:     "Desired field of study or major (e.g., 'Computer Science', 'Business', 'Arts').",
				Required: true,
			},
			"min_rank": {
				Type: schema.Integer,
				Desc: "Optional: Minimum college rank (e.g., 1 for top 10). Smaller number means higher rank.",
			},
			"max_rank": {
				Type: schema.Integer,
				Desc: "Optional: Maximum college rank (e.g., 50 for top 50).",
			},
			"location_preference": {
				Type: schema.String,
				Desc: "Optional: Preferred geographic location (e.g., 'California', 'India', 'urban').",
			},
			"academic_skills": {
				Type:     schema.Array,
				ElemInfo: &schema.ParameterInfo{Type: schema.String},
				Desc:     "Optional: User's academic strengths or skills (e.g., 'coding', 'writing', 'math').",
			},
			"extra_curriculars": {
				Type:     schema.Array,
				ElemInfo: &schema.ParameterInfo{Type: schema.String},
				Desc:     "Optional: User's extra-curricular activities or interests (e.g., 'sports', 'music', 'debate'). Informational only.",
			},
		},
	},
	{
		name: ToolSearchScholarships,
		desc: "Searches for scholarship opportunities based on college, major, or academic profile. Use this after college recommendations to find funding.",
		params: map[string]*schema.ParameterInfo{
			"college_name": {
				Type: schema.String,
				Desc: "Optional: Name of a specific college to search scholarships for.",
			},
			"major": {
				Type: schema.String,
				Desc: "Optional: Field of study relevant to the scholarship.",
			},
			"academic_profile": {
				Type: schema.String,
				Desc: "Optional: User's academic profile (e.g., 'high GPA', 'research experience', 'leadership').",
			},
			"skills": {
				Type:     schema.Array,
				ElemInfo: &schema.ParameterInfo{Type: schema.String},
				Desc:     "Optional: Specific skills that might qualify for scholarships (e.g., 'robotics', 'fine arts').",
			},
		},
	},
	{
		name: ToolValidateInput,
		desc: "Asks the user for essential information like the desired major before attempting to recommend colleges. Use this when the initial query is too vague.",
		params: map[string]*schema.ParameterInfo{
			"required_info": {
				Type:     schema.Array,
				ElemInfo: &schema.ParameterInfo{Type: schema.String},
				Desc:     "List of information required from the user (e.g., 'major', 'skills', 'location').",
				Required: true,
			},
			"message_to_user": {
				Type:     schema.String,
				Desc:     "A polite question asking the user for the missing information.",
				Required: true,
			},
		},
	},
}

// Declarations returns the tool declarations bound to the chat model.
func Declarations() []*schema.ToolInfo {
	infos := make([]*schema.ToolInfo, 0, len(declarations))
	for _, d := range declarations {
		infos = append(infos, &schema.ToolInfo{
			Name:        d.name,
			Desc:        d.desc,
			ParamsOneOf: schema.NewParamsOneOfByParams(d.params),
		})
	}
	return infos
}

// DeclarationSchemas returns the declaration of every tool keyed by name.
func DeclarationSchemas() (map[string]ToolSchema, error) {
	infos := Declarations()
	out := make(map[string]ToolSchema, len(infos))
	for _, info := range infos {
		params, err := parameterSchema(info)
		if err != nil {
			return nil, err
		}
		out[info.Name] = ToolSchema{Description: info.Desc, Parameters: params}
	}
	return out, nil
}

// output is a handler's payload. Structured marks a JSON record list.
type output struct {
	text       string
	structured bool
}

type handler func(ctx context.Context, args map[string]any) (output, error)

// Dispatcher maps a tool name and argument bag to one of the query functions.
// Every failure is reported through ToolResult.Error so it can be forwarded
// to the model.
type Dispatcher struct {
	store    *catalogx.Store
	notifier contractx.Notifier
	handlers map[string]handler
	schemas  map[string]*gojsonschema.Schema
}

var _ contractx.ToolDispatcher = (*Dispatcher)(nil)

func NewDispatcher(store *catalogx.Store, notifier contractx.Notifier) (*Dispatcher, error) {
	if store == nil {
		store = catalogx.Default()
	}
	if notifier == nil {
		notifier = contractx.NoopNotifier
	}

	d := &Dispatcher{
		store:    store,
		notifier: notifier,
		schemas:  make(map[string]*gojsonschema.Schema, len(declarations)),
	}
	d.handlers = map[string]handler{
		ToolGetCollegeData:     d.getCollegeData,
		ToolSearchScholarships: d.searchScholarships,
		ToolValidateInput:      d.validateInput,
	}

	for _, info := range Declarations() {
		compiled, err := compileSchema(info)
		if err != nil {
			return nil, fmt.Errorf("%w: tool=%s: %v", contractx.ErrValidation, info.Name, err)
		}
		d.schemas[info.Name] = compiled
	}
	return d, nil
}

func (d *Dispatcher) Dispatch(ctx context.Context, tool string, args map[string]any) contractx.ToolResult {
	tool = strings.TrimSpace(tool)
	if args == nil {
		args = map[string]any{}
	}

	level := contractx.NoticeInfo
	if tool == ToolValidateInput {
		level = contractx.NoticeWarning
	}
	d.notifier.Notify(contractx.ToolNotice{Tool: tool, Args: args, Level: level})

	h, ok := d.handlers[tool]
	if !ok {
		log.Warn().Str("tool", tool).Msg("model requested unknown tool")
		return contractx.ToolResult{
			Tool:  tool,
			Error: fmt.Sprintf("Error: Tool '%s' not found.", tool),
		}
	}
	log.Debug().Str("tool", tool).Interface("args", args).Msg("dispatch tool")

	args = withoutNulls(args)
	if err := validateArgs(d.schemas[tool], args); err != nil {
		return contractx.ToolResult{
			Tool:  tool,
			Error: fmt.Sprintf("Error: invalid arguments for tool '%s': %v", tool, err),
		}
	}

	out, err := h(ctx, args)
	if err != nil {
		return contractx.ToolResult{
			Tool:  tool,
			Error: fmt.Sprintf("Error: tool '%s' failed: %v", tool, err),
		}
	}
	return contractx.ToolResult{Tool: tool, Output: out.text, Structured: out.structured}
}

func (d *Dispatcher) getCollegeData(_ context.Context, args map[string]any) (output, error) {
	var criteria CollegeCriteria
	if err := decodeArgs(args, &criteria); err != nil {
		return output{}, err
	}
	return encodeResult(FindColleges(d.store, criteria))
}

func (d *Dispatcher) searchScholarships(_ context.Context, args map[string]any) (output, error) {
	var criteria ScholarshipCriteria
	if err := decodeArgs(args, &criteria); err != nil {
		return output{}, err
	}
	return encodeResult(FindScholarships(d.store, criteria))
}

func (d *Dispatcher) validateInput(_ context.Context, args map[string]any) (output, error) {
	var req ClarifyRequest
	if err := decodeArgs(args, &req); err != nil {
		return output{}, err
	}
	log.Debug().Strs("required_info", req.RequiredInfo).Msg("model asked for missing info")
	return output{text: RequestMissingInfo(req)}, nil
}

func encodeResult[T any](r QueryResult[T]) (output, error) {
	text, err := r.Encode()
	if err != nil {
		return output{}, err
	}
	return output{text: text, structured: r.Found()}, nil
}

func decodeArgs(args map[string]any, out any) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("marshal args: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode args: %w", err)
	}
	return nil
}
