package tool

const ToolValidateInput = "validate_input"

type ClarifyRequest struct {
	RequiredInfo  []string `json:"required_info"`
	MessageToUser string   `json:"message_to_user"`
}

// RequestMissingInfo hands the model's clarifying question back unchanged so
// it can ask the user instead of guessing.
func RequestMissingInfo(req ClarifyRequest) string {
	return req.MessageToUser
}
