package models

// Step is a single machine-executable action planned by the LLM.
type Step struct {
	Function      string                 `json:"function"`
	Parameters    map[string]interface{} `json:"parameters"`
	Justification string                 `json:"human_readable_justification"`
}

// Plan is one round of instructions returned by the planner. Done is
// non-empty once the model considers the objective met; it carries the
// completion message shown to the user.
type Plan struct {
	Steps []Step `json:"steps"`
	Done  string `json:"done"`
}
