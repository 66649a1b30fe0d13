package api

// RunRequest is the body of POST /api/scripts/run.
type RunRequest struct {
	Script  string   `json:"script"`
	Args    []string `json:"args,omitempty"`
	OneTime bool     `json:"oneTime,omitempty"`
}
