package store

// Run is one `adder test` invocation.
type Run struct {
	ID        string `json:"id"`
	CreatedAt int64  `json:"created_at"` // unix seconds
	Passed    int    `json:"passed"`
	Failed    int    `json:"failed"`
	Total     int    `json:"total"`
}

// ScenarioRecord is the stored outcome of one scenario within a run.
type ScenarioRecord struct {
	RunID     string   `json:"run_id"`
	Position  int      `json:"position"`
	Name      string   `json:"name"`
	Pass      bool     `json:"pass"`
	Errors    []string `json:"errors,omitempty"`
	TraceHash string   `json:"trace_hash"`
}
