package harness

// Trace event types.
const (
	EventInvocation = "invocation"
	EventCompletion = "completion"
)

// ActionAdd is the action name recorded on every invocation event.
const ActionAdd = "add"

// TraceEvent is one entry in a scenario trace.
type TraceEvent struct {
	Type   string         `json:"type"`
	Action string         `json:"action,omitempty"`
	Case   string         `json:"case,omitempty"`
	Args   map[string]any `json:"args,omitempty"`
	Result map[string]any `json:"result,omitempty"`
	Seq    int64          `json:"seq"`
}

// CaseResult records what a single case observed.
type CaseResult struct {
	Name     string `json:"name"`
	A        int32  `json:"a"`
	B        int32  `json:"b"`
	Want     int32  `json:"want"`
	Got      int32  `json:"got"`
	Overflow bool   `json:"overflow"`
	Pass     bool   `json:"pass"`
}

// Result is the outcome of running a scenario.
type Result struct {
	// Pass is true when every case matched and every assertion held.
	Pass bool `json:"pass"`

	// RunToken identifies the run in the trace snapshot.
	RunToken string `json:"run_token"`

	// Trace holds invocation and completion events in seq order.
	Trace []TraceEvent `json:"trace"`

	// Cases holds one entry per executed case, in scenario order.
	Cases []CaseResult `json:"cases"`

	// Errors holds case mismatches and assertion failures.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result with no events.
func NewResult(runToken string) *Result {
	return &Result{
		Pass:     true,
		RunToken: runToken,
		Trace:    []TraceEvent{},
		Cases:    []CaseResult{},
		Errors:   []string{},
	}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddInvocationTrace appends an invocation of add(a, b).
func (r *Result) AddInvocationTrace(caseName string, a, b int32, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:   EventInvocation,
		Action: ActionAdd,
		Case:   caseName,
		Args:   map[string]any{"a": a, "b": b},
		Seq:    seq,
	})
}

// AddCompletionTrace appends the completion carrying the observed sum.
func (r *Result) AddCompletionTrace(sum int32, overflow bool, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:   EventCompletion,
		Result: map[string]any{"sum": sum, "overflow": overflow},
		Seq:    seq,
	})
}

// Failed returns the number of cases that did not match.
func (r *Result) Failed() int {
	n := 0
	for _, c := range r.Cases {
		if !c.Pass {
			n++
		}
	}
	return n
}
