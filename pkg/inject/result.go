package inject

// Reason explains why a target was ignored or failed.
type Reason string

const (
	ReasonReadDenied       Reason = "read permission denied"
	ReasonWriteDenied      Reason = "write permission denied"
	ReasonUnknownExtension Reason = "unknown file extension"
	ReasonNoHeader         Reason = "no matching copyright header"
	ReasonWriteFailure     Reason = "write failure"
	ReasonHeaderPresent    Reason = "header already present"
)

// Outcome is a target that did not succeed.
type Outcome struct {
	Path   string `json:"path" yaml:"path" toml:"path" handlebars:"path"`
	Reason Reason `json:"reason" yaml:"reason" toml:"reason" handlebars:"reason"`
}

// Result holds the buckets of one run. Every target counted in Total lands
// in exactly one of Succeeded, Ignored or Failed.
type Result struct {
	TraceID    string
	DryRun     bool
	Templates  []string
	Extensions []string
	Total      int
	Succeeded  []string
	Ignored    []Outcome
	Failed     []Outcome

	// Err is set when the run stopped on an I/O error after validation.
	Err error
}

// Success reports whether no target failed and the run completed.
func (r *Result) Success() bool {
	return r.Err == nil && r.Total == len(r.Succeeded)+len(r.Ignored)
}

func (r *Result) succeed(path string) { r.Succeeded = append(r.Succeeded, path) }

func (r *Result) ignore(path string, reason Reason) {
	r.Ignored = append(r.Ignored, Outcome{Path: path, Reason: reason})
}

func (r *Result) fail(path string, reason Reason) {
	r.Failed = append(r.Failed, Outcome{Path: path, Reason: reason})
}
