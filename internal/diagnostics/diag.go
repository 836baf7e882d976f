package diagnostics

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

// Codes pushed on the diagnostics stream.
const (
	PatternRunning = "PATTERN.RUNNING"
	PatternDone    = "PATTERN.DONE"
	PatternUnknown = "PATTERN.UNKNOWN"
	ExportDone     = "EXPORT.DONE"
	ExportFailed   = "EXPORT.FAILED"
	DriverFailed   = "DRIVER.WRITE_FAILED"
)

type Diagnostic struct {
	Severity       Severity       `json:"severity"`
	Code           string         `json:"code"`
	Summary        string         `json:"summary"`
	Detail         string         `json:"detail,omitempty"`
	LikelyCauses   []string       `json:"likely_causes,omitempty"`
	SuggestedFixes []string       `json:"suggested_fixes,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
}

type hint struct {
	causes []string
	fixes  []string
}

var hints = map[string]hint{
	ExportFailed: {
		causes: []string{"destination directory does not exist", "destination is not writable", "grid has no cells"},
		fixes:  []string{"choose an existing, writable export path", "check module count and content"},
	},
	DriverFailed: {
		causes: []string{"sink output closed", "display disconnected"},
		fixes:  []string{"restart the sink", "check the display connection"},
	},
	PatternUnknown: {
		fixes: []string{"use cell_sweep, module_sweep, all_on or checker"},
	},
}

// New builds a diagnostic; known codes get their causes and fixes attached.
func New(sev Severity, code, summary string) Diagnostic {
	d := Diagnostic{Severity: sev, Code: code, Summary: summary}
	if h, ok := hints[code]; ok {
		d.LikelyCauses = append([]string(nil), h.causes...)
		d.SuggestedFixes = append([]string(nil), h.fixes...)
	}
	return d
}

// FromError builds an error diagnostic carrying err as detail.
func FromError(code, summary string, err error) Diagnostic {
	d := New(Err, code, summary)
	if err != nil {
		d.Detail = err.Error()
	}
	return d
}

// With returns d with one more evidence entry.
func (d Diagnostic) With(key string, v any) Diagnostic {
	ev := make(map[string]any, len(d.Evidence)+1)
	for k, x := range d.Evidence {
		ev[k] = x
	}
	ev[key] = v
	d.Evidence = ev
	return d
}
