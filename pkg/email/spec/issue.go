package spec

// Severity classifies a validation issue.
type Severity string

const (
	// SeverityError blocks acceptance of a candidate document
	SeverityError Severity = "error"
	// SeverityWarning is surfaced to the caller but never blocks
	SeverityWarning Severity = "warning"
)

// Issue is one classified validation finding. The same shape is produced by
// schema checks, the structural validator and the renderer.
type Issue struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Path     string   `json:"path,omitempty"`
}

// NewError creates an error-severity issue
func NewError(code, message, path string) Issue {
	return Issue{Severity: SeverityError, Code: code, Message: message, Path: path}
}

// NewWarning creates a warning-severity issue
func NewWarning(code, message, path string) Issue {
	return Issue{Severity: SeverityWarning, Code: code, Message: message, Path: path}
}

// HasErrors reports whether any issue has error severity
func HasErrors(issues []Issue) bool {
	for _, is := range issues {
		if is.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only the error-severity issues
func Errors(issues []Issue) []Issue {
	var out []Issue
	for _, is := range issues {
		if is.Severity == SeverityError {
			out = append(out, is)
		}
	}
	return out
}

// Warnings returns only the warning-severity issues
func Warnings(issues []Issue) []Issue {
	var out []Issue
	for _, is := range issues {
		if is.Severity == SeverityWarning {
			out = append(out, is)
		}
	}
	return out
}
