package model

// ValidationIssue is a single schema violation found in a manifest.
type ValidationIssue struct {
	Path    string `json:"path"`
	Keyword string `json:"keyword"`
	Message string `json:"message"`
}

// ValidationResult is the outcome of checking a manifest document.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Issues []ValidationIssue `json:"issues,omitempty"`
}
