package mapping

import "github.com/trusteehq/formscan/internal/forms"

// ValidationIssue is one descriptive rule failure, immutable once produced.
type ValidationIssue struct {
	Field    string         `json:"field"`
	Message  string         `json:"message"`
	Severity forms.Severity `json:"severity"`
	Rule     string         `json:"rule,omitempty"`
}

// MappingResult reconciles extracted data against a form definition. Every
// declared field whose condition holds appears as a key in MappedFields,
// possibly with an empty value, so consumers can tell "known-absent" from
// "never-asked". All rule failures land in the single ValidationIssues list.
type MappingResult struct {
	FormNumber            string            `json:"formNumber,omitempty"`
	MappedFields          map[string]string `json:"mappedFields"`
	MissingRequiredFields []string          `json:"missingRequiredFields"`
	ValidationIssues      []ValidationIssue `json:"validationIssues"`
}

// ValidationResult is the full-form validation contract: rule failures are
// split into errors (high or critical severity) and warnings (everything
// else). It is a distinct entry point from MapFormFields and both are
// preserved.
type ValidationResult struct {
	FormNumber            string            `json:"formNumber,omitempty"`
	Valid                 bool              `json:"valid"`
	MappedFields          map[string]string `json:"mappedFields"`
	MissingRequiredFields []string          `json:"missingRequiredFields"`
	Errors                []ValidationIssue `json:"errors"`
	Warnings              []ValidationIssue `json:"warnings"`
}
