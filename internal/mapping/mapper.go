// Package mapping reconciles extracted document data against declarative
// form definitions, computing required-field coverage and rule violations.
package mapping

import (
	"fmt"

	"github.com/trusteehq/formscan/internal/forms"
)

// Mapper resolves form types through a registry and maps extracted data
// onto form definitions. Stateless apart from the read-only registry.
type Mapper struct {
	registry *forms.Registry
}

// NewMapper creates a mapper over the built-in form registry.
func NewMapper() *Mapper {
	return NewMapperWithRegistry(forms.NewRegistry())
}

// NewMapperWithRegistry creates a mapper over a caller-supplied registry.
func NewMapperWithRegistry(registry *forms.Registry) *Mapper {
	return &Mapper{registry: registry}
}

// unsupportedIssue is the single critical issue reported for unknown form
// types; the lookup failure is a result, not an error.
func unsupportedIssue() ValidationIssue {
	return ValidationIssue{
		Field:    "formType",
		Message:  "Unsupported form type",
		Severity: forms.SeverityCritical,
	}
}

// MapFormFields maps extracted data onto the named form's declared fields.
// All rule failures are filed into the single ValidationIssues list
// regardless of severity.
func (m *Mapper) MapFormFields(formType string, data map[string]string) MappingResult {
	def, ok := m.registry.Lookup(formType)
	if !ok {
		return MappingResult{
			MappedFields:          map[string]string{},
			MissingRequiredFields: []string{},
			ValidationIssues:      []ValidationIssue{unsupportedIssue()},
		}
	}

	pass := m.runMappingPass(def, data)

	return MappingResult{
		FormNumber:            def.FormNumber,
		MappedFields:          pass.mapped,
		MissingRequiredFields: pass.missing,
		ValidationIssues:      pass.issues,
	}
}

// ValidateForm maps the data like MapFormFields and then splits rule
// failures by severity: high and critical failures are errors, the rest are
// warnings.
func (m *Mapper) ValidateForm(formType string, data map[string]string) ValidationResult {
	def, ok := m.registry.Lookup(formType)
	if !ok {
		return ValidationResult{
			Valid:                 false,
			MappedFields:          map[string]string{},
			MissingRequiredFields: []string{},
			Errors:                []ValidationIssue{unsupportedIssue()},
			Warnings:              []ValidationIssue{},
		}
	}

	pass := m.runMappingPass(def, data)

	errors := []ValidationIssue{}
	warnings := []ValidationIssue{}
	for _, issue := range pass.issues {
		if issue.Severity == forms.SeverityHigh || issue.Severity == forms.SeverityCritical {
			errors = append(errors, issue)
		} else {
			warnings = append(warnings, issue)
		}
	}

	return ValidationResult{
		FormNumber:            def.FormNumber,
		Valid:                 len(errors) == 0,
		MappedFields:          pass.mapped,
		MissingRequiredFields: pass.missing,
		Errors:                errors,
		Warnings:              warnings,
	}
}

type mappingPass struct {
	mapped  map[string]string
	missing []string
	issues  []ValidationIssue
}

// runMappingPass walks the definition's fields in declaration order, then
// runs form-level rules last. Issues keep that order; there is no sorting by
// severity.
func (m *Mapper) runMappingPass(def *forms.FormDefinition, data map[string]string) mappingPass {
	pass := mappingPass{
		mapped:  make(map[string]string),
		missing: []string{},
		issues:  []ValidationIssue{},
	}

	for _, field := range def.Fields() {
		if field.Condition != nil && !conditionIncludes(field.Condition, data) {
			// Skipped entirely: not mapped, not validated, never missing.
			continue
		}

		value := data[field.Name]
		pass.mapped[field.Name] = value

		if field.Required && value == "" {
			pass.missing = append(pass.missing, field.Name)
			pass.issues = append(pass.issues, ValidationIssue{
				Field:    field.Name,
				Message:  fmt.Sprintf("Required field %q is missing", field.Label),
				Severity: forms.SeverityCritical,
			})
		}

		for _, rule := range field.Rules {
			if rule.Check == nil || rule.Check(value, data) {
				continue
			}
			pass.issues = append(pass.issues, ValidationIssue{
				Field:    field.Name,
				Message:  fmt.Sprintf("%s: %s", field.Label, rule.Message),
				Severity: rule.Severity,
				Rule:     rule.Name,
			})
		}
	}

	for _, rule := range def.FormRules {
		if rule.Check == nil || rule.Check(data) {
			continue
		}
		pass.issues = append(pass.issues, ValidationIssue{
			Field:    "form",
			Message:  rule.Message,
			Severity: rule.Severity,
			Rule:     rule.Name,
		})
	}

	return pass
}

// conditionIncludes decides whether a conditional field participates in the
// pass. The default operator includes the field only when the referenced
// value equals Condition.Value; "notEquals" excludes the field when the
// referenced value equals Condition.Value. The two operators behave
// differently for absent referenced fields and this matches the behavior
// consumers already depend on.
func conditionIncludes(c *forms.FieldCondition, data map[string]string) bool {
	value := data[c.Field]
	if c.Operator == forms.OperatorNotEquals {
		return value != c.Value
	}
	return value == c.Value
}
