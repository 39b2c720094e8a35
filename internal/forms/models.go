package forms

// ConditionOperator controls how a FieldCondition is evaluated against the
// extracted dataset.
type ConditionOperator string

const (
	// OperatorEquals includes the field only when the referenced value is an
	// exact match for Condition.Value. An absent referenced field therefore
	// excludes the conditional field.
	OperatorEquals ConditionOperator = "equals"

	// OperatorNotEquals excludes the field when the referenced value equals
	// Condition.Value. An absent referenced field therefore includes the
	// conditional field. This is not the exact inverse of OperatorEquals on
	// purpose; downstream consumers rely on the observed behavior.
	OperatorNotEquals ConditionOperator = "notEquals"
)

// Severity grades a validation rule or compliance finding.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// FieldCondition gates the inclusion of a field on the value of another field
// in the same definition.
type FieldCondition struct {
	Field    string            `json:"field"`
	Value    string            `json:"value"`
	Operator ConditionOperator `json:"operator,omitempty"`
}

// FieldMetadata carries the legal context attached to a field.
type FieldMetadata struct {
	LegalSchema    string   `json:"legal_schema,omitempty"`
	RiskIndicators []string `json:"risk_indicators,omitempty"`
}

// FieldRule is a per-field validation predicate. Check returns true when the
// value is acceptable; it receives the full dataset for cross-field rules.
type FieldRule struct {
	Name     string
	Severity Severity
	Message  string
	Check    func(value string, data map[string]string) bool
}

// FormRule is a form-level validation predicate evaluated after all field
// rules, against the complete dataset.
type FormRule struct {
	Name     string
	Severity Severity
	Message  string
	Check    func(data map[string]string) bool
}

// FormField describes one declared field of a form.
type FormField struct {
	Name      string          `json:"name"`
	Label     string          `json:"label"`
	Required  bool            `json:"required"`
	Rules     []FieldRule     `json:"-"`
	Condition *FieldCondition `json:"condition,omitempty"`
	Metadata  *FieldMetadata  `json:"metadata,omitempty"`
}

// FormSection groups fields under a named heading, in declaration order.
type FormSection struct {
	Name   string      `json:"name"`
	Fields []FormField `json:"fields"`
}

// FormDefinition is the static, declarative description of one prescribed
// form. Definitions are built once at startup and never mutated.
type FormDefinition struct {
	FormNumber string        `json:"form_number"`
	Title      string        `json:"title"`
	Sections   []FormSection `json:"sections"`
	FormRules  []FormRule    `json:"-"`
}

// Fields returns the definition's fields flattened across all sections in
// declaration order.
func (d *FormDefinition) Fields() []FormField {
	var fields []FormField
	for _, section := range d.Sections {
		fields = append(fields, section.Fields...)
	}
	return fields
}

// FieldCount returns the number of declared fields across all sections.
func (d *FormDefinition) FieldCount() int {
	count := 0
	for _, section := range d.Sections {
		count += len(section.Fields)
	}
	return count
}
