package extraction

import "regexp"

// RiskLevel is the coarse extraction-quality grade attached to a result.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// Result is the flat candidate-field map produced from one document's raw
// text. A key is present only when a pattern matched; absence means the
// field was not found, never an error.
type Result struct {
	FormType   string            `json:"formType,omitempty"`
	FormNumber string            `json:"formNumber,omitempty"`
	Fields     map[string]string `json:"fields"`
	RiskLevel  RiskLevel         `json:"riskLevel,omitempty"`
}

// NormalizeFunc post-processes a raw capture before it is stored.
type NormalizeFunc func(string) string

// FieldPattern binds one output field to an ordered list of candidate
// patterns. The first pattern whose first capture group is non-empty wins;
// order is a priority list and must be preserved.
type FieldPattern struct {
	Field     string
	Patterns  []*regexp.Regexp
	Normalize NormalizeFunc
}

// formTypePattern routes document text to a form-specific extractor. The
// detection list is ordered; the first matching pattern wins.
type formTypePattern struct {
	Pattern    *regexp.Regexp
	FormType   string
	FormNumber string
}

// Form type tags produced by detection.
const (
	FormTypeProofOfClaim     = "form31"
	FormTypeConsumerProposal = "form47"
	FormTypeGeneric          = "generic"
)
