package compliance

import "github.com/trusteehq/formscan/internal/forms"

// RiskType identifies one of the fixed regulatory checks.
type RiskType string

const (
	RiskTypeFinancialDisclosure RiskType = "missing_financial_disclosure"
	RiskTypeSignature           RiskType = "missing_signature"
	RiskTypeCreditorInformation RiskType = "missing_creditor_information"
	RiskTypeNoticeTiming        RiskType = "insufficient_notice_period"
	RiskTypeProcedural          RiskType = "incomplete_procedural_information"
)

// Compliance status values.
const (
	StatusCompliant    = "compliant"
	StatusNonCompliant = "non_compliant"
)

// ComplianceRisk is one structured finding that a document fails a
// statutory or regulatory expectation. Immutable once produced.
type ComplianceRisk struct {
	Type                 RiskType       `json:"type"`
	Description          string         `json:"description"`
	Severity             forms.Severity `json:"severity"`
	BIAReference         string         `json:"biaReference,omitempty"`
	BIADescription       string         `json:"biaDescription,omitempty"`
	DirectiveReference   string         `json:"directiveReference,omitempty"`
	DirectiveDescription string         `json:"directiveDescription,omitempty"`
	Impact               string         `json:"impact"`
	RequiredAction       string         `json:"requiredAction"`
	Deadline             string         `json:"deadline"`
}

// Report is the compliance analysis output for one document.
type Report struct {
	DocumentID       string           `json:"documentId"`
	FormNumber       string           `json:"formNumber,omitempty"`
	FormType         string           `json:"formType,omitempty"`
	ClientName       string           `json:"clientName,omitempty"`
	TrusteeName      string           `json:"trusteeName,omitempty"`
	DateSigned       string           `json:"dateSigned,omitempty"`
	ComplianceRisks  []ComplianceRisk `json:"complianceRisks"`
	ComplianceStatus string           `json:"complianceStatus"`
	Summary          string           `json:"summary"`
}

// AnalyzeRequest carries one document's extracted data into the analyzer.
// ExtractedInfo may nest the real payload under a "metadata" key; the
// analyzer unwraps it.
type AnalyzeRequest struct {
	DocumentID    string         `json:"documentId"`
	ExtractedInfo map[string]any `json:"extractedInfo"`
	FormNumber    string         `json:"formNumber,omitempty"`
	FormType      string         `json:"formType,omitempty"`
}
