// Package compliance applies a fixed battery of Bankruptcy and Insolvency
// Act checks to extracted form data and produces a compliance risk report
// with legal citations.
package compliance

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/trusteehq/formscan/internal/forms"
)

// noticeMinimum is the smallest acceptable interval, in milliseconds,
// between the document date and the meeting of creditors.
const noticeMinimumMillis = 5 * 24 * 60 * 60 * 1000

// ResultStore persists one compliance result per document, idempotently by
// document ID.
type ResultStore interface {
	UpsertComplianceResult(ctx context.Context, documentID, status, details string) error
}

// Analyzer runs the compliance battery. Unlike extraction, analysis is
// fail-closed: a missing document ID or a persistence failure aborts the
// request and nothing partial is stored.
type Analyzer struct {
	store  ResultStore
	logger *slog.Logger
}

// NewAnalyzer creates an analyzer. The store may be nil, in which case
// results are returned without being persisted.
func NewAnalyzer(store ResultStore, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{store: store, logger: logger}
}

// Analyze evaluates the fixed check battery against the extracted data,
// persists the result keyed by document ID, and returns the report.
func (a *Analyzer) Analyze(ctx context.Context, req AnalyzeRequest) (*Report, error) {
	if req.DocumentID == "" {
		return nil, fmt.Errorf("document ID is required")
	}

	info := unwrapMetadata(req.ExtractedInfo)

	formNumber := req.FormNumber
	if formNumber == "" {
		formNumber = stringField(info, "formNumber")
	}

	risks := a.runChecks(info, formNumber)

	status := StatusCompliant
	if len(risks) > 0 {
		status = StatusNonCompliant
	}

	report := &Report{
		DocumentID:       req.DocumentID,
		FormNumber:       formNumber,
		FormType:         req.FormType,
		ClientName:       stringField(info, "clientName"),
		TrusteeName:      stringField(info, "trusteeName"),
		DateSigned:       stringField(info, "dateSigned"),
		ComplianceRisks:  risks,
		ComplianceStatus: status,
		Summary:          summarize(risks),
	}

	if a.store != nil {
		details, err := json.Marshal(report)
		if err != nil {
			return nil, fmt.Errorf("marshal risk assessment: %w", err)
		}
		if err := a.store.UpsertComplianceResult(ctx, req.DocumentID, status, string(details)); err != nil {
			return nil, fmt.Errorf("persist compliance result: %w", err)
		}
	}

	a.logger.Debug("compliance analysis complete",
		"document_id", req.DocumentID,
		"status", status,
		"risks", len(risks))

	return report, nil
}

// runChecks evaluates the battery in its fixed order. A check fires only
// when its precondition data is absent or insufficient.
func (a *Analyzer) runChecks(info map[string]any, formNumber string) []ComplianceRisk {
	risks := []ComplianceRisk{}

	if risk, fired := checkFinancialDisclosure(info); fired {
		risks = append(risks, risk)
	}
	if risk, fired := checkSignature(info); fired {
		risks = append(risks, risk)
	}
	if risk, fired := checkCreditorInformation(info); fired {
		risks = append(risks, risk)
	}
	if risk, fired := checkNoticeTiming(info); fired {
		risks = append(risks, risk)
	}
	if risk, fired := checkProcedural(info, formNumber); fired {
		risks = append(risks, risk)
	}

	return risks
}

func checkFinancialDisclosure(info map[string]any) (ComplianceRisk, bool) {
	if anyFieldPresent(info, "totalDebts", "totalAssets", "monthlyIncome", "monthlyPayment", "liabilities") {
		return ComplianceRisk{}, false
	}
	return newRisk(
		RiskTypeFinancialDisclosure,
		forms.SeverityHigh,
		"No financial disclosure found in the document",
		"Creditors cannot assess the estate without disclosed debts, assets or income",
		"Obtain and file the debtor's complete financial disclosure",
		"5 business days",
	), true
}

func checkSignature(info map[string]any) (ComplianceRisk, bool) {
	if anyFieldPresent(info, "dateSigned", "signature", "signedBy") {
		return ComplianceRisk{}, false
	}
	return newRisk(
		RiskTypeSignature,
		forms.SeverityCritical,
		"Document is missing a signature or authorization",
		"An unsigned prescribed form has no legal effect and may be disallowed",
		"Have the document signed by the creditor or an authorized representative",
		"Immediately",
	), true
}

func checkCreditorInformation(info map[string]any) (ComplianceRisk, bool) {
	if anyFieldPresent(info, "creditorName", "creditors", "creditorList") {
		return ComplianceRisk{}, false
	}
	return newRisk(
		RiskTypeCreditorInformation,
		forms.SeverityHigh,
		"No creditor information found in the document",
		"Claims cannot be admitted or voted without identified creditors",
		"Attach the creditor identification and claim particulars",
		"5 business days",
	), true
}

// checkNoticeTiming fires only when both the meeting date and the document
// date are present and parseable; it compares their epoch-millisecond
// difference against the five-day minimum.
func checkNoticeTiming(info map[string]any) (ComplianceRisk, bool) {
	meetingRaw := stringField(info, "meetingDate")
	documentRaw := stringField(info, "documentDate")
	if documentRaw == "" {
		documentRaw = stringField(info, "dateSigned")
	}

	meeting, okMeeting := forms.ParseDate(meetingRaw)
	document, okDocument := forms.ParseDate(documentRaw)
	if !okMeeting || !okDocument {
		return ComplianceRisk{}, false
	}

	if meeting.UnixMilli()-document.UnixMilli() >= noticeMinimumMillis {
		return ComplianceRisk{}, false
	}
	return newRisk(
		RiskTypeNoticeTiming,
		forms.SeverityHigh,
		"Less than five days between the document date and the meeting of creditors",
		"Creditors may not receive adequate notice, exposing the meeting to challenge",
		"Reschedule the meeting or re-issue the notice with the required interval",
		"Before the scheduled meeting",
	), true
}

func checkProcedural(info map[string]any, formNumber string) (ComplianceRisk, bool) {
	hasEstate := stringField(info, "estateNumber") != ""
	hasDistrict := stringField(info, "district") != ""
	hasForm := formNumber != ""

	if hasEstate && hasDistrict && hasForm {
		return ComplianceRisk{}, false
	}
	return newRisk(
		RiskTypeProcedural,
		forms.SeverityMedium,
		"Estate number, district or form number is missing",
		"The filing may be rejected or misfiled by the official receiver",
		"Complete the estate identification fields before filing",
		"Before filing",
	), true
}

// newRisk builds a risk record, attaching the static BIA and OSB citations
// for the check.
func newRisk(riskType RiskType, severity forms.Severity, description, impact, action, deadline string) ComplianceRisk {
	risk := ComplianceRisk{
		Type:           riskType,
		Description:    description,
		Severity:       severity,
		Impact:         impact,
		RequiredAction: action,
		Deadline:       deadline,
	}
	if ref, ok := biaReferences[riskType]; ok {
		risk.BIAReference = ref.Reference
		risk.BIADescription = ref.Description
	}
	if ref, ok := osbDirectives[riskType]; ok {
		risk.DirectiveReference = ref.Reference
		risk.DirectiveDescription = ref.Description
	}
	return risk
}

func summarize(risks []ComplianceRisk) string {
	switch len(risks) {
	case 0:
		return "No compliance risks identified"
	case 1:
		return "1 compliance risk identified"
	default:
		return fmt.Sprintf("%d compliance risks identified", len(risks))
	}
}

// unwrapMetadata returns the nested "metadata" map when present, otherwise
// the map itself. Upstream extractors differ on where they put the fields.
func unwrapMetadata(info map[string]any) map[string]any {
	if info == nil {
		return map[string]any{}
	}
	if nested, ok := info["metadata"].(map[string]any); ok {
		return nested
	}
	return info
}

// stringField reads a string-valued key, tolerating non-string JSON values.
func stringField(info map[string]any, key string) string {
	value, ok := info[key]
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	default:
		return ""
	}
}

// anyFieldPresent reports whether any of the keys has a non-empty value,
// counting non-empty lists as present.
func anyFieldPresent(info map[string]any, keys ...string) bool {
	for _, key := range keys {
		value, ok := info[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				return true
			}
		case []any:
			if len(v) > 0 {
				return true
			}
		case float64, bool, map[string]any:
			return true
		}
	}
	return false
}
