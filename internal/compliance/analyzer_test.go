package compliance

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeStore struct {
	upserts []upsertCall
	err     error
}

type upsertCall struct {
	documentID string
	status     string
	details    string
}

func (f *fakeStore) UpsertComplianceResult(_ context.Context, documentID, status, details string) error {
	if f.err != nil {
		return f.err
	}
	f.upserts = append(f.upserts, upsertCall{documentID, status, details})
	return nil
}

func TestAnalyzeEmptyInfoFiresFourRisks(t *testing.T) {
	analyzer := NewAnalyzer(nil, nil)

	report, err := analyzer.Analyze(context.Background(), AnalyzeRequest{
		DocumentID:    "doc-1",
		ExtractedInfo: map[string]any{},
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	// Notice timing needs both a meeting date and a document date to
	// evaluate, so only the other four checks fire.
	if len(report.ComplianceRisks) != 4 {
		t.Fatalf("Expected exactly 4 risks, got %d", len(report.ComplianceRisks))
	}

	expectedOrder := []RiskType{
		RiskTypeFinancialDisclosure,
		RiskTypeSignature,
		RiskTypeCreditorInformation,
		RiskTypeProcedural,
	}
	for i, expected := range expectedOrder {
		if report.ComplianceRisks[i].Type != expected {
			t.Errorf("Risk %d: expected %s, got %s", i, expected, report.ComplianceRisks[i].Type)
		}
	}

	if report.ComplianceStatus != StatusNonCompliant {
		t.Errorf("Expected non_compliant, got %s", report.ComplianceStatus)
	}
	if report.Summary != "4 compliance risks identified" {
		t.Errorf("Unexpected summary: %q", report.Summary)
	}
}

func TestAnalyzeNoticeTiming(t *testing.T) {
	tests := []struct {
		name        string
		meetingDate string
		shouldFire  bool
	}{
		{"three_days_fires", "2024-03-18", true},
		{"ten_days_does_not_fire", "2024-03-25", false},
		{"exactly_five_days_does_not_fire", "2024-03-20", false},
	}

	analyzer := NewAnalyzer(nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := analyzer.Analyze(context.Background(), AnalyzeRequest{
				DocumentID: "doc-timing",
				ExtractedInfo: map[string]any{
					"documentDate": "2024-03-15",
					"meetingDate":  tt.meetingDate,
				},
			})
			if err != nil {
				t.Fatalf("Analyze failed: %v", err)
			}

			fired := false
			for _, risk := range report.ComplianceRisks {
				if risk.Type == RiskTypeNoticeTiming {
					fired = true
				}
			}
			if fired != tt.shouldFire {
				t.Errorf("Notice timing fired=%v, expected %v", fired, tt.shouldFire)
			}
		})
	}
}

func TestAnalyzeCompliantDocument(t *testing.T) {
	store := &fakeStore{}
	analyzer := NewAnalyzer(store, nil)

	report, err := analyzer.Analyze(context.Background(), AnalyzeRequest{
		DocumentID: "doc-ok",
		FormNumber: "31",
		ExtractedInfo: map[string]any{
			"clientName":   "Northern Pines Woodworks Ltd.",
			"creditorName": "Lakehead Timber Supply",
			"totalDebts":   "$45210.75",
			"dateSigned":   "2024-03-15",
			"trusteeName":  "Marie Delorme",
			"estateNumber": "31-2845771",
			"district":     "Ontario",
			"documentDate": "2024-03-15",
			"meetingDate":  "2024-03-28",
		},
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if len(report.ComplianceRisks) != 0 {
		t.Fatalf("Expected no risks, got %d: %+v", len(report.ComplianceRisks), report.ComplianceRisks)
	}
	if report.ComplianceStatus != StatusCompliant {
		t.Errorf("Expected compliant, got %s", report.ComplianceStatus)
	}
	if report.Summary != "No compliance risks identified" {
		t.Errorf("Unexpected summary: %q", report.Summary)
	}
	if report.ClientName != "Northern Pines Woodworks Ltd." {
		t.Errorf("Unexpected client name: %q", report.ClientName)
	}

	if len(store.upserts) != 1 {
		t.Fatalf("Expected one upsert, got %d", len(store.upserts))
	}
	if store.upserts[0].documentID != "doc-ok" || store.upserts[0].status != StatusCompliant {
		t.Errorf("Unexpected upsert: %+v", store.upserts[0])
	}
	if !strings.Contains(store.upserts[0].details, `"documentId":"doc-ok"`) {
		t.Errorf("Expected details JSON to embed the document ID, got %s", store.upserts[0].details)
	}
}

func TestAnalyzeUnwrapsMetadata(t *testing.T) {
	analyzer := NewAnalyzer(nil, nil)

	report, err := analyzer.Analyze(context.Background(), AnalyzeRequest{
		DocumentID: "doc-nested",
		ExtractedInfo: map[string]any{
			"metadata": map[string]any{
				"clientName": "Jane Doe",
				"dateSigned": "2024-03-15",
			},
		},
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if report.ClientName != "Jane Doe" {
		t.Errorf("Expected metadata to be unwrapped, got client name %q", report.ClientName)
	}

	for _, risk := range report.ComplianceRisks {
		if risk.Type == RiskTypeSignature {
			t.Error("Signature check should see dateSigned inside metadata")
		}
	}
}

func TestAnalyzeMissingDocumentID(t *testing.T) {
	analyzer := NewAnalyzer(nil, nil)

	_, err := analyzer.Analyze(context.Background(), AnalyzeRequest{})
	if err == nil {
		t.Fatal("Expected an error for a missing document ID")
	}
}

func TestAnalyzeStoreFailureIsTerminal(t *testing.T) {
	store := &fakeStore{err: errors.New("disk full")}
	analyzer := NewAnalyzer(store, nil)

	report, err := analyzer.Analyze(context.Background(), AnalyzeRequest{
		DocumentID:    "doc-err",
		ExtractedInfo: map[string]any{},
	})
	if err == nil {
		t.Fatal("Expected persistence failure to propagate")
	}
	if report != nil {
		t.Error("Expected no report when persistence fails")
	}
}

func TestAnalyzeUpsertIsIdempotentByKey(t *testing.T) {
	store := &fakeStore{}
	analyzer := NewAnalyzer(store, nil)

	req := AnalyzeRequest{DocumentID: "doc-repeat", ExtractedInfo: map[string]any{}}
	for i := 0; i < 2; i++ {
		if _, err := analyzer.Analyze(context.Background(), req); err != nil {
			t.Fatalf("Analyze failed: %v", err)
		}
	}

	if len(store.upserts) != 2 {
		t.Fatalf("Expected two upserts, got %d", len(store.upserts))
	}
	if store.upserts[0] != store.upserts[1] {
		t.Error("Expected repeated analysis of identical input to write identical results")
	}
}

func TestRiskRecordsCarryCitations(t *testing.T) {
	analyzer := NewAnalyzer(nil, nil)

	report, err := analyzer.Analyze(context.Background(), AnalyzeRequest{
		DocumentID:    "doc-cite",
		ExtractedInfo: map[string]any{},
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	for _, risk := range report.ComplianceRisks {
		if risk.BIAReference == "" || risk.BIADescription == "" {
			t.Errorf("Risk %s is missing its BIA citation", risk.Type)
		}
		if risk.DirectiveReference == "" || risk.DirectiveDescription == "" {
			t.Errorf("Risk %s is missing its OSB directive", risk.Type)
		}
		if risk.Deadline == "" || risk.Impact == "" || risk.RequiredAction == "" {
			t.Errorf("Risk %s is missing remediation guidance", risk.Type)
		}
	}
}
