package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/trusteehq/formscan/internal/compliance"
	"github.com/trusteehq/formscan/internal/config"
	"github.com/trusteehq/formscan/internal/extraction"
	"github.com/trusteehq/formscan/internal/forms"
	"github.com/trusteehq/formscan/internal/mapping"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	registry := forms.NewRegistry()
	srv, err := NewServer(config.DefaultConfig(), Deps{
		Registry:  registry,
		Extractor: extraction.NewExtractor(),
		Mapper:    mapping.NewMapperWithRegistry(registry),
		Analyzer:  compliance.NewAnalyzer(nil, nil),
	})
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return srv
}

func toolRequest(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

// extractTextFromResult pulls the text payload out of a CallToolResult.
func extractTextFromResult(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}

	for _, content := range result.Content {
		if textContent, ok := content.(mcp.TextContent); ok {
			return textContent.Text
		}
		if textContentPtr, ok := content.(*mcp.TextContent); ok {
			return textContentPtr.Text
		}
	}

	return ""
}

func TestNewServerRequiresPipeline(t *testing.T) {
	_, err := NewServer(config.DefaultConfig(), Deps{})
	if err == nil {
		t.Fatal("expected error when pipeline services are missing")
	}
}

func TestHandleAnalyzeDocument(t *testing.T) {
	srv := newTestServer(t)

	request := toolRequest(map[string]interface{}{
		"documentId":   "doc-1",
		"documentText": "Form 31 Proof of Claim\nIn the matter of the bankruptcy of: Maple Hardware Ltd.",
	})

	result, err := srv.handleAnalyzeDocument(context.Background(), request)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	text := extractTextFromResult(result)
	if !strings.Contains(text, "Compliance analysis for document: doc-1") {
		t.Errorf("expected analysis header, got: %s", text)
	}
	if !strings.Contains(text, "Form: 31") {
		t.Errorf("expected detected form number, got: %s", text)
	}
	if !strings.Contains(text, "Status: non_compliant") {
		t.Errorf("expected non-compliant status, got: %s", text)
	}
}

func TestHandleAnalyzeDocumentMissingID(t *testing.T) {
	srv := newTestServer(t)

	result, err := srv.handleAnalyzeDocument(context.Background(), toolRequest(map[string]interface{}{
		"documentText": "Form 31",
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	if result == nil || !result.IsError {
		t.Fatal("expected a tool error result for missing documentId")
	}
}

func TestHandleExtractFields(t *testing.T) {
	srv := newTestServer(t)

	request := toolRequest(map[string]interface{}{
		"documentText": "Form 47 Consumer Proposal\nConsumer Debtor: Alice Moreau\nTotal debts: $42,000.00",
	})

	result, err := srv.handleExtractFields(context.Background(), request)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	text := extractTextFromResult(result)
	if !strings.Contains(text, "Form: 47") {
		t.Errorf("expected form detection, got: %s", text)
	}
	if !strings.Contains(text, "clientName: Alice Moreau") {
		t.Errorf("expected extracted client name, got: %s", text)
	}
	if !strings.Contains(text, "totalDebts: $42000.00") {
		t.Errorf("expected canonical currency, got: %s", text)
	}
}

func TestHandleMapFormFields(t *testing.T) {
	srv := newTestServer(t)

	request := toolRequest(map[string]interface{}{
		"formType": "Form 31",
		"data": map[string]interface{}{
			"clientName": "Maple Hardware Ltd.",
			"totalDebts": "$12000.00",
		},
	})

	result, err := srv.handleMapFormFields(context.Background(), request)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	text := extractTextFromResult(result)
	if !strings.Contains(text, "Mapping result for Form 31") {
		t.Errorf("expected mapping header, got: %s", text)
	}
	if !strings.Contains(text, "creditorName") || !strings.Contains(text, "dateSigned") {
		t.Errorf("expected missing required fields, got: %s", text)
	}
}

func TestHandleMapFormFieldsUnsupported(t *testing.T) {
	srv := newTestServer(t)

	result, err := srv.handleMapFormFields(context.Background(), toolRequest(map[string]interface{}{
		"formType": "form-999",
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	if !strings.Contains(extractTextFromResult(result), "Unsupported form type") {
		t.Errorf("expected unsupported form message")
	}
}

func TestHandleValidateForm(t *testing.T) {
	srv := newTestServer(t)

	request := toolRequest(map[string]interface{}{
		"formType": "consumer proposal",
		"data": map[string]interface{}{
			"clientName":        "Alice Moreau",
			"administratorName": "Pierre Gagnon",
			"totalDebts":        "$42000.00",
			"monthlyPayment":    "$450.00",
			"dateSigned":        "2024-03-01",
		},
	})

	result, err := srv.handleValidateForm(context.Background(), request)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	text := extractTextFromResult(result)
	if !strings.Contains(text, "Validation result for Form 47") {
		t.Errorf("expected validation header, got: %s", text)
	}
	if !strings.Contains(text, "Valid: true") {
		t.Errorf("expected valid form, got: %s", text)
	}
}

func TestHandleListForms(t *testing.T) {
	srv := newTestServer(t)

	result, err := srv.handleListForms(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	text := extractTextFromResult(result)
	if !strings.Contains(text, "Form 31") || !strings.Contains(text, "Form 47") {
		t.Errorf("expected both prescribed forms, got: %s", text)
	}
	if !strings.Contains(text, "Section: Debtor Information") {
		t.Errorf("expected section names in the listing, got: %s", text)
	}
}
