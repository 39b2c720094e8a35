// Package mcp exposes the extraction and compliance pipeline as MCP tools
// over stdio.
package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/trusteehq/formscan/internal/compliance"
	"github.com/trusteehq/formscan/internal/config"
	"github.com/trusteehq/formscan/internal/extraction"
	"github.com/trusteehq/formscan/internal/forms"
	"github.com/trusteehq/formscan/internal/mapping"
	"github.com/trusteehq/formscan/internal/pdftext"
)

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	registry  *forms.Registry
	extractor *extraction.Extractor
	mapper    *mapping.Mapper
	analyzer  *compliance.Analyzer
	documents *pdftext.Service
	mcpServer *server.MCPServer
}

// Deps carries the pipeline services the tools front. Documents may be
// nil when no document directory is configured.
type Deps struct {
	Registry  *forms.Registry
	Extractor *extraction.Extractor
	Mapper    *mapping.Mapper
	Analyzer  *compliance.Analyzer
	Documents *pdftext.Service
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, deps Deps) (*Server, error) {
	if deps.Registry == nil || deps.Extractor == nil || deps.Mapper == nil || deps.Analyzer == nil {
		return nil, fmt.Errorf("registry, extractor, mapper and analyzer are required")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:    cfg,
		registry:  deps.Registry,
		extractor: deps.Extractor,
		mapper:    deps.Mapper,
		analyzer:  deps.Analyzer,
		documents: deps.Documents,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	analyzeDocumentTool := mcp.NewTool(
		"analyze_document",
		mcp.WithDescription("Run the full compliance analysis for an insolvency document and persist the result"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("Identifier the analysis is stored under"),
		),
		mcp.WithString("documentText",
			mcp.Description("Raw document text (takes precedence over documentPath)"),
		),
		mcp.WithString("documentPath",
			mcp.Description("Path to a PDF inside the configured document directory"),
		),
		mcp.WithString("formNumber",
			mcp.Description("Prescribed form number, if already known"),
		),
		mcp.WithString("formType",
			mcp.Description("Form type label, if already known"),
		),
	)
	s.mcpServer.AddTool(analyzeDocumentTool, s.handleAnalyzeDocument)

	extractFieldsTool := mcp.NewTool(
		"extract_fields",
		mcp.WithDescription("Extract structured form fields from raw insolvency document text"),
		mcp.WithString("documentText",
			mcp.Required(),
			mcp.Description("Raw document text to extract fields from"),
		),
	)
	s.mcpServer.AddTool(extractFieldsTool, s.handleExtractFields)

	mapFormFieldsTool := mcp.NewTool(
		"map_form_fields",
		mcp.WithDescription("Map extracted data onto a prescribed form definition and report field-level issues"),
		mcp.WithString("formType",
			mcp.Required(),
			mcp.Description("Form type, number or name (e.g. '31', 'Form 47', 'proof of claim')"),
		),
		mcp.WithObject("data",
			mcp.Description("Extracted field values keyed by field name"),
		),
	)
	s.mcpServer.AddTool(mapFormFieldsTool, s.handleMapFormFields)

	validateFormTool := mcp.NewTool(
		"validate_form",
		mcp.WithDescription("Validate extracted data against a prescribed form, splitting issues into errors and warnings"),
		mcp.WithString("formType",
			mcp.Required(),
			mcp.Description("Form type, number or name (e.g. '31', 'Form 47', 'proof of claim')"),
		),
		mcp.WithObject("data",
			mcp.Description("Extracted field values keyed by field name"),
		),
	)
	s.mcpServer.AddTool(validateFormTool, s.handleValidateForm)

	listFormsTool := mcp.NewTool(
		"list_forms",
		mcp.WithDescription("List the prescribed forms this server can map and validate"),
	)
	s.mcpServer.AddTool(listFormsTool, s.handleListForms)
}

// Handler functions
func (s *Server) handleAnalyzeDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	documentID, err := request.RequireString("documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()

	text := stringArg(args, "documentText")
	if text == "" {
		if path := stringArg(args, "documentPath"); path != "" {
			if s.documents == nil {
				return mcp.NewToolResultError("document path given but no document directory is configured"), nil
			}
			extracted, err := s.documents.ExtractText(path)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			text = extracted
		}
	}

	result := s.extractor.Extract(text)

	formNumber := stringArg(args, "formNumber")
	if formNumber == "" {
		formNumber = result.FormNumber
	}
	formType := stringArg(args, "formType")
	if formType == "" {
		formType = result.FormType
	}

	info := make(map[string]any, len(result.Fields))
	for k, v := range result.Fields {
		info[k] = v
	}

	report, err := s.analyzer.Analyze(ctx, compliance.AnalyzeRequest{
		DocumentID:    documentID,
		ExtractedInfo: info,
		FormNumber:    formNumber,
		FormType:      formType,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatReport(report)), nil
}

func (s *Server) handleExtractFields(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("documentText")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := s.extractor.Extract(text)
	return mcp.NewToolResultText(s.formatExtraction(result)), nil
}

func (s *Server) handleMapFormFields(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	formType, data, err := formArguments(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := s.mapper.MapFormFields(formType, data)
	return mcp.NewToolResultText(s.formatMapping(result)), nil
}

func (s *Server) handleValidateForm(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	formType, data, err := formArguments(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := s.mapper.ValidateForm(formType, data)
	return mcp.NewToolResultText(s.formatValidation(result)), nil
}

func (s *Server) handleListForms(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	defs := s.registry.Definitions()

	text := fmt.Sprintf("Supported prescribed forms (%d):\n", len(defs))
	for _, def := range defs {
		text += fmt.Sprintf("\n• Form %s: %s\n", def.FormNumber, def.Title)
		text += fmt.Sprintf("  Fields: %d\n", def.FieldCount())
		for _, section := range def.Sections {
			text += fmt.Sprintf("  Section: %s\n", section.Name)
		}
	}

	return mcp.NewToolResultText(text), nil
}

// formArguments pulls the shared formType/data pair used by the mapping tools.
func formArguments(request mcp.CallToolRequest) (string, map[string]string, error) {
	formType, err := request.RequireString("formType")
	if err != nil {
		return "", nil, err
	}

	args := request.GetArguments()
	data := map[string]string{}
	if raw, ok := args["data"].(map[string]any); ok {
		for k, v := range raw {
			if str, ok := v.(string); ok {
				data[k] = str
			} else {
				data[k] = fmt.Sprintf("%v", v)
			}
		}
	}

	return formType, data, nil
}

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// Formatting methods
func (s *Server) formatReport(report *compliance.Report) string {
	text := fmt.Sprintf("Compliance analysis for document: %s\n", report.DocumentID)
	if report.FormNumber != "" {
		text += fmt.Sprintf("Form: %s\n", report.FormNumber)
	}
	if report.ClientName != "" {
		text += fmt.Sprintf("Client: %s\n", report.ClientName)
	}
	text += fmt.Sprintf("Status: %s\n", report.ComplianceStatus)
	text += fmt.Sprintf("Summary: %s\n", report.Summary)

	if len(report.ComplianceRisks) > 0 {
		text += "\nRisks:\n"
		for i, risk := range report.ComplianceRisks {
			text += fmt.Sprintf("%d. [%s] %s\n", i+1, strings.ToUpper(string(risk.Severity)), risk.Description)
			text += fmt.Sprintf("   Impact: %s\n", risk.Impact)
			text += fmt.Sprintf("   Action: %s (deadline: %s)\n", risk.RequiredAction, risk.Deadline)
			text += fmt.Sprintf("   References: %s; %s\n", risk.BIAReference, risk.DirectiveReference)
		}
	}

	return text
}

func (s *Server) formatExtraction(result extraction.Result) string {
	if len(result.Fields) == 0 {
		return "No fields could be extracted from the document text.\n"
	}

	text := "Extraction result\n"
	if result.FormNumber != "" {
		text += fmt.Sprintf("Form: %s (%s)\n", result.FormNumber, result.FormType)
	}
	text += fmt.Sprintf("Extraction risk: %s\n", result.RiskLevel)
	text += fmt.Sprintf("\nFields (%d):\n", len(result.Fields))
	for _, key := range sortedKeys(result.Fields) {
		text += fmt.Sprintf("  %s: %s\n", key, result.Fields[key])
	}

	return text
}

func (s *Server) formatMapping(result mapping.MappingResult) string {
	if result.FormNumber == "" {
		return "Unsupported form type.\n"
	}

	text := fmt.Sprintf("Mapping result for Form %s\n", result.FormNumber)
	text += fmt.Sprintf("Mapped fields: %d\n", len(result.MappedFields))

	if len(result.MissingRequiredFields) > 0 {
		text += fmt.Sprintf("Missing required fields: %s\n", strings.Join(result.MissingRequiredFields, ", "))
	}

	if len(result.ValidationIssues) > 0 {
		text += fmt.Sprintf("\nIssues (%d):\n", len(result.ValidationIssues))
		for i, issue := range result.ValidationIssues {
			text += fmt.Sprintf("%d. [%s] %s: %s\n", i+1, issue.Severity, issue.Field, issue.Message)
		}
	}

	return text
}

func (s *Server) formatValidation(result mapping.ValidationResult) string {
	if result.FormNumber == "" {
		return "Unsupported form type.\n"
	}

	text := fmt.Sprintf("Validation result for Form %s\n", result.FormNumber)
	text += fmt.Sprintf("Valid: %t\n", result.Valid)

	if len(result.MissingRequiredFields) > 0 {
		text += fmt.Sprintf("Missing required fields: %s\n", strings.Join(result.MissingRequiredFields, ", "))
	}
	if len(result.Errors) > 0 {
		text += fmt.Sprintf("\nErrors (%d):\n", len(result.Errors))
		for i, issue := range result.Errors {
			text += fmt.Sprintf("%d. %s: %s\n", i+1, issue.Field, issue.Message)
		}
	}
	if len(result.Warnings) > 0 {
		text += fmt.Sprintf("\nWarnings (%d):\n", len(result.Warnings))
		for i, issue := range result.Warnings {
			text += fmt.Sprintf("%d. %s: %s\n", i+1, issue.Field, issue.Message)
		}
	}

	return text
}

func sortedKeys(fields map[string]string) []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Run starts the MCP server on standard I/O.
func (s *Server) Run(_ context.Context) error {
	if s.config.IsDebug() {
		fmt.Println("Starting formscan MCP server in stdio mode")
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
