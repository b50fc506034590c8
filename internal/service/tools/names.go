package tools

// Tool names exposed to the session framework.
const (
	ToolListDocuments   = "list_uploaded_documents"
	ToolAnalyzeDocument = "analyze_specific_document"
	ToolAnalyzeLatest   = "analyze_latest_document"
	ToolSummary         = "get_document_summary"
	ToolSearch          = "search_documents_for_question"
	ToolTestAccess      = "test_document_access"
	ToolInject          = "inject_document_to_context"
	ToolHelp            = "get_document_help"
)

// DocumentToolNames lists every document tool in presentation order.
var DocumentToolNames = []string{
	ToolListDocuments,
	ToolAnalyzeDocument,
	ToolAnalyzeLatest,
	ToolSummary,
	ToolSearch,
	ToolTestAccess,
	ToolInject,
	ToolHelp,
}
