package tools

import "context"

// HelpText is returned by 'get_document_help'.
const HelpText = `📚 DOCUMENT ANALYSIS HELP

I can help you analyze documents uploaded to this room. Here's how to use my tools:

🔍 AVAILABLE COMMANDS:
• "List documents" - See the documents in this room (by name)
• "Analyze document [name]" - Read a document and answer questions about it
• "Analyze the latest document" - Open the most recent upload
• "Summarize document [name]" - Get a comprehensive summary
• "Search documents for [your question]" - Find relevant content across documents
• "Test document access" - Check that document access is working

💡 NOTES:
• I won't read raw IDs aloud; I prefer names.
• All access is scoped to this room only.
• If you say part of a document name, I'll match it to the right file.

Try: "List documents" to see what's available now.`

// HelpTool implements 'get_document_help'.
type HelpTool struct{}

// Execute implements ToolExecutor interface.
func (HelpTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	return HelpText, nil
}
