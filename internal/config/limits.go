package config

const (
	// MaxRoomNameLength is the maximum length for room names accepted from
	// headers and query parameters.
	MaxRoomNameLength = 255

	// MaxIdentifierLength is the maximum length for a spoken document identifier.
	// Identifiers are names, ids or phrases like "the latest one"; anything
	// longer is a transcription artifact.
	MaxIdentifierLength = 500

	// MaxQuestionLength is the maximum length for a question passed to a tool.
	MaxQuestionLength = 2000

	// MaxBatchCalls is the maximum number of tool calls in one batch request.
	MaxBatchCalls = 16

	// MaxRequestBodyBytes limits tool-call request bodies.
	MaxRequestBodyBytes = 1 << 20
)
