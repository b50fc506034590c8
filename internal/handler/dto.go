package handler

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"vocastant/internal/config"
	"vocastant/internal/service/formatting"
	"vocastant/internal/service/tools"
)

// ToolCallRequest is the body of POST /api/tools/{name}
type ToolCallRequest struct {
	ID    string                 `json:"id,omitempty"`
	Input map[string]interface{} `json:"input"`
}

// BatchCallRequest is the body of POST /api/tool-calls
type BatchCallRequest struct {
	Calls []BatchCall `json:"calls"`
}

// BatchCall is one entry of a batch request
type BatchCall struct {
	ID    string                 `json:"id,omitempty"`
	Name  string                 `json:"name"`
	Input map[string]interface{} `json:"input"`
}

// Validate checks identifier and question lengths on a single call.
func (r ToolCallRequest) Validate() error {
	return validateInput(r.Input)
}

// Validate checks the batch size and every call in it.
func (r BatchCallRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Calls, validation.Required, validation.Length(1, config.MaxBatchCalls)),
	)
}

// Validate checks one batch entry.
func (c BatchCall) Validate() error {
	if err := validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required),
	); err != nil {
		return err
	}
	return validateInput(c.Input)
}

// validateInput bounds the string parameters the document tools accept.
func validateInput(input map[string]interface{}) error {
	limits := map[string]int{
		"document_id": config.MaxIdentifierLength,
		"question":    config.MaxQuestionLength,
	}
	for key, limit := range limits {
		s, ok := input[key].(string)
		if !ok {
			continue
		}
		if err := validation.Validate(s, validation.RuneLength(0, limit)); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

// toCall gives the call a uuid when the client didn't supply one.
func toCall(id, name string, input map[string]interface{}) tools.ToolCall {
	if id == "" {
		id = uuid.NewString()
	}
	return tools.ToolCall{ID: id, Name: name, Input: input}
}

// ToolResultResponse is the wire form of a tools.ToolResult
type ToolResultResponse struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Result  interface{} `json:"result"`
	Error   string      `json:"error,omitempty"`
	IsError bool        `json:"is_error"`
	Speech  string      `json:"speech,omitempty"` // result cleaned for text-to-speech, on request
}

func toResponse(result tools.ToolResult, speech bool) ToolResultResponse {
	resp := ToolResultResponse{
		ID:      result.ID,
		Name:    result.Name,
		Result:  result.Result,
		Error:   result.ErrorMessage(),
		IsError: result.IsError,
	}
	if text, ok := result.Result.(string); ok && speech {
		resp.Speech = formatting.CleanForSpeech(text)
	}
	return resp
}
