// Package mcperr defines the error taxonomy shared by the registries and the
// dispatch engine. Every error carries a machine-readable category that the
// engine folds into the JSON-RPC error data payload, so domain failures map
// onto the fixed standard code set without inventing new top-level codes.
//
// All errors here are terminal: nothing in the core retries. Provider calls
// are single-attempt and their failures surface as UpstreamError with the
// original message preserved.
package mcperr

import (
	"fmt"
	"strings"
)

// Category is the machine-readable error class reported under data.category.
type Category string

const (
	CategoryProtocol    Category = "protocol"
	CategoryValidation  Category = "validation"
	CategoryNotFound    Category = "not_found"
	CategoryUnsupported Category = "unsupported_operation"
	CategoryUpstream    Category = "upstream"
	CategoryExecution   Category = "execution"
	CategoryCursor      Category = "invalid_cursor"
)

// ValidationError reports a bad or missing tool/method argument. Field names
// the offending argument; Example, when set, shows a valid input.
type ValidationError struct {
	Field   string
	Message string
	Example string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Message)
}

// Data returns the JSON-RPC error data payload.
func (e *ValidationError) Data() map[string]any {
	d := map[string]any{"category": CategoryValidation}
	if e.Field != "" {
		d["field"] = e.Field
	}
	if e.Example != "" {
		d["example"] = e.Example
	}
	return d
}

// Validationf builds a ValidationError for field with a formatted message.
func Validationf(field, format string, a ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, a...)}
}

// NotFoundError reports an identifier that failed to resolve. Kind is the
// identifier space ("tool", "resource", "prompt", "provider"). Suggestions
// optionally lists nearby valid identifiers.
type NotFoundError struct {
	Kind        string
	ID          string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean: %s)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e *NotFoundError) Data() map[string]any {
	d := map[string]any{
		"category": CategoryNotFound,
		"kind":     e.Kind,
		"id":       e.ID,
	}
	if len(e.Suggestions) > 0 {
		d["suggestions"] = e.Suggestions
	}
	return d
}

// UnsupportedOperationError reports that a configured provider does not
// implement a capability. It is deliberately distinct from NotFoundError so
// callers can tell "doesn't exist" from "not implemented by this provider".
type UnsupportedOperationError struct {
	Provider  string
	Operation string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("provider %q does not support operation %q", e.Provider, e.Operation)
}

func (e *UnsupportedOperationError) Data() map[string]any {
	return map[string]any{
		"category":  CategoryUnsupported,
		"provider":  e.Provider,
		"operation": e.Operation,
	}
}

// UpstreamError reports a failed provider backend call. Single attempt; the
// original status and message are preserved for the error data payload.
type UpstreamError struct {
	Provider  string
	Operation string
	Status    int
	Err       error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("provider %q: %s failed: %v", e.Provider, e.Operation, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Data() map[string]any {
	d := map[string]any{
		"category":  CategoryUpstream,
		"provider":  e.Provider,
		"operation": e.Operation,
	}
	if e.Status != 0 {
		d["status"] = e.Status
	}
	if e.Err != nil {
		d["detail"] = e.Err.Error()
	}
	return d
}

// ExecutionError wraps a tool execution failure with the tool name and
// category attached as context. The underlying cause stays reachable via
// errors.As / errors.Is.
type ExecutionError struct {
	Tool     string
	Category string
	Err      error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("tool %q (%s): %v", e.Tool, e.Category, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

func (e *ExecutionError) Data() map[string]any {
	d := map[string]any{
		"category":     CategoryExecution,
		"tool":         e.Tool,
		"toolCategory": e.Category,
	}
	if e.Err != nil {
		d["detail"] = e.Err.Error()
	}
	return d
}

// CursorError reports a malformed, foreign, or stale pagination cursor.
type CursorError struct {
	Reason string
}

func (e *CursorError) Error() string { return "invalid cursor: " + e.Reason }

func (e *CursorError) Data() map[string]any {
	return map[string]any{"category": CategoryCursor, "reason": e.Reason}
}
