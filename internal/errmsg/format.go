// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Image operations
	OpImageOpen   Op = "open image"
	OpImageDecode Op = "decode image"
	OpImageRender Op = "render image"

	// Terminal operations
	OpTerminalSize  Op = "read terminal size"
	OpImagesClear   Op = "clear images"
	OpPlaceholder   Op = "draw placeholder"
	OpTempFileSweep Op = "sweep temp files"

	// Initialization
	OpConfigLoad Op = "load config"
	OpInitialize Op = "initialize renderer"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
