package generator

import "fmt"

// ErrorCode identifies a configuration problem that blocks generation.
type ErrorCode string

const (
	ErrCodeNoUsableColumns ErrorCode = "NO_USABLE_COLUMNS"
	ErrCodeEmptyIdentifier ErrorCode = "EMPTY_IDENTIFIER"
	ErrCodeUnknownVerb     ErrorCode = "UNKNOWN_VERB"
)

// ConfigError reports a mapping configuration that cannot produce output.
// Use errors.Is with the sentinel values below to branch on the code.
type ConfigError struct {
	Code    ErrorCode
	Message string
	Index   int    // Position of the offending mapping, -1 when not tied to one
	Source  string // Source column name of the offending mapping, if any
}

var (
	// ErrNoUsableColumns means every mapping is excluded.
	ErrNoUsableColumns = &ConfigError{Code: ErrCodeNoUsableColumns, Message: "no columns are selected for output", Index: -1}
	// ErrEmptyIdentifier means an included mapping has a blank target name.
	ErrEmptyIdentifier = &ConfigError{Code: ErrCodeEmptyIdentifier, Message: "column target name is empty", Index: -1}
	// ErrUnknownVerb means ParseVerb was given an unsupported statement verb.
	ErrUnknownVerb = &ConfigError{Code: ErrCodeUnknownVerb, Message: "unknown statement verb", Index: -1}
)

// Error implements the error interface
func (e *ConfigError) Error() string {
	switch {
	case e.Index >= 0 && e.Source != "":
		return fmt.Sprintf("%s: %s (mapping %d, source %q)", e.Code, e.Message, e.Index+1, e.Source)
	case e.Index >= 0:
		return fmt.Sprintf("%s: %s (mapping %d)", e.Code, e.Message, e.Index+1)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any ConfigError with the same code.
func (e *ConfigError) Is(target error) bool {
	t, ok := target.(*ConfigError)
	return ok && t.Code == e.Code
}
