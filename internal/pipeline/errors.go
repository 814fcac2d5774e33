package pipeline

import "fmt"

// DataFormatError reports a vendor reference file that could not be
// parsed as CSV/XLS/XLSX.
type DataFormatError struct {
	Filename string
	Err      error
}

func (e *DataFormatError) Error() string {
	return fmt.Sprintf("vendor file %q: %v", e.Filename, e.Err)
}

func (e *DataFormatError) Unwrap() error { return e.Err }

// DocumentFormatError reports a statement document whose container could
// not be opened at all. Individual textless pages are not errors.
type DocumentFormatError struct {
	Filename string
	Err      error
}

func (e *DocumentFormatError) Error() string {
	if e.Filename == "" {
		return fmt.Sprintf("statement: %v", e.Err)
	}
	return fmt.Sprintf("statement %q: %v", e.Filename, e.Err)
}

func (e *DocumentFormatError) Unwrap() error { return e.Err }

// ModelResponseFormatError reports model output that is not a JSON array
// of transaction objects after code-fence stripping. Raw holds the text
// as received, truncated for logging.
type ModelResponseFormatError struct {
	Reason string
	Raw    string
}

func (e *ModelResponseFormatError) Error() string {
	return "model response: " + e.Reason
}

// BackendInvocationError reports a transport or authentication failure
// while calling the model backend.
type BackendInvocationError struct {
	Backend string
	Err     error
}

func (e *BackendInvocationError) Error() string {
	return fmt.Sprintf("%s backend: %v", e.Backend, e.Err)
}

func (e *BackendInvocationError) Unwrap() error { return e.Err }

const maxRawInError = 2000

// truncateRaw bounds raw model output kept inside errors, matching the
// cap used for persisted error messages elsewhere.
func truncateRaw(s string) string {
	if len(s) > maxRawInError {
		return s[:maxRawInError]
	}
	return s
}
