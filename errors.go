package indicenc

import (
	"fmt"
	"strings"
)

// Names of the three table resources, used in error messages.
const (
	ResourceMappings   = "mappings"
	ResourcePriorities = "priorities"
	ResourcePrefixes   = "prefixes"
)

// ValidationError is returned if a transliteration table cannot be built from
// its input records. Construction is all-or-nothing: whenever a ValidationError
// is returned, no table is.
type ValidationError struct {
	Resource string // one of ResourceMappings, ResourcePriorities, ResourcePrefixes
	Index    int    // 0-based record index, -1 if the error is not tied to a record
	Field    string // offending field, if any
	Reason   string
	Err      error // underlying error, e.g., from a record reader
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("invalid transliteration table")
	if e.Resource != "" {
		fmt.Fprintf(&b, ": %s", e.Resource)
	}
	if e.Index >= 0 {
		fmt.Fprintf(&b, " record #%d", e.Index)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " field %q", e.Field)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(resource string, index int, field string, reason string) *ValidationError {
	return &ValidationError{
		Resource: resource,
		Index:    index,
		Field:    field,
		Reason:   reason,
	}
}
