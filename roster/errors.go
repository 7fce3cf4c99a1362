package roster

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDelimiter means delimiter detection failed on the sampled content.
var ErrUnknownDelimiter = errors.New("could not detect field delimiter")

// FatalParseError aborts an entire import batch before any row is processed.
// It is returned when the file itself is unusable: undetectable delimiter,
// unreadable content, or a missing required header.
type FatalParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *FatalParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("roster file %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("roster file %s: %s", e.Path, e.Reason)
}

func (e *FatalParseError) Unwrap() error {
	return e.Err
}

// ValidateHeaders checks that every required header is literally present.
func ValidateHeaders(path string, headers []string) error {
	present := make(map[string]struct{}, len(headers))
	for _, header := range headers {
		present[strings.TrimSpace(header)] = struct{}{}
	}

	missing := make([]string, 0, 3)
	for _, required := range RequiredHeaders() {
		if _, ok := present[required]; !ok {
			missing = append(missing, fmt.Sprintf("%q", required))
		}
	}
	if len(missing) > 0 {
		return &FatalParseError{
			Path:   path,
			Reason: "missing required headers: " + strings.Join(missing, ", "),
		}
	}
	return nil
}
