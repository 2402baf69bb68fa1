package changelog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidationError represents a changelog validation error with context.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Load reads and validates a changelog.yaml file from the given path.
func Load(path string) (*Catalogue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening changelog file: %w", err)
	}
	defer f.Close()

	return LoadFromReader(f)
}

// LoadFromReader reads and validates a changelog.yaml from an io.Reader.
// An empty document yields an empty catalogue.
func LoadFromReader(r io.Reader) (*Catalogue, error) {
	var file File

	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing changelog YAML: %w", err)
	}

	if err := Validate(&file); err != nil {
		return nil, err
	}

	return NewCatalogue(file.Entries), nil
}

// Validate checks the schema constraints of a changelog document.
// Version strings are only required to be present: entries with versions that
// do not parse are kept and left out of ordering. Entries sharing a version
// are allowed and keep their order.
func Validate(f *File) error {
	seenIDs := make(map[string]int, len(f.Entries))

	for i := range f.Entries {
		e := &f.Entries[i]
		if err := validateEntry(e, i); err != nil {
			return err
		}

		if first, dup := seenIDs[e.ID]; dup {
			return &ValidationError{
				Field:   fmt.Sprintf("entries[%d].id", i),
				Message: fmt.Sprintf("duplicate id %q (first used by entries[%d])", e.ID, first),
			}
		}
		seenIDs[e.ID] = i
	}

	return nil
}

// validateEntry checks constraints for a single entry.
func validateEntry(e *Entry, index int) error {
	required := []struct {
		field string
		value string
	}{
		{"id", e.ID},
		{"version", e.Version},
		{"title", e.Title},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("entries[%d].%s", index, r.field),
				Message: "required field is empty",
			}
		}
	}

	if !e.Type.Valid() {
		return &ValidationError{
			Field:   fmt.Sprintf("entries[%d].type", index),
			Message: fmt.Sprintf("invalid type %q (expected: feature, fix, improvement)", e.Type),
		}
	}

	if e.Date != "" && !datePattern.MatchString(e.Date) {
		return &ValidationError{
			Field:   fmt.Sprintf("entries[%d].date", index),
			Message: fmt.Sprintf("invalid date format %q (expected: YYYY-MM-DD)", e.Date),
		}
	}

	return nil
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
