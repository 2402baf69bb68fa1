package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ValidationError points at the config file, and where known the line or
// key, that made loading fail.
type ValidationError struct {
	FilePath string
	Line     int
	Field    string
	Message  string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.FilePath, e.Line, e.Message)
	case e.Field != "":
		return fmt.Sprintf("%s: %s %s", e.FilePath, e.Field, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
	}
}

// yamlLine matches the position yaml.v3 puts in front of syntax errors.
var yamlLine = regexp.MustCompile(`^yaml: line (\d+): `)

// checkYAMLSyntax parses the file at path as a YAML document so syntax errors
// are reported with their line before koanf flattens them. A missing or empty
// file is fine; the defaults apply.
func checkYAMLSyntax(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &ValidationError{FilePath: path, Message: err.Error()}
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		verr := &ValidationError{FilePath: path, Message: err.Error()}
		if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
			verr.Line, _ = strconv.Atoi(m[1])
			verr.Message = strings.TrimPrefix(err.Error(), m[0])
		}
		return verr
	}
	return nil
}

// validate is shared by every load; validator caches struct metadata.
var validate = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their config key, not their Go name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		return name
	})
	_ = v.RegisterValidation("catalogue_url", isCatalogueURL)
	v.RegisterStructValidation(validateSource, Configuration{})
	return v
})

// isCatalogueURL accepts absolute http and https URLs with a host.
func isCatalogueURL(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// validateSource requires the location that matches the selected source.
func validateSource(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(Configuration)

	switch cfg.Source {
	case SourceFile:
		if strings.TrimSpace(cfg.ChangelogPath) == "" {
			sl.ReportError(cfg.ChangelogPath, "changelog_path", "ChangelogPath", "required_for_source", cfg.Source)
		}
	case SourceRemote:
		if strings.TrimSpace(cfg.RemoteURL) == "" {
			sl.ReportError(cfg.RemoteURL, "remote_url", "RemoteURL", "required_for_source", cfg.Source)
		}
	}
}

// ValidateConfigValues checks cfg against its struct tags and the source
// rules. The first problem found is returned as a *ValidationError.
func ValidateConfigValues(cfg *Configuration, filePath string) error {
	err := validate().Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}
	first := fieldErrs[0]
	return &ValidationError{
		FilePath: filePath,
		Field:    first.Field(),
		Message:  describeFieldError(first),
	}
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_for_source":
		return fmt.Sprintf("is required when source is '%s'", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "catalogue_url":
		return fmt.Sprintf("must be an http(s) URL with a host, got %q", fe.Value())
	case "excludesall":
		return "must not contain path separators"
	default:
		return "failed validation: " + fe.Tag()
	}
}
