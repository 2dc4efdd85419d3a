package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ValidationError represents a configuration validation error with context
type ValidationError struct {
	FilePath string
	Line     int
	Column   int
	Message  string
	Field    string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	case e.Field != "":
		return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
	}
}

// configValidator reports fields by their koanf key and knows the basename rule.
var configValidator = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	// basename: the value names a file, without any directory part.
	_ = v.RegisterValidation("basename", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == filepath.Base(value)
	})
	return v
}

// yamlErrorPattern matches yaml.v3 syntax errors such as
// "yaml: line 3: could not find expected ':'".
var yamlErrorPattern = regexp.MustCompile(`^yaml: line (\d+):(?: column (\d+):)? (.*)$`)

// ValidateYAMLSyntax checks that the file at filePath is well-formed YAML.
// A missing or blank file is valid and leaves the defaults in place.
func ValidateYAMLSyntax(filePath string) error {
	data, err := os.ReadFile(filePath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case errors.Is(err, fs.ErrPermission):
		return &ValidationError{FilePath: filePath, Message: "permission denied"}
	case err != nil:
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}

	if strings.TrimSpace(string(data)) == "" {
		return nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		line, column, message := parseYAMLError(err.Error())
		return &ValidationError{
			FilePath: filePath,
			Line:     line,
			Column:   column,
			Message:  message,
		}
	}
	return nil
}

// ValidateConfigValues checks cfg against the validate tags of Configuration and reports
// the first failing field by its configuration key.
func ValidateConfigValues(cfg *Configuration, filePath string) error {
	err := configValidator.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &ValidationError{
			FilePath: filePath,
			Field:    fieldErrs[0].Field(),
			Message:  describeFieldError(fieldErrs[0]),
		}
	}
	return &ValidationError{FilePath: filePath, Message: err.Error()}
}

// parseYAMLError splits a yaml.v3 error into position and message. Errors without a
// position are returned whole with line 0.
func parseYAMLError(msg string) (line, column int, text string) {
	m := yamlErrorPattern.FindStringSubmatch(msg)
	if m == nil {
		return 0, 0, msg
	}
	line, _ = strconv.Atoi(m[1])
	column = 1
	if m[2] != "" {
		column, _ = strconv.Atoi(m[2])
	}
	return line, column, m[3]
}

func describeFieldError(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fieldErr.Param(), " ", ", ")
	case "basename":
		return "must be a file name, not a path"
	default:
		return "failed validation: " + fieldErr.Tag()
	}
}
