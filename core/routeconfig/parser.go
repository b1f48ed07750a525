// Package routeconfig loads the route tree description from routes.yaml,
// routes.yml or routes.json and validates it before anything is generated.
package routeconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tristendillon/easyroutes/core/logger"
	"github.com/tristendillon/easyroutes/core/models"
	"github.com/tristendillon/easyroutes/core/shared"
	"gopkg.in/yaml.v3"
)

const InitHint = "run: easyroutes init"

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their document keys, e.g. routes[0].children[1].path.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// DetectFormat picks the grammar from the file extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unsupported extension: %s", shared.ErrUnsupportedFormat, ext)
	}
}

// Parse reads and validates the route tree at path.
func Parse(path string) (*models.RouteTree, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, shared.WithHint(fmt.Errorf("%w: %s", shared.ErrConfigNotFound, path), InitHint)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	tree, err := Decode(content, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.Debug("Parsed %s (%s) with %d routes", path, format, tree.Count())
	return tree, nil
}

// Decode parses content in the given format and validates the result.
func Decode(content []byte, format Format) (*models.RouteTree, error) {
	tree := &models.RouteTree{}

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(content, tree); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrMalformedDocument, err)
		}
	case FormatJSON:
		if err := json.Unmarshal(content, tree); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrMalformedDocument, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", shared.ErrUnsupportedFormat, format)
	}

	if err := Validate(tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// Validate enforces that every node has a path and a component. The returned
// error names each offending field by its position in the document.
func Validate(tree *models.RouteTree) error {
	err := validate.Struct(tree)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", shared.ErrMalformedDocument, err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := strings.TrimPrefix(fe.Namespace(), "RouteTree.")
		problems = append(problems, fmt.Sprintf("%s is %s", field, fe.Tag()))
	}
	return fmt.Errorf("%w: %s", shared.ErrMalformedDocument, strings.Join(problems, "; "))
}
