package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/config.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue represents a single validation error from the schema.
type ValidationIssue struct {
	Path    string // Instance location (e.g., "/log_level")
	Message string
	Keyword string // Schema keyword that failed (e.g., "enum")
}

func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("config.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("config.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// KeywordSyntax marks an issue raised because the file is not valid YAML.
const KeywordSyntax = "syntax"

// Validate checks raw YAML config bytes against the embedded schema.
// Syntax errors and schema violations are reported in the ValidationResult;
// the error return is for schema compilation failures.
func Validate(data []byte) (*ValidationResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return &ValidationResult{Issues: []ValidationIssue{{
			Message: "invalid YAML: " + strings.TrimPrefix(err.Error(), "yaml: "),
			Keyword: KeywordSyntax,
		}}}, nil
	}
	// An empty file is an empty config.
	if raw == nil {
		raw = map[string]any{}
	}

	jsonData, err := json.Marshal(stringKeys(raw))
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	var verr *jsonschema.ValidationError
	if err := schema.Validate(inst); errors.As(err, &verr) {
		return &ValidationResult{Issues: leafIssues(verr)}, nil
	} else if err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &ValidationResult{Valid: true}, nil
}

// ValidateFile reads the file at path and validates it. A missing file is
// reported as valid since every key has a default.
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ValidationResult{Valid: true}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Validate(data)
}

// leafIssues flattens the error tree. The schema is a single flat object, so
// each leaf is one offending key.
func leafIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	if len(ve.Causes) > 0 {
		var issues []ValidationIssue
		for _, cause := range ve.Causes {
			issues = append(issues, leafIssues(cause)...)
		}
		return issues
	}

	issue := ValidationIssue{Message: ve.Error()}
	if len(ve.InstanceLocation) > 0 {
		issue.Path = "/" + strings.Join(ve.InstanceLocation, "/")
	}
	if ve.ErrorKind != nil {
		if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
			issue.Keyword = kw[len(kw)-1]
		}
		issue.Message = ve.ErrorKind.LocalizedString(printer)
	}
	return []ValidationIssue{issue}
}

// stringKeys rewrites maps decoded with non-string keys so encoding/json
// accepts them.
func stringKeys(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, e := range val {
			val[k] = stringKeys(e)
		}
		return val
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, e := range val {
			m[fmt.Sprint(k)] = stringKeys(e)
		}
		return m
	case []any:
		for i, e := range val {
			val[i] = stringKeys(e)
		}
		return val
	default:
		return val
	}
}
