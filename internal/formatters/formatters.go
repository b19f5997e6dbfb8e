package formatters

import (
	"encoding/json"
	"fmt"
	"slices"

	"resumeradar/internal/analysis"
	"resumeradar/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// RegistryOption configures a FormatterRegistry
type RegistryOption func(*registryOptions)

type registryOptions struct {
	color bool
}

// WithColor enables ANSI colors in text output
func WithColor(enabled bool) RegistryOption {
	return func(o *registryOptions) { o.color = enabled }
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry(opts ...RegistryOption) *FormatterRegistry {
	var o registryOptions
	for _, opt := range opts {
		opt(&o)
	}

	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "Report", &ReportTextFormatter{Color: o.color})
	registry.RegisterFormatter("markdown", "Report", &ReportMarkdownFormatter{})
	registry.RegisterFormatter("text", "PersonaList", &PersonaTextFormatter{})
	registry.RegisterFormatter("markdown", "PersonaList", &PersonaMarkdownFormatter{})
	registry.RegisterFormatter("text", "TrendList", &TrendTextFormatter{})
	registry.RegisterFormatter("markdown", "TrendList", &TrendMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats, sorted
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	slices.Sort(formats)
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case analysis.Report:
		return "Report"
	case types.PersonaList:
		return "PersonaList"
	case types.TrendList:
		return "TrendList"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData) + "\n", nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// GlobalRegistry is the uncolored registry used when no options are needed
var GlobalRegistry = NewFormatterRegistry()
