package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats reports as a YAML sequence.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Format writes reports as YAML.
func (f *YAMLFormatter) Format(w io.Writer, reports []Report) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(reports); err != nil {
		return err
	}
	return encoder.Close()
}
