package manifest

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YamlParser implements Parser for YAML.
type YamlParser struct{}

// NewYamlParser creates a new YamlParser.
func NewYamlParser() Parser {
	return &YamlParser{}
}

// Parse unmarshals YAML bytes into a Document struct.
func (p *YamlParser) Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding manifest YAML: %w", err)
	}
	return &doc, nil
}
