package schema

import "fmt"

const Kind = "IndexSchema"

type FieldType string

const (
	Text    FieldType = "text"
	Keyword FieldType = "keyword"
	Long    FieldType = "long"
	Integer FieldType = "integer"
	Float   FieldType = "float"
	Boolean FieldType = "boolean"
	Date    FieldType = "date"
	Object  FieldType = "object"
	Nested  FieldType = "nested"
)

func (t FieldType) Valid() bool {
	switch t {
	case Text, Keyword, Long, Integer, Float, Boolean, Date, Object, Nested:
		return true
	}
	return false
}

// IsContainer reports whether the field may carry sub-properties
func (t FieldType) IsContainer() bool {
	return t == Object || t == Nested
}

type IndexSchema struct {
	Kind     string   `json:"kind" example:"IndexSchema" yaml:"kind"`
	Version  string   `json:"version" example:"v1" yaml:"version"`
	Metadata Metadata `json:"metadata" yaml:"metadata"`
	Fields   []Field  `json:"fields" yaml:"fields"`
}

type Metadata struct {
	Name        string `json:"name" example:"documents" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type Field struct {
	Name       string    `json:"name" example:"title" yaml:"name"`
	Type       FieldType `json:"type" example:"text" yaml:"type"`
	Properties []Field   `json:"properties,omitempty" yaml:"properties,omitempty"`
}

func (s *IndexSchema) Validate() error {
	if s.Kind != Kind {
		return fmt.Errorf("kind must be %q, got %q", Kind, s.Kind)
	}
	if s.Version == "" {
		return fmt.Errorf("version is required")
	}
	if s.Metadata.Name == "" {
		return fmt.Errorf("metadata.name is required")
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("at least one field is required")
	}
	return validateFields("fields", s.Fields)
}

func validateFields(path string, fields []Field) error {
	seen := make(map[string]struct{}, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return fmt.Errorf("%s[%d] must have name defined", path, i)
		}
		if _, ok := seen[f.Name]; ok {
			return fmt.Errorf("%s[%d] duplicates field %q", path, i, f.Name)
		}
		seen[f.Name] = struct{}{}

		if !f.Type.Valid() {
			return fmt.Errorf("%s[%d] (%s) has unsupported type %q", path, i, f.Name, f.Type)
		}
		if len(f.Properties) > 0 {
			if !f.Type.IsContainer() {
				return fmt.Errorf("%s[%d] (%s) of type %q cannot have properties", path, i, f.Name, f.Type)
			}
			if err := validateFields(fmt.Sprintf("%s[%d].properties", path, i), f.Properties); err != nil {
				return err
			}
		}
	}
	return nil
}

// Default is the layout applied when no schema file is supplied
func Default() *IndexSchema {
	return &IndexSchema{
		Kind:    Kind,
		Version: "v1",
		Metadata: Metadata{
			Name:        "documents",
			Description: "Default document index layout",
		},
		Fields: []Field{
			{Name: "@timestamp", Type: Date},
			{Name: "@version", Type: Integer},
			{Name: "document_id", Type: Long},
			{Name: "title", Type: Text},
			{Name: "date", Type: Date},
			{Name: "language", Type: Keyword},
			{Name: "metadata", Type: Object},
			{Name: "wikipedia", Type: Nested},
		},
	}
}
