package schema

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type YAMLLoader struct {
	reader io.Reader
}

func NewYAMLLoader(reader io.Reader) *YAMLLoader {
	return &YAMLLoader{
		reader: reader,
	}
}

func (l *YAMLLoader) Load(validate bool) (*IndexSchema, error) {
	decoder := yaml.NewDecoder(l.reader)
	decoder.KnownFields(true)

	var s IndexSchema
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode index schema: %w", err)
	}
	if validate {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("invalid index schema: %w", err)
		}
	}
	return &s, nil
}

// LoadFile reads and validates a schema file. An empty path yields Default().
func LoadFile(path string) (*IndexSchema, error) {
	if path == "" {
		return Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index schema: %w", err)
	}
	defer f.Close()

	return NewYAMLLoader(f).Load(true)
}
