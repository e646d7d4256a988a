package es

import (
	"github.com/DjordjeVuckovic/docsearch/internal/schema"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

type IndexBuilder struct {
	analyzer string
}

func NewIndexBuilder() *IndexBuilder {
	return &IndexBuilder{
		analyzer: "document_analyzer",
	}
}

func (b *IndexBuilder) buildSettings() types.IndexSettings {
	return types.IndexSettings{
		Analysis: &types.IndexSettingsAnalysis{
			Analyzer: map[string]types.Analyzer{
				b.analyzer: types.StandardAnalyzer{
					Stopwords: []string{"_none_"},
				},
			},
		},
	}
}

func (b *IndexBuilder) buildMapping(s *schema.IndexSchema) types.TypeMapping {
	if s == nil {
		s = schema.Default()
	}
	return types.TypeMapping{
		Properties: b.buildProperties(s.Fields),
	}
}

func (b *IndexBuilder) buildProperties(fields []schema.Field) map[string]types.Property {
	props := make(map[string]types.Property, len(fields))
	for _, f := range fields {
		props[f.Name] = b.buildProperty(f)
	}
	return props
}

func (b *IndexBuilder) buildProperty(f schema.Field) types.Property {
	switch f.Type {
	case schema.Text:
		textProp := types.NewTextProperty()
		textProp.Analyzer = &b.analyzer
		textProp.Fields = map[string]types.Property{
			"keyword": types.NewKeywordProperty(),
		}
		return textProp
	case schema.Keyword:
		return types.NewKeywordProperty()
	case schema.Long:
		return types.NewLongNumberProperty()
	case schema.Integer:
		return types.NewIntegerNumberProperty()
	case schema.Float:
		return types.NewFloatNumberProperty()
	case schema.Boolean:
		return types.NewBooleanProperty()
	case schema.Date:
		return types.NewDateProperty()
	case schema.Nested:
		nested := types.NewNestedProperty()
		nested.Properties = b.buildProperties(f.Properties)
		return nested
	default:
		obj := types.NewObjectProperty()
		obj.Properties = b.buildProperties(f.Properties)
		return obj
	}
}
