package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Keywords(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{name: "valid", doc: `{"keywords": [{"term": "rent", "score": 0.9}]}`},
		{name: "empty list", doc: `{"keywords": []}`},
		{name: "missing keywords", doc: `{"terms": []}`, wantErr: true},
		{name: "score as string", doc: `{"keywords": [{"term": "rent", "score": "high"}]}`, wantErr: true},
		{name: "missing term", doc: `{"keywords": [{"score": 0.4}]}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(KeywordsSchema, []byte(tt.doc))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidate_Answer(t *testing.T) {
	assert.NoError(t, Validate(AnswerSchema, []byte(`{"answer": "$500", "score": 0.87}`)))

	err := Validate(AnswerSchema, []byte(`{"answer": 5}`))
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("missing.schema.json", []byte(`{}`))
	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "missing.schema.json", loadErr.Path)
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(AnswerSchema, []byte(`{not json`))
	assert.Error(t, err)
}

func TestValidateJSONString_InvalidSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
}

func TestFieldError_RootField(t *testing.T) {
	err := ValidateJSONString(`{"type": "object"}`, `[]`)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}
