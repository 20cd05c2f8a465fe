package schemas

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/legal-digest/internal/schemas"
	"github.com/jonathan/legal-digest/internal/types"
)

var schemaFiles = []string{
	"digest.schema.json",
	"answer.schema.json",
}

func TestSchemaFiles_ValidJSONSchema(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(schemaFile)
			require.NoError(t, err)

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &schemaObj))
			assert.Equal(t, "object", schemaObj["type"])

			// An empty document exercises the schema compiler
			err = schemas.ValidateJSONString(string(data), `{}`)
			var validationErr *schemas.ValidationError
			assert.ErrorAs(t, err, &validationErr, "missing required fields should fail validation")
		})
	}
}

func TestDigestSchema_MatchesDigestJSON(t *testing.T) {
	schema, err := os.ReadFile("digest.schema.json")
	require.NoError(t, err)

	digest := types.Digest{
		ID:        uuid.New(),
		Summary:   types.Summary{Bullets: []string{"• The tenant pays rent monthly."}},
		Clauses:   []types.Clause{{Type: types.ClauseType, Text: "The tenant shall pay rent on the first day."}},
		Risks:     []types.Risk{{Text: "A late penalty of $50 applies.", Severity: types.SeverityMajor}},
		Keywords:  []types.Keyword{{Term: "rent", Score: 0.72}},
		Context:   "The tenant shall pay rent on the first day. A late penalty of $50 applies.",
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	doc, err := json.Marshal(digest)
	require.NoError(t, err)

	assert.NoError(t, schemas.ValidateJSONString(string(schema), string(doc)))
}

func TestDigestSchema_RejectsUnknownSeverity(t *testing.T) {
	schema, err := os.ReadFile("digest.schema.json")
	require.NoError(t, err)

	digest := types.Digest{
		ID:       uuid.New(),
		Summary:  types.Summary{Bullets: []string{}},
		Clauses:  []types.Clause{},
		Risks:    []types.Risk{{Text: "Penalty applies.", Severity: "critical"}},
		Keywords: []types.Keyword{},
	}
	doc, err := json.Marshal(digest)
	require.NoError(t, err)

	assert.Error(t, schemas.ValidateJSONString(string(schema), string(doc)))
}

func TestAnswerSchema_MatchesAnswerJSON(t *testing.T) {
	schema, err := os.ReadFile("answer.schema.json")
	require.NoError(t, err)

	doc, err := json.Marshal(types.Answer{Answer: "$500", Confidence: 87.65})
	require.NoError(t, err)
	assert.NoError(t, schemas.ValidateJSONString(string(schema), string(doc)))

	doc, err = json.Marshal(types.Answer{Answer: "$500", Confidence: 187})
	require.NoError(t, err)
	assert.Error(t, schemas.ValidateJSONString(string(schema), string(doc)))
}
