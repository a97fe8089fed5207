package sidekick_gpt

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/turtacn/ProfitLeak-Intelligence/pkg/errors"
	"github.com/turtacn/ProfitLeak-Intelligence/pkg/types/assessment"
)

// ---------------------------------------------------------------------------
// JSON extraction
// ---------------------------------------------------------------------------

// detailHeadLen caps how much of a raw model reply is carried in error detail.
const detailHeadLen = 200

// ExtractJSONObject returns the first balanced top-level JSON object embedded
// anywhere in raw model output.  The scanner tracks brace depth and is aware
// of string literals and escapes, so braces inside string values never
// unbalance the count.  Prose before or after the object, including markdown
// fences, is ignored.
func ExtractJSONObject(raw string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				return raw[start : i+1], nil
			}
		}
	}

	return "", errors.New(errors.ErrCodeRecoveryNoJSON, "no JSON object in model reply").
		WithDetail(head(raw))
}

func head(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) > detailHeadLen {
		return raw[:detailHeadLen]
	}
	return raw
}

// ---------------------------------------------------------------------------
// Schema validation
// ---------------------------------------------------------------------------

// reportSchema is the structural contract every recovered reply must meet
// before it is trusted as a report.  Invariants the schema language cannot
// express (score/label pairing, action step cardinality) are re-checked in Go
// by Report.Validate.
const reportSchema = `{
  "type": "object",
  "required": ["summary", "profitLeaks", "recommendation"],
  "properties": {
    "summary": {"type": "string", "minLength": 1},
    "recommendation": {"type": "string", "minLength": 1},
    "profitLeaks": {
      "type": "array",
      "minItems": 3,
      "maxItems": 5,
      "items": {
        "type": "object",
        "required": ["title", "description", "potentialImpact"],
        "properties": {
          "title": {"type": "string", "minLength": 1},
          "description": {"type": "string", "minLength": 1},
          "potentialImpact": {"enum": ["Low", "Medium", "High", "Critical"]},
          "actionableInsights": {
            "type": "array",
            "items": {"type": "string"}
          }
        }
      }
    },
    "profitPerformanceScore": {
      "type": "object",
      "required": ["score", "label"],
      "properties": {
        "score": {"type": "integer", "minimum": 0, "maximum": 100},
        "label": {"type": "string"},
        "summary": {"type": "string"}
      }
    },
    "empathyMessage": {"type": "string"},
    "patchPlan": {"type": "array", "items": {"type": "string"}},
    "estimatedRecoveryRange": {
      "type": "object",
      "required": ["monthlyMin", "monthlyMax"],
      "properties": {
        "monthlyMin": {"type": "number", "minimum": 0},
        "monthlyMax": {"type": "number", "minimum": 0},
        "note": {"type": "string"}
      }
    }
  }
}`

var (
	compiledSchema     *gojsonschema.Schema
	compiledSchemaOnce sync.Once
	compiledSchemaErr  error
)

func loadSchema() (*gojsonschema.Schema, error) {
	compiledSchemaOnce.Do(func() {
		compiledSchema, compiledSchemaErr =
			gojsonschema.NewSchema(gojsonschema.NewStringLoader(reportSchema))
	})
	return compiledSchema, compiledSchemaErr
}

// ---------------------------------------------------------------------------
// RecoverReport
// ---------------------------------------------------------------------------

// RecoverReport turns a raw model reply into a validated report.  It fails
// with REC_001 when no JSON object is present, REC_002 when the embedded
// object is not parseable JSON, and REC_003 when the object parses but
// violates the report contract.  Error detail always carries the head of the
// offending text for operator diagnosis.
func RecoverReport(raw string) (*assessment.Report, error) {
	doc, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	schema, err := loadSchema()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "compiling report schema")
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(doc))
	if err != nil {
		// The loader failed to parse the candidate, so it was not valid JSON.
		return nil, errors.Wrap(err, errors.ErrCodeRecoveryParse, "embedded JSON could not be parsed").
			WithDetail(head(doc))
	}
	if !result.Valid() {
		issues := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			issues = append(issues, desc.String())
		}
		return nil, errors.New(errors.ErrCodeRecoverySchema, "model reply violates report schema").
			WithDetail(head(strings.Join(issues, "; ")))
	}

	var report assessment.Report
	if err := json.Unmarshal([]byte(doc), &report); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRecoveryParse, "decoding report").
			WithDetail(head(doc))
	}

	if err := report.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRecoverySchema, "model reply violates report contract").
			WithDetail(err.Error())
	}
	return &report, nil
}

//Personal.AI order the ending
