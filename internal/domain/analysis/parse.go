package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// ParseResult decodes raw model output into a Result. Models occasionally wrap
// JSON in markdown fences or prepend commentary even when asked not to, so the
// output is cleaned before decoding. A Result that still fails to decode is
// reported as ErrMalformedOutput; corrupt data is never passed through.
func ParseResult(raw string) (*Result, error) {
	cleaned := cleanJSONResponse(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedOutput)
	}

	var res Result
	if err := json.Unmarshal([]byte(cleaned), &res); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	Normalize(&res)
	return &res, nil
}

// Normalize enforces the response invariants: score within [0,100], arrays
// never nil, severities restricted to the known levels.
func Normalize(res *Result) {
	res.OverallRiskScore = clampScore(res.OverallRiskScore)

	if res.Detections == nil {
		res.Detections = []Detection{}
	}
	if res.RecommendedActions == nil {
		res.RecommendedActions = []string{}
	}
	if res.QueriesToRun == nil {
		res.QueriesToRun = []string{}
	}

	for i := range res.Detections {
		res.Detections[i].Severity = NormalizeSeverity(res.Detections[i].Severity)
		if res.Detections[i].Indicators == nil {
			res.Detections[i].Indicators = []string{}
		}
	}
}

// NormalizeSeverity maps free-form model severities onto the known levels.
// Unknown values fall back to Medium, matching the source behavior.
func NormalizeSeverity(s Severity) Severity {
	switch strings.ToLower(strings.TrimSpace(string(s))) {
	case "low", "info", "informational":
		return SeverityLow
	case "medium", "moderate":
		return SeverityMedium
	case "high":
		return SeverityHigh
	case "critical":
		return SeverityCritical
	default:
		return SeverityMedium
	}
}

func clampScore(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// cleanJSONResponse strips markdown code fences and surrounding commentary,
// keeping the outermost JSON object.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		return content[start : end+1]
	}
	return ""
}
