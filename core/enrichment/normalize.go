// ABOUTME: Normalization of summarization responses into the AI result shape
// ABOUTME: Enforces summary length, tag limits and the intent enum

package enrichment

import (
	"strings"
	"unicode/utf8"

	"postsheet-api/core/domain"
)

const (
	maxSummaryRunes = 160
	maxTags         = 5
	maxTagRunes     = 24
)

// NormalizeSummary collapses whitespace, trims and cuts to 160 characters
func NormalizeSummary(raw interface{}) string {
	s, ok := raw.(string)
	if !ok {
		return ""
	}
	collapsed := strings.Join(strings.Fields(s), " ")
	return truncateRunes(collapsed, maxSummaryRunes)
}

// NormalizeTags keeps string entries only, lowercased, trimmed and deduplicated,
// each cut to 24 characters and at most 5 in insertion order
func NormalizeTags(raw interface{}) []string {
	out := make([]string, 0, maxTags)

	var items []interface{}
	switch v := raw.(type) {
	case []interface{}:
		items = v
	case []string:
		items = make([]interface{}, len(v))
		for i, s := range v {
			items[i] = s
		}
	default:
		return out
	}

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		tag := truncateRunes(strings.ToLower(strings.TrimSpace(s)), maxTagRunes)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
		if len(out) == maxTags {
			break
		}
	}
	return out
}

// NormalizeIntent matches the intent enum case-insensitively, else the default
func NormalizeIntent(raw interface{}) string {
	s, ok := raw.(string)
	if !ok {
		return domain.DefaultIntent()
	}
	s = strings.ToLower(strings.TrimSpace(s))
	for _, intent := range domain.Intents {
		if s == intent {
			return intent
		}
	}
	return domain.DefaultIntent()
}

// NormalizeNextAction trims a string value; anything else becomes ""
func NormalizeNextAction(raw interface{}) string {
	s, ok := raw.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// NormalizeResult applies the response rules to an already-typed result,
// e.g. one precomputed by the caller
func NormalizeResult(r domain.AIResult) domain.AIResult {
	return domain.AIResult{
		Summary:    NormalizeSummary(r.Summary),
		Tags:       NormalizeTags(r.Tags),
		Intent:     NormalizeIntent(r.Intent),
		NextAction: NormalizeNextAction(r.NextAction),
		TokensIn:   r.TokensIn,
		TokensOut:  r.TokensOut,
	}
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

func toInt(raw interface{}) int {
	switch v := raw.(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
