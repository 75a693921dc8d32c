// Package normalize turns raw form input into numbers.
//
// Input from the client is free text (or a JSON number) per field. A missing,
// empty or unparseable value never fails: it is replaced by the field's default
// and the substitution is logged at debug level.
package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Form is one decoded stage object, field name to raw value.
type Form map[string]any

// ParseFloat parses a raw value into a finite number.
func ParseFloat(raw any) (float64, bool) {
	var f float64
	switch v := raw.(type) {
	case nil:
		return 0, false
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Normalizer applies field defaults and records every fallback.
type Normalizer struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Normalizer {
	return &Normalizer{log: log.With().Str("component", "normalize").Logger()}
}

// Number returns the field as a number, or def.
func (n *Normalizer) Number(form Form, field string, def float64) float64 {
	raw, present := form[field]
	if f, ok := ParseFloat(raw); ok {
		return f
	}
	n.fallback(field, raw, present).Float64("default", def).Msg("input fallback")
	return def
}

// Optional returns the field only when it holds a usable number.
func (n *Normalizer) Optional(form Form, field string) (float64, bool) {
	raw, present := form[field]
	if !present {
		return 0, false
	}
	f, ok := ParseFloat(raw)
	if !ok {
		n.fallback(field, raw, present).Msg("optional input ignored")
	}
	return f, ok
}

// Text returns a trimmed string field, or def when it is missing or blank.
func (n *Normalizer) Text(form Form, field, def string) string {
	raw, present := form[field]
	if s, ok := raw.(string); ok && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s)
	}
	n.fallback(field, raw, present).Str("default", def).Msg("input fallback")
	return def
}

func (n *Normalizer) fallback(field string, raw any, present bool) *zerolog.Event {
	return n.log.Debug().Str("field", field).Bool("present", present).Interface("raw", raw)
}

// Normalize maps every defaulted field to its parsed value or its default.
// Fields in raw without a default are ignored.
//
// Normalize is the stateless entry point for callers holding flat text
// fields, such as form values exported from the legacy client. It applies the
// same parsing rules as Normalizer.Number without logging; the calculators go
// through a Normalizer so that fallbacks are logged.
func Normalize(raw map[string]string, defaults map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(defaults))
	for field, def := range defaults {
		text, ok := raw[field]
		if !ok {
			out[field] = def
			continue
		}
		if f, ok := ParseFloat(text); ok {
			out[field] = f
		} else {
			out[field] = def
		}
	}
	return out
}
