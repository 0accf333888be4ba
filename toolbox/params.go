package toolbox

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Default job option values: dmPaperSize 9 is A4, portrait, one copy,
// monochrome, auto-fit scaling.
const (
	defaultPaperSize   = "9"
	defaultScale       = "fit"
	defaultOrientation = "1"
	defaultCopies      = "1"
	defaultColor       = "1"
)

// JobOptions are the named print settings of a submission in their textual
// form. Empty fields fall back to the defaults above.
type JobOptions struct {
	PaperSize   string `json:"dm_paper_size"`
	Scale       string `json:"jp_scale"`
	Orientation string `json:"dm_orientation"`
	Copies      string `json:"dm_copies"`
	Color       string `json:"dm_color"`
}

func (o JobOptions) withDefaults() JobOptions {
	o.PaperSize = firstNonEmpty(o.PaperSize, defaultPaperSize)
	o.Scale = firstNonEmpty(o.Scale, defaultScale)
	o.Orientation = firstNonEmpty(o.Orientation, defaultOrientation)
	o.Copies = firstNonEmpty(o.Copies, defaultCopies)
	o.Color = firstNonEmpty(o.Color, defaultColor)
	return o
}

// buildJobParams converts the named options into the canonical parameter set
// and overlays the free-form overrides on top, value for value. The numeric
// options are structurally required by the service, so a conversion failure
// here is fatal; a malformed override block never is.
func buildJobParams(opts JobOptions, overrides string) (map[string]any, []string, error) {
	o := opts.withDefaults()

	params := make(map[string]any, 8)
	for _, field := range []struct {
		key, value string
	}{
		{"dmPaperSize", o.PaperSize},
		{"dmOrientation", o.Orientation},
		{"dmCopies", o.Copies},
		{"dmColor", o.Color},
	} {
		n, err := strconv.Atoi(strings.TrimSpace(field.value))
		if err != nil {
			return nil, nil, faultf(FaultValidation, "invalid %s value %q: must be an integer", field.key, field.value)
		}
		params[field.key] = n
	}
	params["jpScale"] = o.Scale

	extra, warnings := parseOverrides(overrides)
	for key, value := range extra {
		params[key] = value
	}

	return params, warnings, nil
}

// parseOverrides interprets the free-form override payload. It is tried as
// JSON first, then as a comma-separated key=value list; when neither applies
// the overrides are dropped and a warning is recorded, so a malformed block
// never aborts an otherwise-valid job.
func parseOverrides(raw string) (map[string]any, []string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
		return parsed, nil
	}

	warnings := []string{"override payload is not valid JSON: " + raw}
	if !strings.Contains(raw, "=") {
		warnings = append(warnings, "override payload dropped")
		return nil, warnings
	}

	pairs := make(map[string]any)
	for _, pair := range strings.Split(raw, ",") {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		pairs[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	return pairs, warnings
}
