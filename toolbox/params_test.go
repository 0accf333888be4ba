package toolbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildJobParams_defaults(t *testing.T) {
	params, warnings, err := buildJobParams(JobOptions{}, "")

	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, map[string]any{
		"dmPaperSize":   9,
		"jpScale":       "fit",
		"dmOrientation": 1,
		"dmCopies":      1,
		"dmColor":       1,
	}, params)
}

func TestBuildJobParams_numericConversion(t *testing.T) {
	opts := JobOptions{
		PaperSize:   "9",
		Orientation: "1",
		Copies:      "1",
		Color:       "1",
	}

	params, _, err := buildJobParams(opts, "")

	require.NoError(t, err)
	assert.Equal(t, 9, params["dmPaperSize"])
	assert.Equal(t, 1, params["dmOrientation"])
	assert.Equal(t, 1, params["dmCopies"])
	assert.Equal(t, 1, params["dmColor"])
}

func TestBuildJobParams_invalidNumericIsFatal(t *testing.T) {
	tests := []struct {
		name string
		opts JobOptions
	}{
		{name: "bad paper size", opts: JobOptions{PaperSize: "A4"}},
		{name: "bad copies", opts: JobOptions{Copies: "two"}},
		{name: "bad orientation", opts: JobOptions{Orientation: "portrait"}},
		{name: "bad color", opts: JobOptions{Color: "yes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := buildJobParams(tt.opts, "")

			var fault *Fault
			require.ErrorAs(t, err, &fault)
			assert.Equal(t, FaultValidation, fault.Kind)
			assert.Contains(t, fault.Msg, "must be an integer")
		})
	}
}

func TestBuildJobParams_jsonOverridesWin(t *testing.T) {
	params, warnings, err := buildJobParams(JobOptions{}, `{"dmCopies": 5, "dmDuplex": 2, "custom": "x"}`)

	require.NoError(t, err)
	assert.Empty(t, warnings)
	// overridden key replaced, unknown keys passed through, defaults kept
	assert.Equal(t, float64(5), params["dmCopies"])
	assert.Equal(t, float64(2), params["dmDuplex"])
	assert.Equal(t, "x", params["custom"])
	assert.Equal(t, 9, params["dmPaperSize"])
	assert.Equal(t, "fit", params["jpScale"])
}

func TestParseOverrides(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		want         map[string]any
		wantWarnings int
	}{
		{
			name: "empty",
			raw:  "",
			want: nil,
		},
		{
			name: "valid JSON",
			raw:  `{"dmDuplex": 1}`,
			want: map[string]any{"dmDuplex": float64(1)},
		},
		{
			name:         "key=value fallback with whitespace",
			raw:          " dmDuplex = 1 , jpAutoRotate=true ",
			want:         map[string]any{"dmDuplex": "1", "jpAutoRotate": "true"},
			wantWarnings: 1,
		},
		{
			name:         "pair without equals is skipped",
			raw:          "dmDuplex=1,oops,dmStaple=0",
			want:         map[string]any{"dmDuplex": "1", "dmStaple": "0"},
			wantWarnings: 1,
		},
		{
			name:         "garbage is dropped with warnings",
			raw:          "not json and not pairs",
			want:         nil,
			wantWarnings: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warnings := parseOverrides(tt.raw)

			assert.Equal(t, tt.want, got)
			assert.Len(t, warnings, tt.wantWarnings)
		})
	}
}

func TestBuildJobParams_malformedOverridesNeverFatal(t *testing.T) {
	params, warnings, err := buildJobParams(JobOptions{Copies: "3"}, "%%%%")

	require.NoError(t, err)
	assert.NotEmpty(t, warnings)
	assert.Equal(t, 3, params["dmCopies"])
}
