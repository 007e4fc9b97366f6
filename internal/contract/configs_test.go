package contract

import (
	"testing"

	"github.com/huangsam/whatsmygrade/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		input       *ConfigRawInput
		expectError string
	}{
		{
			name: "valid minimal config",
			input: &ConfigRawInput{
				InputPathStr: "course.grades",
				Precision:    2,
				Output:       "text",
			},
		},
		{
			name: "empty output defaults to text",
			input: &ConfigRawInput{
				InputPathStr: "course.grades",
				Precision:    1,
			},
		},
		{
			name: "invalid output",
			input: &ConfigRawInput{
				Precision: 2,
				Output:    "xml",
			},
			expectError: "invalid output format 'xml'",
		},
		{
			name: "parquet without output file",
			input: &ConfigRawInput{
				Precision: 2,
				Output:    "parquet",
			},
			expectError: "--output-file is required",
		},
		{
			name: "precision too high",
			input: &ConfigRawInput{
				Precision: 5,
				Output:    "json",
			},
			expectError: "precision must be between 1 and 4",
		},
		{
			name: "precision zero",
			input: &ConfigRawInput{
				Output: "json",
			},
			expectError: "precision must be between 1 and 4",
		},
		{
			name: "negative width",
			input: &ConfigRawInput{
				Precision: 2,
				Width:     -1,
			},
			expectError: "width cannot be negative",
		},
		{
			name: "invalid color",
			input: &ConfigRawInput{
				Precision: 2,
				Color:     "maybe",
			},
			expectError: "invalid --color value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := ProcessAndValidate(cfg, tt.input)
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input.InputPathStr, cfg.InputPath)
			assert.Equal(t, tt.input.Precision, cfg.Precision)
		})
	}
}

func TestProcessAndValidateFields(t *testing.T) {
	cfg := &Config{}
	input := &ConfigRawInput{
		InputPathStr: "fall.grades",
		Output:       " JSON ",
		OutputFile:   "out.json",
		Precision:    3,
		Width:        120,
		Debug:        true,
		Color:        "yes",
	}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, "fall.grades", cfg.InputPath)
	assert.Equal(t, schema.JSONOut, cfg.Output)
	assert.Equal(t, "out.json", cfg.OutputFile)
	assert.Equal(t, 3, cfg.Precision)
	assert.Equal(t, 120, cfg.Width)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, DefaultAddr, cfg.Addr)
}

func TestProcessAndValidateColors(t *testing.T) {
	tests := []struct {
		name     string
		color    string
		noColor  bool
		expected bool
	}{
		{"default", "", false, true},
		{"color no", "no", false, false},
		{"no-color flag wins", "yes", true, false},
		{"numeric", "1", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := ProcessAndValidate(cfg, &ConfigRawInput{Precision: 2, Color: tt.color, NoColor: tt.noColor})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.UseColors)
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{InputPath: "a.grades", Precision: 2, UseColors: true}
	clone := cfg.Clone()
	clone.UseColors = false
	clone.Precision = 4

	assert.True(t, cfg.UseColors)
	assert.Equal(t, 2, cfg.Precision)
	assert.Equal(t, "a.grades", clone.InputPath)
}
