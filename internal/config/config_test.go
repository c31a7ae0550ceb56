package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	opts := Default()
	assert.Equal(t, DefaultMaxEvalDepth, opts.MaxEvalDepth)
	assert.Equal(t, DefaultStringRangeCap, opts.StringRangeCap)
	assert.Equal(t, DefaultDumpValueWidth, opts.DumpValueWidth)
}

func TestLoadOverrides(t *testing.T) {
	opts, err := Load(strings.NewReader("max_eval_depth: 500\nstring_range_cap: 100\n"))
	require.NoError(t, err)
	assert.Equal(t, 500, opts.MaxEvalDepth)
	assert.Equal(t, 100, opts.StringRangeCap)
	// Absent keys keep their defaults.
	assert.Equal(t, DefaultDumpValueWidth, opts.DumpValueWidth)
}

func TestLoadEmptyKeepsDefaults(t *testing.T) {
	opts, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), opts)
}

func TestLoadRejectsNonPositive(t *testing.T) {
	_, err := Load(strings.NewReader("max_eval_depth: 0\n"))
	require.Error(t, err)

	_, err = Load(strings.NewReader("string_range_cap: -1\n"))
	require.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load(strings.NewReader("max_eval_depth: [oops\n"))
	require.Error(t, err)
}
