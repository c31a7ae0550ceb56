// Package config holds the engine limits. Defaults match the language
// reference; hosts may override them from a YAML document.
package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// DefaultMaxEvalDepth bounds the nesting depth of Eval calls so runaway user
// recursion cannot overflow the host stack.
const DefaultMaxEvalDepth = 10000

// DefaultStringRangeCap bounds lexicographic string-range generation.
const DefaultStringRangeCap = 10000

// DefaultDumpValueWidth truncates rendered values in failure dumps.
const DefaultDumpValueWidth = 120

// Options are the tunable engine limits.
type Options struct {
	MaxEvalDepth   int `yaml:"max_eval_depth"`
	StringRangeCap int `yaml:"string_range_cap"`
	DumpValueWidth int `yaml:"dump_value_width"`
}

// Default returns the reference limits.
func Default() Options {
	return Options{
		MaxEvalDepth:   DefaultMaxEvalDepth,
		StringRangeCap: DefaultStringRangeCap,
		DumpValueWidth: DefaultDumpValueWidth,
	}
}

// Load reads YAML overrides on top of the defaults. Absent keys keep their
// default values; non-positive values are rejected.
func Load(r io.Reader) (Options, error) {
	opts := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&opts); err != nil && err != io.EOF {
		return Options{}, fmt.Errorf("config: %w", err)
	}
	if opts.MaxEvalDepth <= 0 {
		return Options{}, fmt.Errorf("config: max_eval_depth must be positive, got %d", opts.MaxEvalDepth)
	}
	if opts.StringRangeCap <= 0 {
		return Options{}, fmt.Errorf("config: string_range_cap must be positive, got %d", opts.StringRangeCap)
	}
	if opts.DumpValueWidth <= 0 {
		return Options{}, fmt.Errorf("config: dump_value_width must be positive, got %d", opts.DumpValueWidth)
	}
	return opts, nil
}
