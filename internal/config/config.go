// Package config loads the runtime-configurable resource bounds from the
// environment, falling back to the reference implementation's defaults.
package config

import (
	"github.com/caarlos0/env/v6"
	"github.com/yaflang/yafl/lang/codegen"
	"github.com/yaflang/yafl/lang/vm"
)

// Limits holds the env-configurable CODE_SIZE/STCK_SIZE bounds (spec.md §5).
type Limits struct {
	CodeSize  int `env:"YAFL_CODE_SIZE" envDefault:"999"`
	StackSize int `env:"YAFL_STCK_SIZE" envDefault:"999"`
}

// Load reads Limits from the environment, applying defaults for unset vars.
func Load() (Limits, error) {
	var l Limits
	if err := env.Parse(&l); err != nil {
		return Limits{}, err
	}
	return l, nil
}

// Defaults returns the reference implementation's bounds, used when no
// environment override is desired.
func Defaults() Limits {
	return Limits{CodeSize: codegen.DefaultCodeSize, StackSize: vm.DefaultStackSize}
}
