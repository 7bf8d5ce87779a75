//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/myteklab/CircuitSim/internal/core/sandbox"
)

func ProvideSandbox() *sandbox.Sandbox {
	wire.Build(provideOptions, sandbox.New)
	return nil
}

func provideOptions() sandbox.Options {
	return sandbox.Options{}
}
