package completor

import (
	"errors"
	"io"
	"time"

	"github.com/rohnedwards/completor/types"
)

// ConfigureEngineFunc is used to enable a fluent configuration of an Engine
type ConfigureEngineFunc func(engine *Engine, err *error)

// WithMetadataSource sets the source of command parameter descriptors
func WithMetadataSource(source MetadataSource) ConfigureEngineFunc {
	return func(engine *Engine, err *error) {
		engine.meta = source
	}
}

// WithTypeRegistry sets the registry used to resolve attached Owner.Member
// parameters
func WithTypeRegistry(registry *TypeRegistry) ConfigureEngineFunc {
	return func(engine *Engine, err *error) {
		engine.registry = registry
	}
}

// WithProvider sets the candidate pool provider
func WithProvider(provider PoolFunc) ConfigureEngineFunc {
	return func(engine *Engine, err *error) {
		engine.provider = provider
	}
}

// WithProviderTimeout bounds each provider call. The timeout must be
// positive.
func WithProviderTimeout(timeout time.Duration) ConfigureEngineFunc {
	return func(engine *Engine, err *error) {
		if timeout <= 0 {
			*err = errors.New("provider timeout must be positive")
			return
		}
		engine.providerTimeout = timeout
	}
}

// WithDebugWriter directs the engine's debug trace to w. Without it the
// engine is silent.
func WithDebugWriter(w io.Writer) ConfigureEngineFunc {
	return func(engine *Engine, err *error) {
		engine.debug = w
	}
}

// WithListDelimiterFunc sets the rune classifier used to split List-typed
// attached member values
func WithListDelimiterFunc(delimiterFunc types.ListDelimiterFunc) ConfigureEngineFunc {
	return func(engine *Engine, err *error) {
		engine.listFunc = delimiterFunc
	}
}
