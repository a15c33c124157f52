package completor

import (
	"context"
	"fmt"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DefaultProviderTimeout bounds a candidate provider call when no explicit
// timeout was configured
const DefaultProviderTimeout = 2 * time.Second

// PoolRequest describes one candidate pool query: the command being
// completed, the parameter the cursor sits on, and the best-effort
// projection of everything already typed. Providers use FakeBound to narrow
// the pool by the other parameters' current values.
type PoolRequest struct {
	Command        string
	ParameterInUse CursorParameter
	FakeBound      *orderedmap.OrderedMap[string, string]
}

// PoolFunc produces the raw value pool for the parameter under completion.
// It may be expensive and must honor ctx cancellation; the engine bounds
// every call with a timeout and treats a timeout as an empty pool.
type PoolFunc func(ctx context.Context, req PoolRequest) ([]string, error)

type poolOutcome struct {
	values []string
	err    error
}

// collectPool invokes the provider under the engine's timeout. The result
// channel is buffered so an abandoned call can still deliver and let its
// goroutine exit.
func (e *Engine) collectPool(ctx context.Context, req PoolRequest) ([]string, error) {
	if e.provider == nil {
		return nil, nil
	}

	timeout := e.providerTimeout
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan poolOutcome, 1)
	go func() {
		values, err := e.provider(ctx, req)
		done <- poolOutcome{values: values, err: err}
	}()

	select {
	case outcome := <-done:
		return outcome.values, outcome.err
	case <-ctx.Done():
		return nil, fmt.Errorf(FmtErrorWithString, ErrProviderTimeout, req.ParameterInUse.Key())
	}
}
