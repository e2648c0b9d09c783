// Package universe resolves the set of tradable symbols the dashboard and
// fetch commands operate on. Sources are tried in order, so a network source
// can sit in front of a builtin list that always answers.
package universe

import (
	"context"

	"go.uber.org/zap"

	"github.com/quantlens/quantlens/internal/logger"
	"github.com/quantlens/quantlens/pkg/errors"
)

// Source produces a list of ticker symbols, each carrying its exchange suffix.
type Source interface {
	// Name identifies the source in logs.
	Name() string
	// Symbols returns the ticker list. An empty list is treated as a miss.
	Symbols(ctx context.Context) ([]string, error)
}

// Resolver tries sources in order and returns the first non-empty list.
type Resolver struct {
	sources []Source
	logger  *logger.Logger
}

// NewResolver creates a resolver over the given sources.
func NewResolver(log *logger.Logger, sources ...Source) *Resolver {
	return &Resolver{
		sources: sources,
		logger:  log,
	}
}

// DefaultResolver resolves the NIFTY 500 universe: the NSE index CSV first,
// falling back to a builtin large-cap list when the archive is unreachable.
func DefaultResolver(log *logger.Logger) *Resolver {
	return NewResolver(log, NewNSESource(), NewStaticSource())
}

// Resolve returns symbols from the first source that answers with a non-empty
// list.
func (r *Resolver) Resolve(ctx context.Context) ([]string, error) {
	if len(r.sources) == 0 {
		return nil, errors.New(errors.ErrCodeUniverseEmpty, "no universe sources configured")
	}

	for _, src := range r.sources {
		symbols, err := src.Symbols(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}

			r.logger.Warn("universe source failed, trying next",
				zap.String("source", src.Name()),
				zap.Error(err))

			continue
		}

		if len(symbols) == 0 {
			continue
		}

		return symbols, nil
	}

	return nil, errors.New(errors.ErrCodeUniverseEmpty, "no universe source returned symbols")
}
