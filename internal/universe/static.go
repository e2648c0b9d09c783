package universe

import "context"

// builtinSymbols is a small large-cap list used when no index source is
// reachable. Keeps the dashboard usable offline.
var builtinSymbols = []string{
	"RELIANCE.NS", "TCS.NS", "INFY.NS", "HDFCBANK.NS", "ICICIBANK.NS",
	"HINDUNILVR.NS", "SBIN.NS", "BHARTIARTL.NS", "ITC.NS", "KOTAKBANK.NS",
}

// StaticSource serves a fixed symbol list. It never fails, so it belongs at
// the end of a resolver chain.
type StaticSource struct {
	symbols []string
}

// NewStaticSource creates a source over the builtin large-cap list.
func NewStaticSource() *StaticSource {
	return NewStaticSourceWithSymbols(builtinSymbols)
}

// NewStaticSourceWithSymbols creates a source over a caller-supplied list.
func NewStaticSourceWithSymbols(symbols []string) *StaticSource {
	return &StaticSource{symbols: symbols}
}

// Name implements Source.
func (s *StaticSource) Name() string {
	return "static"
}

// Symbols implements Source.
func (s *StaticSource) Symbols(ctx context.Context) ([]string, error) {
	out := make([]string, len(s.symbols))
	copy(out, s.symbols)

	return out, nil
}
