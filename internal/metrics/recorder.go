package metrics

import "time"

// LookupResult enumerates documentation lookup outcomes for counters.
type LookupResult string

const (
	LookupCacheHit  LookupResult = "cache_hit"
	LookupResolved  LookupResult = "resolved"
	LookupMissing   LookupResult = "missing"
	LookupMalformed LookupResult = "malformed"
)

// EquationOutcome enumerates how an equation markup block was replaced.
type EquationOutcome string

const (
	EquationComment  EquationOutcome = "comment"
	EquationFragment EquationOutcome = "fragment"
	EquationDropped  EquationOutcome = "dropped"
)

// Recorder defines observability hooks for the documentation pipeline.
// Implementations may forward to Prometheus; NoopRecorder is the default.
type Recorder interface {
	IncLookup(profile string, result LookupResult)
	IncResolveTier(profile string, tier int)
	IncEquation(outcome EquationOutcome)
	ObserveDocumentDuration(d time.Duration)
	SetIndexSize(profile string, n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncLookup(string, LookupResult)        {}
func (NoopRecorder) IncResolveTier(string, int)            {}
func (NoopRecorder) IncEquation(EquationOutcome)           {}
func (NoopRecorder) ObserveDocumentDuration(time.Duration) {}
func (NoopRecorder) SetIndexSize(string, int)              {}
