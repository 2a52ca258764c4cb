package rtcache

// Probe stages reported through Hooks.ProbeFailed.
const (
	StageContains = "contains"
	StageGet      = "get"
	StageDecode   = "decode"
	StageValidate = "validate"
)

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The cache calls them on hot paths.
type Hooks interface {
	// Probing a stored entry failed; the key was recomputed.
	// stage ∈ {"contains", "get", "decode", "validate"}
	ProbeFailed(storageKey, stage string, err error)

	// A stored entry was rejected by the policy.
	Stale(storageKey string)

	// The translator was invoked for refreshed of requested keys.
	Refreshed(identity string, requested, refreshed int)

	// The translator failed; the error was returned to the caller.
	TranslateFailed(identity string, keys int, err error)

	// Writing a fresh value back failed; the value was returned uncached.
	WriteBackFailed(storageKey string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) ProbeFailed(string, string, error)  {}
func (NopHooks) Stale(string)                       {}
func (NopHooks) Refreshed(string, int, int)         {}
func (NopHooks) TranslateFailed(string, int, error) {}
func (NopHooks) WriteBackFailed(string, error)      {}
