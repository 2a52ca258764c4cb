package rtcache

import (
	"time"

	"github.com/unkn0wn-root/rtcache/drive"
	"github.com/unkn0wn-root/rtcache/policy"
)

// Options configure a Cache.
// Only Drive and Policy are required; others have sensible defaults.
type Options struct {
	// Required
	Drive  drive.Drive   // default drive for translators without a mapping
	Policy policy.Policy // default policy for translators without a mapping

	// Per-kind overrides, keyed by translator.Translator.Kind(). Copied on New.
	Drives   map[string]drive.Drive
	Policies map[string]policy.Policy

	Logger Logger           // if nil, NopLogger is used
	Hooks  Hooks            // if nil, NopHooks is used
	Clock  func() time.Time // write-back timestamps; nil => time.Now
}

func New(opts Options) (*Cache, error) {
	return newCache(opts)
}

// CallOption adjusts a single Get/GetMany/Peek/Invalidate call.
type CallOption func(*call)

type call struct {
	identity    string
	hasIdentity bool
	drive       drive.Drive
	hasDrive    bool
	policy      policy.Policy
	hasPolicy   bool
}

// WithIdentity namespaces the call's keys, overriding a self-reported identity.
func WithIdentity(id string) CallOption {
	return func(c *call) { c.identity, c.hasIdentity = id, true }
}

// WithDrive overrides drive resolution for this call only. nil is a misuse.
func WithDrive(d drive.Drive) CallOption {
	return func(c *call) { c.drive, c.hasDrive = d, true }
}

// WithPolicy overrides policy resolution for this call only. nil is a misuse.
func WithPolicy(p policy.Policy) CallOption {
	return func(c *call) { c.policy, c.hasPolicy = p, true }
}
