package rtcache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/unkn0wn-root/rtcache/drive"
	"github.com/unkn0wn-root/rtcache/internal/util"
	"github.com/unkn0wn-root/rtcache/policy"
)

// Cache resolves drives and policies for translators and runs fetches.
// It is safe for concurrent use; configuration changes swap an immutable
// snapshot and never affect a fetch already in flight.
type Cache struct {
	res   atomic.Pointer[resolution]
	log   Logger
	hooks Hooks
	now   func() time.Time
}

type resolution struct {
	drive    drive.Drive
	policy   policy.Policy
	drives   map[string]drive.Drive
	policies map[string]policy.Policy
}

func newCache(opts Options) (*Cache, error) {
	if opts.Drive == nil {
		return nil, ErrNoDrive
	}
	if opts.Policy == nil {
		return nil, ErrNoPolicy
	}

	c := &Cache{}
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	c.now = opts.Clock
	if c.now == nil {
		c.now = time.Now
	}

	c.res.Store(&resolution{
		drive:    opts.Drive,
		policy:   opts.Policy,
		drives:   copyMap(opts.Drives),
		policies: copyMap(opts.Policies),
	})
	return c, nil
}

// SetDefaultDrive replaces the fallback drive.
func (c *Cache) SetDefaultDrive(d drive.Drive) error {
	if d == nil {
		return ErrNoDrive
	}
	c.update(func(r *resolution) { r.drive = d })
	c.log.Info("default drive replaced", Fields{"drive": typeName(d)})
	return nil
}

// SetDefaultPolicy replaces the fallback policy.
func (c *Cache) SetDefaultPolicy(p policy.Policy) error {
	if p == nil {
		return ErrNoPolicy
	}
	c.update(func(r *resolution) { r.policy = p })
	c.log.Info("default policy replaced", Fields{"policy": typeName(p)})
	return nil
}

// SetDrives replaces the whole kind -> drive mapping. m is copied; nil entries are ignored.
func (c *Cache) SetDrives(m map[string]drive.Drive) {
	cp := copyMap(m)
	c.update(func(r *resolution) { r.drives = cp })
	c.log.Info("drive mapping replaced", Fields{"kinds": len(cp)})
}

// SetPolicies replaces the whole kind -> policy mapping. m is copied; nil entries are ignored.
func (c *Cache) SetPolicies(m map[string]policy.Policy) {
	cp := copyMap(m)
	c.update(func(r *resolution) { r.policies = cp })
	c.log.Info("policy mapping replaced", Fields{"kinds": len(cp)})
}

// DriveFor reports the drive a translator of this kind resolves to.
func (c *Cache) DriveFor(kind string) drive.Drive {
	return c.res.Load().driveFor(kind)
}

// PolicyFor reports the policy a translator of this kind resolves to.
func (c *Cache) PolicyFor(kind string) policy.Policy {
	return c.res.Load().policyFor(kind)
}

func (c *Cache) update(fn func(*resolution)) {
	for {
		old := c.res.Load()
		next := *old
		fn(&next)
		if c.res.CompareAndSwap(old, &next) {
			return
		}
	}
}

func (r *resolution) driveFor(kind string) drive.Drive {
	if d, ok := r.drives[kind]; ok {
		return d
	}
	return r.drive
}

func (r *resolution) policyFor(kind string) policy.Policy {
	if p, ok := r.policies[kind]; ok {
		return p
	}
	return r.policy
}

// bound is a fully resolved call.
type bound struct {
	identity string
	drive    drive.Drive
	policy   policy.Policy
}

func (c *Cache) bind(kind string, selfID string, hasSelfID bool, opts []CallOption) (bound, error) {
	var cl call
	for _, o := range opts {
		o(&cl)
	}
	r := c.res.Load()

	b := bound{identity: selfID}
	if cl.hasIdentity {
		b.identity = cl.identity
	} else if !hasSelfID {
		return bound{}, ErrNoIdentity
	}

	if cl.hasDrive {
		if cl.drive == nil {
			return bound{}, ErrNoDrive
		}
		b.drive = cl.drive
	} else {
		b.drive = r.driveFor(kind)
	}

	if cl.hasPolicy {
		if cl.policy == nil {
			return bound{}, ErrNoPolicy
		}
		b.policy = cl.policy
	} else {
		b.policy = r.policyFor(kind)
	}
	return b, nil
}

// CompositeKey is the drive key for a raw key under identity.
func CompositeKey(key, identity string) string {
	return util.Composite(key, identity)
}

// Close closes every distinct drive known to the cache that has a
// Close(context.Context) error method. The cache must not be used afterwards.
func (c *Cache) Close(ctx context.Context) error {
	type closer interface {
		Close(context.Context) error
	}
	r := c.res.Load()
	all := make([]drive.Drive, 0, len(r.drives)+1)
	all = append(all, r.drive)
	for _, d := range r.drives {
		all = append(all, d)
	}

	var first error
	closed := make([]drive.Drive, 0, len(all))
	for _, d := range all {
		if containsDrive(closed, d) {
			continue
		}
		closed = append(closed, d)
		if cl, ok := d.(closer); ok {
			if err := cl.Close(ctx); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}

func containsDrive(ds []drive.Drive, d drive.Drive) (found bool) {
	// comparing interfaces holding uncomparable values panics
	defer func() {
		if recover() != nil {
			found = false
		}
	}()
	for _, x := range ds {
		if x == d {
			return true
		}
	}
	return false
}

func typeName(v any) string { return fmt.Sprintf("%T", v) }

func copyMap[V comparable](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	var zero V
	for k, v := range m {
		if v != zero {
			out[k] = v
		}
	}
	return out
}
