// Package rtcache implements a read-through cache core. Callers ask for values
// by key through a translator (the expensive key -> value computation); the
// cache serves valid stored entries and recomputes only what is missing or
// invalid, in one translator call per request, writing fresh values back.
//
// Components:
//   - Translator[T]: value producer with a single-key path, a batch path or
//     both, optionally self-identifying (package translator).
//   - Drive: type-erased entry store addressed by composite key (package drive),
//     usually a storage.Storage[S] plus a serializer.Serializer[S].
//   - Policy: validity predicate over stored entries (package policy).
//
// Keys:
//
//	<rawKey><identity>  - plain concatenation, no separator
//
// Two translators sharing an identity share cached entries; different
// identities never collide unless one raw key ends with the other's identity
// ("oneident"+"" == "one"+"ident").
//
// Resolution: per-call WithDrive/WithPolicy, else the mapping registered for
// the translator's kind, else the cache default. Drive and policy resolve
// independently.
//
// Failures of the drive or policy never fail a read: probe errors mean
// recompute, write-back errors mean the value is returned uncached. Translator
// errors are returned to the caller.
//
//	c, _ := rtcache.New(rtcache.Options{Drive: drive.Memory(), Policy: policy.NewWindow(time.Minute)})
//	sizes, err := rtcache.GetMany(ctx, c, []string{"a", "bb"}, translator.Batch(lookupSizes).WithIdentity("#size"))
package rtcache
