// Package config builds rtcache.Options from YAML.
//
//	default:
//	  backend: ristretto
//	  serializer: msgpack
//	  ristretto: {max_cost: 67108864}
//	policy:
//	  max_age: 5m
//	drives:
//	  profile: {backend: redis, serializer: json, redis: {addr: "localhost:6379", prefix: "app:"}}
//	policies:
//	  profile: {mode: always}
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"

	"github.com/unkn0wn-root/rtcache"
	"github.com/unkn0wn-root/rtcache/drive"
	"github.com/unkn0wn-root/rtcache/policy"
	"github.com/unkn0wn-root/rtcache/provider"
	bcp "github.com/unkn0wn-root/rtcache/provider/bigcache"
	boltp "github.com/unkn0wn-root/rtcache/provider/bolt"
	redisp "github.com/unkn0wn-root/rtcache/provider/redis"
	rp "github.com/unkn0wn-root/rtcache/provider/ristretto"
	"github.com/unkn0wn-root/rtcache/serializer"
	"github.com/unkn0wn-root/rtcache/storage"
	"github.com/unkn0wn-root/rtcache/storage/gocache"
)

var (
	ErrUnknownBackend    = errors.New("config: unknown backend")
	ErrUnknownSerializer = errors.New("config: unknown serializer")
	ErrUnknownMode       = errors.New("config: unknown policy mode")
)

// Backends.
const (
	BackendMemory    = "memory"
	BackendGoCache   = "gocache"
	BackendRistretto = "ristretto"
	BackendBigCache  = "bigcache"
	BackendRedis     = "redis"
	BackendBolt      = "bolt"
)

// Policy modes.
const (
	ModeWindow = "window"
	ModeAlways = "always"
	ModeNever  = "never"
)

type Config struct {
	Default  DriveConfig             `yaml:"default"`
	Policy   PolicyConfig            `yaml:"policy"`
	Drives   map[string]DriveConfig  `yaml:"drives"`
	Policies map[string]PolicyConfig `yaml:"policies"`
}

// DriveConfig selects a storage backend. Byte backends (ristretto, bigcache,
// redis, bolt) also need a serializer; memory and gocache keep values as-is.
type DriveConfig struct {
	Backend    string `yaml:"backend"`    // "" => memory
	Serializer string `yaml:"serializer"` // json | msgpack | cbor | protobuf; "" => json
	MaxDecode  int    `yaml:"max_decode"` // reject stored payloads above this size; 0 = unlimited

	GoCache   gocache.Config  `yaml:"gocache"`
	Ristretto RistrettoConfig `yaml:"ristretto"`
	BigCache  BigCacheConfig  `yaml:"bigcache"`
	Redis     RedisConfig     `yaml:"redis"`
	Bolt      BoltConfig      `yaml:"bolt"`
}

type RistrettoConfig struct {
	NumCounters int64         `yaml:"num_counters"`
	MaxCost     int64         `yaml:"max_cost"`
	BufferItems int64         `yaml:"buffer_items"`
	TTL         time.Duration `yaml:"ttl"`
	Metrics     bool          `yaml:"metrics"`
}

type BigCacheConfig struct {
	LifeWindow         time.Duration `yaml:"life_window"`
	CleanWindow        time.Duration `yaml:"clean_window"`
	MaxEntriesInWindow int           `yaml:"max_entries_in_window"`
	MaxEntrySize       int           `yaml:"max_entry_size"`
	HardMaxCacheSizeMB int           `yaml:"hard_max_cache_size_mb"`
}

// RedisConfig.Addr is a single address or a comma-separated list (cluster / sentinel).
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Username string        `yaml:"username"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

type BoltConfig struct {
	Path        string        `yaml:"path"`
	Bucket      string        `yaml:"bucket"`
	OpenTimeout time.Duration `yaml:"open_timeout"`
}

type PolicyConfig struct {
	Mode   string        `yaml:"mode"`    // "" => window
	MaxAge time.Duration `yaml:"max_age"` // window only; 0 => rtcache.DefaultMaxAge
}

// Load reads and parses a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	return &cfg, nil
}

// Options builds the drives and policies. Identical drive configurations
// share one drive. On error every drive already built is closed.
func (c *Config) Options(logger rtcache.Logger) (rtcache.Options, error) {
	b := builder{built: make(map[DriveConfig]drive.Drive)}

	opts := rtcache.Options{Logger: logger}
	var err error
	if opts.Drive, err = b.drive(c.Default); err != nil {
		b.close()
		return rtcache.Options{}, fmt.Errorf("config: default drive: %w", err)
	}
	if opts.Policy, err = buildPolicy(c.Policy); err != nil {
		b.close()
		return rtcache.Options{}, fmt.Errorf("config: default policy: %w", err)
	}

	if len(c.Drives) > 0 {
		opts.Drives = make(map[string]drive.Drive, len(c.Drives))
		for kind, dc := range c.Drives {
			d, err := b.drive(dc)
			if err != nil {
				b.close()
				return rtcache.Options{}, fmt.Errorf("config: drive %q: %w", kind, err)
			}
			opts.Drives[kind] = d
		}
	}
	if len(c.Policies) > 0 {
		opts.Policies = make(map[string]policy.Policy, len(c.Policies))
		for kind, pc := range c.Policies {
			p, err := buildPolicy(pc)
			if err != nil {
				b.close()
				return rtcache.Options{}, fmt.Errorf("config: policy %q: %w", kind, err)
			}
			opts.Policies[kind] = p
		}
	}
	return opts, nil
}

// New is Load + Options + rtcache.New.
func New(path string, logger rtcache.Logger) (*rtcache.Cache, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.Options(logger)
	if err != nil {
		return nil, err
	}
	return rtcache.New(opts)
}

type builder struct {
	built map[DriveConfig]drive.Drive
}

func (b *builder) drive(dc DriveConfig) (drive.Drive, error) {
	if d, ok := b.built[dc]; ok {
		return d, nil
	}
	d, err := buildDrive(dc)
	if err != nil {
		return nil, err
	}
	b.built[dc] = d
	return d, nil
}

func (b *builder) close() {
	type closer interface {
		Close(context.Context) error
	}
	for _, d := range b.built {
		if cl, ok := d.(closer); ok {
			_ = cl.Close(context.Background())
		}
	}
}

func buildDrive(dc DriveConfig) (drive.Drive, error) {
	switch dc.Backend {
	case "", BackendMemory:
		return drive.Memory(), nil
	case BackendGoCache:
		return drive.New[any](gocache.New(dc.GoCache), serializer.Identity{}), nil
	}

	ser, err := buildSerializer(dc.Serializer, dc.MaxDecode)
	if err != nil {
		return nil, err
	}
	p, err := buildProvider(dc)
	if err != nil {
		return nil, err
	}
	return drive.New[[]byte](storage.NewFramed(p), ser), nil
}

func buildProvider(dc DriveConfig) (provider.Provider, error) {
	switch dc.Backend {
	case BackendRistretto:
		r := dc.Ristretto
		return rp.New(rp.Config{
			NumCounters: r.NumCounters,
			MaxCost:     r.MaxCost,
			BufferItems: r.BufferItems,
			TTL:         r.TTL,
			Metrics:     r.Metrics,
			Wait:        true,
		})
	case BackendBigCache:
		bc := dc.BigCache
		return bcp.New(bcp.Config{
			LifeWindow:         bc.LifeWindow,
			CleanWindow:        bc.CleanWindow,
			MaxEntriesInWindow: bc.MaxEntriesInWindow,
			MaxEntrySize:       bc.MaxEntrySize,
			HardMaxCacheSizeMB: bc.HardMaxCacheSizeMB,
		})
	case BackendRedis:
		rc := dc.Redis
		if rc.Addr == "" {
			return nil, errors.New("redis: addr is required")
		}
		client := goredis.NewUniversalClient(&goredis.UniversalOptions{
			Addrs:    strings.Split(rc.Addr, ","),
			Username: rc.Username,
			Password: rc.Password,
			DB:       rc.DB,
		})
		return redisp.New(redisp.Config{
			Client:      client,
			Prefix:      rc.Prefix,
			TTL:         rc.TTL,
			CloseClient: true,
		})
	case BackendBolt:
		return boltp.Open(boltp.Config{
			Path:        dc.Bolt.Path,
			Bucket:      dc.Bolt.Bucket,
			OpenTimeout: dc.Bolt.OpenTimeout,
		})
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, dc.Backend)
}

func buildSerializer(name string, maxDecode int) (serializer.Serializer[[]byte], error) {
	var s serializer.Serializer[[]byte]
	switch name {
	case "", "json":
		s = serializer.JSON{}
	case "msgpack":
		s = serializer.Msgpack{}
	case "cbor":
		c, err := serializer.NewCBOR(true)
		if err != nil {
			return nil, err
		}
		s = c
	case "protobuf":
		s = serializer.Protobuf{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSerializer, name)
	}
	if maxDecode > 0 {
		s = serializer.Limit{Inner: s, MaxDecode: maxDecode}
	}
	return s, nil
}

func buildPolicy(pc PolicyConfig) (policy.Policy, error) {
	switch pc.Mode {
	case "", ModeWindow:
		maxAge := pc.MaxAge
		if maxAge <= 0 {
			maxAge = rtcache.DefaultMaxAge
		}
		return policy.NewWindow(maxAge), nil
	case ModeAlways:
		return policy.Always, nil
	case ModeNever:
		return policy.Never, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMode, pc.Mode)
}
