package ristretto

import (
	"context"
	"errors"
	"time"

	rc "github.com/dgraph-io/ristretto"

	pr "github.com/unkn0wn-root/rtcache/provider"
)

type Provider struct {
	c    *rc.Cache
	ttl  time.Duration
	wait bool
	cost func(key string, value []byte) int64
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
	// TTL applied to every Set; 0 => no expiry.
	TTL time.Duration
	// Cost of an entry; nil => len(value).
	Cost func(key string, value []byte) int64
	// Wait blocks each Set until the write is applied, so a Get right after Set hits.
	Wait bool
}

func New(cfg Config) (*Provider, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	p := &Provider{c: c, ttl: cfg.TTL, wait: cfg.Wait, cost: cfg.Cost}
	if p.cost == nil {
		p.cost = func(_ string, v []byte) int64 { return int64(len(v)) }
	}
	return p, nil
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := p.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	if b == nil {
		// drop unexpected entry shape
		p.c.Del(key)
		return nil, false, nil
	}
	return b, true, nil
}

// Set reports ok=false when ristretto's admission policy drops the write.
func (p *Provider) Set(_ context.Context, key string, value []byte) (bool, error) {
	ok := p.c.SetWithTTL(key, value, p.cost(key, value), p.ttl)
	if ok && p.wait {
		p.c.Wait()
	}
	return ok, nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	p.c.Del(key)
	return nil
}

// Flush blocks until buffered writes are applied.
func (p *Provider) Flush() { p.c.Wait() }

func (p *Provider) Close(_ context.Context) error {
	p.c.Wait()
	p.c.Close()
	return nil
}

// Metrics exposes ristretto's counters when Config.Metrics is set.
func (p *Provider) Metrics() *rc.Metrics { return p.c.Metrics }
