// Package bolt is a file-backed provider on top of bbolt. Entries survive
// process restarts; validity is still decided by the cache's policy.
package bolt

import (
	"context"
	"errors"
	"time"

	bolt "go.etcd.io/bbolt"

	pr "github.com/unkn0wn-root/rtcache/provider"
)

const defaultBucket = "rtcache"

type Provider struct {
	db     *bolt.DB
	bucket []byte
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	// Path of the database file; created if missing.
	Path string
	// Bucket name; "" => "rtcache".
	Bucket string
	// OpenTimeout bounds waiting for the file lock; 0 => 1s.
	OpenTimeout time.Duration
}

// Open initializes or opens the database at cfg.Path.
func Open(cfg Config) (*Provider, error) {
	if cfg.Path == "" {
		return nil, errors.New("bolt provider: path is required")
	}
	timeout := cfg.OpenTimeout
	if timeout <= 0 {
		timeout = time.Second
	}
	db, err := bolt.Open(cfg.Path, 0o600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, err
	}
	bucket := []byte(defaultBucket)
	if cfg.Bucket != "" {
		bucket = []byte(cfg.Bucket)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Provider{db: db, bucket: bucket}, nil
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	var out []byte
	err := p.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(p.bucket).Get([]byte(key))
		if v != nil {
			// bolt memory is only valid inside the transaction
			out = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, out != nil, nil
}

func (p *Provider) Set(_ context.Context, key string, value []byte) (bool, error) {
	err := p.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(p.bucket).Put([]byte(key), value)
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	return p.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(p.bucket).Delete([]byte(key))
	})
}

func (p *Provider) Close(_ context.Context) error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}
