package db

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testOpts = Options{
	MaxOpenConns:    4,
	MaxIdleConns:    2,
	ConnMaxLifetime: time.Minute,
	ConnMaxIdleTime: time.Minute,
}

func TestPool_GetIsLazyAndShared(t *testing.T) {
	// Nothing listens on this port; opening the handle must not dial.
	p := NewPool("postgres://u:p@127.0.0.1:1/notes?sslmode=disable", testOpts)
	t.Cleanup(func() { _ = p.Close() })

	require.Nil(t, p.db.Load())

	first, err := p.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := p.Get(context.Background())
	require.NoError(t, err)
	require.Same(t, first, second)
	require.Equal(t, 4, first.Stats().MaxOpenConnections)
}

func TestPool_ConcurrentFirstCallsPublishOneHandle(t *testing.T) {
	p := NewPool("postgres://u:p@127.0.0.1:1/notes?sslmode=disable", testOpts)
	t.Cleanup(func() { _ = p.Close() })

	const n = 16
	var wg sync.WaitGroup
	got := make(chan *sql.DB, n)
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			db, err := p.Get(context.Background())
			errs <- err
			got <- db
		}()
	}
	wg.Wait()
	close(got)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	want := p.db.Load()
	for db := range got {
		require.Same(t, want, db)
	}
}

func TestPool_BadURLIsNotCached(t *testing.T) {
	p := NewPool("postgres://u:p@localhost:5432/notes?sslmode=bogus", testOpts)

	_, err := p.Get(context.Background())
	require.Error(t, err)
	require.Nil(t, p.db.Load())

	_, err = p.Get(context.Background())
	require.Error(t, err)
}

func TestPool_PublishKeepsFirstHandle(t *testing.T) {
	p := NewPool("postgres://u:p@127.0.0.1:1/notes?sslmode=disable", testOpts)
	t.Cleanup(func() { _ = p.Close() })

	first, err := p.open()
	require.NoError(t, err)
	require.Same(t, first, p.publish(first))

	second, err := p.open()
	require.NoError(t, err)
	require.Same(t, first, p.publish(second))
	require.ErrorContains(t, second.Ping(), "database is closed")
}

func TestPool_GetAfterCloseNeverReturnsNil(t *testing.T) {
	p := NewPool("postgres://u:p@127.0.0.1:1/notes?sslmode=disable", testOpts)
	t.Cleanup(func() { _ = p.Close() })

	var wg sync.WaitGroup
	handles := make(chan *sql.DB, 64)
	errs := make(chan error, 64)
	for i := 0; i < 32; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			db, err := p.Get(context.Background())
			errs <- err
			handles <- db
		}()
		go func() {
			defer wg.Done()
			_ = p.Close()
		}()
	}
	wg.Wait()
	close(handles)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	for db := range handles {
		require.NotNil(t, db)
	}
}

func TestPool_CloseWithoutOpen(t *testing.T) {
	p := NewPool("postgres://localhost/notes", testOpts)
	require.NoError(t, p.Close())
}

func TestConnConfig_RelaxesCertificateChecks(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantTLS bool
	}{
		{"verify-full", "postgres://u:p@db.example.com:5432/notes?sslmode=verify-full", true},
		{"require", "postgres://u:p@db.example.com:5432/notes?sslmode=require", true},
		{"prefer", "postgres://u:p@db.example.com:5432/notes?sslmode=prefer", true},
		{"disable", "postgres://u:p@db.example.com:5432/notes?sslmode=disable", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := connConfig(tt.url)
			require.NoError(t, err)

			if !tt.wantTLS {
				require.Nil(t, cfg.TLSConfig)
				return
			}
			require.NotNil(t, cfg.TLSConfig)
			require.True(t, cfg.TLSConfig.InsecureSkipVerify)
			require.Nil(t, cfg.TLSConfig.VerifyPeerCertificate)
			for _, fb := range cfg.Fallbacks {
				if fb.TLSConfig != nil {
					require.True(t, fb.TLSConfig.InsecureSkipVerify)
				}
			}
		})
	}
}
