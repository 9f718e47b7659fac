package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogoKey(t *testing.T) {
	assert.Equal(t, "logos/acme/abc.png", LogoKey("acme", "abc"))
	assert.NoError(t, validateKey(LogoKey("acme", "abc")))
}

func TestValidateKey(t *testing.T) {
	for _, key := range []string{"", "/abs", "a/../b", "a//b", `a\b`, "./a"} {
		assert.ErrorIs(t, validateKey(key), ErrInvalidKey, key)
	}
}

func TestDiskLogoStore(t *testing.T) {
	store, err := NewDiskLogoStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "logos/acme/1.png", []byte("png"), "image/png"))

	data, err := store.Get(ctx, "logos/acme/1.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)

	_, err = store.Get(ctx, "logos/acme/2.png")
	assert.ErrorIs(t, err, ErrLogoNotFound)

	require.NoError(t, store.Delete(ctx, "logos/acme/1.png"))
	_, err = store.Get(ctx, "logos/acme/1.png")
	assert.ErrorIs(t, err, ErrLogoNotFound)
	assert.NoError(t, store.Delete(ctx, "logos/acme/1.png"), "deleting a missing logo is not an error")
	assert.ErrorIs(t, store.Delete(ctx, "../escape.png"), ErrInvalidKey)

	err = store.Put(ctx, "../escape.png", []byte("x"), "")
	assert.ErrorIs(t, err, ErrInvalidKey)

	var storageErr *StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "put_logo", storageErr.Op)
}

type countingStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	gets    int
	deletes int
	fails   bool
}

func (s *countingStore) Put(_ context.Context, key string, data []byte, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fails {
		return errors.New("backend down")
	}
	s.data[key] = data
	return nil
}

func (s *countingStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	d, ok := s.data[key]
	if !ok {
		return nil, ErrLogoNotFound
	}
	return d, nil
}

func (s *countingStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes++
	delete(s.data, key)
	return nil
}

func TestCachedLogoStore_ServesFromCacheUntilExpiry(t *testing.T) {
	backend := &countingStore{data: map[string][]byte{"k": []byte("v1")}}
	cache := NewCachedLogoStore(backend, time.Minute)
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return clock }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		data, err := cache.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v1"), data)
	}
	assert.Equal(t, 1, backend.gets)

	backend.data["k"] = []byte("v2")
	clock = clock.Add(2 * time.Minute)

	data, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), data)
	assert.Equal(t, 2, backend.gets)
}

func TestCachedLogoStore_PutRefreshesEntry(t *testing.T) {
	backend := &countingStore{data: map[string][]byte{}}
	cache := NewCachedLogoStore(backend, 0)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "k", []byte("new"), "image/png"))

	data, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), data)
	assert.Equal(t, 0, backend.gets)
}

func TestCachedLogoStore_DeleteEvicts(t *testing.T) {
	backend := &countingStore{data: map[string][]byte{}}
	cache := NewCachedLogoStore(backend, time.Hour)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "k", []byte("v"), "image/png"))
	require.NoError(t, cache.Delete(ctx, "k"))
	assert.Equal(t, 1, backend.deletes)

	_, err := cache.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrLogoNotFound)
}

func TestCachedLogoStore_ErrorsAreNotCached(t *testing.T) {
	backend := &countingStore{data: map[string][]byte{}}
	cache := NewCachedLogoStore(backend, time.Minute)
	ctx := context.Background()

	_, err := cache.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrLogoNotFound)
	_, err = cache.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrLogoNotFound)
	assert.Equal(t, 2, backend.gets)

	backend.fails = true
	assert.Error(t, cache.Put(ctx, "k", []byte("x"), ""))
	_, err = cache.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrLogoNotFound)
}

// fakeS3 serves path-style PUT, GET and DELETE object requests
func fakeS3(t *testing.T) *httptest.Server {
	t.Helper()
	var mu sync.Mutex
	objects := map[string][]byte{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		key := strings.TrimPrefix(r.URL.Path, "/")
		switch r.Method {
		case http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			objects[key] = body
			w.WriteHeader(http.StatusOK)
		case http.MethodGet:
			body, ok := objects[key]
			if !ok {
				w.Header().Set("Content-Type", "application/xml")
				w.WriteHeader(http.StatusNotFound)
				_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)
				return
			}
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(body)
		case http.MethodDelete:
			delete(objects, key)
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestS3LogoStore(t *testing.T) {
	srv := fakeS3(t)
	store, err := NewS3LogoStore(&S3Config{
		Endpoint:        srv.URL,
		AccessKeyID:     "id",
		AccessKeySecret: "secret",
		Bucket:          "logos",
		Region:          "us-east-1",
	})
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "logos/acme/1.png", []byte("png-bytes"), "image/png"))

	data, err := store.Get(ctx, "logos/acme/1.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	_, err = store.Get(ctx, "logos/acme/missing.png")
	assert.ErrorIs(t, err, ErrLogoNotFound)

	require.NoError(t, store.Delete(ctx, "logos/acme/1.png"))
	_, err = store.Get(ctx, "logos/acme/1.png")
	assert.ErrorIs(t, err, ErrLogoNotFound)
}

func TestNewS3LogoStore_IncompleteConfig(t *testing.T) {
	_, err := NewS3LogoStore(&S3Config{Bucket: "b"})
	assert.Error(t, err)

	_, err = NewS3LogoStore(&S3Config{AccessKeyID: "id", AccessKeySecret: "s"})
	assert.Error(t, err)
}
