package download

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fyne.io/fyne/v2"
)

func TestNewService(t *testing.T) {
	service := NewService("http://example.com/", nil)

	if service.baseURL != "http://example.com" {
		t.Errorf("Expected baseURL to be trimmed, got '%s'", service.baseURL)
	}
	if cap(service.sem) != DefaultMaxParallel {
		t.Errorf("Expected %d parallel slots, got %d", DefaultMaxParallel, cap(service.sem))
	}
}

func TestFetchDataURI(t *testing.T) {
	service := NewService("http://unused", nil)

	res, err := service.Fetch(context.Background(), "data:image/png;base64,SGVsbG8=")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if string(res.Content()) != "Hello" {
		t.Errorf("Expected decoded content, got %q", res.Content())
	}
	if !strings.HasPrefix(res.Name(), ResourcePrefix) {
		t.Errorf("Expected resource name prefix, got %s", res.Name())
	}
}

func TestFetchBareBase64(t *testing.T) {
	service := NewService("http://unused", nil)

	res, err := service.Fetch(context.Background(), "SGVsbG8=")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if string(res.Content()) != "Hello" {
		t.Errorf("Expected decoded content, got %q", res.Content())
	}
}

func TestFetchRemoteUsesBypassHeaderAndCache(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.Header.Get("ngrok-skip-browser-warning") != "true" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		if r.URL.Path != "/uploads/a.jpg" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("JPEG"))
	}))
	defer server.Close()

	service := NewService(server.URL, server.Client())

	for i := 0; i < 3; i++ {
		res, err := service.Fetch(context.Background(), "/uploads/a.jpg")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !bytes.Equal(res.Content(), []byte("JPEG")) {
			t.Errorf("Expected JPEG content, got %q", res.Content())
		}
	}

	if atomic.LoadInt32(&hits) != 1 {
		t.Errorf("Expected 1 request, got %d", hits)
	}
	if _, ok := service.Cached("/uploads/a.jpg"); !ok {
		t.Error("Expected image to be cached")
	}
}

func TestFetchRemoteError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	service := NewService(server.URL, server.Client())
	if _, err := service.Fetch(context.Background(), "uploads/missing.jpg"); err == nil {
		t.Error("Expected error for 404")
	}
	if _, ok := service.Cached("uploads/missing.jpg"); ok {
		t.Error("Failed fetches should not be cached")
	}
}

func TestFetchDeduplicatesConcurrentRequests(t *testing.T) {
	var hits int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		<-release
		_, _ = w.Write([]byte("X"))
	}))
	defer server.Close()

	service := NewService(server.URL, server.Client())

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := service.Fetch(context.Background(), "uploads/x.jpg"); err != nil {
				t.Errorf("Fetch() error = %v", err)
			}
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if atomic.LoadInt32(&hits) != 1 {
		t.Errorf("Expected 1 request, got %d", hits)
	}
}

func TestCacheEviction(t *testing.T) {
	service := NewService("http://unused", nil)
	service.maxCache = 2

	for _, ref := range []string{"QQ==", "Qg==", "Qw=="} {
		if _, err := service.Fetch(context.Background(), ref); err != nil {
			t.Fatal(err)
		}
	}

	if _, ok := service.Cached("QQ=="); ok {
		t.Error("Oldest entry should be evicted")
	}
	if _, ok := service.Cached("Qw=="); !ok {
		t.Error("Newest entry should be cached")
	}
}

func TestFetchAsyncCallsBack(t *testing.T) {
	service := NewService("http://unused", nil)

	done := make(chan fyne.Resource, 1)
	service.SetUpdateCallback(func(ref string, res fyne.Resource, err error) {
		if err != nil {
			t.Errorf("callback error = %v", err)
		}
		done <- res
	})

	service.FetchAsync("data:image/png;base64,SGk=")
	select {
	case res := <-done:
		if string(res.Content()) != "Hi" {
			t.Errorf("Expected Hi, got %q", res.Content())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("callback not called")
	}
}

func TestFetchEmptyRef(t *testing.T) {
	service := NewService("http://unused", nil)
	if _, err := service.Fetch(context.Background(), ""); err != ErrEmptyRef {
		t.Errorf("Expected ErrEmptyRef, got %v", err)
	}
}

func TestSetMaxParallelDownloads(t *testing.T) {
	service := NewService("http://unused", nil)
	service.SetMaxParallelDownloads(0)
	if cap(service.sem) != 1 {
		t.Errorf("Expected clamp to 1, got %d", cap(service.sem))
	}
}
