package download

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"github.com/zeebo/blake3"

	"github.com/ytget/scrolly/internal/api"
)

// Limits
const (
	DefaultMaxParallel  = 4
	DefaultCacheEntries = 128
	MaxImageBytes       = 16 << 20
	ResourcePrefix      = "img-"
)

// ErrEmptyRef is returned for an empty image reference
var ErrEmptyRef = errors.New("empty image reference")

type call struct {
	done chan struct{}
	res  fyne.Resource
	err  error
}

// Service handles image download operations
type Service struct {
	baseURL    string
	httpClient *http.Client

	mu       sync.Mutex
	cache    map[string]fyne.Resource
	order    []string
	maxCache int
	inflight map[string]*call
	sem      chan struct{}

	onUpdate func(ref string, res fyne.Resource, err error) // callback for UI updates
}

// NewService creates a new download service resolving relative references
// against baseURL.
func NewService(baseURL string, httpClient *http.Client) *Service {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Service{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		cache:      make(map[string]fyne.Resource),
		maxCache:   DefaultCacheEntries,
		inflight:   make(map[string]*call),
		sem:        make(chan struct{}, DefaultMaxParallel),
	}
}

// SetUpdateCallback sets the callback invoked when an async fetch finishes
func (s *Service) SetUpdateCallback(callback func(ref string, res fyne.Resource, err error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = callback
}

// SetMaxParallelDownloads sets the maximum number of parallel downloads.
// Fetches already waiting keep the previous limit.
func (s *Service) SetMaxParallelDownloads(max int) {
	if max < 1 {
		max = 1
	}
	s.mu.Lock()
	s.sem = make(chan struct{}, max)
	s.mu.Unlock()
}

// Cached returns the cached resource for ref
func (s *Service) Cached(ref string) (fyne.Resource, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.cache[ref]
	return res, ok
}

// FetchAsync fetches ref in the background and reports through the update
// callback.
func (s *Service) FetchAsync(ref string) {
	go func() {
		res, err := s.Fetch(context.Background(), ref)
		if err != nil {
			log.Printf("Image fetch failed for %s: %v", shorten(ref), err)
		}
		s.notifyUpdate(ref, res, err)
	}()
}

// Fetch returns the image for ref, loading it at most once even when
// requested concurrently.
func (s *Service) Fetch(ctx context.Context, ref string) (fyne.Resource, error) {
	if ref == "" {
		return nil, ErrEmptyRef
	}

	s.mu.Lock()
	if res, ok := s.cache[ref]; ok {
		s.mu.Unlock()
		return res, nil
	}
	if c, ok := s.inflight[ref]; ok {
		s.mu.Unlock()
		select {
		case <-c.done:
			return c.res, c.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	c := &call{done: make(chan struct{})}
	s.inflight[ref] = c
	sem := s.sem
	s.mu.Unlock()

	c.res, c.err = s.load(ctx, ref, sem)

	s.mu.Lock()
	delete(s.inflight, ref)
	if c.err == nil {
		s.storeLocked(ref, c.res)
	}
	s.mu.Unlock()
	close(c.done)

	return c.res, c.err
}

func (s *Service) load(ctx context.Context, ref string, sem chan struct{}) (fyne.Resource, error) {
	resolved := api.ResolveImageURL(s.baseURL, ref)
	name := resourceName(ref)

	if strings.HasPrefix(resolved, "data:") {
		data, err := decodeDataURI(resolved)
		if err != nil {
			return nil, err
		}
		return fyne.NewStaticResource(name, data), nil
	}

	select {
	case sem <- struct{}{}:
		defer func() { <-sem }()
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	data, err := s.get(ctx, resolved)
	if err != nil {
		return nil, err
	}
	return fyne.NewStaticResource(name, data), nil
}

func (s *Service) get(ctx context.Context, link string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(api.BypassHeader, api.BypassHeaderValue)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch image: HTTP %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) > MaxImageBytes {
		return nil, fmt.Errorf("image larger than %d bytes", MaxImageBytes)
	}
	return data, nil
}

// storeLocked caches res, evicting the oldest entry when full
func (s *Service) storeLocked(ref string, res fyne.Resource) {
	if _, ok := s.cache[ref]; ok {
		return
	}
	if len(s.order) >= s.maxCache {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.cache, oldest)
	}
	s.cache[ref] = res
	s.order = append(s.order, ref)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(ref string, res fyne.Resource, err error) {
	s.mu.Lock()
	callback := s.onUpdate
	s.mu.Unlock()
	if callback != nil {
		callback(ref, res, err)
	}
}

func decodeDataURI(uri string) ([]byte, error) {
	comma := strings.IndexByte(uri, ',')
	if comma < 0 || !strings.HasSuffix(uri[:comma], ";base64") {
		return nil, fmt.Errorf("unsupported data URI")
	}
	data, err := base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil {
		return nil, fmt.Errorf("decode data URI: %w", err)
	}
	return data, nil
}

// resourceName derives a stable resource name from the reference
func resourceName(ref string) string {
	sum := blake3.Sum256([]byte(ref))
	return ResourcePrefix + hex.EncodeToString(sum[:8])
}

func shorten(ref string) string {
	if len(ref) > 64 {
		return ref[:64] + "..."
	}
	return ref
}
