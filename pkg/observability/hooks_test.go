package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type countingHooks struct {
	NoopPipelineHooks
	NoopCacheHooks
	NoopHTTPHooks
	layouts  atomic.Int64
	hits     atomic.Int64
	requests atomic.Int64
}

func (h *countingHooks) OnLayoutStart(context.Context, int)        { h.layouts.Add(1) }
func (h *countingHooks) OnCacheHit(context.Context, string)        { h.hits.Add(1) }
func (h *countingHooks) OnRequest(context.Context, string, string) { h.requests.Add(1) }

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	tests := []struct {
		name string
		ok   bool
	}{
		{"pipeline", isType[NoopPipelineHooks](Pipeline())},
		{"cache", isType[NoopCacheHooks](Cache())},
		{"http", isType[NoopHTTPHooks](HTTP())},
	}
	for _, tt := range tests {
		if !tt.ok {
			t.Errorf("%s hooks are not the no-op default", tt.name)
		}
	}

	ctx := context.Background()
	Pipeline().OnLayoutComplete(ctx, 3, time.Millisecond, nil)
	Pipeline().OnRenderComplete(ctx, []string{"svg"}, time.Millisecond, nil)
	Cache().OnCacheSet(ctx, "artifact", 1024)
	HTTP().OnResponse(ctx, "GET", "/healthz", 200, time.Millisecond)
}

func isType[T any](v any) bool {
	_, ok := v.(T)
	return ok
}

func TestSetAndReset(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	h := &countingHooks{}
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)

	ctx := context.Background()
	Pipeline().OnLayoutStart(ctx, 10)
	Cache().OnCacheHit(ctx, "layout")
	HTTP().OnRequest(ctx, "GET", "/v1/layouts")

	if h.layouts.Load() != 1 || h.hits.Load() != 1 || h.requests.Load() != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1", h.layouts.Load(), h.hits.Load(), h.requests.Load())
	}

	Reset()
	Pipeline().OnLayoutStart(ctx, 10)
	if h.layouts.Load() != 1 {
		t.Error("hooks still called after Reset")
	}
}

func TestSetNilIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	h := &countingHooks{}
	SetCacheHooks(h)
	SetCacheHooks(nil)
	if Cache() != CacheHooks(h) {
		t.Error("SetCacheHooks(nil) replaced the installed hooks")
	}
}

func TestConcurrentAccess(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	h := &countingHooks{}
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i == 0 {
				SetCacheHooks(h)
			}
			for range 100 {
				Cache().OnCacheHit(context.Background(), "layout")
			}
		}()
	}
	wg.Wait()
	if h.hits.Load() > 800 {
		t.Errorf("hits = %d, want at most 800", h.hits.Load())
	}
}
