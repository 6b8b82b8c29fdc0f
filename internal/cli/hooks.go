package cli

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treelayout/pkg/observability"
)

var registerOnce sync.Once

// debugHooks logs pipeline and cache events at debug level.
type debugHooks struct {
	logger *log.Logger
}

// registerDebugHooks installs debugHooks for the lifetime of the process.
func registerDebugHooks(l *log.Logger) {
	registerOnce.Do(func() {
		h := &debugHooks{logger: l}
		observability.SetPipelineHooks(h)
		observability.SetCacheHooks(h)
	})
}

func (h *debugHooks) OnLayoutStart(_ context.Context, vertexCount int) {
	h.logger.Debug("layout started", "vertices", vertexCount)
}

func (h *debugHooks) OnLayoutComplete(_ context.Context, vertexCount int, d time.Duration, err error) {
	h.logger.Debug("layout finished", "vertices", vertexCount, "duration", d, "error", err)
}

func (h *debugHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render started", "formats", formats)
}

func (h *debugHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render finished", "formats", formats, "duration", d, "error", err)
}

func (h *debugHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *debugHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *debugHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
