package observability

import (
	"context"
	"testing"
	"time"
)

type countingCacheHooks struct {
	hits, misses, sets int
}

func (c *countingCacheHooks) OnCacheHit(ctx context.Context, keyType string)       { c.hits++ }
func (c *countingCacheHooks) OnCacheMiss(ctx context.Context, keyType string)      { c.misses++ }
func (c *countingCacheHooks) OnCacheSet(ctx context.Context, keyType string, n int) { c.sets++ }

type countingLayoutHooks struct {
	partitions int
	splits     int
}

func (c *countingLayoutHooks) OnPartitionStart(context.Context, int, int)                   {}
func (c *countingLayoutHooks) OnPartitionComplete(ctx context.Context, w, h int, d time.Duration) {
	c.partitions++
}
func (c *countingLayoutHooks) OnTileSplitStart(context.Context, int, int) {}
func (c *countingLayoutHooks) OnTileSplitComplete(ctx context.Context, rows, cols, n int, d time.Duration, err error) {
	c.splits++
}

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	// Must not panic
	Layout().OnPartitionStart(ctx, 100, 100)
	Layout().OnPartitionComplete(ctx, 100, 100, time.Millisecond)
	Render().OnRenderStart(ctx, []string{"png"})
	Render().OnRenderComplete(ctx, []string{"png"}, time.Millisecond, nil)
	Cache().OnCacheHit(ctx, "layout")
	Cache().OnCacheMiss(ctx, "layout")
	Cache().OnCacheSet(ctx, "layout", 128)
}

func TestSetAndResetHooks(t *testing.T) {
	defer Reset()
	ctx := context.Background()

	cc := &countingCacheHooks{}
	SetCacheHooks(cc)
	Cache().OnCacheHit(ctx, "artifact")
	Cache().OnCacheMiss(ctx, "artifact")
	Cache().OnCacheSet(ctx, "artifact", 64)

	if cc.hits != 1 || cc.misses != 1 || cc.sets != 1 {
		t.Errorf("cache hooks not invoked: %+v", cc)
	}

	lc := &countingLayoutHooks{}
	SetLayoutHooks(lc)
	Layout().OnPartitionComplete(ctx, 10, 10, time.Millisecond)
	Layout().OnTileSplitComplete(ctx, 2, 3, 6, time.Millisecond, nil)
	if lc.partitions != 1 || lc.splits != 1 {
		t.Errorf("layout hooks not invoked: %+v", lc)
	}

	Reset()
	Cache().OnCacheHit(ctx, "artifact")
	if cc.hits != 1 {
		t.Error("Reset should restore no-op hooks")
	}
}

func TestSetNilHooksKeepsCurrent(t *testing.T) {
	defer Reset()

	cc := &countingCacheHooks{}
	SetCacheHooks(cc)
	SetCacheHooks(nil)

	Cache().OnCacheHit(context.Background(), "layout")
	if cc.hits != 1 {
		t.Error("SetCacheHooks(nil) should keep the registered hooks")
	}
}
