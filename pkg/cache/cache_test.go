package cache_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sandrolain/goevalexpr/pkg/cache"
	"github.com/sandrolain/goevalexpr/pkg/parser"
	"github.com/sandrolain/goevalexpr/pkg/types"
)

func compile(t *testing.T, source string) *types.Expression {
	t.Helper()
	expr, err := parser.Compile(source)
	if err != nil {
		t.Fatalf("Compile(%q) error = %v", source, err)
	}
	return expr
}

func TestGetPut(t *testing.T) {
	c := cache.New(4)

	if _, ok := c.Get("1 + 1"); ok {
		t.Fatal("hit on empty cache")
	}

	expr := compile(t, "1 + 1")
	c.Put("1 + 1", expr)

	got, ok := c.Get("1 + 1")
	if !ok || got != expr {
		t.Fatalf("Get = %v, %t, want cached tree", got, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := cache.New(2)
	c.Put("a", compile(t, "1"))
	c.Put("b", compile(t, "2"))

	// Touch "a" so "b" becomes the eviction candidate.
	if _, ok := c.Get("a"); !ok {
		t.Fatal("a missing before eviction")
	}
	c.Put("c", compile(t, "3"))

	if _, ok := c.Get("b"); ok {
		t.Error("b survived eviction")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a evicted despite recent use")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want capacity 2", c.Len())
	}
}

func TestPutReplaces(t *testing.T) {
	c := cache.New(2)
	c.Put("k", compile(t, "1"))
	replacement := compile(t, "2")
	c.Put("k", replacement)

	got, ok := c.Get("k")
	if !ok || got != replacement {
		t.Fatalf("Get = %v, %t, want replacement", got, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestGetOrCompile(t *testing.T) {
	c := cache.New(4)

	builds := 0
	build := func() (*types.Expression, error) {
		builds++
		return parser.Compile("1 + 2")
	}

	first, err := c.GetOrCompile("1 + 2", build)
	if err != nil {
		t.Fatalf("GetOrCompile error = %v", err)
	}
	second, err := c.GetOrCompile("1 + 2", build)
	if err != nil {
		t.Fatalf("GetOrCompile error = %v", err)
	}
	if builds != 1 {
		t.Errorf("build called %d times, want 1", builds)
	}
	if first != second {
		t.Error("second call did not return the cached tree")
	}
}

func TestGetOrCompileDoesNotCacheFailures(t *testing.T) {
	c := cache.New(4)
	wantErr := errors.New("build failed")

	for n := 0; n < 2; n++ {
		_, err := c.GetOrCompile("bad", func() (*types.Expression, error) {
			return nil, wantErr
		})
		if !errors.Is(err, wantErr) {
			t.Fatalf("error = %v, want %v", err, wantErr)
		}
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d after failed builds, want 0", c.Len())
	}
}

func TestClear(t *testing.T) {
	c := cache.New(4)
	c.Put("a", compile(t, "1"))
	c.Put("b", compile(t, "2"))
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Error("entry survived Clear")
	}
}

func TestDefaultCapacity(t *testing.T) {
	if got := cache.New(0).Capacity(); got != cache.DefaultCapacity {
		t.Errorf("Capacity = %d, want %d", got, cache.DefaultCapacity)
	}
	if got := cache.New(10).Capacity(); got != 10 {
		t.Errorf("Capacity = %d, want 10", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := cache.New(8)
	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				source := fmt.Sprintf("%d + %d", i, j%10)
				_, err := c.GetOrCompile(source, func() (*types.Expression, error) {
					return parser.Compile(source)
				})
				if err != nil {
					t.Error(err)
					return
				}
			}
		}(i)
	}
	for n := 0; n < 4; n++ {
		<-done
	}
}
