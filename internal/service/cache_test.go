package service

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestCacheKeyStable(t *testing.T) {
	a := url.Values{}
	a.Set("verb", "ListRecords")
	a.Set("metadataPrefix", "oai_dc")
	a.Set("from", "2020-01-01")

	b := url.Values{}
	b.Set("from", "2020-01-01")
	b.Set("metadataPrefix", "oai_dc")
	b.Set("verb", "ListRecords")

	if CacheKey("/oai", a) != CacheKey("/oai", b) {
		t.Fatalf("expected parameter order not to matter")
	}
	if !strings.HasPrefix(CacheKey("/oai", a), "oai:") {
		t.Fatalf("unexpected key shape %q", CacheKey("/oai", a))
	}
}

func TestCacheKeySeparatesRequests(t *testing.T) {
	q := url.Values{}
	q.Set("verb", "Identify")

	other := url.Values{}
	other.Set("verb", "ListSets")

	if CacheKey("/oai", q) == CacheKey("/oai", other) {
		t.Fatalf("expected different verbs to key apart")
	}
	if CacheKey("/oai", q) == CacheKey("/oai/library", q) {
		t.Fatalf("expected endpoints to key apart")
	}
}

func TestMemoryCacheRoundtrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute)

	if _, found := c.Get(ctx, "missing"); found {
		t.Fatalf("expected miss for unknown key")
	}

	body := []byte("<OAI-PMH/>")
	c.Set(ctx, "key", body)

	cached, found := c.Get(ctx, "key")
	if !found {
		t.Fatalf("expected hit after set")
	}
	if string(cached) != string(body) {
		t.Fatalf("expected stored body got %q", cached)
	}
}

func TestMemoryCacheExpires(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(10 * time.Millisecond)

	c.Set(ctx, "key", []byte("body"))
	time.Sleep(30 * time.Millisecond)

	if _, found := c.Get(ctx, "key"); found {
		t.Fatalf("expected entry to expire")
	}
}
