package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRedis_UnavailableBypassesCache(t *testing.T) {
	var r *Redis
	ctx := context.Background()

	var out map[string]string
	found, err := r.GetJSON(ctx, "jobs:search:abc", &out)
	if err != nil || found {
		t.Fatalf("GetJSON = %v, %v; want miss without error", found, err)
	}
	if err := r.SetJSON(ctx, "k", map[string]string{"a": "b"}, time.Minute); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	if err := r.DeleteByPattern(ctx, "jobs:search:*"); err != nil {
		t.Fatalf("DeleteByPattern: %v", err)
	}
	if err := r.Delete(ctx, "rescore:lock:x"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestRedis_UnavailableFailsTokenOps(t *testing.T) {
	r := &Redis{}
	ctx := context.Background()

	if err := r.SetString(ctx, "k", "v", time.Minute); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("SetString err = %v", err)
	}
	if _, _, err := r.GetString(ctx, "k"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("GetString err = %v", err)
	}
	if _, _, err := r.GetDel(ctx, "k"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("GetDel err = %v", err)
	}
	if ok, err := r.SetIfNotExists(ctx, "rescore:lock:x", "1", 0); ok || !errors.Is(err, ErrUnavailable) {
		t.Fatalf("SetIfNotExists = %v, %v", ok, err)
	}
	if err := r.Ping(ctx); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Ping err = %v", err)
	}
}
