package greenscore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	if p.MissingESG != MissingESGNeutral {
		t.Fatalf("expected neutral default, got %q", p.MissingESG)
	}
	if len(p.NegativeSectors) != 4 || len(p.NeutralSectors) != 5 {
		t.Fatalf("unexpected sector sets: %v %v", p.NegativeSectors, p.NeutralSectors)
	}
}

func TestLoadPolicy_OverridesSectors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	body := "missing_esg: penalize\nnegative_sectors: [Mining]\nneutral_sectors: [technology]\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	p, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.MissingESG != MissingESGPenalize {
		t.Fatalf("expected penalize, got %q", p.MissingESG)
	}

	e := NewEvaluator(nil, nil, p, nil)
	if got := e.sectorAdjustment(ptr("mining")); got != -1 {
		t.Fatalf("mining = %d, want -1", got)
	}
	if got := e.sectorAdjustment(ptr("energy")); got != 1 {
		t.Fatalf("energy = %d, want 1 under custom policy", got)
	}
}

func TestParsePolicy_Rejects(t *testing.T) {
	if _, err := ParsePolicy([]byte("missing_esg: ignore\n")); err == nil {
		t.Fatalf("expected unknown policy error")
	}
	if _, err := ParsePolicy([]byte("negative_sectors: [retail]\nneutral_sectors: [Retail]\n")); err == nil {
		t.Fatalf("expected overlap error")
	}
}

func TestLoadPolicy_EmptyPathIsDefault(t *testing.T) {
	p, err := LoadPolicy("")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.MissingESG != MissingESGNeutral {
		t.Fatalf("expected default policy")
	}
}

func TestResolvePolicy_MissingESGPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte("missing_esg: penalize\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	tests := []struct {
		name     string
		path     string
		override string
		want     MissingESG
		adjust   int
	}{
		{"file value without override", path, "", MissingESGPenalize, -1},
		{"override wins over file", path, "neutral", MissingESGNeutral, 0},
		{"default policy without override", "", "", MissingESGNeutral, 0},
		{"override on default policy", "", " Penalize ", MissingESGPenalize, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ResolvePolicy(tt.path, tt.override)
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if p.MissingESG != tt.want {
				t.Fatalf("missing ESG = %q, want %q", p.MissingESG, tt.want)
			}
			if got := NewEvaluator(nil, nil, p, nil).esgAdjustment(nil); got != tt.adjust {
				t.Fatalf("absent ESG adjustment = %d, want %d", got, tt.adjust)
			}
		})
	}

	if _, err := ResolvePolicy(path, "ignore"); err == nil {
		t.Fatalf("expected error for unknown override")
	}
}
