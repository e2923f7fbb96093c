package greenscore

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type MissingESG string

const (
	MissingESGNeutral  MissingESG = "neutral"
	MissingESGPenalize MissingESG = "penalize"
)

func ParseMissingESG(s string) (MissingESG, error) {
	switch MissingESG(strings.ToLower(strings.TrimSpace(s))) {
	case "", MissingESGNeutral:
		return MissingESGNeutral, nil
	case MissingESGPenalize:
		return MissingESGPenalize, nil
	}
	return "", fmt.Errorf("unknown missing ESG policy %q", s)
}

// Policy holds the tunable parts of the score: how absent ESG data counts and which
// industries are penalized or neutral. Any other industry, including unset, earns +1.
type Policy struct {
	MissingESG      MissingESG `yaml:"missing_esg"`
	NegativeSectors []string   `yaml:"negative_sectors"`
	NeutralSectors  []string   `yaml:"neutral_sectors"`

	negative map[string]struct{}
	neutral  map[string]struct{}
}

//go:embed policy.yaml
var defaultPolicyYAML []byte

func DefaultPolicy() Policy {
	p, err := ParsePolicy(defaultPolicyYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded green score policy: %v", err))
	}
	return p
}

// LoadPolicy reads a policy file. An empty path yields the default policy.
func LoadPolicy(path string) (Policy, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultPolicy(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read policy: %w", err)
	}
	return ParsePolicy(b)
}

func ParsePolicy(b []byte) (Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(b, &p); err != nil {
		return Policy{}, fmt.Errorf("parse policy: %w", err)
	}
	m, err := ParseMissingESG(string(p.MissingESG))
	if err != nil {
		return Policy{}, err
	}
	p.MissingESG = m
	p.index()

	for s := range p.negative {
		if _, ok := p.neutral[s]; ok {
			return Policy{}, fmt.Errorf("sector %q is both negative and neutral", s)
		}
	}
	return p, nil
}

// ResolvePolicy loads the policy file (or the default policy) and applies missingESG on
// top of it when set. An empty missingESG keeps the file's value.
func ResolvePolicy(path, missingESG string) (Policy, error) {
	p, err := LoadPolicy(path)
	if err != nil {
		return Policy{}, err
	}
	if strings.TrimSpace(missingESG) == "" {
		return p, nil
	}
	m, err := ParseMissingESG(missingESG)
	if err != nil {
		return Policy{}, err
	}
	return p.WithMissingESG(m), nil
}

// WithMissingESG returns a copy of p using m for absent ESG scores.
func (p Policy) WithMissingESG(m MissingESG) Policy {
	p.MissingESG = m
	return p
}

func (p *Policy) index() {
	p.negative = sectorSet(p.NegativeSectors)
	p.neutral = sectorSet(p.NeutralSectors)
}

func sectorSet(in []string) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = normalizeSector(s)
		if s != "" {
			out[s] = struct{}{}
		}
	}
	return out
}

func normalizeSector(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
