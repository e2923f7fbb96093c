package greenscore

import (
	"context"
	"errors"
	"strings"
	"testing"

	"greenleaf/internal/domain/company"
)

type fakeCompanies struct {
	byName map[string]company.Company
	err    error
	calls  int
}

func (f *fakeCompanies) GetCompanyByName(_ context.Context, name string) (company.Company, error) {
	f.calls++
	if f.err != nil {
		return company.Company{}, f.err
	}
	c, ok := f.byName[name]
	if !ok {
		return company.Company{}, company.ErrNotFound
	}
	return c, nil
}

type fakeClassifier struct {
	reply string
	err   error
	calls int
}

func (f *fakeClassifier) Classify(_ context.Context, _, _ string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func ptr[T any](v T) *T { return &v }

func newFixture(reply string) (*fakeCompanies, *fakeClassifier) {
	companies := &fakeCompanies{byName: map[string]company.Company{
		"Sunrise Solar": {Name: "Sunrise Solar", ESGScore: ptr(80.0), BCorp: ptr(true), Industry: ptr("technology")},
		"Coal Corp":     {Name: "Coal Corp", ESGScore: ptr(40.0), BCorp: ptr(false), Industry: ptr("energy")},
		"Learn Co":      {Name: "Learn Co", Industry: ptr("education")},
	}}
	return companies, &fakeClassifier{reply: reply}
}

func TestEvaluate_Scenarios(t *testing.T) {
	tests := []struct {
		name   string
		reply  string
		policy MissingESG
		in     Input
		want   int
	}{
		{
			name:  "high esg b corp remote",
			reply: "1",
			in:    Input{BusinessName: "Sunrise Solar", Title: "Solar Engineer", Description: "Fully remote role", Location: "remote"},
			want:  9,
		},
		{
			name:  "low esg energy on site",
			reply: "-1",
			in:    Input{BusinessName: "Coal Corp", Title: "Plant Operator", Description: "On-site only", Location: "New York"},
			want:  1,
		},
		{
			name:  "missing esg neutral policy",
			reply: "0",
			in:    Input{BusinessName: "Learn Co", Title: "Teacher", Description: "hybrid schedule", Location: "Boston"},
			want:  6,
		},
		{
			name:   "missing esg penalize policy",
			reply:  "0",
			policy: MissingESGPenalize,
			in:     Input{BusinessName: "Learn Co", Title: "Teacher", Description: "hybrid schedule", Location: "Boston"},
			want:   5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			companies, classifier := newFixture(tt.reply)
			policy := DefaultPolicy()
			if tt.policy != "" {
				policy = policy.WithMissingESG(tt.policy)
			}
			e := NewEvaluator(companies, classifier, policy, nil)

			got, err := e.Evaluate(context.Background(), tt.in)
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if got.Score != tt.want {
				t.Fatalf("score = %d, want %d (breakdown %+v)", got.Score, tt.want, got.Breakdown)
			}
			if got.Breakdown.Total() != got.Score {
				t.Fatalf("breakdown total %d differs from score %d", got.Breakdown.Total(), got.Score)
			}
			if classifier.calls != 1 || companies.calls != 1 {
				t.Fatalf("expected one lookup and one classification, got %d and %d", companies.calls, classifier.calls)
			}
		})
	}
}

func TestEvaluate_MissingFieldSkipsDependencies(t *testing.T) {
	full := Input{BusinessName: "Sunrise Solar", Title: "t", Description: "d", Location: "l"}
	cases := map[string]func(Input) Input{
		"business":    func(in Input) Input { in.BusinessName = ""; return in },
		"title":       func(in Input) Input { in.Title = "   "; return in },
		"description": func(in Input) Input { in.Description = ""; return in },
		"location":    func(in Input) Input { in.Location = "\t"; return in },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			companies, classifier := newFixture("1")
			e := NewEvaluator(companies, classifier, DefaultPolicy(), nil)

			_, err := e.Evaluate(context.Background(), mutate(full))
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if companies.calls != 0 || classifier.calls != 0 {
				t.Fatalf("dependencies called on invalid input")
			}
		})
	}
}

func TestEvaluate_UnknownBusinessSkipsClassifier(t *testing.T) {
	companies, classifier := newFixture("1")
	e := NewEvaluator(companies, classifier, DefaultPolicy(), nil)

	_, err := e.Evaluate(context.Background(), Input{BusinessName: "Nobody", Title: "t", Description: "d", Location: "l"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if classifier.calls != 0 {
		t.Fatalf("classifier should not be called")
	}
}

func TestEvaluate_RecordWithoutNameIsNotFound(t *testing.T) {
	companies := &fakeCompanies{byName: map[string]company.Company{"Ghost": {}}}
	classifier := &fakeClassifier{reply: "1"}
	e := NewEvaluator(companies, classifier, DefaultPolicy(), nil)

	_, err := e.Evaluate(context.Background(), Input{BusinessName: "Ghost", Title: "t", Description: "d", Location: "l"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if classifier.calls != 0 {
		t.Fatalf("classifier should not be called")
	}
}

func TestEvaluate_DependencyFailures(t *testing.T) {
	in := Input{BusinessName: "Sunrise Solar", Title: "t", Description: "d", Location: "l"}

	t.Run("store", func(t *testing.T) {
		companies := &fakeCompanies{err: errors.New("connection refused")}
		classifier := &fakeClassifier{reply: "1"}
		_, err := NewEvaluator(companies, classifier, DefaultPolicy(), nil).Evaluate(context.Background(), in)
		if !errors.Is(err, ErrDependency) {
			t.Fatalf("expected ErrDependency, got %v", err)
		}
		if classifier.calls != 0 {
			t.Fatalf("classifier should not be called")
		}
	})

	t.Run("classifier", func(t *testing.T) {
		companies, classifier := newFixture("")
		classifier.err = errors.New("quota exceeded")
		_, err := NewEvaluator(companies, classifier, DefaultPolicy(), nil).Evaluate(context.Background(), in)
		if !errors.Is(err, ErrDependency) {
			t.Fatalf("expected ErrDependency, got %v", err)
		}
		if !strings.Contains(err.Error(), "quota exceeded") {
			t.Fatalf("expected cause in message, got %q", err.Error())
		}
	})
}

func TestEvaluate_UnexpectedReplyIsNoOp(t *testing.T) {
	in := Input{BusinessName: "Sunrise Solar", Title: "t", Description: "remote", Location: "x"}
	for _, reply := range []string{"2", "yes", "+1", " 1", ""} {
		companies, classifier := newFixture(reply)
		got, err := NewEvaluator(companies, classifier, DefaultPolicy(), nil).Evaluate(context.Background(), in)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if got.Breakdown.Role != 0 || got.Score != 8 {
			t.Fatalf("reply %q: score %d role %d", reply, got.Score, got.Breakdown.Role)
		}
	}
}

func TestFlexibilityAdjustment(t *testing.T) {
	tests := []struct {
		desc, loc string
		want      int
	}{
		{desc: "Fully remote role", loc: "Berlin", want: 1},
		{desc: "Office", loc: "remote", want: 1},
		{desc: "Remote first", loc: "Remote", want: -1},
		{desc: "hybrid and remote", loc: "x", want: 1},
		{desc: "hybrid week", loc: "x", want: 0},
		{desc: "Office", loc: "hybrid", want: 0},
		{desc: "Office", loc: " remote", want: -1},
	}
	for _, tt := range tests {
		if got := FlexibilityAdjustment(tt.desc, tt.loc); got != tt.want {
			t.Fatalf("FlexibilityAdjustment(%q, %q) = %d, want %d", tt.desc, tt.loc, got, tt.want)
		}
	}
}

func TestESGBoundaries(t *testing.T) {
	e := NewEvaluator(nil, nil, DefaultPolicy(), nil)
	tests := []struct {
		esg  float64
		want int
	}{
		{esg: 70.5, want: 1},
		{esg: 70, want: 0},
		{esg: 50, want: 0},
		{esg: 49.9, want: -1},
		{esg: 0, want: -1},
	}
	for _, tt := range tests {
		if got := e.esgAdjustment(&tt.esg); got != tt.want {
			t.Fatalf("esg %v: got %d, want %d", tt.esg, got, tt.want)
		}
	}
}

func TestSectorAdjustment(t *testing.T) {
	e := NewEvaluator(nil, nil, DefaultPolicy(), nil)
	tests := []struct {
		industry *string
		want     int
	}{
		{industry: ptr("energy"), want: -1},
		{industry: ptr(" Manufacturing "), want: -1},
		{industry: ptr("financial"), want: 0},
		{industry: ptr("other"), want: 0},
		{industry: ptr("education"), want: 1},
		{industry: ptr(""), want: 1},
		{industry: nil, want: 1},
	}
	for _, tt := range tests {
		if got := e.sectorAdjustment(tt.industry); got != tt.want {
			t.Fatalf("industry %v: got %d, want %d", tt.industry, got, tt.want)
		}
	}
}

func TestEvaluate_NotConfigured(t *testing.T) {
	var e *Evaluator
	_, err := e.Evaluate(context.Background(), Input{BusinessName: "a", Title: "b", Description: "c", Location: "d"})
	if !errors.Is(err, ErrDependency) {
		t.Fatalf("expected ErrDependency, got %v", err)
	}
}
