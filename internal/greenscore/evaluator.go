package greenscore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"greenleaf/internal/domain/company"
	"greenleaf/internal/logger"

	"go.uber.org/zap"
)

const baseScore = 5

const (
	esgHighThreshold = 70
	esgLowThreshold  = 50
)

type CompanyLookup interface {
	GetCompanyByName(ctx context.Context, name string) (company.Company, error)
}

// Classifier judges the emissions profile of a role. Replies other than "1", "0" and
// "-1" are treated as no signal.
type Classifier interface {
	Classify(ctx context.Context, title, description string) (string, error)
}

type Input struct {
	BusinessName string
	Title        string
	Description  string
	Location     string
}

type Breakdown struct {
	Base        int `json:"base"`
	ESG         int `json:"esg"`
	BCorp       int `json:"b_corp"`
	Role        int `json:"role"`
	Sector      int `json:"sector"`
	Flexibility int `json:"flexibility"`
}

func (b Breakdown) Total() int {
	return b.Base + b.ESG + b.BCorp + b.Role + b.Sector + b.Flexibility
}

type Result struct {
	Score     int
	Breakdown Breakdown
}

type Evaluator struct {
	companies  CompanyLookup
	classifier Classifier
	policy     Policy
	logger     *zap.Logger
}

func NewEvaluator(companies CompanyLookup, classifier Classifier, policy Policy, log *zap.Logger) *Evaluator {
	if policy.negative == nil || policy.neutral == nil {
		policy.index()
	}
	if policy.MissingESG == "" {
		policy.MissingESG = MissingESGNeutral
	}
	return &Evaluator{
		companies:  companies,
		classifier: classifier,
		policy:     policy,
		logger:     logger.Named(log, "greenscore"),
	}
}

// Evaluate scores a posting for the named business. It performs one company lookup and
// one classifier call and never retries.
func (e *Evaluator) Evaluate(ctx context.Context, in Input) (Result, error) {
	if err := in.validate(); err != nil {
		return Result{}, err
	}
	if e == nil || e.companies == nil || e.classifier == nil {
		return Result{}, fmt.Errorf("%w: evaluator not configured", ErrDependency)
	}

	c, err := e.companies.GetCompanyByName(ctx, in.BusinessName)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return Result{}, fmt.Errorf("%w: %s", ErrNotFound, in.BusinessName)
		}
		return Result{}, fmt.Errorf("%w: company lookup: %w", ErrDependency, err)
	}
	if strings.TrimSpace(c.Name) == "" {
		return Result{}, fmt.Errorf("%w: %s", ErrNotFound, in.BusinessName)
	}

	reply, err := e.classifier.Classify(ctx, in.Title, in.Description)
	if err != nil {
		return Result{}, fmt.Errorf("%w: classifier: %w", ErrDependency, err)
	}

	b := Breakdown{
		Base:        baseScore,
		ESG:         e.esgAdjustment(c.ESGScore),
		BCorp:       bCorpAdjustment(c.BCorp),
		Role:        RoleAdjustment(reply),
		Sector:      e.sectorAdjustment(c.Industry),
		Flexibility: FlexibilityAdjustment(in.Description, in.Location),
	}

	res := Result{Score: b.Total(), Breakdown: b}
	e.logger.Debug("green score evaluated",
		zap.String("business", in.BusinessName),
		zap.Int("score", res.Score),
		zap.Any("breakdown", b),
		zap.String("classifier_reply", logger.TruncateForLog(reply, 16)),
	)
	return res, nil
}

func (in Input) validate() error {
	missing := make([]string, 0, 4)
	if strings.TrimSpace(in.BusinessName) == "" {
		missing = append(missing, "businessName")
	}
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(in.Location) == "" {
		missing = append(missing, "location")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

func (e *Evaluator) esgAdjustment(esg *float64) int {
	if esg == nil {
		if e.policy.MissingESG == MissingESGPenalize {
			return -1
		}
		return 0
	}
	switch {
	case *esg > esgHighThreshold:
		return 1
	case *esg >= esgLowThreshold:
		return 0
	default:
		return -1
	}
}

func bCorpAdjustment(bCorp *bool) int {
	if bCorp != nil && *bCorp {
		return 1
	}
	return 0
}

// RoleAdjustment maps a classifier reply onto the score. Only the exact literals count.
func RoleAdjustment(reply string) int {
	switch reply {
	case "1":
		return 1
	case "-1":
		return -1
	default:
		return 0
	}
}

func (e *Evaluator) sectorAdjustment(industry *string) int {
	var s string
	if industry != nil {
		s = normalizeSector(*industry)
	}
	if _, ok := e.policy.negative[s]; ok {
		return -1
	}
	if _, ok := e.policy.neutral[s]; ok {
		return 0
	}
	return 1
}

// FlexibilityAdjustment rewards remote work. The description match is case-sensitive and
// the location must equal the keyword exactly.
func FlexibilityAdjustment(description, location string) int {
	switch {
	case strings.Contains(description, "remote") || location == "remote":
		return 1
	case strings.Contains(description, "hybrid") || location == "hybrid":
		return 0
	default:
		return -1
	}
}
