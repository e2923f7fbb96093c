package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"greenleaf/internal/domain/company"
	"greenleaf/internal/domain/job"
	"greenleaf/internal/greenscore"

	"github.com/google/uuid"
)

type fakeJobRepo struct {
	mu      sync.Mutex
	jobs    map[uuid.UUID]job.Job
	creates int
	updates int
	err     error
	search  int
}

func newFakeJobRepo(items ...job.Job) *fakeJobRepo {
	r := &fakeJobRepo{jobs: map[uuid.UUID]job.Job{}}
	for _, j := range items {
		r.jobs[j.ID] = j
	}
	return r
}

func (r *fakeJobRepo) CreateJob(_ context.Context, j job.Job) (job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return job.Job{}, r.err
	}
	r.creates++
	j.ID = uuid.New()
	j.CreatedAt = time.Now()
	r.jobs[j.ID] = j
	return j, nil
}

func (r *fakeJobRepo) GetJobByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

func (r *fakeJobRepo) UpdateJob(_ context.Context, j job.Job) (job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	r.jobs[j.ID] = j
	return j, nil
}

func (r *fakeJobRepo) UpdateGreenScore(_ context.Context, id uuid.UUID, score int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j := r.jobs[id]
	j.GreenScore = score
	r.jobs[id] = j
	return nil
}

func (r *fakeJobRepo) DeleteJob(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return job.ErrNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *fakeJobRepo) SearchJobs(_ context.Context, f job.SearchFilter) ([]job.Job, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.search++
	out := make([]job.Job, 0)
	for _, j := range r.jobs {
		if f.Query == "" || strings.Contains(strings.ToLower(j.Title), strings.ToLower(f.Query)) {
			out = append(out, j)
		}
	}
	return out, len(out), nil
}

func (r *fakeJobRepo) ListActiveByCompany(_ context.Context, name string) ([]job.Job, error) {
	return r.ListJobs(context.Background(), name)
}

func (r *fakeJobRepo) ListByTitleMatch(_ context.Context, title string, limit int) ([]job.Job, error) {
	items, _, _ := r.SearchJobs(context.Background(), job.SearchFilter{Query: title})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *fakeJobRepo) ListJobs(_ context.Context, name string) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]job.Job, 0)
	for _, j := range r.jobs {
		if name == "" || j.BusinessName == name {
			out = append(out, j)
		}
	}
	return out, nil
}

type fakeCompanyRepo struct {
	byID map[uuid.UUID]company.Company
}

func newFakeCompanyRepo(items ...company.Company) *fakeCompanyRepo {
	r := &fakeCompanyRepo{byID: map[uuid.UUID]company.Company{}}
	for _, c := range items {
		r.byID[c.ID] = c
	}
	return r
}

func (r *fakeCompanyRepo) CreateCompany(_ context.Context, c company.Company) (company.Company, error) {
	for _, existing := range r.byID {
		if existing.Name == c.Name {
			return company.Company{}, company.ErrNameTaken
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.byID[c.ID] = c
	return c, nil
}

func (r *fakeCompanyRepo) GetCompanyByID(_ context.Context, id uuid.UUID) (company.Company, error) {
	c, ok := r.byID[id]
	if !ok {
		return company.Company{}, company.ErrNotFound
	}
	return c, nil
}

func (r *fakeCompanyRepo) GetCompanyByName(_ context.Context, name string) (company.Company, error) {
	for _, c := range r.byID {
		if c.Name == name {
			return c, nil
		}
	}
	return company.Company{}, company.ErrNotFound
}

func (r *fakeCompanyRepo) UpdateCompany(_ context.Context, c company.Company) (company.Company, error) {
	for id, existing := range r.byID {
		if id != c.ID && existing.Name == c.Name {
			return company.Company{}, company.ErrNameTaken
		}
	}
	r.byID[c.ID] = c
	return c, nil
}

type fakeScorer struct {
	score int
	err   error
	calls int
	last  greenscore.Input
}

func (s *fakeScorer) Evaluate(_ context.Context, in greenscore.Input) (greenscore.Result, error) {
	s.calls++
	s.last = in
	if s.err != nil {
		return greenscore.Result{}, s.err
	}
	return greenscore.Result{Score: s.score}, nil
}

type fakeCache struct {
	mu          sync.Mutex
	data        map[string]JobPage
	invalidated int
}

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	*(out.(*JobPage)) = v
	return true, nil
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data == nil {
		c.data = map[string]JobPage{}
	}
	c.data[key] = value.(JobPage)
	return nil
}

func (c *fakeCache) DeleteByPattern(_ context.Context, _ string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	c.data = nil
	return nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *fakeNotifier) JobChanged(eventType string, _ job.Job) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, eventType)
}

func ptr[T any](v T) *T { return &v }
