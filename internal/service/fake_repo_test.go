package service

import (
	"context"
	"sync"
	"time"

	"github.com/qabot/backend/internal/model"
	"github.com/qabot/backend/internal/pkg/matcher"
	"github.com/qabot/backend/internal/repository"
)

// memQARepo 内存版问答仓储
type memQARepo struct {
	mu          sync.Mutex
	pairs       []model.QAPair
	nextID      uint
	err         error // 非空时所有操作返回该错误
	staleLookup bool  // 为真时 GetByQuestion 总是未找到，模拟两次教学交错
}

func newMemQARepo(seed map[string]string) *memQARepo {
	r := &memQARepo{}
	for q, a := range seed {
		r.nextID++
		r.pairs = append(r.pairs, model.QAPair{ID: r.nextID, Question: q, Answer: a})
	}
	return r
}

func (r *memQARepo) List(ctx context.Context) ([]model.QAPair, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]model.QAPair, len(r.pairs))
	copy(out, r.pairs)
	return out, nil
}

func (r *memQARepo) Questions(ctx context.Context) ([]string, error) {
	pairs, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	questions := make([]string, 0, len(pairs))
	for _, p := range pairs {
		questions = append(questions, p.Question)
	}
	return questions, nil
}

func (r *memQARepo) find(match func(model.QAPair) bool) (*model.QAPair, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, p := range r.pairs {
		if match(p) {
			found := p
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memQARepo) Get(ctx context.Context, id uint) (*model.QAPair, error) {
	return r.find(func(p model.QAPair) bool { return p.ID == id })
}

func (r *memQARepo) GetByQuestion(ctx context.Context, question string) (*model.QAPair, error) {
	if r.staleLookup {
		return nil, repository.ErrNotFound
	}
	return r.find(func(p model.QAPair) bool { return p.Question == question })
}

func (r *memQARepo) Create(ctx context.Context, qa *model.QAPair) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for _, p := range r.pairs {
		if p.Question == qa.Question {
			return repository.ErrDuplicate
		}
	}
	r.nextID++
	qa.ID = r.nextID
	r.pairs = append(r.pairs, *qa)
	return nil
}

func (r *memQARepo) Upsert(ctx context.Context, qa *model.QAPair) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for i := range r.pairs {
		if r.pairs[i].Question == qa.Question {
			r.pairs[i].Answer = qa.Answer
			*qa = r.pairs[i]
			return nil
		}
	}
	r.nextID++
	qa.ID = r.nextID
	r.pairs = append(r.pairs, *qa)
	return nil
}

func (r *memQARepo) UpdateAnswer(ctx context.Context, id uint, answer string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for i := range r.pairs {
		if r.pairs[i].ID == id {
			r.pairs[i].Answer = answer
		}
	}
	return nil
}

func (r *memQARepo) Save(ctx context.Context, qa *model.QAPair) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for i := range r.pairs {
		if r.pairs[i].ID == qa.ID {
			r.pairs[i] = *qa
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memQARepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for i := range r.pairs {
		if r.pairs[i].ID == id {
			r.pairs = append(r.pairs[:i], r.pairs[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memQARepo) Count(ctx context.Context) (int64, error) {
	pairs, err := r.List(ctx)
	return int64(len(pairs)), err
}

func (r *memQARepo) Transaction(ctx context.Context, fn func(repo repository.QARepository) error) error {
	return fn(r)
}

// stubMatcher 固定返回第一个候选及指定分数
type stubMatcher struct {
	score int
}

func (m stubMatcher) BestMatch(query string, candidates []string) (matcher.Match, bool) {
	if len(candidates) == 0 {
		return matcher.Match{}, false
	}
	return matcher.Match{Text: candidates[0], Index: 0, Score: m.score}, true
}

type memCommRepo struct {
	comms  map[uint]*model.Communication
	nextID uint
}

func newMemCommRepo() *memCommRepo {
	return &memCommRepo{comms: make(map[uint]*model.Communication)}
}

func (r *memCommRepo) Create(ctx context.Context, comm *model.Communication) error {
	r.nextID++
	comm.ID = r.nextID
	stored := *comm
	r.comms[comm.ID] = &stored
	return nil
}

func (r *memCommRepo) List(ctx context.Context) ([]model.Communication, error) {
	out := make([]model.Communication, 0, len(r.comms))
	for _, c := range r.comms {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memCommRepo) Get(ctx context.Context, id uint) (*model.Communication, error) {
	c, ok := r.comms[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	found := *c
	return &found, nil
}

func (r *memCommRepo) Save(ctx context.Context, comm *model.Communication) error {
	stored := *comm
	r.comms[comm.ID] = &stored
	return nil
}

func (r *memCommRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.comms[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.comms, id)
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
