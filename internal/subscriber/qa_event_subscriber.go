package subscriber

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/qabot/backend/internal/eventbus"
	"github.com/qabot/backend/internal/pkg/matcher"
	"k8s.io/klog/v2"
)

// UnmatchedQuery 最近未能回答的问题
type UnmatchedQuery struct {
	Query     string    `json:"query"`
	Closest   string    `json:"closest,omitempty"`
	Score     int       `json:"score"`
	Count     int       `json:"count"`
	LastAsked time.Time `json:"last_asked"`
}

// QAEventSubscriber 记录问答事件，并维护待教学问题列表
type QAEventSubscriber struct {
	mu        sync.Mutex
	capacity  int
	unmatched map[string]*UnmatchedQuery // key: 规范化后的问题
	now       func() time.Time
}

func NewQAEventSubscriber(capacity int) *QAEventSubscriber {
	if capacity <= 0 {
		capacity = 100
	}
	return &QAEventSubscriber{
		capacity:  capacity,
		unmatched: make(map[string]*UnmatchedQuery),
		now:       time.Now,
	}
}

func (s *QAEventSubscriber) Register(bus *eventbus.QAEventBus) {
	if bus == nil {
		return
	}
	bus.Subscribe(eventbus.QAEventLearned, s.handleLearned)
	bus.Subscribe(eventbus.QAEventUpdated, s.handleLearned)
	bus.Subscribe(eventbus.QAEventDeleted, s.handleDeleted)
	bus.Subscribe(eventbus.QAEventMatched, s.handleMatched)
	bus.Subscribe(eventbus.QAEventUnmatched, s.handleUnmatched)
}

// Unmatched 按最近提问时间倒序返回待教学问题
func (s *QAEventSubscriber) Unmatched() []UnmatchedQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]UnmatchedQuery, 0, len(s.unmatched))
	for _, u := range s.unmatched {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastAsked.After(out[j].LastAsked)
	})
	return out
}

func (s *QAEventSubscriber) handleLearned(ctx context.Context, event eventbus.QAEvent) error {
	s.mu.Lock()
	delete(s.unmatched, event.Question)
	s.mu.Unlock()
	klog.V(6).Infof("问答事件处理成功: type=%s, qaID=%d, question=%q", event.Type, event.QAID, event.Question)
	return nil
}

func (s *QAEventSubscriber) handleDeleted(ctx context.Context, event eventbus.QAEvent) error {
	klog.V(6).Infof("问答删除事件: qaID=%d", event.QAID)
	return nil
}

func (s *QAEventSubscriber) handleMatched(ctx context.Context, event eventbus.QAEvent) error {
	klog.V(6).Infof("命中问答: query=%q, question=%q, score=%d", event.Query, event.Question, event.Score)
	return nil
}

func (s *QAEventSubscriber) handleUnmatched(ctx context.Context, event eventbus.QAEvent) error {
	key := matcher.Normalize(event.Query)
	if key == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.unmatched[key]
	if !ok {
		if len(s.unmatched) >= s.capacity {
			s.evictOldest()
		}
		u = &UnmatchedQuery{Query: event.Query}
		s.unmatched[key] = u
	}
	u.Closest = event.Question
	u.Score = event.Score
	u.Count++
	u.LastAsked = s.now()
	klog.V(6).Infof("未命中问答: query=%q, closest=%q, score=%d, count=%d", event.Query, event.Question, event.Score, u.Count)
	return nil
}

// evictOldest 调用方需持有锁
func (s *QAEventSubscriber) evictOldest() {
	var (
		oldestKey string
		oldest    time.Time
	)
	for k, u := range s.unmatched {
		if oldestKey == "" || u.LastAsked.Before(oldest) {
			oldestKey, oldest = k, u.LastAsked
		}
	}
	delete(s.unmatched, oldestKey)
}
