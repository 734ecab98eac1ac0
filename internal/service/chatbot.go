package service

import (
	"context"
	"errors"

	"github.com/qabot/backend/config"
	"github.com/qabot/backend/internal/eventbus"
	"github.com/qabot/backend/internal/model"
	"github.com/qabot/backend/internal/pkg/matcher"
	"github.com/qabot/backend/internal/repository"
	"k8s.io/klog/v2"
)

// ChatBotService 基于已存问答对回答自由文本，并支持教学新问答
type ChatBotService struct {
	repo      repository.QARepository
	matcher   matcher.Matcher
	bus       *eventbus.QAEventBus
	threshold int
}

// Reply 一次回复的结果
type Reply struct {
	Answer  string
	Matched bool // 为假时 Answer 为兜底回复
	Score   int  // 最相近问题的得分，无候选时为 0
}

// NewChatBotService 创建聊天服务；m 为空时按配置构造 FuzzyMatcher
func NewChatBotService(cfg *config.Config, repo repository.QARepository, m matcher.Matcher, bus *eventbus.QAEventBus) *ChatBotService {
	mc := cfg.Matcher
	if m == nil {
		m = matcher.NewFuzzyMatcher(mc.Algorithm)
	}
	return &ChatBotService{
		repo:      repo,
		matcher:   m,
		bus:       bus,
		threshold: mc.Threshold,
	}
}

// Respond 返回最相近问题的答案；最高分不超过阈值时返回兜底回复
func (s *ChatBotService) Respond(ctx context.Context, query string) (string, error) {
	reply, err := s.Reply(ctx, query)
	if err != nil {
		return "", err
	}
	return reply.Answer, nil
}

// Reply 返回回复及是否命中
func (s *ChatBotService) Reply(ctx context.Context, query string) (Reply, error) {
	if IsBlank(query) {
		return Reply{}, ErrInvalidInput
	}

	questions, err := s.repo.Questions(ctx)
	if err != nil {
		klog.Errorf("Respond: failed to list questions: %v", err)
		return Reply{}, storageErr("list questions", err)
	}

	klog.V(6).Infof("Respond: normalized query=%q, candidates=%d", matcher.Normalize(query), len(questions))

	match, ok := s.matcher.BestMatch(query, questions)
	if ok {
		klog.V(6).Infof("Respond: best match=%q score=%d", match.Text, match.Score)
	}

	if ok && match.Score > s.threshold {
		qa, err := s.repo.GetByQuestion(ctx, matcher.Normalize(match.Text))
		switch {
		case err == nil:
			klog.V(6).Infof("Respond: answer found for %q", query)
			s.publish(ctx, eventbus.QAEventMatched, eventbus.QAEvent{
				QAID:     qa.ID,
				Question: qa.Question,
				Query:    query,
				Score:    match.Score,
			})
			return Reply{Answer: qa.Answer, Matched: true, Score: match.Score}, nil
		case errors.Is(err, repository.ErrNotFound):
			// 列表与查询之间被删除，按未命中处理
		default:
			klog.Errorf("Respond: failed to load matched question %q: %v", match.Text, err)
			return Reply{}, storageErr("get question", err)
		}
	}

	klog.Warningf("Respond: no match found for %q", query)
	event := eventbus.QAEvent{Query: query}
	if ok {
		event.Question = match.Text
		event.Score = match.Score
	}
	s.publish(ctx, eventbus.QAEventUnmatched, event)
	return Reply{Answer: config.DefaultFallback, Score: event.Score}, nil
}

// Teach 以规范化问题为键写入答案：已存在则覆盖，否则新建。
// 并发教学同一问题时不报错，以最后提交者为准
func (s *ChatBotService) Teach(ctx context.Context, question, answer string) error {
	if IsBlank(question) || IsBlank(answer) {
		return ErrInvalidInput
	}
	normalized := matcher.Normalize(question)
	if normalized == "" {
		klog.Warningf("Teach: question %q is empty after normalization", question)
		return ErrInvalidInput
	}

	var (
		id      uint
		created bool
	)
	err := s.repo.Transaction(ctx, func(tx repository.QARepository) error {
		existing, err := tx.GetByQuestion(ctx, normalized)
		switch {
		case err == nil:
			klog.V(6).Infof("Teach: question already exists, updating answer for %q", normalized)
			id = existing.ID
			return tx.UpdateAnswer(ctx, existing.ID, answer)
		case errors.Is(err, repository.ErrNotFound):
			// 查询后可能已有并发插入，用 upsert 覆盖而不是报冲突
			qa := &model.QAPair{Question: normalized, Answer: answer}
			if err := tx.Upsert(ctx, qa); err != nil {
				return err
			}
			id = qa.ID
			created = true
			return nil
		default:
			return err
		}
	})
	if err != nil {
		klog.Errorf("Teach: failed to save %q: %v", normalized, err)
		return storageErr("teach", err)
	}

	eventType := eventbus.QAEventUpdated
	if created {
		eventType = eventbus.QAEventLearned
	}
	s.publish(ctx, eventType, eventbus.QAEvent{QAID: id, Question: normalized})
	klog.V(6).Infof("Teach: learned %q -> %q", normalized, answer)
	return nil
}

func (s *ChatBotService) publish(ctx context.Context, eventType eventbus.QAEventType, event eventbus.QAEvent) {
	event.Type = eventType
	if err := s.bus.Publish(ctx, eventType, event); err != nil {
		klog.Warningf("publish %s event failed: %v", eventType, err)
	}
}
