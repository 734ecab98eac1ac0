package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/qabot/backend/internal/model"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db error: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle error: %v", err)
	}
	// :memory: 每个连接一个独立库，固定单连接
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("migrate error: %v", err)
	}
	return db
}

func TestQARepositoryCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewQARepository(openTestDB(t))

	pairs := []model.QAPair{
		{Question: "what are your hours", Answer: "9 to 5"},
		{Question: "where is the office", Answer: "main street"},
	}
	for i := range pairs {
		if err := repo.Create(ctx, &pairs[i]); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	questions, err := repo.Questions(ctx)
	if err != nil {
		t.Fatalf("Questions error: %v", err)
	}
	if len(questions) != 2 || questions[0] != "what are your hours" || questions[1] != "where is the office" {
		t.Fatalf("unexpected questions: %v", questions)
	}

	got, err := repo.GetByQuestion(ctx, "where is the office")
	if err != nil {
		t.Fatalf("GetByQuestion error: %v", err)
	}
	if got.Answer != "main street" {
		t.Fatalf("unexpected answer: %s", got.Answer)
	}

	if _, err := repo.GetByQuestion(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.Get(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestQARepositoryUniqueQuestion(t *testing.T) {
	ctx := context.Background()
	repo := NewQARepository(openTestDB(t))

	if err := repo.Create(ctx, &model.QAPair{Question: "what time", Answer: "noon"}); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	err := repo.Create(ctx, &model.QAPair{Question: "what time", Answer: "1pm"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestQARepositoryUpsertOverwritesExisting(t *testing.T) {
	ctx := context.Background()
	repo := NewQARepository(openTestDB(t))

	first := &model.QAPair{Question: "what time", Answer: "noon"}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
	if first.ID == 0 {
		t.Fatalf("expected id after insert")
	}

	second := &model.QAPair{Question: "what time", Answer: "1pm"}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("Upsert on existing question should not fail: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected id %d, got %d", first.ID, second.ID)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row, got %d", count)
	}
	got, err := repo.GetByQuestion(ctx, "what time")
	if err != nil {
		t.Fatalf("GetByQuestion error: %v", err)
	}
	if got.Answer != "1pm" {
		t.Fatalf("expected last answer to win, got %s", got.Answer)
	}
}

func TestQARepositoryUpdateAnswerAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewQARepository(openTestDB(t))

	qa := &model.QAPair{Question: "what time", Answer: "noon"}
	if err := repo.Create(ctx, qa); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := repo.UpdateAnswer(ctx, qa.ID, "1pm"); err != nil {
		t.Fatalf("UpdateAnswer error: %v", err)
	}
	got, err := repo.Get(ctx, qa.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Answer != "1pm" {
		t.Fatalf("unexpected answer: %s", got.Answer)
	}

	if err := repo.Delete(ctx, qa.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := repo.Delete(ctx, qa.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty table, got %d", count)
	}
}

func TestQARepositoryTransactionRollback(t *testing.T) {
	ctx := context.Background()
	repo := NewQARepository(openTestDB(t))

	boom := errors.New("boom")
	err := repo.Transaction(ctx, func(tx QARepository) error {
		if err := tx.Create(ctx, &model.QAPair{Question: "temp", Answer: "x"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback, got %d rows", count)
	}
}
