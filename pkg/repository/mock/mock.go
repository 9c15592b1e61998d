package mock

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/garnizeh/trivia/pkg/models"
)

// Test helpers and mocks
type Mocks struct {
	CatRepo   *mockCategoryRepo
	QuestRepo *mockQuestionRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		CatRepo:   &mockCategoryRepo{},
		QuestRepo: &mockQuestionRepo{},
	}
}

type mockCategoryRepo struct {
	Stored  []models.Category
	ListErr error
}

func (m *mockCategoryRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return slices.Clone(m.Stored), nil
}

func (m *mockCategoryRepo) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	for _, c := range m.Stored {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, nil
}

type mockQuestionRepo struct {
	Stored    []models.Question
	LastID    int64
	ReadErr   error
	CreateErr error
	DeleteErr error
}

// Add stores q with the next id and returns that id.
func (m *mockQuestionRepo) Add(q models.Question) int64 {
	m.LastID++
	q.ID = m.LastID
	m.Stored = append(m.Stored, q)
	return q.ID
}

func (m *mockQuestionRepo) sorted(desc bool) []models.Question {
	out := slices.Clone(m.Stored)
	sort.Slice(out, func(i, j int) bool {
		if desc {
			return out[i].ID > out[j].ID
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *mockQuestionRepo) ListQuestions(ctx context.Context, limit, offset int) ([]models.Question, error) {
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	all := m.sorted(true)
	if offset < 0 || offset >= len(all) {
		return nil, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], nil
}

func (m *mockQuestionRepo) CountQuestions(ctx context.Context) (int64, error) {
	if m.ReadErr != nil {
		return 0, m.ReadErr
	}
	return int64(len(m.Stored)), nil
}

func (m *mockQuestionRepo) GetQuestion(ctx context.Context, id int64) (*models.Question, error) {
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	for _, q := range m.Stored {
		if q.ID == id {
			return &q, nil
		}
	}
	return nil, nil
}

func (m *mockQuestionRepo) CreateQuestion(ctx context.Context, nq *models.NewQuestion) (*models.Question, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	if nq == nil {
		return nil, fmt.Errorf("question is nil")
	}
	q := models.Question{
		Question:   nq.Question,
		Answer:     nq.Answer,
		Category:   nq.Category,
		Difficulty: nq.Difficulty,
	}
	q.ID = m.Add(q)
	return &q, nil
}

func (m *mockQuestionRepo) DeleteQuestion(ctx context.Context, id int64) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.Stored = slices.DeleteFunc(m.Stored, func(q models.Question) bool { return q.ID == id })
	return nil
}

func (m *mockQuestionRepo) SearchQuestions(ctx context.Context, term string) ([]models.Question, error) {
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	var out []models.Question
	for _, q := range m.sorted(false) {
		text, _ := q.Question.(string)
		if strings.Contains(strings.ToLower(text), strings.ToLower(term)) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *mockQuestionRepo) ListByCategory(ctx context.Context, categoryID int64) ([]models.Question, error) {
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	var out []models.Question
	for _, q := range m.sorted(false) {
		if sameCategory(q.Category, categoryID) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *mockQuestionRepo) QuizCandidates(ctx context.Context, cat models.QuizCategory, exclude []int64) ([]models.Question, error) {
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	var out []models.Question
	for _, q := range m.sorted(false) {
		if !cat.All && !sameCategory(q.Category, cat.ID) {
			continue
		}
		if slices.Contains(exclude, q.ID) {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func sameCategory(v any, id int64) bool {
	return fmt.Sprint(v) == fmt.Sprint(id)
}
