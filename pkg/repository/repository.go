package repository

import (
	"context"

	"github.com/garnizeh/trivia/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
// Single-row lookups return (nil, nil) when nothing matches.

type CategoryRepo interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
}

type QuestionRepo interface {
	// ListQuestions returns a page of questions ordered by id descending.
	ListQuestions(ctx context.Context, limit, offset int) ([]models.Question, error)
	CountQuestions(ctx context.Context) (int64, error)
	GetQuestion(ctx context.Context, id int64) (*models.Question, error)
	CreateQuestion(ctx context.Context, q *models.NewQuestion) (*models.Question, error)
	DeleteQuestion(ctx context.Context, id int64) error
	// SearchQuestions returns questions whose text matches %term% (LIKE), ordered by id ascending.
	SearchQuestions(ctx context.Context, term string) ([]models.Question, error)
	// ListByCategory returns the questions of one category ordered by id ascending.
	ListByCategory(ctx context.Context, categoryID int64) ([]models.Question, error)
	// QuizCandidates returns the questions of cat whose id is not in exclude.
	QuizCandidates(ctx context.Context, cat models.QuizCategory, exclude []int64) ([]models.Question, error)
}
