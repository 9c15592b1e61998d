package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/garnizeh/trivia/pkg/models"
	"github.com/garnizeh/trivia/pkg/repository"
)

// QuestionGenerator drafts a question for a category; it does not store it.
type QuestionGenerator interface {
	Generate(ctx context.Context, category models.Category, difficulty int) (*models.NewQuestion, error)
}

type GenerationsHandler struct {
	generator    QuestionGenerator
	questionRepo repository.QuestionRepo
	categoryRepo repository.CategoryRepo
}

func NewGenerationsHandler(g QuestionGenerator, qr repository.QuestionRepo, cr repository.CategoryRepo) *GenerationsHandler {
	return &GenerationsHandler{generator: g, questionRepo: qr, categoryRepo: cr}
}

// GenerateQuestion drafts a question with the generator and stores it the
// same way CreateQuestion does.
func (h *GenerationsHandler) GenerateQuestion(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if err := validate(ctx, generationSchema, body); err != nil {
		logger.Debug("invalid generation body", slog.Any("err", err))
		writeError(w, http.StatusBadRequest)
		return
	}

	in, err := decodeObject(body)
	if err != nil {
		writeError(w, http.StatusBadRequest)
		return
	}
	categoryID, err := parseID(in["category"])
	if err != nil {
		writeError(w, http.StatusBadRequest)
		return
	}
	difficulty, err := parseID(in["difficulty"])
	if err != nil {
		writeError(w, http.StatusBadRequest)
		return
	}

	cat, err := h.categoryRepo.GetCategory(ctx, categoryID)
	if err != nil {
		logger.Error("get category", slog.Int64("category_id", categoryID), slog.Any("err", err))
		writeError(w, http.StatusInternalServerError)
		return
	}
	if cat == nil {
		writeError(w, http.StatusNotFound)
		return
	}

	nq, err := h.generator.Generate(ctx, *cat, int(difficulty))
	if err != nil {
		logger.Error("generate question", slog.Int64("category_id", categoryID), slog.Any("err", err))
		writeError(w, http.StatusInternalServerError)
		return
	}

	q, err := h.questionRepo.CreateQuestion(ctx, nq)
	if err != nil {
		logger.Error("store generated question", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError)
		return
	}

	writeJSON(w, questionResponse{Success: true, Question: q}, http.StatusOK)
}
