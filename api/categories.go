package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/garnizeh/trivia/pkg/models"
	"github.com/garnizeh/trivia/pkg/repository"
	"github.com/gorilla/mux"
)

type CategoriesHandler struct {
	categoryRepo repository.CategoryRepo
	questionRepo repository.QuestionRepo
}

func NewCategoriesHandler(cr repository.CategoryRepo, qr repository.QuestionRepo) *CategoriesHandler {
	return &CategoriesHandler{categoryRepo: cr, questionRepo: qr}
}

type categoriesResponse struct {
	Success    bool              `json:"success"`
	Categories []models.Category `json:"categories"`
}

type categoryQuestionsResponse struct {
	Success         bool              `json:"success"`
	Questions       []models.Question `json:"questions"`
	TotalQuestions  int               `json:"total_questions"`
	CurrentCategory *models.Category  `json:"current_category"`
}

func (h *CategoriesHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.categoryRepo.ListCategories(r.Context())
	if err != nil {
		logger.Error("list categories", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError)
		return
	}
	if len(cats) == 0 {
		writeError(w, http.StatusNotFound)
		return
	}

	writeJSON(w, categoriesResponse{Success: true, Categories: cats}, http.StatusOK)
}

// ListCategoryQuestions returns every question of the category in the path.
// An unknown category answers 404 before any question lookup.
func (h *CategoriesHandler) ListCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["category_id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound)
		return
	}

	ctx := r.Context()
	cat, err := h.categoryRepo.GetCategory(ctx, id)
	if err != nil {
		logger.Error("get category", slog.Int64("category_id", id), slog.Any("err", err))
		writeError(w, http.StatusInternalServerError)
		return
	}
	if cat == nil {
		writeError(w, http.StatusNotFound)
		return
	}

	qs, err := h.questionRepo.ListByCategory(ctx, id)
	if err != nil {
		logger.Error("list category questions", slog.Int64("category_id", id), slog.Any("err", err))
		writeError(w, http.StatusInternalServerError)
		return
	}
	if len(qs) == 0 {
		writeError(w, http.StatusNotFound)
		return
	}

	writeJSON(w, categoryQuestionsResponse{
		Success:         true,
		Questions:       qs,
		TotalQuestions:  len(qs),
		CurrentCategory: cat,
	}, http.StatusOK)
}
