package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"slices"
	"strconv"

	"github.com/garnizeh/trivia/pkg/models"
	"github.com/garnizeh/trivia/pkg/repository"
	"github.com/gorilla/mux"
)

// QuestionsPerPage is the page size of GET /api/questions.
const QuestionsPerPage = 10

// createKeys is the exact key set, sorted, a question creation body must have.
var createKeys = []string{"answer", "category", "difficulty", "question"}

type QuestionsHandler struct {
	questionRepo repository.QuestionRepo
	categoryRepo repository.CategoryRepo
}

func NewQuestionsHandler(qr repository.QuestionRepo, cr repository.CategoryRepo) *QuestionsHandler {
	return &QuestionsHandler{questionRepo: qr, categoryRepo: cr}
}

// current_category repeats the full category list on purpose; the web client
// reads it from there.
type questionsPageResponse struct {
	Success         bool              `json:"success"`
	Questions       []models.Question `json:"questions"`
	TotalQuestions  int64             `json:"total_questions"`
	Categories      []models.Category `json:"categories"`
	CurrentCategory []models.Category `json:"current_category"`
}

type questionResponse struct {
	Success  bool             `json:"success"`
	Question *models.Question `json:"question"`
}

type searchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

type searchResponse struct {
	Success         bool              `json:"success"`
	Questions       []models.Question `json:"questions"`
	TotalQuestions  int               `json:"total_questions"`
	CurrentCategory *models.Category  `json:"current_category"`
}

// maxPage is the largest page whose offset still fits in an int.
const maxPage = math.MaxInt/QuestionsPerPage + 1

// pageParam returns the page query parameter; anything that is not an
// integer counts as page 1. An integer too large for int reports -1, which
// is never a valid page.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if errors.Is(err, strconv.ErrRange) {
		return -1
	}
	if err != nil {
		return 1
	}
	return page
}

func (h *QuestionsHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)
	if page < 1 || page > maxPage {
		writeError(w, http.StatusNotFound)
		return
	}

	ctx := r.Context()
	qs, err := h.questionRepo.ListQuestions(ctx, QuestionsPerPage, (page-1)*QuestionsPerPage)
	if err != nil {
		logger.Error("list questions", slog.Int("page", page), slog.Any("err", err))
		writeError(w, http.StatusInternalServerError)
		return
	}
	if len(qs) == 0 {
		writeError(w, http.StatusNotFound)
		return
	}

	total, err := h.questionRepo.CountQuestions(ctx)
	if err != nil {
		logger.Error("count questions", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError)
		return
	}

	cats, err := h.categoryRepo.ListCategories(ctx)
	if err != nil {
		logger.Error("list categories", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError)
		return
	}
	if len(cats) == 0 {
		writeError(w, http.StatusNotFound)
		return
	}

	writeJSON(w, questionsPageResponse{
		Success:         true,
		Questions:       qs,
		TotalQuestions:  total,
		Categories:      cats,
		CurrentCategory: cats,
	}, http.StatusOK)
}

// DeleteQuestion answers 422 rather than 404 for an unknown id. An id too
// large to parse cannot name a stored row, so it is unknown too.
func (h *QuestionsHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["question_id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity)
		return
	}

	ctx := r.Context()
	q, err := h.questionRepo.GetQuestion(ctx, id)
	if err != nil {
		logger.Error("get question", slog.Int64("question_id", id), slog.Any("err", err))
		writeError(w, http.StatusInternalServerError)
		return
	}
	if q == nil {
		writeError(w, http.StatusUnprocessableEntity)
		return
	}

	if err := h.questionRepo.DeleteQuestion(ctx, id); err != nil {
		logger.Error("delete question", slog.Int64("question_id", id), slog.Any("err", err))
		writeError(w, http.StatusInternalServerError)
		return
	}

	writeJSON(w, successResponse{Success: true}, http.StatusOK)
}

// CreateQuestion stores a question. The body must have exactly the keys in
// createKeys, in any order; the values themselves are not type-checked.
func (h *QuestionsHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest)
		return
	}

	keys, err := objectKeys(body)
	if err != nil {
		writeError(w, http.StatusBadRequest)
		return
	}
	slices.Sort(keys)
	if !slices.Equal(keys, createKeys) {
		writeError(w, http.StatusBadRequest)
		return
	}

	in, err := decodeObject(body)
	if err != nil {
		writeError(w, http.StatusBadRequest)
		return
	}

	nq := &models.NewQuestion{
		Question:   in["question"],
		Answer:     in["answer"],
		Category:   in["category"],
		Difficulty: in["difficulty"],
	}
	q, err := h.questionRepo.CreateQuestion(r.Context(), nq)
	if err != nil {
		logger.Error("create question", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError)
		return
	}

	writeJSON(w, questionResponse{Success: true, Question: q}, http.StatusOK)
}

func (h *QuestionsHandler) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if err := validate(ctx, searchSchema, body); err != nil {
		logger.Debug("invalid search body", slog.Any("err", err))
		writeError(w, http.StatusBadRequest)
		return
	}

	var req searchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest)
		return
	}

	qs, err := h.questionRepo.SearchQuestions(ctx, req.SearchTerm)
	if err != nil {
		logger.Error("search questions", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError)
		return
	}
	if len(qs) == 0 {
		writeError(w, http.StatusNotFound)
		return
	}

	writeJSON(w, searchResponse{Success: true, Questions: qs, TotalQuestions: len(qs)}, http.StatusOK)
}
