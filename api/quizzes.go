package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"slices"

	"github.com/garnizeh/trivia/pkg/models"
	"github.com/garnizeh/trivia/pkg/repository"
)

// allCategoriesMarker is the quiz_category.type value meaning "any category".
const allCategoriesMarker = "click"

// quizKeys is the exact key list, in order, of a next-question body.
var quizKeys = []string{"previous_questions", "quiz_category"}

type QuizzesHandler struct {
	questionRepo repository.QuestionRepo
	pick         func(n int) int
}

func NewQuizzesHandler(qr repository.QuestionRepo) *QuizzesHandler {
	return &QuizzesHandler{questionRepo: qr, pick: rand.IntN}
}

type quizRequest struct {
	PreviousQuestions []int64 `json:"previous_questions"`
	QuizCategory      struct {
		Type json.RawMessage `json:"type"`
	} `json:"quiz_category"`
}

// quizResponse.Question is either a *models.Question or "" when the pool is
// exhausted.
type quizResponse struct {
	Success  bool `json:"success"`
	Question any  `json:"question"`
}

// parseQuizCategory maps quiz_category.type onto a QuizCategory: the marker
// string selects every category, an object selects the category by its id.
func parseQuizCategory(raw json.RawMessage) (models.QuizCategory, error) {
	var marker string
	if err := json.Unmarshal(raw, &marker); err == nil {
		if marker == allCategoriesMarker {
			return models.AllCategories(), nil
		}
		return models.QuizCategory{}, errors.New("unknown quiz category marker")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil || obj == nil {
		return models.QuizCategory{}, errors.New("quiz category is neither a marker nor an object")
	}
	id, err := parseID(obj["id"])
	if err != nil {
		return models.QuizCategory{}, err
	}
	return models.SpecificCategory(id), nil
}

// NextQuestion picks a random question of the requested category that is not
// in previous_questions. The body keys must be exactly quizKeys, in order.
func (h *QuizzesHandler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest)
		return
	}

	keys, err := objectKeys(body)
	if err != nil || !slices.Equal(keys, quizKeys) {
		writeError(w, http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if err := validate(ctx, quizSchema, body); err != nil {
		logger.Debug("invalid quiz body", slog.Any("err", err))
		writeError(w, http.StatusBadRequest)
		return
	}

	var req quizRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest)
		return
	}
	cat, err := parseQuizCategory(req.QuizCategory.Type)
	if err != nil {
		writeError(w, http.StatusBadRequest)
		return
	}

	candidates, err := h.questionRepo.QuizCandidates(ctx, cat, req.PreviousQuestions)
	if err != nil {
		logger.Error("quiz candidates", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError)
		return
	}
	if len(candidates) == 0 {
		writeJSON(w, quizResponse{Success: true, Question: ""}, http.StatusOK)
		return
	}

	q := candidates[h.pick(len(candidates))]
	writeJSON(w, quizResponse{Success: true, Question: &q}, http.StatusOK)
}
