package api

import (
	"net/http"

	"github.com/garnizeh/trivia/internal/db"
	"github.com/garnizeh/trivia/internal/repository/sqlite"
	"github.com/garnizeh/trivia/pkg/repository"
	"github.com/gorilla/mux"
)

// Deps are the collaborators the router needs. A nil Generator leaves the
// generation endpoint unrouted.
type Deps struct {
	Questions  repository.QuestionRepo
	Categories repository.CategoryRepo
	Generator  QuestionGenerator
	Version    string
	BuildTime  string
}

// SetupRoutes builds the service handler backed by the sqlite repository on db.
func SetupRoutes(version, buildTime string, db *db.DB, gen QuestionGenerator) http.Handler {
	repo := sqlite.New(db, logger)

	return NewRouter(Deps{
		Questions:  repo,
		Categories: repo,
		Generator:  gen,
		Version:    version,
		BuildTime:  buildTime,
	})
}

func NewRouter(d Deps) http.Handler {
	r := mux.NewRouter()
	r.Use(RecoveryMiddleware)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed)
	})

	// Create handlers
	systemHandler := &SystemHandler{}
	categoriesHandler := NewCategoriesHandler(d.Categories, d.Questions)
	questionsHandler := NewQuestionsHandler(d.Questions, d.Categories)
	quizzesHandler := NewQuizzesHandler(d.Questions)

	r.HandleFunc("/version", systemHandler.VersionHandler(d.Version, d.BuildTime)).Methods(http.MethodGet)
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods(http.MethodGet)

	apiRouter := r.PathPrefix("/api").Subrouter()

	apiRouter.HandleFunc("/categories", categoriesHandler.ListCategories).Methods(http.MethodGet)
	apiRouter.HandleFunc("/categories/{category_id:[0-9]+}/questions", categoriesHandler.ListCategoryQuestions).Methods(http.MethodGet)

	apiRouter.HandleFunc("/questions", questionsHandler.ListQuestions).Methods(http.MethodGet)
	apiRouter.HandleFunc("/questions", questionsHandler.CreateQuestion).Methods(http.MethodPost)
	apiRouter.HandleFunc("/questions/searches", questionsHandler.SearchQuestions).Methods(http.MethodPost)
	apiRouter.HandleFunc("/questions/{question_id:[0-9]+}", questionsHandler.DeleteQuestion).Methods(http.MethodDelete)

	apiRouter.HandleFunc("/quizzes", quizzesHandler.NextQuestion).Methods(http.MethodPost)

	if d.Generator != nil {
		generationsHandler := NewGenerationsHandler(d.Generator, d.Questions, d.Categories)
		apiRouter.HandleFunc("/questions/generations", generationsHandler.GenerateQuestion).Methods(http.MethodPost)
	}

	// CORS and logging wrap the router so preflights and unmatched paths get them too
	var h http.Handler = r
	h = CORSMiddleware(h)
	h = LoggingMiddleware(h)
	return h
}
