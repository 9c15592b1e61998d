package models

// Domain models matching the database schema in db/migrations/0001_init.sql

type Category struct {
	ID   int64  `json:"id" db:"id"`
	Type string `json:"type" db:"type"`
}

// Question is a stored trivia question. Every field but ID carries whatever
// value the store holds for it (NULL included), since creation accepts any
// JSON value.
type Question struct {
	ID         int64 `json:"id" db:"id"`
	Question   any   `json:"question" db:"question"`
	Answer     any   `json:"answer" db:"answer"`
	Category   any   `json:"category" db:"category"`
	Difficulty any   `json:"difficulty" db:"difficulty"`
}

// NewQuestion holds the four client-supplied values of a question to create.
type NewQuestion struct {
	Question   any
	Answer     any
	Category   any
	Difficulty any
}

// QuizCategory selects the pool a quiz draws from: every category, or a
// single category by id.
type QuizCategory struct {
	All bool
	ID  int64
}

func AllCategories() QuizCategory {
	return QuizCategory{All: true}
}

func SpecificCategory(id int64) QuizCategory {
	return QuizCategory{ID: id}
}
