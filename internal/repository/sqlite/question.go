package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/garnizeh/trivia/pkg/models"
)

const questionColumns = `id, question, answer, category, difficulty`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(s rowScanner) (models.Question, error) {
	var q models.Question
	err := s.Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.Difficulty)
	return q, err
}

func (r *SQLiteRepo) queryQuestions(ctx context.Context, query string, args ...any) ([]models.Question, error) {
	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) ListQuestions(ctx context.Context, limit, offset int) ([]models.Question, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		return nil, fmt.Errorf("list questions: negative offset %d", offset)
	}

	out, err := r.queryQuestions(ctx, `SELECT `+questionColumns+` FROM questions ORDER BY id DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepo) CountQuestions(ctx context.Context) (int64, error) {
	row := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM questions`)
	var cnt int64
	if err := row.Scan(&cnt); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return cnt, nil
}

func (r *SQLiteRepo) GetQuestion(ctx context.Context, id int64) (*models.Question, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+questionColumns+` FROM questions WHERE id = ?`, id)
	q, err := scanQuestion(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get question %d: %w", id, err)
	}
	return &q, nil
}

// CreateQuestion inserts nq and returns the row as stored, so column affinity
// conversions (e.g. "1" -> 1 for category) are reflected in the result.
func (r *SQLiteRepo) CreateQuestion(ctx context.Context, nq *models.NewQuestion) (*models.Question, error) {
	if nq == nil {
		return nil, fmt.Errorf("question is nil")
	}

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `INSERT INTO questions (question, answer, category, difficulty) VALUES (?, ?, ?, ?)`,
		storable(nq.Question), storable(nq.Answer), storable(nq.Category), storable(nq.Difficulty))
	if err != nil {
		return nil, fmt.Errorf("insert question: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert question id: %w", err)
	}

	q, err := scanQuestion(tx.QueryRowContext(ctx, `SELECT `+questionColumns+` FROM questions WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("read back question %d: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	r.logger.Debug("question created", slog.Int64("id", id))
	return &q, nil
}

func (r *SQLiteRepo) DeleteQuestion(ctx context.Context, id int64) error {
	if _, err := r.conn.Exec(ctx, `DELETE FROM questions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepo) SearchQuestions(ctx context.Context, term string) ([]models.Question, error) {
	out, err := r.queryQuestions(ctx, `SELECT `+questionColumns+` FROM questions WHERE question LIKE ? ORDER BY id`, "%"+term+"%")
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepo) ListByCategory(ctx context.Context, categoryID int64) ([]models.Question, error) {
	out, err := r.queryQuestions(ctx, `SELECT `+questionColumns+` FROM questions WHERE category = ? ORDER BY id`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list questions of category %d: %w", categoryID, err)
	}
	return out, nil
}

func (r *SQLiteRepo) QuizCandidates(ctx context.Context, cat models.QuizCategory, exclude []int64) ([]models.Question, error) {
	var where []string
	var args []any
	if !cat.All {
		where = append(where, "category = ?")
		args = append(args, cat.ID)
	}
	if len(exclude) > 0 {
		marks := strings.TrimSuffix(strings.Repeat("?,", len(exclude)), ",")
		where = append(where, "id NOT IN ("+marks+")")
		for _, id := range exclude {
			args = append(args, id)
		}
	}

	query := `SELECT ` + questionColumns + ` FROM questions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	out, err := r.queryQuestions(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("quiz candidates: %w", err)
	}
	return out, nil
}
