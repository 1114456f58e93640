// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/danielhkuo/premios/models"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	db  *sqlx.DB
	log *zap.Logger
}

func New(db *sqlx.DB, log *zap.Logger) *Store {
	return &Store{db: db, log: log}
}

// Timestamp normalizes a time the way the store persists it: UTC, rounded up
// to the microsecond PostgreSQL keeps. Rounding up means a stored pub_date is
// never earlier than the one requested.
//
// SQLite keeps timestamps as text with the fraction trimmed. In UTC the
// offset starts with "+", which sorts before "." and every digit, so text
// order still matches time order.
func Timestamp(t time.Time) time.Time {
	t = t.UTC()
	r := t.Truncate(time.Microsecond)
	if r.Before(t) {
		r = r.Add(time.Microsecond)
	}
	return r
}

// cutoff is the latest stored timestamp that is not after now. Stored values
// are whole microseconds, so pub_date <= now holds exactly when
// pub_date <= cutoff(now).
func cutoff(now time.Time) time.Time {
	return now.UTC().Truncate(time.Microsecond)
}

func castErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func utcQuestions(qs []models.Question) {
	for i := range qs {
		qs[i].PubDate = qs[i].PubDate.UTC()
	}
}

// LatestQuestions returns up to limit questions published at or before now,
// most recent first.
func (s *Store) LatestQuestions(ctx context.Context, now time.Time, limit int) ([]models.Question, error) {
	questions := []models.Question{}
	err := s.db.SelectContext(ctx, &questions, `
		SELECT id, question_text, pub_date
		FROM question
		WHERE pub_date <= $1
		ORDER BY pub_date DESC
		LIMIT $2
	`, cutoff(now), limit)
	if err != nil {
		return nil, fmt.Errorf("store: latest questions: %w", err)
	}
	utcQuestions(questions)
	return questions, nil
}

func (s *Store) Question(ctx context.Context, id string) (models.Question, error) {
	var q models.Question
	err := s.db.GetContext(ctx, &q, `
		SELECT id, question_text, pub_date
		FROM question
		WHERE id = $1
	`, id)
	if err != nil {
		return models.Question{}, fmt.Errorf("store: question %s: %w", id, castErr(err))
	}
	q.PubDate = q.PubDate.UTC()
	return q, nil
}

// Choices returns the choices of a question in display order.
func (s *Store) Choices(ctx context.Context, questionID string) ([]models.Choice, error) {
	return selectChoices(ctx, s.db, questionID)
}

func selectChoices(ctx context.Context, q sqlx.QueryerContext, questionID string) ([]models.Choice, error) {
	choices := []models.Choice{}
	err := sqlx.SelectContext(ctx, q, &choices, `
		SELECT id, question_id, choice_text, votes, sort_order
		FROM choice
		WHERE question_id = $1
		ORDER BY sort_order, id
	`, questionID)
	if err != nil {
		return nil, fmt.Errorf("store: choices of %s: %w", questionID, err)
	}
	return choices, nil
}

func (s *Store) CountChoices(ctx context.Context, questionID string) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, `
		SELECT COUNT(*) FROM choice WHERE question_id = $1
	`, questionID)
	if err != nil {
		return 0, fmt.Errorf("store: count choices of %s: %w", questionID, err)
	}
	return n, nil
}

func (s *Store) QuestionWithChoices(ctx context.Context, id string) (models.QuestionWithChoices, error) {
	q, err := s.Question(ctx, id)
	if err != nil {
		return models.QuestionWithChoices{}, err
	}
	choices, err := s.Choices(ctx, id)
	if err != nil {
		return models.QuestionWithChoices{}, err
	}
	return models.QuestionWithChoices{Question: q, Choices: choices}, nil
}

// Vote adds one vote to a choice of the given question. The increment is a
// single UPDATE so concurrent voters never lose a count. ErrNotFound means the
// choice does not exist or belongs to another question.
func (s *Store) Vote(ctx context.Context, questionID, choiceID string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE choice
		SET votes = votes + 1
		WHERE id = $1 AND question_id = $2
	`, choiceID, questionID)
	if err != nil {
		return fmt.Errorf("store: vote for %s: %w", choiceID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n != 1 {
		return fmt.Errorf("store: vote for %s: %w", choiceID, ErrNotFound)
	}
	return nil
}

// CreateQuestion inserts a question and its inline choices in one
// transaction. Choice ids in the form are ignored.
func (s *Store) CreateQuestion(ctx context.Context, form models.QuestionForm) (models.QuestionWithChoices, error) {
	q := models.Question{
		ID:           uuid.NewString(),
		QuestionText: form.QuestionText,
		PubDate:      Timestamp(form.PubDate),
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.QuestionWithChoices{}, fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO question (id, question_text, pub_date)
		VALUES ($1, $2, $3)
	`, q.ID, q.QuestionText, q.PubDate)
	if err != nil {
		return models.QuestionWithChoices{}, fmt.Errorf("store: insert question: %w", err)
	}

	choices := make([]models.Choice, 0, len(form.Choices))
	for i, cf := range form.Choices {
		c, err := insertChoice(ctx, tx, q.ID, cf.ChoiceText, i)
		if err != nil {
			return models.QuestionWithChoices{}, err
		}
		choices = append(choices, c)
	}

	if err := tx.Commit(); err != nil {
		return models.QuestionWithChoices{}, fmt.Errorf("store: commit: %w", err)
	}

	s.log.Debug("question created", zap.String("question_id", q.ID), zap.Int("choices", len(choices)))
	return models.QuestionWithChoices{Question: q, Choices: choices}, nil
}

func insertChoice(ctx context.Context, tx *sqlx.Tx, questionID, text string, order int) (models.Choice, error) {
	c := models.Choice{
		ID:         uuid.NewString(),
		QuestionID: questionID,
		ChoiceText: text,
		SortOrder:  order,
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO choice (id, question_id, choice_text, votes, sort_order)
		VALUES ($1, $2, $3, 0, $4)
	`, c.ID, c.QuestionID, c.ChoiceText, c.SortOrder)
	if err != nil {
		return models.Choice{}, fmt.Errorf("store: insert choice: %w", err)
	}
	return c, nil
}

// UpdateQuestion applies an admin edit. Inline choices with an id are renamed
// and reordered, choices without one are added, and existing choices missing
// from the form are deleted. Vote counts of kept choices are untouched.
func (s *Store) UpdateQuestion(ctx context.Context, id string, form models.QuestionForm) (models.QuestionWithChoices, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.QuestionWithChoices{}, fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE question
		SET question_text = $1, pub_date = $2
		WHERE id = $3
	`, form.QuestionText, Timestamp(form.PubDate), id)
	if err != nil {
		return models.QuestionWithChoices{}, fmt.Errorf("store: update question %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.QuestionWithChoices{}, fmt.Errorf("store: update question %s: %w", id, ErrNotFound)
	}

	existing, err := selectChoices(ctx, tx, id)
	if err != nil {
		return models.QuestionWithChoices{}, err
	}
	known := make(map[string]bool, len(existing))
	for _, c := range existing {
		known[c.ID] = true
	}

	kept := make(map[string]bool)
	for i, cf := range form.Choices {
		if cf.ID == "" {
			if _, err := insertChoice(ctx, tx, id, cf.ChoiceText, i); err != nil {
				return models.QuestionWithChoices{}, err
			}
			continue
		}
		if !known[cf.ID] {
			return models.QuestionWithChoices{}, models.ValidationErrors{
				"choices." + strconv.Itoa(i) + ".id": "Select a valid choice. That choice is not one of the available choices.",
			}
		}
		kept[cf.ID] = true
		_, err := tx.ExecContext(ctx, `
			UPDATE choice
			SET choice_text = $1, sort_order = $2
			WHERE id = $3
		`, cf.ChoiceText, i, cf.ID)
		if err != nil {
			return models.QuestionWithChoices{}, fmt.Errorf("store: update choice %s: %w", cf.ID, err)
		}
	}

	for _, c := range existing {
		if kept[c.ID] {
			continue
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM choice WHERE id = $1`, c.ID); err != nil {
			return models.QuestionWithChoices{}, fmt.Errorf("store: delete choice %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.QuestionWithChoices{}, fmt.Errorf("store: commit: %w", err)
	}

	return s.QuestionWithChoices(ctx, id)
}

// DeleteQuestion removes a question; its choices go with it through the
// foreign key cascade.
func (s *Store) DeleteQuestion(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM question WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("store: delete question %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("store: delete question %s: %w", id, ErrNotFound)
	}
	s.log.Debug("question deleted", zap.String("question_id", id))
	return nil
}

// ListQuestions backs the admin change list. It returns one page of matching
// questions, newest first, and the total number of matches.
func (s *Store) ListQuestions(ctx context.Context, filter models.QuestionFilter, now time.Time) ([]models.Question, int, error) {
	w := &where{}
	for _, term := range strings.Fields(filter.Search) {
		pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
		w.add("LOWER(question_text) LIKE "+w.arg(pattern)+` ESCAPE '\'`)
	}
	if from, to, ok := models.DateRange(filter.PubDate, now); ok {
		w.add("pub_date >= " + w.arg(Timestamp(from)))
		w.add("pub_date < " + w.arg(Timestamp(to)))
	}

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM question"+w.String(), w.args...); err != nil {
		return nil, 0, fmt.Errorf("store: count questions: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	query := "SELECT id, question_text, pub_date FROM question" + w.String() +
		" ORDER BY pub_date DESC LIMIT " + w.arg(models.AdminPageSize) +
		" OFFSET " + w.arg((page-1)*models.AdminPageSize)

	questions := []models.Question{}
	if err := s.db.SelectContext(ctx, &questions, query, w.args...); err != nil {
		return nil, 0, fmt.Errorf("store: list questions: %w", err)
	}
	utcQuestions(questions)
	return questions, total, nil
}

func (s *Store) Choice(ctx context.Context, id string) (models.Choice, error) {
	var c models.Choice
	err := s.db.GetContext(ctx, &c, `
		SELECT id, question_id, choice_text, votes, sort_order
		FROM choice
		WHERE id = $1
	`, id)
	if err != nil {
		return models.Choice{}, fmt.Errorf("store: choice %s: %w", id, castErr(err))
	}
	return c, nil
}

// ListChoices backs the standalone choice admin. An empty questionID lists
// choices of every question.
func (s *Store) ListChoices(ctx context.Context, questionID string, page int) ([]models.Choice, error) {
	if page < 1 {
		page = 1
	}
	w := &where{}
	if questionID != "" {
		w.add("question_id = " + w.arg(questionID))
	}
	query := "SELECT id, question_id, choice_text, votes, sort_order FROM choice" + w.String() +
		" ORDER BY question_id, sort_order, id LIMIT " + w.arg(models.AdminPageSize) +
		" OFFSET " + w.arg((page-1)*models.AdminPageSize)

	choices := []models.Choice{}
	if err := s.db.SelectContext(ctx, &choices, query, w.args...); err != nil {
		return nil, fmt.Errorf("store: list choices: %w", err)
	}
	return choices, nil
}

// UpdateChoice is the only path that may lower a vote count.
func (s *Store) UpdateChoice(ctx context.Context, id string, req models.UpdateChoiceRequest) (models.Choice, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE choice
		SET choice_text = $1, votes = COALESCE($2, votes)
		WHERE id = $3
	`, req.ChoiceText, req.Votes, id)
	if err != nil {
		return models.Choice{}, fmt.Errorf("store: update choice %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.Choice{}, fmt.Errorf("store: update choice %s: %w", id, ErrNotFound)
	}
	return s.Choice(ctx, id)
}

func (s *Store) DeleteChoice(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM choice WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("store: delete choice %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("store: delete choice %s: %w", id, ErrNotFound)
	}
	return nil
}
