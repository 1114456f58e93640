// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

const (
	// LatestQuestionsLimit caps the public index page.
	LatestQuestionsLimit = 5

	// MinChoices is the number of choices a question needs before its
	// results can be shown, and the minimum an admin form must submit.
	MinChoices = 2

	// RecentWindow is how far back a question still counts as recent.
	RecentWindow = 24 * time.Hour

	// MaxTextLength bounds question_text and choice_text.
	MaxTextLength = 200

	// AdminPageSize is the number of rows per admin change-list page.
	AdminPageSize = 100
)

// Admin change-list date filters
const (
	DateFilterAny       = "any"
	DateFilterToday     = "today"
	DateFilterPast7Days = "past_7_days"
	DateFilterThisMonth = "this_month"
	DateFilterThisYear  = "this_year"
)

// Domain types

type Question struct {
	ID           string    `db:"id" json:"id"`
	QuestionText string    `db:"question_text" json:"question_text"`
	PubDate      time.Time `db:"pub_date" json:"pub_date"`
}

type Choice struct {
	ID         string `db:"id" json:"id"`
	QuestionID string `db:"question_id" json:"question_id"`
	ChoiceText string `db:"choice_text" json:"choice_text"`
	Votes      int    `db:"votes" json:"votes"`
	SortOrder  int    `db:"sort_order" json:"-"`
}

type QuestionWithChoices struct {
	Question Question `json:"question"`
	Choices  []Choice `json:"choices"`
}

// QuestionFilter selects rows for the admin change list.
type QuestionFilter struct {
	Search  string
	PubDate string
	Page    int
}

// Request types

// QuestionForm is the admin create/edit payload. Inline choices never carry
// vote counts.
type QuestionForm struct {
	QuestionText string       `json:"question_text" yaml:"question_text"`
	PubDate      time.Time    `json:"pub_date" yaml:"pub_date"`
	Choices      []ChoiceForm `json:"choices" yaml:"choices"`
}

type ChoiceForm struct {
	ID         string `json:"id,omitempty" yaml:"id,omitempty"`
	ChoiceText string `json:"choice_text" yaml:"choice_text"`
}

// UpdateChoiceRequest is the standalone choice admin payload. Unlike the
// inline form it may set the vote count.
type UpdateChoiceRequest struct {
	ChoiceText string `json:"choice_text"`
	Votes      *int   `json:"votes,omitempty"`
}

// Response types

type QuestionRow struct {
	ID                   string    `json:"id"`
	QuestionText         string    `json:"question_text"`
	PubDate              time.Time `json:"pub_date"`
	WasPublishedRecently bool      `json:"was_published_recently"`
}

type QuestionListResponse struct {
	Results []QuestionRow `json:"results"`
	Count   int           `json:"count"`
	Page    int           `json:"page"`
	PerPage int           `json:"per_page"`
}

type InlineChoice struct {
	ID         string `json:"id"`
	ChoiceText string `json:"choice_text"`
}

type QuestionAdminResponse struct {
	Question             Question       `json:"question"`
	WasPublishedRecently bool           `json:"was_published_recently"`
	Choices              []InlineChoice `json:"choices"`
}

// Error response

type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}
