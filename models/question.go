// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// WasPublishedRecently reports whether the question went live within the last
// day: now - 24h < pub_date <= now. Future questions are never recent.
func (q Question) WasPublishedRecently(now time.Time) bool {
	return now.Add(-RecentWindow).Before(q.PubDate) && !q.PubDate.After(now)
}

// IsListable reports whether the question may appear on public pages.
func (q Question) IsListable(now time.Time) bool {
	return !q.PubDate.After(now)
}

// HasResults reports whether enough choices exist for a results page.
func HasResults(choiceCount int) bool {
	return choiceCount >= MinChoices
}

// Row converts a question into its admin change-list representation.
func (q Question) Row(now time.Time) QuestionRow {
	return QuestionRow{
		ID:                   q.ID,
		QuestionText:         q.QuestionText,
		PubDate:              q.PubDate,
		WasPublishedRecently: q.WasPublishedRecently(now),
	}
}

// ValidationErrors maps a form field to the reason it was rejected.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// Validate applies the admin form rules. The two-choice minimum lives here,
// not in the schema, so the standalone choice admin can still delete rows.
func (f QuestionForm) Validate() error {
	errs := ValidationErrors{}

	validateText(errs, "question_text", f.QuestionText)
	if f.PubDate.IsZero() {
		errs["pub_date"] = "This field is required."
	}

	if len(f.Choices) < MinChoices {
		errs["choices"] = "Please submit at least 2 choices."
	}
	seen := make(map[string]bool)
	for i, c := range f.Choices {
		validateText(errs, "choices."+strconv.Itoa(i)+".choice_text", c.ChoiceText)
		if c.ID == "" {
			continue
		}
		if seen[c.ID] {
			errs["choices."+strconv.Itoa(i)+".id"] = "Duplicate choice."
		}
		seen[c.ID] = true
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Validate checks a standalone choice edit.
func (r UpdateChoiceRequest) Validate() error {
	errs := ValidationErrors{}
	validateText(errs, "choice_text", r.ChoiceText)
	if r.Votes != nil && *r.Votes < 0 {
		errs["votes"] = "Ensure this value is greater than or equal to 0."
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateText(errs ValidationErrors, field, value string) {
	switch {
	case strings.TrimSpace(value) == "":
		errs[field] = "This field is required."
	case utf8.RuneCountInString(value) > MaxTextLength:
		errs[field] = "Ensure this value has at most 200 characters."
	}
}

// DateRange returns the half-open [from, to) interval a change-list date
// filter selects, measured in UTC days around now. ok is false for "any" and
// unknown filters.
func DateRange(filter string, now time.Time) (from, to time.Time, ok bool) {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	switch filter {
	case DateFilterToday:
		return today, tomorrow, true
	case DateFilterPast7Days:
		return today.AddDate(0, 0, -7), tomorrow, true
	case DateFilterThisMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return first, first.AddDate(0, 1, 0), true
	case DateFilterThisYear:
		first := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return first, first.AddDate(1, 0, 0), true
	}
	return time.Time{}, time.Time{}, false
}
