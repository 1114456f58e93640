// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var now = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func TestWasPublishedRecently(t *testing.T) {
	tests := []struct {
		name    string
		pubDate time.Time
		want    bool
	}{
		{"future question", now.Add(30 * 24 * time.Hour), false},
		{"one second ahead", now.Add(time.Second), false},
		{"exactly now", now, true},
		{"one hour ago", now.Add(-time.Hour), true},
		{"just inside a day", now.Add(-23*time.Hour - 59*time.Minute - 59*time.Second), true},
		{"exactly one day ago", now.Add(-24 * time.Hour), false},
		{"older than a day", now.Add(-24*time.Hour - time.Second), false},
		{"last month", now.AddDate(0, -1, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Question{QuestionText: "q", PubDate: tt.pubDate}
			if got := q.WasPublishedRecently(now); got != tt.want {
				t.Errorf("WasPublishedRecently() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsListable(t *testing.T) {
	if !(Question{PubDate: now}).IsListable(now) {
		t.Error("Question published now should be listable")
	}
	if !(Question{PubDate: now.Add(-time.Hour)}).IsListable(now) {
		t.Error("Past question should be listable")
	}
	if (Question{PubDate: now.Add(time.Second)}).IsListable(now) {
		t.Error("Future question should not be listable")
	}
}

func TestHasResults(t *testing.T) {
	for n, want := range map[int]bool{0: false, 1: false, 2: true, 5: true} {
		if got := HasResults(n); got != want {
			t.Errorf("HasResults(%d) = %v, want %v", n, got, want)
		}
	}
}

func validForm() QuestionForm {
	return QuestionForm{
		QuestionText: "What's up?",
		PubDate:      now,
		Choices:      []ChoiceForm{{ChoiceText: "Not much"}, {ChoiceText: "The sky"}},
	}
}

func TestQuestionFormValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *QuestionForm)
		field  string
	}{
		{"valid", func(f *QuestionForm) {}, ""},
		{"blank question", func(f *QuestionForm) { f.QuestionText = "   " }, "question_text"},
		{"long question", func(f *QuestionForm) { f.QuestionText = strings.Repeat("x", 201) }, "question_text"},
		{"missing pub_date", func(f *QuestionForm) { f.PubDate = time.Time{} }, "pub_date"},
		{"no choices", func(f *QuestionForm) { f.Choices = nil }, "choices"},
		{"one choice", func(f *QuestionForm) { f.Choices = f.Choices[:1] }, "choices"},
		{"blank choice", func(f *QuestionForm) { f.Choices[1].ChoiceText = "" }, "choices.1.choice_text"},
		{"long choice", func(f *QuestionForm) { f.Choices[0].ChoiceText = strings.Repeat("é", 201) }, "choices.0.choice_text"},
		{"duplicate choice id", func(f *QuestionForm) {
			f.Choices[0].ID = "c1"
			f.Choices[1].ID = "c1"
		}, "choices.1.id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)

			err := f.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("Expected valid form, got %v", err)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Expected ValidationErrors, got %v", err)
			}
			if _, ok := verrs[tt.field]; !ok {
				t.Errorf("Expected error on %q, got %v", tt.field, verrs)
			}
		})
	}
}

func TestQuestionFormAcceptsMaxLength(t *testing.T) {
	f := validForm()
	f.QuestionText = strings.Repeat("ü", MaxTextLength)
	if err := f.Validate(); err != nil {
		t.Errorf("Expected %d characters to be accepted, got %v", MaxTextLength, err)
	}
}

func TestUpdateChoiceRequestValidate(t *testing.T) {
	neg, zero := -1, 0

	if err := (UpdateChoiceRequest{ChoiceText: "ok", Votes: &zero}).Validate(); err != nil {
		t.Errorf("Expected zero votes to be valid, got %v", err)
	}
	if err := (UpdateChoiceRequest{ChoiceText: "ok"}).Validate(); err != nil {
		t.Errorf("Expected omitted votes to be valid, got %v", err)
	}

	err := UpdateChoiceRequest{ChoiceText: "", Votes: &neg}.Validate()
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Expected ValidationErrors, got %v", err)
	}
	if len(verrs) != 2 {
		t.Errorf("Expected choice_text and votes errors, got %v", verrs)
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	err := ValidationErrors{"pub_date": "b", "choices": "a"}
	want := "invalid form: choices: a; pub_date: b"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestDateRange(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		filter   string
		from, to time.Time
		ok       bool
	}{
		{DateFilterToday, day(2025, 6, 15), day(2025, 6, 16), true},
		{DateFilterPast7Days, day(2025, 6, 8), day(2025, 6, 16), true},
		{DateFilterThisMonth, day(2025, 6, 1), day(2025, 7, 1), true},
		{DateFilterThisYear, day(2025, 1, 1), day(2026, 1, 1), true},
		{DateFilterAny, time.Time{}, time.Time{}, false},
		{"yesterday", time.Time{}, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			from, to, ok := DateRange(tt.filter, now)
			if ok != tt.ok || !from.Equal(tt.from) || !to.Equal(tt.to) {
				t.Errorf("DateRange(%q) = %v, %v, %v; want %v, %v, %v",
					tt.filter, from, to, ok, tt.from, tt.to, tt.ok)
			}
		})
	}
}

func TestRow(t *testing.T) {
	q := Question{ID: "q1", QuestionText: "Hi?", PubDate: now.Add(-time.Hour)}
	row := q.Row(now)
	if row.ID != "q1" || !row.WasPublishedRecently {
		t.Errorf("Unexpected row %+v", row)
	}
}
