// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fixtures

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/danielhkuo/premios/models"
	"github.com/danielhkuo/premios/testutil"
)

const sampleFixture = `
questions:
  - question_text: Which framework?
    pub_date: 2025-06-01T09:00:00Z
    choices:
      - choice_text: Chi
      - choice_text: Gin
  - question_text: Tabs or spaces?
    pub_date: 2025-06-14T09:00:00Z
    choices:
      - choice_text: Tabs
      - choice_text: Spaces
      - choice_text: Both
`

func TestDecode(t *testing.T) {
	f, err := Decode(strings.NewReader(sampleFixture))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if len(f.Questions) != 2 {
		t.Fatalf("Expected 2 questions, got %d", len(f.Questions))
	}

	q := f.Questions[0]
	if q.QuestionText != "Which framework?" {
		t.Errorf("Unexpected question text %q", q.QuestionText)
	}
	want := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)
	if !q.PubDate.Equal(want) {
		t.Errorf("Expected pub_date %v, got %v", want, q.PubDate)
	}
	if len(f.Questions[1].Choices) != 3 {
		t.Errorf("Expected 3 choices, got %d", len(f.Questions[1].Choices))
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("questions:\n  - question_txt: typo\n"))
	if err == nil {
		t.Fatal("Expected error for unknown key")
	}
}

func TestDecodeEmpty(t *testing.T) {
	f, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(f.Questions) != 0 {
		t.Errorf("Expected no questions, got %d", len(f.Questions))
	}
}

func TestLoadFile(t *testing.T) {
	st, _ := testutil.SetupTestStore(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "polls.yaml")
	if err := os.WriteFile(path, []byte(sampleFixture), 0o600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	n, err := LoadFile(ctx, st, path, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 questions loaded, got %d", n)
	}

	latest, err := st.LatestQuestions(ctx, testutil.Now, models.LatestQuestionsLimit)
	if err != nil {
		t.Fatalf("LatestQuestions failed: %v", err)
	}
	if len(latest) != 2 {
		t.Fatalf("Expected 2 listed questions, got %d", len(latest))
	}
	if latest[0].QuestionText != "Tabs or spaces?" {
		t.Errorf("Expected newest question first, got %q", latest[0].QuestionText)
	}

	choices, err := st.Choices(ctx, latest[0].ID)
	if err != nil {
		t.Fatalf("Choices failed: %v", err)
	}
	if len(choices) != 3 || choices[0].ChoiceText != "Tabs" {
		t.Errorf("Unexpected choices: %+v", choices)
	}
}

func TestLoadRejectsInvalidFileAtomically(t *testing.T) {
	st, _ := testutil.SetupTestStore(t)
	ctx := context.Background()

	f := File{Questions: []models.QuestionForm{
		{
			QuestionText: "Valid?",
			PubDate:      testutil.Now,
			Choices:      []models.ChoiceForm{{ChoiceText: "Yes"}, {ChoiceText: "No"}},
		},
		{
			QuestionText: "Only one choice",
			PubDate:      testutil.Now,
			Choices:      []models.ChoiceForm{{ChoiceText: "Lonely"}},
		},
	}}

	n, err := Load(ctx, st, f, zaptest.NewLogger(t))
	if err == nil {
		t.Fatal("Expected validation error")
	}
	var verrs models.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Expected ValidationErrors, got %T: %v", err, err)
	}
	if _, ok := verrs["choices"]; !ok {
		t.Errorf("Expected choices error, got %v", verrs)
	}
	if n != 0 {
		t.Errorf("Expected nothing loaded, got %d", n)
	}

	latest, err := st.LatestQuestions(ctx, testutil.Now, models.LatestQuestionsLimit)
	if err != nil {
		t.Fatalf("LatestQuestions failed: %v", err)
	}
	if len(latest) != 0 {
		t.Errorf("Expected empty database, got %d questions", len(latest))
	}
}

func TestLoadFileMissing(t *testing.T) {
	st, _ := testutil.SetupTestStore(t)

	_, err := LoadFile(context.Background(), st, filepath.Join(t.TempDir(), "nope.yaml"), zaptest.NewLogger(t))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}
