// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fixtures

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/premios/models"
	"github.com/danielhkuo/premios/store"
)

// File is the on-disk fixture layout:
//
//	questions:
//	  - question_text: What's new?
//	    pub_date: 2025-06-01T09:00:00Z
//	    choices:
//	      - choice_text: Not much
//	      - choice_text: The sky
type File struct {
	Questions []models.QuestionForm `yaml:"questions"`
}

// Decode parses a fixture document. Unknown keys are rejected.
func Decode(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("failed to parse fixture: %w", err)
	}
	return f, nil
}

// Validate applies the admin form rules to every question in the file.
func (f File) Validate() error {
	for i, q := range f.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}
	return nil
}

// Load inserts every question of f. Nothing is written unless the whole file
// validates.
func Load(ctx context.Context, st *store.Store, f File, log *zap.Logger) (int, error) {
	if err := f.Validate(); err != nil {
		return 0, err
	}

	for i, form := range f.Questions {
		created, err := st.CreateQuestion(ctx, form)
		if err != nil {
			return i, fmt.Errorf("question %d: %w", i, err)
		}
		log.Debug("fixture question loaded",
			zap.String("question_id", created.Question.ID),
			zap.Int("choices", len(created.Choices)),
		)
	}

	return len(f.Questions), nil
}

// LoadFile decodes and loads the fixture at path.
func LoadFile(ctx context.Context, st *store.Store, path string, log *zap.Logger) (int, error) {
	fh, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer fh.Close()

	f, err := Decode(fh)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}

	n, err := Load(ctx, st, f, log)
	if err != nil {
		return n, fmt.Errorf("%s: %w", path, err)
	}

	log.Info("fixture loaded", zap.String("path", path), zap.Int("questions", n))
	return n, nil
}
