// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/quickly-survey/models"
)

// Settings are the app_config values of the survey document
type Settings struct {
	Title    string `yaml:"title"`
	Icon     string `yaml:"icon"`
	Password string `yaml:"password"`
}

// Catalog is the loaded survey: settings plus the ordered question list.
// Question order is display order.
type Catalog struct {
	Settings  Settings
	Questions []models.Question
}

type document struct {
	AppConfig Settings          `yaml:"app_config"`
	Questions []models.Question `yaml:"questions"`
}

// Default returns the built-in catalog
func Default() Catalog {
	return Catalog{
		Settings: Settings{
			Title:    DefaultTitle,
			Icon:     DefaultIcon,
			Password: DefaultPassword,
		},
		Questions: DefaultQuestions(),
	}
}

// Load reads the survey document at path. A missing or unparseable file
// yields the built-in catalog; it never fails.
func Load(path string) Catalog {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Debug("survey config not read, using defaults", "path", path, "error", err)
		return Default()
	}

	cat, err := Parse(data)
	if err != nil {
		slog.Debug("survey config not parsed, using defaults", "path", path, "error", err)
		return Default()
	}
	return cat
}

// Parse decodes a survey document. Only a YAML syntax error is returned;
// missing settings and an absent or invalid questions section fall back
// to the defaults individually.
func Parse(data []byte) (Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Catalog{}, fmt.Errorf("failed to parse survey config: %w", err)
	}

	cat := Default()
	if doc.AppConfig.Title != "" {
		cat.Settings.Title = doc.AppConfig.Title
	}
	if doc.AppConfig.Icon != "" {
		cat.Settings.Icon = doc.AppConfig.Icon
	}
	if doc.AppConfig.Password != "" {
		cat.Settings.Password = doc.AppConfig.Password
	}

	if len(doc.Questions) > 0 {
		if err := Validate(doc.Questions); err != nil {
			slog.Debug("survey questions invalid, using defaults", "error", err)
		} else {
			cat.Questions = doc.Questions
		}
	}

	return cat, nil
}

var (
	ErrNoQuestions       = errors.New("no questions defined")
	ErrEmptyQuestionID   = errors.New("question id is required")
	ErrDuplicateQuestion = errors.New("duplicate question id")
	ErrUnknownType       = errors.New("question type must be single or multi")
	ErrNoOptions         = errors.New("question has no options")
	ErrDuplicateOption   = errors.New("duplicate option")
	ErrEmptyOption       = errors.New("option text is empty")
	ErrOptionSeparator   = errors.New("option contains the multi-choice separator")
)

// Validate checks the question list invariants: unique non-empty ids,
// a known type, and a non-empty list of unique options. Options must be
// non-empty and must not contain models.MultiSeparator.
func Validate(questions []models.Question) error {
	if len(questions) == 0 {
		return ErrNoQuestions
	}

	seen := make(map[string]bool, len(questions))
	for i, q := range questions {
		if q.ID == "" {
			return fmt.Errorf("question %d: %w", i+1, ErrEmptyQuestionID)
		}
		if seen[q.ID] {
			return fmt.Errorf("question %s: %w", q.ID, ErrDuplicateQuestion)
		}
		seen[q.ID] = true

		if q.Type != models.QuestionSingle && q.Type != models.QuestionMulti {
			return fmt.Errorf("question %s: %w", q.ID, ErrUnknownType)
		}
		if len(q.Options) == 0 {
			return fmt.Errorf("question %s: %w", q.ID, ErrNoOptions)
		}

		options := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			if opt == "" {
				return fmt.Errorf("question %s: %w", q.ID, ErrEmptyOption)
			}
			if strings.Contains(opt, models.MultiSeparator) {
				return fmt.Errorf("question %s option %q: %w", q.ID, opt, ErrOptionSeparator)
			}
			if options[opt] {
				return fmt.Errorf("question %s option %q: %w", q.ID, opt, ErrDuplicateOption)
			}
			options[opt] = true
		}
	}

	return nil
}

// Find returns the question with the given id
func (c Catalog) Find(id string) (models.Question, bool) {
	for _, q := range c.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return models.Question{}, false
}

func (c Catalog) Len() int {
	return len(c.Questions)
}
