package config

import (
	"testing"

	"pulsecheck/internal/model"
	"pulsecheck/internal/scoring"
)

func TestLoadScoringDefaults(t *testing.T) {
	t.Setenv("MIN_RESPONSES", "")
	t.Setenv("LEVEL_STRONG_MIN", "")
	t.Setenv("LEVEL_MODERATE_MIN", "")
	t.Setenv("CATEGORY_AVERAGING", "")

	cfg := LoadScoring()

	if cfg.MinResponses != 10 {
		t.Errorf("Expected default minResponses 10, got %d", cfg.MinResponses)
	}
	if cfg.StrongMin != 80 || cfg.ModerateMin != 50 {
		t.Errorf("Expected default thresholds 80/50, got %d/%d", cfg.StrongMin, cfg.ModerateMin)
	}
	if cfg.CategoryAveraging != scoring.CategoryAveragingPooled {
		t.Errorf("Expected pooled averaging by default, got %s", cfg.CategoryAveraging)
	}
}

func TestLoadScoringOverrides(t *testing.T) {
	t.Setenv("MIN_RESPONSES", "25")
	t.Setenv("LEVEL_STRONG_MIN", "85")
	t.Setenv("LEVEL_MODERATE_MIN", "40")
	t.Setenv("CATEGORY_AVERAGING", "respondent")
	t.Setenv("LEVEL_STRONG_LABEL", "Excellent")

	cfg := LoadScoring()

	if cfg.MinResponses != 25 {
		t.Errorf("Expected minResponses 25, got %d", cfg.MinResponses)
	}
	if cfg.StrongMin != 85 || cfg.ModerateMin != 40 {
		t.Errorf("Expected thresholds 85/40, got %d/%d", cfg.StrongMin, cfg.ModerateMin)
	}
	if cfg.CategoryAveraging != scoring.CategoryAveragingRespondent {
		t.Errorf("Expected respondent averaging, got %s", cfg.CategoryAveraging)
	}
	if cfg.Levels[model.LevelStrong].Label != "Excellent" {
		t.Errorf("Expected overridden label, got %q", cfg.Levels[model.LevelStrong].Label)
	}
	// Color metadata is not overridable and must survive the label change.
	if cfg.Levels[model.LevelStrong].Color == "" {
		t.Error("Expected color to be preserved")
	}
}

func TestLoadScoringIgnoresMalformedInts(t *testing.T) {
	t.Setenv("MIN_RESPONSES", "lots")

	cfg := LoadScoring()
	if cfg.MinResponses != 10 {
		t.Errorf("Expected default on malformed override, got %d", cfg.MinResponses)
	}
}
