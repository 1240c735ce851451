package config

import (
	"os"
	"strconv"

	"pulsecheck/internal/model"
	"pulsecheck/internal/scoring"
)

// LoadScoring returns the engine policy with environment overrides applied.
// The thresholds define the entire user-facing narrative tone, so they live
// here rather than deep in the engine.
func LoadScoring() *scoring.Config {
	cfg := scoring.DefaultConfig()

	cfg.MinResponses = getEnvInt("MIN_RESPONSES", cfg.MinResponses)
	cfg.StrongMin = getEnvInt("LEVEL_STRONG_MIN", cfg.StrongMin)
	cfg.ModerateMin = getEnvInt("LEVEL_MODERATE_MIN", cfg.ModerateMin)

	if v := os.Getenv("CATEGORY_AVERAGING"); v != "" {
		cfg.CategoryAveraging = scoring.CategoryAveraging(v)
	}
	if v := os.Getenv("LEVEL_STRONG_LABEL"); v != "" {
		info := cfg.Levels[model.LevelStrong]
		info.Label = v
		cfg.Levels[model.LevelStrong] = info
	}
	if v := os.Getenv("LEVEL_MODERATE_LABEL"); v != "" {
		info := cfg.Levels[model.LevelModerate]
		info.Label = v
		cfg.Levels[model.LevelModerate] = info
	}
	if v := os.Getenv("LEVEL_NEEDS_IMPROVEMENT_LABEL"); v != "" {
		info := cfg.Levels[model.LevelNeedsImprovement]
		info.Label = v
		cfg.Levels[model.LevelNeedsImprovement] = info
	}

	return cfg
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}
