package scoring

import "pulsecheck/internal/model"

// Classify maps a percentage to a performance tier. Thresholds are inclusive
// lower bounds evaluated high to low, so the function is total over 0-100 and
// monotonic: a higher percentage never yields a lower tier.
func Classify(percentage int, cfg *Config) model.Level {
	switch {
	case percentage >= cfg.StrongMin:
		return model.LevelStrong
	case percentage >= cfg.ModerateMin:
		return model.LevelModerate
	default:
		return model.LevelNeedsImprovement
	}
}

// LevelMeta returns the label and color for a tier
func LevelMeta(level model.Level, cfg *Config) model.LevelInfo {
	return cfg.Levels[level]
}
