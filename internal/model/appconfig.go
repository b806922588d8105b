package model

// Gable fallback policies: what to do when shell/solid assembly fails for a
// sloped gable board.
const (
	// GableFallbackBox replaces the failed sloped solid with a plain box of
	// the same footprint. The import continues; the slope is lost.
	GableFallbackBox = "box"
	// GableFallbackSkip drops the board and reports it instead of silently
	// changing its shape.
	GableFallbackSkip = "skip"
)

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// DefaultPolicy is the dimension policy used when none is given on the
	// command line: "standard" or "exact".
	DefaultPolicy string `json:"default_policy"`
	// GableFallback selects the recovery behavior for degenerate gable
	// boards: "box" or "skip".
	GableFallback string `json:"gable_fallback"`
	// KerfWidth is the default saw kerf in inches used by the cutting-stock
	// optimizer.
	KerfWidth float64 `json:"kerf_width"`

	RecentProjects []string `json:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultPolicy:  PolicyStandard.String(),
		GableFallback:  GableFallbackBox,
		KerfWidth:      0.125,
		RecentProjects: []string{},
	}
}
