package domain

// Source represents a content publisher
type Source struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Enabled  bool   `json:"enabled"`
	Category string `json:"category,omitempty"`
	SiteURL  string `json:"site_url,omitempty"`
	FeedURL  string `json:"feed_url,omitempty"`
}

// Override is a persisted user choice of the enabled flag for a publisher
type Override struct {
	PublisherID string `db:"publisher_id" json:"publisher_id"`
	Enabled     bool   `db:"enabled" json:"enabled"`
}

// ApplyOverrides returns a copy of sources with enabled flags replaced by matching overrides.
// Sources without an override keep their own flag.
func ApplyOverrides(sources []Source, overrides []Override) []Source {
	byID := make(map[string]bool, len(overrides))
	for _, o := range overrides {
		byID[o.PublisherID] = o.Enabled
	}

	res := make([]Source, len(sources))
	for i, s := range sources {
		if enabled, ok := byID[s.ID]; ok {
			s.Enabled = enabled
		}
		res[i] = s
	}
	return res
}
