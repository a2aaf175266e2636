package config

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Source describes one configured faculty listing.
type Source struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	ListingURL string `yaml:"listing_url"`
	Paginated  bool   `yaml:"paginated"`
}

// DefaultSources returns the built-in source set used when no sources file
// is present.
func DefaultSources() []Source {
	return []Source{
		{
			ID:         "stanford_cheme",
			Name:       "Stanford Chemical Engineering",
			ListingURL: "https://cheme.stanford.edu/people/faculty",
		},
		{
			ID:         "stanford_mse",
			Name:       "Stanford Materials Science & Engineering",
			ListingURL: "https://mse.stanford.edu/people/faculty",
		},
		{
			ID:         "stanford_doerr",
			Name:       "Stanford Doerr School of Sustainability",
			ListingURL: "https://sustainability.stanford.edu/our-community/faculty-0",
			Paginated:  true,
		},
		{
			ID:         "mit_dmse",
			Name:       "MIT Materials Science & Engineering",
			ListingURL: "https://dmse.mit.edu/people/faculty/",
		},
	}
}

// LoadSources reads the source list from a YAML file, falling back to the
// built-in set when the file does not exist.
func LoadSources(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSources(), nil
		}
		return nil, eris.Wrapf(err, "config: read sources %s", path)
	}

	var doc struct {
		Sources []Source `yaml:"sources"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrapf(err, "config: parse sources %s", path)
	}
	if len(doc.Sources) == 0 {
		return nil, eris.Errorf("config: no sources defined in %s", path)
	}

	for _, s := range doc.Sources {
		if s.ID == "" || s.ListingURL == "" {
			return nil, eris.Errorf("config: source missing id or listing_url in %s", path)
		}
	}

	return doc.Sources, nil
}
