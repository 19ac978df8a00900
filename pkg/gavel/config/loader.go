package config

import (
	"fmt"

	"github.com/cognicore/gavel/pkg/gavel/segment"
)

// Loader loads all configuration files and constructs components
type Loader struct {
	CommitteesPath string
	TitlesPath     string
}

// Components holds all loaded configuration components
type Components struct {
	Classifier *segment.Classifier
	Segmenter  *segment.Segmenter
	Committees *Committees
}

// Load reads all configuration files and returns initialized components
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	var extraTitles []string
	if l.TitlesPath != "" {
		titles, err := LoadTitles(l.TitlesPath)
		if err != nil {
			return nil, fmt.Errorf("load titles: %w", err)
		}
		extraTitles = titles.Terms
	}
	comp.Classifier = segment.NewClassifier(extraTitles...)
	comp.Segmenter = segment.NewSegmenter(comp.Classifier)

	if l.CommitteesPath != "" {
		committees, err := LoadCommittees(l.CommitteesPath)
		if err != nil {
			return nil, fmt.Errorf("load committees: %w", err)
		}
		comp.Committees = committees
	} else {
		comp.Committees = &Committees{Entries: map[string]Committee{}}
	}

	return comp, nil
}
