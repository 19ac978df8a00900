package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/gavel/pkg/gavel/internalerr"
	"github.com/cognicore/gavel/pkg/gavel/roster"
)

// Committee is one committee's identity in the committee map.
type Committee struct {
	Code    string `yaml:"code"`
	Chamber string `yaml:"chamber"`
}

// Committees maps printed committee names, as they appear in hearing
// metadata, to committee codes and chambers.
type Committees struct {
	Entries map[string]Committee `yaml:"committees"`
}

// LoadCommittees loads the committee map from a YAML file
func LoadCommittees(path string) (*Committees, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Committees
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}

	for name, entry := range c.Entries {
		if entry.Code == "" {
			return nil, fmt.Errorf("committee %q: missing code: %w", name, internalerr.ErrInvalidConfig)
		}
		switch entry.Chamber {
		case roster.ChamberHouse, roster.ChamberSenate, roster.ChamberJoint:
		default:
			return nil, fmt.Errorf("committee %q: unknown chamber %q: %w", name, entry.Chamber, internalerr.ErrInvalidConfig)
		}
	}
	return &c, nil
}

// Resolve maps printed committee names to codes. Unmapped names are
// returned separately; the caller decides whether they matter.
func (c *Committees) Resolve(names []string) (codes, unmapped []string) {
	for _, name := range names {
		if entry, ok := c.Entries[name]; ok {
			codes = append(codes, entry.Code)
		} else {
			unmapped = append(unmapped, name)
		}
	}
	return codes, unmapped
}

// HearingChamber derives the chamber a hearing belongs to from its
// committees: JOINT when they span chambers, empty when none are mapped.
func (c *Committees) HearingChamber(names []string) string {
	chamber := ""
	for _, name := range names {
		entry, ok := c.Entries[name]
		if !ok {
			continue
		}
		switch {
		case chamber == "" || chamber == entry.Chamber:
			chamber = entry.Chamber
		default:
			return roster.ChamberJoint
		}
	}
	return chamber
}

// Titles represents the extra speaker-title term list
type Titles struct {
	Terms []string `yaml:"terms"`
}

// LoadTitles loads extra speaker titles from a YAML file
func LoadTitles(path string) (*Titles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var t Titles
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, err
	}

	return &t, nil
}
