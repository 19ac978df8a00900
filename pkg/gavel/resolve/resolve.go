package resolve

import (
	"regexp"
	"strings"

	"github.com/cognicore/gavel/pkg/gavel/roster"
	"github.com/cognicore/gavel/pkg/gavel/segment"
)

// Confidence classifies how a speaker identity was established.
type Confidence int

const (
	// ConfidenceUnresolved: no unique roster identity. A normal outcome, not
	// an error — witnesses and ambiguous collisions land here.
	ConfidenceUnresolved Confidence = iota
	// ConfidenceCommittee: surname collided, narrowed to a unique member by
	// the hearing's committee affiliations.
	ConfidenceCommittee
	// ConfidenceExactUnique: exactly one roster entry matched the surname in
	// the hearing's chamber and congress.
	ConfidenceExactUnique
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceExactUnique:
		return "exact-unique"
	case ConfidenceCommittee:
		return "exact-ambiguous-resolved-by-committee"
	default:
		return "fallback-unresolved"
	}
}

// Hearing carries the context a resolution is bounded by.
type Hearing struct {
	Chamber    string
	Congress   int
	Committees []string // committee codes
	Witnesses  []string // printed witness names from the hearing record
	ChairName  string   // presiding chair surname when recoverable, else ""
}

// Speaker is the resolution outcome for one header. Member is nil when
// unresolved; Witness carries the printed witness name for
// unresolved-but-named outcomes.
type Speaker struct {
	Raw        string
	Surname    string
	State      string // two-letter abbreviation when printed in the header
	Procedural bool
	Member     *roster.Member
	Confidence Confidence
	Witness    string
}

// Resolved reports whether a unique roster identity was established.
func (s Speaker) Resolved() bool { return s.Member != nil }

// Extracted is the lexical decomposition of a raw header.
type Extracted struct {
	Raw        string
	Title      string
	Surname    string
	State      string // long-form state name, lowercased, when present
	Procedural bool
}

var (
	proceduralTagRe = regexp.MustCompile(`(?i)^(?:\[?the\s+(?:chairman|chairwoman|chairperson|chair|clerk|presiding officer)\]?|voice)$`)
	editorialTagRe  = regexp.MustCompile(`\s*\[[a-z ]*\]\s*`)
	ofStateRe       = regexp.MustCompile(`\s+of\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)$`)
)

var titleStripRe = func() *regexp.Regexp {
	quoted := make([]string, len(segment.DefaultTitles))
	for i, tok := range segment.DefaultTitles {
		quoted[i] = regexp.QuoteMeta(tok)
	}
	return regexp.MustCompile(`(?i)^(` + strings.Join(quoted, "|") + `)\.?\s+`)
}()

// ExtractName decomposes a raw header into title, surname and optional
// state qualifier, and flags procedural role tags.
func ExtractName(header string) Extracted {
	ext := Extracted{Raw: header}
	name := editorialTagRe.ReplaceAllString(strings.TrimSpace(header), " ")
	name = strings.TrimSpace(name)

	if proceduralTagRe.MatchString(name) {
		ext.Procedural = true
		return ext
	}

	if m := ofStateRe.FindStringSubmatch(name); m != nil {
		state := strings.ToLower(m[1])
		if _, ok := stateAbbrevs[state]; ok {
			ext.State = state
			name = name[:len(name)-len(m[0])]
		}
	}

	if m := titleStripRe.FindStringSubmatch(name); m != nil {
		ext.Title = strings.TrimSuffix(m[1], ".")
		name = name[len(m[0]):]
	}

	// The surname is the final token run; multi-token surnames (Van Hollen,
	// Jackson Lee) normalize to a single key.
	ext.Surname = roster.NormalizeSurname(name)
	return ext
}

// Stage is one step of the ranked narrowing pipeline. Narrow never grows the
// candidate set; a stage that narrows to exactly one candidate resolves with
// its confidence class.
type Stage struct {
	Name       string
	Confidence Confidence
	Narrow     func(cands []*roster.Member, h Hearing) []*roster.Member
}

// DefaultStages returns the standard pipeline: exact surname match first,
// then committee-affiliation narrowing. Anything still ambiguous afterwards
// is unresolved by design.
func DefaultStages() []Stage {
	return []Stage{
		{
			Name:       "exact",
			Confidence: ConfidenceExactUnique,
			Narrow: func(cands []*roster.Member, _ Hearing) []*roster.Member {
				return cands
			},
		},
		{
			Name:       "committee",
			Confidence: ConfidenceCommittee,
			Narrow: func(cands []*roster.Member, h Hearing) []*roster.Member {
				var out []*roster.Member
				for _, m := range cands {
					if len(m.RolesOn(h.Congress, h.Committees)) > 0 {
						out = append(out, m)
					}
				}
				return out
			},
		},
	}
}

// Resolver disambiguates header names against a roster index. It is
// stateless apart from the read-only index and safe for concurrent use.
type Resolver struct {
	index  *roster.Index
	stages []Stage
}

// New creates a resolver with the default narrowing stages.
func New(index *roster.Index) *Resolver {
	return &Resolver{index: index, stages: DefaultStages()}
}

// NewWithStages creates a resolver with a custom stage pipeline.
func NewWithStages(index *roster.Index, stages []Stage) *Resolver {
	return &Resolver{index: index, stages: stages}
}

// Resolve maps a raw header to a Speaker. Deterministic: the same header,
// hearing context and index always produce the same result.
func (r *Resolver) Resolve(header string, h Hearing) Speaker {
	ext := ExtractName(header)
	sp := Speaker{Raw: header, Surname: ext.Surname, Procedural: ext.Procedural}
	if ext.State != "" {
		sp.State = stateAbbrevs[ext.State]
	}

	surname := ext.Surname
	if ext.Procedural {
		// A bare role tag resolves through the roster only when the
		// presiding chair's name is recoverable from the front matter.
		if h.ChairName == "" {
			return sp
		}
		surname = roster.NormalizeSurname(h.ChairName)
		sp.Surname = surname
	}
	if surname == "" {
		return sp
	}

	cands := r.index.Lookup(roster.Query{
		Chamber:    h.Chamber,
		Congress:   h.Congress,
		Surname:    surname,
		Committees: h.Committees,
	})
	if sp.State != "" {
		cands = filterByState(cands, sp.State)
	}

	for _, stage := range r.stages {
		cands = stage.Narrow(cands, h)
		if len(cands) == 1 {
			sp.Member = cands[0]
			sp.Confidence = stage.Confidence
			return sp
		}
		if len(cands) == 0 {
			break
		}
	}

	// Not a legislator (or irreducibly ambiguous). A unique witness-list
	// match keeps the printed name: unresolved-but-named.
	if !ext.Procedural {
		sp.Witness = matchWitness(surname, h.Witnesses)
	}
	return sp
}

func filterByState(cands []*roster.Member, abbrev string) []*roster.Member {
	var out []*roster.Member
	for _, m := range cands {
		if m.State == abbrev {
			out = append(out, m)
		}
	}
	return out
}

var memberTitleRe = regexp.MustCompile(`(?i)representative in congress|u\.s\. senator|member of congress`)

// matchWitness returns the unique witness entry containing the surname, or
// "" when zero or several match. Witness entries describing sitting members
// are skipped: those should resolve through the roster or not at all.
func matchWitness(surname string, witnesses []string) string {
	var match string
	for _, w := range witnesses {
		if memberTitleRe.MatchString(w) {
			continue
		}
		if strings.Contains(normalizeLoose(w), surname) {
			if match != "" {
				return ""
			}
			match = w
		}
	}
	return match
}

var nonLetterRe = regexp.MustCompile(`[^a-z]`)

func normalizeLoose(s string) string {
	return nonLetterRe.ReplaceAllString(strings.ToLower(s), "")
}

// FindChair recovers the presiding chair's surname from a hearing's front
// matter, where transcripts print e.g. "Hon. Michael G. Oxley [chairman of
// the committee] presiding." Returns "" when no chair line is found.
func FindChair(frontMatter string) string {
	m := chairRe.FindStringSubmatch(frontMatter)
	if m == nil {
		return ""
	}
	return m[1]
}

var chairRe = regexp.MustCompile(`(?i)([A-Za-z][-A-Za-z']+)(?:,?\s+(?:jr|sr|iii|ii|iv)\.?)?[,.\s]*[(\[]?\s*(?:chairman|chairwoman|chairperson)\s*(?:of|[)\],])`)
