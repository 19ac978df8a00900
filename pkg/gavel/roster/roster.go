package roster

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/cognicore/gavel/pkg/gavel/internalerr"
)

// Chamber identifiers used throughout the module.
const (
	ChamberHouse  = "HOUSE"
	ChamberSenate = "SENATE"
	ChamberJoint  = "JOINT"
)

// CommitteeRole is one member's standing on one committee during one congress.
type CommitteeRole struct {
	Committee  string `json:"committee"` // committee code, e.g. "HSIF"
	Chamber    string `json:"chamber"`
	Party      string `json:"party"`
	Majority   bool   `json:"majority"`
	Seniority  int    `json:"seniority"` // rank within party on the committee
	Leadership bool   `json:"leadership"`
}

// Member is one legislator's tenure record from the roster dataset.
// Terms is keyed by congress number; a member with no roles in a congress
// simply has no entry for it.
type Member struct {
	ID      int64                   `json:"id"`
	Name    string                  `json:"name"` // normalized "surname, given"
	Aliases []string                `json:"aliases,omitempty"`
	Chamber string                  `json:"chamber"`
	Party   string                  `json:"party"`
	State   string                  `json:"state"`
	Terms   map[int][]CommitteeRole `json:"terms"`
}

// Surname returns the member's normalized surname (the part before the comma).
func (m Member) Surname() string {
	return NormalizeSurname(strings.SplitN(m.Name, ",", 2)[0])
}

// ServedIn reports whether the member held any committee role in the congress.
func (m Member) ServedIn(congress int) bool {
	return len(m.Terms[congress]) > 0
}

// RolesOn returns the member's roles during the congress on any of the given
// committees, in the order the committees are listed.
func (m Member) RolesOn(congress int, committees []string) []CommitteeRole {
	var out []CommitteeRole
	for _, c := range committees {
		for _, role := range m.Terms[congress] {
			if role.Committee == c {
				out = append(out, role)
			}
		}
	}
	return out
}

// LastCongress returns the most recent congress the member served in.
func (m Member) LastCongress() int {
	last := 0
	for congress := range m.Terms {
		if congress > last {
			last = congress
		}
	}
	return last
}

var (
	suffixPattern = regexp.MustCompile(`,?\s+(jr|sr|ii|iii|iv|v)\.?$`)
	dropPattern   = regexp.MustCompile(`[^a-z\- ]`)
)

// NormalizeSurname lowercases a printed surname and strips punctuation,
// generational suffixes, and internal whitespace so that "Van Hollen, Jr."
// and "VANHOLLEN" compare equal.
func NormalizeSurname(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = suffixPattern.ReplaceAllString(s, "")
	s = dropPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}

type surnameKey struct {
	chamber string
	surname string
}

type congressKey struct {
	chamber  string
	surname  string
	congress int
}

// Index is the read-only lookup structure over the roster dataset.
// It is built once per run and safe for unsynchronized concurrent reads.
type Index struct {
	byID       map[int64]*Member
	bySurname  map[surnameKey][]*Member
	byCongress map[congressKey][]*Member
}

// Query bounds a surname lookup to one hearing's context. Committees only
// affect candidate ordering, never membership of the result set.
type Query struct {
	Chamber    string
	Congress   int
	Surname    string
	Committees []string
}

// Build constructs the index from the full roster dataset. Malformed input
// (missing ID or name, duplicate IDs) is fatal: every hearing depends on the
// index, so there is no degraded mode here.
func Build(members []Member) (*Index, error) {
	idx := &Index{
		byID:       make(map[int64]*Member, len(members)),
		bySurname:  make(map[surnameKey][]*Member),
		byCongress: make(map[congressKey][]*Member),
	}

	for i := range members {
		m := &members[i]
		if m.ID == 0 {
			return nil, fmt.Errorf("%w: member %q has no id", internalerr.ErrInvalidRoster, m.Name)
		}
		if strings.TrimSpace(m.Name) == "" {
			return nil, fmt.Errorf("%w: member %d has no name", internalerr.ErrInvalidRoster, m.ID)
		}
		if _, dup := idx.byID[m.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate member id %d", internalerr.ErrInvalidRoster, m.ID)
		}
		idx.byID[m.ID] = m

		for _, surname := range memberSurnames(m) {
			key := surnameKey{chamber: m.Chamber, surname: surname}
			idx.bySurname[key] = append(idx.bySurname[key], m)
			for congress := range m.Terms {
				ckey := congressKey{chamber: m.Chamber, surname: surname, congress: congress}
				idx.byCongress[ckey] = append(idx.byCongress[ckey], m)
			}
		}
	}

	return idx, nil
}

func memberSurnames(m *Member) []string {
	seen := map[string]struct{}{}
	var out []string
	add := func(raw string) {
		s := NormalizeSurname(strings.SplitN(raw, ",", 2)[0])
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	add(m.Name)
	for _, alias := range m.Aliases {
		add(alias)
	}
	return out
}

// LookupByID returns the member with the given identifier.
func (x *Index) LookupByID(id int64) (*Member, bool) {
	m, ok := x.byID[id]
	return m, ok
}

// Lookup returns the candidate members for a surname in the hearing's chamber
// and congress. JOINT hearings search both chambers. Candidates are ordered:
// members affiliated with one of the hearing's committees in that congress
// first, then by recency of tenure, then by member ID.
func (x *Index) Lookup(q Query) []*Member {
	surname := NormalizeSurname(q.Surname)
	if surname == "" {
		return nil
	}

	chambers := []string{q.Chamber}
	if q.Chamber == ChamberJoint || q.Chamber == "" {
		chambers = []string{ChamberHouse, ChamberSenate}
	}

	seen := map[int64]struct{}{}
	var candidates []*Member
	for _, chamber := range chambers {
		key := congressKey{chamber: chamber, surname: surname, congress: q.Congress}
		for _, m := range x.byCongress[key] {
			if _, ok := seen[m.ID]; ok {
				continue
			}
			seen[m.ID] = struct{}{}
			candidates = append(candidates, m)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		aff, bff := len(a.RolesOn(q.Congress, q.Committees)) > 0, len(b.RolesOn(q.Congress, q.Committees)) > 0
		if aff != bff {
			return aff
		}
		if a.LastCongress() != b.LastCongress() {
			return a.LastCongress() > b.LastCongress()
		}
		return a.ID < b.ID
	})

	return candidates
}

// LookupAnyCongress returns candidates for a surname in a chamber regardless
// of congress, ordered by recency then ID. Used for era-unbounded checks.
func (x *Index) LookupAnyCongress(chamber, surname string) []*Member {
	s := NormalizeSurname(surname)
	if s == "" {
		return nil
	}

	chambers := []string{chamber}
	if chamber == ChamberJoint || chamber == "" {
		chambers = []string{ChamberHouse, ChamberSenate}
	}

	seen := map[int64]struct{}{}
	var out []*Member
	for _, ch := range chambers {
		for _, m := range x.bySurname[surnameKey{chamber: ch, surname: s}] {
			if _, ok := seen[m.ID]; ok {
				continue
			}
			seen[m.ID] = struct{}{}
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LastCongress() != out[j].LastCongress() {
			return out[i].LastCongress() > out[j].LastCongress()
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Size returns the number of members in the index.
func (x *Index) Size() int {
	return len(x.byID)
}
