package assemble

import (
	"crypto/rand"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/gavel/pkg/gavel/resolve"
	"github.com/cognicore/gavel/pkg/gavel/roster"
	"github.com/cognicore/gavel/pkg/gavel/segment"
	"github.com/cognicore/gavel/pkg/gavel/store"
)

// RolePrecedence selects which committee role supplies the role-derived
// fields when a resolved member sits on more than one of the hearing's
// committees.
type RolePrecedence int

const (
	// PreferPresiding picks a leadership role when one exists, falling back
	// to the first listed hearing committee.
	PreferPresiding RolePrecedence = iota
	// FirstListed always picks the role on the first listed hearing
	// committee the member sits on.
	FirstListed
)

// Assembler joins a segment, its resolved speaker and the hearing context
// into a store.Statement. Safe for concurrent use.
type Assembler struct {
	mu         sync.Mutex
	entropy    *ulid.MonotonicEntropy
	precedence RolePrecedence
}

// New creates an assembler with the given role precedence.
func New(precedence RolePrecedence) *Assembler {
	return &Assembler{
		entropy:    ulid.Monotonic(rand.Reader, 0),
		precedence: precedence,
	}
}

// Build produces the statement record for one speaking turn. Every segment
// yields exactly one statement; unresolved speakers keep all roster-derived
// fields nil.
func (a *Assembler) Build(h store.Hearing, seg segment.Segment, sp resolve.Speaker) store.Statement {
	st := store.Statement{
		ID:             a.newID(),
		Jacket:         h.Jacket,
		Ordinal:        seg.Ordinal,
		Cleaned:        seg.Body,
		NameRaw:        seg.Header,
		Committees:     h.Committees,
		Congress:       h.Congress,
		Date:           h.Date,
		HearingChamber: h.Chamber,
		Confidence:     sp.Confidence.String(),
	}

	if sp.Witness != "" {
		w := sp.Witness
		st.Witness = &w
	}

	if !sp.Resolved() {
		return st
	}

	m := sp.Member
	id := m.ID
	name := m.Name
	chamber := m.Chamber
	state := m.State
	st.MemberID = &id
	st.NameFull = &name
	st.PersonChamber = &chamber
	st.State = &state

	role, ok := a.pickRole(m, h)
	if !ok {
		// Resolved but no committee standing on record for this congress.
		// Party still comes from the member record; role fields carry
		// explicit defaults so the field group stays all-or-nothing.
		st.Party = []string{m.Party}
		f := false
		zero := 0
		st.Majority = &f
		st.Leadership = &f
		st.Seniority = &zero
		return st
	}

	st.Party = partiesFor(m, h.Congress)
	majority := role.Majority
	leadership := role.Leadership
	seniority := role.Seniority
	st.Majority = &majority
	st.Leadership = &leadership
	st.Seniority = &seniority
	return st
}

func (a *Assembler) newID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return ulid.MustNew(ulid.Now(), a.entropy).String()
}

// pickRole chooses the committee role that supplies majority, leadership and
// seniority. Hearing-committee roles take priority over the member's other
// standings that congress; among them the precedence option decides.
func (a *Assembler) pickRole(m *roster.Member, h store.Hearing) (roster.CommitteeRole, bool) {
	roles := m.RolesOn(h.Congress, h.Committees)
	if len(roles) == 0 {
		roles = m.Terms[h.Congress]
	}
	if len(roles) == 0 {
		return roster.CommitteeRole{}, false
	}
	if a.precedence == PreferPresiding {
		for _, r := range roles {
			if r.Leadership {
				return r, true
			}
		}
	}
	return roles[0], true
}

// partiesFor collects the distinct party affiliations across the member's
// roles in the congress. Party switchers carry both labels.
func partiesFor(m *roster.Member, congress int) []string {
	var parties []string
	seen := make(map[string]struct{})
	for _, r := range m.Terms[congress] {
		if r.Party == "" {
			continue
		}
		if _, ok := seen[r.Party]; ok {
			continue
		}
		seen[r.Party] = struct{}{}
		parties = append(parties, r.Party)
	}
	if len(parties) == 0 && m.Party != "" {
		parties = []string{m.Party}
	}
	return parties
}
