package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/cognicore/gavel/pkg/gavel/roster"
	"github.com/cognicore/gavel/pkg/gavel/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu         sync.RWMutex
	hearings   map[string]store.Hearing
	members    map[int64]roster.Member
	statements map[string][]store.Statement
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		hearings:   make(map[string]store.Hearing),
		members:    make(map[int64]roster.Member),
		statements: make(map[string][]store.Statement),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertHearing inserts or updates a hearing, keyed by jacket.
func (s *Store) UpsertHearing(ctx context.Context, h store.Hearing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h.Jacket == "" {
		return nil
	}
	s.hearings[h.Jacket] = copyHearing(h)
	return nil
}

// GetHearing returns a hearing by jacket.
func (s *Store) GetHearing(ctx context.Context, jacket string) (store.Hearing, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if h, ok := s.hearings[jacket]; ok {
		return copyHearing(h), true, nil
	}
	return store.Hearing{}, false, nil
}

// ListJackets returns all stored jacket identifiers in sorted order.
func (s *Store) ListJackets(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jackets := make([]string, 0, len(s.hearings))
	for j := range s.hearings {
		jackets = append(jackets, j)
	}
	sort.Strings(jackets)
	return jackets, nil
}

// UpsertMember inserts or updates a roster member, keyed by ID.
func (s *Store) UpsertMember(ctx context.Context, m roster.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.ID == 0 {
		return nil
	}
	s.members[m.ID] = copyMember(m)
	return nil
}

// GetMember returns a roster member by ID.
func (s *Store) GetMember(ctx context.Context, id int64) (roster.Member, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if m, ok := s.members[id]; ok {
		return copyMember(m), true, nil
	}
	return roster.Member{}, false, nil
}

// AllMembers returns every stored member, ordered by ID.
func (s *Store) AllMembers(ctx context.Context) ([]roster.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	members := make([]roster.Member, 0, len(s.members))
	for _, m := range s.members {
		members = append(members, copyMember(m))
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return members, nil
}

// ReplaceStatements swaps a hearing's full statement set atomically.
func (s *Store) ReplaceStatements(ctx context.Context, jacket string, stmts []store.Statement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]store.Statement, len(stmts))
	for i, st := range stmts {
		copied[i] = copyStatement(st)
	}
	sort.Slice(copied, func(i, j int) bool { return copied[i].Ordinal < copied[j].Ordinal })
	s.statements[jacket] = copied
	return nil
}

// GetStatements returns a hearing's statements in ordinal order.
func (s *Store) GetStatements(ctx context.Context, jacket string) ([]store.Statement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stmts, ok := s.statements[jacket]
	if !ok {
		return nil, nil
	}
	out := make([]store.Statement, len(stmts))
	for i, st := range stmts {
		out[i] = copyStatement(st)
	}
	return out, nil
}

func copyHearing(h store.Hearing) store.Hearing {
	out := h
	out.Committees = copyStrings(h.Committees)
	out.Subcommittees = copyStrings(h.Subcommittees)
	out.Witnesses = copyStrings(h.Witnesses)
	return out
}

func copyMember(m roster.Member) roster.Member {
	out := m
	out.Aliases = copyStrings(m.Aliases)
	if m.Terms != nil {
		out.Terms = make(map[int][]roster.CommitteeRole, len(m.Terms))
		for congress, roles := range m.Terms {
			out.Terms[congress] = append([]roster.CommitteeRole(nil), roles...)
		}
	}
	return out
}

func copyStatement(st store.Statement) store.Statement {
	out := st
	out.Committees = copyStrings(st.Committees)
	out.Party = copyStrings(st.Party)
	out.MemberID = copyInt64Ptr(st.MemberID)
	out.NameFull = copyStringPtr(st.NameFull)
	out.PersonChamber = copyStringPtr(st.PersonChamber)
	out.State = copyStringPtr(st.State)
	out.Witness = copyStringPtr(st.Witness)
	out.Majority = copyBoolPtr(st.Majority)
	out.Leadership = copyBoolPtr(st.Leadership)
	out.Seniority = copyIntPtr(st.Seniority)
	return out
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func copyInt64Ptr(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyBoolPtr(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
