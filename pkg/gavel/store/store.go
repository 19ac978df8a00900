package store

import (
	"context"
	"time"

	"github.com/cognicore/gavel/pkg/gavel/roster"
)

// Store is the main interface for persisting and querying hearing data
type Store interface {
	Close() error

	// Hearings
	UpsertHearing(ctx context.Context, h Hearing) error
	GetHearing(ctx context.Context, jacket string) (Hearing, bool, error)
	ListJackets(ctx context.Context) ([]string, error)

	// Roster
	UpsertMember(ctx context.Context, m roster.Member) error
	GetMember(ctx context.Context, id int64) (roster.Member, bool, error)
	AllMembers(ctx context.Context) ([]roster.Member, error)

	// Statements
	ReplaceStatements(ctx context.Context, jacket string, stmts []Statement) error
	GetStatements(ctx context.Context, jacket string) ([]Statement, error)
}

// Hearing is one hearing record keyed by its GPO jacket identifier.
type Hearing struct {
	Jacket        string
	Congress      int
	Session       int
	Chamber       string
	Date          time.Time
	Committees    []string // committee codes
	Subcommittees []string
	URL           string
	Witnesses     []string
	Transcript    string
}

// Statement is one parsed speaking turn, with speaker metadata attached
// when resolution succeeded. The roster-derived pointer fields are set
// all-or-nothing: either MemberID and every companion field are present,
// or all of them are nil.
type Statement struct {
	ID      string // ulid, assigned at assembly
	Jacket  string
	Ordinal int
	Cleaned string
	NameRaw string

	// Hearing-level context, denormalized for export.
	Committees     []string
	Congress       int
	Date           time.Time
	HearingChamber string

	// Roster-derived speaker metadata, nil when unresolved.
	MemberID      *int64
	NameFull      *string
	PersonChamber *string
	State         *string
	Party         []string
	Majority      *bool
	Leadership    *bool
	Seniority     *int

	// Witness carries the printed witness-list name for
	// unresolved-but-named speakers.
	Witness *string

	Confidence string
}

// Resolved reports whether the statement carries roster metadata.
func (s Statement) Resolved() bool { return s.MemberID != nil }
