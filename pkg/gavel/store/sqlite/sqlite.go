package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/gavel/pkg/gavel/roster"
	"github.com/cognicore/gavel/pkg/gavel/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	// Initialize schema
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS hearings (
	jacket TEXT PRIMARY KEY,
	congress INTEGER NOT NULL,
	session INTEGER,
	chamber TEXT,
	date TEXT,
	committees TEXT,
	subcommittees TEXT,
	url TEXT,
	witnesses TEXT,
	transcript TEXT
);

CREATE TABLE IF NOT EXISTS members (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	aliases TEXT,
	chamber TEXT,
	party TEXT,
	state TEXT,
	terms TEXT
);

CREATE TABLE IF NOT EXISTS statements (
	id TEXT PRIMARY KEY,
	jacket TEXT NOT NULL,
	ordinal INTEGER NOT NULL,
	cleaned TEXT,
	name_raw TEXT,
	committees TEXT,
	congress INTEGER,
	date TEXT,
	hearing_chamber TEXT,
	member_id INTEGER,
	name_full TEXT,
	person_chamber TEXT,
	state TEXT,
	party TEXT,
	majority INTEGER,
	leadership INTEGER,
	seniority INTEGER,
	witness TEXT,
	confidence TEXT,
	UNIQUE(jacket, ordinal),
	FOREIGN KEY(jacket) REFERENCES hearings(jacket) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_statements_member ON statements(member_id);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertHearing inserts or updates a hearing, keyed by jacket
func (s *sqliteStore) UpsertHearing(ctx context.Context, h store.Hearing) error {
	committees, err := json.Marshal(h.Committees)
	if err != nil {
		return err
	}
	subcommittees, err := json.Marshal(h.Subcommittees)
	if err != nil {
		return err
	}
	witnesses, err := json.Marshal(h.Witnesses)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO hearings (jacket, congress, session, chamber, date, committees, subcommittees, url, witnesses, transcript)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(jacket) DO UPDATE SET
	congress=excluded.congress,
	session=excluded.session,
	chamber=excluded.chamber,
	date=excluded.date,
	committees=excluded.committees,
	subcommittees=excluded.subcommittees,
	url=excluded.url,
	witnesses=excluded.witnesses,
	transcript=excluded.transcript;
`, h.Jacket, h.Congress, h.Session, h.Chamber, h.Date.UTC().Format(time.RFC3339),
		string(committees), string(subcommittees), h.URL, string(witnesses), h.Transcript)
	return err
}

// GetHearing retrieves a hearing by jacket
func (s *sqliteStore) GetHearing(ctx context.Context, jacket string) (store.Hearing, bool, error) {
	var (
		h                                    store.Hearing
		date                                 string
		committees, subcommittees, witnesses string
	)
	err := s.db.QueryRowContext(ctx, `
SELECT jacket, congress, session, chamber, date, committees, subcommittees, url, witnesses, transcript
FROM hearings
WHERE jacket = ?;
`, jacket).Scan(&h.Jacket, &h.Congress, &h.Session, &h.Chamber, &date,
		&committees, &subcommittees, &h.URL, &witnesses, &h.Transcript)
	if err == sql.ErrNoRows {
		return store.Hearing{}, false, nil
	}
	if err != nil {
		return store.Hearing{}, false, err
	}

	if date != "" {
		if parsed, perr := time.Parse(time.RFC3339, date); perr == nil {
			h.Date = parsed
		}
	}
	if err := json.Unmarshal([]byte(committees), &h.Committees); err != nil {
		return store.Hearing{}, false, err
	}
	if err := json.Unmarshal([]byte(subcommittees), &h.Subcommittees); err != nil {
		return store.Hearing{}, false, err
	}
	if err := json.Unmarshal([]byte(witnesses), &h.Witnesses); err != nil {
		return store.Hearing{}, false, err
	}
	return h, true, nil
}

// ListJackets returns all stored jacket identifiers
func (s *sqliteStore) ListJackets(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT jacket FROM hearings ORDER BY jacket`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jackets []string
	for rows.Next() {
		var j string
		if err := rows.Scan(&j); err != nil {
			return nil, err
		}
		jackets = append(jackets, j)
	}
	return jackets, rows.Err()
}

// UpsertMember inserts or updates a roster member
func (s *sqliteStore) UpsertMember(ctx context.Context, m roster.Member) error {
	aliases, err := json.Marshal(m.Aliases)
	if err != nil {
		return err
	}
	terms, err := json.Marshal(m.Terms)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO members (id, name, aliases, chamber, party, state, terms)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	name=excluded.name,
	aliases=excluded.aliases,
	chamber=excluded.chamber,
	party=excluded.party,
	state=excluded.state,
	terms=excluded.terms;
`, m.ID, m.Name, string(aliases), m.Chamber, m.Party, m.State, string(terms))
	return err
}

// GetMember retrieves a roster member by ID
func (s *sqliteStore) GetMember(ctx context.Context, id int64) (roster.Member, bool, error) {
	var (
		m              roster.Member
		aliases, terms string
	)
	err := s.db.QueryRowContext(ctx, `
SELECT id, name, aliases, chamber, party, state, terms
FROM members
WHERE id = ?;
`, id).Scan(&m.ID, &m.Name, &aliases, &m.Chamber, &m.Party, &m.State, &terms)
	if err == sql.ErrNoRows {
		return roster.Member{}, false, nil
	}
	if err != nil {
		return roster.Member{}, false, err
	}

	if err := json.Unmarshal([]byte(aliases), &m.Aliases); err != nil {
		return roster.Member{}, false, err
	}
	if err := json.Unmarshal([]byte(terms), &m.Terms); err != nil {
		return roster.Member{}, false, err
	}
	return m, true, nil
}

// AllMembers retrieves every stored member
func (s *sqliteStore) AllMembers(ctx context.Context) ([]roster.Member, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, name, aliases, chamber, party, state, terms
FROM members
ORDER BY id;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []roster.Member
	for rows.Next() {
		var (
			m              roster.Member
			aliases, terms string
		)
		if err := rows.Scan(&m.ID, &m.Name, &aliases, &m.Chamber, &m.Party, &m.State, &terms); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(aliases), &m.Aliases); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(terms), &m.Terms); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// ReplaceStatements swaps a hearing's full statement set in one transaction.
// A reparse replaces, never appends.
func (s *sqliteStore) ReplaceStatements(ctx context.Context, jacket string, stmts []store.Statement) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM statements WHERE jacket=?`, jacket); err != nil {
		return err
	}

	if len(stmts) > 0 {
		ins, err := tx.PrepareContext(ctx, `
INSERT INTO statements (
	id, jacket, ordinal, cleaned, name_raw,
	committees, congress, date, hearing_chamber,
	member_id, name_full, person_chamber, state, party,
	majority, leadership, seniority, witness, confidence
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer ins.Close()

		for _, st := range stmts {
			committees, err := json.Marshal(st.Committees)
			if err != nil {
				return err
			}
			var party interface{}
			if st.Party != nil {
				b, err := json.Marshal(st.Party)
				if err != nil {
					return err
				}
				party = string(b)
			}
			if _, err := ins.ExecContext(ctx,
				st.ID, jacket, st.Ordinal, st.Cleaned, st.NameRaw,
				string(committees), st.Congress, st.Date.UTC().Format(time.RFC3339), st.HearingChamber,
				st.MemberID, st.NameFull, st.PersonChamber, st.State, party,
				boolPtrToInt(st.Majority), boolPtrToInt(st.Leadership), st.Seniority,
				st.Witness, st.Confidence,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// GetStatements retrieves a hearing's statements in ordinal order
func (s *sqliteStore) GetStatements(ctx context.Context, jacket string) ([]store.Statement, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT
	id, jacket, ordinal, cleaned, name_raw,
	committees, congress, date, hearing_chamber,
	member_id, name_full, person_chamber, state, party,
	majority, leadership, seniority, witness, confidence
FROM statements
WHERE jacket = ?
ORDER BY ordinal;
`, jacket)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stmts []store.Statement
	for rows.Next() {
		var (
			st                      store.Statement
			committees, date        string
			memberID                sql.NullInt64
			nameFull, personChamber sql.NullString
			state, party, witness   sql.NullString
			majority, leadership    sql.NullInt64
			seniority               sql.NullInt64
		)
		if err := rows.Scan(
			&st.ID, &st.Jacket, &st.Ordinal, &st.Cleaned, &st.NameRaw,
			&committees, &st.Congress, &date, &st.HearingChamber,
			&memberID, &nameFull, &personChamber, &state, &party,
			&majority, &leadership, &seniority, &witness, &st.Confidence,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(committees), &st.Committees); err != nil {
			return nil, err
		}
		if date != "" {
			if parsed, perr := time.Parse(time.RFC3339, date); perr == nil {
				st.Date = parsed
			}
		}
		if memberID.Valid {
			st.MemberID = &memberID.Int64
		}
		if nameFull.Valid {
			st.NameFull = &nameFull.String
		}
		if personChamber.Valid {
			st.PersonChamber = &personChamber.String
		}
		if state.Valid {
			st.State = &state.String
		}
		if witness.Valid {
			st.Witness = &witness.String
		}
		if party.Valid {
			if err := json.Unmarshal([]byte(party.String), &st.Party); err != nil {
				return nil, err
			}
		}
		if majority.Valid {
			v := majority.Int64 != 0
			st.Majority = &v
		}
		if leadership.Valid {
			v := leadership.Int64 != 0
			st.Leadership = &v
		}
		if seniority.Valid {
			v := int(seniority.Int64)
			st.Seniority = &v
		}
		stmts = append(stmts, st)
	}
	return stmts, rows.Err()
}

func boolPtrToInt(p *bool) interface{} {
	if p == nil {
		return nil
	}
	if *p {
		return 1
	}
	return 0
}
