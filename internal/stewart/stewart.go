// Package stewart loads congressional committee-assignment rosters from
// CSV exports. One input row covers one member-committee-congress standing;
// rows aggregate into roster.Member records keyed by member ID.
package stewart

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/cognicore/gavel/pkg/gavel/internalerr"
	"github.com/cognicore/gavel/pkg/gavel/roster"
)

var columns = []string{
	"id", "name", "chamber", "party", "state",
	"congress", "committee", "majority", "seniority", "leadership",
}

// LoadMembers reads a roster CSV and aggregates it into members. Malformed
// rows are logged and skipped; a missing or unusable header is fatal.
func LoadMembers(path string) ([]roster.Member, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadMembers(f)
}

// ReadMembers aggregates roster rows from CSV data.
func ReadMembers(r io.Reader) ([]roster.Member, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read roster header: %w", err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*roster.Member)
	var order []int64

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("stewart: line %d: %v, skipping", line, err)
			continue
		}

		row, err := parseRow(rec, idx)
		if err != nil {
			log.Printf("stewart: line %d: %v, skipping", line, err)
			continue
		}

		m, ok := byID[row.id]
		if !ok {
			m = &roster.Member{
				ID:      row.id,
				Name:    row.name,
				Chamber: row.chamber,
				Party:   row.party,
				State:   row.state,
				Terms:   make(map[int][]roster.CommitteeRole),
			}
			byID[row.id] = m
			order = append(order, row.id)
		}
		m.Terms[row.congress] = append(m.Terms[row.congress], roster.CommitteeRole{
			Committee:  row.committee,
			Chamber:    row.chamber,
			Party:      row.party,
			Majority:   row.majority,
			Seniority:  row.seniority,
			Leadership: row.leadership,
		})
	}

	members := make([]roster.Member, 0, len(byID))
	for _, id := range order {
		members = append(members, *byID[id])
	}
	return members, nil
}

type row struct {
	id         int64
	name       string
	chamber    string
	party      string
	state      string
	congress   int
	committee  string
	majority   bool
	seniority  int
	leadership bool
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range columns {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("roster header missing column %q: %w", name, internalerr.ErrInvalidRoster)
		}
	}
	return idx, nil
}

func parseRow(rec []string, idx map[string]int) (row, error) {
	field := func(name string) string {
		i := idx[name]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	id, err := strconv.ParseInt(field("id"), 10, 64)
	if err != nil || id == 0 {
		return row{}, fmt.Errorf("bad member id %q", field("id"))
	}
	name := field("name")
	if name == "" {
		return row{}, fmt.Errorf("member %d: empty name", id)
	}
	congress, err := strconv.Atoi(field("congress"))
	if err != nil {
		return row{}, fmt.Errorf("member %d: bad congress %q", id, field("congress"))
	}
	committee := field("committee")
	if committee == "" {
		return row{}, fmt.Errorf("member %d: empty committee", id)
	}

	chamber := strings.ToUpper(field("chamber"))
	switch chamber {
	case roster.ChamberHouse, roster.ChamberSenate:
	default:
		return row{}, fmt.Errorf("member %d: unknown chamber %q", id, field("chamber"))
	}

	seniority := 0
	if s := field("seniority"); s != "" {
		seniority, err = strconv.Atoi(s)
		if err != nil {
			return row{}, fmt.Errorf("member %d: bad seniority %q", id, s)
		}
	}

	return row{
		id:         id,
		name:       strings.ToLower(name),
		chamber:    chamber,
		party:      field("party"),
		state:      strings.ToUpper(field("state")),
		congress:   congress,
		committee:  committee,
		majority:   parseBool(field("majority")),
		seniority:  seniority,
		leadership: parseBool(field("leadership")),
	}, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "t", "yes", "y":
		return true
	}
	return false
}
