package main

import (
	"context"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cognicore/gavel/pkg/gavel"
	"github.com/cognicore/gavel/pkg/gavel/assemble"
	"github.com/cognicore/gavel/pkg/gavel/config"
	"github.com/cognicore/gavel/pkg/gavel/roster"
	"github.com/cognicore/gavel/pkg/gavel/store"
	"github.com/cognicore/gavel/pkg/gavel/store/sqlite"
)

func main() {
	var (
		dbPath     = flag.String("db", "", "Database path (required)")
		titlesPath = flag.String("titles", "", "Extra speaker titles YAML (optional)")
		jackets    = flag.String("jackets", "", "Comma-separated jackets to parse (default: all)")
		workers    = flag.Int("workers", 4, "Parallel hearings")
		precedence = flag.String("precedence", "presiding", "Role precedence: presiding or first-listed")
		csvPath    = flag.String("csv", "", "Write enriched statements to this CSV file (optional)")
		persist    = flag.Bool("persist", true, "Write statements back to the database")
	)
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("--db required")
	}

	var rolePrec assemble.RolePrecedence
	switch *precedence {
	case "presiding":
		rolePrec = assemble.PreferPresiding
	case "first-listed":
		rolePrec = assemble.FirstListed
	default:
		log.Fatalf("unknown precedence %q", *precedence)
	}

	ctx := context.Background()

	loader := config.Loader{TitlesPath: *titlesPath}
	components, err := loader.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	st, err := sqlite.OpenSQLite(ctx, *dbPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer st.Close()

	members, err := st.AllMembers(ctx)
	if err != nil {
		log.Fatal("Failed to load roster:", err)
	}
	index, err := roster.Build(members)
	if err != nil {
		log.Fatal("Failed to build roster index:", err)
	}
	log.Printf("Roster index built: %d members", index.Size())

	g := gavel.New(gavel.Options{
		Store:             st,
		Index:             index,
		Segmenter:         components.Segmenter,
		Workers:           *workers,
		RolePrecedence:    rolePrec,
		PersistStatements: *persist,
	})

	var result gavel.Result
	if *jackets == "" {
		result, err = g.ParseAll(ctx)
	} else {
		result, err = g.Parse(ctx, strings.Split(*jackets, ","))
	}
	if err != nil {
		log.Fatal("Parse run aborted:", err)
	}

	total := 0
	for _, stmts := range result.Statements {
		total += len(stmts)
	}
	log.Printf("Parsed %d hearings, %d statements, %d failures",
		len(result.Statements), total, len(result.Failures))
	for _, f := range result.Failures {
		log.Printf("  %s: %v", f.Jacket, f.Err)
	}

	if *csvPath != "" {
		if err := writeCSV(*csvPath, result); err != nil {
			log.Fatal("Failed to write CSV:", err)
		}
		log.Printf("Wrote %s", *csvPath)
	}
}

var csvHeader = []string{
	"jacket", "ordinal", "statement_id", "name_raw", "member_id", "name_full",
	"chamber", "state", "party", "majority", "leadership", "seniority",
	"witness", "confidence", "congress", "date", "committees", "cleaned",
}

func writeCSV(path string, result gavel.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}

	jackets := make([]string, 0, len(result.Statements))
	for j := range result.Statements {
		jackets = append(jackets, j)
	}
	sort.Strings(jackets)

	for _, jacket := range jackets {
		for _, st := range result.Statements[jacket] {
			if err := w.Write(csvRow(st)); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

func csvRow(st store.Statement) []string {
	return []string{
		st.Jacket,
		strconv.Itoa(st.Ordinal),
		st.ID,
		st.NameRaw,
		int64Field(st.MemberID),
		stringField(st.NameFull),
		stringField(st.PersonChamber),
		stringField(st.State),
		strings.Join(st.Party, ";"),
		boolField(st.Majority),
		boolField(st.Leadership),
		intField(st.Seniority),
		stringField(st.Witness),
		st.Confidence,
		strconv.Itoa(st.Congress),
		st.Date.Format(time.DateOnly),
		strings.Join(st.Committees, ";"),
		st.Cleaned,
	}
}

func stringField(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func int64Field(p *int64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatInt(*p, 10)
}

func intField(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func boolField(p *bool) string {
	if p == nil {
		return ""
	}
	if *p {
		return "1"
	}
	return "0"
}
