package main

import (
	"context"
	"flag"
	"log"

	"github.com/cognicore/gavel/internal/stewart"
	"github.com/cognicore/gavel/pkg/gavel/roster"
	"github.com/cognicore/gavel/pkg/gavel/store/sqlite"
)

func main() {
	var (
		dbPath  = flag.String("db", "", "Database path (required)")
		csvPath = flag.String("csv", "", "Roster CSV file (required)")
	)
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("--db required")
	}
	if *csvPath == "" {
		log.Fatal("--csv required")
	}

	ctx := context.Background()

	members, err := stewart.LoadMembers(*csvPath)
	if err != nil {
		log.Fatal("Failed to load roster:", err)
	}

	// Validate before touching the database: malformed roster data is the
	// one fatal startup condition.
	if _, err := roster.Build(members); err != nil {
		log.Fatal("Roster validation failed:", err)
	}

	st, err := sqlite.OpenSQLite(ctx, *dbPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer st.Close()

	for _, m := range members {
		if err := st.UpsertMember(ctx, m); err != nil {
			log.Fatalf("Failed to store member %d: %v", m.ID, err)
		}
	}
	log.Printf("Ingested %d members from %s", len(members), *csvPath)
}
