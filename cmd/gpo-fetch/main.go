package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/cognicore/gavel/internal/gpo"
	"github.com/cognicore/gavel/pkg/gavel/config"
	"github.com/cognicore/gavel/pkg/gavel/store"
	"github.com/cognicore/gavel/pkg/gavel/store/sqlite"
)

func main() {
	var (
		dbPath         = flag.String("db", "", "Database path (required)")
		jackets        = flag.String("jackets", "", "Comma-separated jackets to fetch (required)")
		committeesPath = flag.String("committees", "", "Committee map YAML (optional)")
		committeeNames = flag.String("committee-names", "", "Printed committee names for these hearings (optional, comma-separated)")
		date           = flag.String("date", "", "Hearing date, YYYY-MM-DD (optional)")
	)
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("--db required")
	}
	if *jackets == "" {
		log.Fatal("--jackets required")
	}

	ctx := context.Background()

	loader := config.Loader{CommitteesPath: *committeesPath}
	components, err := loader.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	var hearingDate time.Time
	if *date != "" {
		hearingDate, err = time.Parse(time.DateOnly, *date)
		if err != nil {
			log.Fatalf("Bad --date %q: %v", *date, err)
		}
	}

	var names []string
	if *committeeNames != "" {
		names = strings.Split(*committeeNames, ",")
	}
	codes, unmapped := components.Committees.Resolve(names)
	for _, name := range unmapped {
		log.Printf("Committee %q not in the committee map, skipping", name)
	}

	st, err := sqlite.OpenSQLite(ctx, *dbPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer st.Close()

	client := gpo.NewClient()
	fetched := 0
	for _, jacket := range strings.Split(*jackets, ",") {
		jacket = strings.TrimSpace(jacket)
		if jacket == "" {
			continue
		}

		meta, err := gpo.ParseJacket(jacket)
		if err != nil {
			log.Printf("Skipping %s: %v", jacket, err)
			continue
		}

		transcript, err := client.FetchTranscript(ctx, jacket)
		if err != nil {
			log.Printf("Failed to fetch %s: %v", jacket, err)
			continue
		}

		// Committees spanning chambers make the hearing joint regardless
		// of the jacket letter.
		chamber := meta.Chamber
		if derived := components.Committees.HearingChamber(names); derived != "" {
			chamber = derived
		}

		h := store.Hearing{
			Jacket:     jacket,
			Congress:   meta.Congress,
			Chamber:    chamber,
			Date:       hearingDate,
			Committees: codes,
			URL:        "https://www.govinfo.gov/content/pkg/" + jacket,
			Transcript: transcript,
		}
		if err := st.UpsertHearing(ctx, h); err != nil {
			log.Printf("Failed to store %s: %v", jacket, err)
			continue
		}
		fetched++
		log.Printf("Fetched %s (%d chars)", jacket, len(transcript))
	}

	log.Printf("Stored %d hearings", fetched)
}
