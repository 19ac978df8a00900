package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/cognicore/gavel/pkg/gavel/roster"
	"github.com/cognicore/gavel/pkg/gavel/store"
)

func TestHearingRoundTrip(t *testing.T) {
	s := New()
	defer s.Close()
	ctx := context.Background()

	h := store.Hearing{
		Jacket:     "CHRG-108hhrg12345",
		Congress:   108,
		Session:    1,
		Chamber:    roster.ChamberHouse,
		Date:       time.Date(2003, 5, 21, 0, 0, 0, 0, time.UTC),
		Committees: []string{"HSIF"},
		Witnesses:  []string{"Greenspan, Alan, Chairman, Federal Reserve"},
		Transcript: "    Mr. GILLMOR. Thank you.\n",
	}
	if err := s.UpsertHearing(ctx, h); err != nil {
		t.Fatal(err)
	}

	got, ok, err := s.GetHearing(ctx, h.Jacket)
	if err != nil || !ok {
		t.Fatalf("GetHearing: ok=%v err=%v", ok, err)
	}
	if got.Congress != 108 || got.Chamber != roster.ChamberHouse {
		t.Errorf("round-trip mismatch: %+v", got)
	}

	// Mutating the returned copy must not affect the stored record.
	got.Committees[0] = "mutated"
	again, _, _ := s.GetHearing(ctx, h.Jacket)
	if again.Committees[0] != "HSIF" {
		t.Error("store handed out a shared slice")
	}

	if _, ok, _ := s.GetHearing(ctx, "CHRG-999hhrg0"); ok {
		t.Error("unknown jacket should report not found")
	}
}

func TestListJacketsSorted(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, j := range []string{"CHRG-113jhrg79942", "CHRG-108hhrg12345", "CHRG-110shrg55555"} {
		if err := s.UpsertHearing(ctx, store.Hearing{Jacket: j}); err != nil {
			t.Fatal(err)
		}
	}
	jackets, err := s.ListJackets(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"CHRG-108hhrg12345", "CHRG-110shrg55555", "CHRG-113jhrg79942"}
	if len(jackets) != len(want) {
		t.Fatalf("got %d jackets", len(jackets))
	}
	for i := range want {
		if jackets[i] != want[i] {
			t.Errorf("jackets[%d] = %q, want %q", i, jackets[i], want[i])
		}
	}
}

func TestMemberRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	m := roster.Member{
		ID: 1001, Name: "gillmor, paul e.", Chamber: roster.ChamberHouse, Party: "R", State: "OH",
		Terms: map[int][]roster.CommitteeRole{
			108: {{Committee: "HSIF", Party: "R", Seniority: 6}},
		},
	}
	if err := s.UpsertMember(ctx, m); err != nil {
		t.Fatal(err)
	}

	got, ok, err := s.GetMember(ctx, 1001)
	if err != nil || !ok {
		t.Fatalf("GetMember: ok=%v err=%v", ok, err)
	}
	if got.Name != m.Name || len(got.Terms[108]) != 1 {
		t.Errorf("round-trip mismatch: %+v", got)
	}

	got.Terms[108][0].Committee = "mutated"
	again, _, _ := s.GetMember(ctx, 1001)
	if again.Terms[108][0].Committee != "HSIF" {
		t.Error("store handed out shared term data")
	}

	all, err := s.AllMembers(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("AllMembers: %v, %d members", err, len(all))
	}
}

func TestReplaceStatements(t *testing.T) {
	s := New()
	ctx := context.Background()
	jacket := "CHRG-108hhrg12345"

	id := int64(1001)
	first := []store.Statement{
		{Jacket: jacket, Ordinal: 1, Cleaned: "Second turn.", NameRaw: "Mr. SMITH"},
		{Jacket: jacket, Ordinal: 0, Cleaned: "First turn.", NameRaw: "Mr. GILLMOR", MemberID: &id},
	}
	if err := s.ReplaceStatements(ctx, jacket, first); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetStatements(ctx, jacket)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Ordinal != 0 || got[1].Ordinal != 1 {
		t.Fatalf("statements not in ordinal order: %+v", got)
	}
	if !got[0].Resolved() || *got[0].MemberID != 1001 {
		t.Error("member id lost in round trip")
	}

	// A reparse replaces, never appends.
	if err := s.ReplaceStatements(ctx, jacket, first[:1]); err != nil {
		t.Fatal(err)
	}
	got, _ = s.GetStatements(ctx, jacket)
	if len(got) != 1 {
		t.Errorf("replace should drop stale statements, got %d", len(got))
	}

	if stmts, _ := s.GetStatements(ctx, "CHRG-999hhrg0"); stmts != nil {
		t.Error("unknown jacket should return nil statements")
	}
}
