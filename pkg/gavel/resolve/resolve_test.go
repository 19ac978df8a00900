package resolve

import (
	"testing"

	"github.com/cognicore/gavel/pkg/gavel/roster"
)

func testIndex(t *testing.T) *roster.Index {
	t.Helper()
	idx, err := roster.Build([]roster.Member{
		{
			ID: 1001, Name: "gillmor, paul e.", Chamber: roster.ChamberHouse, Party: "R", State: "OH",
			Terms: map[int][]roster.CommitteeRole{
				108: {{Committee: "HSIF", Chamber: roster.ChamberHouse, Party: "R", Majority: true, Seniority: 6}},
			},
		},
		{
			ID: 1002, Name: "smith, christopher h.", Chamber: roster.ChamberHouse, Party: "R", State: "NJ",
			Terms: map[int][]roster.CommitteeRole{
				108: {{Committee: "HSFA", Chamber: roster.ChamberHouse, Party: "R", Seniority: 2, Leadership: true}},
			},
		},
		{
			ID: 1003, Name: "smith, adam", Chamber: roster.ChamberHouse, Party: "D", State: "WA",
			Terms: map[int][]roster.CommitteeRole{
				108: {{Committee: "HSAS", Chamber: roster.ChamberHouse, Party: "D", Seniority: 9}},
			},
		},
		{
			ID: 1005, Name: "oxley, michael g.", Chamber: roster.ChamberHouse, Party: "R", State: "OH",
			Terms: map[int][]roster.CommitteeRole{
				108: {{Committee: "HSIF", Chamber: roster.ChamberHouse, Party: "R", Seniority: 1, Leadership: true}},
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return idx
}

func TestExtractName(t *testing.T) {
	cases := []struct {
		header     string
		title      string
		surname    string
		state      string
		procedural bool
	}{
		{"Mr. GILLMOR", "Mr", "gillmor", "", false},
		{"Senator KERRY", "Senator", "kerry", "", false},
		{"Mr. SHERMAN of California", "Mr", "sherman", "california", false},
		{"Ms. Jackson Lee", "Ms", "jacksonlee", "", false},
		{"Mr. GILLMOR [presiding]", "Mr", "gillmor", "", false},
		{"The CHAIRMAN", "", "", "", true},
		{"The Chairwoman", "", "", "", true},
		{"Voice", "", "", "", true},
		{"Chairman GREENSPAN", "Chairman", "greenspan", "", false},
	}
	for _, c := range cases {
		got := ExtractName(c.header)
		if got.Title != c.title || got.Surname != c.surname || got.State != c.state || got.Procedural != c.procedural {
			t.Errorf("ExtractName(%q) = %+v, want title=%q surname=%q state=%q procedural=%v",
				c.header, got, c.title, c.surname, c.state, c.procedural)
		}
	}
}

func hearing108() Hearing {
	return Hearing{
		Chamber:    roster.ChamberHouse,
		Congress:   108,
		Committees: []string{"HSIF"},
	}
}

func TestResolveExactUnique(t *testing.T) {
	r := New(testIndex(t))

	sp := r.Resolve("Mr. GILLMOR", hearing108())
	if !sp.Resolved() {
		t.Fatal("Gillmor should resolve")
	}
	if sp.Confidence != ConfidenceExactUnique {
		t.Errorf("confidence = %v, want exact-unique", sp.Confidence)
	}
	if sp.Member.ID != 1001 {
		t.Errorf("member id = %d", sp.Member.ID)
	}
}

func TestResolveCommitteeNarrowing(t *testing.T) {
	r := New(testIndex(t))

	// Two House Smiths in the 108th; only Adam Smith sits on HSAS.
	h := Hearing{Chamber: roster.ChamberHouse, Congress: 108, Committees: []string{"HSAS"}}
	sp := r.Resolve("Mr. SMITH", h)
	if !sp.Resolved() || sp.Member.ID != 1003 {
		t.Fatalf("expected Adam Smith (1003), got %+v", sp)
	}
	if sp.Confidence != ConfidenceCommittee {
		t.Errorf("confidence = %v, want committee-narrowed", sp.Confidence)
	}
}

func TestResolveAmbiguousStaysUnresolved(t *testing.T) {
	r := New(testIndex(t))

	// Neither Smith sits on the hearing committee: narrowing empties the
	// set, which is a designed outcome, not an error.
	h := Hearing{Chamber: roster.ChamberHouse, Congress: 108, Committees: []string{"HSBA"}}
	sp := r.Resolve("Mr. SMITH", h)
	if sp.Resolved() {
		t.Fatalf("ambiguous Smith should stay unresolved, got member %d", sp.Member.ID)
	}
	if sp.Confidence != ConfidenceUnresolved {
		t.Errorf("confidence = %v", sp.Confidence)
	}
	if sp.Surname != "smith" {
		t.Errorf("raw surname should be retained, got %q", sp.Surname)
	}
}

func TestResolveStateQualifier(t *testing.T) {
	idx, err := roster.Build([]roster.Member{
		{
			ID: 1, Name: "brown, sherrod", Chamber: roster.ChamberHouse, Party: "D", State: "OH",
			Terms: map[int][]roster.CommitteeRole{108: {{Committee: "HSIF", Party: "D", Seniority: 3}}},
		},
		{
			ID: 2, Name: "brown, corrine", Chamber: roster.ChamberHouse, Party: "D", State: "FL",
			Terms: map[int][]roster.CommitteeRole{108: {{Committee: "HSIF", Party: "D", Seniority: 5}}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	r := New(idx)

	sp := r.Resolve("Mr. BROWN of Ohio", hearing108())
	if !sp.Resolved() || sp.Member.ID != 1 {
		t.Fatalf("state qualifier should disambiguate, got %+v", sp)
	}
	if sp.State != "OH" {
		t.Errorf("state = %q, want OH", sp.State)
	}
}

func TestResolveWitnessUnresolvedButNamed(t *testing.T) {
	r := New(testIndex(t))

	h := hearing108()
	h.Witnesses = []string{
		"Greenspan, Alan, Chairman, Board of Governors of the Federal Reserve System",
		"Snow, John W., Secretary of the Treasury",
	}
	sp := r.Resolve("Mr. GREENSPAN", h)
	if sp.Resolved() {
		t.Fatal("a witness must not resolve to a member identity")
	}
	if sp.Witness == "" || sp.Witness != h.Witnesses[0] {
		t.Errorf("witness name should be retained, got %q", sp.Witness)
	}
	if sp.Confidence != ConfidenceUnresolved {
		t.Errorf("confidence = %v", sp.Confidence)
	}
}

func TestResolveWitnessMemberEntriesSkipped(t *testing.T) {
	r := New(testIndex(t))

	h := hearing108()
	h.Witnesses = []string{"Hon. Jane Doe, a Representative in Congress from the State of Ohio"}
	sp := r.Resolve("Ms. DOE", h)
	if sp.Witness != "" {
		t.Errorf("member-of-congress witness entries should not match, got %q", sp.Witness)
	}
}

func TestResolveProceduralWithoutChair(t *testing.T) {
	r := New(testIndex(t))

	sp := r.Resolve("The CHAIRMAN", hearing108())
	if !sp.Procedural {
		t.Fatal("The CHAIRMAN should carry the procedural marker")
	}
	if sp.Resolved() {
		t.Error("without chair tracking the tag must stay unresolved")
	}
	if sp.Witness != "" {
		t.Error("a procedural tag must never be classified as a witness")
	}
}

func TestResolveProceduralWithChair(t *testing.T) {
	r := New(testIndex(t))

	h := hearing108()
	h.ChairName = "Oxley"
	sp := r.Resolve("The CHAIRMAN", h)
	if !sp.Procedural {
		t.Error("procedural marker should be kept even when the chair resolves")
	}
	if !sp.Resolved() || sp.Member.ID != 1005 {
		t.Fatalf("chair tag should resolve to Oxley, got %+v", sp)
	}
}

func TestResolveDeterminism(t *testing.T) {
	r := New(testIndex(t))
	h := Hearing{Chamber: roster.ChamberHouse, Congress: 108, Committees: []string{"HSAS"}}

	first := r.Resolve("Mr. SMITH", h)
	for i := 0; i < 10; i++ {
		again := r.Resolve("Mr. SMITH", h)
		if again.Member != first.Member || again.Confidence != first.Confidence {
			t.Fatalf("resolution not deterministic: %+v vs %+v", first, again)
		}
	}
}

func TestFindChair(t *testing.T) {
	front := "The committee met at 10 a.m., Hon. Michael G. Oxley\n" +
		"[chairman of the committee] presiding."
	if got := FindChair(front); got != "Oxley" {
		t.Errorf("FindChair = %q, want Oxley", got)
	}
	if got := FindChair("no chair mentioned here"); got != "" {
		t.Errorf("FindChair on plain text = %q, want empty", got)
	}
}
