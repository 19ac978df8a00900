package stewart

import (
	"errors"
	"strings"
	"testing"

	"github.com/cognicore/gavel/pkg/gavel/internalerr"
	"github.com/cognicore/gavel/pkg/gavel/roster"
)

const sampleCSV = `id,name,chamber,party,state,congress,committee,majority,seniority,leadership
1001,"Gillmor, Paul E.",house,R,oh,107,HSIF,0,7,0
1001,"Gillmor, Paul E.",house,R,oh,108,HSIF,1,6,0
1002,"Smith, Christopher H.",house,R,nj,108,HSFA,1,2,1
`

func TestReadMembersAggregates(t *testing.T) {
	members, err := ReadMembers(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ReadMembers: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}

	gillmor := members[0]
	if gillmor.ID != 1001 || gillmor.Name != "gillmor, paul e." {
		t.Errorf("member mismatch: %+v", gillmor)
	}
	if gillmor.Chamber != roster.ChamberHouse || gillmor.State != "OH" {
		t.Errorf("chamber/state not normalized: %+v", gillmor)
	}
	if len(gillmor.Terms) != 2 {
		t.Fatalf("expected terms for 2 congresses, got %v", gillmor.Terms)
	}
	role := gillmor.Terms[108][0]
	if role.Committee != "HSIF" || !role.Majority || role.Seniority != 6 || role.Leadership {
		t.Errorf("role mismatch: %+v", role)
	}

	smith := members[1]
	if !smith.Terms[108][0].Leadership {
		t.Errorf("leadership flag lost: %+v", smith.Terms[108][0])
	}
}

func TestReadMembersSkipsMalformedRows(t *testing.T) {
	csv := `id,name,chamber,party,state,congress,committee,majority,seniority,leadership
1001,"Gillmor, Paul E.",house,R,oh,108,HSIF,1,6,0
,missing id,house,R,oh,108,HSIF,0,1,0
1003,"Smith, Adam",house,D,wa,not-a-congress,HSAS,0,9,0
1004,"Oxley, Michael G.",neither,R,oh,108,HSIF,1,1,1
1005,"Waters, Maxine",house,D,ca,108,HSBA,0,4,0
`
	members, err := ReadMembers(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadMembers: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 valid members, got %d: %+v", len(members), members)
	}
	if members[0].ID != 1001 || members[1].ID != 1005 {
		t.Errorf("wrong members survived: %+v", members)
	}
}

func TestReadMembersRejectsBadHeader(t *testing.T) {
	_, err := ReadMembers(strings.NewReader("id,name,chamber\n1,x,house\n"))
	if !errors.Is(err, internalerr.ErrInvalidRoster) {
		t.Fatalf("expected ErrInvalidRoster, got %v", err)
	}
}

func TestReadMembersFeedsIndexBuild(t *testing.T) {
	members, err := ReadMembers(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}
	idx, err := roster.Build(members)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got := idx.Lookup(roster.Query{Chamber: roster.ChamberHouse, Congress: 108, Surname: "gillmor"})
	if len(got) != 1 || got[0].ID != 1001 {
		t.Errorf("loaded roster not queryable: %+v", got)
	}
}
