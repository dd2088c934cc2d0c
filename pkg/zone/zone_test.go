package zone

import "testing"

func TestFindDefaultUS(t *testing.T) {
	r := FindDefault(40.0, -100.0)
	if r.Name != "US920" {
		t.Errorf("Name = %q, want US920", r.Name)
	}
}

func TestFindDefaultEUCatchAll(t *testing.T) {
	r := FindDefault(46.0, 7.0)
	if r.Name != "EU868" {
		t.Errorf("Name = %q, want EU868", r.Name)
	}
}

func TestFindDefaultKorea(t *testing.T) {
	r := FindDefault(37.0, 127.0)
	if r.Name != "KR923" {
		t.Errorf("Name = %q, want KR923", r.Name)
	}
}

func TestFindDefaultAustralia(t *testing.T) {
	r := FindDefault(-25.0, 135.0)
	if r.Name != "AU920" {
		t.Errorf("Name = %q, want AU920", r.Name)
	}
}

func TestFindDefaultFallsThroughToLastEntry(t *testing.T) {
	// EU868's box spans the entire globe as a catch-all, so Unknown is
	// unreachable through DefaultZones — but Find must still fall back to
	// the last entry of any caller-supplied table with no match.
	custom := []Region{
		{Name: "TEST", Lat1: 1, Lat2: 0, Lon1: 1, Lon2: 0},
		Unknown,
	}
	r := Find(custom, 50.0, 50.0)
	if r.Name != "UNK" {
		t.Errorf("Name = %q, want UNK", r.Name)
	}
}
