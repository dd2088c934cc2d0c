package airtime

import "testing"

func TestSetAndGetWithinWindow(t *testing.T) {
	e := New(1000)
	e.Set(1, 100)
	if got := e.Get(1); got != 100 {
		t.Errorf("Get(1) = %d, want 100 ppk", got)
	}
}

func TestGetDecaysOverElapsedTime(t *testing.T) {
	e := New(1000)
	e.Set(1, 500)
	// Half the window has elapsed: total should have decayed by half.
	got := e.Get(501)
	if got < 230 || got > 270 {
		t.Errorf("Get(501) = %d, want roughly 250", got)
	}
}

func TestGetResetsAfterFullWindow(t *testing.T) {
	e := New(1000)
	e.Set(1, 500)
	if got := e.Get(2001); got != 0 {
		t.Errorf("Get after full window elapsed = %d, want 0", got)
	}
}

func TestAdmissionThresholds(t *testing.T) {
	e := NewDefault()
	e.Set(1, 27000) // 27s on-air within a 30s window
	if got := e.Get(1); got < 900 {
		t.Errorf("Get(1) = %d, expected to be at/above the 900 ceiling for this fixture", got)
	}
}

func TestLoraAirtimeIncreasesWithSize(t *testing.T) {
	small := LoraAirtime(10, 7, 250, 8, LowDRAuto, true, 8)
	large := LoraAirtime(100, 7, 250, 8, LowDRAuto, true, 8)
	if large <= small {
		t.Errorf("LoraAirtime(100) = %d, want > LoraAirtime(10) = %d", large, small)
	}
}

func TestLoraAirtimeCodingRateAffectsTime(t *testing.T) {
	fast := LoraAirtime(50, 7, 250, 1, LowDRAuto, true, 8) // 4/5
	robust := LoraAirtime(50, 7, 250, 4, LowDRAuto, true, 8) // 4/8
	if robust <= fast {
		t.Errorf("4/8 airtime (%d) should exceed 4/5 airtime (%d)", robust, fast)
	}
}

func TestLoraAirtimePositive(t *testing.T) {
	got := LoraAirtime(24, 7, 250, 8, LowDRAuto, true, 8)
	if got <= 0 {
		t.Errorf("LoraAirtime = %d, want positive", got)
	}
}
