package app

import (
	"math"
	"testing"

	"github.com/scottyob/FANET/pkg/link"
)

func encodeDecodeService(t *testing.T, p ServicePayload) ServicePayload {
	t.Helper()
	buf := make([]byte, 32)
	w := link.NewWriter(buf)
	if err := p.Encode(w); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := DecodeServicePayload(link.NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return got
}

func TestServiceMinimalPositionOnly(t *testing.T) {
	p := ServicePayload{Latitude: 46.5, Longitude: 8.1}
	got := encodeDecodeService(t, p)
	if math.Abs(got.Latitude-p.Latitude) > 1e-4 || math.Abs(got.Longitude-p.Longitude) > 1e-4 {
		t.Errorf("got %+v, want lat/lon %v/%v", got, p.Latitude, p.Longitude)
	}
	if got.HasTemperature || got.HasWind || got.HasHumidity || got.HasBarometric || got.HasBattery {
		t.Errorf("unexpected optional fields present: %+v", got)
	}
}

func TestServiceAllFeaturesRoundTrip(t *testing.T) {
	p := ServicePayload{
		Gateway:        true,
		Latitude:       12.34,
		Longitude:      -56.78,
		HasTemperature: true,
		TemperatureC:   -12.5,
		HasWind:        true,
		WindHeadingDeg: 270,
		WindSpeedKmh:   45,
		WindGustKmh:    80,
		HasHumidity:    true,
		HumidityPct:    63.2,
		HasBarometric:  true,
		BarometricHPa:  1013.25,
		HasBattery:     true,
		BatteryPct:     80,
	}
	got := encodeDecodeService(t, p)

	if got.Gateway != true {
		t.Error("Gateway flag lost")
	}
	if math.Abs(got.TemperatureC-p.TemperatureC) > 0.5 {
		t.Errorf("TemperatureC = %v, want %v", got.TemperatureC, p.TemperatureC)
	}
	if math.Abs(got.WindSpeedKmh-p.WindSpeedKmh) > 0.2 {
		t.Errorf("WindSpeedKmh = %v, want %v", got.WindSpeedKmh, p.WindSpeedKmh)
	}
	if math.Abs(got.WindGustKmh-p.WindGustKmh) > 0.2 {
		t.Errorf("WindGustKmh = %v, want %v", got.WindGustKmh, p.WindGustKmh)
	}
	if math.Abs(got.HumidityPct-p.HumidityPct) > 0.5 {
		t.Errorf("HumidityPct = %v, want %v", got.HumidityPct, p.HumidityPct)
	}
	if math.Abs(got.BarometricHPa-p.BarometricHPa) > 0.01 {
		t.Errorf("BarometricHPa = %v, want %v", got.BarometricHPa, p.BarometricHPa)
	}
	if math.Abs(got.BatteryPct-p.BatteryPct) > 6.7 {
		t.Errorf("BatteryPct = %v, want %v", got.BatteryPct, p.BatteryPct)
	}
}

func TestServiceGatewayBitSurvivesRoundTrip(t *testing.T) {
	got := encodeDecodeService(t, ServicePayload{Gateway: true})
	if !got.Gateway {
		t.Error("Gateway should survive a round trip with no other features set")
	}
}

func TestServiceHighWindSpeedUsesScaledUnit(t *testing.T) {
	got := encodeDecodeService(t, ServicePayload{HasWind: true, WindSpeedKmh: 120, WindGustKmh: 120})
	if math.Abs(got.WindSpeedKmh-120) > 1 {
		t.Errorf("WindSpeedKmh = %v, want ~120", got.WindSpeedKmh)
	}
}
