package gateway

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scottyob/FANET/pkg/app"
	"github.com/scottyob/FANET/pkg/link"
)

func TestUplinkRecordServiceRoundTrip(t *testing.T) {
	rec := UplinkRecord{
		Source: link.Address{Manufacturer: 0x11, Unique: 0x2233},
		RSSI:   -87,
		Tick:   123456,
		Kind:   RecordService,
		Service: app.ServicePayload{
			Gateway:        true,
			Latitude:       46.5,
			Longitude:      8.1,
			HasTemperature: true,
			TemperatureC:   21.5,
		},
	}

	data, err := rec.Encode()
	require.NoError(t, err)

	got, err := DecodeUplinkRecord(data)
	require.NoError(t, err)

	require.Equal(t, rec.Source, got.Source)
	require.Equal(t, rec.RSSI, got.RSSI)
	require.Equal(t, rec.Tick, got.Tick)
	require.Equal(t, RecordService, got.Kind)
	require.True(t, got.Service.Gateway)
	require.True(t, got.Service.HasTemperature)
	require.Equal(t, 21.5, got.Service.TemperatureC)
}

func TestUplinkRecordGroundDistressRoundTrip(t *testing.T) {
	rec := UplinkRecord{
		Source: link.Address{Manufacturer: 0x44, Unique: 0x5566},
		RSSI:   -42,
		Tick:   999,
		Kind:   RecordGroundDistress,
		GroundTracking: app.GroundTrackingPayload{
			Latitude:   -10,
			Longitude:  10,
			GroundType: app.GroundDistressCall,
			Tracking:   true,
		},
	}

	data, err := rec.Encode()
	require.NoError(t, err)

	got, err := DecodeUplinkRecord(data)
	require.NoError(t, err)

	require.Equal(t, RecordGroundDistress, got.Kind)
	require.Equal(t, app.GroundDistressCall, got.GroundTracking.GroundType)
	require.True(t, got.GroundTracking.Tracking)
}

func TestUplinkRecordNegativeRSSISurvives(t *testing.T) {
	rec := UplinkRecord{RSSI: -128, Kind: RecordService}
	data, err := rec.Encode()
	require.NoError(t, err)

	got, err := DecodeUplinkRecord(data)
	require.NoError(t, err)
	require.EqualValues(t, -128, got.RSSI)
}
