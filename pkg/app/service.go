package app

import "github.com/scottyob/FANET/pkg/link"

// Service feature-header bits. Bits 0x04 stays reserved; 0x01 marks the
// presence of an opaque extended header byte carried for future use.
const (
	serviceFlagGateway        = 0x80
	serviceFlagTemperature    = 0x40
	serviceFlagWind           = 0x20
	serviceFlagHumidity       = 0x10
	serviceFlagBarometric     = 0x08
	serviceFlagBattery        = 0x02
	serviceFlagExtendedHeader = 0x01
)

// ServicePayload is a weather/status report (MessageType Service). Latitude
// and longitude are always present. Every other field is optional and
// carries a presence bit alongside its value.
type ServicePayload struct {
	Gateway           bool
	Latitude          float64
	Longitude         float64
	HasTemperature    bool
	TemperatureC      float64 // valid iff HasTemperature, step 0.5C
	HasWind           bool
	WindHeadingDeg    float64 // valid iff HasWind
	WindSpeedKmh      float64 // valid iff HasWind
	WindGustKmh       float64 // valid iff HasWind
	HasHumidity       bool
	HumidityPct       float64 // valid iff HasHumidity
	HasBarometric     bool
	BarometricHPa     float64 // valid iff HasBarometric
	HasBattery        bool
	BatteryPct        float64 // valid iff HasBattery
	HasExtendedHeader bool
	ExtendedHeader    uint8 // opaque, valid iff HasExtendedHeader
}

// Encode writes the service payload in wire order: feature header, optional
// extended header byte, position, then the optional fields gated by their
// presence bits.
func (p ServicePayload) Encode(w *link.Writer) error {
	header := uint8(0)
	if p.Gateway {
		header |= serviceFlagGateway
	}
	if p.HasTemperature {
		header |= serviceFlagTemperature
	}
	if p.HasWind {
		header |= serviceFlagWind
	}
	if p.HasHumidity {
		header |= serviceFlagHumidity
	}
	if p.HasBarometric {
		header |= serviceFlagBarometric
	}
	if p.HasBattery {
		header |= serviceFlagBattery
	}
	if p.HasExtendedHeader {
		header |= serviceFlagExtendedHeader
	}

	if err := w.WriteByte(header); err != nil {
		return err
	}
	if p.HasExtendedHeader {
		if err := w.WriteByte(p.ExtendedHeader); err != nil {
			return err
		}
	}

	latRaw := int32(roundF(clampF(p.Latitude, -90, 90) * 93206.0))
	lonRaw := int32(roundF(clampF(p.Longitude, -180, 180) * 46603.0))
	if err := w.WriteInt24LE(latRaw); err != nil {
		return err
	}
	if err := w.WriteInt24LE(lonRaw); err != nil {
		return err
	}

	if p.HasTemperature {
		raw := clampI(roundF(p.TemperatureC*2.0), -128, 127)
		if err := w.WriteBits(uint64(uint8(int8(raw))), 8); err != nil {
			return err
		}
	}

	if p.HasWind {
		heading := wrapDegrees(p.WindHeadingDeg)
		headingRaw := clampI(roundF(heading*256.0/360.0), 0, 255)
		if err := w.WriteByte(uint8(headingRaw)); err != nil {
			return err
		}

		speedRaw, sScale := encodeWindSpeed(p.WindSpeedKmh)
		if err := w.WriteBool(sScale); err != nil {
			return err
		}
		if err := w.WriteBits(uint64(speedRaw), 7); err != nil {
			return err
		}

		gustRaw, gScale := encodeWindSpeed(p.WindGustKmh)
		if err := w.WriteBool(gScale); err != nil {
			return err
		}
		if err := w.WriteBits(uint64(gustRaw), 7); err != nil {
			return err
		}
	}

	if p.HasHumidity {
		raw := clampI(roundF(p.HumidityPct*2.5), 0, 250)
		if err := w.WriteByte(uint8(raw)); err != nil {
			return err
		}
	}

	if p.HasBarometric {
		raw := clampI(roundF(p.BarometricHPa*100.0-43000.0), 0, 0xFFFF)
		if err := w.WriteBits(uint64(raw), 16); err != nil {
			return err
		}
	}

	if p.HasBattery {
		raw := clampI(roundF(p.BatteryPct*15.0/100.0), 0, 15)
		if err := w.WriteBits(uint64(raw), 4); err != nil {
			return err
		}
	}

	return nil
}

func encodeWindSpeed(kmh float64) (raw int, scale bool) {
	speed2 := clampI(roundF(kmh*5.0), 0, 127*5)
	if speed2 > 127 {
		return speed2 / 5, true
	}
	return speed2, false
}

// DecodeServicePayload reads a service payload from r.
func DecodeServicePayload(r *link.Reader) (ServicePayload, error) {
	var p ServicePayload

	header, err := r.ReadByte()
	if err != nil {
		return p, err
	}
	p.Gateway = header&serviceFlagGateway != 0
	p.HasTemperature = header&serviceFlagTemperature != 0
	p.HasWind = header&serviceFlagWind != 0
	p.HasHumidity = header&serviceFlagHumidity != 0
	p.HasBarometric = header&serviceFlagBarometric != 0
	p.HasBattery = header&serviceFlagBattery != 0
	p.HasExtendedHeader = header&serviceFlagExtendedHeader != 0

	if p.HasExtendedHeader {
		ext, err := r.ReadByte()
		if err != nil {
			return p, err
		}
		p.ExtendedHeader = ext
	}

	latRaw, err := r.ReadInt24LE()
	if err != nil {
		return p, err
	}
	lonRaw, err := r.ReadInt24LE()
	if err != nil {
		return p, err
	}
	p.Latitude = float64(latRaw) / 93206.0
	p.Longitude = float64(lonRaw) / 46603.0

	if p.HasTemperature {
		raw, err := r.ReadBits(8)
		if err != nil {
			return p, err
		}
		p.TemperatureC = float64(signExtend(raw, 8)) / 2.0
	}

	if p.HasWind {
		headingRaw, err := r.ReadByte()
		if err != nil {
			return p, err
		}
		p.WindHeadingDeg = float64(headingRaw) * 360.0 / 256.0

		sScale, err := r.ReadBool()
		if err != nil {
			return p, err
		}
		speedRaw, err := r.ReadBits(7)
		if err != nil {
			return p, err
		}
		p.WindSpeedKmh = decodeWindSpeed(speedRaw, sScale)

		gScale, err := r.ReadBool()
		if err != nil {
			return p, err
		}
		gustRaw, err := r.ReadBits(7)
		if err != nil {
			return p, err
		}
		p.WindGustKmh = decodeWindSpeed(gustRaw, gScale)
	}

	if p.HasHumidity {
		raw, err := r.ReadByte()
		if err != nil {
			return p, err
		}
		p.HumidityPct = float64(raw) * 0.4
	}

	if p.HasBarometric {
		raw, err := r.ReadBits(16)
		if err != nil {
			return p, err
		}
		p.BarometricHPa = float64(raw)/100.0 + 430.0
	}

	if p.HasBattery {
		raw, err := r.ReadBits(4)
		if err != nil {
			return p, err
		}
		p.BatteryPct = float64(raw) * 100.0 / 15.0
	}

	return p, nil
}

func decodeWindSpeed(raw uint64, scale bool) float64 {
	if scale {
		return float64(raw)
	}
	return float64(raw) / 5.0
}
