package app

import "github.com/scottyob/FANET/pkg/link"

// AircraftType is the 3-bit aircraft-class field of a Tracking payload.
type AircraftType uint8

const (
	AircraftOther           AircraftType = 0
	AircraftParaglider      AircraftType = 1
	AircraftHangglider      AircraftType = 2
	AircraftBalloon         AircraftType = 3
	AircraftGlider          AircraftType = 4
	AircraftPoweredAircraft AircraftType = 5
	AircraftHelicopter      AircraftType = 6
	AircraftUAV             AircraftType = 7
)

func (t AircraftType) String() string {
	switch t {
	case AircraftOther:
		return "OTHER"
	case AircraftParaglider:
		return "PARAGLIDER"
	case AircraftHangglider:
		return "HANGGLIDER"
	case AircraftBalloon:
		return "BALLOON"
	case AircraftGlider:
		return "GLIDER"
	case AircraftPoweredAircraft:
		return "POWERED_AIRCRAFT"
	case AircraftHelicopter:
		return "HELICOPTER"
	case AircraftUAV:
		return "UAV"
	default:
		return "UNKNOWN"
	}
}

// TrackingPayload is the in-flight position report (MessageType Tracking).
type TrackingPayload struct {
	Latitude     float64 // degrees, clamped to [-90, 90]
	Longitude    float64 // degrees, clamped to [-180, 180]
	AltitudeM    int16   // meters, clamped to [0, 8188]
	Tracking     bool
	AircraftType AircraftType
	SpeedKmh     float64 // km/h, clamped to [0, 317.5]
	ClimbMs      float64 // m/s, clamped to [-31.5, 31.5]
	HeadingDeg   float64 // degrees, [0, 360)
	HasTurnRate  bool
	TurnRateDegS float64 // degrees/s, clamped to [-63.5, 63.5]; valid iff HasTurnRate
}

// Encode writes the tracking payload in wire order.
func (p TrackingPayload) Encode(w *link.Writer) error {
	latRaw := int32(roundF(clampF(p.Latitude, -90, 90) * 93206.0))
	lonRaw := int32(roundF(clampF(p.Longitude, -180, 180) * 46603.0))
	if err := w.WriteInt24LE(latRaw); err != nil {
		return err
	}
	if err := w.WriteInt24LE(lonRaw); err != nil {
		return err
	}

	alt := clampI(int(p.AltitudeM), 0, 8188)
	var altRaw uint16
	var aScale bool
	if alt > 2047 {
		altRaw = uint16((alt + 2) >> 2)
		aScale = true
	} else {
		altRaw = uint16(alt)
	}
	if err := w.WriteByte(uint8(altRaw)); err != nil {
		return err
	}

	if err := w.WriteBool(p.Tracking); err != nil {
		return err
	}
	if err := w.WriteBits(uint64(p.AircraftType), 3); err != nil {
		return err
	}
	if err := w.WriteBool(aScale); err != nil {
		return err
	}
	if err := w.WriteBits(uint64(altRaw>>8), 3); err != nil {
		return err
	}

	speed2 := clampI(roundF(p.SpeedKmh*2.0), 0, 127*5)
	var speedRaw int
	var sScale bool
	if speed2 > 127 {
		speedRaw = (speed2 + 2) / 5
		sScale = true
	} else {
		speedRaw = speed2
	}
	if err := w.WriteBool(sScale); err != nil {
		return err
	}
	if err := w.WriteBits(uint64(speedRaw), 7); err != nil {
		return err
	}

	climb10 := clampI(roundF(p.ClimbMs*10.0), -315, 315)
	var climbRaw int
	var cScale bool
	if abs(climb10) > 63 {
		climbRaw = (climb10 + sign(climb10)*2) / 5
		cScale = true
	} else {
		climbRaw = climb10
	}
	if err := w.WriteBool(cScale); err != nil {
		return err
	}
	if err := w.WriteBits(uint64(climbRaw)&0x7F, 7); err != nil {
		return err
	}

	heading := wrapDegrees(p.HeadingDeg)
	headingRaw := clampI(roundF(heading*256.0/360.0), 0, 255)
	if err := w.WriteByte(uint8(headingRaw)); err != nil {
		return err
	}

	if p.HasTurnRate {
		trOs := clampI(roundF(p.TurnRateDegS*4.0), -254, 254)
		var turnRaw int
		var tScale bool
		if abs(trOs) >= 63 {
			turnRaw = (trOs + sign(trOs)*2) / 4
			tScale = true
		} else {
			turnRaw = trOs
		}
		if err := w.WriteBool(tScale); err != nil {
			return err
		}
		if err := w.WriteBits(uint64(turnRaw)&0x7F, 7); err != nil {
			return err
		}
	}

	return nil
}

// DecodeTrackingPayload reads a tracking payload from r.
func DecodeTrackingPayload(r *link.Reader) (TrackingPayload, error) {
	var p TrackingPayload

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

	altLo, err := r.ReadByte()
	if err != nil {
		return p, err
	}

	tracking, err := r.ReadBool()
	if err != nil {
		return p, err
	}
	p.Tracking = tracking

	aircraftType, err := r.ReadBits(3)
	if err != nil {
		return p, err
	}
	p.AircraftType = AircraftType(aircraftType)

	aScale, err := r.ReadBool()
	if err != nil {
		return p, err
	}

	altHi, err := r.ReadBits(3)
	if err != nil {
		return p, err
	}
	altRaw := uint16(altLo) | uint16(altHi)<<8
	if aScale {
		p.AltitudeM = int16(altRaw) * 4
	} else {
		p.AltitudeM = int16(altRaw)
	}

	sScale, err := r.ReadBool()
	if err != nil {
		return p, err
	}
	speedRaw, err := r.ReadBits(7)
	if err != nil {
		return p, err
	}
	if sScale {
		p.SpeedKmh = float64(speedRaw) * 2.5
	} else {
		p.SpeedKmh = float64(speedRaw) / 2.0
	}

	cScale, err := r.ReadBool()
	if err != nil {
		return p, err
	}
	climbBits, err := r.ReadBits(7)
	if err != nil {
		return p, err
	}
	climbRaw := signExtend(climbBits, 7)
	if cScale {
		p.ClimbMs = float64(climbRaw) * 0.5
	} else {
		p.ClimbMs = float64(climbRaw) / 10.0
	}

	headingRaw, err := r.ReadByte()
	if err != nil {
		return p, err
	}
	p.HeadingDeg = float64(headingRaw) * 360.0 / 256.0

	if tScale, ok := r.PeekBool(); ok {
		_, _ = r.ReadBool()
		turnBits, err := r.ReadBits(7)
		if err != nil {
			return p, err
		}
		p.HasTurnRate = true
		turnRaw := signExtend(turnBits, 7)
		if tScale {
			p.TurnRateDegS = float64(turnRaw)
		} else {
			p.TurnRateDegS = float64(turnRaw) / 4.0
		}
	}

	return p, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}

func wrapDegrees(v float64) float64 {
	for v < 0 {
		v += 360
	}
	for v >= 360 {
		v -= 360
	}
	return v
}
