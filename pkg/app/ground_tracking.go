package app

import "github.com/scottyob/FANET/pkg/link"

// GroundType is the 4-bit ground-tracking category field.
type GroundType uint8

const (
	GroundOther                GroundType = 0
	GroundWalking               GroundType = 1
	GroundVehicle               GroundType = 2
	GroundBike                  GroundType = 3
	GroundBoot                  GroundType = 4
	GroundNeedARide             GroundType = 8
	GroundNeedTechnicalSupport  GroundType = 12
	GroundNeedMedicalHelp       GroundType = 13
	GroundDistressCall          GroundType = 14
	GroundDistressCallAutomatic GroundType = 15
)

func (t GroundType) String() string {
	switch t {
	case GroundOther:
		return "OTHER"
	case GroundWalking:
		return "WALKING"
	case GroundVehicle:
		return "VEHICLE"
	case GroundBike:
		return "BIKE"
	case GroundBoot:
		return "BOOT"
	case GroundNeedARide:
		return "NEED_A_RIDE"
	case GroundNeedTechnicalSupport:
		return "NEED_TECHNICAL_SUPPORT"
	case GroundNeedMedicalHelp:
		return "NEED_MEDICAL_HELP"
	case GroundDistressCall:
		return "DISTRESS_CALL"
	case GroundDistressCallAutomatic:
		return "DISTRESS_CALL_AUTO"
	default:
		return "UNKNOWN"
	}
}

// Distress reports whether t is one of the distress-call ground types, used
// by pkg/gateway to prioritize uplink traffic.
func (t GroundType) Distress() bool {
	switch t {
	case GroundNeedMedicalHelp, GroundDistressCall, GroundDistressCallAutomatic:
		return true
	default:
		return false
	}
}

// GroundTrackingPayload is a stationary/ground position report (MessageType GroundTracking).
type GroundTrackingPayload struct {
	Latitude   float64
	Longitude  float64
	GroundType GroundType
	Tracking   bool
}

// Encode writes the ground tracking payload in wire order. The 3 reserved
// bits between GroundType and Tracking are always written as zero.
func (p GroundTrackingPayload) Encode(w *link.Writer) error {
	latRaw := int32(roundF(clampF(p.Latitude, -90, 90) * 93206.0))
	lonRaw := int32(roundF(clampF(p.Longitude, -180, 180) * 46603.0))
	if err := w.WriteInt24LE(latRaw); err != nil {
		return err
	}
	if err := w.WriteInt24LE(lonRaw); err != nil {
		return err
	}
	if err := w.WriteBits(uint64(p.GroundType), 4); err != nil {
		return err
	}
	if err := w.WriteBits(0, 3); err != nil {
		return err
	}
	return w.WriteBool(p.Tracking)
}

// DecodeGroundTrackingPayload reads a ground tracking payload from r.
func DecodeGroundTrackingPayload(r *link.Reader) (GroundTrackingPayload, error) {
	var p GroundTrackingPayload
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

	groundType, err := r.ReadBits(4)
	if err != nil {
		return p, err
	}
	p.GroundType = GroundType(groundType)

	if _, err := r.ReadBits(3); err != nil {
		return p, err
	}

	tracking, err := r.ReadBool()
	if err != nil {
		return p, err
	}
	p.Tracking = tracking

	return p, nil
}
