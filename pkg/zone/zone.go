// Package zone looks up the LoRa regulatory-region parameters (channel
// frequency, max power, bandwidth) for a given lat/lon, from a small
// bounding-box table. This is reference data the PHY driver needs to
// configure itself; the engine never consults it directly.
package zone

// RadioParams is the sub-GHz configuration a region mandates.
type RadioParams struct {
	ChannelKHz   float32
	MaxDBm       int16
	BandwidthKHz uint16
}

// Region is a named bounding box and the radio parameters that apply inside
// it. Lat1/Lon1 is the box's northeast corner, Lat2/Lon2 its southwest
// corner, both truncated to whole degrees.
type Region struct {
	Name  string
	Radio RadioParams
	Lat1  int16
	Lat2  int16
	Lon1  int16
	Lon2  int16
}

// Unknown is returned by Find when no region's bounding box contains the
// queried point. It always sits last in DefaultZones.
var Unknown = Region{Name: "UNK", Radio: RadioParams{ChannelKHz: 0, MaxDBm: -127, BandwidthKHz: 0}}

// DefaultZones is the built-in table of regulatory regions, in lookup
// priority order. EU868's bounding box spans the whole globe and acts as a
// catch-all ahead of Unknown.
var DefaultZones = []Region{
	{Name: "US920", Radio: RadioParams{920800, 15, 500}, Lat1: 90, Lat2: -90, Lon1: -30, Lon2: -169},
	{Name: "AU920", Radio: RadioParams{920800, 15, 500}, Lat1: -10, Lat2: -48, Lon1: 179, Lon2: 110},
	{Name: "IN866", Radio: RadioParams{868200, 14, 250}, Lat1: 40, Lat2: 5, Lon1: 89, Lon2: 69},
	{Name: "KR923", Radio: RadioParams{923200, 15, 125}, Lat1: 39, Lat2: 34, Lon1: 130, Lon2: 124},
	{Name: "AS920", Radio: RadioParams{923200, 15, 125}, Lat1: 47, Lat2: 21, Lon1: 146, Lon2: 89},
	{Name: "IL918", Radio: RadioParams{918500, 15, 125}, Lat1: 34, Lat2: 29, Lon1: 36, Lon2: 34},
	{Name: "EU868", Radio: RadioParams{868200, 14, 250}, Lat1: 90, Lat2: -90, Lon1: 180, Lon2: -180},
	Unknown,
}

// Find returns the first region in zones whose integer-truncated bounding
// box contains (latitude, longitude), or the last entry (conventionally
// Unknown) if none matches.
func Find(zones []Region, latitude, longitude float64) Region {
	lat := int16(latitude)
	lon := int16(longitude)
	for _, z := range zones {
		if lat >= z.Lat2 && lat <= z.Lat1 && lon >= z.Lon2 && lon <= z.Lon1 {
			return z
		}
	}
	return zones[len(zones)-1]
}

// FindDefault looks up latitude/longitude in DefaultZones.
func FindDefault(latitude, longitude float64) Region {
	return Find(DefaultZones, latitude, longitude)
}
