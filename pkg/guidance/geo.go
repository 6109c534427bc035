package guidance

import "math"

/*
BearingTo. menghitung sudut bearing (derajat, -180..180, searah jarum jam dari utara) untuk segmen (p1,p2).
https://www.movable-type.co.uk/scripts/latlong.html
*/
func BearingTo(p1Lat, p1Lon, p2Lat, p2Lon float64) float64 {
	dLon := (p2Lon - p1Lon) * math.Pi / 180.0

	lat1 := p1Lat * math.Pi / 180.0
	lat2 := p2Lat * math.Pi / 180.0

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) -
		math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	return math.Atan2(y, x) * 180.0 / math.Pi
}
