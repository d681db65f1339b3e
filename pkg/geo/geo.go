package geo

import "math"

// Point 经纬度坐标（纬度[-90,90]，经度[-180,180]）
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// earthRadiusKm 地球半径（千米），按球面近似
const earthRadiusKm = 6371

// Valid 校验坐标范围
func (p Point) Valid() bool {
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}

// Distance 计算两点间大圆距离（千米），Haversine公式
// a = sin²(Δlat/2) + cos(lat1)·cos(lat2)·sin²(Δlon/2)
// d = 2·asin(√a)·R
func Distance(from, to Point) float64 {
	lat1 := toRadians(from.Latitude)
	lat2 := toRadians(to.Latitude)
	dLat := toRadians(to.Latitude - from.Latitude)
	dLon := toRadians(to.Longitude - from.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * math.Asin(math.Sqrt(a)) * earthRadiusKm
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
