// Package theme decides day vs night for a location, driving the globe's
// light/dark rendering when the client shares its position. Based on the
// NOAA solar position approximations.
package theme

import (
	"math"
	"time"
)

// Zenith for sunrise/sunset including refraction and the solar disc radius.
const sunriseZenithDeg = 90.833

// SunTimes is the computed solar day for one date at one location, in UTC.
type SunTimes struct {
	Sunrise    time.Time
	Sunset     time.Time
	PolarDay   bool // sun never sets on this date
	PolarNight bool // sun never rises on this date
}

// IsNight reports whether the sun is below the horizon at the given moment.
func IsNight(lat, lng float64, at time.Time) bool {
	return solarElevation(lat, lng, at.UTC()) < 0
}

// Compute returns sunrise and sunset for the UTC date of at.
func Compute(lat, lng float64, at time.Time) SunTimes {
	at = at.UTC()
	gamma := fractionalYear(at)
	decl := declination(gamma)
	eot := equationOfTime(gamma)

	latRad := lat * math.Pi / 180
	zenithRad := sunriseZenithDeg * math.Pi / 180

	cosHA := (math.Cos(zenithRad) - math.Sin(latRad)*math.Sin(decl)) /
		(math.Cos(latRad) * math.Cos(decl))

	if cosHA > 1 {
		return SunTimes{PolarNight: true}
	}
	if cosHA < -1 {
		return SunTimes{PolarDay: true}
	}

	haDeg := math.Acos(cosHA) * 180 / math.Pi

	midnight := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	sunriseMin := 720 - 4*(lng+haDeg) - eot
	sunsetMin := 720 - 4*(lng-haDeg) - eot

	return SunTimes{
		Sunrise: midnight.Add(time.Duration(sunriseMin * float64(time.Minute))),
		Sunset:  midnight.Add(time.Duration(sunsetMin * float64(time.Minute))),
	}
}

// solarElevation returns the sun's elevation angle in degrees.
func solarElevation(lat, lng float64, at time.Time) float64 {
	gamma := fractionalYear(at)
	decl := declination(gamma)
	eot := equationOfTime(gamma)

	minutes := float64(at.Hour()*60+at.Minute()) + float64(at.Second())/60
	trueSolarTime := math.Mod(minutes+eot+4*lng+1440, 1440)
	haDeg := trueSolarTime/4 - 180

	latRad := lat * math.Pi / 180
	haRad := haDeg * math.Pi / 180

	cosZenith := math.Sin(latRad)*math.Sin(decl) + math.Cos(latRad)*math.Cos(decl)*math.Cos(haRad)
	cosZenith = math.Max(-1, math.Min(1, cosZenith))

	return 90 - math.Acos(cosZenith)*180/math.Pi
}

func fractionalYear(at time.Time) float64 {
	hours := float64(at.Hour())
	return 2 * math.Pi / 365 * (float64(at.YearDay()) - 1 + (hours-12)/24)
}

func declination(gamma float64) float64 {
	return 0.006918 - 0.399912*math.Cos(gamma) + 0.070257*math.Sin(gamma) -
		0.006758*math.Cos(2*gamma) + 0.000907*math.Sin(2*gamma) -
		0.002697*math.Cos(3*gamma) + 0.00148*math.Sin(3*gamma)
}

// equationOfTime in minutes.
func equationOfTime(gamma float64) float64 {
	return 229.18 * (0.000075 + 0.001868*math.Cos(gamma) - 0.032077*math.Sin(gamma) -
		0.014615*math.Cos(2*gamma) - 0.040849*math.Sin(2*gamma))
}
