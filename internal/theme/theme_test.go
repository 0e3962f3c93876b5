package theme

import (
	"testing"
	"time"
)

func TestIsNight_EquatorNoonAndMidnight(t *testing.T) {
	noon := time.Date(2026, 3, 21, 12, 0, 0, 0, time.UTC)
	midnight := time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC)

	if IsNight(0, 0, noon) {
		t.Error("expected day at the equator at solar noon")
	}
	if !IsNight(0, 0, midnight) {
		t.Error("expected night at the equator at midnight")
	}
}

func TestIsNight_RespectsLongitude(t *testing.T) {
	// 12:00 UTC is roughly local midnight at 180 degrees east.
	at := time.Date(2026, 3, 21, 12, 0, 0, 0, time.UTC)

	if !IsNight(0, 180, at) {
		t.Error("expected night on the far side of the globe")
	}
}

func TestCompute_PolarCases(t *testing.T) {
	svalbard := 78.22

	june := Compute(svalbard, 15.65, time.Date(2026, 6, 21, 12, 0, 0, 0, time.UTC))
	if !june.PolarDay {
		t.Errorf("expected polar day at %v in June, got %+v", svalbard, june)
	}

	december := Compute(svalbard, 15.65, time.Date(2026, 12, 21, 12, 0, 0, 0, time.UTC))
	if !december.PolarNight {
		t.Errorf("expected polar night at %v in December, got %+v", svalbard, december)
	}
}

func TestCompute_SunriseBeforeSunset(t *testing.T) {
	st := Compute(48.8566, 2.3522, time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))

	if st.PolarDay || st.PolarNight {
		t.Fatalf("unexpected polar flags for Paris: %+v", st)
	}
	if !st.Sunrise.Before(st.Sunset) {
		t.Errorf("sunrise %v not before sunset %v", st.Sunrise, st.Sunset)
	}
	day := st.Sunset.Sub(st.Sunrise)
	if day < 10*time.Hour || day > 16*time.Hour {
		t.Errorf("implausible Paris day length in September: %v", day)
	}
}

func TestIsNight_ConsistentWithComputedTimes(t *testing.T) {
	lat, lng := 35.6762, 139.6503 // Tokyo
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	st := Compute(lat, lng, date)

	if IsNight(lat, lng, st.Sunrise.Add(30*time.Minute)) {
		t.Error("expected day shortly after sunrise")
	}
	if !IsNight(lat, lng, st.Sunset.Add(30*time.Minute)) {
		t.Error("expected night shortly after sunset")
	}
}
