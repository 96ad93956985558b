package locator

import (
	"math"
	"testing"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		locator string
		valid   bool
	}{
		{"JN", true},
		{"JN79", true},
		{"JN79GB", true},
		{"JN79GB22", true},
		{"jn79gb", true},
		{" JN79 ", true},
		{"", false},
		{"J", false},
		{"JN7", false},
		{"ZZ79", false},
		{"JNAA", false},
		{"JN79ZZ", false},
		{"JN79GB2", false},
		{"JN79GB2233", false},
	}

	for _, tt := range tests {
		t.Run(tt.locator, func(t *testing.T) {
			if got := IsValid(tt.locator); got != tt.valid {
				t.Errorf("IsValid(%q) = %v, want %v", tt.locator, got, tt.valid)
			}
		})
	}
}

func TestToPoint(t *testing.T) {
	tests := []struct {
		locator  string
		lat, lon float64
	}{
		{"JN79GB", 49.0625, 14.541667}, // southern Bohemia
		{"FN31PR", 41.729167, -72.708333},
		{"AA00AA", -89.979167, -179.958333},
		{"RR99XX", 89.979167, 179.958333},
	}

	for _, tt := range tests {
		t.Run(tt.locator, func(t *testing.T) {
			p, err := ToPoint(tt.locator)
			if err != nil {
				t.Fatalf("ToPoint(%q) returned error: %v", tt.locator, err)
			}
			if math.Abs(p.Latitude-tt.lat) > 0.001 {
				t.Errorf("Latitude = %f, want %f", p.Latitude, tt.lat)
			}
			if math.Abs(p.Longitude-tt.lon) > 0.001 {
				t.Errorf("Longitude = %f, want %f", p.Longitude, tt.lon)
			}
		})
	}
}

func TestFromPointRoundTrip(t *testing.T) {
	locators := []string{"JN79GB", "FN31PR", "IO91WM", "QF56OD"}

	for _, loc := range locators {
		t.Run(loc, func(t *testing.T) {
			p, err := ToPoint(loc)
			if err != nil {
				t.Fatalf("ToPoint(%q) returned error: %v", loc, err)
			}
			got, err := FromPoint(p, len(loc))
			if err != nil {
				t.Fatalf("FromPoint returned error: %v", err)
			}
			if got != loc {
				t.Errorf("round trip produced %q, want %q", got, loc)
			}
		})
	}
}

func TestFromPointRejectsBadInput(t *testing.T) {
	if _, err := FromPoint(Point{Latitude: 91}, 6); err == nil {
		t.Error("expected error for latitude out of range")
	}
	if _, err := FromPoint(Point{}, 5); err == nil {
		t.Error("expected error for odd length")
	}
	if _, err := FromPoint(Point{}, 10); err == nil {
		t.Error("expected error for excessive length")
	}
}

func TestDistance(t *testing.T) {
	prague, _ := ToPoint("JO70FB")
	newYork, _ := ToPoint("FN30AS")

	km := Distance(prague, newYork)
	if math.Abs(km-6570) > 100 {
		t.Errorf("Prague-New York distance = %f km, want about 6570", km)
	}

	if d := Distance(prague, prague); d != 0 {
		t.Errorf("distance to self = %f, want 0", d)
	}
}

func TestBearing(t *testing.T) {
	equator := Point{Latitude: 0, Longitude: 0}

	tests := []struct {
		name    string
		to      Point
		bearing float64
	}{
		{"due north", Point{Latitude: 10, Longitude: 0}, 0},
		{"due east", Point{Latitude: 0, Longitude: 10}, 90},
		{"due south", Point{Latitude: -10, Longitude: 0}, 180},
		{"due west", Point{Latitude: 0, Longitude: -10}, 270},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bearing(equator, tt.to)
			if math.Abs(got-tt.bearing) > 0.01 {
				t.Errorf("Bearing = %f, want %f", got, tt.bearing)
			}
		})
	}
}
