package geo

import "testing"

func TestHaversineKm(t *testing.T) {
	// Jakarta (-6.2, 106.816) to Bandung (-6.9175, 107.6191) ~ 115-120 km
	d := HaversineKm(-6.2, 106.816, -6.9175, 107.6191)
	if d < 100 || d > 140 {
		t.Fatalf("unexpected distance: %v", d)
	}
}

func TestHaversineKmIdenticalPoints(t *testing.T) {
	if d := HaversineKm(47.6062, -122.3321, 47.6062, -122.3321); d != 0 {
		t.Fatalf("expected zero distance, got %v", d)
	}
}

func TestHaversineKmSymmetry(t *testing.T) {
	a := HaversineKm(-6.2, 106.816, 51.5074, -0.1278)
	b := HaversineKm(51.5074, -0.1278, -6.2, 106.816)
	if a != b {
		t.Fatalf("expected symmetric distance: %v vs %v", a, b)
	}
}

func TestHaversineKmAntipodal(t *testing.T) {
	// Half the Earth's circumference, ~20015 km.
	d := HaversineKm(0, 0, 0, 180)
	if d < 20000 || d > 20040 {
		t.Fatalf("unexpected antipodal distance: %v", d)
	}
}

func TestDistanceKm(t *testing.T) {
	viewer := &LatLng{Lat: -6.2, Lng: 106.816}
	target := &LatLng{Lat: -6.9175, Lng: 107.6191}

	if _, ok := DistanceKm(nil, target); ok {
		t.Fatalf("expected unknown distance for absent first coordinate")
	}
	if _, ok := DistanceKm(viewer, nil); ok {
		t.Fatalf("expected unknown distance for absent second coordinate")
	}
	d, ok := DistanceKm(viewer, target)
	if !ok || d < 100 || d > 140 {
		t.Fatalf("unexpected distance: %v %v", d, ok)
	}
}
