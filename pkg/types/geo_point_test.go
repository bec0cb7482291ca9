package types

import "testing"

func TestGeoPointScanText(t *testing.T) {
	var p GeoPoint
	if err := p.Scan("SRID=4326;POINT(-73.000000 40.000000)"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Lat != 40 || p.Lng != -73 {
		t.Fatalf("unexpected point %+v", p)
	}
}

func TestGeoPointScanPlainWKT(t *testing.T) {
	var p GeoPoint
	if err := p.Scan([]byte("POINT(2.17 41.38)")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Lat != 41.38 || p.Lng != 2.17 {
		t.Fatalf("unexpected point %+v", p)
	}
}

func TestGeoPointScanRejectsGarbage(t *testing.T) {
	var p GeoPoint
	if err := p.Scan("LINESTRING(0 0, 1 1)"); err == nil {
		t.Fatal("expected error for non-point geometry")
	}
}

func TestGeoPointValueIsEWKT(t *testing.T) {
	v, err := GeoPoint{Lat: 40, Lng: -73}.Value()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "SRID=4326;POINT(-73.000000 40.000000)" {
		t.Fatalf("unexpected literal %v", v)
	}
}
