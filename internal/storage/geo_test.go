package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeoAddAndPos(t *testing.T) {
	s := NewStore()
	n := s.GeoAdd("cities", []GeoPoint{
		{Longitude: 13.361389, Latitude: 38.115556, Member: "Palermo"},
		{Longitude: 15.087269, Latitude: 37.502669, Member: "Catania"},
	})
	assert.Equal(t, 2, n)

	pos := s.GeoPos("cities", []string{"Palermo", "missing"})
	assert.Len(t, pos, 2)
	assert.NotNil(t, pos[0])
	assert.InDelta(t, 13.361389, pos[0].Longitude, 0.001)
	assert.InDelta(t, 38.115556, pos[0].Latitude, 0.001)
	assert.Nil(t, pos[1])
}

func TestGeoAddInvalidCoordinate(t *testing.T) {
	s := NewStore()
	n := s.GeoAdd("cities", []GeoPoint{{Longitude: 200, Latitude: 0, Member: "bad"}})
	assert.Equal(t, -1, n)
}

func TestGeoDistKnownCities(t *testing.T) {
	s := NewStore()
	s.GeoAdd("cities", []GeoPoint{
		{Longitude: 13.361389, Latitude: 38.115556, Member: "Palermo"},
		{Longitude: 15.087269, Latitude: 37.502669, Member: "Catania"},
	})

	dist := s.GeoDist("cities", "Palermo", "Catania", "km")
	assert.NotNil(t, dist)
	// Real Palermo-Catania distance is ~166km; geohash quantization allows slack.
	assert.InDelta(t, 166.0, *dist, 2.0)
}

func TestGeoDistMissingMember(t *testing.T) {
	s := NewStore()
	s.GeoAdd("cities", []GeoPoint{{Longitude: 0, Latitude: 0, Member: "origin"}})
	assert.Nil(t, s.GeoDist("cities", "origin", "missing", "m"))
}

func TestGeoRadiusFindsNearbyMembers(t *testing.T) {
	s := NewStore()
	s.GeoAdd("cities", []GeoPoint{
		{Longitude: 13.361389, Latitude: 38.115556, Member: "Palermo"},
		{Longitude: 15.087269, Latitude: 37.502669, Member: "Catania"},
		{Longitude: 2.349014, Latitude: 48.864716, Member: "Paris"},
	})

	results := s.GeoRadius("cities", 15, 37, 200, "km", false, false, false, -1)
	members := make([]string, len(results))
	for i, r := range results {
		members[i] = r.Member
	}
	assert.Contains(t, members, "Catania")
	assert.NotContains(t, members, "Paris")
}

func TestGeoHashFormat(t *testing.T) {
	s := NewStore()
	s.GeoAdd("cities", []GeoPoint{{Longitude: 13.361389, Latitude: 38.115556, Member: "Palermo"}})
	hashes := s.GeoHash("cities", []string{"Palermo"})
	assert.Len(t, hashes[0], 11)
}
