package catalog

import "github.com/Domenick1991/lastchanceair/internal/domain"

var cities = []domain.City{
	{City: "Los Angeles", Code: "LAX"},
	{City: "San Francisco", Code: "SFO"},
	{City: "Seattle", Code: "SEA"},
	{City: "Denver", Code: "DEN"},
	{City: "Dallas", Code: "DFW"},
	{City: "Chicago", Code: "ORD"},
	{City: "New York", Code: "JFK"},
	{City: "Boston", Code: "BOS"},
	{City: "Miami", Code: "MIA"},
	{City: "Atlanta", Code: "ATL"},
	{City: "Houston", Code: "IAH"},
	{City: "Phoenix", Code: "PHX"},
	{City: "Las Vegas", Code: "LAS"},
	{City: "Orlando", Code: "MCO"},
	{City: "Washington DC", Code: "IAD"},
}

var airlines = []string{
	"SkyWings",
	"AeroConnect",
	"CloudJet",
	"PacificAir",
	"Sunrise Airways",
	"MetroFly",
	"JetStream",
}

// Cities returns a copy of the reference city list.
func Cities() []domain.City {
	out := make([]domain.City, len(cities))
	copy(out, cities)
	return out
}
