package models

// Location is one tracked site. A subset are warehouses, which act as
// supply sources for the planner; the rest are retail destinations.
type Location struct {
	Group       string `json:"group"`
	Name        string `json:"name"`
	IsWarehouse bool   `json:"is_warehouse"`
}

// Key returns the composite location identifier used everywhere quantities
// are keyed by location.
func (l Location) Key() string {
	return l.Group + ":" + l.Name
}

// Label returns the human-readable "Group: Name" form used in exports.
func (l Location) Label() string {
	return l.Group + ": " + l.Name
}

// fleet is the fixed set of tracked locations. Items default to being
// tracked everywhere; overrides narrow the list per item.
var fleet = []Location{
	{Group: "Marigold", Name: "Mueller"},
	{Group: "Marigold", Name: "South Lamar"},
	{Group: "Perennial Market", Name: "Mueller"},
	{Group: "Depot", Name: "East Side", IsWarehouse: true},
	{Group: "Depot", Name: "Burnet", IsWarehouse: true},
}

// Locations returns the full fleet in declaration order.
func Locations() []Location {
	out := make([]Location, len(fleet))
	copy(out, fleet)
	return out
}

// LocationKeys returns the key of every tracked location.
func LocationKeys() []string {
	keys := make([]string, len(fleet))
	for i, l := range fleet {
		keys[i] = l.Key()
	}
	return keys
}

// ByGroup returns the locations belonging to the given group.
func ByGroup(group string) []Location {
	var out []Location
	for _, l := range fleet {
		if l.Group == group {
			out = append(out, l)
		}
	}
	return out
}

// Warehouses returns the source locations.
func Warehouses() []Location {
	var out []Location
	for _, l := range fleet {
		if l.IsWarehouse {
			out = append(out, l)
		}
	}
	return out
}

// Destinations returns the retail locations.
func Destinations() []Location {
	var out []Location
	for _, l := range fleet {
		if !l.IsWarehouse {
			out = append(out, l)
		}
	}
	return out
}

// FindLocation resolves a location key. ok is false for unknown keys.
func FindLocation(key string) (Location, bool) {
	for _, l := range fleet {
		if l.Key() == key {
			return l, true
		}
	}
	return Location{}, false
}
