package district

// Registry is an immutable, ordered catalog of district names. Positions are
// 1-based; position 0 is reserved to mean "no district" and is used by
// district-independent roles.
type Registry struct {
	names []string
}

// NewRegistry builds a registry from an ordered list of names.
func NewRegistry(names []string) Registry {
	copied := make([]string, len(names))
	copy(copied, names)
	return Registry{names: copied}
}

// Default returns the district catalog the portal ships with.
func Default() Registry {
	return NewRegistry([]string{
		"Baksa", "Barpeta", "Bongaigaon", "Cachar", "Charaideo", "Chirang", "Darrang",
		"Dhemaji", "Dhubri", "Dibrugarh", "Dima Hasao", "Goalpara", "Golaghat",
		"Hailakandi", "Jorhat", "Kamrup Metropolitan", "Kamrup", "Karbi Anglong",
		"Karimganj", "Kokrajhar", "Lakhimpur", "Majuli", "Morigaon", "Nagaon",
		"Nalbari", "Sivasagar", "Sonitpur", "South Salmara-Mankachar", "Tinsukia",
		"Udalguri", "West Karbi Anglong", "Biswanath Chariali", "Hojai", "Bajali", "Tamulpur",
	})
}

// IndexOf returns the 1-based position of name, or 0 when absent.
func (r Registry) IndexOf(name string) int {
	for i, n := range r.names {
		if n == name {
			return i + 1
		}
	}
	return 0
}

// NameAt returns the name at the 1-based position. The second return is false
// when the position is outside [1, Len].
func (r Registry) NameAt(position int) (string, bool) {
	if position < 1 || position > len(r.names) {
		return "", false
	}
	return r.names[position-1], true
}

// Len reports the number of catalogued districts.
func (r Registry) Len() int {
	return len(r.names)
}

// Names returns a copy of the ordered catalog.
func (r Registry) Names() []string {
	copied := make([]string, len(r.names))
	copy(copied, r.names)
	return copied
}
