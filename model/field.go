package model

// FieldDef is a registry entry: a field name the tool knows how to display
// and the width it occupies in fixed-width output.
type FieldDef struct {
	Name  string
	Width int
}

// registry lists every known field in declaration order. The order is the
// column order used by "-o all".
var registry = []FieldDef{
	{"laddr", 16},
	{"lport", 6},
	{"raddr", 16},
	{"rport", 6},
	{"state", 12},
	{"inbytes", 12},
	{"insegs", 10},
	{"outbytes", 12},
	{"outsegs", 10},
	{"retransbytes", 13},
	{"retranssegs", 12},
	{"suna", 11},
	{"unsent", 11},
	{"swnd", 11},
	{"cwnd", 11},
	{"rwnd", 11},
	{"mss", 6},
	{"rtt", 9},
	{"rxqueue", 8},
}

var registryIndex = func() map[string]int {
	m := make(map[string]int, len(registry))
	for i, f := range registry {
		m[f.Name] = i
	}
	return m
}()

// Field names with special meaning to the pipeline.
const (
	FieldLocalAddr  = "laddr"
	FieldLocalPort  = "lport"
	FieldRemoteAddr = "raddr"
	FieldRemotePort = "rport"
	FieldState      = "state"
)

// IdentityFields are the fields whose values identify one connection.
var IdentityFields = [4]string{FieldLocalAddr, FieldLocalPort, FieldRemoteAddr, FieldRemotePort}

// DefaultFields is the output selection used when no -o is given.
var DefaultFields = []string{FieldLocalAddr, FieldLocalPort, FieldRemoteAddr, FieldRemotePort, FieldState}

// Registry returns a copy of the field catalog in declaration order.
func Registry() []FieldDef {
	out := make([]FieldDef, len(registry))
	copy(out, registry)
	return out
}

// LookupField returns the registry entry for name.
func LookupField(name string) (FieldDef, bool) {
	i, ok := registryIndex[name]
	if !ok {
		return FieldDef{}, false
	}
	return registry[i], true
}

// FieldNames returns the registry's field names in declaration order.
func FieldNames() []string {
	names := make([]string, len(registry))
	for i, f := range registry {
		names[i] = f.Name
	}
	return names
}
