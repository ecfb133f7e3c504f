package swerve

// Header is a single HTTP header line. Headers are kept as an ordered
// slice rather than a map: wire order is preserved and a key may
// legitimately appear more than once.
type Header struct {
	Key   string
	Value string
}
