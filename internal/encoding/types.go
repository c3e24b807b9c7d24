package encoding

// Markers of the BJData wire format.
// Every value starts with one of them. Containers may be followed
// by an optional element type and an optional count.
const (
	NullMarker  byte = 'Z'
	NoopMarker  byte = 'N'
	TrueMarker  byte = 'T'
	FalseMarker byte = 'F'

	// Integers, from the smallest to the largest
	Int8Marker   byte = 'i'
	Uint8Marker  byte = 'U'
	Int16Marker  byte = 'I'
	Uint16Marker byte = 'u'
	Int32Marker  byte = 'l'
	Uint32Marker byte = 'm'
	Int64Marker  byte = 'L'
	Uint64Marker byte = 'M'

	// Floating point numbers. Only doubles are ever written.
	Float16Marker byte = 'h'
	Float32Marker byte = 'd'
	Float64Marker byte = 'D'

	// Numbers encoded as text
	HighPrecisionMarker byte = 'H'

	CharMarker   byte = 'C'
	StringMarker byte = 'S'

	ArrayStart  byte = '['
	ArrayEnd    byte = ']'
	ObjectStart byte = '{'
	ObjectEnd   byte = '}'

	// Container optimizations
	ContainerTypeMarker  byte = '$'
	ContainerCountMarker byte = '#'
)

// widths of the fixed size payloads, indexed by marker.
var widths = [256]int8{
	Int8Marker:    1,
	Uint8Marker:   1,
	CharMarker:    1,
	Int16Marker:   2,
	Uint16Marker:  2,
	Float16Marker: 2,
	Int32Marker:   4,
	Uint32Marker:  4,
	Float32Marker: 4,
	Int64Marker:   8,
	Uint64Marker:  8,
	Float64Marker: 8,
}

// Width returns the size in bytes of the payload following a fixed size marker,
// or 0 for the other markers.
func Width(marker byte) int {
	return int(widths[marker])
}

// IsSignedMarker reports whether marker introduces a signed integer.
func IsSignedMarker(marker byte) bool {
	switch marker {
	case Int8Marker, Int16Marker, Int32Marker, Int64Marker:
		return true
	}
	return false
}

// IsSizeMarker reports whether marker can introduce a length or a count.
// Plain UBJSON only knows about U, i, I, l and L.
func IsSizeMarker(marker byte, ubjson bool) bool {
	switch marker {
	case Uint8Marker, Int8Marker, Int16Marker, Int32Marker, Int64Marker:
		return true
	case Uint16Marker, Uint32Marker, Uint64Marker:
		return !ubjson
	}
	return false
}

// IsBJDataOnly reports whether marker is a BJData extension unknown to UBJSON.
func IsBJDataOnly(marker byte) bool {
	switch marker {
	case Uint16Marker, Uint32Marker, Uint64Marker, Float16Marker:
		return true
	}
	return false
}

// IsOptimizableType reports whether marker may follow a '$' in a BJData container.
// Containers, strings, high precision numbers and markers without payload
// cannot be used as an element type.
func IsOptimizableType(marker byte) bool {
	switch marker {
	case ArrayStart, ObjectStart, StringMarker, HighPrecisionMarker,
		TrueMarker, FalseMarker, NoopMarker, NullMarker:
		return false
	}
	return true
}

// SizeMarkers returns the list of size markers, as printed in error messages.
func SizeMarkers(ubjson bool) string {
	if ubjson {
		return "U, i, I, l, L"
	}
	return "U, i, u, I, m, l, M, L"
}
