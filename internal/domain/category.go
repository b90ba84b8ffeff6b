package domain

import "fmt"

// Category classifies a single base grid cell while it is being filled.
type Category int8

const (
	// Unknown marks a cell no sample or fill pass has reached yet.
	Unknown Category = iota
	Land
	// Sea is a confirmed sea cell. It is kept distinct from Unknown until
	// Fill collapses the grid into a Mask.
	Sea
)

func (c Category) String() string {
	switch c {
	case Unknown:
		return "unknown"
	case Land:
		return "land"
	case Sea:
		return "sea"
	default:
		return fmt.Sprintf("category(%d)", int8(c))
	}
}

// Known reports whether c carries evidence (Land or Sea).
func (c Category) Known() bool {
	return c == Land || c == Sea
}

// MarshalText encodes c by name so fixtures read as "land" and "sea".
func (c Category) MarshalText() ([]byte, error) {
	switch c {
	case Unknown, Land, Sea:
		return []byte(c.String()), nil
	}
	return nil, fmt.Errorf("marshal category: unsupported value %d", int8(c))
}

func (c *Category) UnmarshalText(b []byte) error {
	switch string(b) {
	case "unknown":
		*c = Unknown
	case "land":
		*c = Land
	case "sea":
		*c = Sea
	default:
		return fmt.Errorf("unmarshal category: unknown name %q", b)
	}
	return nil
}
