package enums

import "fmt"

// LineType distinguishes cart lines that reference a product from those
// that reference a bundle.
type LineType string

const (
	LineTypeProduct LineType = "product"
	LineTypeBundle  LineType = "bundle"
)

var validLineTypes = []LineType{
	LineTypeProduct,
	LineTypeBundle,
}

// String implements fmt.Stringer.
func (t LineType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known LineType.
func (t LineType) IsValid() bool {
	for _, candidate := range validLineTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseLineType converts raw input into a LineType.
func ParseLineType(value string) (LineType, error) {
	for _, candidate := range validLineTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid line type %q", value)
}
