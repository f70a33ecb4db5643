package format

// PropFormat classifies how a property value is encoded.
// See Devicetree Specification v0.3 sections 2.2.4, 2.3 and 2.4.
type PropFormat uint8

const (
	FmtUnknown PropFormat = iota
	FmtEmpty
	FmtU32
	FmtU64
	FmtString
	FmtPhandle
	FmtStringList
	FmtReg
	FmtRanges
)

// String implements fmt.Stringer.
func (f PropFormat) String() string {
	switch f {
	case FmtEmpty:
		return "empty"
	case FmtU32:
		return "u32"
	case FmtU64:
		return "u64"
	case FmtString:
		return "string"
	case FmtPhandle:
		return "phandle"
	case FmtStringList:
		return "stringlist"
	case FmtReg:
		return "reg"
	case FmtRanges:
		return "ranges"
	default:
		return "unknown"
	}
}

var propFormats = map[string]PropFormat{
	"compatible":           FmtStringList,
	"model":                FmtString,
	"phandle":              FmtU32,
	"status":               FmtString,
	"#address-cells":       FmtU32,
	"#size-cells":          FmtU32,
	"#interrupt-cells":     FmtU32,
	"reg":                  FmtReg,
	"virtual-reg":          FmtU32,
	"ranges":               FmtRanges,
	"dma-ranges":           FmtRanges,
	"name":                 FmtString,
	"device_type":          FmtString,
	"interrupts":           FmtU32,
	"interrupt-parent":     FmtPhandle,
	"interrupt-controller": FmtEmpty,
	"value":                FmtU32,
	"offset":               FmtU32,
	"regmap":               FmtPhandle,
	"bootargs":             FmtString,
	"stdout-path":          FmtString,
	"clock-frequency":      FmtU32,
	"timebase-frequency":   FmtU32,
}

// FormatOf returns the value format of a well-known property name, or
// FmtUnknown.
func FormatOf(name string) PropFormat {
	return propFormats[name]
}
