package format

import "strconv"

type (
	ShapeKind       uint8
	SectionID       uint16
	CompressionType uint8
)

const (
	ShapeRaw               ShapeKind = 0x1 // ShapeRaw is an opaque byte range.
	ShapeStruct            ShapeKind = 0x2 // ShapeStruct is an array of fixed-stride records.
	ShapeBitMatrix         ShapeKind = 0x3 // ShapeBitMatrix is a remapped, bit-packed boundary matrix.
	ShapeStringArray       ShapeKind = 0x4 // ShapeStringArray is an offset-indexed array of byte strings.
	ShapeSortedStringArray ShapeKind = 0x5 // ShapeSortedStringArray is a string array sorted by record key.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// Section identifiers of format version 1. The numeric values are stored in
// section descriptors and must never be reused for a different table.
const (
	SectionPosGroup                   SectionID = 1
	SectionConnector                  SectionID = 2
	SectionSystemDictionary           SectionID = 3
	SectionSegmenterMatrix            SectionID = 4
	SectionSegmenterBoundary          SectionID = 5
	SectionSuffixKeys                 SectionID = 6
	SectionSuffixValues               SectionID = 7
	SectionSuffixTokens               SectionID = 8
	SectionReadingCorrections         SectionID = 9
	SectionCollocation                SectionID = 10
	SectionCollocationSuppression     SectionID = 11
	SectionSuggestionFilter           SectionID = 12
	SectionSymbolRewriter             SectionID = 13
	SectionUsageBaseConjugationSuffix SectionID = 14
	SectionUsageConjugationSuffix     SectionID = 15
	SectionUsageConjugationIndex      SectionID = 16
	SectionUsageItems                 SectionID = 17
	SectionUsageStrings               SectionID = 18
	SectionCounterSuffix              SectionID = 19
)

var sectionNames = map[SectionID]string{
	SectionPosGroup:                   "PosGroup",
	SectionConnector:                  "Connector",
	SectionSystemDictionary:           "SystemDictionary",
	SectionSegmenterMatrix:            "SegmenterMatrix",
	SectionSegmenterBoundary:          "SegmenterBoundary",
	SectionSuffixKeys:                 "SuffixKeys",
	SectionSuffixValues:               "SuffixValues",
	SectionSuffixTokens:               "SuffixTokens",
	SectionReadingCorrections:         "ReadingCorrections",
	SectionCollocation:                "Collocation",
	SectionCollocationSuppression:     "CollocationSuppression",
	SectionSuggestionFilter:           "SuggestionFilter",
	SectionSymbolRewriter:             "SymbolRewriter",
	SectionUsageBaseConjugationSuffix: "UsageBaseConjugationSuffix",
	SectionUsageConjugationSuffix:     "UsageConjugationSuffix",
	SectionUsageConjugationIndex:      "UsageConjugationIndex",
	SectionUsageItems:                 "UsageItems",
	SectionUsageStrings:               "UsageStrings",
	SectionCounterSuffix:              "CounterSuffix",
}

func (s ShapeKind) String() string {
	switch s {
	case ShapeRaw:
		return "Raw"
	case ShapeStruct:
		return "Struct"
	case ShapeBitMatrix:
		return "BitMatrix"
	case ShapeStringArray:
		return "StringArray"
	case ShapeSortedStringArray:
		return "SortedStringArray"
	default:
		return "Unknown"
	}
}

// IsStringArray reports whether the shape stores an offset-indexed string array.
func (s ShapeKind) IsStringArray() bool {
	return s == ShapeStringArray || s == ShapeSortedStringArray
}

func (id SectionID) String() string {
	if name, ok := sectionNames[id]; ok {
		return name
	}

	return "Section(" + strconv.Itoa(int(id)) + ")"
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType maps a lower-case codec name to its CompressionType.
func ParseCompressionType(name string) (CompressionType, bool) {
	switch name {
	case "none", "":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
