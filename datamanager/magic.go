package datamanager

// magicNumber is the marker every embedded dataset starts with. It is a
// string variable so release builds can replace it with -ldflags -X.
var magicNumber = "\xEFMOZC\r\n"

// MagicNumber returns the build-configured dataset magic marker.
func MagicNumber() []byte {
	return []byte(magicNumber)
}
