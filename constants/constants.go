package constants

import "os"

func GetOutDir() string {
	path := os.Getenv("ALIS_OUT_DIR")
	if path != "" {
		return path
	}
	return "./out"
}

// GetPreamblePath returns the header/settings rows file prepended to every
// decoded solo. Empty means the embedded default preamble.
func GetPreamblePath() string {
	return os.Getenv("ALIS_PREAMBLE_PATH")
}

func GetCatalogEndpoint() string {
	return os.Getenv("ALIS_CATALOG_ENDPOINT")
}

func GetCatalogTable() string {
	table := os.Getenv("ALIS_CATALOG_TABLE")
	if table != "" {
		return table
	}
	return "alis-solos"
}

func GetCatalogRegion() string {
	region := os.Getenv("ALIS_CATALOG_REGION")
	if region != "" {
		return region
	}
	return "localhost"
}

// Wire format. Changing any of these invalidates existing corpora and
// trained nets.
const (
	BarLength   = 3840
	PitchOffset = 26
	VelocityOn  = 95
	VelocityOff = 0

	NumeralDigits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	FieldSeparator = "!"
	NoteSeparator  = " "
	SoloBoundary   = "###"
	// the prime every sample starts with
	LeadingMarker = "### "
)

// The melody line always lives on the second track (track 0 is the file
// header in row numbering), channel 0.
const (
	MelodyTrack   = 2
	MelodyChannel = 0
)

const MaxPitch = 127

// GetConfigPath overrides the location of config.json when set.
func GetConfigPath() string {
	return os.Getenv("ALIS_CONFIG")
}
