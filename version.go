package godeck

import "fmt"

// Version information for the GoDeck library.
const (
	VersionMajor = 0
	VersionMinor = 4
	VersionPatch = 0
)

// Version is the full version string written into docProps/app.xml.
var Version = fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
