// Package version provides build identifiers and CEC protocol version
// helpers.
package version

import (
	"fmt"

	"github.com/cec-go/cec-go/pkg/cec"
)

// Build identifiers, set with -ldflags "-X".
var (
	Version     = "1.0.0"
	CommitCount = ""
	GitSHA      = "unknown"
)

// String returns "<name> <version>[-<commit count>]".
func String(name string) string {
	if CommitCount != "" {
		return fmt.Sprintf("%s %s-%s", name, Version, CommitCount)
	}
	return fmt.Sprintf("%s %s", name, Version)
}

// SHA returns the "<name> SHA: <sha>" line.
func SHA(name string) string {
	return fmt.Sprintf("%s SHA: %s", name, GitSHA)
}

// CECVersion is a CEC protocol version as reported in cec_log_addrs.
type CECVersion uint8

// Supported protocol versions.
const (
	CEC1_3A CECVersion = CECVersion(cec.Version1_3A)
	CEC1_4  CECVersion = CECVersion(cec.Version1_4)
	CEC2_0  CECVersion = CECVersion(cec.Version2_0)
)

// String returns the version as printed in diagnostics.
func (v CECVersion) String() string {
	return cec.VersionName(uint8(v))
}

// AtLeast reports whether v is other or newer.
func (v CECVersion) AtLeast(other CECVersion) bool {
	return v >= other
}

// HasFeatures reports whether the version carries the device features
// operand.
func (v CECVersion) HasFeatures() bool {
	return v.AtLeast(CEC2_0)
}
