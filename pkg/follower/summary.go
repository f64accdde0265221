package follower

import (
	"errors"
	"fmt"
	"io"

	"github.com/cec-go/cec-go/pkg/cec"
	"github.com/cec-go/cec-go/pkg/version"
)

// WriteSummary prints the adapter snapshot in the startup summary format.
func WriteSummary(w io.Writer, s Snapshot) {
	caps := s.Caps.Capabilities

	fmt.Fprintf(w, "Driver Info:\n")
	fmt.Fprintf(w, "\tDriver Name                : %s\n", s.Caps.DriverName())
	fmt.Fprintf(w, "\tAdapter Name               : %s\n", s.Caps.AdapterName())
	fmt.Fprintf(w, "\tCapabilities               : 0x%08x\n", caps)
	for _, name := range capList(caps) {
		fmt.Fprintf(w, "\t\t%s\n", name)
	}
	fmt.Fprintf(w, "\tDriver version             : %s\n", s.Caps.VersionString())
	fmt.Fprintf(w, "\tAvailable Logical Addresses: %d\n", s.Caps.AvailableLogAddrs)
	if s.HasConnectorInfo {
		fmt.Fprintf(w, "\tConnector Info             : %s\n", s.ConnectorInfo.String())
	}
	fmt.Fprintf(w, "\tPhysical Address           : %s\n", s.PhysAddr)

	la := &s.LogAddrs
	fmt.Fprintf(w, "\tLogical Address Mask       : 0x%04x\n", la.LogAddrMask)
	fmt.Fprintf(w, "\tCEC Version                : %s\n", cec.VersionName(la.CECVersion))
	if la.VendorID != cec.VendorIDNone {
		fmt.Fprintf(w, "\tVendor ID                  : 0x%06x\n", la.VendorID)
	}
	fmt.Fprintf(w, "\tOSD Name                   : '%s'\n", la.OSD())
	fmt.Fprintf(w, "\tLogical Addresses          : %d\n", la.NumLogAddrs)
	for i := 0; i < int(la.NumLogAddrs) && i < cec.MaxLogAddrs; i++ {
		addr := cec.LogicalAddress(la.LogAddr[i])
		fmt.Fprintf(w, "\n\t  Logical Address          : %d (%s)\n", addr, addr)
		fmt.Fprintf(w, "\t    Primary Device Type    : %s\n", cec.PrimaryDeviceTypeName(la.PrimaryDeviceType[i]))
	}

	if version.CECVersion(la.CECVersion).HasFeatures() {
		writeFeatures(w, s)
	}
}

func writeFeatures(w io.Writer, s Snapshot) {
	f := s.Features
	flags := []struct {
		set  bool
		name string
	}{
		{f.SourceHasARCRx, "Source Has ARC Rx"},
		{f.SinkHasARCTx, "Sink Has ARC Tx"},
		{f.HasSetAudioRate, "Has Set Audio Rate"},
		{f.HasDeckControl, "Has Deck Control"},
		{f.HasRecordTVScreen, "Has Record TV Screen"},
		{f.HasSetOSDString, "Has Set OSD String"},
		{f.HasSetAudioVolumeLevel, "Has Set Audio Volume Level"},
	}
	fmt.Fprintf(w, "\tDevice Features            :\n")
	none := true
	for _, fl := range flags {
		if fl.set {
			fmt.Fprintf(w, "\t\t%s\n", fl.name)
			none = false
		}
	}
	if none {
		fmt.Fprintf(w, "\t\tNone\n")
	}
}

func capList(caps uint32) []string {
	var names []string
	for i := 0; i < 32; i++ {
		bit := uint32(1) << i
		if caps&bit == 0 {
			continue
		}
		name := cec.CapsString(bit)
		if name == "" {
			name = fmt.Sprintf("Unknown (0x%08x)", bit)
		}
		names = append(names, name)
	}
	return names
}

// AddressingFailures renders CheckAddressing's error as FAIL lines.
func AddressingFailures(err error) []string {
	var lines []string
	for _, e := range []error{ErrMissingPhysAddr, ErrMissingLogAddr} {
		if errors.Is(err, e) {
			lines = append(lines, "FAIL: "+e.Error())
		}
	}
	return lines
}
