package wifi

import "testing"

func TestMaskHas(t *testing.T) {
	testCases := []struct {
		name   string
		mask   Mask
		iface  Interface
		expect bool
	}{
		{"Station in station-only", StationActive, Station, true},
		{"AP in station-only", StationActive, AccessPoint, false},
		{"AP in ap-only", AccessPointActive, AccessPoint, true},
		{"Station in ap-only", AccessPointActive, Station, false},
		{"Station in combined", StationActive | AccessPointActive, Station, true},
		{"AP in combined", StationActive | AccessPointActive, AccessPoint, true},
		{"Station in empty", 0, Station, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.mask.Has(tc.iface); got != tc.expect {
				t.Errorf("Mask(%b).Has(%v) = %v, want %v", tc.mask, tc.iface, got, tc.expect)
			}
		})
	}
}

func TestFallback(t *testing.T) {
	testCases := []struct {
		name      string
		mask      Mask
		wantIface Interface
		wantOK    bool
	}{
		{"No interface active", 0, 0, false},
		{"Station only", StationActive, Station, true},
		{"AP only", AccessPointActive, AccessPoint, true},
		{"Both active prefers AP", StationActive | AccessPointActive, AccessPoint, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			iface, ok := Fallback(tc.mask)
			if ok != tc.wantOK {
				t.Fatalf("Fallback(%b) ok = %v, want %v", tc.mask, ok, tc.wantOK)
			}
			if ok && iface != tc.wantIface {
				t.Errorf("Fallback(%b) = %v, want %v", tc.mask, iface, tc.wantIface)
			}
		})
	}
}

func TestInterfaceString(t *testing.T) {
	if Station.String() != "station" {
		t.Errorf("Station.String() = %q", Station.String())
	}
	if AccessPoint.String() != "access-point" {
		t.Errorf("AccessPoint.String() = %q", AccessPoint.String())
	}
	if Interface(9).String() != "interface(9)" {
		t.Errorf("Interface(9).String() = %q", Interface(9).String())
	}
}
