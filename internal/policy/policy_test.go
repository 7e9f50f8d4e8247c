package policy

import (
	"net/netip"
	"testing"
)

func TestSubjectAllowed(t *testing.T) {
	open := New(Configuration{})
	if !open.SubjectAllowed("anything") || !open.SubjectAllowed("") {
		t.Error("Expected unrestricted policy to allow every subject")
	}

	p := New(Configuration{AllowedSubject: "CCTV Alarm"})
	if !p.SubjectAllowed("CCTV Alarm") {
		t.Error("Expected configured subject to be allowed")
	}
	for _, s := range []string{"healthcheck", "cctv alarm", "CCTV Alarm ", ""} {
		if p.SubjectAllowed(s) {
			t.Errorf("Expected subject %q to be rejected", s)
		}
	}
}

func TestAddressAllowed(t *testing.T) {
	open := New(Configuration{})
	if !open.AddressAllowed(netip.MustParseAddr("203.0.113.9")) {
		t.Error("Expected unrestricted policy to allow every address")
	}

	p := New(Configuration{AllowedIP: netip.MustParseAddr("192.168.1.20")})

	tests := []struct {
		addr string
		want bool
	}{
		{"192.168.1.20", true},
		{"::ffff:192.168.1.20", true},
		{"192.168.1.21", false},
		{"127.0.0.1", false},
		{"::1", false},
	}
	for _, tt := range tests {
		if got := p.AddressAllowed(netip.MustParseAddr(tt.addr)); got != tt.want {
			t.Errorf("AddressAllowed(%s) = %v, want %v", tt.addr, got, tt.want)
		}
	}
}
