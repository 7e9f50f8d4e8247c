package policy

import "net/netip"

// Policy gates which connections and messages are treated as genuine alarms.
// A zero value accepts everything.
type Policy struct {
	subject    string
	hasSubject bool
	ip         netip.Addr
}

type Configuration struct {
	// AllowedSubject is the exact subject alarm mails carry. Empty disables the check.
	AllowedSubject string
	// AllowedIP is the only peer address allowed to connect. Invalid disables the check.
	AllowedIP netip.Addr
}

func New(config Configuration) *Policy {
	return &Policy{
		subject:    config.AllowedSubject,
		hasSubject: config.AllowedSubject != "",
		ip:         config.AllowedIP.Unmap(),
	}
}

func (p *Policy) SubjectAllowed(subject string) bool {
	if !p.hasSubject {
		return true
	}
	return subject == p.subject
}

func (p *Policy) AddressAllowed(addr netip.Addr) bool {
	if !p.ip.IsValid() {
		return true
	}
	return addr.Unmap() == p.ip
}
