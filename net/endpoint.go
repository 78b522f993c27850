package net

import (
	"fmt"
	"net"
)

// Endpoint identifies the network side of a session: the interface the packets arrive
// on and the local/remote address pair.
type Endpoint struct {
	IfIndex int
	Local   net.Addr
	Remote  net.Addr
}

// NewUDPEndpoint builds the endpoint of a datagram received from remote. The local
// address is taken from the destination of the control message when present,
// otherwise local is used.
func NewUDPEndpoint(local *net.UDPAddr, remote net.Addr, cm *ControlMessage) Endpoint {
	ep := Endpoint{
		IfIndex: cm.GetIfIndex(),
		Local:   local,
		Remote:  remote,
	}
	if cm != nil && cm.Dst != nil {
		l := &net.UDPAddr{IP: cm.Dst}
		if local != nil {
			l.Port = local.Port
			l.Zone = local.Zone
		}
		ep.Local = l
	}
	return ep
}

// Equal reports whether both endpoints have the same interface index and address pair.
func (e Endpoint) Equal(o Endpoint) bool {
	return e.IfIndex == o.IfIndex && addrEqual(e.Local, o.Local) && addrEqual(e.Remote, o.Remote)
}

func (e Endpoint) String() string {
	return fmt.Sprintf("IfIndex: %v, Local: %v, Remote: %v", e.IfIndex, e.Local, e.Remote)
}

func addrEqual(a, b net.Addr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Network() == b.Network() && a.String() == b.String()
}
