package net

import (
	"fmt"
	"net"
	"strings"

	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

// ControlMessage carries the per-packet addressing the engine reads from the socket.
type ControlMessage struct {
	Dst     net.IP // destination address of the packet
	Src     net.IP // source address of the packet
	IfIndex int    // interface index, 0 means any interface
}

// ToIPv4 returns the control message used to answer a packet received with c.
func (c *ControlMessage) ToIPv4() *ipv4.ControlMessage {
	if c == nil {
		return nil
	}
	return &ipv4.ControlMessage{
		Src:     c.Dst,
		IfIndex: c.IfIndex,
	}
}

// ToIPv6 returns the control message used to answer a packet received with c.
func (c *ControlMessage) ToIPv6() *ipv6.ControlMessage {
	if c == nil {
		return nil
	}
	return &ipv6.ControlMessage{
		Src:     c.Dst,
		IfIndex: c.IfIndex,
	}
}

func (c *ControlMessage) String() string {
	if c == nil {
		return ""
	}
	var sb strings.Builder
	if c.Dst != nil {
		sb.WriteString(fmt.Sprintf("Dst: %s, ", c.Dst))
	}
	if c.Src != nil {
		sb.WriteString(fmt.Sprintf("Src: %s, ", c.Src))
	}
	if c.IfIndex >= 1 {
		sb.WriteString(fmt.Sprintf("IfIndex: %d, ", c.IfIndex))
	}
	return sb.String()
}

// GetIfIndex returns the interface index of the network interface. 0 means no interface index specified.
func (c *ControlMessage) GetIfIndex() int {
	if c == nil {
		return 0
	}
	return c.IfIndex
}
