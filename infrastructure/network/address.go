package network

import (
	"net"
	"strings"

	"photo-frame/infrastructure/logger"
)

const (
	LoopbackAddress = "127.0.0.1"
	loopbackPrefix  = "127."
)

// PrimaryAddress returns the first candidate outside the loopback range, or the loopback address
func PrimaryAddress(candidates []string) string {
	for _, candidate := range candidates {
		if candidate != "" && !strings.HasPrefix(candidate, loopbackPrefix) {
			return candidate
		}
	}
	return LoopbackAddress
}

// HostAddresses lists the IPv4 addresses of the host's interfaces that are up, in interface order
func HostAddresses() ([]string, error) {
	interfaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	var addresses []string
	for _, iface := range interfaces {
		if iface.Flags&net.FlagUp == 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ip4 := ipNet.IP.To4(); ip4 != nil {
				addresses = append(addresses, ip4.String())
			}
		}
	}
	return addresses, nil
}

// ResolveHostIP is the address the configuration page is advertised on
func ResolveHostIP() string {
	addresses, err := HostAddresses()
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to list host addresses")
	}
	return PrimaryAddress(addresses)
}
