package domain

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

var documentationNets = mustCIDRs("192.0.2.0/24", "198.51.100.0/24", "203.0.113.0/24")

// CheckImportURL validates scheme and host of a remote import source.
// Hostnames are only checked literally; resolved addresses are checked at dial time.
func CheckImportURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, fmt.Errorf("scheme %q is not allowed; use http or https", u.Scheme)
	}

	host := u.Hostname()
	if host == "" {
		return nil, fmt.Errorf("URL has no host")
	}

	lower := strings.ToLower(strings.TrimSuffix(host, "."))
	if lower == "localhost" || strings.HasSuffix(lower, ".localhost") {
		return nil, fmt.Errorf("host %q is not allowed", host)
	}

	if ip := net.ParseIP(host); ip != nil && DisallowedIP(ip) {
		return nil, fmt.Errorf("address %s is not allowed", ip)
	}
	return u, nil
}

// DisallowedIP reports loopback, private, link-local, unspecified, multicast,
// broadcast and documentation addresses
func DisallowedIP(ip net.IP) bool {
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() || ip.IsMulticast() {
		return true
	}
	if v4 := ip.To4(); v4 != nil {
		if v4.Equal(net.IPv4bcast) {
			return true
		}
		for _, n := range documentationNets {
			if n.Contains(v4) {
				return true
			}
		}
	}
	return false
}

func mustCIDRs(cidrs ...string) []*net.IPNet {
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, c := range cidrs {
		_, n, err := net.ParseCIDR(c)
		if err != nil {
			panic(err)
		}
		nets = append(nets, n)
	}
	return nets
}
