package server

import (
	"net"
	"strconv"
	"strings"
)

// URLs are the addresses a server is reachable at.
type URLs struct {
	Local   string   `json:"local"`
	Network []string `json:"network,omitempty"`
}

var interfaceAddrs = net.InterfaceAddrs

// ResolveURLs builds the URLs of a server bound to host:port and serving
// base. A wildcard host is reported as localhost plus every LAN IPv4
// address.
func ResolveURLs(host string, port int, base string) URLs {
	if base == "" || !strings.HasPrefix(base, "/") {
		base = "/" + base
	}

	if !isWildcard(host) {
		return URLs{Local: httpURL(host, port, base)}
	}

	urls := URLs{Local: httpURL("localhost", port, base)}
	addrs, err := interfaceAddrs()
	if err != nil {
		return urls
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		ip := ipNet.IP.To4()
		if ip == nil || ip.IsLoopback() || ip.IsLinkLocalUnicast() {
			continue
		}
		urls.Network = append(urls.Network, httpURL(ip.String(), port, base))
	}
	return urls
}

func isWildcard(host string) bool {
	switch host {
	case "", "0.0.0.0", "::", "[::]":
		return true
	}
	return false
}

func httpURL(host string, port int, base string) string {
	return "http://" + net.JoinHostPort(host, strconv.Itoa(port)) + base
}
