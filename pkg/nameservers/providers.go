package nameservers

import (
	"fmt"
	"net"
	"strings"
)

// Nameserver is one public recursive DNS server.
type Nameserver struct {
	Name     string `json:"name"`
	IP       net.IP `json:"ip"`
	Port     int    `json:"port"`
	Provider string `json:"provider"`
}

// Addr returns the server's dial address.
func (n Nameserver) Addr() string {
	return net.JoinHostPort(n.IP.String(), fmt.Sprintf("%d", n.Port))
}

// Providers maps provider keys to their well-known public nameservers.
var Providers = map[string][]Nameserver{
	"google": {
		{Name: "google-dns1", IP: net.ParseIP("8.8.8.8"), Port: 53, Provider: "Google"},
		{Name: "google-dns2", IP: net.ParseIP("8.8.4.4"), Port: 53, Provider: "Google"},
	},
	"cloudflare": {
		{Name: "cloudflare-dns1", IP: net.ParseIP("1.1.1.1"), Port: 53, Provider: "Cloudflare"},
		{Name: "cloudflare-dns2", IP: net.ParseIP("1.0.0.1"), Port: 53, Provider: "Cloudflare"},
	},
	"quad9": {
		{Name: "quad9-dns1", IP: net.ParseIP("9.9.9.9"), Port: 53, Provider: "Quad9"},
		{Name: "quad9-dns2", IP: net.ParseIP("149.112.112.112"), Port: 53, Provider: "Quad9"},
	},
	"opendns": {
		{Name: "opendns1", IP: net.ParseIP("208.67.222.222"), Port: 53, Provider: "OpenDNS"},
		{Name: "opendns2", IP: net.ParseIP("208.67.220.220"), Port: 53, Provider: "OpenDNS"},
	},
}

// Default returns a reliable default set, one server per major provider.
func Default() []Nameserver {
	return []Nameserver{
		Providers["google"][0],
		Providers["cloudflare"][0],
		Providers["quad9"][0],
	}
}

// Resolve turns a resolver flag value into a dial address. It accepts a
// provider key ("google"), a bare IP, or ip:port; the empty string selects
// the first default server.
func Resolve(value string) (string, error) {
	if value == "" {
		return Default()[0].Addr(), nil
	}

	if servers, ok := Providers[strings.ToLower(value)]; ok {
		return servers[0].Addr(), nil
	}

	host, port := value, "53"
	if h, p, err := net.SplitHostPort(value); err == nil {
		host, port = h, p
	}
	if net.ParseIP(host) == nil {
		return "", fmt.Errorf("unknown resolver %q: expected an IP address or one of the known providers", value)
	}
	return net.JoinHostPort(host, port), nil
}
