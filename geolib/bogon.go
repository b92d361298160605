package geolib

import (
	"net"
	"strings"

	"github.com/kentik/patricia"
	"github.com/kentik/patricia/uint8_tree"
)

// Bogon networks are not valid on the public internet: loopback,
// private, link-local, documentation, multicast and friends. The v6
// list also carries 6to4/Teredo-embedded copies of the v4 ranges.
var bogonV4Networks = []string{
	"0.0.0.0/8",
	"10.0.0.0/8",
	"100.64.0.0/10",
	"127.0.0.0/8",
	"169.254.0.0/16",
	"172.16.0.0/12",
	"192.0.0.0/24",
	"192.0.2.0/24",
	"192.168.0.0/16",
	"198.18.0.0/15",
	"198.51.100.0/24",
	"203.0.113.0/24",
	"224.0.0.0/4",
	"240.0.0.0/4",
	"255.255.255.255/32",
}

var bogonV6Networks = []string{
	"::/128",
	"::1/128",
	"::ffff:0:0/96",
	"::/96",
	"100::/64",
	"2001:10::/28",
	"2001:db8::/32",
	"fc00::/7",
	"fe80::/10",
	"fec0::/10",
	"ff00::/8",
	"2002::/24",
	"2002:a00::/24",
	"2002:7f00::/24",
	"2002:a9fe::/32",
	"2002:ac10::/28",
	"2002:c000::/40",
	"2002:c000:200::/40",
	"2002:c0a8::/32",
	"2002:c612::/31",
	"2002:c633:6400::/40",
	"2002:cb00:7100::/40",
	"2002:e000::/20",
	"2002:f000::/20",
	"2002:ffff:ffff::/48",
	"2001::/40",
	"2001:0:a00::/40",
	"2001:0:7f00::/40",
	"2001:0:a9fe::/48",
	"2001:0:ac10::/44",
	"2001:0:c000::/56",
	"2001:0:c000:200::/56",
	"2001:0:c0a8::/48",
	"2001:0:c612::/47",
	"2001:0:c633:6400::/56",
	"2001:0:cb00:7100::/56",
	"2001:0:e000::/36",
	"2001:0:f000::/36",
	"2001:0:ffff:ffff::/64",
}

var (
	bogonV4Tree = uint8_tree.NewTreeV4()
	bogonV6Tree = uint8_tree.NewTreeV6()
)

func init() {
	for _, v := range bogonV4Networks {
		_, ipnet, err := net.ParseCIDR(v)
		if err != nil {
			panic(err)
		}

		length, _ := ipnet.Mask.Size()

		bogonV4Tree.Add(
			patricia.NewIPv4AddressFromBytes(ipnet.IP.To4(), uint(length)),
			1,
			nil)
	}

	for _, v := range bogonV6Networks {
		_, ipnet, err := net.ParseCIDR(v)
		if err != nil {
			panic(err)
		}

		length, _ := ipnet.Mask.Size()

		bogonV6Tree.Add(
			patricia.NewIPv6Address(ipnet.IP.To16(), uint(length)),
			1,
			nil)
	}
}

// IsBogon tells if a given textual IP address belongs to a bogon
// network. A string which is not an IP address at all is never a bogon,
// so false negatives are possible on malformed input, false positives
// are not.
//
// An address written in IPv6 notation is matched against the v6 ranges
// even if it embeds an IPv4 one (::ffff:10.0.0.1 and alike).
func IsBogon(addr string) bool {
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}

	if strings.ContainsRune(addr, ':') {
		return isBogonV6(ip)
	}

	return isBogonV4(ip)
}

// IsBogonIP is IsBogon for an already parsed address. The address
// family is detected from the value: 4-in-6 mapped addresses are
// treated as IPv4 here because net.IP keeps no notation.
func IsBogonIP(ip net.IP) bool {
	if ip == nil {
		return false
	}

	if ip.To4() != nil {
		return isBogonV4(ip)
	}

	return isBogonV6(ip)
}

func isBogonV4(ip net.IP) bool {
	v4 := ip.To4()
	if v4 == nil {
		return false
	}

	found, _ := bogonV4Tree.FindDeepestTag(
		patricia.NewIPv4AddressFromBytes(v4, 32))

	return found
}

func isBogonV6(ip net.IP) bool {
	found, _ := bogonV6Tree.FindDeepestTag(
		patricia.NewIPv6Address(ip.To16(), 128))

	return found
}
