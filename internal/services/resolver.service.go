package services

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/net"
)

const (
	defaultRouteTable = "/proc/net/route"
	rtfUp             = 0x1
)

// InterfaceResolver finds the interface that currently carries the default route.
// Returning false is a normal outcome (network down, waking from sleep).
type InterfaceResolver interface {
	Resolve(ctx context.Context) (string, bool)
}

// RouteResolver reads the kernel IPv4 routing table. Hosts without one
// fall back to the first up, non-loopback interface with an IPv4 address.
type RouteResolver struct {
	RouteTable string
	Interfaces func(ctx context.Context) (net.InterfaceStatList, error)
}

// NewRouteResolver creates a resolver backed by /proc/net/route and gopsutil
func NewRouteResolver() *RouteResolver {
	return &RouteResolver{
		RouteTable: defaultRouteTable,
		Interfaces: net.InterfacesWithContext,
	}
}

// Resolve returns the primary interface name
func (r *RouteResolver) Resolve(ctx context.Context) (string, bool) {
	data, err := os.ReadFile(r.RouteTable)
	if err == nil {
		return defaultRouteInterface(string(data))
	}
	if !errors.Is(err, fs.ErrNotExist) || r.Interfaces == nil {
		return "", false
	}
	return r.firstActiveInterface(ctx)
}

// defaultRouteInterface picks the up default route with the lowest metric.
// Columns: Iface Destination Gateway Flags RefCnt Use Metric Mask ...
func defaultRouteInterface(table string) (string, bool) {
	best := ""
	bestMetric := -1

	lines := strings.Split(table, "\n")
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) < 8 {
			continue
		}
		if fields[1] != "00000000" || fields[7] != "00000000" {
			continue
		}

		flags, err := strconv.ParseUint(fields[3], 16, 32)
		if err != nil || flags&rtfUp == 0 {
			continue
		}

		metric, err := strconv.Atoi(fields[6])
		if err != nil {
			continue
		}

		if bestMetric < 0 || metric < bestMetric {
			best = fields[0]
			bestMetric = metric
		}
	}

	return best, best != ""
}

func (r *RouteResolver) firstActiveInterface(ctx context.Context) (string, bool) {
	ifaces, err := r.Interfaces(ctx)
	if err != nil {
		return "", false
	}

	for _, iface := range ifaces {
		if !hasFlag(iface.Flags, "up") || hasFlag(iface.Flags, "loopback") {
			continue
		}
		for _, addr := range iface.Addrs {
			if isIPv4(addr.Addr) {
				return iface.Name, true
			}
		}
	}
	return "", false
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if f == want {
			return true
		}
	}
	return false
}

// isIPv4 accepts "192.168.1.2/24" style addresses
func isIPv4(addr string) bool {
	host, _, _ := strings.Cut(addr, "/")
	return strings.Count(host, ".") == 3 && !strings.Contains(host, ":")
}
