package gudpd

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
)

// isNetworkNameChar limits network file names to characters that can
// appear in an IP address or prefix.
func isNetworkNameChar(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F') ||
		r == '.' || r == ':'
}

// hasNetworkFile reports whether a clientok file for the given network
// name exists in the config directory.
func (config *Config) hasNetworkFile(network string) bool {
	if network == "" {
		return false
	}
	for _, r := range network {
		if !isNetworkNameChar(r) {
			return false
		}
	}

	networkFile := filepath.Join(config.ConfigDir, network)
	if !insideConfigDir(networkFile, config.ConfigDir) {
		return false
	}

	_, err := os.Stat(networkFile)
	return err == nil
}

// ClientOK reports whether a client IP may use the server, following
// DJB's clientok pattern: access is granted when a file named after the
// client's address, or one of its /8, /16 or /24 prefixes, exists in the
// config directory. A file named "0" allows everyone, and so does an
// empty ConfigDir.
func (config *Config) ClientOK(ip net.IP) bool {
	if config.ConfigDir == "" {
		return true
	}

	if config.hasNetworkFile("0") {
		return true
	}

	if ip4 := ip.To4(); ip4 != nil {
		prefix := ""
		for _, octet := range ip4[:3] {
			if prefix != "" {
				prefix += "."
			}
			prefix += strconv.Itoa(int(octet))
			if config.hasNetworkFile(prefix) {
				return true
			}
		}
	}

	return config.hasNetworkFile(ip.String())
}
