// Package properties implements the server.properties schema (§6): a
// fixed set of 58 named options loaded from (and normalized back to) a
// line-oriented key=value file, tolerating a missing file by falling back
// entirely to vanilla defaults.
package properties

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	goprops "github.com/magiconair/properties"
)

// kind identifies how a field's string value is interpreted.
type kind int

const (
	kindBool kind = iota
	kindUint
	kindString
)

// field describes one recognized server.properties key: its declared kind
// and default value (as the string that would appear on the right of the
// `=` in a freshly-defaulted file).
type field struct {
	key    string
	kind   kind
	defStr string
}

// orderedFields lists every recognized key in the order it is written
// back out, and is also the whitelist: keys not in this list are dropped
// on save, per spec.
var orderedFields = []field{
	{"enable-jmx-monitoring", kindBool, "false"},
	{"rcon.port", kindUint, "25575"},
	{"level-seed", kindString, ""},
	{"gamemode", kindString, "survival"},
	{"enable-command-block", kindBool, "false"},
	{"enable-query", kindBool, "false"},
	{"generator-settings", kindString, "{}"},
	{"enforce-secure-profile", kindBool, "true"},
	{"level-name", kindString, "world"},
	{"motd", kindString, "A Minecraft Server"},
	{"query.port", kindUint, "25565"},
	{"pvp", kindBool, "true"},
	{"generate-structures", kindBool, "true"},
	{"max-chained-neighbor-updates", kindUint, "1000000"},
	{"difficulty", kindString, "easy"},
	{"network-compression-threshold", kindUint, "256"},
	{"max-tick-time", kindUint, "60000"},
	{"require-resource-pack", kindBool, "false"},
	{"use-native-transport", kindBool, "true"},
	{"max-players", kindUint, "20"},
	{"online-mode", kindBool, "true"},
	{"enable-status", kindBool, "true"},
	{"allow-flight", kindBool, "false"},
	{"initial-disabled-packs", kindString, ""},
	{"broadcast-rcon-to-ops", kindBool, "true"},
	{"view-distance", kindUint, "10"},
	{"server-ip", kindString, ""},
	{"resource-pack-prompt", kindString, ""},
	{"allow-nether", kindBool, "true"},
	{"server-port", kindUint, "25565"},
	{"enable-rcon", kindBool, "false"},
	{"sync-chunk-writes", kindBool, "true"},
	{"op-permission-level", kindUint, "4"},
	{"prevent-proxy-connections", kindBool, "false"},
	{"hide-online-players", kindBool, "false"},
	{"resource-pack", kindString, ""},
	{"entity-broadcast-range-percentage", kindUint, "100"},
	{"simulation-distance", kindUint, "10"},
	{"rcon.password", kindString, ""},
	{"player-idle-timeout", kindUint, "0"},
	{"debug", kindBool, "false"},
	{"force-gamemode", kindBool, "false"},
	{"rate-limit", kindUint, "0"},
	{"hardcore", kindBool, "false"},
	{"white-list", kindBool, "false"},
	{"broadcast-console-to-ops", kindBool, "true"},
	{"spawn-npcs", kindBool, "true"},
	{"spawn-animals", kindBool, "true"},
	{"log-ips", kindBool, "true"},
	{"function-permission-level", kindUint, "2"},
	{"initial-enabled-packs", kindString, "vanilla"},
	{"level-type", kindString, "minecraft:normal"},
	{"text-filtering-config", kindString, ""},
	{"spawn-monsters", kindBool, "true"},
	{"enforce-whitelist", kindBool, "false"},
	{"spawn-protection", kindUint, "16"},
	{"resource-pack-sha1", kindString, ""},
	{"max-world-size", kindUint, "29999984"},
}

// HeaderLine is the first line the core writes back on save.
const HeaderLine = "#Minecraft server properties"

// Properties is the typed, defaulted view of server.properties. Bool
// fields live in Bools, unsigned-integer fields in Uints, and UTF-8 string
// fields in Strings, all keyed by the property's file key.
type Properties struct {
	Bools   map[string]bool
	Uints   map[string]uint64
	Strings map[string]string
}

// defaults returns a Properties populated entirely from orderedFields'
// default values.
func defaults() *Properties {
	p := &Properties{
		Bools:   make(map[string]bool),
		Uints:   make(map[string]uint64),
		Strings: make(map[string]string),
	}
	for _, f := range orderedFields {
		mustSetDefault(p, f)
	}
	return p
}

func mustSetDefault(p *Properties, f field) {
	switch f.kind {
	case kindBool:
		p.Bools[f.key] = f.defStr == "true"
	case kindUint:
		v, err := strconv.ParseUint(f.defStr, 0, 64)
		if err != nil {
			panic(fmt.Sprintf("properties: bad built-in default for %s: %v", f.key, err))
		}
		p.Uints[f.key] = v
	case kindString:
		p.Strings[f.key] = f.defStr
	}
}

// Load reads path as a server.properties file, tolerating a missing file
// by returning all-defaults. Each recognized key is parsed according to
// its kind (base-0 integers, strict true/false booleans); unrecognized
// keys are ignored.
func Load(path string) (*Properties, error) {
	p := defaults()

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("properties: reading %s: %w", path, err)
	}

	parsed, err := goprops.LoadString(string(raw))
	if err != nil {
		return nil, fmt.Errorf("properties: parsing %s: %w", path, err)
	}

	for _, f := range orderedFields {
		v, ok := parsed.Get(f.key)
		if !ok {
			continue
		}
		v = strings.TrimSpace(v)
		switch f.kind {
		case kindBool:
			b, err := parseStrictBool(v)
			if err != nil {
				return nil, fmt.Errorf("properties: key %s: %w", f.key, err)
			}
			p.Bools[f.key] = b
		case kindUint:
			n, err := strconv.ParseUint(v, 0, 64)
			if err != nil {
				return nil, fmt.Errorf("properties: key %s: %w", f.key, err)
			}
			p.Uints[f.key] = n
		case kindString:
			p.Strings[f.key] = v
		}
	}
	return p, nil
}

func parseStrictBool(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("not a bool (must be true/false): %q", s)
	}
}

// Save writes a normalized copy of p back to path: the `#Minecraft server
// properties` header line, followed by every recognized key in
// orderedFields' order, one per line. Any key not in orderedFields never
// reaches this point, since Load never stores it.
func Save(path string, p *Properties) error {
	var b strings.Builder
	b.WriteString(HeaderLine)
	b.WriteByte('\n')
	for _, f := range orderedFields {
		b.WriteString(f.key)
		b.WriteByte('=')
		switch f.kind {
		case kindBool:
			b.WriteString(strconv.FormatBool(p.Bools[f.key]))
		case kindUint:
			b.WriteString(strconv.FormatUint(p.Uints[f.key], 10))
		case kindString:
			b.WriteString(p.Strings[f.key])
		}
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
