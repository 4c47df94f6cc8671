package cli

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
)

// config holds defaults loaded from a TOML file. Command-line flags win
// over anything set here.
type config struct {
	Type    string            `toml:"type"`
	Margins string            `toml:"margins"`
	Size    int               `toml:"size"`
	Width   float64           `toml:"width"`
	Height  float64           `toml:"height"`
	Params  map[string]string `toml:"params"`
}

func defaultConfig() config {
	return config{}
}

func loadConfig(path string) (config, error) {
	var c config
	meta, err := toml.DecodeFile(path, &c)
	if err != nil {
		return c, err
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return c, fmt.Errorf("unknown config key %q", undec[0].String())
	}
	return c, nil
}

// mapToPairs flattens a config params table into key=value strings so
// it can share the flag parsing path.
func mapToPairs(m map[string]string) []string {
	pairs := make([]string, 0, len(m))
	for k, v := range m {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return pairs
}
