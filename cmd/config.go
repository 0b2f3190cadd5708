package cmd

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nssalian/litedoc-go/ast"
)

// configFileName is the optional per-project config file consulted for
// defaults the command-line flags don't override.
const configFileName = ".ldoc.yml"

// ldocConfig is the decoded shape of .ldoc.yml: a profile default, a
// default module list, and a strict-mode default.
type ldocConfig struct {
	Profile string   `yaml:"profile"`
	Modules []string `yaml:"modules"`
	Strict  bool     `yaml:"strict"`
}

// loadConfig reads path if it exists, returning a zero-value config (not
// an error) when it is absent. A present-but-unreadable or malformed file
// is an error.
func loadConfig(path string) (*ldocConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ldocConfig{}, nil
		}
		return nil, err
	}
	var cfg ldocConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// profile resolves the config's profile name to an ast.Profile, reporting
// ok=false when the field is empty or unrecognized.
func (c *ldocConfig) profile() (ast.Profile, bool) {
	switch c.Profile {
	case "litedoc":
		return ast.Litedoc, true
	case "md":
		return ast.Md, true
	case "md-strict":
		return ast.MdStrict, true
	default:
		return "", false
	}
}

// moduleSet resolves the config's module list to an ast.ModuleSet,
// ignoring unrecognized names (the parse itself will flag those via an
// in-source @modules directive; a config default silently skips them).
func (c *ldocConfig) moduleSet() (ast.ModuleSet, bool) {
	if len(c.Modules) == 0 {
		return 0, false
	}
	var s ast.ModuleSet
	for _, name := range c.Modules {
		if m, ok := ast.ParseModule(name); ok {
			s = s.With(m)
		}
	}
	return s, true
}
