package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// configPaths lists the files looked up for flag defaults, later files take
// precedence
func configPaths() []string {
	paths := []string{}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, name, "config.yaml"))
	}
	return append(paths, "."+name+".yaml")
}

// loadYAML is a [kong.ConfigurationLoader] for YAML files holding flag
// values at the top level:
//
//	log-level: debug
//	max_depth: 512
//	no-color: true
//
// Flags given on the command line override file values.
func loadYAML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %w", err)
	}
	return yamlConfig(values), nil
}

// yamlConfig implements [kong.Resolver]
type yamlConfig map[string]any

func (c yamlConfig) Validate(*kong.Application) error {
	return nil
}

func (c yamlConfig) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	for _, key := range []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")} {
		if value, ok := c[key]; ok && value != nil {
			// kong maps scalars from their string form
			return fmt.Sprint(value), nil
		}
	}
	return nil, nil
}
