package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const networksFileName = "networks.yaml"

var networkNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$`)

// NetworksConfig is the root of networks.yaml.
type NetworksConfig struct {
	Networks []NetworkConfig `yaml:"networks"`
}

// NetworkConfig names a chain id (e.g. "linea" for 59144).
type NetworkConfig struct {
	// Name must be lowercase snake_case
	Name string `yaml:"name"`
	ID   uint64 `yaml:"id"`
}

// Networks maps network names to chain ids.
type Networks map[string]uint64

func defaultNetworks() Networks {
	return Networks{
		"mainnet":  1,
		"goerli":   5,
		"optimism": 10,
		"polygon":  137,
		"base":     8453,
		"holesky":  17000,
		"arbitrum": 42161,
		"sepolia":  11155111,
	}
}

// LoadNetworks returns the built-in networks extended and overridden by
// <configDirPath>/networks.yaml. A missing file is not an error.
func LoadNetworks(configDirPath string) (Networks, error) {
	networks := defaultNetworks()

	networksPath := filepath.Join(configDirPath, networksFileName)
	f, err := os.Open(networksPath)
	if errors.Is(err, os.ErrNotExist) {
		return networks, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg NetworksConfig
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "failed to decode %s", networksPath)
	}

	for _, n := range cfg.Networks {
		if !networkNameRegex.MatchString(n.Name) {
			return nil, fmt.Errorf("invalid network name '%s', should match snake_case format", n.Name)
		}
		networks[n.Name] = n.ID
	}
	return networks, nil
}

// Resolve accepts a network name or a decimal chain id.
func (n Networks) Resolve(value string) (uint64, error) {
	if id, ok := n[strings.ToLower(value)]; ok {
		return id, nil
	}
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unknown network '%s'", value)
	}
	return id, nil
}

// Name returns the first name, in lexical order, registered for chainID.
func (n Networks) Name(chainID uint64) (string, bool) {
	names := make([]string, 0, len(n))
	for name, id := range n {
		if id == chainID {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", false
	}
	return slices.Min(names), true
}
