package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/refcycle/vcrc/internal/logging"
	"github.com/refcycle/vcrc/pkg/core"
	"github.com/refcycle/vcrc/pkg/solver"
)

// GlobalDefaultsKey names the entry that applies to every refrigerant.
const GlobalDefaultsKey = "default"

// RefrigerantDefaults holds the component parameters applied when an analysis document leaves them out.
type RefrigerantDefaults struct {
	// Refrigerant is the refrigerant name (only used in override entries)
	Refrigerant string `yaml:"refrigerant,omitempty" json:"refrigerant,omitempty"`

	// Superheat at the evaporator outlet in K.
	// Pointers allow an explicit zero to override a non-zero default.
	Superheat *float64 `yaml:"superheat,omitempty" json:"superheat,omitempty"`

	// Subcooling at the condenser outlet in K
	Subcooling *float64 `yaml:"subcooling,omitempty" json:"subcooling,omitempty"`

	// CompressorEfficiency is the isentropic efficiency in (0, 1]
	CompressorEfficiency *float64 `yaml:"compressorEfficiency,omitempty" json:"compressorEfficiency,omitempty"`

	// PressurePolicy is the intermediate pressure policy of two-stage cycles
	PressurePolicy string `yaml:"pressurePolicy,omitempty" json:"pressurePolicy,omitempty"`
}

// RefrigerantDefaultsData maps a refrigerant name (upper case) or GlobalDefaultsKey to its defaults.
type RefrigerantDefaultsData map[string]RefrigerantDefaults

// Validate checks for invalid configuration values.
func (c *RefrigerantDefaults) Validate() error {
	if c.Superheat != nil && (*c.Superheat < 0 || *c.Superheat > core.MaxTemperatureDifference) {
		return fmt.Errorf("superheat must be between 0 and %g K, got %.2f", core.MaxTemperatureDifference, *c.Superheat)
	}
	if c.Subcooling != nil && (*c.Subcooling < 0 || *c.Subcooling > core.MaxTemperatureDifference) {
		return fmt.Errorf("subcooling must be between 0 and %g K, got %.2f", core.MaxTemperatureDifference, *c.Subcooling)
	}
	if c.CompressorEfficiency != nil && (*c.CompressorEfficiency <= 0 || *c.CompressorEfficiency > 1) {
		return fmt.Errorf("compressorEfficiency must be in (0, 1], got %.3f", *c.CompressorEfficiency)
	}
	if c.PressurePolicy != "" {
		if _, err := solver.ParsePressureStrategy(c.PressurePolicy); err != nil {
			return fmt.Errorf("invalid pressurePolicy: %w", err)
		}
	}
	return nil
}

// LoadRefrigerantDefaults reads a YAML file whose top-level keys name the entries.
// A missing file yields empty defaults.
func LoadRefrigerantDefaults(path string) (RefrigerantDefaultsData, error) {
	if path == "" {
		return make(RefrigerantDefaultsData), nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logging.Log.Info("Refrigerant defaults file not found, using built-in values", "file", path)
		return make(RefrigerantDefaultsData), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading refrigerant defaults: %w", err)
	}

	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing refrigerant defaults %s: %w", path, err)
	}
	data := make(map[string]string, len(doc))
	for key, node := range doc {
		block, err := yaml.Marshal(&node)
		if err != nil {
			return nil, fmt.Errorf("re-encoding entry %q: %w", key, err)
		}
		data[key] = string(block)
	}
	return ParseRefrigerantDefaults(data), nil
}

// ParseRefrigerantDefaults parses per-entry YAML blocks:
//   - "default": defaults for all refrigerants
//   - "<override-name>": per-refrigerant configuration with a refrigerant field
//
// Malformed or invalid entries are skipped and logged.
func ParseRefrigerantDefaults(data map[string]string) RefrigerantDefaultsData {
	out := make(RefrigerantDefaultsData)
	if data == nil {
		return out
	}
	refrigerantToKeys := make(map[string][]string)

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		var entry RefrigerantDefaults
		if err := yaml.Unmarshal([]byte(data[key]), &entry); err != nil {
			logging.Log.Info("Failed to parse refrigerant defaults entry, skipping",
				"key", key,
				"error", err)
			continue
		}

		if err := entry.Validate(); err != nil {
			logging.Log.Info("Invalid refrigerant defaults entry, skipping",
				"key", key,
				"error", err)
			continue
		}

		if key == GlobalDefaultsKey {
			out[GlobalDefaultsKey] = entry
			continue
		}

		if entry.Refrigerant == "" {
			logging.Log.Info("Skipping refrigerant defaults entry without refrigerant field",
				"key", key)
			continue
		}

		name := strings.ToUpper(entry.Refrigerant)
		if existingKeys, exists := refrigerantToKeys[name]; exists {
			logging.Log.Info("Duplicate refrigerant found in defaults - first key wins",
				"refrigerant", entry.Refrigerant,
				"winningKey", existingKeys[0],
				"duplicateKey", key)
			continue
		}
		refrigerantToKeys[name] = append(refrigerantToKeys[name], key)

		out[name] = entry
	}

	logging.Log.V(logging.DEBUG).Info("Parsed refrigerant defaults",
		"entryCount", len(out))

	return out
}

// GetRefrigerantDefaults returns the effective defaults for a refrigerant: its override merged onto
// the global entry.
func (data RefrigerantDefaultsData) GetRefrigerantDefaults(refrigerant string) RefrigerantDefaults {
	defaults := data[GlobalDefaultsKey]
	override, ok := data[strings.ToUpper(refrigerant)]
	if !ok {
		return defaults
	}

	result := defaults
	result.Refrigerant = override.Refrigerant
	if override.Superheat != nil {
		result.Superheat = override.Superheat
	}
	if override.Subcooling != nil {
		result.Subcooling = override.Subcooling
	}
	if override.CompressorEfficiency != nil {
		result.CompressorEfficiency = override.CompressorEfficiency
	}
	if override.PressurePolicy != "" {
		result.PressurePolicy = override.PressurePolicy
	}
	return result
}
