// Package config describes the simulated target device: how large its
// domains are and how many program cycles its eeprom cells are rated for.
//
// A Device is read from a JSON file and then overridden from the
// environment, optionally seeded from dotenv files:
//
//	MEMDOMAIN_DEVICE            preset name, applied first
//	MEMDOMAIN_NAME              display name
//	MEMDOMAIN_PROGMEM_SIZE      bytes
//	MEMDOMAIN_EEPROM_SIZE       bytes
//	MEMDOMAIN_EEPROM_ENDURANCE  program cycles per cell
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"

	"github.com/quickwritereader/memdomain/utils"
)

const (
	EnvPrefix = "MEMDOMAIN_"

	// maxDomainSize is the reach of a 16-bit near address.
	maxDomainSize = 1 << 16
)

var (
	ErrInvalid       = errors.New("invalid device configuration")
	ErrUnknownDevice = errors.New("unknown device preset")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Device is the configuration of one simulated target.
type Device struct {
	Name            string `json:"name" msgpack:"name"`
	ProgmemSize     int    `json:"progmem_size" msgpack:"progmem_size"`
	EepromSize      int    `json:"eeprom_size" msgpack:"eeprom_size"`
	EepromEndurance uint32 `json:"eeprom_endurance" msgpack:"eeprom_endurance"`
}

var presets = map[string]Device{
	"atmega328p": {Name: "atmega328p", ProgmemSize: 32 << 10, EepromSize: 1 << 10, EepromEndurance: 100_000},
	"atmega32u4": {Name: "atmega32u4", ProgmemSize: 32 << 10, EepromSize: 1 << 10, EepromEndurance: 100_000},
	"atmega168":  {Name: "atmega168", ProgmemSize: 16 << 10, EepromSize: 512, EepromEndurance: 100_000},
	"attiny85":   {Name: "attiny85", ProgmemSize: 8 << 10, EepromSize: 512, EepromEndurance: 100_000},
}

// Default returns the atmega328p preset.
func Default() Device { return presets["atmega328p"] }

// Preset returns a built-in device by name.
func Preset(name string) (Device, error) {
	d, ok := presets[strings.ToLower(name)]
	if !ok {
		return Device{}, fmt.Errorf("config: %w: %q (known: %s)", ErrUnknownDevice, name, strings.Join(Presets(), ", "))
	}
	return d, nil
}

// Presets lists the built-in device names in sorted order.
func Presets() []string {
	return utils.SortKeys(presets)
}

// Parse decodes a JSON device description. Fields absent from data keep
// the values of Default.
func Parse(data []byte) (Device, error) {
	d := Default()
	if err := json.Unmarshal(data, &d); err != nil {
		return Device{}, fmt.Errorf("config: parse: %w", err)
	}
	return d, nil
}

// Load reads path with Parse.
func Load(path string) (Device, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Device{}, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Environ returns the process environment layered over the given dotenv
// files. Variables already set in the process win, as with godotenv.Load.
func Environ(dotenv ...string) (map[string]string, error) {
	env := map[string]string{}
	if len(dotenv) > 0 {
		fileEnv, err := godotenv.Read(dotenv...)
		if err != nil {
			return nil, fmt.Errorf("config: dotenv: %w", err)
		}
		env = fileEnv
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, EnvPrefix) {
			env[k] = v
		}
	}
	return env, nil
}

// ApplyEnv overrides fields from MEMDOMAIN_* entries of env.
func (d *Device) ApplyEnv(env map[string]string) error {
	if name, ok := env[EnvPrefix+"DEVICE"]; ok {
		p, err := Preset(name)
		if err != nil {
			return err
		}
		*d = p
	}
	if v, ok := env[EnvPrefix+"NAME"]; ok {
		d.Name = v
	}
	for key, dst := range map[string]*int{
		"PROGMEM_SIZE": &d.ProgmemSize,
		"EEPROM_SIZE":  &d.EepromSize,
	} {
		v, ok := env[EnvPrefix+key]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
		}
		*dst = n
	}
	if v, ok := env[EnvPrefix+"EEPROM_ENDURANCE"]; ok {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return fmt.Errorf("config: %sEEPROM_ENDURANCE: %w", EnvPrefix, err)
		}
		d.EepromEndurance = uint32(n)
	}
	return nil
}

// Validate checks that both domains fit a near address space and that the
// endurance rating is usable.
func (d Device) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("config: %w: empty name", ErrInvalid)
	}
	if d.ProgmemSize <= 0 || d.ProgmemSize > maxDomainSize {
		return fmt.Errorf("config: %w: progmem size %d", ErrInvalid, d.ProgmemSize)
	}
	if d.EepromSize <= 0 || d.EepromSize > maxDomainSize {
		return fmt.Errorf("config: %w: eeprom size %d", ErrInvalid, d.EepromSize)
	}
	if d.EepromEndurance == 0 {
		return fmt.Errorf("config: %w: zero eeprom endurance", ErrInvalid)
	}
	return nil
}

// Resolve is the usual entry point: start from the file at path, or from
// Default when path is empty, apply the environment and validate.
func Resolve(path string, dotenv ...string) (Device, error) {
	d := Default()
	if path != "" {
		var err error
		if d, err = Load(path); err != nil {
			return Device{}, err
		}
	}
	env, err := Environ(dotenv...)
	if err != nil {
		return Device{}, err
	}
	if err := d.ApplyEnv(env); err != nil {
		return Device{}, err
	}
	if err := d.Validate(); err != nil {
		return Device{}, err
	}
	return d, nil
}
