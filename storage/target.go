package storage

import (
	"fmt"

	"github.com/quickwritereader/memdomain/config"
)

// Target is a simulated device: one progmem and one eeprom domain.
type Target struct {
	Name   string
	Flash  *Flash
	EEPROM *EEPROM
}

// NewFromConfig builds erased domains sized by cfg. The endurance in cfg
// takes precedence over any WithEndurance option.
func NewFromConfig(cfg config.Device, opts ...Option) (*Target, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	flash, err := NewFlash(cfg.ProgmemSize)
	if err != nil {
		return nil, fmt.Errorf("target %s: %w", cfg.Name, err)
	}
	opts = append(opts, WithEndurance(cfg.EepromEndurance))
	eeprom, err := NewEEPROM(cfg.EepromSize, opts...)
	if err != nil {
		return nil, fmt.Errorf("target %s: %w", cfg.Name, err)
	}
	return &Target{Name: cfg.Name, Flash: flash, EEPROM: eeprom}, nil
}

// Config reports the configuration the target corresponds to.
func (t *Target) Config() config.Device {
	return config.Device{
		Name:            t.Name,
		ProgmemSize:     t.Flash.Size(),
		EepromSize:      t.EEPROM.Size(),
		EepromEndurance: t.EEPROM.Endurance(),
	}
}
