// Package image saves and restores the state of a simulated target: both
// domains, the eeprom wear table and the symbol layout of the eeprom.
package image

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/quickwritereader/memdomain/config"
	"github.com/quickwritereader/memdomain/layout"
	"github.com/quickwritereader/memdomain/storage"
)

var (
	ErrUnknownFormat = errors.New("unknown image format")
	ErrCorrupt       = errors.New("corrupt image")
)

// Snapshot is the persisted state of a target.
type Snapshot struct {
	// ID names one capture; every call to Capture produces a fresh one.
	ID      string          `json:"id,omitempty" msgpack:"id,omitempty"`
	Device  config.Device   `json:"device" msgpack:"device"`
	Progmem []byte          `json:"progmem" msgpack:"progmem"`
	EEPROM  []byte          `json:"eeprom" msgpack:"eeprom"`
	Wear    []uint32        `json:"wear,omitempty" msgpack:"wear,omitempty"`
	Symbols []layout.Symbol `json:"symbols,omitempty" msgpack:"symbols,omitempty"`
}

// Capture copies the state of tgt. l may be nil.
func Capture(tgt *storage.Target, l *layout.Layout) Snapshot {
	s := Snapshot{
		ID:      xid.New().String(),
		Device:  tgt.Config(),
		Progmem: tgt.Flash.Bytes(),
		EEPROM:  tgt.EEPROM.Bytes(),
		Wear:    tgt.EEPROM.Wear(),
	}
	if l != nil && l.Len() > 0 {
		s.Symbols = l.Symbols()
	}
	return s
}

// Validate checks that the contents agree with the device description.
func (s Snapshot) Validate() error {
	if s.ID != "" {
		if _, err := xid.FromString(s.ID); err != nil {
			return fmt.Errorf("%w: id %q: %w", ErrCorrupt, s.ID, err)
		}
	}
	if err := s.Device.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if len(s.Progmem) != s.Device.ProgmemSize {
		return fmt.Errorf("%w: progmem holds %d bytes, device has %d", ErrCorrupt, len(s.Progmem), s.Device.ProgmemSize)
	}
	if len(s.EEPROM) != s.Device.EepromSize {
		return fmt.Errorf("%w: eeprom holds %d bytes, device has %d", ErrCorrupt, len(s.EEPROM), s.Device.EepromSize)
	}
	if len(s.Wear) != 0 && len(s.Wear) != s.Device.EepromSize {
		return fmt.Errorf("%w: wear table holds %d cells, device has %d", ErrCorrupt, len(s.Wear), s.Device.EepromSize)
	}
	return nil
}

// Captured reports when the snapshot was taken, if it carries an ID.
func (s Snapshot) Captured() (time.Time, bool) {
	id, err := xid.FromString(s.ID)
	if err != nil {
		return time.Time{}, false
	}
	return id.Time(), true
}

// Restore builds a target holding the snapshot state and the eeprom
// layout described by its symbols.
func Restore(s Snapshot, opts ...storage.Option) (*storage.Target, *layout.Layout, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}
	tgt, err := storage.NewFromConfig(s.Device, opts...)
	if err != nil {
		return nil, nil, err
	}
	if err := tgt.Flash.Load(s.Progmem); err != nil {
		return nil, nil, err
	}
	var wear []uint32
	if len(s.Wear) > 0 {
		wear = s.Wear
	}
	if err := tgt.EEPROM.Restore(s.EEPROM, wear); err != nil {
		return nil, nil, err
	}
	l, err := layout.FromSymbols(0, s.Device.EepromSize, s.Symbols)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return tgt, l, nil
}

// Encode writes s to w in format f.
func Encode(w io.Writer, s Snapshot, f Format) error {
	c, err := codecFor(f)
	if err != nil {
		return err
	}
	data, err := c.marshal(s)
	if err != nil {
		return fmt.Errorf("image: encode %s: %w", f, err)
	}
	_, err = w.Write(data)
	return err
}

// Decode reads a snapshot in format f and validates it.
func Decode(r io.Reader, f Format) (Snapshot, error) {
	c, err := codecFor(f)
	if err != nil {
		return Snapshot{}, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Snapshot{}, err
	}
	var s Snapshot
	if err := c.unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("image: decode %s: %w", f, err)
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, fmt.Errorf("image: decode %s: %w", f, err)
	}
	return s, nil
}

// Save writes s to path, choosing the format from its extension.
func Save(path string, s Snapshot) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("image: %w", err)
	}
	if err := Encode(out, s, f); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Load reads the snapshot at path, choosing the format from its extension.
func Load(path string) (Snapshot, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return Snapshot{}, err
	}
	in, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("image: %w", err)
	}
	defer in.Close()
	return Decode(in, f)
}

// Format selects a snapshot encoding.
type Format uint8

const (
	FormatJSON Format = iota
	FormatMsgpack
	FormatMUS
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatMsgpack:
		return "msgpack"
	case FormatMUS:
		return "mus"
	}
	return fmt.Sprintf("format(%d)", uint8(f))
}

// Ext returns the file extension used for f.
func (f Format) Ext() string {
	if f == FormatMsgpack {
		return ".mpk"
	}
	return "." + f.String()
}

// ParseFormat accepts the names printed by Format.String.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return FormatJSON, nil
	case "msgpack", "mpk":
		return FormatMsgpack, nil
	case "mus":
		return FormatMUS, nil
	}
	return 0, fmt.Errorf("image: %w: %q", ErrUnknownFormat, name)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, fmt.Errorf("image: %w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}
