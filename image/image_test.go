package image

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickwritereader/memdomain/config"
	"github.com/quickwritereader/memdomain/eeprom"
	"github.com/quickwritereader/memdomain/layout"
	"github.com/quickwritereader/memdomain/progmem"
	"github.com/quickwritereader/memdomain/storage"
)

func sampleTarget(t *testing.T) (*storage.Target, *layout.Layout) {
	t.Helper()
	cfg := config.Device{Name: "bench", ProgmemSize: 512, EepromSize: 64, EepromEndurance: 1000}
	tgt, err := storage.NewFromConfig(cfg)
	require.NoError(t, err)
	require.NoError(t, tgt.Flash.Program(0x20, []byte("hello\x00")))

	l, err := layout.New(0, cfg.EepromSize)
	require.NoError(t, err)
	boots, err := layout.PlaceT[uint16](l, "boots")
	require.NoError(t, err)
	gain, err := layout.PlaceT[float32](l, "gain")
	require.NoError(t, err)

	eeprom.MakeReference[uint16](tgt.EEPROM, boots).Set(3)
	eeprom.MakeReference[float32](tgt.EEPROM, gain).Set(1.5)
	return tgt, l
}

func TestCaptureRestore(t *testing.T) {
	tgt, l := sampleTarget(t)
	snap := Capture(tgt, l)
	require.NoError(t, snap.Validate())
	assert.Equal(t, "bench", snap.Device.Name)
	assert.Len(t, snap.Symbols, 2)
	assert.Equal(t, uint32(1), snap.Wear[0])

	back, bl, err := Restore(snap)
	require.NoError(t, err)
	assert.Equal(t, "hello", progmem.MakeNullString(back.Flash, 0x20).String())
	boots := bl.MustLookup("boots")
	assert.Equal(t, uint16(3), eeprom.MakeReference[uint16](back.EEPROM, boots.Addr).Get())
	assert.Equal(t, tgt.EEPROM.Wear(), back.EEPROM.Wear())
	assert.Equal(t, uint64(0), back.EEPROM.Writes())
	assert.Equal(t, l.Symbols(), bl.Symbols())
}

func TestCapture_IDs(t *testing.T) {
	tgt, l := sampleTarget(t)
	first, second := Capture(tgt, l), Capture(tgt, l)
	require.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	at, ok := first.Captured()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), at, time.Minute)

	_, ok = Snapshot{}.Captured()
	assert.False(t, ok)

	bad := first
	bad.ID = "not-an-id"
	assert.ErrorIs(t, bad.Validate(), ErrCorrupt)

	bare := first
	bare.ID = ""
	assert.NoError(t, bare.Validate())
}

func TestEncodeDecode_AllFormats(t *testing.T) {
	tgt, l := sampleTarget(t)
	snap := Capture(tgt, l)

	for _, f := range []Format{FormatJSON, FormatMsgpack, FormatMUS} {
		t.Run(f.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, snap, f))
			got, err := Decode(&buf, f)
			require.NoError(t, err)
			assert.Equal(t, snap, got)
		})
	}
}

func TestSaveLoad(t *testing.T) {
	tgt, l := sampleTarget(t)
	snap := Capture(tgt, l)
	dir := t.TempDir()

	for _, f := range []Format{FormatJSON, FormatMsgpack, FormatMUS} {
		path := filepath.Join(dir, "device"+f.Ext())
		require.NoError(t, Save(path, snap))
		got, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, snap, got, f.String())
	}

	assert.ErrorIs(t, Save(filepath.Join(dir, "device.bin"), snap), ErrUnknownFormat)
	_, err := Load(filepath.Join(dir, "device"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestDecode_RejectsCorruptImages(t *testing.T) {
	tgt, l := sampleTarget(t)
	snap := Capture(tgt, l)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, snap, FormatMUS))
	data := buf.Bytes()

	for name, input := range map[string][]byte{
		"no header": []byte("nope"),
		"truncated": data[:len(data)/2],
		"trailing":  append(bytes.Clone(data), 0),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(input), FormatMUS)
			assert.ErrorIs(t, err, ErrCorrupt)
		})
	}

	bad := snap
	bad.EEPROM = bad.EEPROM[:10]
	buf.Reset()
	require.NoError(t, Encode(&buf, bad, FormatJSON))
	_, err := Decode(&buf, FormatJSON)
	assert.ErrorIs(t, err, ErrCorrupt)

	_, err = Decode(bytes.NewReader([]byte("{")), FormatJSON)
	assert.Error(t, err)

	_, _, err = Restore(bad)
	assert.ErrorIs(t, err, ErrCorrupt)

	overlap := snap
	overlap.Symbols = append(overlap.Symbols, layout.Symbol{Name: "clash", Addr: 0, Size: 1})
	_, _, err = Restore(overlap)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestFormats(t *testing.T) {
	for _, tc := range []struct {
		path string
		want Format
	}{
		{"a.json", FormatJSON},
		{"a.mpk", FormatMsgpack},
		{"dir/a.MSGPACK", FormatMsgpack},
		{"a.mus", FormatMUS},
	} {
		got, err := FormatFromPath(tc.path)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
	_, err := ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Equal(t, "format(9)", Format(9).String())
	assert.Error(t, Encode(&bytes.Buffer{}, Snapshot{}, Format(9)))
}
