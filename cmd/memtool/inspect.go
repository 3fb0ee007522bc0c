package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quickwritereader/memdomain/image"
	"github.com/quickwritereader/memdomain/storage"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect IMAGE",
	Short: "Summarise an image: device, domain usage and eeprom wear.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := image.Load(args[0])
		if err != nil {
			return err
		}
		tgt, l, err := image.Restore(snap, storage.WithLogger(logger))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		cfg := tgt.Config()

		if at, ok := snap.Captured(); ok {
			fmt.Fprintf(out, "image:     %s, captured %s\n", snap.ID, at.UTC().Format(time.RFC3339))
		}
		fmt.Fprintf(out, "device:    %s\n", cfg.Name)
		fmt.Fprintf(out, "progmem:   %d bytes, %d programmed\n", cfg.ProgmemSize, programmed(tgt.Flash.Bytes()))
		fmt.Fprintf(out, "eeprom:    %d bytes, %d programmed\n", cfg.EepromSize, programmed(tgt.EEPROM.Bytes()))

		var total, peak uint64
		for _, w := range tgt.EEPROM.Wear() {
			total += uint64(w)
			peak = max(peak, uint64(w))
		}
		fmt.Fprintf(out, "wear:      %d programs, peak %d of %d rated\n", total, peak, cfg.EepromEndurance)
		if worn := tgt.EEPROM.Worn(); len(worn) > 0 {
			fmt.Fprintf(out, "worn out:  %d cells, first at 0x%04X\n", len(worn), uint16(worn[0]))
		}
		fmt.Fprintf(out, "symbols:   %d, %d of %d bytes placed\n", l.Len(), l.Used(), l.Size())
		return nil
	},
}

// programmed counts cells that differ from the erased state.
func programmed(data []byte) int {
	n := 0
	for _, b := range data {
		if b != storage.ErasedByte {
			n++
		}
	}
	return n
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
