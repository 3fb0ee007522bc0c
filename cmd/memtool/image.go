package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/quickwritereader/memdomain/image"
)

var convertCmd = &cobra.Command{
	Use:   "convert IN OUT",
	Short: "Re-encode an image; formats follow the file extensions.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := image.Load(args[0])
		if err != nil {
			return err
		}
		if err := image.Save(args[1], snap); err != nil {
			return err
		}
		from, _ := image.FormatFromPath(args[0])
		to, _ := image.FormatFromPath(args[1])
		logger.Info("image converted", slog.String("from", from.String()), slog.String("to", to.String()))
		return nil
	},
}

var symbolsCmd = &cobra.Command{
	Use:   "symbols IMAGE",
	Short: "List the eeprom symbols in placement order.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, l, err := openImage(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			data, err := l.MarshalJSON()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}
		for name, sym := range l.All() {
			fmt.Fprintf(out, "0x%04X %6d  %s\n", uint16(sym.Addr), sym.Size, name)
		}
		return nil
	},
}

var placeCmd = &cobra.Command{
	Use:   "place IMAGE NAME SIZE",
	Short: "Reserve SIZE eeprom bytes for NAME after the last symbol.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		tgt, l, err := openImage(args[0])
		if err != nil {
			return err
		}
		size, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("size %q: %w", args[2], err)
		}
		addr, err := l.Place(args[1], size)
		if err != nil {
			return err
		}
		logger.Info("symbol placed",
			slog.String("name", args[1]),
			slog.String("addr", fmt.Sprintf("0x%04X", uint16(addr))),
			slog.Int("remaining", l.Remaining()))
		return saveImage(args[0], tgt, l)
	},
}

var burnCmd = &cobra.Command{
	Use:   "burn IMAGE [FILE]",
	Short: "Program flash from FILE, or from --string as a null-terminated string.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tgt, l, err := openImage(args[0])
		if err != nil {
			return err
		}
		addrFlag, _ := cmd.Flags().GetString("addr")
		addr, err := parseAddress(addrFlag)
		if err != nil {
			return err
		}

		var data []byte
		switch {
		case len(args) == 2:
			if data, err = os.ReadFile(args[1]); err != nil {
				return err
			}
		case cmd.Flags().Changed("string"):
			text, _ := cmd.Flags().GetString("string")
			data = append([]byte(text), 0)
		default:
			return fmt.Errorf("nothing to burn: give FILE or --string")
		}
		if err := tgt.Flash.Program(addr, data); err != nil {
			return err
		}
		logger.Info("flash programmed",
			slog.String("addr", fmt.Sprintf("0x%04X", uint16(addr))),
			slog.Int("bytes", len(data)))
		return saveImage(args[0], tgt, l)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd, symbolsCmd, placeCmd, burnCmd)
	symbolsCmd.Flags().Bool("json", false, "Print the table as JSON")
	burnCmd.Flags().String("addr", "0", "Flash address to program at")
	burnCmd.Flags().String("string", "", "Text to burn, terminated with a zero byte")
}
