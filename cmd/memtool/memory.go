package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/quickwritereader/memdomain/access"
	"github.com/quickwritereader/memdomain/eeprom"
	"github.com/quickwritereader/memdomain/layout"
	"github.com/quickwritereader/memdomain/progmem"
	"github.com/quickwritereader/memdomain/storage"
	"github.com/quickwritereader/memdomain/types"
)

const (
	domainProgmem = "progmem"
	domainEEPROM  = "eeprom"
)

var widths = map[string]types.Width{
	"byte":  types.WidthByte,
	"word":  types.WidthWord,
	"dword": types.WidthDword,
	"float": types.WidthFloat,
	"ptr":   types.WidthPtr,
}

func parseWidth(s string) (types.Width, error) {
	w, ok := widths[s]
	if !ok {
		return 0, fmt.Errorf("unknown width %q", s)
	}
	return w, nil
}

// domainOf selects the memory named by the --domain flag.
func domainOf(tgt *storage.Target, name string) (access.Reader, int, error) {
	switch name {
	case domainProgmem:
		return tgt.Flash, tgt.Flash.Size(), nil
	case domainEEPROM:
		return tgt.EEPROM, tgt.EEPROM.Size(), nil
	}
	return nil, 0, fmt.Errorf("unknown domain %q", name)
}

// location resolves --symbol or --addr. Symbols live in the eeprom layout.
func location(cmd *cobra.Command, l *layout.Layout) (types.Address, error) {
	if name, _ := cmd.Flags().GetString("symbol"); name != "" {
		sym, ok := l.Lookup(name)
		if !ok {
			return 0, fmt.Errorf("symbol %q: %w", name, layout.ErrNotFound)
		}
		return sym.Addr, nil
	}
	addr, _ := cmd.Flags().GetString("addr")
	return parseAddress(addr)
}

// checkSpan rejects n bytes at addr that would run past a domain of size
// bytes; the domain views panic on such accesses.
func checkSpan(domain string, addr types.Address, n, size int) error {
	if int(addr)+n > size {
		return fmt.Errorf("%d bytes at 0x%04X beyond %s of %d bytes", n, uint16(addr), domain, size)
	}
	return nil
}

// terminated reports whether a null byte lies between addr and the end of
// the domain.
func terminated(mem access.Reader, addr types.Address, size int) bool {
	buf := make([]byte, size-int(addr))
	mem.ReadBlock(buf, addr)
	return bytes.IndexByte(buf, 0) >= 0
}

func load[T any](mem access.Reader, domain string, addr types.Address) T {
	if domain == domainProgmem {
		return progmem.MakeReference[T](mem, addr).Get()
	}
	return eeprom.MakeConstReference[T](mem, addr).Get()
}

func loadValue(mem access.Reader, domain string, addr types.Address, w types.Width) string {
	switch w {
	case types.WidthByte:
		return strconv.FormatUint(uint64(load[uint8](mem, domain, addr)), 10)
	case types.WidthWord:
		return strconv.FormatUint(uint64(load[uint16](mem, domain, addr)), 10)
	case types.WidthDword:
		return strconv.FormatUint(uint64(load[uint32](mem, domain, addr)), 10)
	case types.WidthFloat:
		return strconv.FormatFloat(float64(load[float32](mem, domain, addr)), 'g', -1, 32)
	default:
		return fmt.Sprintf("0x%04X", uint16(load[types.Address](mem, domain, addr)))
	}
}

func store[T any](dev access.Device, addr types.Address, v T, overwrite bool) {
	ref := eeprom.MakeReference[T](dev, addr)
	if overwrite {
		ref.Overwrite(v)
		return
	}
	ref.Set(v)
}

func storeValue(dev access.Device, addr types.Address, w types.Width, s string, overwrite bool) error {
	switch w {
	case types.WidthByte, types.WidthWord, types.WidthDword:
		bits := 8 * w.Size()
		v, err := strconv.ParseUint(s, 0, bits)
		if err != nil {
			return fmt.Errorf("value %q: %w", s, err)
		}
		switch w {
		case types.WidthByte:
			store(dev, addr, uint8(v), overwrite)
		case types.WidthWord:
			store(dev, addr, uint16(v), overwrite)
		default:
			store(dev, addr, uint32(v), overwrite)
		}
	case types.WidthFloat:
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return fmt.Errorf("value %q: %w", s, err)
		}
		store(dev, addr, float32(v), overwrite)
	default:
		v, err := parseAddress(s)
		if err != nil {
			return err
		}
		store(dev, addr, v, overwrite)
	}
	return nil
}

var peekCmd = &cobra.Command{
	Use:   "peek IMAGE",
	Short: "Read one value from a domain.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tgt, l, err := openImage(args[0])
		if err != nil {
			return err
		}
		domain, _ := cmd.Flags().GetString("domain")
		mem, size, err := domainOf(tgt, domain)
		if err != nil {
			return err
		}
		addr, err := location(cmd, l)
		if err != nil {
			return err
		}
		wname, _ := cmd.Flags().GetString("width")
		w, err := parseWidth(wname)
		if err != nil {
			return err
		}
		if err := checkSpan(domain, addr, w.Size(), size); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), loadValue(mem, domain, addr, w))
		return nil
	},
}

var pokeCmd = &cobra.Command{
	Use:   "poke IMAGE VALUE",
	Short: "Store one value in the eeprom and report the cells programmed.",
	Long: "Stores VALUE with the update primitive, which skips cells that " +
		"already hold the value. --overwrite programs unconditionally.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tgt, l, err := openImage(args[0])
		if err != nil {
			return err
		}
		addr, err := location(cmd, l)
		if err != nil {
			return err
		}
		wname, _ := cmd.Flags().GetString("width")
		w, err := parseWidth(wname)
		if err != nil {
			return err
		}
		if err := checkSpan(domainEEPROM, addr, w.Size(), tgt.EEPROM.Size()); err != nil {
			return err
		}
		overwrite, _ := cmd.Flags().GetBool("overwrite")

		dev := storage.NewCountingDevice(tgt.EEPROM)
		if err := storeValue(dev, addr, w, args[1], overwrite); err != nil {
			return err
		}
		logger.Info("eeprom stored",
			slog.String("addr", fmt.Sprintf("0x%04X", uint16(addr))),
			slog.String("width", w.String()),
			slog.Uint64("cells_programmed", tgt.EEPROM.Writes()),
			slog.String("updates", dev.Updates.String()),
			slog.String("writes", dev.Writes.String()))
		return saveImage(args[0], tgt, l)
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump IMAGE",
	Short: "Hex dump a range of a domain.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tgt, l, err := openImage(args[0])
		if err != nil {
			return err
		}
		domain, _ := cmd.Flags().GetString("domain")
		mem, size, err := domainOf(tgt, domain)
		if err != nil {
			return err
		}
		addr, err := location(cmd, l)
		if err != nil {
			return err
		}
		if err := checkSpan(domain, addr, 1, size); err != nil {
			return err
		}
		n, _ := cmd.Flags().GetInt("len")
		if n <= 0 || int(addr)+n > size {
			n = size - int(addr)
		}

		buf := make([]byte, n)
		if domain == domainProgmem {
			progmem.MakeArray[uint8](mem, addr, n).CopyTo(buf)
		} else {
			eeprom.MakeArray[uint8](tgt.EEPROM, addr, n).CopyTo(buf)
		}
		fmt.Fprint(cmd.OutOrStdout(), hex.Dump(buf))
		return nil
	},
}

var strCmd = &cobra.Command{
	Use:   "str IMAGE",
	Short: "Read, or with --set store, a null-terminated string.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tgt, l, err := openImage(args[0])
		if err != nil {
			return err
		}
		domain, _ := cmd.Flags().GetString("domain")
		mem, size, err := domainOf(tgt, domain)
		if err != nil {
			return err
		}
		addr, err := location(cmd, l)
		if err != nil {
			return err
		}
		if err := checkSpan(domain, addr, 1, size); err != nil {
			return err
		}

		if cmd.Flags().Changed("set") {
			if domain != domainEEPROM {
				return fmt.Errorf("--set needs the eeprom domain; program flash with burn")
			}
			text, _ := cmd.Flags().GetString("set")
			if err := checkSpan(domain, addr, len(text)+1, size); err != nil {
				return err
			}
			s := eeprom.StoreString(tgt.EEPROM, addr, text)
			logger.Info("string stored",
				slog.Int("len", s.Len()),
				slog.Uint64("cells_programmed", tgt.EEPROM.Writes()))
			return saveImage(args[0], tgt, l)
		}

		if !terminated(mem, addr, size) {
			return fmt.Errorf("no string terminator between 0x%04X and the end of %s", uint16(addr), domain)
		}
		if domain == domainProgmem {
			fmt.Fprintln(cmd.OutOrStdout(), progmem.MakeNullString(mem, addr).String())
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), eeprom.MakeNullString(mem, addr).String())
		}
		return nil
	},
}

func addLocationFlags(cmd *cobra.Command, domain bool) {
	cmd.Flags().String("addr", "0", "Address (decimal, 0x hex or 0 octal)")
	cmd.Flags().String("symbol", "", "Eeprom symbol to use instead of --addr")
	if domain {
		cmd.Flags().String("domain", domainEEPROM, "Domain: progmem or eeprom")
	}
}

func init() {
	rootCmd.AddCommand(peekCmd, pokeCmd, dumpCmd, strCmd)

	addLocationFlags(peekCmd, true)
	peekCmd.Flags().String("width", "byte", "Value width: byte, word, dword, float or ptr")

	addLocationFlags(pokeCmd, false)
	pokeCmd.Flags().String("width", "byte", "Value width: byte, word, dword, float or ptr")
	pokeCmd.Flags().Bool("overwrite", false, "Program every cell even if unchanged")

	addLocationFlags(dumpCmd, true)
	dumpCmd.Flags().Int("len", 0, "Bytes to dump; 0 dumps to the end of the domain")

	addLocationFlags(strCmd, true)
	strCmd.Flags().String("set", "", "Store this text at the location (eeprom only)")
}
