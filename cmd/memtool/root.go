// Command memtool creates and manipulates images of simulated targets:
// the progmem and eeprom contents of a device together with the symbol
// layout of its eeprom.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/quickwritereader/memdomain/image"
	"github.com/quickwritereader/memdomain/layout"
	"github.com/quickwritereader/memdomain/storage"
	"github.com/quickwritereader/memdomain/types"
)

var (
	verbose    bool
	configPath string
	envFiles   []string

	logger = slog.Default()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "memtool",
	Short: "Create, inspect and edit progmem/eeprom images of simulated devices.",
	Long: `memtool keeps the state of a simulated device in an image file ` +
		`(.json, .mpk or .mus). Images hold both memory domains, the eeprom ` +
		`wear counters and the named eeprom layout.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Device description (JSON)")
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env", nil, "Dotenv files with MEMDOMAIN_* overrides")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openImage loads path and rebuilds the target it describes.
func openImage(path string) (*storage.Target, *layout.Layout, error) {
	snap, err := image.Load(path)
	if err != nil {
		return nil, nil, err
	}
	tgt, l, err := image.Restore(snap, storage.WithLogger(logger))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("image loaded",
		slog.String("path", path),
		slog.String("device", tgt.Name),
		slog.Int("symbols", l.Len()))
	return tgt, l, nil
}

func saveImage(path string, tgt *storage.Target, l *layout.Layout) error {
	if err := image.Save(path, image.Capture(tgt, l)); err != nil {
		return err
	}
	logger.Debug("image saved", slog.String("path", path))
	return nil
}

func parseAddress(s string) (types.Address, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("address %q: %w", s, err)
	}
	return types.Address(v), nil
}
