package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quickwritereader/memdomain/config"
	"github.com/quickwritereader/memdomain/layout"
	"github.com/quickwritereader/memdomain/storage"
)

var initCmd = &cobra.Command{
	Use:   "init IMAGE",
	Short: "Create an erased image for the configured device.",
	Long: "Resolves the device from --config, --env and MEMDOMAIN_* variables " +
		"and writes an erased image. --layout seeds the eeprom symbols from a " +
		"JSON object of {\"name\": {\"addr\": A, \"size\": N}} entries.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dev, err := config.Resolve(configPath, envFiles...)
		if err != nil {
			return err
		}
		tgt, err := storage.NewFromConfig(dev, storage.WithLogger(logger))
		if err != nil {
			return err
		}

		l, err := layout.New(0, dev.EepromSize)
		if err != nil {
			return err
		}
		if path, _ := cmd.Flags().GetString("layout"); path != "" {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if err := l.UnmarshalJSON(data); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}

		if err := saveImage(args[0], tgt, l); err != nil {
			return err
		}
		logger.Info("image created",
			slog.String("path", args[0]),
			slog.String("device", dev.Name),
			slog.Int("progmem", dev.ProgmemSize),
			slog.Int("eeprom", dev.EepromSize))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("layout", "", "JSON symbol table for the eeprom")
}
