// Package cmd — команды CLI parcelctl.
package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Gunvolt24/parcel_product/internal/ports"
	"github.com/Gunvolt24/parcel_product/pkg/logger"
)

// NewRootCmd — корневая команда; флаги хранятся в замыканиях, поэтому команду можно собирать в тестах.
func NewRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "parcelctl",
		Short: "Validate parcel product requests offline",
		Long: `parcelctl runs parcel product requests through the same validation
pipeline as the service, using a product catalog from a JSON file.

Examples:
  parcelctl validate --catalog products.json requests.jsonl
  parcelctl validate --catalog products.json --format json request.json
  cat requests.jsonl | parcelctl validate --catalog products.json -`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every pipeline decision to stderr")

	newLogger := func() (ports.Logger, func() error, error) {
		if !verbose {
			return logger.NewFromZap(zap.NewNop()), func() error { return nil }, nil
		}
		zl, cleanup, err := logger.NewZapLogger(false)
		if err != nil {
			return nil, nil, err
		}
		return zl, cleanup, nil
	}

	root.AddCommand(newValidateCmd(newLogger))
	return root
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}
