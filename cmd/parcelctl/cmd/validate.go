package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gunvolt24/parcel_product/internal/batch"
	"github.com/Gunvolt24/parcel_product/internal/ports"
	"github.com/Gunvolt24/parcel_product/internal/repo/catalog"
	"github.com/Gunvolt24/parcel_product/internal/usecase"
)

// ErrNotAllAccepted — хотя бы один запрос отклонён или упал.
var ErrNotAllAccepted = errors.New("not all requests accepted")

func newValidateCmd(newLogger func() (ports.Logger, func() error, error)) *cobra.Command {
	var (
		catalogPath string
		format      string
	)

	c := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate requests from a JSON or JSONL file",
		Long: `Validate every request in the file and print one JSON report per request.

The file is a single JSON request, a JSON array of requests, or JSONL
(one request per line). "-" or no argument reads JSONL from stdin.
Exit status is non-zero when any request is rejected or faulted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) > 0 {
				path = args[0]
			}

			inputFormat, err := batch.ParseFormat(format)
			if err != nil {
				return err
			}

			cat, err := catalog.Open(catalogPath)
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}

			log, cleanup, err := newLogger()
			if err != nil {
				return err
			}
			defer func() { _ = cleanup() }()

			svc := usecase.NewParcelService(cat, log)
			sum, err := batch.ValidateFile(cmd.Context(), svc, path, inputFormat, cmd.OutOrStdout())
			if err != nil {
				return fmt.Errorf("validation: %w (%s)", err, sum)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "catalog: %d products; %s\n", cat.Len(), sum)
			if sum.Accepted != sum.Total() {
				return ErrNotAllAccepted
			}
			return nil
		},
	}

	c.Flags().StringVarP(&catalogPath, "catalog", "c", "", "path to product catalog (JSON array of {code,name,value})")
	c.Flags().StringVarP(&format, "format", "f", string(batch.FormatAuto), "input format: auto|json|jsonl")
	_ = c.MarkFlagRequired("catalog")

	return c
}
