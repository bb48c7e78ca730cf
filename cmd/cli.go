package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"insulin_advisor/internal/config"
	"insulin_advisor/internal/engine"
	"insulin_advisor/internal/logger"
	"insulin_advisor/internal/repository"
	"insulin_advisor/internal/service"
)

// loadEngine reads and validates the configured dose table. usedDefault is
// true when the file is absent and the built-in table was substituted.
func loadEngine(cfg *config.Config) (eng *engine.Engine, usedDefault bool, err error) {
	table, err := repository.LoadDoseTable(cfg.DoseTable.Path)
	switch {
	case errors.Is(err, repository.ErrNoDoseTable):
		usedDefault = true
	case err != nil:
		return nil, false, err
	}

	bounds := cfg.Bounds()
	if err := table.Validate(bounds); err != nil {
		return nil, usedDefault, err
	}
	return engine.New(table, engine.WithBounds(bounds)), usedDefault, nil
}

func recommendCmd(cfgPath *string) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Compute one recommendation from a JSON request",
		Long:  "Reads a recommendation request (same body as POST /api/v1/recommend) from --input or stdin and prints the result as JSON. Nothing is written to the audit trail.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			eng, usedDefault, err := loadEngine(cfg)
			if err != nil {
				return err
			}
			if usedDefault {
				cmd.PrintErrf("warning: %s not found; using built-in dose table\n", cfg.DoseTable.Path)
			}

			payload, err := readInput(cmd.InOrStdin(), input)
			if err != nil {
				return err
			}

			advisor := service.NewAdvisorService(eng, nil, logger.Nop())
			rec, err := advisor.Recommend(context.Background(), payload, "")
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "-", "Request file, or - for stdin")
	return cmd
}

func checkTableCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check-table",
		Short: "Validate the configured dose table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			eng, usedDefault, err := loadEngine(cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", cfg.DoseTable.Path, err)
			}
			source := cfg.DoseTable.Path
			if usedDefault {
				source = "built-in (" + cfg.DoseTable.Path + " not found)"
			}
			b := eng.Bounds()
			fmt.Fprintf(cmd.OutOrStdout(), "dose table OK: %s, %d rows, levels %d..%d\n", source, eng.Table().Len(), b.Min, b.Max)
			return nil
		},
	}
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return b, nil
}
