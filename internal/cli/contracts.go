// Package cli provides the command-line interface for the payoff simulator.
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	apperrors "optionsim/internal/errors"
)

// addContractCommands adds contract specification commands.
func addContractCommands(rootCmd *cobra.Command, app *App) {
	contractsCmd := &cobra.Command{
		Use:   "contracts",
		Short: "Manage F&O contract specifications",
		Long:  "View and refresh the lot sizes and strike steps used for --symbol lookups.",
	}

	contractsCmd.AddCommand(newContractsListCmd(app))
	contractsCmd.AddCommand(newContractsShowCmd(app))
	contractsCmd.AddCommand(newContractsSeedCmd(app))
	rootCmd.AddCommand(contractsCmd)
}

func newContractsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List contract specifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return fmt.Errorf("contract store not initialized")
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			specs, err := app.Store.ListContractSpecs(ctx)
			if err != nil {
				return err
			}

			fmt.Println()
			color.Cyan("📜 Contract Specifications")
			fmt.Println("─────────────────────────────────────────")
			fmt.Printf("%-12s %-32s %-8s %10s %8s %12s\n", "Symbol", "Name", "Exchange", "Lot Size", "Tick", "Strike Step")
			fmt.Println("─────────────────────────────────────────────────────────────────────────────────")
			for _, spec := range specs {
				fmt.Printf("%-12s %-32s %-8s %10s %8.2f %12.0f\n",
					spec.Symbol,
					TruncateString(spec.Name, 32),
					spec.Exchange,
					FormatQuantity(int64(spec.LotSize)),
					spec.TickSize,
					spec.StrikeStep,
				)
			}
			fmt.Println()

			color.Yellow("💡 Use --symbol with 'optsim payoff' to apply a contract's lot size")
			return nil
		},
	}
}

func newContractsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <symbol>",
		Short: "Show a contract specification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return fmt.Errorf("contract store not initialized")
			}

			symbol := strings.ToUpper(strings.TrimSpace(args[0]))

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			spec, err := app.Store.GetContractSpec(ctx, symbol)
			if err != nil {
				return err
			}
			if spec == nil {
				color.Yellow("⚠️ No contract spec for %s", symbol)
				return apperrors.Wrapf(apperrors.ErrSymbolNotFound, "%s", symbol)
			}

			fmt.Println()
			color.Cyan("📄 Contract Spec - %s", spec.Symbol)
			fmt.Println("─────────────────────────────────────────")
			fmt.Printf("Name:        %s\n", spec.Name)
			fmt.Printf("Exchange:    %s\n", spec.Exchange)
			fmt.Printf("Lot Size:    %s\n", FormatQuantity(int64(spec.LotSize)))
			fmt.Printf("Tick Size:   %.2f\n", spec.TickSize)
			fmt.Printf("Strike Step: %.0f\n", spec.StrikeStep)
			fmt.Printf("Updated:     %s\n", spec.UpdatedAt.Format("02-Jan-2006"))
			fmt.Println()

			color.Green("✓ 1 lot of %s multiplies payoff by %d", spec.Symbol, spec.LotSize)
			return nil
		},
	}
}

func newContractsSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Restore the bundled contract specifications",
		Long:  "Overwrite stored contract specs with the bundled exchange defaults.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return fmt.Errorf("contract store not initialized")
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			count, err := app.Store.SeedContractSpecs(ctx)
			if err != nil {
				return err
			}

			color.Green("✓ Seeded %d contract specs", count)
			return nil
		},
	}
}
