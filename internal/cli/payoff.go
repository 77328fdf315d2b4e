// Package cli provides the command-line interface for the payoff simulator.
package cli

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	apperrors "optionsim/internal/errors"
	"optionsim/internal/export"
	"optionsim/internal/logging"
	"optionsim/internal/models"
	"optionsim/internal/payoff"
)

// addPayoffCommands adds payoff simulation commands.
func addPayoffCommands(rootCmd *cobra.Command, app *App) {
	payoffCmd := &cobra.Command{
		Use:   "payoff",
		Short: "Simulate option strategy payoffs at expiry",
		Long: `Simulate option strategy payoffs across a spot-price grid.

Each simulation reports maximum profit, maximum loss, and breakeven
points, with an optional ASCII chart and CSV export of the full curve.`,
	}

	payoffCmd.AddCommand(newBullCallSpreadCmd(app))
	payoffCmd.AddCommand(newIronCondorCmd(app))
	rootCmd.AddCommand(payoffCmd)
}

func newBullCallSpreadCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bull-call-spread",
		Aliases: []string{"bcs"},
		Short:   "Simulate a bull call spread",
		Long: `Simulate a bull call spread: buy a call at a lower strike and sell
a call at a higher strike, for a net debit.

The position profits when the underlying closes above the lower strike
plus the debit, with gains capped above the higher strike.`,
		Example: `  optsim payoff bull-call-spread --buy-strike 100 --buy-premium 5 --sell-strike 110 --sell-premium 2
  optsim payoff bcs --symbol NIFTY --buy-strike 22400 --buy-premium 150 --sell-strike 22600 --sell-premium 80 --chart --grid-max 25000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			buyStrike, _ := cmd.Flags().GetFloat64("buy-strike")
			buyPremium, _ := cmd.Flags().GetFloat64("buy-premium")
			sellStrike, _ := cmd.Flags().GetFloat64("sell-strike")
			sellPremium, _ := cmd.Flags().GetFloat64("sell-premium")

			lotSize, symbol, err := resolveLotSize(app, cmd, output)
			if err != nil {
				return err
			}

			strategy := models.BullCallSpread{
				BuyCallStrike:   buyStrike,
				BuyCallPremium:  buyPremium,
				SellCallStrike:  sellStrike,
				SellCallPremium: sellPremium,
				LotSize:         lotSize,
			}

			return runSimulation(app, cmd, output, strategy, symbol)
		},
	}

	cmd.Flags().Float64("buy-strike", 100, "strike of the bought call")
	cmd.Flags().Float64("buy-premium", 5, "premium paid for the bought call")
	cmd.Flags().Float64("sell-strike", 110, "strike of the sold call")
	cmd.Flags().Float64("sell-premium", 2, "premium received for the sold call")
	addSimulationFlags(cmd, app)

	return cmd
}

func newIronCondorCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "iron-condor",
		Aliases: []string{"ic"},
		Short:   "Simulate an iron condor",
		Long: `Simulate an iron condor: sell a put spread below the spot and a call
spread above it, for a net credit.

The position keeps the full credit while the underlying stays between
the short strikes, with losses capped by the bought wings.`,
		Example: `  optsim payoff iron-condor --buy-put-strike 90 --sell-put-strike 100 --sell-call-strike 110 --buy-call-strike 120
  optsim payoff ic --symbol BANKNIFTY --buy-put-strike 47000 --sell-put-strike 47500 --sell-call-strike 48500 --buy-call-strike 49000 --chart --grid-max 60000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			buyPutStrike, _ := cmd.Flags().GetFloat64("buy-put-strike")
			buyPutPremium, _ := cmd.Flags().GetFloat64("buy-put-premium")
			sellPutStrike, _ := cmd.Flags().GetFloat64("sell-put-strike")
			sellPutPremium, _ := cmd.Flags().GetFloat64("sell-put-premium")
			sellCallStrike, _ := cmd.Flags().GetFloat64("sell-call-strike")
			sellCallPremium, _ := cmd.Flags().GetFloat64("sell-call-premium")
			buyCallStrike, _ := cmd.Flags().GetFloat64("buy-call-strike")
			buyCallPremium, _ := cmd.Flags().GetFloat64("buy-call-premium")

			lotSize, symbol, err := resolveLotSize(app, cmd, output)
			if err != nil {
				return err
			}

			strategy := models.IronCondor{
				BuyPutStrike:    buyPutStrike,
				BuyPutPremium:   buyPutPremium,
				SellPutStrike:   sellPutStrike,
				SellPutPremium:  sellPutPremium,
				SellCallStrike:  sellCallStrike,
				SellCallPremium: sellCallPremium,
				BuyCallStrike:   buyCallStrike,
				BuyCallPremium:  buyCallPremium,
				LotSize:         lotSize,
			}

			return runSimulation(app, cmd, output, strategy, symbol)
		},
	}

	cmd.Flags().Float64("buy-put-strike", 90, "strike of the bought put")
	cmd.Flags().Float64("buy-put-premium", 2, "premium paid for the bought put")
	cmd.Flags().Float64("sell-put-strike", 100, "strike of the sold put")
	cmd.Flags().Float64("sell-put-premium", 5, "premium received for the sold put")
	cmd.Flags().Float64("sell-call-strike", 110, "strike of the sold call")
	cmd.Flags().Float64("sell-call-premium", 5, "premium received for the sold call")
	cmd.Flags().Float64("buy-call-strike", 120, "strike of the bought call")
	cmd.Flags().Float64("buy-call-premium", 2, "premium paid for the bought call")
	addSimulationFlags(cmd, app)

	return cmd
}

// addSimulationFlags adds the flags shared by all payoff subcommands.
func addSimulationFlags(cmd *cobra.Command, app *App) {
	cmd.Flags().Int("lots", 1, "number of lots")
	cmd.Flags().StringP("symbol", "s", "", "underlying symbol for lot size lookup (e.g. NIFTY)")
	cmd.Flags().Int("points", app.Config.Grid.Points, "number of spot-price samples")
	cmd.Flags().Float64("grid-min", app.Config.Grid.Min, "lowest spot price sampled")
	cmd.Flags().Float64("grid-max", app.Config.Grid.Max, "highest spot price sampled")
	cmd.Flags().Float64("tolerance", app.Config.Defaults.Tolerance, "minimum payoff change across a step for breakeven detection")
	cmd.Flags().Bool("chart", false, "draw an ASCII payoff chart")
	cmd.Flags().String("csv", "", "export the payoff curve to a CSV file")
}

// resolveLotSize returns lots times the contract lot size for --symbol,
// or lots times the configured default when no symbol is given.
func resolveLotSize(app *App, cmd *cobra.Command, output *Output) (int, string, error) {
	lots, _ := cmd.Flags().GetInt("lots")
	symbol, _ := cmd.Flags().GetString("symbol")
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	multiplier := app.Config.Defaults.LotSize
	if symbol != "" {
		if app.Store == nil {
			output.Warning("Contract store unavailable, using default lot size")
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			spec, err := app.Store.GetContractSpec(ctx, symbol)
			if err != nil {
				output.Error("Failed to look up %s: %v", symbol, err)
				return 0, "", err
			}
			if spec == nil {
				output.Error("Unknown symbol %s. Run 'optsim contracts list' to see available symbols.", symbol)
				return 0, "", apperrors.Wrapf(apperrors.ErrSymbolNotFound, "%s", symbol)
			}
			multiplier = spec.LotSize
		}
	}

	return lots * multiplier, symbol, nil
}

func runSimulation(app *App, cmd *cobra.Command, output *Output, strategy models.Strategy, symbol string) error {
	points, _ := cmd.Flags().GetInt("points")
	gridMin, _ := cmd.Flags().GetFloat64("grid-min")
	gridMax, _ := cmd.Flags().GetFloat64("grid-max")
	tolerance, _ := cmd.Flags().GetFloat64("tolerance")
	showChart, _ := cmd.Flags().GetBool("chart")
	csvPath, _ := cmd.Flags().GetString("csv")

	spots := payoff.Grid(points, gridMin, gridMax)
	if spots == nil {
		output.Error("Invalid grid: need at least 2 points with grid-min below grid-max")
		return apperrors.Wrapf(apperrors.ErrInvalidGrid, "points=%d min=%v max=%v", points, gridMin, gridMax)
	}

	start := time.Now()
	result, curve, err := payoff.Evaluate(strategy, spots, tolerance)
	if err != nil {
		logging.LogValidationFailure(app.Logger, string(strategy.Kind()), err)
		output.Error("Invalid strategy: %v", err)
		return err
	}

	logging.LogComputation(app.Logger, string(result.Kind), result.LotSize, len(spots),
		len(result.Breakevens), result.MaxProfit, result.MaxLoss, time.Since(start))

	if csvPath != "" {
		n, err := export.WriteCurveCSV(csvPath, spots, curve)
		if err != nil {
			output.Error("Failed to export curve: %v", err)
			return err
		}
		output.Success("✓ Exported %d curve points to %s", n, csvPath)
	}

	if output.IsJSON() {
		return output.JSON(result)
	}

	return displayStrategyResult(output, app, result, strategy, spots, curve, symbol, showChart)
}

func displayStrategyResult(output *Output, app *App, result models.StrategyResult, strategy models.Strategy, spots, curve []float64, symbol string, showChart bool) error {
	title := strategyTitle(result.Kind)
	if symbol != "" {
		title = fmt.Sprintf("%s %s", symbol, title)
	}
	output.Bold(title)
	output.Println()

	table := NewTable(output, "#", "Side", "Type", "Strike", "Premium")
	for i, leg := range result.Legs {
		side := output.Green(string(leg.Side))
		if leg.Side == models.OrderSideSell {
			side = output.Red(string(leg.Side))
		}
		table.AddRow(
			fmt.Sprintf("%d", i+1),
			side,
			leg.Type,
			FormatPrice(leg.Strike),
			FormatIndianCurrency(leg.Premium),
		)
	}
	table.Render()
	output.Println()

	content := []string{
		fmt.Sprintf("Max Profit:  %s", output.FormatPnL(result.MaxProfit)),
		fmt.Sprintf("Max Loss:    %s", output.FormatPnL(result.MaxLoss)),
		fmt.Sprintf("Net Premium: %s", formatNetPremium(output, result.NetPremium, result.LotSize)),
		fmt.Sprintf("Breakevens:  %s", formatBreakevens(result.Breakevens)),
	}
	if result.MaxLoss < 0 {
		content = append(content, fmt.Sprintf("Reward/Risk: %s", output.FormatPercent(result.MaxProfit/(-result.MaxLoss)*100)))
	}
	if result.LotSize > 1 {
		content = append(content, fmt.Sprintf("Multiplier:  %s units/point", FormatQuantity(int64(result.LotSize))))
	}
	output.Box("Payoff Summary", content)
	output.Println()

	displayKeyLevels(output, strategy, spots)

	if showChart {
		output.Bold("Payoff at Expiry")
		RenderPayoffChart(output, spots, curve, result.Breakevens, app.Config.Display.ChartWidth, app.Config.Display.ChartHeight)
		output.Println()
	}

	return nil
}

func strategyTitle(kind models.StrategyKind) string {
	switch kind {
	case models.StrategyBullCallSpread:
		return "Bull Call Spread"
	case models.StrategyIronCondor:
		return "Iron Condor"
	}
	return string(kind)
}

func formatNetPremium(output *Output, net float64, lotSize int) string {
	if net == 0 {
		return FormatIndianCurrency(0)
	}
	label := "credit"
	color := ColorGreen
	if net < 0 {
		label = "debit"
		color = ColorRed
	}
	s := fmt.Sprintf("%s %s", FormatIndianCurrency(math.Abs(net)), label)
	if lotSize > 1 {
		s += fmt.Sprintf(" (%s total)", FormatCompact(math.Abs(net)*float64(lotSize)))
	}
	return output.ColoredString(color, s)
}

func formatBreakevens(breakevens []float64) string {
	if len(breakevens) == 0 {
		return "none in grid range"
	}
	parts := make([]string, len(breakevens))
	for i, be := range breakevens {
		parts[i] = FormatPrice(be)
	}
	return strings.Join(parts, ", ")
}

// displayKeyLevels prints the payoff at the grid edges and at each strike.
func displayKeyLevels(output *Output, strategy models.Strategy, spots []float64) {
	levels := []float64{spots[0]}
	levels = append(levels, strategy.Strikes()...)
	levels = append(levels, spots[len(spots)-1])
	sort.Float64s(levels)

	uniq := make([]float64, 0, len(levels))
	for _, level := range levels {
		if len(uniq) == 0 || level != uniq[len(uniq)-1] {
			uniq = append(uniq, level)
		}
	}

	curve, err := payoff.Curve(strategy, uniq)
	if err != nil {
		return
	}

	output.Bold("Payoff at Key Levels")
	table := NewTable(output, "Spot", "Payoff")
	for i, level := range uniq {
		table.AddRow(FormatPrice(level), output.FormatPnL(curve[i]))
	}
	table.Render()
	output.Println()
}
