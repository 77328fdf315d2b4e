// Package cli provides the command-line interface for the payoff simulator.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apperrors "optionsim/internal/errors"
)

// strategyInfo describes a supported strategy for the reference commands.
type strategyInfo struct {
	Name      string
	Command   string
	Aliases   []string
	Outlook   string
	Risk      string
	Reward    string
	Legs      []string
	Behavior  []string
	WhenToUse []string
	Examples  []string
}

var strategyCatalog = []strategyInfo{
	{
		Name:    "Bull Call Spread",
		Command: "bull-call-spread",
		Aliases: []string{"bcs"},
		Outlook: "Moderately bullish",
		Risk:    "Limited",
		Reward:  "Limited",
		Legs: []string{
			"BUY  CALL at lower strike",
			"SELL CALL at higher strike",
		},
		Behavior: []string{
			"Costs a net debit: premium paid minus premium received.",
			"Max loss is the net debit, taken below the lower strike.",
			"Max profit is the strike width minus the debit, above the higher strike.",
			"Single breakeven at the lower strike plus the net debit.",
		},
		WhenToUse: []string{
			"You expect a moderate rise in the underlying by expiry.",
			"You want to cut the cost of a long call by capping the upside.",
		},
		Examples: []string{
			"optsim payoff bull-call-spread --buy-strike 100 --buy-premium 5 --sell-strike 110 --sell-premium 2",
			"optsim payoff bcs --symbol NIFTY --lots 2 --chart",
		},
	},
	{
		Name:    "Iron Condor",
		Command: "iron-condor",
		Aliases: []string{"ic"},
		Outlook: "Neutral, range-bound",
		Risk:    "Limited",
		Reward:  "Limited",
		Legs: []string{
			"BUY  PUT  at lowest strike (wing)",
			"SELL PUT  at lower-middle strike",
			"SELL CALL at upper-middle strike",
			"BUY  CALL at highest strike (wing)",
		},
		Behavior: []string{
			"Collects a net credit from the two short strikes.",
			"Keeps the full credit while the spot expires between the short strikes.",
			"Max loss is the wing width minus the credit, beyond either wing.",
			"Two breakevens: short put minus credit, and short call plus credit.",
		},
		WhenToUse: []string{
			"You expect the underlying to stay inside a range through expiry.",
			"You want defined-risk premium income instead of naked strangles.",
		},
		Examples: []string{
			"optsim payoff iron-condor --buy-put-strike 90 --sell-put-strike 100 --sell-call-strike 110 --buy-call-strike 120",
			"optsim payoff ic --symbol BANKNIFTY --chart",
		},
	},
}

// addStrategyCommands adds strategy reference commands.
func addStrategyCommands(rootCmd *cobra.Command, app *App) {
	strategiesCmd := &cobra.Command{
		Use:   "strategies",
		Short: "Describe supported option strategies",
		Long:  "List the supported option strategies, their leg structure, and when to use them.",
	}

	strategiesCmd.AddCommand(newStrategiesListCmd(app))
	strategiesCmd.AddCommand(newStrategiesShowCmd(app))
	rootCmd.AddCommand(strategiesCmd)
}

func newStrategiesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List supported strategies",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(strategyCatalog)
			}

			output.Bold("Supported Strategies")
			output.Println()

			table := NewTable(output, "Strategy", "Command", "Legs", "Outlook", "Risk", "Reward")
			for _, info := range strategyCatalog {
				table.AddRow(
					info.Name,
					output.Cyan(info.Command),
					fmt.Sprintf("%d", len(info.Legs)),
					info.Outlook,
					info.Risk,
					info.Reward,
				)
			}
			table.Render()
			output.Println()

			output.Dim("Use 'optsim strategies show <command>' for leg structure and usage")
			return nil
		},
	}
}

func newStrategiesShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <strategy>",
		Short: "Show strategy details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			info := lookupStrategy(args[0])
			if info == nil {
				output.Error("Unknown strategy %q. Run 'optsim strategies list' to see supported strategies.", args[0])
				return apperrors.Wrapf(apperrors.ErrUnknownStrategy, "%s", args[0])
			}

			if output.IsJSON() {
				return output.JSON(info)
			}

			output.Bold(info.Name)
			output.Printf("  Outlook: %s\n", info.Outlook)
			output.Printf("  Risk:    %s   Reward: %s\n", info.Risk, info.Reward)
			output.Println()

			output.Bold("Legs")
			for _, leg := range info.Legs {
				output.Printf("  %s\n", leg)
			}
			output.Println()

			output.Bold("Behavior at Expiry")
			for _, line := range info.Behavior {
				output.Printf("  %s\n", line)
			}
			output.Println()

			output.Bold("When to Use")
			for _, line := range info.WhenToUse {
				output.Printf("  %s %s\n", output.Cyan("→"), line)
			}
			output.Println()

			output.Bold("Examples")
			for _, example := range info.Examples {
				output.Printf("  %s\n", output.Cyan(example))
			}

			return nil
		},
	}
}

func lookupStrategy(name string) *strategyInfo {
	needle := strings.ToLower(strings.TrimSpace(name))
	for i := range strategyCatalog {
		info := &strategyCatalog[i]
		if info.Command == needle {
			return info
		}
		for _, alias := range info.Aliases {
			if alias == needle {
				return info
			}
		}
	}
	return nil
}
