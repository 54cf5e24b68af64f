package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"stockpool/internal/feature/stockpool/domain/entity"
)

func (c *commands) stocksCommand() *cobra.Command {
	var withIndicators bool

	cmd := &cobra.Command{
		Use:   "stocks <poolId>",
		Short: "List the stocks of a pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			poolID, err := parsePoolID(args[0])
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			if !withIndicators {
				stocks, err := c.uc.ListStocks(cmd.Context(), poolID)
				if err != nil {
					return err
				}
				if c.jsonOut {
					return printJSON(cmd.OutOrStdout(), stocks)
				}
				fmt.Fprintln(tw, "POS\tCODE\tNAME\tENTRY\tBUY POINT\tDAYS\tSIGNAL\tWEEKLY CCI\tFROZEN\tREMARKS")
				for _, s := range stocks {
					fmt.Fprintln(tw, stockColumns(s))
				}
				return tw.Flush()
			}

			rows, err := c.uc.ListStocksWithIndicators(cmd.Context(), poolID)
			if err != nil {
				return err
			}
			if c.jsonOut {
				return printJSON(cmd.OutOrStdout(), rows)
			}
			fmt.Fprintln(tw, "POS\tCODE\tNAME\tENTRY\tBUY POINT\tDAYS\tSIGNAL\tWEEKLY CCI\tFROZEN\tREMARKS\t120M SIGNAL\t120M CCI")
			for _, r := range rows {
				signal, cci := "-", "-"
				if r.Indicator != nil {
					signal, cci = r.Indicator.StockStrengthSignal, r.Indicator.CCI1
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", stockColumns(r.StockInfo), signal, cci)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&withIndicators, "indicators", false, "join the 120-minute indicators")
	return cmd
}

func (c *commands) indicatorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "indicators <poolId>",
		Short: "Show the 120-minute indicators of a pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			poolID, err := parsePoolID(args[0])
			if err != nil {
				return err
			}
			indicators, err := c.uc.ListIndicators(cmd.Context(), poolID)
			if err != nil {
				return err
			}
			if c.jsonOut {
				return printJSON(cmd.OutOrStdout(), indicators)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tSIGNAL\tCCI")
			for _, ind := range indicators {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", ind.StockCode, ind.StockStrengthSignal, ind.CCI1)
			}
			return tw.Flush()
		},
	}
}

func (c *commands) addCommand() *cobra.Command {
	var remark string

	cmd := &cobra.Command{
		Use:   "add <poolId> <stockCode>",
		Short: "Add a stock to a pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			poolID, err := parsePoolID(args[0])
			if err != nil {
				return err
			}
			if err := c.uc.AddStock(cmd.Context(), poolID, args[1], remark); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "added %s to pool %d\n", args[1], poolID)
			return err
		},
	}
	cmd.Flags().StringVar(&remark, "remark", "", "optional note attached to the stock")
	return cmd
}

func (c *commands) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <poolId> <stockCode>",
		Short: "Remove a stock from a pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			poolID, err := parsePoolID(args[0])
			if err != nil {
				return err
			}
			if err := c.uc.RemoveStock(cmd.Context(), poolID, args[1]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed %s from pool %d\n", args[1], poolID)
			return err
		},
	}
}

// freezeCommand は freeze / unfreeze コマンドを生成します。
func (c *commands) freezeCommand(freeze bool) *cobra.Command {
	use, short, done := "unfreeze", "Unfreeze a stock", "unfrozen"
	op := c.uc.Unfreeze
	if freeze {
		use, short, done = "freeze", "Freeze a stock", "frozen"
		op = c.uc.Freeze
	}

	return &cobra.Command{
		Use:   use + " <symbol>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := op(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", args[0], done)
			return err
		},
	}
}

func (c *commands) remarksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remarks <stockCode>",
		Short: "Show the remarks recorded for a stock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			remarks, err := c.uc.Remarks(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if c.jsonOut {
				return printJSON(cmd.OutOrStdout(), remarks)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n%s\n", remarks.Symbol, remarks.CreateTime, remarks.Remarks)
			return err
		},
	}
}

func stockColumns(s entity.StockInfo) string {
	buyPoint, days := "-", "-"
	if s.BuyPointDate != nil {
		buyPoint = *s.BuyPointDate
	}
	if s.TheNumberOfDaysFromToday != nil {
		days = strconv.Itoa(*s.TheNumberOfDaysFromToday)
	}
	return fmt.Sprintf("%d\t%s\t%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s",
		s.Position, s.StockCode, s.StockName, s.EntryTime, buyPoint, days,
		s.StockStrengthSignal, strconv.FormatFloat(s.WeeklyCCI1, 'f', 2, 64), yesNo(s.Frozen), yesNo(s.HasRemarks))
}
