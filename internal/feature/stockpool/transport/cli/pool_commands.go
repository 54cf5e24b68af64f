package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *commands) poolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pools",
		Short: "List stock pools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pools, err := c.uc.ListPools(cmd.Context())
			if err != nil {
				return err
			}
			if c.jsonOut {
				return printJSON(cmd.OutOrStdout(), pools)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tENABLED\tPRIORITY\tHOLDING\tCREATED\tDESCRIPTION")
			for _, p := range pools {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\t%s\n",
					p.ID, p.PoolName, yesNo(p.Enabled), p.Priority, yesNo(p.MyHolding), p.CreateTime, p.Description)
			}
			return tw.Flush()
		},
	}
}

func (c *commands) holdingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "holding",
		Short: "Show the id of the pool flagged as my holding",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := c.uc.MyHoldingPoolID(cmd.Context())
			if err != nil {
				return err
			}
			if c.jsonOut {
				return printJSON(cmd.OutOrStdout(), id)
			}
			if id == nil {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "no holding pool")
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatInt(*id, 10))
			return err
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
