package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vnykmshr/shellkit/pkg/format"
)

func newFormatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format",
		Short: "Run the display formatting helpers",
	}
	cmd.AddCommand(newFormatTimeCmd(), newFormatNumberCmd(), newFormatByteLenCmd())
	return cmd
}

func newFormatTimeCmd() *cobra.Command {
	var layout, tz string

	cmd := &cobra.Command{
		Use:   "time <unix-ms>...",
		Short: "Format Unix millisecond timestamps",
		Example: `  shellkit format time 1709294400000
  shellkit format time --layout "YY/M/D HH:mm" --tz Asia/Shanghai 1709294400000`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := time.Local
			if tz != "" {
				l, err := time.LoadLocation(tz)
				if err != nil {
					return fmt.Errorf("invalid time zone %q: %w", tz, err)
				}
				loc = l
			}

			for _, arg := range args {
				ms, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid timestamp %q: %w", arg, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), format.FormatTimeIn(ms, layout, loc))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&layout, "layout", format.DefaultLayout, "token layout (Y M D H m s)")
	cmd.Flags().StringVar(&tz, "tz", "", "IANA time zone (default: local)")
	return cmd
}

func newFormatNumberCmd() *cobra.Command {
	var (
		group int
		delim string
	)

	cmd := &cobra.Command{
		Use:   "number <value>...",
		Short: "Group digits with a delimiter",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				fmt.Fprintln(cmd.OutOrStdout(), format.FormatNumber(arg, group, delim))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&group, "group", format.DefaultGroup, "digits per group")
	cmd.Flags().StringVar(&delim, "delim", format.DefaultDelimiter, "group delimiter")
	return cmd
}

func newFormatByteLenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bytelen <text>...",
		Short: "Print the display length of text (wide characters count 2)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				fmt.Fprintln(cmd.OutOrStdout(), format.ByteLen(arg))
			}
			return nil
		},
	}
}
