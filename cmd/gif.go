package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JPM1118/cimcheck/internal/gifcheck"
	"github.com/JPM1118/cimcheck/internal/logger"
)

// ErrGIFInvalid is returned by the gif command after the FAIL line is printed.
var ErrGIFInvalid = errors.New("gif structure invalid")

var noDecode bool

var gifCmd = &cobra.Command{
	Use:   "gif <path> [expectedSize]",
	Short: "Validate the structure of an animated CimBar GIF",
	Long: `Checks the GIF89a signature, the logical screen size, the global color
table flag and, unless --no-decode is given, the frame count and the
CimBar base palette.

expectedSize defaults to gif.expected_size from the config (256).`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		size := cfg.GIF.ExpectedSize
		if len(args) > 1 {
			n, err := parseSize(args[1])
			if err != nil {
				return err
			}
			size = n
		}

		out := cmd.OutOrStdout()
		v := gifcheck.New(out)
		if noDecode {
			v.Decoder = nil
		}

		report, err := v.Validate(args[0], size)
		gifcheck.PrintResult(out, err)
		if skipped := report.Skipped(); len(skipped) > 0 {
			logger.Info("gif checks skipped", zap.String("path", args[0]), zap.Strings("checks", skipped))
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrGIFInvalid, err)
		}
		return nil
	},
}

func init() {
	gifCmd.Flags().BoolVar(&noDecode, "no-decode", false, "skip the frame and palette checks")
	rootCmd.AddCommand(gifCmd)
}

// parseSize accepts the side length of the square canvas in pixels.
func parseSize(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid expectedSize %q: not an integer", s)
	}
	if n < 1 || n > 0xFFFF {
		return 0, fmt.Errorf("invalid expectedSize %d: must be between 1 and 65535", n)
	}
	return n, nil
}
