package cmd

import (
	"strconv"
	"strings"

	"github.com/huangsam/whatsmygrade/core"
	"github.com/huangsam/whatsmygrade/internal/contract"
	"github.com/spf13/cobra"
)

// evalCmd evaluates one grade expression.
var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate a single grade expression.",
	Long: `Evaluate a grade expression the same way a grade file value is evaluated.

Examples:
  whatsmygrade eval '27/40'
  whatsmygrade eval '86.2%'
  whatsmygrade eval 'grade_multiple([8, 6, 7, 9], out_of=10, drop_worst=1)'`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return sharedSetup(rootCtx, cmd, nil)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := contract.NewLogger(cmd.ErrOrStderr(), cfg.Debug)
		v, err := core.NewService(logger).Evaluate(rootCtx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		cmd.Println(strconv.FormatFloat(v, 'f', -1, 64))
		return nil
	},
}
