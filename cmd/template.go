package cmd

import (
	"github.com/spf13/cobra"
)

// exampleGradeFile is printed by the template command.
const exampleGradeFile = `# Lines starting with '#' are comments.
# Section names are case-insensitive and may come in any order.

[breakdown]
# Weights do not have to add up to 100%.
final: 35%
midterm 1: 20%
midterm 2: 20%
homework: 25%

[grades]
# Every category in the breakdown needs a grade, or "unknown" if it is not graded yet.
final: unknown
midterm 1: 27/40
midterm 2: 86.2%
# grade_multiple(scores, out_of, drop_worst=0, use_best=all)
homework: grade_multiple([8, 6, 7, 9, 10, 7, 10], out_of=10, drop_worst=1)
# grade_parts((earned, total), ...) sums the earned points over the total points.
# project: grade_parts((18, 20), (45, 50))

[config]
# Defaults to 50% when omitted.
passing_grade: 50%
`

// templateCmd prints an annotated grade file to start from.
var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print an annotated example grade file.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Print(exampleGradeFile)
	},
}
