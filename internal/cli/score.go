package cli

import (
	"io"

	"github.com/spf13/cobra"

	"feasibility-workers/internal/document"
	"feasibility-workers/internal/feasibility"
	"feasibility-workers/internal/models"
)

type scoreReport struct {
	Score           int                   `json:"feasibilityScore"`
	Tier            feasibility.Tier      `json:"scoreTier"`
	Breakdown       feasibility.Breakdown `json:"scoreBreakdown"`
	Recommendations []string              `json:"recommendations"`
}

func init() {
	cmd := &cobra.Command{
		Use:   "score <answers.json>",
		Short: "Print the feasibility score of an answer-set",
		Args:  cobra.ExactArgs(1),
		Run:   runScore,
	}
	RootCmd.AddCommand(cmd)
}

func runScore(cmd *cobra.Command, args []string) {
	set, err := readAnswerSet(cmd.InOrStdin(), args[0])
	if err != nil {
		exitErr("read answers", err)
	}
	if err := writeScore(cmd.OutOrStdout(), set); err != nil {
		exitErr("score", err)
	}
}

func writeScore(w io.Writer, set models.AnswerSet) error {
	breakdown := feasibility.ScoreBreakdown(set)
	recs := document.Recommendations(breakdown.Total)
	return printJSON(w, scoreReport{
		Score:           breakdown.Total,
		Tier:            feasibility.TierFor(breakdown.Total),
		Breakdown:       breakdown,
		Recommendations: recs[:],
	})
}
