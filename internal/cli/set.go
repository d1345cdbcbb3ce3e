package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"feasibility-workers/internal/feasibility"
	"feasibility-workers/internal/models"
)

func init() {
	cmd := &cobra.Command{
		Use:   "set <answers.json> <field> <value>",
		Short: "Apply one field update and print the updated answer-set",
		Long: "Apply one field update and print the updated answer-set. Values of non-text fields " +
			"are read as JSON: 1200, true, [\"Paris\",\"Lyon\"].",
		Args: cobra.ExactArgs(3),
		Run:  runSet,
	}
	cmd.Flags().BoolP("write", "w", false, "Write the result back to the answers file")
	RootCmd.AddCommand(cmd)
}

func runSet(cmd *cobra.Command, args []string) {
	set, err := readAnswerSet(cmd.InOrStdin(), args[0])
	if err != nil {
		exitErr("read answers", err)
	}

	updated, err := setField(set, args[1], args[2])
	if err != nil {
		exitErr("set "+args[1], err)
	}

	write, _ := cmd.Flags().GetBool("write")
	if write && args[0] != "-" {
		if err := writeAnswerSet(args[0], updated); err != nil {
			exitErr("write answers", err)
		}
	}
	if err := printJSON(cmd.OutOrStdout(), updated); err != nil {
		exitErr("set", err)
	}
}

func setField(set models.AnswerSet, name, raw string) (models.AnswerSet, error) {
	f, err := feasibility.ParseField(name)
	if err != nil {
		return set, err
	}
	return feasibility.ApplyFieldUpdate(set, f, parseValue(f, raw))
}

// parseValue keeps text fields verbatim and decodes the others as JSON.
// Undecodable input is passed on as a string so the update reports the
// type mismatch.
func parseValue(f feasibility.Field, raw string) any {
	if f.Kind() == feasibility.KindString {
		return raw
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}

func writeAnswerSet(path string, set models.AnswerSet) error {
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
