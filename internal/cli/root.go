// Package cli implements the feasibility command line: scoring, field
// updates, PDF rendering and share links on local answer-set files.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"feasibility-workers/internal/models"
	"feasibility-workers/internal/session"
)

var (
	brandFlag    string
	currencyFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "feasibility",
	Short: "Business feasibility questionnaire tools",
	Long:  "Scores a questionnaire answer-set, applies field updates, renders the feasibility and summary PDFs and builds share links.",
}

func init() {
	RootCmd.PersistentFlags().StringVar(&brandFlag, "brand", "", "Brand name printed on documents and share messages")
	RootCmd.PersistentFlags().StringVar(&currencyFlag, "currency", "", "Currency label used in documents (default EUR)")
}

// readAnswerSet loads an answer-set file; "-" reads stdin.
func readAnswerSet(in io.Reader, path string) (models.AnswerSet, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return models.AnswerSet{}, err
	}
	return session.DecodeAnswerSet(data)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
