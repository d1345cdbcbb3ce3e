package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"feasibility-workers/internal/document"
	"feasibility-workers/internal/models"
)

func init() {
	cmd := &cobra.Command{
		Use:   "render <answers.json>",
		Short: "Render the feasibility test or the operational summary as a PDF",
		Args:  cobra.ExactArgs(1),
		Run:   runRender,
	}
	cmd.Flags().StringP("type", "t", string(document.TypeFeasibility), "Document type: feasibility or summary")
	cmd.Flags().StringP("out", "o", ".", "Output directory")
	RootCmd.AddCommand(cmd)
}

func runRender(cmd *cobra.Command, args []string) {
	typ, _ := cmd.Flags().GetString("type")
	out, _ := cmd.Flags().GetString("out")

	set, err := readAnswerSet(cmd.InOrStdin(), args[0])
	if err != nil {
		exitErr("read answers", err)
	}

	res, path, err := renderToDir(set, typ, out, document.Config{BrandName: brandFlag, Currency: currencyFlag})
	if err != nil {
		exitErr("render", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d pages, score %d)\n", path, res.Pages, res.Score)
}

// renderToDir writes the document under its derived filename in dir.
func renderToDir(set models.AnswerSet, typ, dir string, cfg document.Config) (*document.Result, string, error) {
	t, err := document.ParseDocumentType(typ)
	if err != nil {
		return nil, "", err
	}

	res, err := document.NewRenderer(cfg).Render(set, t)
	if err != nil {
		return nil, "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", err
	}
	path := filepath.Join(dir, res.Filename)
	if err := os.WriteFile(path, res.Bytes, 0o644); err != nil {
		return nil, "", err
	}
	return res, path, nil
}
