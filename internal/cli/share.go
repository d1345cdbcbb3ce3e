package cli

import (
	"github.com/spf13/cobra"

	"feasibility-workers/internal/share"
)

const defaultPageURL = "https://alphabeta-consulting.fr/test-de-faisabilite"

func init() {
	cmd := &cobra.Command{
		Use:   "share [businessName]",
		Short: "Print the share message and the email, WhatsApp and SMS links",
		Args:  cobra.MaximumNArgs(1),
		Run:   runShare,
	}
	cmd.Flags().StringP("url", "u", defaultPageURL, "Page URL included in the message")
	RootCmd.AddCommand(cmd)
}

func runShare(cmd *cobra.Command, args []string) {
	pageURL, _ := cmd.Flags().GetString("url")

	var name string
	if len(args) > 0 {
		name = args[0]
	}
	if err := printJSON(cmd.OutOrStdout(), share.NewBuilder(brandFlag).Links(name, pageURL)); err != nil {
		exitErr("share", err)
	}
}
