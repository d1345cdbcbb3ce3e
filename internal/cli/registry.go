package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"feasibility-workers/pkg/registry"
)

func init() {
	regCmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect and edit the worker activity registry",
	}
	regCmd.PersistentFlags().StringP("path", "p", "", "Registry file (default: the registry built into the binary)")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check ids, task types, timeouts and input schemas",
		Args:  cobra.NoArgs,
		Run:   runRegistryValidate,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered activities",
		Args:  cobra.NoArgs,
		Run:   runRegistryList,
	}

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Change one field of an activity in a registry file",
		Args:  cobra.NoArgs,
		Run:   runRegistryUpdate,
	}
	updateCmd.Flags().String("id", "", "Activity ID (required)")
	updateCmd.Flags().String("field", "", "Field: status, version, displayName, description, timeout, retries (required)")
	updateCmd.Flags().String("value", "", "New value (required)")
	updateCmd.MarkFlagRequired("id")
	updateCmd.MarkFlagRequired("field")
	updateCmd.MarkFlagRequired("value")

	regCmd.AddCommand(validateCmd, listCmd, updateCmd)
	RootCmd.AddCommand(regCmd)
}

func loadRegistry(path string) (*registry.ActivityRegistry, error) {
	if path == "" {
		return registry.Default()
	}
	return registry.LoadRegistry(path)
}

func runRegistryValidate(cmd *cobra.Command, args []string) {
	path, _ := cmd.Flags().GetString("path")
	reg, err := loadRegistry(path)
	if err != nil {
		exitErr("load registry", err)
	}
	if err := reg.Validate(); err != nil {
		exitErr("validate registry", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "registry OK: %d activities (version %s)\n", len(reg.Activities), reg.Version)
}

func runRegistryList(cmd *cobra.Command, args []string) {
	path, _ := cmd.Flags().GetString("path")
	reg, err := loadRegistry(path)
	if err != nil {
		exitErr("load registry", err)
	}
	if err := listActivities(cmd.OutOrStdout(), reg); err != nil {
		exitErr("list", err)
	}
}

func listActivities(w io.Writer, reg *registry.ActivityRegistry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TASK TYPE\tSTATUS\tTIMEOUT\tRETRIES")
	for _, a := range reg.Activities {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", a.TaskType, a.ImplementationStatus, a.Timeout, a.Retries)
	}
	return tw.Flush()
}

func runRegistryUpdate(cmd *cobra.Command, args []string) {
	path, _ := cmd.Flags().GetString("path")
	if path == "" {
		exitErr("update", fmt.Errorf("--path is required: the built-in registry is read-only"))
	}
	id, _ := cmd.Flags().GetString("id")
	field, _ := cmd.Flags().GetString("field")
	value, _ := cmd.Flags().GetString("value")

	if err := updateRegistryFile(path, id, field, value, time.Now()); err != nil {
		exitErr("update", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "updated %s.%s = %s\n", id, field, value)
}

func updateRegistryFile(path, id, field, value string, now time.Time) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return err
	}
	if err := reg.Update(id, field, value, now); err != nil {
		return err
	}
	if err := reg.Validate(); err != nil {
		return err
	}
	return reg.Save(path)
}
