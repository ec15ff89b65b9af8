package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Mostra os detalhes de um modelo",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	if err := svc.Initialize(cmd.Context()); err != nil {
		return err
	}

	tmpl, err := svc.GetTemplate(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", tmpl.Name, tmpl.ID)
	if tmpl.Summary != "" {
		fmt.Fprintln(out, tmpl.Summary)
	}
	fmt.Fprintf(out, "categoria: %s\n", tmpl.Category)

	fmt.Fprintln(out, "\ncampos:")
	for _, in := range tmpl.Inputs {
		required := ""
		if in.Required {
			required = " (obrigatório)"
		}
		fmt.Fprintf(out, "  %-20s %-12s %s%s\n", in.ID, in.Type, in.Label, required)
		for _, opt := range in.Options {
			fmt.Fprintf(out, "    - %s\n", opt.Label)
		}
		if in.DependsOn != nil {
			fmt.Fprintf(out, "    visível quando %s = %v\n", in.DependsOn.Field, in.DependsOn.Value)
		}
	}
	return nil
}
