package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/criatividade-digital/revisa/internal/errors"
	"github.com/criatividade-digital/revisa/internal/parser"
)

var templateOverwrite bool

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Gerencia os modelos da biblioteca local",
}

var templateLintCmd = &cobra.Command{
	Use:   "lint [arquivo]",
	Short: "Valida um documento de modelo sem instalá-lo",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateLint,
}

var templateAddCmd = &cobra.Command{
	Use:   "add [arquivo]",
	Short: "Instala um documento de modelo na biblioteca",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateAdd,
}

var templateRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove um modelo da biblioteca",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := svc.RemoveTemplate(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "modelo %s removido\n", args[0])
		return nil
	},
}

func init() {
	templateAddCmd.Flags().BoolVar(&templateOverwrite, "overwrite", false, "substitui um modelo existente com o mesmo id")
	templateCmd.AddCommand(templateLintCmd)
	templateCmd.AddCommand(templateAddCmd)
	templateCmd.AddCommand(templateRemoveCmd)
	rootCmd.AddCommand(templateCmd)
}

func runTemplateLint(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return apperrors.StorageError(fmt.Sprintf("read template file %s", args[0]), err)
	}

	tmpl, err := parser.Parse(string(data))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "ok: %s (%s), %d campos\n", tmpl.Name, tmpl.ID, len(tmpl.Inputs))
	return nil
}

func runTemplateAdd(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return apperrors.StorageError(fmt.Sprintf("read template file %s", args[0]), err)
	}

	tmpl, err := svc.InstallTemplate(cmd.Context(), string(data), templateOverwrite)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "modelo %s instalado em %s\n", tmpl.ID, tmpl.FilePath)
	return nil
}
