package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/criatividade-digital/revisa/internal/models"
)

var (
	listQuery    string
	listCategory string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lista os modelos de prompt disponíveis",
	RunE:  runList,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Lista as categorias de modelos",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := svc.Initialize(cmd.Context()); err != nil {
			return err
		}
		for _, category := range svc.Categories() {
			fmt.Fprintln(cmd.OutOrStdout(), category)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "busca difusa por nome, descrição ou id")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "filtra por categoria exata")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if err := svc.Initialize(cmd.Context()); err != nil {
		return err
	}

	var templates []*models.Template
	switch {
	case listQuery != "":
		templates = svc.SearchTemplates(listQuery)
	case listCategory != "":
		templates = svc.ListTemplatesByCategory(listCategory)
	default:
		templates = svc.ListTemplates()
	}

	if len(templates) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "nenhum modelo encontrado")
		return nil
	}
	for _, t := range templates {
		fmt.Fprintf(cmd.OutOrStdout(), "%-28s %-16s %s\n", t.ID, t.Category, t.Name)
	}
	return nil
}
