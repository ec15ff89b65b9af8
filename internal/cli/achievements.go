package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var achievementsRefresh bool

var achievementsCmd = &cobra.Command{
	Use:   "achievements [usuario]",
	Short: "Mostra as conquistas de um usuário",
	Args:  cobra.ExactArgs(1),
	RunE:  runAchievements,
}

func init() {
	achievementsCmd.Flags().BoolVar(&achievementsRefresh, "refresh", false, "ignora o cache local e consulta o serviço")
	rootCmd.AddCommand(achievementsCmd)
}

func runAchievements(cmd *cobra.Command, args []string) error {
	recs, err := svc.Achievements(cmd.Context(), args[0], achievementsRefresh)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(recs) == 0 {
		fmt.Fprintln(out, "nenhuma conquista ainda")
		return nil
	}

	for _, rec := range recs {
		fmt.Fprintln(out, rec.ID)

		names := make([]string, 0, len(rec.Awards))
		for name := range rec.Awards {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(out, "  %-24s %s\n", name, rec.Awards[name].Format("02/01/2006"))
		}
		for name, value := range rec.Extra {
			fmt.Fprintf(out, "  %-24s %s\n", name, value)
		}
	}
	return nil
}
