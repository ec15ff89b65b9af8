package cli

import (
	"github.com/spf13/cobra"

	"github.com/criatividade-digital/revisa/internal/api"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expõe os modelos e a geração de prompts por HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		port := servePort
		if port == 0 {
			port = svc.Config().APIPort
		}
		server := api.NewServer(svc, port, log)
		return server.Start(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "porta do servidor (padrão da configuração)")
	rootCmd.AddCommand(serveCmd)
}
