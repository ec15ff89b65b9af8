// Package cli wires the cobra command tree to the service layer.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/criatividade-digital/revisa/internal/config"
	apperrors "github.com/criatividade-digital/revisa/internal/errors"
	"github.com/criatividade-digital/revisa/internal/logger"
	"github.com/criatividade-digital/revisa/internal/service"
	"github.com/criatividade-digital/revisa/internal/ui"
)

var (
	cfgFile string
	verbose bool

	svc *service.Service
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "revisa",
	Short: "Construtor de prompts de revisão de texto",
	Long: `revisa monta prompts de revisão de texto a partir de modelos declarativos.

Sem subcomando, abre a interface interativa no terminal: escolha um
modelo, preencha o formulário e copie o prompt gerado.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initService()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return ui.Run(cmd.Context(), svc)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "arquivo de configuração (padrão ~/.revisa/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "mostra a causa detalhada dos erros")
}

func initService() error {
	log = logger.New()

	path := cfgFile
	if path == "" {
		var err error
		path, err = config.Path()
		if err != nil {
			return err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	svc, err = service.New(cfg, log)
	return err
}

// Execute runs the command tree and maps failures through the CLI error
// handler.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		handler := apperrors.NewCLIErrorHandler(verbose)
		fmt.Fprintln(os.Stderr, handler.FormatError(err))
		os.Exit(1)
	}
}
