package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/criatividade-digital/revisa/internal/errors"
	"github.com/criatividade-digital/revisa/internal/models"
	"github.com/criatividade-digital/revisa/internal/service"
)

var (
	buildSets     []string
	buildText     string
	buildTextFile string
	buildCopy     bool
	buildJSON     bool
)

var buildCmd = &cobra.Command{
	Use:   "build [template-id]",
	Short: "Gera um prompt sem abrir a interface",
	Long: `Gera um prompt a partir de um modelo, com os valores passados por flag.

Exemplo:
  revisa build revisao-ortografica --text-file redacao.txt --set preservarOriginal=true --copy`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringArrayVarP(&buildSets, "set", "s", nil, "valor de campo no formato campo=valor (repetível)")
	buildCmd.Flags().StringVarP(&buildText, "text", "t", "", "texto para revisão")
	buildCmd.Flags().StringVar(&buildTextFile, "text-file", "", "arquivo com o texto para revisão ('-' lê da entrada padrão)")
	buildCmd.Flags().BoolVar(&buildCopy, "copy", false, "copia o prompt gerado para a área de transferência")
	buildCmd.Flags().BoolVar(&buildJSON, "json", false, "imprime o resultado completo em JSON")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	if err := svc.Initialize(cmd.Context()); err != nil {
		return err
	}

	tmpl, err := svc.GetTemplate(args[0])
	if err != nil {
		return err
	}

	values, err := parseSetFlags(tmpl, buildSets)
	if err != nil {
		return err
	}

	text := buildText
	if buildTextFile == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return apperrors.StorageError("read standard input", err)
		}
		text = string(data)
	} else if buildTextFile != "" {
		data, err := os.ReadFile(buildTextFile)
		if err != nil {
			return apperrors.StorageError(fmt.Sprintf("read text file %s", buildTextFile), err)
		}
		text = string(data)
	}

	resp, err := svc.BuildPrompt(cmd.Context(), service.BuildRequest{
		TemplateID: tmpl.ID,
		Values:     values,
		Text:       text,
		Copy:       buildCopy,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if buildJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	if len(resp.FieldErrors) > 0 {
		for field, msg := range resp.FieldErrors {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", field, msg)
		}
		return apperrors.ValidationError("o formulário contém erros")
	}

	fmt.Fprintln(out, resp.Prompt)
	fmt.Fprintf(cmd.ErrOrStderr(), "\n%d tokens, %d caracteres\n", resp.Evaluation.Tokens, resp.Evaluation.Chars)
	for _, warning := range resp.Evaluation.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "aviso: %s\n", warning)
	}
	if resp.Copied {
		fmt.Fprintln(cmd.ErrOrStderr(), "copiado para a área de transferência")
	}
	return nil
}

// parseSetFlags converts campo=valor pairs, coercing the value to the
// declared field type so switches get booleans and multiselects get
// lists.
func parseSetFlags(tmpl *models.Template, sets []string) (map[string]any, error) {
	values := make(map[string]any, len(sets))
	for _, kv := range sets {
		key, raw, found := strings.Cut(kv, "=")
		if !found {
			return nil, apperrors.ValidationError(fmt.Sprintf("valor inválido %q, use campo=valor", kv))
		}
		field, ok := tmpl.Field(key)
		if !ok {
			return nil, apperrors.ValidationError(fmt.Sprintf("campo desconhecido: %s", key))
		}

		switch field.Type {
		case models.FieldSwitch:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return nil, apperrors.ValidationError(
					fmt.Sprintf("o campo %s espera verdadeiro ou falso, recebeu %q", key, raw))
			}
			values[key] = b
		case models.FieldMultiSelect:
			parts := strings.Split(raw, ",")
			list := make([]string, 0, len(parts))
			for _, p := range parts {
				if trimmed := strings.TrimSpace(p); trimmed != "" {
					list = append(list, trimmed)
				}
			}
			values[key] = list
		default:
			values[key] = raw
		}
	}
	return values, nil
}
