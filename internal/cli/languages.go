package cli

import (
	"github.com/spf13/cobra"

	"github.com/StephenKaylonChan/ocrkit/internal/config"
)

func newLanguagesCmd() *cobra.Command {
	var showAliases bool

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List supported language codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Println(renderLanguages(showAliases))
			return nil
		},
	}

	cmd.Flags().BoolVar(&showAliases, "aliases", false, "also list accepted aliases")

	return cmd
}

// languageRows pairs each code with its display name, in sorted code order.
func languageRows() [][2]string {
	codes := config.LanguageCodes()
	rows := make([][2]string, 0, len(codes))
	for _, code := range codes {
		rows = append(rows, [2]string{code, config.SupportedLanguages[code]})
	}
	return rows
}
