// cmd/translate.go
package cmd

import (
	"context"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/DM20911/Shodan-AI/internal/credstore"
	"github.com/DM20911/Shodan-AI/internal/translate"
)

var translateNoAI bool

// translateCmd represents the translate command
var translateCmd = &cobra.Command{
	Use:   `translate "<natural language question>"`,
	Short: "Translate a question into a Shodan query without running it.",
	Long: `Shows the Shodan query a question would produce, without dispatching
anything to the Shodan API. Useful for checking what the heuristic rules or
the AI come up with before spending query credits. No Shodan key needed.`,
	Example: `  shodan-ai translate "servidores apache en chile"
  shodan-ai translate "open rdp in brazil" --no-ai`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		question := strings.Join(args, " ")

		openAIKey := ""
		if path, err := resolveCredsPath(); err == nil {
			if creds, err := credstore.Resolve(path); err == nil {
				openAIKey = creds.OpenAIAPIKey
			}
		}

		translator := translate.NewTranslator(openAIKey, translateNoAI)
		result := translator.Translate(context.Background(), question)

		color.Cyan("QUESTION:     %s", question)
		color.Green("SHODAN QUERY: %s", result.Query)
		color.Yellow("QUERY SOURCE: %s", result.Source)
	},
}

func resolveCredsPath() (string, error) {
	if credsPath != "" {
		return credsPath, nil
	}
	return credstore.DefaultPath()
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().BoolVar(&translateNoAI, "no-ai", false, "Force the heuristic translator")
}
