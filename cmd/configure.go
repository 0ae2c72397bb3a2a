// cmd/configure.go
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/DM20911/Shodan-AI/internal/credstore"
	"github.com/DM20911/Shodan-AI/internal/shodan"
)

// configureCmd represents the configure command
var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Interactively set up and save API credentials.",
	Long: `Walks through setting up the Shodan API key (required) and the OpenAI
API key (optional, enables AI translation). Keys are saved to a file only the
owner can read. Entered values replace whatever was stored before.`,
	Example: `  shodan-ai configure
  shodan-ai configure --credentials /tmp/creds.json`,
	Run: runConfigure,
}

func runConfigure(cmd *cobra.Command, args []string) {
	printBanner()
	reader := bufio.NewReader(os.Stdin)

	if credsPath == "" {
		path, err := credstore.DefaultPath()
		if err != nil {
			color.Red("❌ %v", err)
			os.Exit(1)
		}
		credsPath = path
	}

	creds, err := credstore.Load(credsPath)
	if err != nil {
		creds = &credstore.Credentials{}
	} else {
		// Never echo stored key values, just say they exist.
		color.Cyan("Existing credentials found at %s, entering new values replaces them.", credsPath)
	}

	color.Yellow("\n🔐 Shodan API key")
	fmt.Println("   This key is used exclusively to talk to the Shodan API.")
	fmt.Println("   Get one at https://account.shodan.io/ (My Account -> API Key).")
	if key := promptLine(reader, "Enter your SHODAN_API_KEY (empty to keep current): "); key != "" {
		creds.ShodanAPIKey = key
	}
	if creds.ShodanAPIKey == "" {
		color.Red("❌ A Shodan API key is required.")
		os.Exit(1)
	}

	validateShodanKey(creds.ShodanAPIKey)

	color.Yellow("\n🤖 Optional: OpenAI integration for better translations")
	if confirm(reader, "Use OpenAI to translate questions into Shodan queries? (y/n): ") {
		fmt.Println("   This key is for the AI provider (OpenAI), NOT for Shodan.")
		fmt.Println("   Create one at https://platform.openai.com/api-keys")
		if key := promptLine(reader, "Enter your OPENAI_API_KEY (empty to keep current): "); key != "" {
			creds.OpenAIAPIKey = key
		}
		if creds.OpenAIAPIKey == "" {
			color.Yellow("⚠️  No OpenAI key configured, the heuristic translator will be used.")
		}
	} else {
		color.Cyan("AI translation stays off, the heuristic translator will be used.")
		creds.OpenAIAPIKey = ""
	}

	if err := credstore.Save(credsPath, creds); err != nil {
		color.Red("❌ Failed to save credentials: %v", err)
		os.Exit(1)
	}
	color.Green("✔ Credentials saved to %s (owner read/write only)", credsPath)
}

// validateShodanKey calls /api-info so a typo shows up now instead of on the
// first search. A failed check is a warning, not a hard stop, since the API
// itself might be down.
func validateShodanKey(key string) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Writer = os.Stderr
	s.Suffix = " Validating key against the Shodan API..."
	s.Start()
	info, err := shodan.NewClient(key).APIInfoCheck(context.Background())
	s.Stop()
	if err != nil {
		color.Yellow("⚠️  Could not validate the key: %v", err)
		return
	}
	color.Green("✔ Key is valid (plan: %s, query credits: %d)", info.Plan, info.QueryCredits)
}

// promptLine reads one trimmed line from the user.
func promptLine(reader *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

// confirm accepts English and Spanish affirmatives, matching the audience of
// the heuristic rule table.
func confirm(reader *bufio.Reader, prompt string) bool {
	switch strings.ToLower(promptLine(reader, prompt)) {
	case "y", "yes", "s", "si", "sí":
		return true
	}
	return false
}

func init() {
	rootCmd.AddCommand(configureCmd)
}
