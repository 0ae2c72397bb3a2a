// cmd/root.go
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

	"github.com/DM20911/Shodan-AI/internal/core"
	"github.com/DM20911/Shodan-AI/internal/core/logger"
	"github.com/DM20911/Shodan-AI/internal/credstore"
	"github.com/DM20911/Shodan-AI/internal/output"
	"github.com/DM20911/Shodan-AI/internal/shodan"
	"github.com/DM20911/Shodan-AI/internal/translate"
)

var (
	verbose      bool
	version      = "0.1.0" // Define tool version here
	configPath   string
	credsPath    string
	noAI         bool
	resultLimit  int
	outputPath   string
	outputFormat string
	variableMode bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   `shodan-ai "<natural language question>"`,
	Short: "Shodan-AI: search Shodan using plain natural language.",
	Long: `Shodan-AI translates a natural-language question into Shodan query
syntax and runs it against the Shodan search API. When an OpenAI API key is
configured the translation goes through a completion model; otherwise a
built-in set of heuristic rules does the job offline. Either way you get a
query and its results, with the translation source always shown.`,
	Example: `  shodan-ai "servidores apache en chile"
  shodan-ai "camaras ip en chile con puerto 80 abierto" -n 20
  shodan-ai "open rdp in argentina" --no-ai -f json -o results.json`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Initialize logger before any command runs
		if verbose {
			logger.SetupLogger("debug")
		} else {
			logger.SetupLogger("warn")
		}
	},
	Run: runAsk,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func runAsk(cmd *cobra.Command, args []string) {
	if variableMode {
		printVariableGuide()
		return
	}
	if len(args) == 0 {
		color.Red("You must provide a question, or use -h for help.")
		cmd.Help()
		os.Exit(1)
	}

	log := logger.GetLogger()
	question := strings.Join(args, " ")

	applyConfigFile(cmd)
	console := outputFormat == "console" && outputPath == ""

	creds := resolveCredentialsOrExit()
	if creds.ShodanAPIKey == "" {
		promptForShodanKey(creds)
	}

	if console {
		printBanner()
		color.Cyan("Processing question: %s", question)
	}

	ctx := context.Background()
	translator := translate.NewTranslator(creds.OpenAIAPIKey, noAI)

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Writer = os.Stderr
	s.Suffix = " Translating and searching Shodan..."
	if console {
		s.Start()
	}
	tr := translator.Translate(ctx, question)
	log.Debugf("final query: %s (source: %s)", tr.Query, tr.Source)

	client := shodan.NewClient(creds.ShodanAPIKey)
	result, err := client.Search(ctx, tr.Query, 1)
	s.Stop()
	if err != nil {
		color.Red("❌ Shodan search failed: %v", err)
		os.Exit(1)
	}

	formatted, err := output.FormatResults(question, tr, result, outputFormat, resultLimit)
	if err != nil {
		color.Red("❌ Output formatting failed: %v", err)
		os.Exit(1)
	}
	if outputPath != "" {
		if err := output.WriteOutput(outputPath, formatted); err != nil {
			color.Red("❌ Failed to write output: %v", err)
			os.Exit(1)
		}
		color.Cyan("📄 Results saved to %s", outputPath)
	} else {
		fmt.Println(formatted)
	}
}

// applyConfigFile fills in defaults from an optional settings file. Flags set
// on the command line win over the file.
func applyConfigFile(cmd *cobra.Command) {
	if configPath == "" {
		return
	}
	cfg, err := core.LoadConfig(configPath)
	if err != nil {
		color.Red("Failed to load config %s: %v", configPath, err)
		os.Exit(1)
	}
	if cfg.CredentialsFile != "" && !cmd.Flags().Changed("credentials") {
		credsPath = cfg.CredentialsFile
	}
	if cfg.Limit > 0 && !cmd.Flags().Changed("limit") {
		resultLimit = cfg.Limit
	}
	if cfg.Format != "" && !cmd.Flags().Changed("format") {
		outputFormat = cfg.Format
	}
	if cfg.NoAI && !cmd.Flags().Changed("no-ai") {
		noAI = true
	}
}

// resolveCredentialsOrExit returns the effective credentials (env over file).
func resolveCredentialsOrExit() *credstore.Credentials {
	if credsPath == "" {
		path, err := credstore.DefaultPath()
		if err != nil {
			color.Red("❌ %v", err)
			os.Exit(1)
		}
		credsPath = path
	}
	creds, err := credstore.Resolve(credsPath)
	if err != nil {
		color.Red("❌ Failed to read credentials: %v", err)
		os.Exit(1)
	}
	return creds
}

// promptForShodanKey runs the first-run setup: ask for the key, offer to save
// it. Exits when the user gives nothing, the tool cannot work without it.
func promptForShodanKey(creds *credstore.Credentials) {
	reader := bufio.NewReader(os.Stdin)
	color.Yellow("\n🔐 No Shodan API key configured.")
	fmt.Println("   This key is used exclusively to talk to the Shodan API.")
	fmt.Println("   Get one at https://account.shodan.io/ (My Account -> API Key).")
	fmt.Println()

	key := promptLine(reader, "Enter your SHODAN_API_KEY: ")
	if key == "" {
		color.Red("❌ Cannot continue without a Shodan API key.")
		os.Exit(1)
	}
	creds.ShodanAPIKey = key

	if confirm(reader, "Save this key for future runs? (y/n): ") {
		if err := credstore.Save(credsPath, creds); err != nil {
			logger.GetLogger().Warnf("could not save credentials: %v", err)
		} else {
			color.Green("✔ Saved to %s (owner-only permissions)", credsPath)
		}
	}
}

func printBanner() {
	banner := `
   _____ __              __                      ___    ____
  / ___// /_  ____  ____/ /___ _____            /   |  /  _/
  \__ \/ __ \/ __ \/ __  / __ '/ __ \   ______ / /| |  / /
 ___/ / / / / /_/ / /_/ / /_/ / / / /  /_____// ___ |_/ /
/____/_/ /_/\____/\__,_/\__,_/_/ /_/         /_/  |_/___/
`
	color.Cyan(banner)
	color.Magenta("Shodan-AI v%s - natural language in, Shodan queries out", version)
}

// printVariableGuide explains how to make the binary callable from anywhere.
// It changes nothing automatically, it only tells the user how.
func printVariableGuide() {
	guide := `
Making shodan-ai available from anywhere (optional):

1) Install straight into your Go bin directory:
     go install github.com/DM20911/Shodan-AI@latest
   and make sure $(go env GOPATH)/bin is on your PATH.

2) Or copy the built binary somewhere on your PATH (Linux/macOS):
     mkdir -p $HOME/bin
     cp shodan-ai $HOME/bin/
   and add to your ~/.bashrc or ~/.zshrc:
     export PATH="$HOME/bin:$PATH"

3) Or set up an alias (bash/zsh):
     alias shodan-ai='/full/path/to/shodan-ai'
   then reload with: source ~/.bashrc (or ~/.zshrc)

4) Windows (CMD / PowerShell):
     copy shodan-ai.exe to e.g. C:\tools\shodan-ai\
     and add that folder to your PATH via
     Control Panel -> System -> Advanced -> Environment Variables.

This option (-V / --variable) does not modify anything automatically.
`
	fmt.Println(guide)
}

func init() {
	// Add global flags here
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging.")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a settings file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&credsPath, "credentials", "", "Path to the credentials file (default ~/.config/shodan-ai/credentials.json)")

	rootCmd.Flags().BoolVar(&noAI, "no-ai", false, "Force the heuristic translator even when an OpenAI key is configured")
	rootCmd.Flags().IntVarP(&resultLimit, "limit", "n", 10, "Maximum number of matches to display")
	rootCmd.Flags().StringVarP(&outputFormat, "format", "f", "console", "Output format: console, json, txt, csv.")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file to save results.")
	rootCmd.Flags().BoolVarP(&variableMode, "variable", "V", false, "Print the alias/PATH setup guide and exit")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("{{.Version}}\r\n")
}
