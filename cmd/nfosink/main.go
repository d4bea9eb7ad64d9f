package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Nomadcxx/nfosink/internal/config"
	"github.com/Nomadcxx/nfosink/internal/logging"
	"github.com/Nomadcxx/nfosink/internal/nfo"
	"github.com/Nomadcxx/nfosink/internal/plex"
	"github.com/Nomadcxx/nfosink/internal/reporter"
	"github.com/Nomadcxx/nfosink/internal/resolver"
	"github.com/Nomadcxx/nfosink/internal/runner"
	"github.com/Nomadcxx/nfosink/internal/ui"
)

var (
	cfgFile string
	verbose bool

	// sync flag overrides
	flagURL     string
	flagToken   string
	flagLibrary string
	flagType    string
	flagRoot    string
	flagDryRun  bool

	// Version information (set via -ldflags during build)
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

const exampleConfig = `[server]
url = "http://localhost:32400"
token = "your-plex-token"

[library]
name = "Movies"
type = "movie"  # movie or tv
root_path = "/path/to/your/movies"
`

var rootCmd = &cobra.Command{
	Use:   "nfosink",
	Short: "Sync Plex metadata into NFO marker files",
	Long: "nfosink pulls identifier metadata from a Plex library and writes\n" +
		"single-line NFO marker files next to your media so other tools can\n" +
		"match titles without guessing.",
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync a library's identifiers into NFO markers",
	Run:   runSync,
}

var viewCmd = &cobra.Command{
	Use:   "view <report-file>",
	Short: "View a sync report in the TUI",
	Args:  cobra.ExactArgs(1),
	Run:   runView,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration file location and contents",
	Run:   runConfig,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("nfosink %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/nfosink/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	syncCmd.Flags().StringVar(&flagURL, "url", "", "media server URL (overrides config)")
	syncCmd.Flags().StringVar(&flagToken, "token", "", "media server token (overrides config)")
	syncCmd.Flags().StringVar(&flagLibrary, "library", "", "library name to sync (overrides config)")
	syncCmd.Flags().StringVar(&flagType, "type", "", "library type: movie or tv (overrides config)")
	syncCmd.Flags().StringVar(&flagRoot, "root-path", "", "local root of the library files (overrides config)")
	syncCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "report what would be written without writing markers")

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runSync(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	applyFlagOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(verbose)

	// Handle interrupt signals for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nCancelling sync...")
		cancel()
	}()

	r := &runner.Runner{
		Catalog:   plex.New(cfg.Server.URL, cfg.Server.Token),
		Resolver:  resolver.New(resolver.DefaultOptions(), log),
		Writer:    &nfo.Writer{DryRun: cfg.Output.DryRun},
		Log:       log,
		ServerURL: cfg.Server.URL,
		Library:   cfg.Library.Name,
		LibType:   plex.LibraryType(cfg.Library.Type),
		RootPath:  cfg.Library.RootPath,
		Progress:  true,
	}

	report, err := r.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "Sync cancelled by user\n")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Sync failed: %v\n", err)
		os.Exit(1)
	}

	reportPath, err := reporter.Save(report, reporter.DefaultDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save report: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println(ui.Summary(report))
	fmt.Printf("Report saved to:\n  %s\n\n", reportPath)
	fmt.Printf("View report with: nfosink view %s\n", reportPath)
}

func runView(cmd *cobra.Command, args []string) {
	report, err := reporter.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading report: %v\n", err)
		os.Exit(1)
	}

	model := ui.NewModel(report)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func runConfig(cmd *cobra.Command, args []string) {
	configPath, err := config.ConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Configuration file: %s\n\n", configPath)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Println("Config file does not exist. Create it with:")
		fmt.Println("\n  mkdir -p ~/.config/nfosink")
		fmt.Println("  cat > ~/.config/nfosink/config.toml <<EOF")
		fmt.Print(exampleConfig)
		fmt.Println("EOF")
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Current configuration:")
	fmt.Printf("\nServer:\n")
	fmt.Printf("  URL:   %s\n", cfg.Server.URL)
	if cfg.Server.Token != "" {
		fmt.Printf("  Token: (set)\n")
	} else {
		fmt.Printf("  Token: (not set)\n")
	}
	fmt.Printf("\nLibrary:\n")
	fmt.Printf("  Name: %s\n", cfg.Library.Name)
	fmt.Printf("  Type: %s\n", cfg.Library.Type)
	fmt.Printf("  Root: %s\n", cfg.Library.RootPath)
	fmt.Printf("\nOutput:\n")
	fmt.Printf("  Dry run: %v\n", cfg.Output.DryRun)
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFile(cfgFile)
	}
	return config.Load()
}

func applyFlagOverrides(cfg *config.Config) {
	if flagURL != "" {
		cfg.Server.URL = flagURL
	}
	if flagToken != "" {
		cfg.Server.Token = flagToken
	}
	if flagLibrary != "" {
		cfg.Library.Name = flagLibrary
	}
	if flagType != "" {
		cfg.Library.Type = flagType
	}
	if flagRoot != "" {
		cfg.Library.RootPath = flagRoot
	}
	if flagDryRun {
		cfg.Output.DryRun = true
	}
}
