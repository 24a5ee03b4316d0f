package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dnrgps/dnrgps/pkg/buildinfo"
	"github.com/dnrgps/dnrgps/pkg/locator"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "dnrgps"

	// configEnv names the style file when --config is not given.
	configEnv = "DNRGPS_CONFIG"

	// styleFile is the style file looked up in the config directory.
	styleFile = "style.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath  string // --config
	fixturePath string // --fixture
	process     string // --process
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:  newLogger(w, level),
		process: locator.DefaultProcess,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "dnrgps draws GPS positions and moves feature data in a running GIS session",
		Long: `dnrgps attaches to the frontmost running desktop GIS instance and drives its
active document: it lists and reads feature layers, draws real-time GPS
markers, breadcrumb trails and circular error probables on a scratch graphics
layer, and moves tables of geometry in and out of the map.

Use --fixture to run against a simulated document described in YAML.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "style file (default $"+configEnv+" or "+filepath.Join("$XDG_CONFIG_HOME", appName, styleFile)+")")
	flags.StringVar(&c.fixturePath, "fixture", "", "run against a simulated host document (YAML)")
	flags.StringVar(&c.process, "process", locator.DefaultProcess, "host process name")

	// Register all subcommands
	root.AddCommand(c.instancesCommand())
	root.AddCommand(c.layersCommand())
	root.AddCommand(c.loadCommand())
	root.AddCommand(c.extractCommand())
	root.AddCommand(c.graphicsCommand())
	root.AddCommand(c.injectCommand())
	root.AddCommand(c.pointCommand())
	root.AddCommand(c.cepCommand())
	root.AddCommand(c.clearCommand())
	root.AddCommand(c.trackCommand())
	root.AddCommand(c.defaultsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/dnrgps/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// stylePath resolves the style file: --config, then $DNRGPS_CONFIG, then the
// config directory if the file exists there. An empty result means the
// built-in style.
func (c *CLI) stylePath() string {
	if c.configPath != "" {
		return c.configPath
	}
	if p := os.Getenv(configEnv); p != "" {
		return p
	}
	dir, err := configDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(dir, styleFile)
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseList splits a comma-separated flag value, dropping blanks.
func parseList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
