package cmd

import (
	"fmt"
	"os"

	"github.com/mansalskog/BadLisp/repl"
	"github.com/spf13/cobra"
)

var (
	rootConfigFile string
	rootDebug      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "badlisp",
	Short: "A small lisp interpreter",
	Long: `A small lisp interpreter with reference counted memory and lambdas
applied by substitution.  Without a subcommand an interactive repl is started.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		config, err := loadRootConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		rt, err := newRuntime(config)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		err = repl.RunRepl(rt, repl.Config{
			Prompt:      config.Prompt,
			HistoryFile: config.HistoryFile,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().  It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadRootConfig reads the configuration file and applies command line flags
// over it.
func loadRootConfig() (*Config, error) {
	config, err := LoadConfig(rootConfigFile)
	if err != nil {
		return nil, err
	}
	if rootDebug {
		config.Debug = true
	}
	return config, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootConfigFile, "config", "c", "",
		"YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&rootDebug, "debug", "d", false,
		"Start with debugging output enabled")
}
