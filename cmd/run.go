package cmd

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/mansalskog/BadLisp/lisp"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run lisp code",
	Long:  `Run lisp code provided supplied via the command line or a file.`,
	Run: func(cmd *cobra.Command, args []string) {
		names, sources, err := runReadSources(args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
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
		var out io.Writer
		if runPrint {
			out = os.Stdout
		}
		if err := runSources(rt, names, sources, out); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

// runSources evaluates each source in order.  If out is not nil the value of
// every top-level expression is written to it.
func runSources(rt *lisp.Runtime, names, sources []string, out io.Writer) error {
	var print func(*lisp.LVal)
	if out != nil {
		print = func(v *lisp.LVal) {
			fmt.Fprintln(out, v)
		}
	}
	for i := range sources {
		if err := rt.LoadString(names[i], sources[i], print); err != nil {
			return err
		}
	}
	return nil
}

func runReadSources(args []string) (names, sources []string, err error) {
	names = make([]string, len(args))
	sources = make([]string, len(args))
	if runExpression {
		for i := range args {
			names[i] = fmt.Sprintf("expression %d", i+1)
			sources[i] = args[i]
		}
		return names, sources, nil
	}
	for i, path := range args {
		b, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, nil, err
		}
		names[i] = path
		sources[i] = string(b)
	}
	return names, sources, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
}
