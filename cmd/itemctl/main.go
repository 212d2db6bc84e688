// Command itemctl builds and validates GTD items from the command line.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Senticor-ai/project-sub006/internal/domain/validation"
)

const appName = "itemctl"

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	os.Exit(execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// execute runs the command tree and maps the outcome to an exit status.
// Rejected items already had their issues written to stdout.
func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := rootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var verr *validation.ValidationError
	if !errors.As(err, &verr) {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}

type globalOptions struct {
	configPath string
	logLevel   string
	rulesPath  string
}

func rootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Build and validate GTD items",
		Long: `itemctl mints canonical item documents and runs them through the
structural and business rule validation used by the items service.

Valid results are printed as JSON on stdout. Rejected input prints the
issue list instead and exits with status 1.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file path (TOML)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	flags.StringVar(&opts.rulesPath, "rules", "", "Rule table override (YAML)")

	cmd.AddCommand(
		newCmd(opts),
		validateCmd(opts),
		updateCmd(opts),
		triageCmd(opts),
		rulesCmd(opts),
	)
	return cmd
}
