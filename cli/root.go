// Package cli implements the domkit command line.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/heathj/domkit/parser"
	"github.com/heathj/domkit/parser/spec"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the domkit command tree. Each call gets its own logger.
func NewRootCmd() *cobra.Command {
	log := logrus.New()
	var level, format string

	root := &cobra.Command{
		Use:   "domkit",
		Short: "Query and script HTML documents",
		Long: `domkit loads an HTML document and runs the DOM helpers against it:
attribute lookup with ancestor fallback, box model dimensions and
event attachment from JavaScript.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return configureLogger(log, cmd.ErrOrStderr(), level, format)
		},
	}
	root.PersistentFlags().StringVar(&level, "log-level", "warn", "log level (trace, debug, info, warn, error)")
	root.PersistentFlags().StringVar(&format, "log-format", "text", "log format (text or json)")

	root.AddCommand(
		attrCmd(log),
		dimsCmd(log),
		runCmd(log),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}
	return 0
}

func configureLogger(log *logrus.Logger, out io.Writer, level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrap(err, "--log-level")
	}
	log.SetLevel(lvl)
	log.SetOutput(out)

	switch format {
	case "text":
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return errors.Errorf("--log-format: unknown format %q", format)
	}
	return nil
}

func loadDocument(log logrus.FieldLogger, path string) (*spec.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening document")
	}
	defer f.Close()

	doc, err := parser.NewParser(f).WithLogger(log.WithField("file", path)).Start()
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return doc, nil
}

// describe names an element the way a selector would.
func describe(n *spec.Node) string {
	name := n.LocalName
	if n.Id != "" {
		name += "#" + n.Id
	}
	return name
}
