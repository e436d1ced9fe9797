package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/heathj/domkit/domutil"
	"github.com/heathj/domkit/parser"
	"github.com/heathj/domkit/parser/spec"
	"github.com/heathj/domkit/script"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func runCmd(log *logrus.Logger) *cobra.Command {
	var (
		fire []string
		dump string
	)

	cmd := &cobra.Command{
		Use:   "run <file> <script>",
		Short: "Run a script against a document",
		Long: `Load the document, run the JavaScript file against it and then fire
each --fire event in order. Events bubble and are cancelable.

Example:
  domkit run page.html handlers.js --fire click=#submit --fire blur=input --dump=tree`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := parseFire(fire)
			if err != nil {
				return err
			}

			doc, err := loadDocument(log, args[0])
			if err != nil {
				return err
			}
			src, err := os.ReadFile(args[1])
			if err != nil {
				return errors.Wrap(err, "reading script")
			}

			notifier := domutil.NewNotifier()
			notifier.Subscribe(func(r domutil.Registration) {
				log.WithFields(logrus.Fields{
					"event":     r.EventType,
					"selector":  r.Selector,
					"delegated": r.Delegated,
					"targets":   r.Targets,
				}).Info("listener registered")
			})

			out := cmd.OutOrStdout()
			rt := script.New(doc,
				script.WithLogger(log),
				script.WithNotifier(notifier),
				script.WithOutput(out),
			)
			if _, err := rt.Run(args[1], string(src)); err != nil {
				return err
			}

			for _, ev := range events {
				n, err := rt.Dispatch(ev.selector, ev.eventType, spec.EventInit{Bubbles: true, Cancelable: true})
				if err != nil {
					return err
				}
				if n == 0 {
					log.WithFields(logrus.Fields{
						"event":    ev.eventType,
						"selector": ev.selector,
					}).Warn("no elements to fire at")
				}
			}

			switch dump {
			case "":
			case "html":
				fmt.Fprintln(out, parser.Serialize(doc))
			case "tree":
				fmt.Fprintln(out, doc.String())
			default:
				return errors.Errorf("--dump: unknown format %q", dump)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&fire, "fire", nil, "event to fire after the script runs, as event=selector (repeatable)")
	cmd.Flags().StringVar(&dump, "dump", "", "print the document when done, as html or tree")
	cmd.Flags().Lookup("dump").NoOptDefVal = "html"
	return cmd
}

type fireSpec struct {
	eventType, selector string
}

func parseFire(values []string) ([]fireSpec, error) {
	out := make([]fireSpec, 0, len(values))
	for _, v := range values {
		eventType, selector, ok := strings.Cut(v, "=")
		if !ok || eventType == "" || selector == "" {
			return nil, errors.Errorf("--fire %q: want event=selector", v)
		}
		out = append(out, fireSpec{eventType: eventType, selector: selector})
	}
	return out, nil
}
