package cli

import (
	"fmt"
	"strings"

	"github.com/heathj/domkit/domutil"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func dimsCmd(log *logrus.Logger) *cobra.Command {
	var ignore []string

	cmd := &cobra.Command{
		Use:   "dims <file> <selector>",
		Short: "Print computed and content dimensions for each matching element",
		Long: `Print the computed width and height of every element matching selector,
followed by the same size with padding, margin and border removed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ig domutil.Ignore
			for _, name := range ignore {
				if err := ig.Set(name, true); err != nil {
					return errors.Wrapf(err, "--ignore (one of %s)", strings.Join(domutil.IgnoreNames(), ", "))
				}
			}

			doc, err := loadDocument(log, args[0])
			if err != nil {
				return err
			}
			sd := domutil.NewSpecDocument(doc)
			out := cmd.OutOrStdout()

			return domutil.ForEach(sd, domutil.Selector(args[1]), func(el domutil.Element, _ int, _ []domutil.Element) {
				size := domutil.Dimensions(sd, el)
				inner := domutil.TransformDimensions(sd, el, size, ig)
				fmt.Fprintf(out, "%s\t%gx%g\t%gx%g\n", describe(domutil.UnwrapNode(el)),
					size.Width, size.Height, inner.Width, inner.Height)
			})
		},
	}

	cmd.Flags().StringSliceVar(&ignore, "ignore", nil, "box model parts to keep, e.g. padding,marginVertical")
	return cmd
}
