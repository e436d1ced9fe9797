package cli

import (
	"fmt"

	"github.com/heathj/domkit/domutil"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func attrCmd(log *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "attr <file> <selector> <name>",
		Short: "Print an attribute for each matching element",
		Long: `Print the value of an attribute for every element matching selector.
Elements without a non-empty value fall back to their nearest ancestor
that has one; "null" is printed when none does.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(log, args[0])
			if err != nil {
				return err
			}
			sd := domutil.NewSpecDocument(doc)
			out := cmd.OutOrStdout()

			return domutil.ForEach(sd, domutil.Selector(args[1]), func(el domutil.Element, _ int, _ []domutil.Element) {
				value, ok := domutil.Attribute(el, args[2])
				if !ok {
					value = "null"
				}
				fmt.Fprintf(out, "%s\t%s\n", describe(domutil.UnwrapNode(el)), value)
			})
		},
	}
}
