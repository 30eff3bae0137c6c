package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/pkg/dialects"
	"github.com/leapstack-labs/leaplint/pkg/parser"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List supported SQL dialects",
		Long: `List the built-in dialects and the dialects each one extends.

Every dialect is resolved and its grammar checked before it is listed, so a
dialect shown here is usable with --dialect.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			reg := dialects.NewRegistry()

			var infos []output.DialectInfo
			for _, name := range reg.List() {
				d, err := reg.Get(name)
				if err != nil {
					return err
				}
				if err := d.ValidateFrom(parser.StatementRule); err != nil {
					return err
				}
				infos = append(infos, output.DialectInfo{
					Name:     d.Name(),
					Parent:   d.Parent(),
					Lineage:  d.Lineage(),
					Reserved: len(d.Keywords().SortedReserved()),
					Default:  name == dialects.Default,
				})
			}
			return cc.Renderer.Dialects(infos)
		},
	}
}
