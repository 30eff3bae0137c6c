package commands

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/lint/rules"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group   string // Filter by group
	Enabled bool   // Only rules the configuration enables
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available lint rules",
		Long: `List all available lint rules, or show one rule with its documentation
and options.

Rules are organized by group (layout, capitalisation, convention, aliasing,
ambiguous, structure).`,
		Example: `  # List all rules
  leaplint rules

  # Show details for a specific rule
  leaplint rules LT05

  # List the layout rules
  leaplint rules --group layout

  # Rules the current configuration runs, as JSON
  leaplint rules --enabled --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0])
			}
			return listRules(cmd, opts)
		},
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			var ids []string
			for _, r := range rules.NewRegistry().All() {
				ids = append(ids, r.ID()+"\t"+r.Name())
			}
			return ids, cobra.ShellCompDirectiveNoFileComp
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Only list rules in this group")
	cmd.Flags().BoolVar(&opts.Enabled, "enabled", false, "Only list rules enabled by the configuration")

	_ = cmd.RegisterFlagCompletionFunc("group", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return rules.NewRegistry().Groups(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	cc := NewCommandContext(cmd)
	reg := rules.NewRegistry()

	all := reg.All()
	if opts.Enabled {
		all = cc.Cfg.LintConfig().Select(reg)
	}
	if opts.Group != "" {
		if !slices.Contains(reg.Groups(), opts.Group) {
			return fmt.Errorf("unknown rule group %q (available: %s)", opts.Group, strings.Join(reg.Groups(), ", "))
		}
		all = slices.DeleteFunc(all, func(r lint.Rule) bool { return r.Group() != opts.Group })
	}

	infos := make([]lint.RuleInfo, 0, len(all))
	for _, r := range all {
		infos = append(infos, lint.GetRuleInfo(r))
	}
	return cc.Renderer.Rules(infos)
}

func showRule(cmd *cobra.Command, id string) error {
	cc := NewCommandContext(cmd)
	reg := rules.NewRegistry()

	r, ok := reg.Get(strings.ToUpper(id))
	if !ok {
		for _, candidate := range reg.All() {
			if candidate.Name() == id {
				r, ok = candidate, true
				break
			}
		}
	}
	if !ok {
		return fmt.Errorf("%w: %s", lint.ErrUnknownRule, id)
	}
	return cc.Renderer.Rule(lint.GetRuleInfo(r))
}
