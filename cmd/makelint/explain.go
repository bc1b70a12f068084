package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/makelint/internal/lint"
	"github.com/donaldgifford/makelint/internal/rules"
)

var explainCmd = &cobra.Command{
	Use:   "explain <rule-id>",
	Short: "Describe a rule by its id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := lint.NewEngine(rules.All())
		r, err := engine.Lookup(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Rule: %s\nCategory: %s\nDefault severity: %s\n\n%s\n",
			r.ID(), r.Category(), r.DefaultSeverity(), r.Description())
		return nil
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List all registered rules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all := append([]lint.Rule(nil), rules.All()...)
		sort.Slice(all, func(i, j int) bool { return all[i].ID() < all[j].ID() })
		for _, r := range all {
			fmt.Printf("%-32s %s\n", r.ID(), r.DefaultSeverity())
		}
		return nil
	},
}
