// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spyglass/spyglass/internal/config"
	"github.com/spyglass/spyglass/internal/resource"
)

func newResourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "resources",
		Aliases: []string{"res"},
		Short:   "List the browsable resources and their aliases",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.InitLocs(); err != nil {
				return fmt.Errorf("failed to initialize locations: %w", err)
			}
			aa := config.NewAliases(resource.DefaultTaxonomy)
			if err := aa.Load(config.AppAliasesFile); err != nil {
				return err
			}
			return printResources(cmd.OutOrStdout(), resource.DefaultTaxonomy, aa)
		},
	}
}

func printResources(out io.Writer, tx resource.Taxonomy, aa *config.Aliases) error {
	aliases := make(map[resource.Key][]string)
	for a, k := range resource.DefaultAliases {
		aliases[k] = append(aliases[k], a)
	}
	for _, a := range aa.Names() {
		if k, ok := aa.Resolve(a); ok && a != k.Resource {
			aliases[k] = append(aliases[k], a)
		}
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tRESOURCE\tKEY\tALIASES")
	for _, c := range tx {
		for _, k := range c.Keys {
			names := slices.Compact(slices.Sorted(slices.Values(aliases[k])))
			if len(names) == 0 {
				names = []string{"-"}
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Name, k.Resource, k, strings.Join(names, ","))
		}
	}

	return w.Flush()
}
