package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/pkg/host/memtree"
)

func diffCmd(a *app) *cobra.Command {
	var html bool

	cmd := &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Print the host mutations between two documents",
		Long: `Mount the old document, update it to the new one and print the host
mutations the update applied, one per line.

Examples:
  vtree diff v1.json v2.json
  vtree diff --html v1.yaml v2.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd.Context(), a, cmd.OutOrStdout(), args[0], args[1], html)
		},
	}

	cmd.Flags().BoolVar(&html, "html", false, "Also print the HTML after the update")

	return cmd
}

func runDiff(ctx context.Context, a *app, out io.Writer, oldRef, newRef string, html bool) error {
	loader := a.newLoader()
	oldTree, err := loader.Load(ctx, oldRef)
	if err != nil {
		return err
	}
	newTree, err := loader.Load(ctx, newRef)
	if err != nil {
		return err
	}

	mt := memtree.New()
	container := mt.Container("body")
	rec := a.newReconciler(mt)
	root, err := rec.Mount(ctx, oldTree, container)
	if err != nil {
		return err
	}

	mt.Reset()
	if _, err := rec.Update(ctx, root, newTree); err != nil {
		return err
	}

	muts := mt.Mutations()
	if len(muts) == 0 {
		fmt.Fprintln(out, "no changes")
	}
	printMutations(out, muts)
	if html {
		fmt.Fprintln(out)
		fmt.Fprintln(out, container.InnerHTML())
	}
	return nil
}
