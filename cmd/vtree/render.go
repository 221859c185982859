package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/pkg/host/memtree"
)

func renderCmd(a *app) *cobra.Command {
	var mutations bool

	cmd := &cobra.Command{
		Use:   "render <document>",
		Short: "Render a tree document to HTML",
		Long: `Render a tree document to HTML.

The document is a local JSON or YAML file, or an s3://bucket/key object.

Examples:
  vtree render tree.json
  vtree render --mutations tree.yaml
  vtree render s3://docs/tree.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), a, cmd.OutOrStdout(), args[0], mutations)
		},
	}

	cmd.Flags().BoolVarP(&mutations, "mutations", "m", false, "Also print the host mutations")

	return cmd
}

func runRender(ctx context.Context, a *app, out io.Writer, ref string, mutations bool) error {
	tree, err := a.newLoader().Load(ctx, ref)
	if err != nil {
		return err
	}

	mt := memtree.New()
	container := mt.Container("body")
	if _, err := a.newReconciler(mt).Mount(ctx, tree, container); err != nil {
		return err
	}

	fmt.Fprintln(out, container.InnerHTML())
	if mutations {
		fmt.Fprintln(out)
		printMutations(out, mt.Mutations())
	}
	return nil
}

func printMutations(out io.Writer, muts []memtree.Mutation) {
	for _, m := range muts {
		fmt.Fprintln(out, m.String())
	}
}
