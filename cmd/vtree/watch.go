package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/internal/watch"
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/host/memtree"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func watchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <document>",
		Short: "Re-render a document on every change",
		Long: `Render a local document, then watch it and print the host mutations
of every re-render. Component state survives across changes when the
component keeps its place in the tree.

Examples:
  vtree watch tree.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, a, cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0])
		},
	}
	return cmd
}

// watchSession re-renders one document into one host tree.
type watchSession struct {
	ref string
	out io.Writer
	rec *reconcile.Reconciler

	tree      *memtree.Tree
	container *memtree.Node
	root      host.Node
}

func runWatch(ctx context.Context, a *app, out, errOut io.Writer, ref string) error {
	if err := requireLocal(ref); err != nil {
		return err
	}

	ws := &watchSession{ref: ref, out: out, tree: memtree.New()}
	ws.container = ws.tree.Container("body")
	ws.rec = a.newReconciler(ws.tree)
	loader := a.newLoader()

	tree, err := loader.Load(ctx, ref)
	if err != nil {
		return err
	}
	if ws.root, err = ws.rec.Mount(ctx, tree, ws.container); err != nil {
		return err
	}
	fmt.Fprintln(out, ws.container.InnerHTML())

	w := watch.NewWatcher(watch.WatcherConfig{
		Paths:    []string{strings.TrimPrefix(ref, "file://")},
		Ignore:   a.cfg.Watch.Ignore,
		Debounce: a.cfg.DebounceDuration(),
		Logger:   a.logger,
	})
	w.OnChange(func(c watch.Change) {
		if c.Op == watch.OpRemove {
			a.logger.Warn("document removed, waiting for it to come back", "path", c.Path)
			return
		}
		tree, err := loader.Load(ctx, ref)
		if err == nil {
			err = ws.apply(ctx, tree)
		}
		if err != nil {
			errors.Fprint(errOut, err)
		}
	})

	a.logger.Info("watching", "path", ref)
	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if ws.root == nil {
		return nil
	}
	return ws.rec.Unmount(ws.root)
}

// apply reconciles tree against the mounted root and prints the mutations.
func (ws *watchSession) apply(ctx context.Context, tree *vdom.VNode) error {
	ws.tree.Reset()

	var (
		next host.Node
		err  error
	)
	if ws.root == nil {
		next, err = ws.rec.Mount(ctx, tree, ws.container)
	} else {
		next, err = ws.rec.Update(ctx, ws.root, tree)
	}
	if err != nil {
		// Go on from whatever the failed pass left mounted.
		ws.root = nil
		if children := ws.container.ChildNodes(); len(children) > 0 {
			ws.root = children[0]
		}
		return err
	}
	ws.root = next

	muts := ws.tree.Mutations()
	fmt.Fprintf(ws.out, "--- %s: %d mutations\n", ws.ref, len(muts))
	printMutations(ws.out, muts)
	return nil
}
