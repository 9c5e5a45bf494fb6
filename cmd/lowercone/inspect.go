package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/chirotope"
	"github.com/wippyai/chirotope/axiom"
	"github.com/wippyai/chirotope/basis"
	"github.com/wippyai/chirotope/catalog"
	"github.com/wippyai/chirotope/errors"
	"github.com/wippyai/chirotope/perm"
	"github.com/wippyai/chirotope/symmetry"
)

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Check every entry of a catalogue against the chirotope axioms",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tab, err := basis.New(a.cfg.Rank, a.cfg.Elements)
			if err != nil {
				return err
			}
			r, err := catalog.Open(args[0], tab.Count())
			if err != nil {
				return err
			}
			defer r.Close()

			list, err := chirotope.Collect(r)
			if err != nil {
				return err
			}

			ch := axiom.NewChecker(tab)
			entries, invalid := len(list), 0
			for i, c := range list {
				if verr := ch.Explain(c); verr != nil {
					invalid++
					fmt.Fprintf(a.out, "entry %d: %v\n", i, verr)
				}
			}

			fmt.Fprintf(a.out, "%d entries, %d chirotopes, %d invalid\n", entries, entries-invalid, invalid)
			a.log.Info("catalogue checked",
				zap.String("file", args[0]),
				zap.Int("entries", entries),
				zap.Int("invalid", invalid))
			if invalid > 0 {
				return errors.New(errors.PhaseAxiom, errors.KindViolation).
					Path(args[0]).
					Value(invalid).
					Detail("%d of %d entries are not chirotopes", invalid, entries).
					Build()
			}
			return nil
		},
	}
}

func (a *app) fixedCmd() *cobra.Command {
	var (
		groupFile string
		symmetric bool
		outFile   string
	)
	cmd := &cobra.Command{
		Use:   "fixed <file>",
		Short: "List the entries of a catalogue fixed by a group action",
		Long: `Reads a catalogue and keeps the entries that every element of the group
maps to themselves up to global sign. The group is read from --group (one
permutation per line, identity first), from group_file in the config, or is
the full symmetric group with --symmetric. Kept entries are written in
standard form.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tab, err := basis.New(a.cfg.Rank, a.cfg.Elements)
			if err != nil {
				return err
			}
			if groupFile == "" {
				groupFile = a.cfg.GroupFile
			}
			g, err := loadGroup(groupFile, symmetric, tab.Elements())
			if err != nil {
				return err
			}
			acts, err := symmetry.New(tab).Compile(g)
			if err != nil {
				return err
			}

			r, err := catalog.Open(args[0], tab.Count())
			if err != nil {
				return err
			}
			defer r.Close()

			header := fmt.Sprintf("Chirotopes fixed by a group of %d permutations, rank %d on %d elements:",
				g.Len(), tab.Rank(), tab.Elements())
			var w *catalog.Writer
			if outFile != "" {
				w, err = catalog.Create(outFile, header)
			} else {
				w, err = catalog.NewWriter(a.out, "stdout", header)
			}
			if err != nil {
				return err
			}

			entries := 0
			for {
				c, err := r.Next()
				if err == io.EOF {
					break
				}
				if err != nil {
					w.Close()
					return err
				}
				entries++
				if symmetry.IsFixedBy(c, acts) {
					if err := w.Emit(c.Standardize()); err != nil {
						w.Close()
						return err
					}
				}
			}
			if err := w.Close(); err != nil {
				return err
			}
			a.log.Info("fixed entries selected",
				zap.String("file", args[0]),
				zap.Int("group", g.Len()),
				zap.Int("entries", entries),
				zap.Int("fixed", w.Count()))
			if outFile != "" {
				fmt.Fprintf(a.out, "%d of %d entries fixed\n", w.Count(), entries)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&groupFile, "group", "", "group action file")
	cmd.Flags().BoolVar(&symmetric, "symmetric", false, "use the full symmetric group")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "write kept entries to this file instead of stdout")
	return cmd
}

func loadGroup(path string, symmetric bool, n int) (*perm.Group, error) {
	switch {
	case symmetric:
		return perm.SymmetricGroup(n)
	case path == "":
		return nil, errors.InvalidInput(errors.PhaseSymmetry, "no group action given, use --group or --symmetric")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.IO(errors.PhaseLoad, path, err)
	}
	defer f.Close()
	return perm.ParseGroup(f, n)
}

func (a *app) basesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bases",
		Short: "Print the basis table in index order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tab, err := basis.New(a.cfg.Rank, a.cfg.Elements)
			if err != nil {
				return err
			}
			var b strings.Builder
			for i := 0; i < tab.Count(); i++ {
				b.Reset()
				for k, e := range tab.Basis(i) {
					if k > 0 {
						b.WriteByte(' ')
					}
					fmt.Fprintf(&b, "%d", e)
				}
				fmt.Fprintf(a.out, "%d: %s\n", i, b.String())
			}
			return nil
		},
	}
}
