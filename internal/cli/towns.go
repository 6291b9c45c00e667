package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"dongne/internal/domain"
	"dongne/internal/town"
)

func townsCmd(opts *options) *cobra.Command {
	c := &cobra.Command{
		Use:   "towns",
		Short: "Show or change the saved neighborhoods",
	}

	c.AddCommand(townsShowCmd(opts))
	c.AddCommand(townsSetCmd(opts))
	c.AddCommand(townsClearCmd(opts))
	return c
}

func townsShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the saved neighborhoods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := openSession(opts, nil)
			if err != nil {
				return err
			}
			printTowns(cmd.OutOrStdout(), sess.towns.Snapshot())
			return nil
		},
	}
}

func townsSetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "set <first> [second]",
		Short: "Replace the saved neighborhoods (ids or names)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(opts, nil)
			if err != nil {
				return err
			}

			policy, _ := sess.cfg.ClearPolicy()
			sess.towns = town.NewState(town.WithClearPolicy(policy))

			slots := []domain.Slot{domain.SlotFirst, domain.SlotSecond}
			for i, key := range args {
				n, err := sess.catalog.Lookup(key)
				if err != nil {
					return fmt.Errorf("%s: %w", key, err)
				}
				if err := sess.towns.Assign(slots[i], n); err != nil {
					return err
				}
			}

			path, err := sess.save()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printTowns(out, sess.towns.Snapshot())
			fmt.Fprintf(out, "saved to %s\n", path)
			return nil
		},
	}
}

func townsClearCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <first|second>",
		Short: "Remove one saved neighborhood",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := domain.ParseSlot(args[0])
			if err != nil {
				return err
			}

			sess, err := openSession(opts, nil)
			if err != nil {
				return err
			}
			if err := sess.towns.Clear(slot); err != nil {
				return err
			}

			path, err := sess.save()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printTowns(out, sess.towns.Snapshot())
			fmt.Fprintf(out, "saved to %s\n", path)
			return nil
		},
	}
}

func printTowns(w io.Writer, s town.Snapshot) {
	if s.Count() == 0 {
		fmt.Fprintln(w, "(no neighborhoods set)")
		return
	}
	for i, slot := range []domain.Slot{domain.SlotFirst, domain.SlotSecond} {
		if n, ok := s.Town(slot); ok {
			fmt.Fprintf(w, "%d. %s (%s) [%s]\n", i+1, n.DisplayName(), n.District, n.ID)
		}
	}
}
