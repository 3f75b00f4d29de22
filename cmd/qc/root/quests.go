package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"questchronicles/internal/engine"
	"questchronicles/internal/ui"
)

func newQuestsCmd(opts *options) *cobra.Command {
	var active, completed, available bool
	var minLevel, maxLevel int
	cmd := &cobra.Command{
		Use:   "quests",
		Short: "List quests",
		Long:  "List quests. Without filters every quest is shown with its status for the selected character.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts, true)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			levelFilter := cmd.Flags().Changed("min-level") || cmd.Flags().Changed("max-level")
			if levelFilter && !active && !completed && !available && opts.character == "" {
				// Level browsing needs no character.
				ctx := context.Background()
				idx, err := s.index(ctx)
				if err != nil {
					return err
				}
				defer idx.Close()
				list, err := idx.QuestsByLevel(ctx, minLevel, maxLevel)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, ui.Heading(ui.IconQuest, fmt.Sprintf("Quests for levels %d-%d", minLevel, maxLevel)))
				printQuests(out, list, nil, s.quests)
				return nil
			}

			c, err := s.loadCharacter(opts)
			if err != nil {
				return err
			}
			var list []engine.Quest
			title := "Quest log"
			switch {
			case active:
				list, title = engine.ActiveQuests(c, s.quests), "Active quests"
			case completed:
				list, title = engine.CompletedQuests(c, s.quests), "Completed quests"
			case available:
				list, title = engine.AvailableQuests(c, s.quests), "Available quests"
			case levelFilter:
				list = engine.QuestsInLevelRange(s.quests, minLevel, maxLevel)
			default:
				for _, id := range s.quests.IDs() {
					list = append(list, s.quests[id])
				}
			}
			if levelFilter && (active || completed || available) {
				list = engine.FilterByLevel(list, minLevel, maxLevel)
			}
			fmt.Fprintln(out, ui.Heading(ui.IconQuest, title))
			printQuests(out, list, c, s.quests)
			return nil
		},
	}
	f := cmd.Flags()
	f.BoolVar(&active, "active", false, "only active quests")
	f.BoolVar(&completed, "completed", false, "only completed quests")
	f.BoolVar(&available, "available", false, "only quests the character can accept now")
	f.IntVar(&minLevel, "min-level", 1, "lowest required level to list")
	f.IntVar(&maxLevel, "max-level", 100, "highest required level to list")
	cmd.MarkFlagsMutuallyExclusive("active", "completed", "available")
	return cmd
}

func printQuests(out io.Writer, list []engine.Quest, c *engine.Character, catalog engine.QuestCatalog) {
	if len(list) == 0 {
		fmt.Fprintln(out, ui.Muted.Render("(none)"))
		return
	}
	for _, q := range list {
		status := ""
		if c != nil {
			status = " [" + ui.QuestStatus(c, q.ID, catalog) + "]"
		}
		fmt.Fprintf(out, "- %s %s%s\n", ui.Key.Render(q.ID), q.Title, status)
		details := fmt.Sprintf("  level %d, +%d XP, +%d gold", q.RequiredLevel, q.RewardXP, q.RewardGold)
		if q.HasPrerequisite() {
			details += ", after " + q.Prerequisite
		}
		fmt.Fprintln(out, ui.Muted.Render(details))
	}
}

func newAcceptCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "accept <quest_id>",
		Short: "Accept a quest",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("quest_id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts, true)
			if err != nil {
				return err
			}
			_, err = s.mutate(opts, func(c *engine.Character) error {
				return s.svc.AcceptQuest(c, args[0], s.quests)
			})
			if err != nil {
				return err
			}
			q := s.quests[args[0]]
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconScroll+" Accepted"), q.Title, ui.Muted.Render("("+q.ID+")"))
			return nil
		},
	}
}

func newAbandonCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "abandon <quest_id>",
		Short: "Drop an active quest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts, true)
			if err != nil {
				return err
			}
			_, err = s.mutate(opts, func(c *engine.Character) error {
				return s.svc.AbandonQuest(c, args[0])
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render("Abandoned"), args[0])
			return nil
		},
	}
}

func newCompleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <quest_id>",
		Short: "Complete an active quest and collect its rewards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts, true)
			if err != nil {
				return err
			}
			var r engine.Rewards
			var levelBefore int
			c, err := s.mutate(opts, func(c *engine.Character) error {
				levelBefore = c.Level
				got, err := s.svc.CompleteQuest(c, args[0], s.quests)
				r = got
				return err
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s: +%d XP, +%s\n", ui.Good.Render(ui.IconDone+" Completed"), s.quests[args[0]].Title, r.XP, ui.GoldText(r.Gold))
			if c.Level > levelBefore {
				fmt.Fprintf(out, "%s %s is now level %d\n", ui.BadgeLevelUp, c.Name, c.Level)
			}
			return nil
		},
	}
}

func newChainCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "chain <quest_id>",
		Short: "Show the prerequisite chain leading to a quest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts, true)
			if err != nil {
				return err
			}
			chain, err := engine.PrerequisiteChain(args[0], s.quests)
			if err != nil {
				return err
			}
			titles := make([]string, 0, len(chain))
			for _, id := range chain {
				titles = append(titles, fmt.Sprintf("%s %s", s.quests[id].Title, ui.Muted.Render("("+id+")")))
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconScroll, "Quest chain"))
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(titles, "\n  → "))
			return nil
		},
	}
}
