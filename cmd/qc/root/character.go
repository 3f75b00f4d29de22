package root

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"questchronicles/internal/engine"
	"questchronicles/internal/storage"
	"questchronicles/internal/ui"
)

func newNewCmd(opts *options) *cobra.Command {
	var class string
	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a new character",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("character name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts, false)
			if err != nil {
				return err
			}
			if _, err := storage.LoadCharacter(s.cfg.SaveDir, args[0]); err == nil {
				return fmt.Errorf("a character named %q already exists", args[0])
			} else if !errors.Is(err, storage.ErrCharacterNotFound) {
				return err
			}

			c, err := engine.NewCharacter(args[0], class)
			if err != nil {
				return err
			}
			if err := s.save(c); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s the %s enters the world.\n", ui.Good.Render(ui.IconSparkle+" Created"), c.Name, ui.ClassText(c.Class))
			fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("Play with: qc -c %s status", c.Name)))
			return nil
		},
	}
	names := make([]string, 0, len(engine.Classes))
	for _, cl := range engine.Classes {
		names = append(names, strings.ToLower(string(cl)))
	}
	cmd.Flags().StringVar(&class, "class", "warrior", "character class ("+strings.Join(names, ", ")+")")
	return cmd
}

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show character stats, equipment and quest progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts, true)
			if err != nil {
				return err
			}
			c, err := s.loadCharacter(opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderStatus(c, s.quests))
			return nil
		},
	}
}

func renderStatus(c *engine.Character, quests engine.QuestCatalog) string {
	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconSparkle, c.Name) + " " + ui.ClassText(c.Class) + "\n")
	if c.IsDead() {
		b.WriteString(ui.Bad.Render(ui.IconSkull+" Fallen") + ui.Muted.Render(fmt.Sprintf(" (revive for %d gold)", c.ReviveCost())) + "\n")
	}
	b.WriteString(ui.LabelValue("Level", c.Level) + "\n")
	b.WriteString(ui.LabelValue("XP", fmt.Sprintf("%d / %d", c.Experience, engine.XPToNextLevel(c.Level))) + "\n")
	b.WriteString(ui.LabelValue("Health", ui.HealthBar(c.Health, c.MaxHealth, 20)) + "\n")
	b.WriteString(ui.LabelValue("Strength", c.Strength) + "\n")
	b.WriteString(ui.LabelValue("Magic", c.Magic) + "\n")
	b.WriteString(ui.LabelValue("Gold", ui.GoldText(c.Gold)) + "\n")
	b.WriteString(ui.LabelValue("Weapon", equippedText(c.EquippedWeapon)) + "\n")
	b.WriteString(ui.LabelValue("Armor", equippedText(c.EquippedArmor)))

	p := engine.QuestProgress(c, quests)
	quest := []string{
		ui.PanelTitle.Render(ui.IconScroll + " Quests"),
		fmt.Sprintf("%d active, %d completed, %d available", p.Active, p.Completed, p.Available),
		fmt.Sprintf("%.0f%% of %d complete (+%d XP, +%d gold earned)", p.Percentage, p.Total, p.Earned.XP, p.Earned.Gold),
	}
	return ui.Panel.Render(b.String()) + "\n" + ui.Panel.Render(strings.Join(quest, "\n"))
}

func equippedText(e *engine.Equipment) string {
	if e == nil {
		return ui.Muted.Render("none")
	}
	return fmt.Sprintf("%s %s", e.ItemID, ui.Muted.Render("("+e.Effect+")"))
}

func newReviveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "revive",
		Short: "Pay to bring a fallen character back at half health",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts, false)
			if err != nil {
				return err
			}
			var cost int
			c, err := s.mutate(opts, func(c *engine.Character) error {
				if !c.IsDead() {
					return fmt.Errorf("%s is not dead", c.Name)
				}
				paid, err := s.svc.ReviveForGold(c)
				cost = paid
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s returns with %d health (-%s).\n",
				ui.Good.Render(ui.IconHeart+" Revived"), c.Name, c.Health, ui.GoldText(cost))
			return nil
		},
	}
}

func newSavesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "saves",
		Short: "List saved characters",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts, false)
			if err != nil {
				return err
			}
			names, err := storage.ListSavedCharacters(s.cfg.SaveDir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Saved characters"))
			if len(names) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(none yet; create one with qc new <name>)"))
				return nil
			}
			for _, name := range names {
				c, err := storage.LoadCharacter(s.cfg.SaveDir, name)
				if err != nil {
					fmt.Fprintf(out, "- %s %s\n", name, ui.Bad.Render("(unreadable: "+err.Error()+")"))
					continue
				}
				fmt.Fprintf(out, "- %s %s %s\n", c.Name, ui.ClassText(c.Class), ui.Muted.Render(fmt.Sprintf("level %d", c.Level)))
			}
			return nil
		},
	}
}

func newDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts, false)
			if err != nil {
				return err
			}
			if err := storage.DeleteCharacter(s.cfg.SaveDir, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render("Deleted"), args[0])
			return nil
		},
	}
}

func newInitDataCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init-data",
		Short: "Write the default quest and item catalogs if they are missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts, false)
			if err != nil {
				return err
			}
			created, err := storage.CreateDefaultDataFiles(s.cfg.DataDir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(created) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("Catalogs already present in "+s.cfg.DataDir))
				return nil
			}
			for _, path := range created {
				fmt.Fprintf(out, "%s %s\n", ui.Good.Render(ui.IconDone+" Wrote"), path)
			}
			return nil
		},
	}
}
