package root

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"questchronicles/internal/engine"
	"questchronicles/internal/tui"
	"questchronicles/internal/ui"
)

func newExploreCmd(opts *options) *cobra.Command {
	var auto bool
	var enemyKind string
	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Venture out and fight a monster",
		Long:  "Explore the wilds. The monster matches the character's level unless --enemy names one (goblin, orc, dragon).",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts, false)
			if err != nil {
				return err
			}
			c, err := s.loadCharacter(opts)
			if err != nil {
				return err
			}

			enemy := engine.EnemyForLevel(c.Level)
			if enemyKind != "" {
				if enemy, err = engine.NewEnemy(enemyKind); err != nil {
					return err
				}
			}
			b, err := s.svc.NewBattle(c, enemy)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var res engine.Result
			if auto {
				res, err = autoBattle(out, b)
			} else {
				res, err = tui.RunBattle(context.Background(), b, out)
			}
			if err != nil {
				return err
			}
			if err := s.save(c); err != nil {
				return err
			}

			fmt.Fprintf(out, "%s after %d turns\n", ui.BattleStateText(res.State), res.Turns)
			if res.State == engine.BattleEnemyWon {
				fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("Revive with: qc -c %s revive (%d gold)", c.Name, c.ReviveCost())))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&auto, "auto", false, "fight without the interactive screen, using the class ability when ready")
	cmd.Flags().StringVar(&enemyKind, "enemy", "", "fight a specific monster instead of one matched to the level")
	return cmd
}

func autoBattle(out io.Writer, b *engine.Battle) (engine.Result, error) {
	fmt.Fprintln(out, ui.Heading(ui.IconSword, fmt.Sprintf("%s vs %s", b.Character.Name, b.Enemy.Name)))
	for !b.State().Terminal() {
		rep, err := b.Turn(engine.PreferAbility(b))
		if err != nil {
			return b.Result(), err
		}
		for _, line := range tui.DescribeTurn(b, rep) {
			fmt.Fprintf(out, "%s %s\n", ui.Muted.Render(fmt.Sprintf("[%d]", rep.Turn)), line)
		}
	}
	return b.Result(), nil
}
