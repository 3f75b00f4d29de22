package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"questchronicles/internal/ui"
)

const Version = "0.1.0"

// options are the persistent flags shared by every command.
type options struct {
	configPath string
	character  string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "qc",
		Short:         "Quest Chronicles: a text RPG in your terminal",
		Long:          "Quest Chronicles is a single-player text RPG: create a hero, take quests, trade gear and fight monsters.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Version = Version
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "path to a YAML config file (default ./"+configDefaultName+")")
	pf.StringVarP(&opts.character, "character", "c", "", "name of the saved character to play")
	pf.BoolVar(&opts.verbose, "verbose", false, "log level ups and battle events to stderr")

	cmd.AddCommand(
		newInitDataCmd(opts),
		newNewCmd(opts),
		newStatusCmd(opts),
		newInventoryCmd(opts),
		newUseCmd(opts),
		newEquipCmd(opts),
		newUnequipCmd(opts),
		newDiscardCmd(opts),
		newShopCmd(opts),
		newBuyCmd(opts),
		newSellCmd(opts),
		newQuestsCmd(opts),
		newAcceptCmd(opts),
		newAbandonCmd(opts),
		newCompleteCmd(opts),
		newChainCmd(opts),
		newExploreCmd(opts),
		newReviveCmd(opts),
		newSavesCmd(opts),
		newDeleteCmd(opts),
	)
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
