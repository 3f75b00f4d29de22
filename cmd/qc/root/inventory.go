package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"questchronicles/internal/engine"
	"questchronicles/internal/storage"
	"questchronicles/internal/ui"
)

func newInventoryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inventory",
		Short: "List carried items and equipment",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts, true)
			if err != nil {
				return err
			}
			c, err := s.loadCharacter(opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconBox, "Inventory")+" "+
				ui.Muted.Render(fmt.Sprintf("(%d/%d)", len(c.Inventory), s.svc.Rules().InventoryCapacity)))
			counts := engine.ItemCounts(c)
			if len(counts) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(empty)"))
			}
			for _, ic := range counts {
				it, ok := s.items.Get(ic.ItemID)
				if !ok {
					fmt.Fprintf(out, "- %s x%d %s\n", ic.ItemID, ic.Quantity, ui.Muted.Render("(unknown item)"))
					continue
				}
				fmt.Fprintf(out, "- %s %s x%d %s\n", ui.ItemIcon(it.Type), it.Name, ic.Quantity, ui.Muted.Render(ic.ItemID+" "+it.Effect))
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.LabelValue("Weapon", equippedText(c.EquippedWeapon)))
			fmt.Fprintln(out, ui.LabelValue("Armor", equippedText(c.EquippedArmor)))
			fmt.Fprintln(out, ui.LabelValue("Gold", ui.GoldText(c.Gold)))
			return nil
		},
	}
}

func newUseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "use <item_id>",
		Short: "Use a consumable item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts, true)
			if err != nil {
				return err
			}
			it, err := s.item(args[0])
			if err != nil {
				return err
			}
			var eff engine.Effect
			c, err := s.mutate(opts, func(c *engine.Character) error {
				e, err := s.svc.UseItem(c, args[0], it)
				eff = e
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s). Health %s\n",
				ui.Good.Render(ui.IconPotion+" Used"), it.Name, eff, ui.HealthBar(c.Health, c.MaxHealth, 20))
			return nil
		},
	}
}

func newEquipCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "equip <item_id>",
		Short: "Equip a weapon or armor from the inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts, true)
			if err != nil {
				return err
			}
			it, err := s.item(args[0])
			if err != nil {
				return err
			}
			var res engine.EquipResult
			_, err = s.mutate(opts, func(c *engine.Character) error {
				var err error
				switch it.Type {
				case engine.ItemArmor:
					res, err = s.svc.EquipArmor(c, args[0], it)
				default:
					res, err = s.svc.EquipWeapon(c, args[0], it)
				}
				return err
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.Unequipped != "" {
				fmt.Fprintf(out, "%s %s\n", ui.Muted.Render("Unequipped"), res.Unequipped)
			}
			fmt.Fprintf(out, "%s %s %s\n", ui.Good.Render(ui.ItemIcon(it.Type)+" Equipped"), it.Name, ui.Muted.Render("("+res.Effect.String()+")"))
			return nil
		},
	}
}

func newUnequipCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:       "unequip weapon|armor",
		Short:     "Return an equipped item to the inventory",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"weapon", "armor"},
		RunE: func(cmd *cobra.Command, args []string) error {
			slot := engine.SlotWeapon
			if strings.EqualFold(args[0], "armor") {
				slot = engine.SlotArmor
			}
			s, err := openSession(opts, false)
			if err != nil {
				return err
			}
			var id string
			var ok bool
			_, err = s.mutate(opts, func(c *engine.Character) error {
				var err error
				id, ok, err = s.svc.Unequip(c, slot)
				return err
			})
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Nothing equipped in the "+slot.String()+" slot."))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render("Unequipped"), id)
			return nil
		},
	}
}

func newDiscardCmd(opts *options) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "discard [item_id]",
		Short: "Throw away one item, or everything with --all",
		Args: func(cmd *cobra.Command, args []string) error {
			if all && len(args) > 0 {
				return errors.New("pass an item_id or --all, not both")
			}
			if !all && len(args) != 1 {
				return errors.New("item_id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts, false)
			if err != nil {
				return err
			}
			var removed []string
			_, err = s.mutate(opts, func(c *engine.Character) error {
				if all {
					removed = engine.ClearInventory(c)
					return nil
				}
				if err := s.svc.RemoveItem(c, args[0]); err != nil {
					return err
				}
				removed = []string{args[0]}
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d item(s)\n", ui.Warn.Render("Discarded"), len(removed))
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "empty the whole inventory")
	return cmd
}

func newShopCmd(opts *options) *cobra.Command {
	var typ string
	var maxCost int
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Browse items for sale",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := storage.ShopFilter{MaxCost: maxCost}
			if typ != "" {
				t, err := engine.ParseItemType(typ)
				if err != nil {
					return err
				}
				f.Type = t
			}
			s, err := openSession(opts, true)
			if err != nil {
				return err
			}
			ctx := context.Background()
			idx, err := s.index(ctx)
			if err != nil {
				return err
			}
			defer idx.Close()

			list, err := idx.ShopListing(ctx, f)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconCoin, "Shop"))
			if len(list) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(nothing matches)"))
				return nil
			}
			for _, it := range list {
				fmt.Fprintf(out, "- %s %-20s %s %s\n", ui.ItemIcon(it.Type), it.Name, ui.GoldText(it.Cost),
					ui.Muted.Render(fmt.Sprintf("%s, %s. %s", it.ID, it.Effect, it.Description)))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&typ, "type", "", "only list weapon, armor or consumable items")
	cmd.Flags().IntVar(&maxCost, "max-cost", 0, "only list items costing at most this much gold")
	return cmd
}

func newBuyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "buy <item_id>",
		Short: "Buy an item from the shop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts, true)
			if err != nil {
				return err
			}
			it, err := s.item(args[0])
			if err != nil {
				return err
			}
			c, err := s.mutate(opts, func(c *engine.Character) error {
				return s.svc.PurchaseItem(c, args[0], it)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s for %s (%s left)\n",
				ui.Good.Render(ui.ItemIcon(it.Type)+" Bought"), it.Name, ui.GoldText(it.Cost), ui.GoldText(c.Gold))
			return nil
		},
	}
}

func newSellCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sell <item_id>",
		Short: "Sell an item for half its cost",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts, true)
			if err != nil {
				return err
			}
			it, err := s.item(args[0])
			if err != nil {
				return err
			}
			var price int
			_, err = s.mutate(opts, func(c *engine.Character) error {
				p, err := s.svc.SellItem(c, args[0], it)
				price = p
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s for %s\n", ui.Good.Render("Sold"), it.Name, ui.GoldText(price))
			return nil
		},
	}
}
