package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"focusquest/internal/views"
)

func (c *CLI) newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show level, rank, experience, coins and stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.app.Progress.CheckDailyReset()
			views.RenderNotices(c.stdout, c.app.Progress)
			views.RenderProfile(c.stdout, c.app.Progress.Profile())
			return nil
		},
	}
}

func (c *CLI) newAchievementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "achievements",
		Short: "Show the achievement catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			views.RenderAchievements(c.stdout, c.app.Progress)
			return nil
		},
	}
}

func (c *CLI) newShopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shop",
		Short: "Show the item shop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			views.RenderShop(c.stdout, c.app.Progress)
			return nil
		},
	}
}

func (c *CLI) newBuyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buy <item-id>",
		Short: "Buy a shop item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := c.app.Progress.Purchase(args[0])
			if !res.OK {
				return errors.New(res.Message)
			}
			fmt.Fprintln(c.stdout, res.Message)
			views.RenderNotices(c.stdout, c.app.Progress)
			return nil
		},
	}
}

func (c *CLI) newUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <item-id>",
		Short: "Activate or deactivate an owned theme or cosmetic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := c.app.Progress.ActivateOrDeactivate(args[0])
			if !res.OK {
				return errors.New(res.Message)
			}
			fmt.Fprintln(c.stdout, res.Message)
			return nil
		},
	}
}
