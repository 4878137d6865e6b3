package main

import (
	"errors"
	"fmt"

	"github.com/aevon-lab/affinity/internal/core/storage"
	"github.com/aevon-lab/affinity/internal/profile"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	profileGroup string
	profileUser  string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Print a member's profile for today",
	Long:  "Scores today's counters for one member. The per-member query cooldown applies to the HTTP API only.",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd, true)
		if err != nil {
			return err
		}
		defer store.Close()

		loc, err := cfg.Ingestion.Location()
		if err != nil {
			return err
		}

		svc := profile.NewService(store, nil, profile.Options{
			MinMessages: cfg.Profile.MinMessages,
			Location:    loc,
		})

		p, err := svc.Profile(cmd.Context(), profileGroup, profileUser)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			fmt.Println(color.YellowString("No activity recorded today for %s in %s.", profileUser, profileGroup))
			return nil
		case errors.Is(err, profile.ErrInsufficientData):
			fmt.Println(color.YellowString("Not enough data yet: %v", err))
			return nil
		case err != nil:
			return err
		}

		printProfile(p)
		return nil
	},
}

func init() {
	profileCmd.Flags().StringVarP(&profileGroup, "group", "g", "", "Group id")
	profileCmd.Flags().StringVarP(&profileUser, "user", "u", "", "User id")
	_ = profileCmd.MarkFlagRequired("group")
	_ = profileCmd.MarkFlagRequired("user")
}

func printProfile(p *profile.Profile) {
	bold := color.New(color.Bold).SprintFunc()

	fmt.Printf("%s %s @ %s (%s)\n", bold("Profile"), p.UserID, p.GroupID, p.Day)
	fmt.Printf("  archetype: %s\n", color.MagentaString(p.ArchetypeLabel))
	fmt.Printf("  composite: %s\n", scoreColor(p.Scores.Composite))
	fmt.Printf("  simp: %s  vibe: %s  ick: %s  nostalgia: %s\n",
		scoreColor(p.Scores.Simp), scoreColor(p.Scores.Vibe),
		scoreColor(p.Scores.Ick), scoreColor(p.Scores.Nostalgia))
	if p.CarryOver != nil {
		fmt.Printf("  carried over from yesterday: %d\n", *p.CarryOver)
	}

	c := p.Counters
	fmt.Printf("  messages: %d  images: %d  topics: %d  repeats: %d  recalls: %d\n",
		c.MessagesSent, c.ImagesSent, c.Topics, c.Repeats, c.Recalls)
	fmt.Printf("  replies: %d sent / %d received  pokes: %d / %d  reactions: %d / %d\n",
		c.RepliesSent, c.RepliesReceived, c.PokesSent, c.PokesReceived, c.ReactionsSent, c.ReactionsReceived)
}

func scoreColor(v int) string {
	switch {
	case v >= 70:
		return color.GreenString("%d", v)
	case v >= 30:
		return color.YellowString("%d", v)
	default:
		return color.RedString("%d", v)
	}
}
