package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DoyleJ11/spell-draft-backend/internal/board"
	"github.com/DoyleJ11/spell-draft-backend/internal/draft"
	"github.com/DoyleJ11/spell-draft-backend/internal/engine"
	"github.com/DoyleJ11/spell-draft-backend/internal/game"
	"github.com/DoyleJ11/spell-draft-backend/internal/logging"
	"github.com/DoyleJ11/spell-draft-backend/internal/spell"
)

type playOptions struct {
	players    []string
	spells     int
	sequential bool
	bell       bool
	logLevel   string
}

var playOpts playOptions

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Draft on this terminal, passing the keyboard between players",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := logging.New(playOpts.logLevel, true)
		if err != nil {
			return err
		}
		defer logger.Sync()
		return runPlay(cmd.InOrStdin(), cmd.OutOrStdout(), playOpts, logger)
	},
}

func init() {
	playCmd.Flags().StringSliceVar(&playOpts.players, "players", []string{"alice", "bob"}, "player names in turn order")
	playCmd.Flags().IntVar(&playOpts.spells, "spells", 10, "spells dealt to each player")
	playCmd.Flags().BoolVar(&playOpts.sequential, "seq", false, "deal predictable spells (S1, S2, ...)")
	playCmd.Flags().BoolVar(&playOpts.bell, "bell", true, "ring the terminal bell on each pick")
	playCmd.Flags().StringVar(&playOpts.logLevel, "log-level", "warn", "log level")
}

func runPlay(in io.Reader, out io.Writer, opts playOptions, logger *zap.Logger) error {
	if len(opts.players) == 0 {
		return engine.ErrNoPlayers
	}
	players := make([]*engine.Player, len(opts.players))
	for i, name := range opts.players {
		players[i] = engine.NewPlayer(fmt.Sprintf("p%d", i+1), name)
	}

	g, err := game.New(players, 0, logger.Named("game"))
	if err != nil {
		return err
	}

	var gen spell.Generator = spell.NewRandom()
	if opts.sequential {
		gen = spell.NewSequential("S")
	}
	var audio draft.Audio = game.NopAudio{}
	if opts.bell {
		audio = game.BellAudio{W: out}
	}

	panel := board.NewPanel()
	b := board.New(panel)
	ctrl, err := draft.Start(&draft.Config{
		Players:           players,
		SpellsAmount:      opts.spells,
		GenerateNewSpells: true,
		Generator:         gen,
		Host:              g,
		Board:             b,
		Audio:             audio,
		Logger:            logger.Named("draft"),
	})
	if err != nil {
		return err
	}
	if err := ctrl.Refresh(g.CurrentPlayer()); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for ctrl.Status() != engine.StatusComplete {
		fmt.Fprintf(out, "\n%s, pick a slot (0-%d):\n", ctrl.CurrentPlayer().Name, engine.GridSlots-1)
		if err := panel.Render(out); err != nil {
			return err
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			return io.ErrUnexpectedEOF
		}
		line := strings.TrimSpace(scanner.Text())
		slot, err := strconv.Atoi(line)
		if err != nil || slot < 0 || slot >= engine.GridSlots {
			fmt.Fprintf(out, "not a slot: %q\n", line)
			continue
		}

		tile := tileAt(b, slot)
		if tile == nil || tile.Occupant() == nil {
			fmt.Fprintln(out, "that slot is empty")
			continue
		}
		tile.Field.Click()
	}

	b.SetVisible(false)
	if err := panel.Render(out); err != nil {
		return err
	}
	fmt.Fprintln(out, "Draft complete.")
	for _, p := range players {
		fmt.Fprintf(out, "  %s: %s\n", p.Name, p.SelectedSpell)
	}
	return nil
}

func tileAt(b *board.Board, slot int) *board.Tile {
	for _, tile := range b.Elements() {
		if tile.Index == slot {
			return tile
		}
	}
	return nil
}
