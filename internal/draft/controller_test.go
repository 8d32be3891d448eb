package draft

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/DoyleJ11/spell-draft-backend/internal/board"
	draftmock "github.com/DoyleJ11/spell-draft-backend/internal/draft/mock"
	"github.com/DoyleJ11/spell-draft-backend/internal/engine"
	"github.com/DoyleJ11/spell-draft-backend/internal/game"
	"github.com/DoyleJ11/spell-draft-backend/internal/spell"
)

type fixture struct {
	players []*engine.Player
	host    *draftmock.MockHost
	audio   *draftmock.MockAudio
	panel   *board.Panel
	gen     *spell.SequentialGenerator
	events  []engine.Event
	ctrl    *Controller
}

// newFixture starts a session whose mocked host rotates through a real game.
func newFixture(t *testing.T, n, amount int) *fixture {
	t.Helper()
	mc := gomock.NewController(t)

	f := &fixture{
		host:  draftmock.NewMockHost(mc),
		audio: draftmock.NewMockAudio(mc),
		panel: board.NewPanel(),
		gen:   spell.NewSequential("S"),
	}
	for i := 0; i < n; i++ {
		f.players = append(f.players, engine.NewPlayer(string(rune('A'+i)), string(rune('a'+i))))
	}
	g, err := game.New(f.players, 0, nil)
	require.NoError(t, err)

	f.host.EXPECT().SwitchToNextPlayer().DoAndReturn(g.SwitchToNextPlayer).AnyTimes()
	f.host.EXPECT().CurrentPlayer().DoAndReturn(g.CurrentPlayer).AnyTimes()

	ctrl, err := Start(&Config{
		Players:           f.players,
		SpellsAmount:      amount,
		GenerateNewSpells: true,
		Generator:         f.gen,
		Host:              f.host,
		Board:             board.New(f.panel),
		Audio:             f.audio,
		Observer:          func(e engine.Event) { f.events = append(f.events, e) },
	})
	require.NoError(t, err)
	f.ctrl = ctrl
	return f
}

func (f *fixture) tile(slot int) *board.Tile {
	for _, tile := range f.ctrl.Board().Elements() {
		if tile.Index == slot {
			return tile
		}
	}
	return nil
}

func TestStart_PopulatesWithoutRendering(t *testing.T) {
	f := newFixture(t, 3, 4)

	for _, p := range f.players {
		assert.Len(t, p.AvailableSpells, 4)
	}
	assert.Equal(t, 12, f.gen.Calls())
	assert.Zero(t, f.panel.Len())
	assert.Equal(t, engine.StatusIdle, f.ctrl.Status())
}

func TestStart_SkipsGenerationWhenResuming(t *testing.T) {
	mc := gomock.NewController(t)
	p := engine.NewPlayer("A", "a")
	p.AvailableSpells = []*spell.Spell{{ID: "kept"}}

	gen := spell.NewSequential("S")
	_, err := Start(&Config{
		Players:   []*engine.Player{p},
		Generator: gen,
		Host:      draftmock.NewMockHost(mc),
		Board:     board.New(board.NewPanel()),
	})
	require.NoError(t, err)
	assert.Zero(t, gen.Calls())
	assert.Len(t, p.AvailableSpells, 1)
}

func TestStart_ValidatesConfig(t *testing.T) {
	mc := gomock.NewController(t)
	host := draftmock.NewMockHost(mc)
	b := board.New(board.NewPanel())
	players := []*engine.Player{engine.NewPlayer("A", "a")}

	cases := []struct {
		name string
		cfg  Config
	}{
		{"missing host", Config{Players: players, Board: b}},
		{"missing board", Config{Players: players, Host: host}},
		{"missing generator", Config{Players: players, Host: host, Board: b, GenerateNewSpells: true, SpellsAmount: 3}},
		{"amount too large", Config{Players: players, Host: host, Board: b, GenerateNewSpells: true, SpellsAmount: 21, Generator: spell.NewSequential("S")}},
		{"no players", Config{Host: host, Board: b}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Start(&tc.cfg)
			assert.Error(t, err)
		})
	}
}

func TestRefresh_RendersActivePlayersPool(t *testing.T) {
	f := newFixture(t, 2, 3)
	require.NoError(t, f.ctrl.Refresh(f.host.CurrentPlayer()))

	assert.Equal(t, engine.GridSlots, f.panel.Len())
	occupied := 0
	for _, tile := range f.ctrl.Board().Elements() {
		if tile.Occupant() != nil {
			occupied++
			assert.Less(t, tile.Index, 3)
		}
	}
	assert.Equal(t, 3, occupied)
	assert.Equal(t, engine.StatusAwaitingPick, f.ctrl.Status())
}

func TestRefresh_RejectsStranger(t *testing.T) {
	f := newFixture(t, 2, 1)
	err := f.ctrl.Refresh(engine.NewPlayer("Z", "z"))
	assert.ErrorIs(t, err, engine.ErrUnknownPlayer)
}

func TestHandlePick_EmptySlotIsNoOp(t *testing.T) {
	f := newFixture(t, 2, 3)
	require.NoError(t, f.ctrl.Refresh(f.host.CurrentPlayer()))
	before := f.panel.Fields()

	f.tile(10).Field.Click()

	assert.Same(t, f.players[0], f.ctrl.CurrentPlayer())
	assert.Len(t, f.players[0].AvailableSpells, 3)
	assert.Len(t, f.players[1].AvailableSpells, 3)
	assert.Equal(t, before, f.panel.Fields())
	assert.Empty(t, f.events)
}

// Two players, three spells each: the second pick ends the draft.
func TestHandlePick_TwoPlayerScenario(t *testing.T) {
	f := newFixture(t, 2, 3)
	require.NoError(t, f.ctrl.Refresh(f.host.CurrentPlayer()))

	p0, p1 := f.players[0], f.players[1]
	s0a := f.tile(0).Occupant()
	require.NotNil(t, s0a)

	gomock.InOrder(
		f.audio.EXPECT().PlaySelectionSound().Return(nil),
		f.audio.EXPECT().PlaySelectionSound().Return(nil),
		f.host.EXPECT().ChangePhase(engine.PhaseCasting).Times(1),
	)

	oldFields := f.panel.Fields()
	f.tile(0).Field.Click()

	assert.Len(t, p0.AvailableSpells, 2)
	assert.Same(t, s0a, p0.SelectedSpell)
	assert.Same(t, p1, f.ctrl.CurrentPlayer())
	assert.Equal(t, engine.StatusAwaitingPick, f.ctrl.Status())
	assert.Equal(t, engine.GridSlots, f.panel.Len())
	assert.NotEqual(t, oldFields, f.panel.Fields())
	assert.Same(t, p1.AvailableSpells[0], f.tile(0).Occupant())

	s1 := f.tile(2).Occupant()
	f.tile(2).Field.Click()

	assert.Len(t, p1.AvailableSpells, 2)
	assert.Same(t, s1, p1.SelectedSpell)
	assert.Equal(t, engine.StatusComplete, f.ctrl.Status())
	assert.Equal(t, 1, countEvents(f.events, engine.EvtDraftCompleted))
	assert.Equal(t, 2, countEvents(f.events, engine.EvtSpellPicked))
}

func TestHandlePick_AfterCompletionChangesNothing(t *testing.T) {
	f := newFixture(t, 1, 2)
	require.NoError(t, f.ctrl.Refresh(f.host.CurrentPlayer()))

	f.audio.EXPECT().PlaySelectionSound().Return(nil).Times(1)
	f.host.EXPECT().ChangePhase(engine.PhaseCasting).Times(1)

	f.tile(0).Field.Click()
	require.Equal(t, engine.StatusComplete, f.ctrl.Status())

	err := f.ctrl.HandlePick(f.tile(0))
	assert.ErrorIs(t, err, engine.ErrDraftCompleted)
	assert.Len(t, f.players[0].AvailableSpells, 1)
}

func TestHandlePick_AudioFailureIsIgnored(t *testing.T) {
	f := newFixture(t, 2, 1)
	require.NoError(t, f.ctrl.Refresh(f.host.CurrentPlayer()))

	f.audio.EXPECT().PlaySelectionSound().Return(errors.New("no device"))

	require.NoError(t, f.ctrl.HandlePick(f.tile(0)))
	assert.Same(t, f.players[1], f.ctrl.CurrentPlayer())
}

func TestHandlePick_WithoutAudio(t *testing.T) {
	mc := gomock.NewController(t)
	host := draftmock.NewMockHost(mc)
	p := engine.NewPlayer("A", "a")
	g, err := game.New([]*engine.Player{p}, 0, nil)
	require.NoError(t, err)
	host.EXPECT().SwitchToNextPlayer().DoAndReturn(g.SwitchToNextPlayer)
	host.EXPECT().ChangePhase(engine.PhaseCasting)

	ctrl, err := Start(&Config{
		Players:           g.Players(),
		SpellsAmount:      1,
		GenerateNewSpells: true,
		Generator:         spell.NewSequential("S"),
		Host:              host,
		Board:             board.New(board.NewPanel()),
	})
	require.NoError(t, err)
	require.NoError(t, ctrl.Refresh(p))
	require.NoError(t, ctrl.HandlePick(ctrl.Board().Elements()[0]))
	assert.Equal(t, engine.StatusComplete, ctrl.Status())
}

func TestSpellsAmount_SettableWithoutReplenishing(t *testing.T) {
	f := newFixture(t, 1, 2)
	f.ctrl.SetSpellsAmount(5)

	assert.Equal(t, 5, f.ctrl.SpellsAmount())
	assert.Len(t, f.players[0].AvailableSpells, 2)
}

func countEvents(events []engine.Event, eventType engine.EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == eventType {
			n++
		}
	}
	return n
}
