package hub

import (
	"context"
	"testing"
	"time"

	"github.com/DoyleJ11/spell-draft-backend/internal/engine"
	"github.com/DoyleJ11/spell-draft-backend/internal/lobby"
	"github.com/DoyleJ11/spell-draft-backend/internal/spell"
)

func testConfig() lobby.Config {
	return lobby.Config{
		Players:      []*engine.Player{engine.NewPlayer("a", "alice"), engine.NewPlayer("b", "bob")},
		SpellsAmount: 3,
		Generator:    spell.NewSequential("S"),
	}
}

func TestHub_Create_Get_SamePointer(t *testing.T) {
	ctx := context.Background()
	h := NewHub(ctx, nil)
	reply := make(chan Created, 1)

	h.Inbox() <- CreateLobby{Code: "ZED123", Config: testConfig(), Reply: reply}
	c1 := <-reply
	if c1.Err != nil {
		t.Fatalf("create: %v", c1.Err)
	}

	get := make(chan *lobby.Lobby, 1)
	h.Inbox() <- GetLobby{Code: "ZED123", Reply: get}
	lb2 := <-get

	if c1.Lobby == nil || lb2 == nil || c1.Lobby != lb2 {
		t.Fatalf("expected same lobby pointer")
	}
}

func TestHub_CreateTwiceReturnsExisting(t *testing.T) {
	ctx := context.Background()
	h := NewHub(ctx, nil)

	first, err := h.Create(ctx, "ZED123", testConfig())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := h.Create(ctx, "ZED123", testConfig())
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if first != second {
		t.Fatalf("expected the existing lobby back")
	}
}

func TestHub_CreateReportsConfigErrors(t *testing.T) {
	ctx := context.Background()
	h := NewHub(ctx, nil)

	if _, err := h.Create(ctx, "BAD000", lobby.Config{}); err == nil {
		t.Fatalf("expected error for lobby without players")
	}
	if h.Get(ctx, "BAD000") != nil {
		t.Fatalf("failed lobby must not be registered")
	}
}

func TestHub_RemoveShutsLobbyDown(t *testing.T) {
	ctx := context.Background()
	h := NewHub(ctx, nil)

	lb, err := h.Create(ctx, "ZED123", testConfig())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	h.Inbox() <- RemoveLobby{Code: "ZED123"}

	select {
	case <-lb.Done():
	case <-time.After(time.Second):
		t.Fatalf("removed lobby still running")
	}
	if h.Get(ctx, "ZED123") != nil {
		t.Fatalf("removed lobby still registered")
	}
}

func TestHub_ListLobbies(t *testing.T) {
	ctx := context.Background()
	h := NewHub(ctx, nil)
	for _, code := range []string{"AAA111", "BBB222"} {
		if _, err := h.Create(ctx, code, testConfig()); err != nil {
			t.Fatalf("create %s: %v", code, err)
		}
	}

	reply := make(chan []string, 1)
	h.Inbox() <- ListLobbies{Reply: reply}
	if codes := <-reply; len(codes) != 2 {
		t.Fatalf("want 2 lobbies, got %v", codes)
	}
}

func TestHub_FinishedLobbyIsDisposed(t *testing.T) {
	ctx := context.Background()
	h := NewHub(ctx, nil)

	cfg := testConfig()
	cfg.Players = cfg.Players[:1]
	cfg.SpellsAmount = 1
	cfg.Linger = 20 * time.Millisecond

	lb, err := h.Create(ctx, "FIN001", cfg)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := lb.Pick(ctx, 0, "a"); err != nil {
		t.Fatalf("pick: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for len(h.List(ctx)) != 0 {
		select {
		case <-deadline:
			t.Fatalf("finished lobby still registered: %v", h.List(ctx))
		case <-time.After(10 * time.Millisecond):
		}
	}
	if h.Get(ctx, "FIN001") != nil {
		t.Fatalf("finished lobby still reachable")
	}
}

func TestHub_RemoveHelper(t *testing.T) {
	ctx := context.Background()
	h := NewHub(ctx, nil)

	if h.Remove(ctx, "NOPE00") {
		t.Fatalf("removing an unknown lobby should report false")
	}
	lb, err := h.Create(ctx, "ZED123", testConfig())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !h.Remove(ctx, "ZED123") {
		t.Fatalf("remove reported no lobby")
	}
	select {
	case <-lb.Done():
	case <-time.After(time.Second):
		t.Fatalf("removed lobby still running")
	}
	if codes := h.List(ctx); len(codes) != 0 {
		t.Fatalf("want no lobbies, got %v", codes)
	}
}
