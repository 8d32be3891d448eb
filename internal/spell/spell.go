package spell

import (
	"fmt"
	"math/rand/v2"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Kind string

const (
	KindCreature Kind = "creature"
	KindAttack   Kind = "attack"
	KindDefence  Kind = "defence"
	KindWorld    Kind = "world"
)

// Spell is one pickable effect. Pools hold *Spell and compare by pointer,
// so two spells that share a name are still different pool entries.
type Spell struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Kind      Kind   `json:"kind"`
	Alignment int    `json:"alignment"` // >0 law, <0 chaos
}

func (s *Spell) String() string {
	if s == nil {
		return ""
	}
	return fmt.Sprintf("%s (%s)", s.Name, s.Kind)
}

// Generator hands out a fresh spell on every call. Duplicates are allowed.
type Generator interface {
	Generate() *Spell
}

type entry struct {
	name      string
	kind      Kind
	alignment int
}

var catalogue = []entry{
	{"magic bolt", KindAttack, 0},
	{"lightning", KindAttack, 0},
	{"magic fire", KindWorld, -1},
	{"gooey blob", KindWorld, -1},
	{"golden dragon", KindCreature, 2},
	{"red dragon", KindCreature, -2},
	{"vampire", KindCreature, -1},
	{"gryphon", KindCreature, 1},
	{"skeleton", KindCreature, -1},
	{"subversion", KindAttack, 0},
	{"raise dead", KindAttack, -1},
	{"magic shield", KindDefence, 1},
	{"magic armour", KindDefence, 1},
	{"magic sword", KindDefence, 1},
	{"magic knife", KindDefence, 1},
	{"magic bow", KindDefence, 1},
	{"magic wings", KindDefence, 0},
	{"shadow form", KindDefence, 0},
	{"wall", KindWorld, 0},
	{"magic castle", KindWorld, 1},
	{"dark citadel", KindWorld, -1},
	{"law-1", KindWorld, 2},
	{"chaos-1", KindWorld, -2},
	{"justice", KindAttack, 2},
	{"vengeance", KindAttack, -1},
	{"dark power", KindAttack, -2},
	{"decree", KindAttack, 1},
	{"disbelieve", KindAttack, 0},
	{"turmoil", KindWorld, -2},
}

var titler = cases.Title(language.English)

// RandomGenerator draws uniformly from the built-in catalogue.
// It is not safe for concurrent use.
type RandomGenerator struct {
	rng *rand.Rand
}

func NewRandom() *RandomGenerator {
	return NewSeeded(rand.Uint64(), rand.Uint64())
}

// NewSeeded returns a generator whose sequence is fully determined by the seeds.
func NewSeeded(seed1, seed2 uint64) *RandomGenerator {
	return &RandomGenerator{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

func (g *RandomGenerator) Generate() *Spell {
	e := catalogue[g.rng.IntN(len(catalogue))]
	return &Spell{
		ID:        uuid.NewString(),
		Name:      titler.String(e.name),
		Kind:      e.kind,
		Alignment: e.alignment,
	}
}

// SequentialGenerator produces S1, S2, ... and counts calls.
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

func (g *SequentialGenerator) Generate() *Spell {
	n := atomic.AddUint64(&g.counter, 1)
	id := fmt.Sprintf("%s%d", g.prefix, n)
	return &Spell{ID: id, Name: id, Kind: KindAttack}
}

// Calls reports how many spells have been generated so far.
func (g *SequentialGenerator) Calls() int {
	return int(atomic.LoadUint64(&g.counter))
}
