package registry

import (
	"testing"

	"github.com/vovakirdan/pacman-arcade/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func register(id string) {
	Register(id, func() Game { return &stubGame{id: id} })
}

func TestRegisterAndCreate(t *testing.T) {
	register("zeta")
	register("alpha")

	if !Exists("zeta") || Exists("missing") {
		t.Fatal("Exists() does not match registered games")
	}

	g, err := Create("alpha")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.Title() != "Stub alpha" {
		t.Errorf("Title() = %q, expected %q", g.Title(), "Stub alpha")
	}
	if _, err := Create("missing"); err == nil {
		t.Error("Create() of an unknown game returned no error")
	}

	list := List()
	if len(list) < 2 || list[len(list)-2].ID != "zeta" || list[len(list)-1].ID != "alpha" {
		t.Errorf("List() = %v, expected registration order", list)
	}

	ids := IDs()
	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Errorf("IDs() = %v, expected sorted", ids)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	register("dup")
	defer func() {
		if recover() == nil {
			t.Error("Register() of a duplicate ID did not panic")
		}
	}()
	register("dup")
}
