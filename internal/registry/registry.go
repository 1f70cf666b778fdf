// Package registry keeps the cabinets the platform can run.
// Cabinets register themselves in init() functions, so the CLI and the SSH
// server discover them through a blank import.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/pacman-arcade/internal/core"
)

// Game is the interface every cabinet implements.
// The simulation behind it knows nothing about Bubble Tea: the platform
// maps keys to actions, drives the fixed tick and displays the screen.
type Game interface {
	// ID returns a unique identifier such as "pacman" or "mspacman".
	// Used for CLI arguments and score storage.
	ID() string

	// Title returns the cabinet name shown in menus.
	Title() string

	// Reset builds a fresh cabinet for the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current frame into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the score, level and game over/paused flags.
	State() core.GameState
}

// GameInfo contains metadata about a registered cabinet.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of a cabinet.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	order     []string
	mu        sync.RWMutex
)

// Register adds a cabinet factory to the registry.
// Panics if a cabinet with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
	order = append(order, id)
}

// List returns every registered cabinet in registration order.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(order))
	for _, id := range order {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}
	return result
}

// IDs returns the registered IDs, sorted.
func IDs() []string {
	mu.RLock()
	defer mu.RUnlock()

	ids := make([]string, 0, len(factories))
	for id := range factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Create instantiates a new cabinet by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists checks if a cabinet with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
