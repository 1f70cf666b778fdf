package strategy

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/level"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/move"
)

// Script runs a ghost policy written in Lua. The chunk must define a
// global function
//
//	choose(me, target, options) -> "left" | "right" | "up" | "down" | "stay"
//
// where me and target are tables with x, y, gx, gy fields (me also has dx,
// dy, speed and junction) and options lists the legal directions. Any
// error inside the script, or an answer that is not a legal option, falls
// back to Turn. A script that overruns its time limit is switched off and
// the ghost keeps using Turn.
type Script struct {
	actor    Actor
	name     string
	vm       *lua.LState
	choose   lua.LValue
	fallback *Turn
	err      error
}

// Time limits for running the chunk and for one call to choose.
const (
	scriptLoadTimeout = time.Second
	scriptCallTimeout = 20 * time.Millisecond
)

var directionNames = map[string]move.Move{
	"left":  move.Left,
	"right": move.Right,
	"up":    move.Up,
	"down":  move.Down,
	"stay":  move.Neutral,
}

// NewScript compiles a Lua policy. name is used in error messages.
func NewScript(a Actor, rng *rand.Rand, name, src string) (*Script, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// The simulation must stay reproducible from its seed.
	for _, g := range []string{"dofile", "loadfile", "load", "loadstring", "collectgarbage"} {
		L.SetGlobal(g, lua.LNil)
	}
	if tbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		tbl.RawSetString("random", lua.LNil)
		tbl.RawSetString("randomseed", lua.LNil)
	}

	ctx, cancel := context.WithTimeout(context.Background(), scriptLoadTimeout)
	defer cancel()
	L.SetContext(ctx)
	err := L.DoString(src)
	L.RemoveContext()
	if err != nil {
		L.Close()
		return nil, fmt.Errorf("executing ghost script %s: %w", name, err)
	}
	fn := L.GetGlobal("choose")
	if fn.Type() != lua.LTFunction {
		L.Close()
		return nil, fmt.Errorf("ghost script %s: no choose function defined", name)
	}
	return &Script{actor: a, name: name, vm: L, choose: fn, fallback: NewTurn(a, rng)}, nil
}

// Close releases the Lua state.
func (s *Script) Close() {
	if s.vm != nil {
		s.vm.Close()
		s.vm = nil
	}
}

// Err returns the last script failure, if any.
func (s *Script) Err() error {
	return s.err
}

// Move implements Strategy.
func (s *Script) Move(lv *level.Level, target Target) move.Move {
	if s.vm == nil {
		return s.fallback.Move(lv, target)
	}
	a := s.actor
	legal := map[string]move.Move{"stay": move.Neutral}
	options := s.vm.NewTable()
	for _, name := range []string{"left", "right", "up", "down"} {
		m := directionNames[name].Times(a.Speed())
		if lv.CanMove(a, m) {
			legal[name] = m
			options.Append(lua.LString(name))
		}
	}

	r := a.Bounds()
	me := s.vm.NewTable()
	me.RawSetString("x", lua.LNumber(r.X))
	me.RawSetString("y", lua.LNumber(r.Y))
	me.RawSetString("gx", lua.LNumber(r.X/level.GridSize))
	me.RawSetString("gy", lua.LNumber(r.Y/level.GridSize))
	me.RawSetString("dx", lua.LNumber(a.Velocity().DX))
	me.RawSetString("dy", lua.LNumber(a.Velocity().DY))
	me.RawSetString("speed", lua.LNumber(a.Speed()))
	me.RawSetString("junction", lua.LBool(a.AtJuncture()))

	tr := target.Bounds()
	tgt := s.vm.NewTable()
	tgt.RawSetString("x", lua.LNumber(tr.X))
	tgt.RawSetString("y", lua.LNumber(tr.Y))
	tgt.RawSetString("gx", lua.LNumber(tr.X/level.GridSize))
	tgt.RawSetString("gy", lua.LNumber(tr.Y/level.GridSize))

	ctx, cancel := context.WithTimeout(context.Background(), scriptCallTimeout)
	defer cancel()
	s.vm.SetContext(ctx)
	err := s.vm.CallByParam(lua.P{Fn: s.choose, NRet: 1, Protect: true}, me, tgt, options)
	s.vm.RemoveContext()
	if err != nil {
		s.err = fmt.Errorf("ghost script %s: %w", s.name, err)
		if ctx.Err() != nil {
			s.Close()
		}
		return s.fallback.Move(lv, target)
	}
	ret := s.vm.Get(-1)
	s.vm.Pop(1)

	if m, ok := legal[lua.LVAsString(ret)]; ok {
		return m
	}
	s.err = fmt.Errorf("ghost script %s: illegal choice %q", s.name, lua.LVAsString(ret))
	return s.fallback.Move(lv, target)
}
