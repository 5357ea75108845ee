package main

import "math"

const (
	ShellSpeed    = 2.5 // hexes per second
	ShellLifetime = 3.0 // seconds before a shell detonates regardless
	ShellSplash   = 1   // hexes around the target cell hit on impact
)

// Shell is an in-flight projectile travelling toward a target cell
type Shell struct {
	ID      string
	OwnerID string
	Q, R    float64 // continuous axial position
	Target  Hex
	Speed   float64
	Damage  int
	Created float64 // game clock seconds at launch
}

// Advance moves the shell toward its target. Returns true when the shell
// reaches the target this tick or its lifetime has expired, meaning it
// should detonate and be removed.
func (s *Shell) Advance(dt, now float64) bool {
	dq := float64(s.Target.Q) - s.Q
	dr := float64(s.Target.R) - s.R
	dist := math.Sqrt(dq*dq + dr*dr)
	step := s.Speed * dt
	if dist <= step || now-s.Created > ShellLifetime {
		return true
	}
	s.Q += dq / dist * step
	s.R += dr / dist * step
	return false
}

// Cell returns the rounded cell the shell currently occupies
func (s *Shell) Cell() Hex {
	return roundHex(s.Q, s.R)
}

// ToState serializes the shell for snapshots
func (s *Shell) ToState() ShellState {
	return ShellState{
		ID:      s.ID,
		OwnerID: s.OwnerID,
		Q:       s.Q,
		R:       s.R,
		TargetQ: s.Target.Q,
		TargetR: s.Target.R,
	}
}
