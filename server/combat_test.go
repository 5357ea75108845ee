package main

import (
	"strconv"
	"testing"
)

// twoTanksAdjacent seats two players and parks them next to each other
func twoTanksAdjacent(t *testing.T, g *Game) (shooter, victim *PlayerInfo) {
	t.Helper()
	shooter, _ = g.AddPlayer("Shooter", 0)
	victim, _ = g.AddPlayer("Victim", 0)
	g.tanks[shooter.ID].Q, g.tanks[shooter.ID].R = 0, 0
	g.tanks[victim.ID].Q, g.tanks[victim.ID].R = 1, 0
	return shooter, victim
}

func TestShellAdvanceDetonates(t *testing.T) {
	s := &Shell{ID: "s", OwnerID: "p1", Q: 0, R: 0, Target: Hex{1, 0}, Speed: ShellSpeed}
	ticks := 0
	for !s.Advance(0.05, float64(ticks)*0.05) {
		ticks++
		if ticks > 200 {
			t.Fatal("shell never detonated")
		}
	}
	// 1 hex at 2.5 hex/s is 0.4s of flight
	flight := float64(ticks) * 0.05
	if flight < 0.3 || flight > 0.5 {
		t.Errorf("unexpected flight time %f", flight)
	}
}

func TestShellLifetimeExpiry(t *testing.T) {
	// target far beyond what the lifetime allows
	s := &Shell{ID: "s", OwnerID: "p1", Q: 0, R: 0, Target: Hex{50, 0}, Speed: ShellSpeed, Created: 0}
	if !s.Advance(0.05, ShellLifetime+0.1) {
		t.Error("shell should detonate once its lifetime expires")
	}
}

func TestShellImpactDamages(t *testing.T) {
	g := newTestGame()
	shooter, victim := twoTanksAdjacent(t, g)

	g.shellImpact(&Shell{OwnerID: shooter.ID, Target: Hex{1, 0}, Damage: ShellBaseDmg})

	if got := g.tanks[victim.ID].HP; got != TankMaxHP-ShellBaseDmg {
		t.Errorf("expected %d HP, got %d", TankMaxHP-ShellBaseDmg, got)
	}
}

func TestShellImpactSplash(t *testing.T) {
	g := newTestGame()
	shooter, victim := twoTanksAdjacent(t, g)

	// detonation one hex away from the victim still damages it
	g.shellImpact(&Shell{OwnerID: shooter.ID, Target: Hex{2, 0}, Damage: ShellBaseDmg})
	if g.tanks[victim.ID].HP != TankMaxHP-ShellBaseDmg {
		t.Error("splash should reach one hex out")
	}

	// two hexes away is a clean miss
	g.shellImpact(&Shell{OwnerID: shooter.ID, Target: Hex{3, 0}, Damage: ShellBaseDmg})
	if g.tanks[victim.ID].HP != TankMaxHP-ShellBaseDmg {
		t.Error("splash must not reach two hexes out")
	}
}

func TestShellImpactNeverSelfDamages(t *testing.T) {
	g := newTestGame()
	shooter, _ := g.AddPlayer("Solo", 0)
	tank := g.tanks[shooter.ID]

	g.shellImpact(&Shell{OwnerID: shooter.ID, Target: tank.Cell(), Damage: 500})
	if tank.HP != TankMaxHP {
		t.Error("a shell never damages its owner")
	}
}

func TestKillAwardsScoreAndLoot(t *testing.T) {
	g := newTestGame()
	shooter, victim := twoTanksAdjacent(t, g)
	vt := g.tanks[victim.ID]
	vt.Fuel = 100
	vt.Ammo = 80
	vt.Gears = 50

	g.shellImpact(&Shell{OwnerID: shooter.ID, Target: Hex{1, 0}, Damage: 500})

	st := g.tanks[shooter.ID]
	if vt.Alive {
		t.Fatal("victim should be dead")
	}
	if st.Score != KillScore || st.Kills != 1 {
		t.Errorf("kill should award %d score and 1 kill, got %d/%d", KillScore, st.Score, st.Kills)
	}
	if vt.Deaths != 1 {
		t.Errorf("expected 1 death, got %d", vt.Deaths)
	}
	if st.Gears < KillGearMin {
		t.Errorf("killer should gain at least %f gears, got %f", KillGearMin, st.Gears)
	}
	if st.Gears > GearCap {
		t.Errorf("killer gears should cap at %f, got %f", GearCap, st.Gears)
	}
	// victim loses between 20% and 60% of each resource
	if vt.Fuel >= 100 || vt.Ammo >= 80 || vt.Gears >= 50 {
		t.Errorf("victim should lose resources, got fuel=%f ammo=%f gears=%f", vt.Fuel, vt.Ammo, vt.Gears)
	}
	if len(g.pending) != 1 || g.pending[0].Type != MsgKillFeed {
		t.Error("a kill should queue one killfeed event")
	}
}

func TestLootFloors(t *testing.T) {
	g := newTestGame()
	tank := NewTank("tank_v", "v", Hex{0, 0}, "#fff")
	tank.Fuel = 16
	tank.Ammo = 11
	tank.Gears = 1

	for i := 0; i < 50; i++ {
		tank.Fuel, tank.Ammo, tank.Gears = 16, 11, 1
		g.lootVictim(tank)
		if tank.Fuel < LootFuelFloor {
			t.Fatalf("fuel fell below floor: %f", tank.Fuel)
		}
		if tank.Ammo < LootAmmoFloor {
			t.Fatalf("ammo fell below floor: %f", tank.Ammo)
		}
		if tank.Gears < LootGearFloor {
			t.Fatalf("gears fell below floor: %f", tank.Gears)
		}
	}
}

func TestLootAlreadyBelowFloor(t *testing.T) {
	g := newTestGame()
	tank := NewTank("tank_v", "v", Hex{0, 0}, "#fff")
	tank.Fuel = 10 // already under the 15 floor
	tank.Ammo = 5  // already under the 10 floor

	g.lootVictim(tank)
	// the floor is a guarantee, not a penalty: nothing is taken, and a
	// victim already under it respawns topped up to the floor
	if tank.Fuel != LootFuelFloor {
		t.Errorf("fuel should settle at the floor, got %f", tank.Fuel)
	}
	if tank.Ammo != LootAmmoFloor {
		t.Errorf("ammo should settle at the floor, got %f", tank.Ammo)
	}
}

func TestFortForfeitureKeepsClosest(t *testing.T) {
	g := newTestGame()
	p, _ := g.AddPlayer("Magnate", 0)
	tank := g.tanks[p.ID]
	tank.Q, tank.R = 0, 0

	// rebuild the fort table with known positions owned by the victim
	g.forts = make(map[string]*Fort)
	cells := []Hex{{1, 0}, {2, 0}, {5, 0}, {6, 0}}
	for i, c := range cells {
		id := "fort_" + strconv.Itoa(i)
		g.forts[id] = &Fort{ID: id, Cell: c, Type: FortFuel, Owner: p.ID, WasOwned: true}
	}

	g.forfeitForts(p.ID, tank)

	kept := 0
	for _, f := range g.forts {
		if f.Owner == p.ID {
			kept++
			if f.Cell != (Hex{1, 0}) && f.Cell != (Hex{2, 0}) {
				t.Errorf("kept the wrong fort at %v", f.Cell)
			}
		}
	}
	if kept != FortReleaseKeep {
		t.Errorf("expected %d forts kept, got %d", FortReleaseKeep, kept)
	}
}

func TestFortForfeitureOffsetOrdering(t *testing.T) {
	g := newTestGame()
	p, _ := g.AddPlayer("Edge", 0)
	tank := g.tanks[p.ID]
	tank.Q, tank.R = 0, 0

	// {3, -3} is 3 hexes away but offset 6; {4, 0} is 4 hexes away but
	// offset 4. Release ordering uses the offset, so {3, -3} goes first.
	g.forts = map[string]*Fort{
		"a": {ID: "a", Cell: Hex{3, -3}, Type: FortFuel, Owner: p.ID},
		"b": {ID: "b", Cell: Hex{4, 0}, Type: FortFuel, Owner: p.ID},
		"c": {ID: "c", Cell: Hex{1, 0}, Type: FortFuel, Owner: p.ID},
	}

	g.forfeitForts(p.ID, tank)

	if g.forts["a"].Owner != "" {
		t.Error("fort with the largest coordinate offset should be released")
	}
	if g.forts["b"].Owner != p.ID || g.forts["c"].Owner != p.ID {
		t.Error("the two smallest-offset forts should be kept")
	}
}

func TestFortForfeitureUnderLimit(t *testing.T) {
	g := newTestGame()
	p, _ := g.AddPlayer("Small", 0)
	tank := g.tanks[p.ID]

	g.forts = map[string]*Fort{
		"a": {ID: "a", Cell: Hex{3, 0}, Type: FortFuel, Owner: p.ID},
		"b": {ID: "b", Cell: Hex{4, 0}, Type: FortFuel, Owner: p.ID},
	}
	g.forfeitForts(p.ID, tank)

	for id, f := range g.forts {
		if f.Owner != p.ID {
			t.Errorf("fort %s should be kept at or under the limit", id)
		}
	}
}

func TestDrainEventsClearsQueue(t *testing.T) {
	g := newTestGame()
	shooter, _ := twoTanksAdjacent(t, g)
	g.shellImpact(&Shell{OwnerID: shooter.ID, Target: Hex{1, 0}, Damage: 500})

	events := g.DrainEvents()
	if len(events) != 1 || events[0].Type != MsgKillFeed {
		t.Fatalf("expected one killfeed event, got %v", events)
	}
	if g.DrainEvents() != nil {
		t.Error("a second drain should find an empty queue")
	}
}

func TestShootThroughFullKillFlow(t *testing.T) {
	g := newTestGame()
	shooter, victim := twoTanksAdjacent(t, g)
	g.tanks[victim.ID].HP = ShellBaseDmg // one shot kills

	if _, err := g.Shoot(shooter.ID, Hex{1, 0}); err != nil {
		t.Fatalf("Shoot: %v", err)
	}
	if len(g.shells) != 1 {
		t.Fatalf("expected 1 shell in flight, got %d", len(g.shells))
	}

	advance(g, 1.0) // flight plus impact resolution

	if len(g.shells) != 0 {
		t.Error("shell should be consumed on impact")
	}
	if g.tanks[victim.ID].Alive {
		t.Error("victim should be dead")
	}
	if g.tanks[shooter.ID].Kills != 1 {
		t.Error("shooter should be credited with the kill")
	}
}
