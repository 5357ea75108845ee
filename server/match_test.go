package main

import "testing"

func TestMatchStateLifecycle(t *testing.T) {
	m := NewMatchState()
	if m.Over {
		t.Error("new match should be active")
	}
	if m.Timer != MatchTime {
		t.Errorf("expected timer %f, got %f", MatchTime, m.Timer)
	}

	m.End()
	if !m.Over || m.PostTimer != PostMatchTime {
		t.Error("End should flip to over and arm the post-match timer")
	}

	m.Vote("p1", 2)
	m.Reset()
	if m.Over || m.Timer != MatchTime || len(m.RematchVotes) != 0 {
		t.Error("Reset should restore a fresh active match")
	}
}

func TestMatchVoteTally(t *testing.T) {
	m := NewMatchState()
	m.End()

	cast, all := m.Vote("p1", 3)
	if cast != 1 || all {
		t.Errorf("first vote: cast=%d all=%v", cast, all)
	}
	// voting twice is idempotent
	cast, all = m.Vote("p1", 3)
	if cast != 1 || all {
		t.Errorf("repeat vote: cast=%d all=%v", cast, all)
	}
	m.Vote("p2", 3)
	cast, all = m.Vote("p3", 3)
	if cast != 3 || !all {
		t.Errorf("final vote: cast=%d all=%v", cast, all)
	}
}

func TestMatchEndsOnTimer(t *testing.T) {
	g := newTestGame()
	g.AddPlayer("Timed", 0)
	g.match.Timer = 0.2

	advance(g, 0.5)

	if !g.match.Over {
		t.Fatal("match should end when the timer reaches zero")
	}
	if g.match.Timer != 0 {
		t.Errorf("timer should clamp to 0, got %f", g.match.Timer)
	}
	if g.match.PostTimer <= 0 {
		t.Error("post-match timer should be running")
	}
}

func TestMatchFrozenWhileOver(t *testing.T) {
	g := newTestGame()
	p, _ := g.AddPlayer("Frozen", 0)
	tank := g.tanks[p.ID]
	g.SetPath(p.ID, []Hex{{tank.Cell().Q + 1, tank.Cell().R}})
	g.match.Timer = 0.05

	advance(g, 2.0)

	if !g.match.Over {
		t.Fatal("match should be over")
	}
	// movement is frozen between matches, so the hex was never paid for
	if tank.Fuel != TankStartFuel {
		t.Errorf("no simulation should run while the match is over, fuel %f", tank.Fuel)
	}
}

func TestMatchPostTimerAutoReset(t *testing.T) {
	g := newTestGame()
	g.AddPlayer("Waiter", 0)
	g.match.End()
	g.match.PostTimer = 0.3

	advance(g, 1.0)

	if g.match.Over {
		t.Error("match should auto-reset after the post-match timer")
	}
	// the ticks left over after the reset already run the fresh clock down
	if g.match.Timer <= MatchTime-1.0 || g.match.Timer > MatchTime {
		t.Errorf("reset should restore the match clock, got %f", g.match.Timer)
	}
}

func TestVoteRequiresMatchOver(t *testing.T) {
	g := newTestGame()
	p, _ := g.AddPlayer("Eager", 0)
	if _, _, err := g.CastVote(p.ID); err != ErrMatchActive {
		t.Errorf("expected ErrMatchActive, got %v", err)
	}
}

func TestVoteAllResetsImmediately(t *testing.T) {
	g := newTestGame()
	p1, _ := g.AddPlayer("A", 0)
	p2, _ := g.AddPlayer("B", 0)
	t1 := g.tanks[p1.ID]
	t1.Score = 30
	t1.Gears = 40
	t1.Upgrades["engine"] = 2
	g.match.End()

	cast, total, err := g.CastVote(p1.ID)
	if err != nil {
		t.Fatalf("first vote: %v", err)
	}
	if cast != 1 || total != 2 {
		t.Errorf("tally after first vote: %d/%d", cast, total)
	}
	if !g.match.Over {
		t.Fatal("one vote of two must not reset the match")
	}

	if _, _, err := g.CastVote(p2.ID); err != nil {
		t.Fatalf("second vote: %v", err)
	}
	if g.match.Over {
		t.Fatal("all votes cast should reset immediately, without waiting out the timer")
	}
	if t1.Score != 0 || t1.Gears != 0 || len(t1.Upgrades) != 0 {
		t.Error("reset should return tanks to match defaults")
	}
	if t1.Cell() != spawnSlots[p1.Slot] {
		t.Errorf("reset should respawn at the assigned slot, got %v", t1.Cell())
	}
}

func TestMatchResetClearsWorld(t *testing.T) {
	g := newTestGame()
	p, _ := g.AddPlayer("Sweeper", 0)
	g.shells["s1"] = &Shell{ID: "s1", OwnerID: p.ID, Target: Hex{1, 0}}
	for _, f := range g.forts {
		f.Owner = p.ID
		f.WasOwned = true
	}
	g.match.End()

	g.CastVote(p.ID) // sole player, resets immediately

	if len(g.shells) != 0 {
		t.Error("reset should clear in-flight shells")
	}
	for _, f := range g.forts {
		if f.Owner != "" {
			t.Error("reset should neutralize all forts")
		}
		if f.WasOwned {
			t.Error("reset should clear the recapture penalty")
		}
	}
}

func TestVoteOfDisconnectedPlayerDropped(t *testing.T) {
	g := newTestGame()
	p1, _ := g.AddPlayer("Stay", 0)
	p2, _ := g.AddPlayer("Leave", 0)
	g.match.End()

	g.CastVote(p2.ID)
	g.RemovePlayer(p2.ID)
	if g.match.Over == false {
		t.Fatal("match should still be over")
	}

	// the remaining player's single vote is now unanimous
	if _, _, err := g.CastVote(p1.ID); err != nil {
		t.Fatalf("vote: %v", err)
	}
	if g.match.Over {
		t.Error("sole remaining player voting should reset the match")
	}
}
