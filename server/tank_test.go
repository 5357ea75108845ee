package main

import "testing"

func TestNewTankDefaults(t *testing.T) {
	tank := NewTank("tank_1", "p1", Hex{0, 4}, "#e74c3c")
	if tank.HP != TankMaxHP || tank.MaxHP != TankMaxHP {
		t.Errorf("expected full HP, got %d/%d", tank.HP, tank.MaxHP)
	}
	if tank.Fuel != TankStartFuel {
		t.Errorf("expected %f starting fuel, got %f", TankStartFuel, tank.Fuel)
	}
	if tank.Ammo != TankStartAmmo {
		t.Errorf("expected %f starting ammo, got %f", TankStartAmmo, tank.Ammo)
	}
	if tank.Gears != 0 {
		t.Errorf("expected 0 starting gears, got %f", tank.Gears)
	}
	if !tank.Alive {
		t.Error("new tank should be alive")
	}
	if tank.Cell() != (Hex{0, 4}) {
		t.Errorf("expected cell {0 4}, got %v", tank.Cell())
	}
}

func TestTankTakeDamage(t *testing.T) {
	tank := NewTank("tank_1", "p1", Hex{0, 0}, "#fff")
	if tank.TakeDamage(40) {
		t.Error("40 damage should not kill a full-HP tank")
	}
	if tank.HP != 60 {
		t.Errorf("expected 60 HP, got %d", tank.HP)
	}
}

func TestTankDeath(t *testing.T) {
	tank := NewTank("tank_1", "p1", Hex{0, 0}, "#fff")
	tank.Path = []Hex{{1, 0}}
	if !tank.TakeDamage(150) {
		t.Error("150 damage should kill the tank")
	}
	if tank.Alive {
		t.Error("dead tank should not be alive")
	}
	if tank.HP != 0 {
		t.Errorf("HP should clamp to 0, got %d", tank.HP)
	}
	if tank.RespawnT != RespawnTime {
		t.Errorf("expected respawn timer %f, got %f", RespawnTime, tank.RespawnT)
	}
	if tank.Path != nil {
		t.Error("death should clear the waypoint queue")
	}
}

func TestTankDamageWhileDead(t *testing.T) {
	tank := NewTank("tank_1", "p1", Hex{0, 0}, "#fff")
	tank.TakeDamage(200)
	if tank.TakeDamage(50) {
		t.Error("a dead tank cannot die again")
	}
}

func TestTankReset(t *testing.T) {
	tank := NewTank("tank_1", "p1", Hex{0, 4}, "#fff")
	tank.Score = 42
	tank.Kills = 3
	tank.Gears = 20
	tank.Upgrades["engine"] = 2
	tank.MoveSpeed = 3.3
	tank.TakeDamage(200)

	tank.Reset(Hex{-4, 0})

	if tank.Cell() != (Hex{-4, 0}) {
		t.Errorf("expected reset to {-4 0}, got %v", tank.Cell())
	}
	if !tank.Alive || tank.HP != TankMaxHP {
		t.Error("reset tank should be alive at full HP")
	}
	if tank.Score != 0 || tank.Kills != 0 {
		t.Error("reset should zero match stats")
	}
	if tank.Gears != 0 {
		t.Error("reset should zero gears")
	}
	if len(tank.Upgrades) != 0 {
		t.Error("reset should clear upgrades")
	}
	if tank.MoveSpeed != MoveSpeedBase {
		t.Errorf("reset should restore base speed, got %f", tank.MoveSpeed)
	}
}

func TestTankToStatePrivateFields(t *testing.T) {
	tank := NewTank("tank_1", "p1", Hex{0, 0}, "#fff")

	own := tank.ToState("p1")
	if own.Private == nil {
		t.Fatal("owner's view should include private fields")
	}
	if own.Private.Fuel != TankStartFuel {
		t.Errorf("expected fuel %f, got %f", TankStartFuel, own.Private.Fuel)
	}

	other := tank.ToState("p2")
	if other.Private != nil {
		t.Error("other players must not see private fields")
	}
	if other.HP != TankMaxHP || other.ID != "tank_1" {
		t.Error("public fields should be visible to everyone")
	}
}

func TestUpgradeApply(t *testing.T) {
	tank := NewTank("tank_1", "p1", Hex{0, 0}, "#fff")

	applyUpgrade(tank, "engine")
	if tank.MoveSpeed != MoveSpeedBase+0.4 {
		t.Errorf("engine upgrade: speed = %f", tank.MoveSpeed)
	}

	applyUpgrade(tank, "armor")
	if tank.MaxHP != TankMaxHP+20 || tank.HP != TankMaxHP+20 {
		t.Errorf("armor upgrade: hp = %d/%d", tank.HP, tank.MaxHP)
	}

	applyUpgrade(tank, "sensor")
	if tank.Vision != FogRange+1 {
		t.Errorf("sensor upgrade: vision = %d", tank.Vision)
	}

	applyUpgrade(tank, "cannon")
	if tank.ShellDmg != ShellBaseDmg+10 {
		t.Errorf("cannon upgrade: damage = %d", tank.ShellDmg)
	}
}

func TestUpgradeLoaderFloor(t *testing.T) {
	tank := NewTank("tank_1", "p1", Hex{0, 0}, "#fff")
	applyUpgrade(tank, "loader")
	applyUpgrade(tank, "loader")
	applyUpgrade(tank, "loader")
	if tank.AmmoCost != 2 {
		t.Errorf("three loader levels should cost 2 ammo per shot, got %f", tank.AmmoCost)
	}
}
