package main

const UpgradeMaxLevel = 3

// Gear cost per level: Lv1=5, Lv2=10, Lv3=18
var upgradeLevelCosts = [UpgradeMaxLevel]float64{5, 10, 18}

// UpgradeDef describes one upgrade category
type UpgradeDef struct {
	Kind string `json:"kind"`
	Desc string `json:"desc"`
}

// UpgradeCatalog lists the purchasable upgrade categories
var UpgradeCatalog = []UpgradeDef{
	{Kind: "engine", Desc: "Move 20% faster"},
	{Kind: "armor", Desc: "+20 max HP"},
	{Kind: "cannon", Desc: "+10 shell damage"},
	{Kind: "sensor", Desc: "+1 vision range"},
	{Kind: "loader", Desc: "-2 ammo cost per shot"},
}

var upgradeKinds = func() map[string]bool {
	m := make(map[string]bool, len(UpgradeCatalog))
	for _, def := range UpgradeCatalog {
		m[def.Kind] = true
	}
	return m
}()

// applyUpgrade applies the per-level stat delta for a category. The caller
// has already validated the kind and debited the gears.
func applyUpgrade(t *Tank, kind string) {
	switch kind {
	case "engine":
		t.MoveSpeed += 0.4
	case "armor":
		t.MaxHP += 20
		t.HP = min(t.HP+20, t.MaxHP)
	case "cannon":
		t.ShellDmg += 10
	case "sensor":
		t.Vision++
	case "loader":
		// 8→6→4→2, keeps all three levels meaningful
		t.AmmoCost = t.AmmoCost - 2
		if t.AmmoCost < 2 {
			t.AmmoCost = 2
		}
	}
}
