package domain

import (
	"errors"
	"testing"
)

func TestAddExperienceBasicLevelUp(t *testing.T) {
	c := NewCharacter(1)
	c.Kind = KindDuck
	c.Experience = 90

	p := c.AddExperience(20)
	if c.Level != 2 || c.Experience != 10 || c.MaxExperience != 200 {
		t.Fatalf("got level=%d exp=%d max=%d; want 2/10/200", c.Level, c.Experience, c.MaxExperience)
	}
	if p.LevelsGained != 1 {
		t.Fatalf("levels gained = %d; want 1", p.LevelsGained)
	}
}

func TestAddExperienceEvolution(t *testing.T) {
	c := NewCharacter(1)
	c.Experience = 80

	p := c.AddExperience(25)
	if c.Kind != KindDuck || !p.Evolved {
		t.Fatalf("kind = %s evolved=%v; want DUCK", c.Kind, p.Evolved)
	}
	if c.Level != 2 || c.Experience != 5 || c.MaxExperience != 200 {
		t.Fatalf("got level=%d exp=%d max=%d; want 2/5/200", c.Level, c.Experience, c.MaxExperience)
	}
	if c.Name != KindDuck.DisplayName() {
		t.Fatalf("name = %q; want %q", c.Name, KindDuck.DisplayName())
	}
}

func TestAddExperienceBelowThreshold(t *testing.T) {
	c := NewCharacter(1)
	p := c.AddExperience(70)
	if c.Kind != KindEgg || p.Evolved || p.LevelsGained != 0 {
		t.Fatalf("unexpected transition: %+v kind=%s", p, c.Kind)
	}
	if c.Experience != 70 {
		t.Fatalf("experience = %d; want 70", c.Experience)
	}
}

func TestAddExperienceCascade(t *testing.T) {
	c := NewCharacter(1)
	// 100 (L1) + 200 (L2) + 300 (L3) = 600, 50 left at L4
	p := c.AddExperience(650)
	if c.Level != 4 || c.Experience != 50 || c.MaxExperience != 400 {
		t.Fatalf("got level=%d exp=%d max=%d; want 4/50/400", c.Level, c.Experience, c.MaxExperience)
	}
	if p.LevelsGained != 3 {
		t.Fatalf("levels gained = %d; want 3", p.LevelsGained)
	}
}

// totalExperience is the experience spent to reach the character's level plus what it holds.
func totalExperience(c *Character) int64 {
	var total int64
	for l := 1; l < c.Level; l++ {
		total += MaxExperienceFor(l)
	}
	return total + c.Experience
}

func TestAddExperienceConservation(t *testing.T) {
	for start := int64(0); start < 100; start += 7 {
		for amount := int64(0); amount <= 1500; amount += 13 {
			c := NewCharacter(1)
			c.AddExperience(start)
			before := totalExperience(c)

			c.AddExperience(amount)

			if got := totalExperience(c); got != before+amount {
				t.Fatalf("start=%d amount=%d: total = %d; want %d", start, amount, got, before+amount)
			}
			if c.Experience >= c.MaxExperience || c.Experience < 0 {
				t.Fatalf("start=%d amount=%d: experience %d out of range [0,%d)", start, amount, c.Experience, c.MaxExperience)
			}
			if c.MaxExperience != MaxExperienceFor(c.Level) {
				t.Fatalf("max experience %d does not match level %d", c.MaxExperience, c.Level)
			}
		}
	}
}

func TestAddExperienceMatchesReference(t *testing.T) {
	for amount := int64(0); amount <= 2000; amount += 11 {
		c := NewCharacter(1)
		c.AddExperience(amount)

		level, exp, limit := 1, amount, int64(100)
		for exp >= limit {
			level++
			exp -= limit
			limit = int64(level) * 100
		}
		if c.Level != level || c.Experience != exp || c.MaxExperience != limit {
			t.Fatalf("amount=%d: got %d/%d/%d; want %d/%d/%d", amount, c.Level, c.Experience, c.MaxExperience, level, exp, limit)
		}
	}
}

func TestEvolutionIsMonotonic(t *testing.T) {
	c := NewCharacter(1)
	c.AddExperience(100)
	if c.Kind != KindDuck {
		t.Fatalf("kind = %s; want DUCK", c.Kind)
	}
	for _, amount := range []int64{0, 1, 5, 99, 250, 1000} {
		c.AddExperience(amount)
		if c.Kind != KindDuck {
			t.Fatalf("kind reverted to %s after +%d", c.Kind, amount)
		}
	}
}

func TestExperiencePercent(t *testing.T) {
	c := NewCharacter(1)
	c.Experience = 50
	if got := c.ExperiencePercent(); got != 50 {
		t.Fatalf("percent = %v; want 50", got)
	}
}

func TestSetEquippedSameSlot(t *testing.T) {
	inv := Inventory{ItemStrawberryHairpin: 1, ItemCarCrown: 1, ItemRose: 1}
	c := NewCharacter(1)

	if err := c.SetEquipped(inv, ItemStrawberryHairpin, true); err != nil {
		t.Fatalf("equip hairpin: %v", err)
	}
	if err := c.SetEquipped(inv, ItemRose, true); err != nil {
		t.Fatalf("equip rose: %v", err)
	}
	if err := c.SetEquipped(inv, ItemCarCrown, true); err != nil {
		t.Fatalf("equip crown: %v", err)
	}

	if c.IsEquipped(ItemStrawberryHairpin) {
		t.Fatalf("hairpin should be replaced by crown in the head slot")
	}
	if !c.IsEquipped(ItemCarCrown) || !c.IsEquipped(ItemRose) {
		t.Fatalf("crown and rose should both be worn, got %v", c.Equipped)
	}
}

func TestSetEquippedUnequip(t *testing.T) {
	inv := Inventory{ItemRose: 1, ItemGongbangAhjima: 1}
	c := NewCharacter(1)
	_ = c.SetEquipped(inv, ItemRose, true)
	_ = c.SetEquipped(inv, ItemGongbangAhjima, true)

	if err := c.SetEquipped(inv, ItemRose, false); err != nil {
		t.Fatalf("unequip: %v", err)
	}
	if c.IsEquipped(ItemRose) || !c.IsEquipped(ItemGongbangAhjima) {
		t.Fatalf("equipped = %v; want only apron", c.Equipped)
	}
}

func TestSetEquippedErrors(t *testing.T) {
	cases := []struct {
		name string
		inv  Inventory
		kind ItemKind
		want error
	}{
		{"not owned", Inventory{}, ItemRose, ErrNotOwned},
		{"consumable", Inventory{ItemPersimmon: 3}, ItemPersimmon, ErrInvalidItem},
		{"unknown", Inventory{}, ItemKind("HAT"), ErrInvalidItem},
	}
	for _, tc := range cases {
		c := NewCharacter(1)
		if err := c.SetEquipped(tc.inv, tc.kind, true); !errors.Is(err, tc.want) {
			t.Fatalf("%s: error = %v; want %v", tc.name, err, tc.want)
		}
		if len(c.Equipped) != 0 {
			t.Fatalf("%s: equipped changed to %v", tc.name, c.Equipped)
		}
	}
}

func TestSnapshotFlagsEveryCosmetic(t *testing.T) {
	c := NewCharacter(1)
	_ = c.SetEquipped(Inventory{ItemRose: 1}, ItemRose, true)

	s := c.Snapshot()
	if len(s.Equipped) != len(ItemsByCategory(CategoryCosmetic)) {
		t.Fatalf("equipped flags = %v; want one per cosmetic", s.Equipped)
	}
	if !s.Equipped[ItemRose] || s.Equipped[ItemCarCrown] {
		t.Fatalf("unexpected flags %v", s.Equipped)
	}
}
