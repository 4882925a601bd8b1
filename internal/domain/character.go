package domain

import "time"

// CharacterKind is the evolution stage of a character.
type CharacterKind string

const (
	KindEgg  CharacterKind = "EGG"
	KindDuck CharacterKind = "DUCK"
)

// DisplayName returns the name shown for the kind.
func (k CharacterKind) DisplayName() string {
	switch k {
	case KindDuck:
		return "Todeok"
	default:
		return "Egg"
	}
}

// Emoji returns the icon shown for the kind.
func (k CharacterKind) Emoji() string {
	switch k {
	case KindDuck:
		return "🐥"
	default:
		return "🥚"
	}
}

// Experience rewards per activity.
const (
	GameExperience      int64 = 50
	GameFinalBonus      int64 = 20 // extra on the game that exhausts the daily cap
	PetExperience       int64 = 20
	FeedExperience      int64 = 20
	EvolutionExperience int64 = 100
	experiencePerLevel  int64 = 100
)

// Character is the per-account progression entity.
type Character struct {
	ID            int64         `db:"id" json:"character_id"`
	AccountID     int64         `db:"account_id" json:"account_id"`
	Name          string        `db:"name" json:"name"`
	Kind          CharacterKind `db:"kind" json:"kind"`
	Level         int           `db:"level" json:"level"`
	Experience    int64         `db:"experience" json:"experience"`
	MaxExperience int64         `db:"max_experience" json:"max_experience"`
	Equipped      []ItemKind    `db:"equipped" json:"equipped"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
}

// NewCharacter returns the starting character of an account.
func NewCharacter(accountID int64) *Character {
	return &Character{
		AccountID:     accountID,
		Name:          KindEgg.DisplayName(),
		Kind:          KindEgg,
		Level:         1,
		Experience:    0,
		MaxExperience: MaxExperienceFor(1),
		Equipped:      []ItemKind{},
	}
}

// MaxExperienceFor returns the experience needed to leave level.
func MaxExperienceFor(level int) int64 {
	return int64(level) * experiencePerLevel
}

// Progress summarizes what an experience gain changed.
type Progress struct {
	Gained       int64 `json:"gained"`
	LevelsGained int   `json:"levels_gained"`
	Evolved      bool  `json:"evolved"`
}

// AddExperience adds amount and applies evolution and any number of level ups.
// Surplus experience carries over to the next level.
func (c *Character) AddExperience(amount int64) Progress {
	p := Progress{Gained: amount}
	c.Experience += amount

	if c.Kind == KindEgg && c.Experience >= EvolutionExperience {
		c.Kind = KindDuck
		c.Name = KindDuck.DisplayName()
		p.Evolved = true
	}

	for c.Experience >= c.MaxExperience {
		c.Level++
		c.Experience -= c.MaxExperience
		c.MaxExperience = MaxExperienceFor(c.Level)
		p.LevelsGained++
	}
	return p
}

// ExperiencePercent is the progress towards the next level, 0..100.
func (c *Character) ExperiencePercent() float64 {
	if c.MaxExperience == 0 {
		return 0
	}
	return float64(c.Experience) / float64(c.MaxExperience) * 100
}

// IsEquipped reports whether kind is worn.
func (c *Character) IsEquipped(kind ItemKind) bool {
	for _, k := range c.Equipped {
		if k == kind {
			return true
		}
	}
	return false
}

// SetEquipped wears or removes a cosmetic. Wearing one removes any other
// cosmetic in the same slot; other slots are untouched. The account must own
// the item.
func (c *Character) SetEquipped(inv Inventory, kind ItemKind, equip bool) error {
	spec, err := LookupItem(kind)
	if err != nil {
		return err
	}
	if spec.Category != CategoryCosmetic {
		return ErrInvalidItem
	}
	if inv.Count(kind) <= 0 {
		return ErrNotOwned
	}

	kept := make([]ItemKind, 0, len(c.Equipped)+1)
	for _, k := range c.Equipped {
		if k == kind {
			continue
		}
		if equip && Items[k].Slot == spec.Slot {
			continue
		}
		kept = append(kept, k)
	}
	if equip {
		kept = append(kept, kind)
	}
	c.Equipped = kept
	return nil
}

// Snapshot is the read model of a character returned to clients.
type Snapshot struct {
	ID                int64             `json:"character_id"`
	Name              string            `json:"name"`
	Kind              CharacterKind     `json:"kind"`
	Emoji             string            `json:"emoji"`
	Level             int               `json:"level"`
	Experience        int64             `json:"experience"`
	MaxExperience     int64             `json:"max_experience"`
	ExperiencePercent float64           `json:"experience_percent"`
	Equipped          map[ItemKind]bool `json:"equipped"`
}

// Snapshot reports the character with a flag for every cosmetic.
func (c *Character) Snapshot() Snapshot {
	equipped := make(map[ItemKind]bool)
	for _, spec := range ItemsByCategory(CategoryCosmetic) {
		equipped[spec.Kind] = c.IsEquipped(spec.Kind)
	}
	return Snapshot{
		ID:                c.ID,
		Name:              c.Name,
		Kind:              c.Kind,
		Emoji:             c.Kind.Emoji(),
		Level:             c.Level,
		Experience:        c.Experience,
		MaxExperience:     c.MaxExperience,
		ExperiencePercent: c.ExperiencePercent(),
		Equipped:          equipped,
	}
}
