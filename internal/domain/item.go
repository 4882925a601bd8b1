package domain

// ItemKind identifies an owned item.
type ItemKind string

const (
	ItemPersimmon         ItemKind = "PERSIMMON"
	ItemGreenTea          ItemKind = "GREEN_TEA"
	ItemStrawberryHairpin ItemKind = "STRAWBERRY_HAIRPIN"
	ItemGongbangAhjima    ItemKind = "GONGBANG_AHJIMA"
	ItemCarCrown          ItemKind = "CAR_CROWN"
	ItemRose              ItemKind = "ROSE"
)

// ItemCategory groups items by how they are used.
type ItemCategory string

const (
	CategoryConsumption ItemCategory = "CONSUMPTION"
	CategoryCosmetic    ItemCategory = "COSMETIC"
)

// Slot is the equip position of a cosmetic. Only one cosmetic per slot can be worn.
type Slot string

const (
	SlotNone Slot = ""
	SlotHead Slot = "head"
	SlotBody Slot = "body"
	SlotHand Slot = "hand"
)

// ItemSpec describes a kind of item.
type ItemSpec struct {
	Kind        ItemKind     `json:"type"`
	DisplayName string       `json:"display_name"`
	Emoji       string       `json:"emoji"`
	Category    ItemCategory `json:"category"`
	Slot        Slot         `json:"slot,omitempty"`
	Price       int64        `json:"price"`
}

// ItemOrder is the catalog order used for listings.
var ItemOrder = []ItemKind{
	ItemPersimmon,
	ItemGreenTea,
	ItemStrawberryHairpin,
	ItemGongbangAhjima,
	ItemCarCrown,
	ItemRose,
}

// Items maps each kind to its spec.
var Items = map[ItemKind]ItemSpec{
	ItemPersimmon:         {Kind: ItemPersimmon, DisplayName: "Persimmon", Emoji: "🍊", Category: CategoryConsumption, Price: 100},
	ItemGreenTea:          {Kind: ItemGreenTea, DisplayName: "Green tea", Emoji: "🍵", Category: CategoryConsumption, Price: 100},
	ItemStrawberryHairpin: {Kind: ItemStrawberryHairpin, DisplayName: "Strawberry hairpin", Emoji: "🍓", Category: CategoryCosmetic, Slot: SlotHead, Price: 100},
	ItemGongbangAhjima:    {Kind: ItemGongbangAhjima, DisplayName: "Workshop apron", Emoji: "👘", Category: CategoryCosmetic, Slot: SlotBody, Price: 100},
	ItemCarCrown:          {Kind: ItemCarCrown, DisplayName: "Gold crown", Emoji: "👑", Category: CategoryCosmetic, Slot: SlotHead, Price: 100},
	ItemRose:              {Kind: ItemRose, DisplayName: "Rose", Emoji: "🌹", Category: CategoryCosmetic, Slot: SlotHand, Price: 100},
}

// LookupItem returns the spec of kind or ErrInvalidItem.
func LookupItem(kind ItemKind) (ItemSpec, error) {
	spec, ok := Items[kind]
	if !ok {
		return ItemSpec{}, ErrInvalidItem
	}
	return spec, nil
}

// ItemsByCategory returns specs in catalog order. An empty category returns all.
func ItemsByCategory(category ItemCategory) []ItemSpec {
	var out []ItemSpec
	for _, kind := range ItemOrder {
		spec := Items[kind]
		if category != "" && spec.Category != category {
			continue
		}
		out = append(out, spec)
	}
	return out
}

// Inventory holds item counts for an account. Missing kinds count as zero.
type Inventory map[ItemKind]int

func (inv Inventory) Count(kind ItemKind) int {
	return inv[kind]
}

func (inv Inventory) Add(kind ItemKind, n int) {
	inv[kind] += n
}

// Total sums the counts of every item in category.
func (inv Inventory) Total(category ItemCategory) int {
	total := 0
	for kind, n := range inv {
		if Items[kind].Category == category {
			total += n
		}
	}
	return total
}
