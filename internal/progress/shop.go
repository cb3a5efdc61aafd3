package progress

// ItemType classifies shop items by activation behavior.
type ItemType string

const (
	// ItemTheme items are exclusive: activating one replaces any other
	// active theme.
	ItemTheme ItemType = "theme"

	// ItemCosmetic items toggle independently of each other.
	ItemCosmetic ItemType = "cosmetic"

	// ItemConsumable items can be bought repeatedly and are consumed on
	// purchase; they never enter the owned set.
	ItemConsumable ItemType = "consumable"
)

// Item is a purchasable shop entry.
type Item struct {
	ID          string
	Name        string
	Icon        string
	Price       int
	Description string
	Type        ItemType
}

// ShopItems is the fixed catalog.
var ShopItems = []Item{
	{ID: "theme_dark", Name: "Dark Theme", Icon: "🌙", Price: 50, Description: "Unlock dark mode", Type: ItemTheme},
	{ID: "theme_nature", Name: "Nature Palette", Icon: "🌿", Price: 30, Description: "Green and brown theme", Type: ItemTheme},
	{ID: "theme_ocean", Name: "Ocean Palette", Icon: "🌊", Price: 30, Description: "Blue theme", Type: ItemTheme},
	{ID: "theme_sunset", Name: "Sunset Palette", Icon: "🌅", Price: 30, Description: "Orange and pink theme", Type: ItemTheme},
	{ID: "bonus_break", Name: "Bonus Break", Icon: "⏰", Price: 100, Description: "+5 min break, one time", Type: ItemConsumable},
	{ID: "sound_pack", Name: "Sound Pack", Icon: "🎵", Price: 75, Description: "New timer sounds", Type: ItemCosmetic},
	{ID: "golden_frame", Name: "Golden Frame", Icon: "✨", Price: 150, Description: "Premium task styling", Type: ItemCosmetic},
	{ID: "double_xp", Name: "Double XP", Icon: "⚡", Price: 200, Description: "1 hour of double XP", Type: ItemConsumable},
}

// ItemByID looks up a catalog entry.
func ItemByID(id string) (Item, bool) {
	for _, it := range ShopItems {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Result is the outcome of a shop operation. Failed operations carry a
// human-readable reason and leave all state unchanged.
type Result struct {
	OK      bool
	Message string
}

func failure(msg string) Result { return Result{OK: false, Message: msg} }

func success(msg string) Result { return Result{OK: true, Message: msg} }
