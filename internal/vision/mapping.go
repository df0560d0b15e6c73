package vision

import (
	"strings"

	"github.com/wearly/stylist-service/internal/domain"
)

// categoryAliases maps vision labels onto the wardrobe vocabulary.
var categoryAliases = map[string]string{
	"shirt": "tops", "t-shirt": "tops", "tshirt": "tops", "blouse": "tops",
	"top": "tops", "sweater": "tops", "hoodie": "tops", "tank top": "tops",
	"polo": "tops", "cardigan": "tops",

	"pants": "bottoms", "trousers": "bottoms", "jeans": "bottoms",
	"shorts": "bottoms", "skirt": "bottoms", "leggings": "bottoms",

	"dress": "dresses", "gown": "dresses", "jumpsuit": "dresses",

	"jacket": "outerwear", "coat": "outerwear", "blazer": "outerwear",
	"parka": "outerwear", "vest": "outerwear", "windbreaker": "outerwear",

	"shoe": "shoes", "sneaker": "shoes", "sneakers": "shoes", "boot": "shoes",
	"boots": "shoes", "sandal": "shoes", "sandals": "shoes", "heels": "shoes",
	"loafers": "shoes",

	"hat": "accessories", "cap": "accessories", "scarf": "accessories",
	"belt": "accessories", "bag": "accessories", "gloves": "accessories",
	"sunglasses": "accessories", "watch": "accessories", "jewelry": "accessories",

	"suit": "formal", "tuxedo": "formal", "tie": "formal",

	"sports bra": "activewear", "gym shorts": "activewear",
	"tracksuit": "activewear", "athletic wear": "activewear",

	"pajamas": "sleepwear", "robe": "sleepwear", "nightgown": "sleepwear",
}

// colorAliases maps vision color names onto the color vocabulary.
var colorAliases = map[string]string{
	"crimson": "red", "scarlet": "red", "burgundy": "maroon", "wine": "maroon",
	"azure": "blue", "cobalt": "blue", "sky blue": "blue", "denim": "blue",
	"lime": "green", "emerald": "green", "forest": "green", "khaki": "olive",
	"mustard": "yellow", "amber": "orange", "coral": "orange",
	"violet": "purple", "lavender": "purple", "lilac": "purple",
	"magenta": "pink", "rose": "pink", "salmon": "pink",
	"tan": "beige", "cream": "beige", "ivory": "white", "off-white": "white",
	"charcoal": "grey", "gray": "grey", "slate": "grey",
	"turquoise": "teal", "cyan": "teal",
	"chocolate": "brown", "camel": "brown",
}

// MapCategory normalizes a vision label to a wardrobe category,
// defaulting to "other" when nothing matches.
func MapCategory(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return "other"
	}
	if domain.ValidCategory(label) {
		return label
	}
	if mapped, ok := categoryAliases[label]; ok {
		return mapped
	}
	return "other"
}

// MapColor normalizes a vision color name, defaulting to "other".
func MapColor(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	if domain.ValidColor(name) {
		return name
	}
	if mapped, ok := colorAliases[name]; ok {
		return mapped
	}
	return "other"
}
