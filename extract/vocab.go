package extract

// itemCategory is a canonical item type with the tokens that imply it.
type itemCategory struct {
	name     string
	synonyms []string
}

// itemCategories lists every known item type. When a synonym belongs to more
// than one category, the later category owns it for token expansion.
var itemCategories = []itemCategory{
	{"phone", []string{
		"phone", "phones", "mobile", "mobiles",
		"cell", "cellphone", "cellphones", "cell-phone", "cell-phones",
		"smartphone", "smartphones", "handset", "handsets",
		"iphone", "iphones", "android",
	}},
	{"laptop", []string{
		"laptop", "laptops", "notebook", "notebooks",
		"macbook", "macbooks", "ultrabook", "ultrabooks",
	}},
	{"tablet", []string{"tablet", "tablets", "ipad", "ipads", "tab", "tabs"}},
	{"earbuds", []string{
		"earbud", "earbuds", "earphone", "earphones", "earpiece", "earpieces",
		"airpod", "airpods", "headset", "headsets", "tws", "buds",
	}},
	{"headphones", []string{"headphone", "headphones", "head-set", "head-sets", "headset", "headsets"}},
	{"powerbank", []string{"powerbank", "power-bank", "powerbanks", "power-banks"}},
	{"charger", []string{
		"charger", "chargers", "adapter", "adaptor", "adapters", "adaptors",
		"charging", "charge", "cable", "cables", "wire", "wires",
		"typec", "type-c", "usbc", "usb-c", "microusb", "micro-usb", "lightning",
	}},
	{"usb", []string{
		"usb", "pendrive", "pen-drive", "flashdrive", "flash-drive",
		"thumbdrive", "thumb-drive", "sdcard", "sd-card", "microsd",
		"memorycard", "memory-card",
	}},
	{"camera", []string{"camera", "cameras", "gopro", "dslr", "nikon", "canon", "tripod", "tripods"}},
	{"wallet", []string{
		"wallet", "wallets", "purse", "purses", "billfold", "billfolds",
		"cardholder", "card-holder", "cardholders", "card-holders",
		"moneybag", "money-bag", "moneybags",
	}},
	{"bag", []string{
		"bag", "bags", "backpack", "backpacks", "rucksack", "rucksacks",
		"handbag", "handbags", "satchel", "satchels", "pouch", "pouches",
		"luggage", "suitcase", "suitcases",
	}},
	{"keys", []string{"key", "keys", "keychain", "keychains", "keyring", "keyrings"}},
	{"card", []string{
		"card", "cards", "id", "nid", "studentid", "student-id",
		"license", "licence", "bankcard", "bank-card", "atm", "debit", "credit",
	}},
	{"documents", []string{
		"document", "documents", "paper", "papers", "file", "files",
		"certificate", "certificates", "passport", "passports",
		"ticket", "tickets", "receipt", "receipts", "letter", "letters",
	}},
	{"umbrella", []string{"umbrella", "umbrellas", "parasol", "parasols"}},
	{"fan", []string{
		"fan", "fans", "pocketfan", "pocket-fan", "pocketfans",
		"minifan", "mini-fan", "minifans", "handfan", "hand-fan", "handfans",
		"portablefan", "portable-fan",
	}},
	{"book", []string{
		"book", "books", "notebook", "notebooks", "textbook", "textbooks",
		"novel", "novels", "diary", "diaries", "journal", "journals",
		"copy", "copies", "khata", "khatas",
	}},
	{"bottle", []string{"bottle", "bottles", "waterbottle", "water-bottle", "flask", "flasks", "thermos", "sipper"}},
	{"glasses", []string{"glasses", "spectacles", "goggles", "sunglass", "sunglasses", "specs"}},
	{"jewelry", []string{
		"ring", "rings", "necklace", "necklaces", "bracelet", "bracelets",
		"chain", "chains", "earring", "earrings", "jewelry", "jewellery",
	}},
	{"money", []string{"money", "cash", "tk", "taka", "note", "notes", "coin", "coins"}},
	{"clothing", []string{
		"jacket", "jackets", "coat", "coats", "hoodie", "hoodies",
		"sweater", "sweaters", "shirt", "shirts",
		"tshirt", "t-shirt", "tshirts", "t-shirts",
		"pant", "pants", "trouser", "trousers", "scarf", "scarves",
		"cap", "caps", "hat", "hats", "mask", "masks",
	}},
	{"calculator", []string{"calculator", "calculators", "casio"}},
	{"watch", []string{"watch", "watches", "smartwatch", "smartwatches", "band", "bands"}},
}

// itemPhrases are multi-word hints, matched as substrings of normalized text.
// Each match is worth three synonym tokens.
var itemPhrases = map[string][]string{
	"powerbank": {"power bank", "powerbank", "power-bank"},
	"charger": {
		"phone charger", "mobile charger", "laptop charger",
		"charging cable", "charger cable",
		"type c cable", "type-c cable", "usb c cable", "usb-c cable",
		"micro usb cable", "micro-usb cable", "lightning cable",
	},
	"card":      {"id card", "student id", "student-id", "nid card", "atm card", "bank card"},
	"usb":       {"usb drive", "flash drive", "flash-drive", "pen drive", "pen-drive", "memory card", "sd card"},
	"earbuds":   {"bluetooth earphone", "wireless earphone", "true wireless", "tws earbud", "tws earbuds"},
	"fan":       {"pocket fan", "mini fan", "hand fan", "portable fan"},
	"book":      {"exercise book", "text book", "textbook", "note book", "note-book"},
	"documents": {"national id", "nid card", "birth certificate", "exam admit", "admit card"},
}

const phraseWeight = 3

// itemPreference breaks ties between equally scored item types. Earlier wins.
var itemPreference = []string{
	"documents", "card", "wallet", "keys", "phone", "laptop", "tablet",
	"earbuds", "headphones", "powerbank", "charger", "usb", "camera",
	"umbrella", "fan", "book", "glasses", "bottle", "jewelry", "money",
	"watch", "calculator", "bag", "clothing",
}

var brands = map[string]bool{
	"apple": true, "iphone": true, "ipad": true,
	"samsung": true, "xiaomi": true, "redmi": true, "poco": true, "oneplus": true,
	"oppo": true, "vivo": true, "huawei": true,
	"google": true, "pixel": true, "nokia": true, "realme": true, "motorola": true,
	"infinix": true, "tecno": true, "itel": true,
	"dell": true, "hp": true, "lenovo": true, "asus": true, "acer": true, "msi": true,
	"macbook": true, "microsoft": true, "surface": true,
	"sony": true, "jbl": true, "bose": true, "beats": true, "skullcandy": true, "sennheiser": true,
	"anker": true, "soundcore": true, "baseus": true, "ugreen": true, "aukey": true, "romoss": true,
	"boat": true, "edifier": true,
	"casio": true, "fossil": true, "garmin": true,
}

// markKeyword is a unique mark with the words that indicate it.
type markKeyword struct {
	mark  string
	words []string
}

var markKeywords = []markKeyword{
	{"sticker", []string{"sticker", "stickers"}},
	{"scratch", []string{"scratch", "scratched", "scratches"}},
	{"engraved", []string{"engraved", "engraving", "etched"}},
	{"crack", []string{"crack", "cracked", "broken"}},
	{"tear", []string{"tear", "torn"}},
	{"dent", []string{"dent", "dented"}},
	{"lock", []string{"lock", "locked"}},
}

var (
	// tokenCategory maps a synonym token to its canonical item type.
	tokenCategory = buildTokenCategory()
	// categorySynonyms is the synonym set of each item type.
	categorySynonyms = buildCategorySynonyms()
	// preferenceRank is the tie-break position of each item type.
	preferenceRank = buildPreferenceRank()
)

func buildTokenCategory() map[string]string {
	m := make(map[string]string)
	for _, c := range itemCategories {
		for _, syn := range c.synonyms {
			m[syn] = c.name
		}
	}
	return m
}

func buildCategorySynonyms() map[string]map[string]bool {
	m := make(map[string]map[string]bool, len(itemCategories))
	for _, c := range itemCategories {
		set := make(map[string]bool, len(c.synonyms))
		for _, syn := range c.synonyms {
			set[syn] = true
		}
		m[c.name] = set
	}
	return m
}

func buildPreferenceRank() map[string]int {
	m := make(map[string]int, len(itemPreference))
	for i, name := range itemPreference {
		m[name] = i
	}
	return m
}

// IsBrand reports whether token is in the brand vocabulary.
func IsBrand(token string) bool {
	return brands[token]
}

// CategoryOf returns the canonical item type a token implies, or "".
func CategoryOf(token string) string {
	return tokenCategory[token]
}
