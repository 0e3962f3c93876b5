// Package countries is the single authoritative country lookup table. The
// data files and UI copy country names verbatim, so names here match the
// corpus spelling, including multi-word forms.
package countries

import "strings"

type Country struct {
	Name string
	Code string // ISO 3166-1 alpha-2, lower case
}

// byName maps corpus country names to ISO codes. Unknown names are an
// explicit miss, never a guess.
var byName = map[string]string{
	"Afghanistan":          "af",
	"Albania":              "al",
	"Algeria":              "dz",
	"Andorra":              "ad",
	"Angola":               "ao",
	"Argentina":            "ar",
	"Armenia":              "am",
	"Australia":            "au",
	"Austria":              "at",
	"Azerbaijan":           "az",
	"Bahrain":              "bh",
	"Bangladesh":           "bd",
	"Belarus":              "by",
	"Belgium":              "be",
	"Bolivia":              "bo",
	"Bosnia & Herzegovina": "ba",
	"Botswana":             "bw",
	"Brazil":               "br",
	"Bulgaria":             "bg",
	"Cambodia":             "kh",
	"Cameroon":             "cm",
	"Canada":               "ca",
	"Chile":                "cl",
	"China":                "cn",
	"Colombia":             "co",
	"Costa Rica":           "cr",
	"Croatia":              "hr",
	"Cuba":                 "cu",
	"Cyprus":               "cy",
	"Czech Republic":       "cz",
	"Denmark":              "dk",
	"Dominican Republic":   "do",
	"Ecuador":              "ec",
	"Egypt":                "eg",
	"El Salvador":          "sv",
	"Estonia":              "ee",
	"Ethiopia":             "et",
	"Fiji":                 "fj",
	"Finland":              "fi",
	"France":               "fr",
	"French Guiana":        "gf",
	"Georgia":              "ge",
	"Germany":              "de",
	"Ghana":                "gh",
	"Greece":               "gr",
	"Guatemala":            "gt",
	"Guyana":               "gy",
	"Haiti":                "ht",
	"Honduras":             "hn",
	"Hong Kong":            "hk",
	"Hungary":              "hu",
	"Iceland":              "is",
	"India":                "in",
	"Indonesia":            "id",
	"Iran":                 "ir",
	"Iraq":                 "iq",
	"Ireland":              "ie",
	"Israel":               "il",
	"Italy":                "it",
	"Ivory Coast":          "ci",
	"Jamaica":              "jm",
	"Japan":                "jp",
	"Jordan":               "jo",
	"Kazakhstan":           "kz",
	"Kenya":                "ke",
	"Kosovo":               "xk",
	"Kuwait":               "kw",
	"Kyrgyzstan":           "kg",
	"Laos":                 "la",
	"Latvia":               "lv",
	"Lebanon":              "lb",
	"Libya":                "ly",
	"Liechtenstein":        "li",
	"Lithuania":            "lt",
	"Luxembourg":           "lu",
	"Macau":                "mo",
	"Madagascar":           "mg",
	"Malaysia":             "my",
	"Malta":                "mt",
	"Mexico":               "mx",
	"Moldova":              "md",
	"Monaco":               "mc",
	"Mongolia":             "mn",
	"Montenegro":           "me",
	"Morocco":              "ma",
	"Mozambique":           "mz",
	"Myanmar":              "mm",
	"Namibia":              "na",
	"Nepal":                "np",
	"Netherlands":          "nl",
	"New Zealand":          "nz",
	"Nicaragua":            "ni",
	"Nigeria":              "ng",
	"North Macedonia":      "mk",
	"Norway":               "no",
	"Oman":                 "om",
	"Pakistan":             "pk",
	"Panama":               "pa",
	"Papua New Guinea":     "pg",
	"Paraguay":             "py",
	"Peru":                 "pe",
	"Philippines":          "ph",
	"Poland":               "pl",
	"Portugal":             "pt",
	"Qatar":                "qa",
	"Romania":              "ro",
	"Russia":               "ru",
	"Rwanda":               "rw",
	"San Marino":           "sm",
	"Saudi Arabia":         "sa",
	"Senegal":              "sn",
	"Serbia":               "rs",
	"Singapore":            "sg",
	"Slovakia":             "sk",
	"Slovenia":             "si",
	"South Africa":         "za",
	"South Korea":          "kr",
	"Spain":                "es",
	"Sri Lanka":            "lk",
	"Suriname":             "sr",
	"Sweden":               "se",
	"Switzerland":          "ch",
	"Syria":                "sy",
	"Taiwan":               "tw",
	"Tanzania":             "tz",
	"Thailand":             "th",
	"Tunisia":              "tn",
	"Turkey":               "tr",
	"Uganda":               "ug",
	"Ukraine":              "ua",
	"United Arab Emirates": "ae",
	"United Kingdom":       "gb",
	"United States":        "us",
	"Uruguay":              "uy",
	"Uzbekistan":           "uz",
	"Vatican City":         "va",
	"Venezuela":            "ve",
	"Vietnam":              "vn",
	"Zambia":               "zm",
	"Zimbabwe":             "zw",
}

// Lookup returns the table entry for a country name.
func Lookup(name string) (Country, bool) {
	code, ok := byName[name]
	if !ok {
		return Country{}, false
	}
	return Country{Name: name, Code: code}, true
}

// CodeOrDefault returns the ISO code for name, falling back to the
// lower-cased name when the table has no entry. The news provider accepts
// either form for most countries, so the fallback keeps unknown countries
// queryable instead of failing.
func CodeOrDefault(name string) string {
	if c, ok := Lookup(name); ok {
		return c.Code
	}
	return strings.ToLower(name)
}

// Flag returns the regional-indicator emoji for a country name, or the
// white flag when the country is unknown. Kosovo has no emoji flag
// assignment, so it also gets the fallback.
func Flag(name string) string {
	c, ok := Lookup(name)
	if !ok || c.Code == "xk" {
		return whiteFlag
	}
	return flagFromCode(c.Code)
}

// U+1F3F3 + VS16, the white flag.
const whiteFlag = "\U0001F3F3️"

func flagFromCode(code string) string {
	r := []rune(strings.ToUpper(code))
	if len(r) != 2 {
		return whiteFlag
	}
	const base = 0x1F1E6
	return string(rune(base+int(r[0]-'A'))) + string(rune(base+int(r[1]-'A')))
}
