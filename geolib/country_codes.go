package geolib

import (
	"fmt"
	"strings"

	"github.com/pariz/gountries"
)

const countryFlagURL = "https://cdn.ipinfo.io/static/images/countries-flags/"

// Flag is a country flag: an emoji and its unicode codepoints.
type Flag struct {
	Emoji   string `json:"emoji"`
	Unicode string `json:"unicode"`
}

// Currency is a national currency: ISO4217 code and a symbol.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
}

// Continent is a continent a country belongs to.
type Continent struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Tables is static reference data joined into every resolved record.
// Tables are immutable for a lifetime of a client instance.
type Tables struct {
	countries  map[string]string
	eu         map[string]bool
	flags      map[string]Flag
	currencies map[string]Currency
	continents map[string]Continent
}

// Populate joins reference data into a record by its country code. A
// record with an empty country code is left untouched. A country code
// missing from any of the tables is a data integrity failure: nothing
// is assigned and an error is returned.
func (t *Tables) Populate(details *Details) error {
	code := details.CountryCode
	if code == "" {
		return nil
	}

	name, ok := t.countries[code]
	if !ok {
		return integrityError(code, "country names")
	}

	flag, ok := t.flags[code]
	if !ok {
		return integrityError(code, "country flags")
	}

	currency, ok := t.currencies[code]
	if !ok {
		return integrityError(code, "country currencies")
	}

	continent, ok := t.continents[code]
	if !ok {
		return integrityError(code, "continents")
	}

	details.CountryName = name
	details.IsEU = t.eu[code]
	details.CountryFlag = &flag
	details.CountryFlagURL = countryFlagURL + code + ".svg"
	details.CountryCurrency = &currency
	details.Continent = &continent

	return nil
}

func integrityError(code, table string) error {
	return newError(KindDataIntegrity,
		fmt.Sprintf("country code %s is missing from the %s table", code, table),
		nil)
}

func newTables(config Config) (*Tables, error) {
	rv := &Tables{
		countries:  config.Countries,
		flags:      config.Flags,
		currencies: config.Currencies,
		continents: config.Continents,
	}

	if rv.countries == nil {
		rv.countries = defaultCountries()
	}

	if rv.flags == nil {
		rv.flags = defaultFlags(rv.countries)
	}

	if rv.currencies == nil {
		rv.currencies = defaultCurrencies
	}

	if rv.continents == nil {
		rv.continents = defaultContinents()
	}

	eu := config.EU
	if eu == nil {
		eu = defaultEU
	}

	rv.eu = make(map[string]bool, len(eu))
	for _, v := range eu {
		rv.eu[normalizeAlpha2(v)] = true
	}

	for name, table := range map[string]int{
		"countries":  len(rv.countries),
		"flags":      len(rv.flags),
		"currencies": len(rv.currencies),
		"continents": len(rv.continents),
	} {
		if table == 0 {
			return nil, newError(KindSetup,
				fmt.Sprintf("%s table is empty", name), nil)
		}
	}

	return rv, nil
}

// normalizeAlpha2 uppercases a 2-letter ISO3166 code and rejects
// everything which is not one.
func normalizeAlpha2(alpha2 string) string {
	alpha2 = strings.ToUpper(alpha2)

	if len(alpha2) != 2 {
		return ""
	}

	return alpha2
}

func defaultCountries() map[string]string {
	query := gountries.New()
	rv := make(map[string]string, len(query.Countries))

	for code, country := range query.Countries {
		code = normalizeAlpha2(code)
		if code == "" {
			continue
		}

		rv[code] = country.Name.Common
	}

	return rv
}

// defaultFlags derives flags from country codes: a flag emoji is a pair
// of Unicode regional indicator symbols, so any 2-letter code has one.
func defaultFlags(countries map[string]string) map[string]Flag {
	rv := make(map[string]Flag, len(countries))

	for code := range countries {
		if code[0] < 'A' || code[0] > 'Z' || code[1] < 'A' || code[1] > 'Z' {
			continue
		}

		first := 0x1F1E6 + rune(code[0]) - 'A'
		second := 0x1F1E6 + rune(code[1]) - 'A'

		rv[code] = Flag{
			Emoji:   string(first) + string(second),
			Unicode: fmt.Sprintf("U+%X U+%X", first, second),
		}
	}

	return rv
}

var defaultEU = []string{
	"AT", "BE", "BG", "HR", "CY", "CZ", "DK", "EE", "FI", "FR",
	"DE", "GR", "HU", "IE", "IT", "LV", "LT", "LU", "MT", "NL",
	"PL", "PT", "RO", "SK", "SI", "ES", "SE",
}

var continentNames = map[string]string{
	"AF": "Africa",
	"AN": "Antarctica",
	"AS": "Asia",
	"EU": "Europe",
	"NA": "North America",
	"OC": "Oceania",
	"SA": "South America",
}

var continentMembers = map[string][]string{
	"AF": {
		"AO", "BF", "BI", "BJ", "BW", "CD", "CF", "CG", "CI", "CM",
		"CV", "DJ", "DZ", "EG", "EH", "ER", "ET", "GA", "GH", "GM",
		"GN", "GQ", "GW", "KE", "KM", "LR", "LS", "LY", "MA", "MG",
		"ML", "MR", "MU", "MW", "MZ", "NA", "NE", "NG", "RE", "RW",
		"SC", "SD", "SH", "SL", "SN", "SO", "SS", "ST", "SZ", "TD",
		"TG", "TN", "TZ", "UG", "YT", "ZA", "ZM", "ZW",
	},
	"AN": {
		"AQ", "BV", "GS", "HM", "TF",
	},
	"AS": {
		"AE", "AF", "AM", "AZ", "BD", "BH", "BN", "BT", "CC", "CN",
		"CX", "GE", "HK", "ID", "IL", "IN", "IO", "IQ", "IR", "JO",
		"JP", "KG", "KH", "KP", "KR", "KW", "KZ", "LA", "LB", "LK",
		"MM", "MN", "MO", "MV", "MY", "NP", "OM", "PH", "PK", "PS",
		"QA", "SA", "SG", "SY", "TH", "TJ", "TL", "TM", "TR", "TW",
		"UZ", "VN", "YE",
	},
	"EU": {
		"AD", "AL", "AT", "AX", "BA", "BE", "BG", "BY", "CH", "CY",
		"CZ", "DE", "DK", "EE", "ES", "FI", "FO", "FR", "GB", "GG",
		"GI", "GR", "HR", "HU", "IE", "IM", "IS", "IT", "JE", "LI",
		"LT", "LU", "LV", "MC", "MD", "ME", "MK", "MT", "NL", "NO",
		"PL", "PT", "RO", "RS", "RU", "SE", "SI", "SJ", "SK", "SM",
		"UA", "VA", "XK",
	},
	"NA": {
		"AG", "AI", "AW", "BB", "BL", "BM", "BQ", "BS", "BZ", "CA",
		"CR", "CU", "CW", "DM", "DO", "GD", "GL", "GP", "GT", "HN",
		"HT", "JM", "KN", "KY", "LC", "MF", "MQ", "MS", "MX", "NI",
		"PA", "PM", "PR", "SV", "SX", "TC", "TT", "US", "VC", "VG",
		"VI",
	},
	"OC": {
		"AS", "AU", "CK", "FJ", "FM", "GU", "KI", "MH", "MP", "NC",
		"NF", "NR", "NU", "NZ", "PF", "PG", "PN", "PW", "SB", "TK",
		"TO", "TV", "UM", "VU", "WF", "WS",
	},
	"SA": {
		"AR", "BO", "BR", "CL", "CO", "EC", "FK", "GF", "GY", "PE",
		"PY", "SR", "UY", "VE",
	},
}

func defaultContinents() map[string]Continent {
	rv := map[string]Continent{}

	for code, members := range continentMembers {
		continent := Continent{
			Code: code,
			Name: continentNames[code],
		}

		for _, v := range members {
			rv[v] = continent
		}
	}

	return rv
}

var defaultCurrencies = map[string]Currency{
	"AD": {"EUR", "€"},
	"AE": {"AED", "د.إ"},
	"AF": {"AFN", "؋"},
	"AG": {"XCD", "$"},
	"AI": {"XCD", "$"},
	"AL": {"ALL", "L"},
	"AM": {"AMD", "֏"},
	"AO": {"AOA", "Kz"},
	"AQ": {"USD", "$"},
	"AR": {"ARS", "$"},
	"AS": {"USD", "$"},
	"AT": {"EUR", "€"},
	"AU": {"AUD", "$"},
	"AW": {"AWG", "ƒ"},
	"AX": {"EUR", "€"},
	"AZ": {"AZN", "₼"},
	"BA": {"BAM", "KM"},
	"BB": {"BBD", "$"},
	"BD": {"BDT", "৳"},
	"BE": {"EUR", "€"},
	"BF": {"XOF", "Fr"},
	"BG": {"BGN", "лв"},
	"BH": {"BHD", ".د.ب"},
	"BI": {"BIF", "Fr"},
	"BJ": {"XOF", "Fr"},
	"BL": {"EUR", "€"},
	"BM": {"BMD", "$"},
	"BN": {"BND", "$"},
	"BO": {"BOB", "Bs."},
	"BQ": {"USD", "$"},
	"BR": {"BRL", "R$"},
	"BS": {"BSD", "$"},
	"BT": {"BTN", "Nu."},
	"BV": {"NOK", "kr"},
	"BW": {"BWP", "P"},
	"BY": {"BYN", "Br"},
	"BZ": {"BZD", "$"},
	"CA": {"CAD", "$"},
	"CC": {"AUD", "$"},
	"CD": {"CDF", "Fr"},
	"CF": {"XAF", "Fr"},
	"CG": {"XAF", "Fr"},
	"CH": {"CHF", "Fr"},
	"CI": {"XOF", "Fr"},
	"CK": {"NZD", "$"},
	"CL": {"CLP", "$"},
	"CM": {"XAF", "Fr"},
	"CN": {"CNY", "¥"},
	"CO": {"COP", "$"},
	"CR": {"CRC", "₡"},
	"CU": {"CUP", "$"},
	"CV": {"CVE", "Esc"},
	"CW": {"ANG", "ƒ"},
	"CX": {"AUD", "$"},
	"CY": {"EUR", "€"},
	"CZ": {"CZK", "Kč"},
	"DE": {"EUR", "€"},
	"DJ": {"DJF", "Fr"},
	"DK": {"DKK", "kr"},
	"DM": {"XCD", "$"},
	"DO": {"DOP", "$"},
	"DZ": {"DZD", "د.ج"},
	"EC": {"USD", "$"},
	"EE": {"EUR", "€"},
	"EG": {"EGP", "£"},
	"EH": {"MAD", "د.م."},
	"ER": {"ERN", "Nfk"},
	"ES": {"EUR", "€"},
	"ET": {"ETB", "Br"},
	"FI": {"EUR", "€"},
	"FJ": {"FJD", "$"},
	"FK": {"FKP", "£"},
	"FM": {"USD", "$"},
	"FO": {"DKK", "kr"},
	"FR": {"EUR", "€"},
	"GA": {"XAF", "Fr"},
	"GB": {"GBP", "£"},
	"GD": {"XCD", "$"},
	"GE": {"GEL", "₾"},
	"GF": {"EUR", "€"},
	"GG": {"GBP", "£"},
	"GH": {"GHS", "₵"},
	"GI": {"GIP", "£"},
	"GL": {"DKK", "kr"},
	"GM": {"GMD", "D"},
	"GN": {"GNF", "Fr"},
	"GP": {"EUR", "€"},
	"GQ": {"XAF", "Fr"},
	"GR": {"EUR", "€"},
	"GS": {"GBP", "£"},
	"GT": {"GTQ", "Q"},
	"GU": {"USD", "$"},
	"GW": {"XOF", "Fr"},
	"GY": {"GYD", "$"},
	"HK": {"HKD", "$"},
	"HM": {"AUD", "$"},
	"HN": {"HNL", "L"},
	"HR": {"EUR", "€"},
	"HT": {"HTG", "G"},
	"HU": {"HUF", "Ft"},
	"ID": {"IDR", "Rp"},
	"IE": {"EUR", "€"},
	"IL": {"ILS", "₪"},
	"IM": {"GBP", "£"},
	"IN": {"INR", "₹"},
	"IO": {"USD", "$"},
	"IQ": {"IQD", "ع.د"},
	"IR": {"IRR", "﷼"},
	"IS": {"ISK", "kr"},
	"IT": {"EUR", "€"},
	"JE": {"GBP", "£"},
	"JM": {"JMD", "$"},
	"JO": {"JOD", "د.ا"},
	"JP": {"JPY", "¥"},
	"KE": {"KES", "Sh"},
	"KG": {"KGS", "с"},
	"KH": {"KHR", "៛"},
	"KI": {"AUD", "$"},
	"KM": {"KMF", "Fr"},
	"KN": {"XCD", "$"},
	"KP": {"KPW", "₩"},
	"KR": {"KRW", "₩"},
	"KW": {"KWD", "د.ك"},
	"KY": {"KYD", "$"},
	"KZ": {"KZT", "₸"},
	"LA": {"LAK", "₭"},
	"LB": {"LBP", "ل.ل"},
	"LC": {"XCD", "$"},
	"LI": {"CHF", "Fr"},
	"LK": {"LKR", "Rs"},
	"LR": {"LRD", "$"},
	"LS": {"LSL", "L"},
	"LT": {"EUR", "€"},
	"LU": {"EUR", "€"},
	"LV": {"EUR", "€"},
	"LY": {"LYD", "ل.د"},
	"MA": {"MAD", "د.م."},
	"MC": {"EUR", "€"},
	"MD": {"MDL", "L"},
	"ME": {"EUR", "€"},
	"MF": {"EUR", "€"},
	"MG": {"MGA", "Ar"},
	"MH": {"USD", "$"},
	"MK": {"MKD", "ден"},
	"ML": {"XOF", "Fr"},
	"MM": {"MMK", "Ks"},
	"MN": {"MNT", "₮"},
	"MO": {"MOP", "P"},
	"MP": {"USD", "$"},
	"MQ": {"EUR", "€"},
	"MR": {"MRU", "UM"},
	"MS": {"XCD", "$"},
	"MT": {"EUR", "€"},
	"MU": {"MUR", "₨"},
	"MV": {"MVR", ".ރ"},
	"MW": {"MWK", "MK"},
	"MX": {"MXN", "$"},
	"MY": {"MYR", "RM"},
	"MZ": {"MZN", "MT"},
	"NA": {"NAD", "$"},
	"NC": {"XPF", "Fr"},
	"NE": {"XOF", "Fr"},
	"NF": {"AUD", "$"},
	"NG": {"NGN", "₦"},
	"NI": {"NIO", "C$"},
	"NL": {"EUR", "€"},
	"NO": {"NOK", "kr"},
	"NP": {"NPR", "₨"},
	"NR": {"AUD", "$"},
	"NU": {"NZD", "$"},
	"NZ": {"NZD", "$"},
	"OM": {"OMR", "ر.ع."},
	"PA": {"PAB", "B/."},
	"PE": {"PEN", "S/."},
	"PF": {"XPF", "Fr"},
	"PG": {"PGK", "K"},
	"PH": {"PHP", "₱"},
	"PK": {"PKR", "₨"},
	"PL": {"PLN", "zł"},
	"PM": {"EUR", "€"},
	"PN": {"NZD", "$"},
	"PR": {"USD", "$"},
	"PS": {"ILS", "₪"},
	"PT": {"EUR", "€"},
	"PW": {"USD", "$"},
	"PY": {"PYG", "₲"},
	"QA": {"QAR", "ر.ق"},
	"RE": {"EUR", "€"},
	"RO": {"RON", "lei"},
	"RS": {"RSD", "дин."},
	"RU": {"RUB", "₽"},
	"RW": {"RWF", "Fr"},
	"SA": {"SAR", "ر.س"},
	"SB": {"SBD", "$"},
	"SC": {"SCR", "₨"},
	"SD": {"SDG", "ج.س."},
	"SE": {"SEK", "kr"},
	"SG": {"SGD", "$"},
	"SH": {"SHP", "£"},
	"SI": {"EUR", "€"},
	"SJ": {"NOK", "kr"},
	"SK": {"EUR", "€"},
	"SL": {"SLL", "Le"},
	"SM": {"EUR", "€"},
	"SN": {"XOF", "Fr"},
	"SO": {"SOS", "Sh"},
	"SR": {"SRD", "$"},
	"SS": {"SSP", "£"},
	"ST": {"STN", "Db"},
	"SV": {"USD", "$"},
	"SX": {"ANG", "ƒ"},
	"SY": {"SYP", "£"},
	"SZ": {"SZL", "L"},
	"TC": {"USD", "$"},
	"TD": {"XAF", "Fr"},
	"TF": {"EUR", "€"},
	"TG": {"XOF", "Fr"},
	"TH": {"THB", "฿"},
	"TJ": {"TJS", "ЅМ"},
	"TK": {"NZD", "$"},
	"TL": {"USD", "$"},
	"TM": {"TMT", "m"},
	"TN": {"TND", "د.ت"},
	"TO": {"TOP", "T$"},
	"TR": {"TRY", "₺"},
	"TT": {"TTD", "$"},
	"TV": {"AUD", "$"},
	"TW": {"TWD", "$"},
	"TZ": {"TZS", "Sh"},
	"UA": {"UAH", "₴"},
	"UG": {"UGX", "Sh"},
	"UM": {"USD", "$"},
	"US": {"USD", "$"},
	"UY": {"UYU", "$"},
	"UZ": {"UZS", "сўм"},
	"VA": {"EUR", "€"},
	"VC": {"XCD", "$"},
	"VE": {"VES", "Bs.S."},
	"VG": {"USD", "$"},
	"VI": {"USD", "$"},
	"VN": {"VND", "₫"},
	"VU": {"VUV", "Vt"},
	"WF": {"XPF", "Fr"},
	"WS": {"WST", "T"},
	"XK": {"EUR", "€"},
	"YE": {"YER", "﷼"},
	"YT": {"EUR", "€"},
	"ZA": {"ZAR", "R"},
	"ZM": {"ZMW", "ZK"},
	"ZW": {"ZWL", "$"},
}
