package validation

// Domain reference tables. The state and ZIP tables are derived from the USPS
// ZIP prefix assignments; the area-code table is the set of assignable NANP
// geographic codes for the US and its territories. Reserved and service codes
// (toll-free 8xx, premium 900, government 710, N11 patterns) are deliberately
// absent so they fail the lookup.

// usStates is the set of valid two-letter US state and territory codes,
// including DC and the military mail "states".
var usStates = map[string]struct{}{
	"AL": {}, "AK": {}, "AZ": {}, "AR": {}, "CA": {}, "CO": {}, "CT": {},
	"DE": {}, "DC": {}, "FL": {}, "GA": {}, "HI": {}, "ID": {}, "IL": {},
	"IN": {}, "IA": {}, "KS": {}, "KY": {}, "LA": {}, "ME": {}, "MD": {},
	"MA": {}, "MI": {}, "MN": {}, "MS": {}, "MO": {}, "MT": {}, "NE": {},
	"NV": {}, "NH": {}, "NJ": {}, "NM": {}, "NY": {}, "NC": {}, "ND": {},
	"OH": {}, "OK": {}, "OR": {}, "PA": {}, "RI": {}, "SC": {}, "SD": {},
	"TN": {}, "TX": {}, "UT": {}, "VT": {}, "VA": {}, "WA": {}, "WV": {},
	"WI": {}, "WY": {},
	"AS": {}, "GU": {}, "MP": {}, "PR": {}, "VI": {},
	"AA": {}, "AE": {}, "AP": {},
}

// zipRange is an inclusive range of three-digit ZIP prefixes.
type zipRange struct {
	lo int
	hi int
}

// stateZIPRanges maps a state code to the three-digit ZIP prefix ranges
// assigned to it. A ZIP is valid for a state when its first three digits fall
// inside any of the listed ranges.
var stateZIPRanges = map[string][]zipRange{
	"AL": {{350, 369}},
	"AK": {{995, 999}},
	"AZ": {{850, 865}},
	"AR": {{716, 729}},
	"CA": {{900, 961}},
	"CO": {{800, 816}},
	"CT": {{60, 69}},
	"DE": {{197, 199}},
	"DC": {{200, 205}, {569, 569}},
	"FL": {{320, 349}},
	"GA": {{300, 319}, {398, 399}},
	"HI": {{967, 968}},
	"ID": {{832, 838}},
	"IL": {{600, 629}},
	"IN": {{460, 479}},
	"IA": {{500, 528}},
	"KS": {{660, 679}},
	"KY": {{400, 427}},
	"LA": {{700, 714}},
	"ME": {{39, 49}},
	"MD": {{206, 219}},
	"MA": {{10, 27}, {55, 55}},
	"MI": {{480, 499}},
	"MN": {{550, 567}},
	"MS": {{386, 397}},
	"MO": {{630, 658}},
	"MT": {{590, 599}},
	"NE": {{680, 693}},
	"NV": {{889, 898}},
	"NH": {{30, 38}},
	"NJ": {{70, 89}},
	"NM": {{870, 884}},
	"NY": {{4, 5}, {63, 63}, {100, 149}},
	"NC": {{270, 289}},
	"ND": {{580, 588}},
	"OH": {{430, 459}},
	"OK": {{730, 749}},
	"OR": {{970, 979}},
	"PA": {{150, 196}},
	"RI": {{28, 29}},
	"SC": {{290, 299}},
	"SD": {{570, 577}},
	"TN": {{370, 385}},
	"TX": {{733, 733}, {750, 799}, {885, 885}},
	"UT": {{840, 847}},
	"VT": {{50, 59}},
	"VA": {{201, 201}, {220, 246}},
	"WA": {{980, 994}},
	"WV": {{247, 268}},
	"WI": {{530, 549}},
	"WY": {{820, 831}},
	"AS": {{967, 967}},
	"GU": {{969, 969}},
	"MP": {{969, 969}},
	"PR": {{6, 7}, {9, 9}},
	"VI": {{8, 8}},
	"AA": {{340, 340}},
	"AE": {{90, 98}},
	"AP": {{962, 966}},
}

// zipInState reports whether a three-digit ZIP prefix belongs to the state.
func zipInState(state string, prefix int) bool {
	for _, r := range stateZIPRanges[state] {
		if prefix >= r.lo && prefix <= r.hi {
			return true
		}
	}
	return false
}

// usAreaCodes holds the assignable geographic area codes.
var usAreaCodes = make(map[string]struct{}, len(assignableAreaCodes))

func init() {
	for _, code := range assignableAreaCodes {
		usAreaCodes[code] = struct{}{}
	}
}

var assignableAreaCodes = []string{
	"201", "202", "203", "205", "206", "207", "208", "209", "210", "212",
	"213", "214", "215", "216", "217", "218", "219", "220", "223", "224",
	"225", "227", "228", "229", "231", "234", "239", "240", "248", "251",
	"252", "253", "254", "256", "260", "262", "267", "269", "270", "272",
	"274", "276", "279", "281", "283",
	"301", "302", "303", "304", "305", "307", "308", "309", "310", "312",
	"313", "314", "315", "316", "317", "318", "319", "320", "321", "323",
	"325", "326", "330", "331", "332", "334", "336", "337", "339", "340",
	"341", "346", "347", "351", "352", "360", "361", "364", "380", "385",
	"386",
	"401", "402", "404", "405", "406", "407", "408", "409", "410", "412",
	"413", "414", "415", "417", "419", "423", "424", "425", "430", "432",
	"434", "435", "440", "442", "443", "445", "447", "448", "458", "463",
	"464", "469", "470", "475", "478", "479", "480", "484",
	"501", "502", "503", "504", "505", "507", "508", "509", "510", "512",
	"513", "515", "516", "517", "518", "520", "530", "531", "534", "539",
	"540", "541", "551", "559", "561", "562", "563", "564", "567", "570",
	"571", "572", "573", "574", "575", "580", "582", "585", "586",
	"601", "602", "603", "605", "606", "607", "608", "609", "610", "612",
	"614", "615", "616", "617", "618", "619", "620", "623", "626", "628",
	"629", "630", "631", "636", "640", "641", "646", "650", "651", "656",
	"657", "659", "660", "661", "662", "667", "669", "670", "671", "678",
	"680", "681", "682", "684", "689",
	"701", "702", "703", "704", "706", "707", "708", "712", "713", "714",
	"715", "716", "717", "718", "719", "720", "724", "725", "726", "727",
	"731", "732", "734", "737", "740", "743", "747", "754", "757", "760",
	"762", "763", "765", "769", "770", "771", "772", "773", "774", "775",
	"779", "781", "785", "786", "787",
	"801", "802", "803", "804", "805", "806", "808", "810", "812", "813",
	"814", "815", "816", "817", "818", "820", "828", "830", "831", "832",
	"838", "839", "843", "845", "847", "848", "850", "854", "856", "857",
	"858", "859", "860", "862", "863", "864", "865", "870", "872", "878",
	"901", "903", "904", "906", "907", "908", "909", "910", "912", "913",
	"914", "915", "916", "917", "918", "919", "920", "925", "928", "929",
	"930", "931", "934", "936", "937", "938", "939", "940", "941", "945",
	"947", "949", "951", "952", "954", "956", "959", "970", "971", "972",
	"973", "978", "979", "980", "984", "985", "986", "989",
}
