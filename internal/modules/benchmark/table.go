package benchmark

import "github.com/idea2index/engine/internal/domain"

// DefaultCountryCode is used when a holding's country cannot be resolved to
// a 2-letter code, and for multi-country baskets.
const DefaultCountryCode = "US"

// benchmarkByCountry maps 2-letter country codes to their national market
// benchmark. Read-only process-wide state, safe for concurrent reads.
// Codes absent from this table are unsupported and fall through to the
// US default.
var benchmarkByCountry = map[string]domain.Benchmark{
	// Americas
	"AR": {Name: "S&P MERVAL", Ticker: "^MERV"},
	"BR": {Name: "IBOVESPA", Ticker: "^BVSP"},
	"CA": {Name: "S&P/TSX Composite", Ticker: "^GSPTSE"},
	"CL": {Name: "S&P/CLX IPSA", Ticker: "^IPSA"},
	"MX": {Name: "IPC MEXICO", Ticker: "^MXX"},
	"US": {Name: "S&P 500", Ticker: "^GSPC"},

	// Europe
	"AT": {Name: "ATX", Ticker: "^ATX"},
	"BE": {Name: "BEL 20", Ticker: "^BFX"},
	"CZ": {Name: "PX Index", Ticker: "PX.PR"},
	"DK": {Name: "OMX Copenhagen 25", Ticker: "^OMXC25"},
	"FI": {Name: "OMX Helsinki 25", Ticker: "^OMXH25"},
	"FR": {Name: "CAC 40", Ticker: "^FCHI"},
	"DE": {Name: "DAX", Ticker: "^GDAXI"},
	"GR": {Name: "Athex Composite", Ticker: "^ATG"},
	"HU": {Name: "BUX", Ticker: "^BUX"},
	"IE": {Name: "ISEQ 20", Ticker: "^ISEQ"},
	"IT": {Name: "FTSE MIB", Ticker: "FTSEMIB.MI"},
	"NL": {Name: "AEX", Ticker: "^AEX"},
	"NO": {Name: "OBX Index", Ticker: "^OBX"},
	"PL": {Name: "WIG20", Ticker: "^WIG20"},
	"PT": {Name: "PSI 20", Ticker: "PSI20.LS"},
	"RU": {Name: "MOEX Russia Index", Ticker: "IMOEX.ME"},
	"ES": {Name: "IBEX 35", Ticker: "^IBEX"},
	"SE": {Name: "OMX Stockholm 30", Ticker: "^OMX"},
	"CH": {Name: "Swiss Market Index", Ticker: "^SSMI"},
	"TR": {Name: "BIST 100", Ticker: "XU100.IS"},
	"GB": {Name: "FTSE 100", Ticker: "^FTSE"},

	// Asia-Pacific
	"AU": {Name: "S&P/ASX 200", Ticker: "^AXJO"},
	"CN": {Name: "Shanghai Composite", Ticker: "000001.SS"},
	"HK": {Name: "Hang Seng Index", Ticker: "^HSI"},
	"IN": {Name: "NIFTY 50", Ticker: "^NSEI"},
	"ID": {Name: "Jakarta Composite", Ticker: "^JKSE"},
	"JP": {Name: "Nikkei 225", Ticker: "^N225"},
	"MY": {Name: "FTSE Bursa Malaysia KLCI", Ticker: "^KLSE"},
	"NZ": {Name: "S&P/NZX 50", Ticker: "^NZ50"},
	"PK": {Name: "KSE 100", Ticker: "^KSE"},
	"PH": {Name: "PSEi Composite", Ticker: "PSEI.PS"},
	"SG": {Name: "Straits Times Index", Ticker: "^STI"},
	"KR": {Name: "KOSPI Composite", Ticker: "^KS11"},
	"LK": {Name: "CSE All-Share", Ticker: "^CSE"},
	"TW": {Name: "TSEC Weighted Index", Ticker: "^TWII"},
	"TH": {Name: "SET Index", Ticker: "^SET.BK"},
	"VN": {Name: "VN-Index", Ticker: "^VNINDEX"},

	// Middle East & Africa
	"EG": {Name: "EGX 30", Ticker: "^CASE30"},
	"IL": {Name: "TA-35", Ticker: "^TA35"},
	"QA": {Name: "QE Index", Ticker: "QSI.QA"},
	"SA": {Name: "Tadawul All Share", Ticker: "^TASI.SR"},
	"ZA": {Name: "FTSE/JSE Top 40", Ticker: "^J200.JO"},
	"AE": {Name: "DFM General", Ticker: "DFMGI.AE"},
}

// DefaultBenchmark returns the US default benchmark (S&P 500)
func DefaultBenchmark() domain.Benchmark {
	return benchmarkByCountry[DefaultCountryCode]
}

// Lookup returns the benchmark configured for a 2-letter country code
func Lookup(code string) (domain.Benchmark, bool) {
	b, ok := benchmarkByCountry[code]
	return b, ok
}

// SupportedCountries returns the number of configured country codes
func SupportedCountries() int {
	return len(benchmarkByCountry)
}
