package provider

import "strings"

// Normalize upper-cases and trims a symbol. Symbols are case-insensitive
// and may carry an exchange suffix (e.g. RELIANCE.NS).
func Normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Issuer strips the exchange suffix, leaving the company identifier used
// for news searches.
func Issuer(symbol string) string {
	sym := Normalize(symbol)
	if i := strings.IndexByte(sym, '.'); i > 0 {
		return sym[:i]
	}
	return sym
}

// TwelveDataVariants lists the spellings Twelve Data may use for a symbol,
// in the fixed order they are tried. NSE-suffixed symbols have three
// alternate exchange spellings before the raw symbol.
func TwelveDataVariants(symbol string) []string {
	sym := Normalize(symbol)
	if base, ok := strings.CutSuffix(sym, ".NS"); ok {
		return []string{base + ":NS", "NSE:" + base, base + ":NSE", sym}
	}
	return []string{sym}
}

// YahooVariants lists the Yahoo spellings for a symbol in fixed try order:
// the symbol itself, then for NSE symbols the bare issuer and the BSE
// suffix alternative.
func YahooVariants(symbol string) []string {
	sym := Normalize(symbol)
	if base, ok := strings.CutSuffix(sym, ".NS"); ok {
		return []string{sym, base, base + ".BO"}
	}
	return []string{sym}
}
