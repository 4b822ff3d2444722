package domain

import "sort"

// SupportedAssets is the fixed asset universe the analytics core understands.
// Keys are provider tickers, values are display names.
var SupportedAssets = map[string]string{
	"BTC-USD": "Bitcoin",
	"ETH-USD": "Ethereum",
	"SPY":     "S&P 500 ETF",
	"QQQ":     "NASDAQ ETF",
	"GLD":     "Gold ETF",
	"TLT":     "Long-term Treasury ETF",
	"VTI":     "Total Stock Market ETF",
	"VXUS":    "International Stocks ETF",
	"BND":     "Bond ETF",
	"VNQ":     "Real Estate ETF",
}

// SupportedSymbols returns the supported tickers in sorted order.
func SupportedSymbols() []string {
	symbols := make([]string, 0, len(SupportedAssets))
	for symbol := range SupportedAssets {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// CoreAssets is the default roster analyzed when a caller does not name
// specific assets.
var CoreAssets = []string{"BTC-USD", "ETH-USD", "SPY", "QQQ", "GLD"}

// AssetClass categorizes a symbol into a broad asset class.
func AssetClass(symbol string) string {
	switch symbol {
	case "BTC-USD", "BTC", "ETH-USD", "ETH":
		return "cryptocurrency"
	case "SPY", "QQQ", "VTI", "VXUS":
		return "equity"
	case "TLT", "BND":
		return "fixed_income"
	case "GLD":
		return "commodity"
	case "VNQ":
		return "real_estate"
	default:
		return "other"
	}
}
