package di

// DefaultUSSymbols は追跡対象のデフォルト米国銘柄です。
var DefaultUSSymbols = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "META", "NVDA", "NFLX", "AMD", "INTC",
	"CRM", "ADBE", "PYPL", "UBER", "LYFT", "SQ", "ROKU", "ZM", "DOCU", "SNOW",
}

// DefaultKRSymbols は追跡対象のデフォルト韓国銘柄（KRX証券コード）です。
var DefaultKRSymbols = []string{
	"005930", "000660", "035420", "207940", "006400", "051910", "068270", "323410",
	"035720", "000270", "012330", "066570", "003550", "017670", "030200", "086280",
	"003490", "034730", "015760", "128940",
}
