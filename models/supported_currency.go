package models

// SupportedCurrency is a stablecoin this service accepts on the non-settlement
// leg of an order, together with the token contract it lives on.
type SupportedCurrency struct {
	Code            string `json:"code"`
	Coin            string `json:"coin"`
	Network         string `json:"network"`
	ContractAddress string `json:"contract_address"`
}

var KnownCurrencies = map[string]*SupportedCurrency{
	"USDCETH": {Code: "USDCETH", Coin: "USDC", Network: "ETH", ContractAddress: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"},
	"USDCTRC": {Code: "USDCTRC", Coin: "USDC", Network: "TRX", ContractAddress: "TEkxiTehnzSmSe2XqrBj4w32RUN966rdz8"},
	"USDTETH": {Code: "USDTETH", Coin: "USDT", Network: "ETH", ContractAddress: "0xdAC17F958D2ee523a2206206994597C13D831ec7"},
	"USDTTRC": {Code: "USDTTRC", Coin: "USDT", Network: "TRX", ContractAddress: "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t"},
}
