package quotes

// Quote is the latest tradable price for one ticker.
type Quote struct {
	Symbol        string
	Price         float64
	PreviousClose float64
}

type quoteResult struct {
	Symbol                     string  `json:"symbol"`
	RegularMarketPrice         float64 `json:"regularMarketPrice"`
	RegularMarketPreviousClose float64 `json:"regularMarketPreviousClose"`
	Currency                   string  `json:"currency"`
	RegularMarketChangePercent float64 `json:"regularMarketChangePercent"`
}

type quoteResponseBody struct {
	Result []quoteResult `json:"result"`
	Error  *struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

type getQuotesResponse struct {
	QuoteResponse quoteResponseBody `json:"quoteResponse"`
}
