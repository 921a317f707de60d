package utils

const ShortSlashDateLayout = "2006/01/02"
const ShortDashDateLayout = "2006-01-02"
const MonthKeyLayout = "2006-01"

// LongTermHoldingDays is the holding period, in days, at which a gain starts
// receiving long-term tax treatment. The boundary is inclusive: a holding of
// exactly 365 days is long-term.
const LongTermHoldingDays = 365

const (
	CurrencyINR = "INR"
	CurrencyUSD = "USD"
)
