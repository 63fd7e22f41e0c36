package config

// envPrefix is the prefix for all environment variables.
const envPrefix = "RETAIL"

// Analysis defaults. These mirror the dashboard's slider defaults so the
// batch CLI and the API produce the same numbers out of the box.
const (
	DefaultMinSupport    = 0.01
	DefaultMinConfidence = 0.5
	DefaultTopN          = 10

	// DefaultExchangeRate converts amounts from the source currency to INR
	// for report formatting.
	DefaultExchangeRate = 83.0
)

// Column names of the three input tables. Loaders validate these eagerly
// so schema drift fails before any computation starts.
const (
	ColOrderID     = "Order ID"
	ColCategory    = "Category"
	ColSubCategory = "Sub-Category"
	ColAmount      = "Amount"
	ColProfit      = "Profit"
	ColQuantity    = "Quantity"
	ColOrderDate   = "Order Date"
	ColCustomer    = "CustomerName"
	ColState       = "State"
	ColCity        = "City"
	ColTargetMonth = "Month of Order Date"
	ColTarget      = "Target"
)
