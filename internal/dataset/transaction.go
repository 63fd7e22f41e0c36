package dataset

import (
	"fmt"
	"strconv"

	"retailcli/internal/config"
)

// Transaction is one order line joined with its order header. Every
// transaction belongs to exactly one order; order-level attributes are
// repeated across the order's lines, as in the source tables.
type Transaction struct {
	OrderID     string  `json:"order_id"`
	OrderDate   string  `json:"order_date"`
	Customer    string  `json:"customer"`
	State       string  `json:"state"`
	City        string  `json:"city"`
	Category    string  `json:"category"`
	SubCategory string  `json:"sub_category"`
	Quantity    int     `json:"quantity"`
	Amount      float64 `json:"amount"`
	Profit      float64 `json:"profit"`
}

// Transactions converts a joined table into typed transaction records.
// The table must carry the full joined column contract; numeric cells
// that fail to parse surface as ParseError with the offending value.
func Transactions(t *Table) ([]Transaction, error) {
	if err := t.RequireColumns(
		config.ColOrderID,
		config.ColOrderDate,
		config.ColCategory,
		config.ColSubCategory,
		config.ColQuantity,
		config.ColAmount,
		config.ColProfit,
	); err != nil {
		return nil, err
	}

	txns := make([]Transaction, 0, t.NumRows())
	for i := range t.Rows {
		quantity, err := parseInt(t, i, config.ColQuantity)
		if err != nil {
			return nil, err
		}
		if quantity < 0 {
			return nil, &ParseError{
				Table: t.Name, Column: config.ColQuantity, Row: i,
				Value: t.Cell(i, config.ColQuantity),
				Err:   fmt.Errorf("quantity must be non-negative"),
			}
		}
		amount, err := parseFloat(t, i, config.ColAmount)
		if err != nil {
			return nil, err
		}
		profit, err := parseFloat(t, i, config.ColProfit)
		if err != nil {
			return nil, err
		}

		txns = append(txns, Transaction{
			OrderID:     t.Cell(i, config.ColOrderID),
			OrderDate:   t.Cell(i, config.ColOrderDate),
			Customer:    t.Cell(i, config.ColCustomer),
			State:       t.Cell(i, config.ColState),
			City:        t.Cell(i, config.ColCity),
			Category:    t.Cell(i, config.ColCategory),
			SubCategory: t.Cell(i, config.ColSubCategory),
			Quantity:    quantity,
			Amount:      amount,
			Profit:      profit,
		})
	}
	return txns, nil
}

func parseInt(t *Table, row int, column string) (int, error) {
	raw := t.Cell(row, column)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ParseError{Table: t.Name, Column: column, Row: row, Value: raw, Err: err}
	}
	return v, nil
}

func parseFloat(t *Table, row int, column string) (float64, error) {
	raw := t.Cell(row, column)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &ParseError{Table: t.Name, Column: column, Row: row, Value: raw, Err: err}
	}
	return v, nil
}
