package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"retailcli/internal/config"
)

// LoadCSV reads a CSV file into a Table. The first record is the header.
// A UTF-8 BOM on the first header cell is stripped so files exported from
// Excel load cleanly.
func LoadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV %s: file is empty", path)
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return NewTable(name, header, records[1:]), nil
}

// LoadOrderLines loads the order-line table and validates its column
// contract: {Order ID, Category, Sub-Category, Amount, Profit, Quantity}.
func LoadOrderLines(path string) (*Table, error) {
	t, err := LoadCSV(path)
	if err != nil {
		return nil, err
	}
	if err := t.RequireColumns(
		config.ColOrderID,
		config.ColCategory,
		config.ColSubCategory,
		config.ColAmount,
		config.ColProfit,
		config.ColQuantity,
	); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadOrderHeaders loads the order-header table and validates its column
// contract: {Order ID, Order Date, CustomerName, State, City}.
func LoadOrderHeaders(path string) (*Table, error) {
	t, err := LoadCSV(path)
	if err != nil {
		return nil, err
	}
	if err := t.RequireColumns(
		config.ColOrderID,
		config.ColOrderDate,
		config.ColCustomer,
		config.ColState,
		config.ColCity,
	); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadTargets loads the sales-target table and validates its column
// contract: {Month of Order Date, Category, Target}.
func LoadTargets(path string) (*Table, error) {
	t, err := LoadCSV(path)
	if err != nil {
		return nil, err
	}
	if err := t.RequireColumns(
		config.ColTargetMonth,
		config.ColCategory,
		config.ColTarget,
	); err != nil {
		return nil, err
	}
	return t, nil
}
