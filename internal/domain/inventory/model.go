package inventory

import (
	"time"

	"github.com/google/uuid"
)

const DefaultLowStockThreshold = 10

type Medication struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Quantity          int       `json:"quantity"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	Category          *string   `json:"category"`
	CreatedAt         time.Time `json:"created_at"`
}

// LowStock reports whether the stock is at or below the threshold.
func (m *Medication) LowStock() bool { return m.Quantity <= m.LowStockThreshold }

// Item is the inventory view of a medication.
type Item struct {
	*Medication
	LowStock bool `json:"low_stock"`
}

func (m *Medication) Item() Item { return Item{Medication: m, LowStock: m.LowStock()} }

type StockUpdate struct {
	ID       string `json:"id"`
	Quantity *int   `json:"quantity"`
}
