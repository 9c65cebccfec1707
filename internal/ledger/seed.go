package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/agroveda/agroveda-system/internal/model"
)

// SeedDemo наполняет пустой журнал тремя демонстрационными партиями, чтобы
// интерфейс не был пустым при первом запуске. Непустой журнал не трогается.
func (l *Ledger) SeedDemo() {
	if len(l.ListAll()) > 0 {
		return
	}

	for _, b := range demoBatches() {
		l.Add(b)
	}
}

func demoBatches() []model.Batch {
	return []model.Batch{
		{
			ID:         "demo-1",
			Name:       "Alphonso Mango",
			Farmer:     "Ravi Deshmukh",
			BatchID:    "MNG-2401",
			Quantity:   decimal.NewFromInt(500),
			Unit:       "kg",
			Location:   "Ratnagiri Collection Center",
			EntryDate:  "2024-04-02",
			ExpiryDate: "2024-04-16",
			Status:     model.BatchStatusGraded,
			Grade:      "A",
			Price:      decimal.NewFromInt(120),
		},
		{
			ID:         "demo-2",
			Name:       "Basmati Rice",
			Farmer:     "Harpreet Singh",
			BatchID:    "RCE-1187",
			Quantity:   decimal.NewFromInt(2000),
			Unit:       "kg",
			Location:   "Karnal Warehouse 3",
			EntryDate:  "2024-03-18",
			ExpiryDate: "2025-03-18",
			Status:     model.BatchStatusStored,
			Grade:      "Premium",
			Price:      decimal.NewFromInt(85),
		},
		{
			ID:         "demo-3",
			Name:       "Nagpur Orange",
			Farmer:     "Sunita Wagh",
			BatchID:    "ORG-0532",
			Quantity:   decimal.NewFromInt(750),
			Unit:       "kg",
			Location:   "Nagpur Mandi Gate 2",
			EntryDate:  "2024-04-05",
			ExpiryDate: "2024-04-25",
			Status:     model.BatchStatusPending,
			Price:      decimal.NewFromInt(60),
		},
	}
}
