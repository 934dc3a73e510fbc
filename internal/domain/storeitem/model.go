package storeitem

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type Status string

const (
	StatusInStock      Status = "In Stock"
	StatusLowStock     Status = "Low Stock"
	StatusOutOfStock   Status = "Out of Stock"
	StatusDiscontinued Status = "Discontinued"
)

// LowStockThreshold is the highest stock count still reported as Low Stock.
const LowStockThreshold = 5

type Category string

const (
	CategoryJerseys     Category = "Jerseys"
	CategoryTraining    Category = "Training"
	CategoryAccessories Category = "Accessories"
	CategoryEquipment   Category = "Equipment"
)

var AllCategories = map[Category]struct{}{
	CategoryJerseys:     {},
	CategoryTraining:    {},
	CategoryAccessories: {},
	CategoryEquipment:   {},
}

type Size string

var AllSizes = []Size{"XS", "S", "M", "L", "XL", "XXL"}

func IsValidSize(size Size) bool {
	for _, s := range AllSizes {
		if s == size {
			return true
		}
	}
	return false
}

// Item is a product sold in the club store.
type Item struct {
	ID          string
	Name        string
	Price       float64
	Stock       int
	Status      Status
	Description string
	ImagePath   string
	Category    Category
	Sizes       []Size
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DeriveStatus computes the stock status; Discontinued is sticky and only set explicitly.
func DeriveStatus(stock int, requested Status) Status {
	if requested == StatusDiscontinued {
		return StatusDiscontinued
	}
	switch {
	case stock <= 0:
		return StatusOutOfStock
	case stock <= LowStockThreshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// RoundPrice rounds to whole cents.
func RoundPrice(price float64) float64 {
	return math.Round(price*100) / 100
}

func (i Item) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("store item id is required")
	}
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("store item name is required")
	}
	if i.Price < 0 || math.IsNaN(i.Price) || math.IsInf(i.Price, 0) {
		return fmt.Errorf("store item price must be a non-negative number")
	}
	if i.Stock < 0 {
		return fmt.Errorf("store item stock cannot be negative")
	}
	switch i.Status {
	case StatusInStock, StatusLowStock, StatusOutOfStock, StatusDiscontinued:
	default:
		return fmt.Errorf("invalid store item status: %s", i.Status)
	}
	if _, ok := AllCategories[i.Category]; !ok {
		return fmt.Errorf("invalid store item category: %s", i.Category)
	}
	seen := make(map[Size]struct{}, len(i.Sizes))
	for _, size := range i.Sizes {
		if !IsValidSize(size) {
			return fmt.Errorf("invalid store item size: %s", size)
		}
		if _, dup := seen[size]; dup {
			return fmt.Errorf("duplicate store item size: %s", size)
		}
		seen[size] = struct{}{}
	}

	return nil
}
