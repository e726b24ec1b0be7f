package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Sale represents a single transactional sales record from an uploaded file.
type Sale struct {
	Date         time.Time
	ID           string
	Product      string // Product category label
	Location     string
	CustomerType string
	Hash         string
	Volume       float64
	UnitPrice    float64
}

// Revenue is the derived per-row revenue: volume times unit price.
func (s *Sale) Revenue() float64 {
	return s.Volume * s.UnitPrice
}

// GenerateHash creates a unique hash for duplicate detection.
func (s *Sale) GenerateHash() string {
	data := fmt.Sprintf("%s:%.4f:%.4f:%s:%s:%s",
		s.Date.Format("2006-01-02"),
		s.Volume,
		s.UnitPrice,
		s.Product,
		s.Location,
		s.CustomerType)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
