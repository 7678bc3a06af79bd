// internal/models/product.go
package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/lib/pq"
)

// DefaultImageKey is the reserved imageUrls key; when present it takes
// precedence over the DefaultImage column.
const DefaultImageKey = "default"

type Product struct {
	BaseModel
	Name         string         `json:"name" gorm:"size:255;not null;index"`
	Price        float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	Discount     string         `json:"discount" gorm:"size:20"`
	Details      string         `json:"details,omitempty" gorm:"type:text"`
	Categories   pq.StringArray `json:"categories" gorm:"type:text[]"`
	Colors       pq.StringArray `json:"colors" gorm:"type:text[]"`
	Sizes        pq.StringArray `json:"sizes" gorm:"type:text[]"`
	Features     pq.StringArray `json:"features" gorm:"type:text[]"`
	ImageURLs    ImageMap       `json:"imageUrls" gorm:"type:jsonb"`
	DefaultImage string         `json:"defaultImage" gorm:"size:1024"`
	Rating       RatingMap      `json:"rating" gorm:"type:jsonb"`
	Reviews      ReviewList     `json:"reviews" gorm:"type:jsonb"`
}

// Review is embedded in the product document, not a table of its own. The
// reviewer fields are a snapshot taken at submission time; likes carry set
// semantics but are stored as a list.
type Review struct {
	ReviewerName  string   `json:"reviewerName"`
	ReviewerPhoto string   `json:"reviewerPhoto,omitempty"`
	ReviewerEmail string   `json:"reviewerEmail,omitempty"`
	Rating        float64  `json:"rating"`
	ReviewText    string   `json:"reviewText"`
	Date          string   `json:"date"`
	UserID        string   `json:"userId"`
	Likes         []string `json:"likes"`
}

// PrimaryImage resolves the thumbnail for a color, tolerating colors that
// have no imageUrls entry.
func (p *Product) PrimaryImage(color string) string {
	if color != "" {
		if urls, ok := p.ImageURLs[color]; ok && len(urls) > 0 {
			return urls[0]
		}
	}
	if urls, ok := p.ImageURLs[DefaultImageKey]; ok && len(urls) > 0 {
		return urls[0]
	}
	return p.DefaultImage
}

// ImageMap maps a color name (or the reserved "default" key) to its ordered
// image URLs.
type ImageMap map[string][]string

func (m ImageMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *ImageMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, m)
}

// RatingMap maps a rating value rendered as a string ("4", "4.5") to the
// count of reviews at that value.
type RatingMap map[string]int

func (m RatingMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *RatingMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, m)
}

type ReviewList []Review

func (l ReviewList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]Review{})
	}
	return json.Marshal(l)
}

func (l *ReviewList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, l)
}
