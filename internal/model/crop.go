package model

import "time"

// Crop categories. Anything else is stored as CategoryOther.
const (
	CategoryGrain     = "grain"
	CategoryVegetable = "vegetable"
	CategoryFruit     = "fruit"
	CategorySpice     = "spice"
	CategoryOther     = "other"
)

// Crop is a farmer's sellable produce listing. FarmerName is denormalized
// from the owning user at creation time; UserID never changes afterwards and
// only the owning user may update or delete the listing.
type Crop struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FarmerName  string    `json:"farmerName" gorm:"size:255;not null"`
	UserID      uint      `json:"userId" gorm:"not null;index"`
	Crop        string    `json:"crop" gorm:"size:255;not null"`
	Quantity    float64   `json:"quantity" gorm:"not null"`
	Location    string    `json:"location" gorm:"size:255;not null"`
	Price       float64   `json:"price" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Category    string    `json:"category" gorm:"size:50;not null;default:'other'"`
	Available   bool      `json:"available" gorm:"not null;default:true"`
	Unit        string    `json:"unit" gorm:"size:50;not null;default:'kg'"`
	Images      []string  `json:"images" gorm:"serializer:json"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
