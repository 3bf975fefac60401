package domain

import (
	"errors"
	"time"
)

var ErrPropertyNotFound = errors.New("property not found")
var ErrImageNotFound = errors.New("property image not found")
var ErrFavoriteExists = errors.New("property already favorited")
var ErrFavoriteNotFound = errors.New("favorite not found")

// PropertyImage is a record of an uploaded listing photo. The binary itself
// is stored outside this service; only the file name travels through here.
type PropertyImage struct {
	ID       string `json:"id" bson:"id"`
	FileName string `json:"file_name" bson:"file_name"`
}

// Property is a listing managed by an agent and browsed by buyers.
type Property struct {
	ID          string          `json:"id" bson:"_id,omitempty"`
	AgentID     string          `json:"agent_id" bson:"agent_id"`
	Title       string          `json:"title" bson:"title"`
	Description string          `json:"description" bson:"description"`
	Location    string          `json:"location" bson:"location"`
	Price       float64         `json:"price" bson:"price"`
	SizeSqft    float64         `json:"size_sqft" bson:"size_sqft"`
	Images      []PropertyImage `json:"images" bson:"images"`
	CreatedAt   time.Time       `json:"created_at" bson:"created_at"`
}

// Favorite links a buyer to a property they saved.
type Favorite struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	BuyerID    string    `json:"buyer_id" bson:"buyer_id"`
	PropertyID string    `json:"property_id" bson:"property_id"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// PropertyFilter narrows a listing search. Zero values mean "no constraint".
type PropertyFilter struct {
	Location string
	MinPrice float64
	MaxPrice float64
}
