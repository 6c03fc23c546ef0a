package model

import (
	"encoding/json"
	"time"
)

// Product represents a product in the catalogue.
//
// BrandName is copied from the brand at creation time and is not kept in sync
// with later brand changes. BrandID is not checked against the brands table.
type Product struct {
	ID          string    `json:"id" db:"id"`
	BrandID     string    `json:"brandId" db:"brand_id"`
	BrandName   string    `json:"brandName" db:"brand_name"`
	ProductType string    `json:"productType" db:"product_type"`
	ProductName string    `json:"productName" db:"product_name"`
	Description string    `json:"description" db:"description"`
	Sizes       []string  `json:"sizes" db:"sizes"`
	MRP         float64   `json:"mrp" db:"mrp"`
	OfferPrice  float64   `json:"offerPrice" db:"offer_price"`
	ImageURL    string    `json:"imageUrl" db:"image_url"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// MarshalJSON also renders the identifier as "_id", which older admin clients
// use when deleting products.
func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	return json.Marshal(struct {
		plain
		LegacyID string `json:"_id"`
	}{plain: plain(p), LegacyID: p.ID})
}

// ProductInput is the product payload submitted alongside the image upload.
type ProductInput struct {
	BrandID     string   `json:"brandId"`
	BrandName   string   `json:"brandName"`
	ProductType string   `json:"productType"`
	ProductName string   `json:"productName"`
	Description string   `json:"description"`
	Sizes       []string `json:"sizes"`
	MRP         float64  `json:"mrp"`
	OfferPrice  float64  `json:"offerPrice"`
}
