package application

import (
	"github.com/shopspring/decimal"

	"github.com/Apurer/go-storefront-api/internal/domains/catalog/domain"
)

type sampleProduct struct {
	name          string
	category      string
	price         string
	originalPrice string
	rating        string
	image         string
	description   string
	inStock       int
}

var sampleCatalog = []sampleProduct{
	{
		name:          "GameView P7 27\" 4K IPS",
		category:      "monitors",
		price:         "299.00",
		originalPrice: "499.00",
		rating:        "4.7",
		image:         "https://images.unsplash.com/photo-1527443224154-c4a3942d3acf?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300",
		description:   "Professional 4K gaming monitor with IPS panel",
		inStock:       15,
	},
	{
		name:        "MechaPro Hot-Swap Wireless",
		category:    "keyboards",
		price:       "129.00",
		rating:      "4.3",
		image:       "https://images.unsplash.com/photo-1541140532154-b024d705b90a?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300",
		description: "Hot-swappable mechanical keyboard with wireless connectivity",
		inStock:     25,
	},
	{
		name:        "Swift Wireless Gaming",
		category:    "mice",
		price:       "69.00",
		rating:      "4.6",
		image:       "https://images.unsplash.com/photo-1527814050087-3793815479db?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300",
		description: "High precision wireless gaming mouse",
		inStock:     30,
	},
	{
		name:        "StudioOne Closed-back",
		category:    "audio",
		price:       "139.00",
		rating:      "4.5",
		image:       "https://images.unsplash.com/photo-1484704849700-f032a568e944?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300",
		description: "Professional closed-back studio headphones",
		inStock:     20,
	},
	{
		name:        "HDMI 2.1 Ultra Cable",
		category:    "accessories",
		price:       "24.00",
		rating:      "4.7",
		image:       "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300",
		description: "Ultra high-speed HDMI 2.1 cable for 4K gaming",
		inStock:     50,
	},
	{
		name:        "Nova 15.6\" Portable Monitor",
		category:    "monitors",
		price:       "199.00",
		rating:      "4.4",
		image:       "https://images.unsplash.com/photo-1547394765-185e1e68f34e?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300",
		description: "Portable USB-C monitor for mobile workstations",
		inStock:     12,
	},
	{
		name:        "FlexArm Monitor Mount",
		category:    "accessories",
		price:       "79.00",
		rating:      "4.6",
		image:       "https://images.unsplash.com/photo-1586953208448-b95a79798f07?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300",
		description: "Adjustable dual monitor mount with full articulation",
		inStock:     18,
	},
	{
		name:        "ColorCal Pro Calibrator",
		category:    "accessories",
		price:       "159.00",
		rating:      "4.5",
		image:       "https://images.unsplash.com/photo-1612198188060-c7c2a3b66eae?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300",
		description: "Professional monitor color calibration device",
		inStock:     8,
	},
}

// SampleProducts returns the storefront's demo catalog as fresh domain values.
func SampleProducts() []*domain.Product {
	products := make([]*domain.Product, 0, len(sampleCatalog))
	for _, sample := range sampleCatalog {
		product := &domain.Product{
			Name:        sample.name,
			Category:    sample.category,
			Price:       decimal.RequireFromString(sample.price),
			Image:       sample.image,
			Description: sample.description,
			InStock:     sample.inStock,
		}
		if sample.originalPrice != "" {
			product.SetOriginalPrice(decimal.RequireFromString(sample.originalPrice))
		}
		if sample.rating != "" {
			product.SetRating(decimal.RequireFromString(sample.rating))
		}
		products = append(products, product)
	}
	return products
}
