package catalog

import (
	"context"
	"time"

	"vitrina/models"
)

// SeedProvider serves the static demo collection with an optional artificial
// latency, standing in for a real catalog backend.
type SeedProvider struct {
	Delay time.Duration
}

func NewSeedProvider(delay time.Duration) *SeedProvider {
	return &SeedProvider{Delay: delay}
}

func (p *SeedProvider) Products(ctx context.Context) ([]models.Product, error) {
	if p.Delay > 0 {
		select {
		case <-time.After(p.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	out := make([]models.Product, len(seedProducts))
	copy(out, seedProducts)
	return out, nil
}

var seedProducts = []models.Product{
	{
		ProductID:     "1",
		Name:          "Premium Wireless Headphones",
		Description:   "Experience crystal-clear audio with our flagship wireless headphones featuring active noise cancellation.",
		Price:         299.99,
		OriginalPrice: 399.99,
		Image:         "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400&h=400&fit=crop",
		Category:      "Electronics",
		Rating:        4.8,
		Reviews:       1247,
		InStock:       true,
		Features:      []string{"Active Noise Cancellation", "30-hour battery", "Quick charge", "Premium materials"},
		Specs: []models.Specification{
			{Label: "Battery Life", Value: "30 hours"},
			{Label: "Charging Time", Value: "2 hours"},
			{Label: "Weight", Value: "280g"},
			{Label: "Connectivity", Value: "Bluetooth 5.0"},
		},
	},
	{
		ProductID:     "2",
		Name:          "Smart Fitness Watch",
		Description:   "Track your health and fitness goals with this advanced smartwatch featuring heart rate monitoring and GPS.",
		Price:         249.99,
		OriginalPrice: 349.99,
		Image:         "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=400&h=400&fit=crop",
		Category:      "Wearables",
		Rating:        4.6,
		Reviews:       892,
		InStock:       true,
		Features:      []string{"Heart Rate Monitor", "GPS Tracking", "Water Resistant", "Sleep Tracking"},
		Specs: []models.Specification{
			{Label: "Display", Value: "1.4\" AMOLED"},
			{Label: "Battery Life", Value: "7 days"},
			{Label: "Water Rating", Value: "5ATM"},
			{Label: "Connectivity", Value: "Bluetooth, WiFi, GPS"},
		},
	},
	{
		ProductID:   "3",
		Name:        "Ergonomic Office Chair",
		Description: "Premium ergonomic chair designed for all-day comfort with adjustable lumbar support and breathable mesh.",
		Price:       599.99,
		Image:       "https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=400&h=400&fit=crop",
		Category:    "Furniture",
		Rating:      4.9,
		Reviews:     456,
		InStock:     true,
		Features:    []string{"Ergonomic Design", "Adjustable Lumbar", "Breathable Mesh", "10-year Warranty"},
		Specs: []models.Specification{
			{Label: "Weight Capacity", Value: "300 lbs"},
			{Label: "Seat Height", Value: "17-21 inches"},
			{Label: "Materials", Value: "Mesh, Aluminum"},
			{Label: "Warranty", Value: "10 years"},
		},
	},
	{
		ProductID:   "4",
		Name:        "Professional Camera Lens",
		Description: "Ultra-sharp 85mm f/1.4 portrait lens perfect for professional photography and videography.",
		Price:       1299.99,
		Image:       "https://images.unsplash.com/photo-1606983340126-99ab4feaa64a?w=400&h=400&fit=crop",
		Category:    "Photography",
		Rating:      4.7,
		Reviews:     234,
		InStock:     false,
		Features:    []string{"f/1.4 Aperture", "Weather Sealed", "Ultra-Sharp", "Professional Grade"},
		Specs: []models.Specification{
			{Label: "Focal Length", Value: "85mm"},
			{Label: "Aperture", Value: "f/1.4"},
			{Label: "Weight", Value: "950g"},
			{Label: "Mount", Value: "Canon EF"},
		},
	},
	{
		ProductID:     "5",
		Name:          "Gaming Mechanical Keyboard",
		Description:   "RGB backlit mechanical keyboard with tactile switches for the ultimate gaming experience.",
		Price:         159.99,
		OriginalPrice: 199.99,
		Image:         "https://images.unsplash.com/photo-1541140532154-b024d705b90a?w=400&h=400&fit=crop",
		Category:      "Gaming",
		Rating:        4.5,
		Reviews:       678,
		InStock:       true,
		Features:      []string{"Mechanical Switches", "RGB Backlighting", "Programmable Keys", "Anti-Ghosting"},
		Specs: []models.Specification{
			{Label: "Switch Type", Value: "Cherry MX Blue"},
			{Label: "Backlighting", Value: "RGB LED"},
			{Label: "Layout", Value: "Full Size"},
			{Label: "Connectivity", Value: "USB-C"},
		},
	},
	{
		ProductID:   "6",
		Name:        "Luxury Skincare Set",
		Description: "Complete skincare routine with premium ingredients for healthy, glowing skin.",
		Price:       89.99,
		Image:       "https://images.unsplash.com/photo-1556228578-8c89e6adf883?w=400&h=400&fit=crop",
		Category:    "Beauty",
		Rating:      4.4,
		Reviews:     321,
		InStock:     true,
		Features:    []string{"Natural Ingredients", "Dermatologist Tested", "Cruelty Free", "All Skin Types"},
		Specs: []models.Specification{
			{Label: "Items Included", Value: "4 products"},
			{Label: "Skin Type", Value: "All types"},
			{Label: "Volume", Value: "50ml each"},
			{Label: "Origin", Value: "Made in USA"},
		},
	},
}
