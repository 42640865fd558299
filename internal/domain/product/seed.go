// internal/domain/product/seed.go
package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type demoProduct struct {
	name        string
	description string
	price       string
	category    string
	image       string
	rating      float64
	stock       int
}

var demoCatalog = []demoProduct{
	{"Premium Laptop", "High-performance laptop with latest processor and stunning display. Perfect for work and entertainment.", "1299.99", "Electronics", "https://images.unsplash.com/photo-1691073121676-1ab3a6d3d743", 4.5, 50},
	{"Wireless Earbuds", "Crystal clear sound with active noise cancellation. Long battery life and comfortable fit.", "149.99", "Electronics", "https://images.unsplash.com/photo-1717996563514-e3519f9ef9f7", 4.3, 100},
	{"Smart Watch", "Track your fitness, receive notifications, and stay connected on the go.", "299.99", "Electronics", "https://images.pexels.com/photos/10185544/pexels-photo-10185544.jpeg", 4.6, 75},
	{"Designer T-Shirt", "Premium quality cotton t-shirt with modern design. Comfortable and stylish.", "39.99", "Fashion", "https://images.unsplash.com/photo-1532453288672-3a27e9be9efd", 4.4, 200},
	{"Running Shoes", "Lightweight and comfortable running shoes with excellent cushioning and support.", "89.99", "Fashion", "https://images.unsplash.com/photo-1567401893414-76b7b1e5a7a5", 4.7, 150},
	{"Casual Jacket", "Stylish casual jacket perfect for any season. Durable and comfortable.", "129.99", "Fashion", "https://images.unsplash.com/photo-1441984904996-e0b6ba687e04", 4.5, 80},
	{"Modern Sofa", "Comfortable and stylish sofa perfect for any living room. Premium upholstery.", "899.99", "Home", "https://images.unsplash.com/photo-1616046229478-9901c5536a45", 4.8, 25},
	{"Table Lamp", "Elegant table lamp with adjustable brightness. Perfect for reading and ambiance.", "49.99", "Home", "https://images.unsplash.com/photo-1618220179428-22790b461013", 4.2, 100},
	{"Wall Art Set", "Beautiful set of wall art to decorate your home. Modern and elegant design.", "79.99", "Home", "https://images.unsplash.com/photo-1572048572872-2394404cf1f3", 4.4, 60},
	{"Coffee Maker", "Programmable coffee maker with thermal carafe. Brew perfect coffee every time.", "79.99", "Kitchen", "https://images.pexels.com/photos/35348456/pexels-photo-35348456.jpeg", 4.5, 90},
	{"Blender Pro", "Powerful blender for smoothies, soups, and more. Multiple speed settings.", "129.99", "Kitchen", "https://images.unsplash.com/photo-1586898633445-fc34716255b2", 4.6, 70},
	{"Yoga Mat", "Non-slip yoga mat with extra cushioning. Perfect for all types of workouts.", "29.99", "Sports", "https://images.pexels.com/photos/3393705/pexels-photo-3393705.jpeg", 4.3, 120},
	{"Dumbbell Set", "Adjustable dumbbell set for home workouts. Multiple weight options.", "199.99", "Sports", "https://images.unsplash.com/photo-1768987439370-bd60d3d0b28b", 4.7, 45},
	{"Backpack", "Spacious and durable backpack with laptop compartment. Perfect for travel and work.", "59.99", "Accessories", "https://images.pexels.com/photos/7289716/pexels-photo-7289716.jpeg", 4.4, 110},
	{"Sunglasses", "Stylish sunglasses with UV protection. Classic design that never goes out of style.", "89.99", "Accessories", "https://images.pexels.com/photos/7289741/pexels-photo-7289741.jpeg", 4.5, 95},
}

// DemoProducts returns the demo catalog. Creation times step back one
// second per product so the default newest-first listing keeps catalog order.
func DemoProducts(now time.Time) []Product {
	products := make([]Product, len(demoCatalog))
	for i, d := range demoCatalog {
		products[i] = Product{
			Name:        d.name,
			Description: d.description,
			Price:       decimal.RequireFromString(d.price),
			Category:    d.category,
			Image:       d.image,
			Rating:      d.rating,
			Stock:       d.stock,
			CreatedAt:   now.Add(-time.Duration(i) * time.Second),
		}
	}
	return products
}
