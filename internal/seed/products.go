package seed

import (
	"strconv"

	"storefront/internal/domain/model"
)

// Products はseedで投入するサンプル商品。毎回新しいスライスを返す。
func Products() []model.Product {
	return []model.Product{
		{
			Name:             "MacBook Pro 16",
			Slug:             "macbook-pro-16",
			Description:      "The most powerful MacBook Pro ever. Featuring the M2 Max chip, stunning 16-inch Liquid Retina XDR display, and up to 22 hours of battery life. Perfect for professionals who demand the best performance.",
			ShortDescription: "Powerful 16-inch laptop with M2 Max chip and stunning display",
			Price:            2499.99,
			Images:           images(1, 2),
			Category:         "Electronics",
			Stock:            15,
		},
		{
			Name:             "iPhone 15 Pro",
			Slug:             "iphone-15-pro",
			Description:      "The ultimate iPhone experience. Titanium design, A17 Pro chip, Pro camera system with 5x Telephoto, and Action button. Capture stunning photos and videos with professional-grade tools.",
			ShortDescription: "Latest iPhone with titanium design and Pro camera system",
			Price:            999.99,
			Images:           images(3, 4),
			Category:         "Electronics",
			Stock:            32,
		},
		{
			Name:             "Sony WH-1000XM5 Headphones",
			Slug:             "sony-wh-1000xm5",
			Description:      "Industry-leading noise canceling with Dual Noise Sensor technology. Premium sound quality, 30-hour battery life, and quick charge. The perfect headphones for music lovers and travelers.",
			ShortDescription: "Premium noise-canceling headphones with exceptional sound quality",
			Price:            399.99,
			Images:           images(5, 6),
			Category:         "Electronics",
			Stock:            28,
		},
		{
			Name:             "Nike Air Max 90",
			Slug:             "nike-air-max-90",
			Description:      "Classic running shoes with visible Air cushioning. Timeless design meets modern comfort. Perfect for everyday wear and light running activities.",
			ShortDescription: "Classic running shoes with visible Air cushioning",
			Price:            129.99,
			Images:           images(7, 8),
			Category:         "Fashion",
			Stock:            45,
		},
		{
			Name:             "Levi's 501 Original Jeans",
			Slug:             "levis-501-original",
			Description:      "The original straight-leg jeans that started it all. Made with premium denim, button fly, and timeless fit. A wardrobe essential that never goes out of style.",
			ShortDescription: "Original straight-leg jeans with button fly",
			Price:            89.99,
			Images:           images(9, 10),
			Category:         "Fashion",
			Stock:            67,
		},
		{
			Name:             "Dyson V15 Detect Vacuum",
			Slug:             "dyson-v15-detect",
			Description:      "Powerful cordless vacuum with laser technology that reveals microscopic dust. Advanced filtration system captures 99.97% of particles. Up to 60 minutes of runtime.",
			ShortDescription: "Cordless vacuum with laser dust detection technology",
			Price:            749.99,
			Images:           images(11, 12),
			Category:         "Home & Kitchen",
			Stock:            12,
		},
		{
			Name:             "Instant Pot Duo 7-in-1",
			Slug:             "instant-pot-duo",
			Description:      "7-in-1 electric pressure cooker that replaces 7 kitchen appliances. Pressure cook, slow cook, rice cooker, yogurt maker, steamer, sauté pan, and warmer. Cook meals up to 70% faster.",
			ShortDescription: "7-in-1 electric pressure cooker for faster cooking",
			Price:            99.99,
			Images:           images(13, 14),
			Category:         "Home & Kitchen",
			Stock:            38,
		},
		{
			Name:             "Canon EOS R6 Mark II",
			Slug:             "canon-eos-r6-mark-ii",
			Description:      "Full-frame mirrorless camera with 24.2MP sensor, 4K video recording, and advanced autofocus. Perfect for photographers and videographers who demand professional results.",
			ShortDescription: "Full-frame mirrorless camera with 4K video and advanced AF",
			Price:            2499.99,
			Images:           images(15, 16),
			Category:         "Electronics",
			Stock:            8,
		},
	}
}

func images(ns ...int) []string {
	out := make([]string, 0, len(ns))
	for _, n := range ns {
		out = append(out, "https://picsum.photos/800/600?random="+strconv.Itoa(n))
	}
	return out
}

