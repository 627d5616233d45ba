package storage

import (
	"context"
	"fmt"

	"github.com/example/heywrld/internal/models"
	"github.com/example/heywrld/internal/utils"
)

// Seed loads the demo fixture into an empty store: one admin account, two
// active and two "coming soon" categories, a dozen products and three
// sample orders. It is an explicit operation so stores never carry fixture
// data as a constructor side effect. Works against either backend.
func Seed(ctx context.Context, s Storage) error {
	passwordHash, err := utils.HashPassword("admin123")
	if err != nil {
		return fmt.Errorf("seed: hash admin password: %w", err)
	}

	admin := &models.User{
		Username:     "admin",
		PasswordHash: passwordHash,
		Email:        "admin@heywrld.com",
		FullName:     "Admin User",
		IsAdmin:      true,
	}
	if err := s.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("seed: admin user: %w", err)
	}

	farmProduce := &models.Category{
		Name:        "Farm Produce",
		Slug:        "farm-produce",
		Description: "Fresh, high-quality farm produce delivered directly to your doorstep.",
		ImageURL:    "https://images.unsplash.com/photo-1518843875459-f738682238a6",
		IsActive:    true,
	}
	perfumes := &models.Category{
		Name:        "Perfumes",
		Slug:        "perfumes",
		Description: "Discover our premium collection of luxury perfumes and fragrances.",
		ImageURL:    "https://images.unsplash.com/photo-1594035910387-fea47794261f",
		IsActive:    true,
	}
	comingSoon := []*models.Category{
		{
			Name:        "Clothes",
			Slug:        "clothes",
			Description: "Coming soon - High-quality clothing and fashion items.",
			ImageURL:    "https://images.unsplash.com/photo-1489987707025-afc232f7ea0f",
		},
		{
			Name:        "Gadgets",
			Slug:        "gadgets",
			Description: "Coming soon - Latest electronic gadgets and accessories.",
			ImageURL:    "https://images.unsplash.com/photo-1519389950473-47ba0277781c",
		},
	}
	for _, category := range append([]*models.Category{farmProduce, perfumes}, comingSoon...) {
		if err := s.CreateCategory(ctx, category); err != nil {
			return fmt.Errorf("seed: category %s: %w", category.Slug, err)
		}
	}

	products := []*models.Product{
		{
			Name:        "Premium Tomatoes",
			Description: "Fresh, juicy tomatoes perfect for salads and cooking. Grown organically without pesticides.",
			CategoryID:  farmProduce.ID,
			Price:       1200,
			Quantity:    50,
			SKU:         "FP-TOM-001",
			Images:      []string{"https://images.unsplash.com/photo-1518977956812-cd3dbadaaf31"},
			Featured:    true,
			IsActive:    true,
		},
		{
			Name:        "Organic Apples",
			Description: "Sweet and crunchy apples picked at peak ripeness. Perfect for snacking or baking.",
			CategoryID:  farmProduce.ID,
			Price:       1500,
			Quantity:    40,
			SKU:         "FP-APP-002",
			Images:      []string{"https://images.unsplash.com/photo-1569870499705-504209102861"},
			Featured:    true,
			IsActive:    true,
		},
		{
			Name:          "Fresh Carrots",
			Description:   "Sweet and nutritious carrots that are perfect for salads, cooking, or juicing.",
			CategoryID:    farmProduce.ID,
			Price:         800,
			DiscountPrice: price(650),
			Quantity:      60,
			SKU:           "FP-CAR-003",
			Images:        []string{"https://images.unsplash.com/photo-1590165482129-1b8b27698780"},
			IsActive:      true,
		},
		{
			Name:        "Leafy Spinach",
			Description: "Fresh, dark green spinach leaves packed with vitamins and minerals.",
			CategoryID:  farmProduce.ID,
			Price:       950,
			Quantity:    30,
			SKU:         "FP-SPN-004",
			Images:      []string{"https://images.unsplash.com/photo-1576045057995-568f588f82fb"},
			IsActive:    true,
		},
		{
			Name:          "Red Bell Peppers",
			Description:   "Crisp, sweet red bell peppers perfect for salads, stir-fries, or roasting.",
			CategoryID:    farmProduce.ID,
			Price:         1100,
			DiscountPrice: price(900),
			Quantity:      45,
			SKU:           "FP-PEP-005",
			Images:        []string{"https://images.unsplash.com/photo-1513530176992-0cf39c4cbed4"},
			Featured:      true,
			IsActive:      true,
		},
		{
			Name:        "Sweet Potatoes",
			Description: "Nutrient-rich sweet potatoes with a naturally sweet flavor. Great for roasting or making fries.",
			CategoryID:  farmProduce.ID,
			Price:       1300,
			Quantity:    35,
			SKU:         "FP-SPT-006",
			Images:      []string{"https://images.unsplash.com/photo-1596124559055-1ea02c386211"},
			IsActive:    true,
		},
		{
			Name:          "Luxury Perfume No.5",
			Description:   "An elegant and sophisticated fragrance with notes of jasmine, rose, and vanilla.",
			CategoryID:    perfumes.ID,
			Price:         25000,
			DiscountPrice: price(22500),
			Quantity:      15,
			SKU:           "PF-LUX-001",
			Images:        []string{"https://images.unsplash.com/photo-1594035910387-fea47794261f"},
			Featured:      true,
			IsActive:      true,
		},
		{
			Name:        "Designer Fragrance",
			Description: "A bold and captivating scent with notes of bergamot, amber, and sandalwood.",
			CategoryID:  perfumes.ID,
			Price:       30000,
			Quantity:    10,
			SKU:         "PF-DSG-002",
			Images:      []string{"https://images.unsplash.com/photo-1615923732331-0da586bfa867"},
			Featured:    true,
			IsActive:    true,
		},
		{
			Name:          "Fresh Citrus Perfume",
			Description:   "A refreshing and invigorating fragrance with notes of lemon, bergamot, and orange blossom.",
			CategoryID:    perfumes.ID,
			Price:         18000,
			DiscountPrice: price(15000),
			Quantity:      20,
			SKU:           "PF-CIT-003",
			Images:        []string{"https://images.unsplash.com/photo-1541643600914-78b084683601"},
			IsActive:      true,
		},
		{
			Name:        "Oriental Oud Cologne",
			Description: "A rich and exotic fragrance featuring premium oud, saffron, and amber notes.",
			CategoryID:  perfumes.ID,
			Price:       35000,
			Quantity:    8,
			SKU:         "PF-OUD-004",
			Images:      []string{"https://images.unsplash.com/photo-1608528577891-eb055944f2e8"},
			Featured:    true,
			IsActive:    true,
		},
		{
			Name:          "Floral Essence",
			Description:   "A delicate and feminine fragrance with notes of rose, peony, and lily of the valley.",
			CategoryID:    perfumes.ID,
			Price:         22000,
			DiscountPrice: price(19800),
			Quantity:      12,
			SKU:           "PF-FLR-005",
			Images:        []string{"https://images.unsplash.com/photo-1588405748880-b434362febd3"},
			IsActive:      true,
		},
		{
			Name:        "Woody Harmony",
			Description: "A sophisticated and warm fragrance with notes of cedar, vetiver, and musk.",
			CategoryID:  perfumes.ID,
			Price:       27000,
			Quantity:    9,
			SKU:         "PF-WDY-006",
			Images:      []string{"https://images.unsplash.com/photo-1547887538-e3a2f32cb1cc"},
			IsActive:    true,
		},
	}
	for _, product := range products {
		if err := s.CreateProduct(ctx, product); err != nil {
			return fmt.Errorf("seed: product %s: %w", product.SKU, err)
		}
	}

	type sampleOrder struct {
		order models.Order
		items []models.OrderItem
	}
	samples := []sampleOrder{
		{
			order: models.Order{
				UserID:          &admin.ID,
				Status:          models.OrderStatusDelivered,
				Total:           28200,
				PaymentMethod:   models.PaymentMethodFlutterwave,
				PaymentStatus:   models.PaymentStatusPaid,
				ShippingAddress: "123 Main Street, Lagos",
				ShippingCity:    "Lagos",
				ShippingState:   "Lagos",
				ShippingZipCode: "100001",
				ShippingMethod:  "express",
				TrackingNumber:  "HW12345678",
			},
			items: []models.OrderItem{
				{ProductID: products[0].ID, Quantity: 2, Price: 1200},
				{ProductID: products[6].ID, Quantity: 1, Price: 25000},
			},
		},
		{
			order: models.Order{
				UserID:          &admin.ID,
				Status:          models.OrderStatusProcessing,
				Total:           15900,
				PaymentMethod:   models.PaymentMethodPOD,
				PaymentStatus:   models.PaymentStatusPending,
				ShippingAddress: "456 Park Avenue, Abuja",
				ShippingCity:    "Abuja",
				ShippingState:   "FCT",
				ShippingZipCode: "900001",
			},
			items: []models.OrderItem{
				{ProductID: products[2].ID, Quantity: 3, Price: 650},
				{ProductID: products[8].ID, Quantity: 1, Price: 15000},
			},
		},
		{
			order: models.Order{
				UserID:          &admin.ID,
				Status:          models.OrderStatusShipped,
				Total:           35000,
				PaymentMethod:   models.PaymentMethodFlutterwave,
				PaymentStatus:   models.PaymentStatusPaid,
				ShippingAddress: "789 Beach Road, Port Harcourt",
				ShippingCity:    "Port Harcourt",
				ShippingState:   "Rivers",
				ShippingZipCode: "500001",
				ShippingMethod:  "express",
				TrackingNumber:  "HW98765432",
			},
			items: []models.OrderItem{
				{ProductID: products[9].ID, Quantity: 1, Price: 35000},
			},
		},
	}
	for i := range samples {
		if err := s.CreateOrder(ctx, &samples[i].order, samples[i].items); err != nil {
			return fmt.Errorf("seed: sample order %d: %w", i+1, err)
		}
	}

	return nil
}

func price(v float64) *float64 {
	return &v
}
