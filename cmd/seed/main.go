package main

import (
	"github.com/aevi-next/internal/config"
	"github.com/aevi-next/internal/logger"
	"github.com/aevi-next/internal/models"
	"github.com/aevi-next/internal/repository"

	"github.com/shopspring/decimal"
)

func money(amount float64) models.Money {
	return models.NewMoneyFromDecimal(decimal.NewFromFloat(amount))
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("failed to migrate database: %v", err)
	}

	productRepo := repository.NewProductRepository(models.DB)

	products := []models.Product{
		{
			Name:             "Nourishing Face Oil",
			Price:            money(39.99),
			Category:         "Serums & Oils",
			Description:      "A deeply nourishing facial oil infused with Nordic botanicals. Rich in antioxidants and essential fatty acids to restore skin's natural radiance.",
			ShortDescription: "Deeply nourishing facial oil with Nordic botanicals",
			ImageMain:        "/static/images/cards/face-oil.png",
			ImageHover:       "/static/images/cards/face-oil.png",
			IsBestseller:     true,
			Rating:           4.8,
			ReviewCount:      127,
			InStock:          true,
			Ingredients:      "Jojoba Oil, Rosehip Seed Oil, Sea Buckthorn Oil, Vitamin E, Cloudberry Extract",
			HowToUse:         "Apply 2-3 drops to clean face morning and evening. Gently massage until absorbed.",
			Benefits:         "Deeply hydrates, reduces fine lines, improves skin texture and radiance",
			SizeOptions:      "15ml, 30ml",
			Tags:             "anti-aging, hydrating, natural, organic",
		},
		{
			Name:             "Gentle Cleansing Foam",
			Price:            money(24.99),
			Category:         "Cleansers & Masks",
			Description:      "A gentle, pH-balanced cleansing foam that removes impurities while maintaining skin's natural moisture barrier.",
			ShortDescription: "Gentle pH-balanced cleansing foam",
			ImageMain:        "/static/images/cards/cleansing-foam.png",
			ImageHover:       "/static/images/cards/cleansing-foam.png",
			IsBestseller:     true,
			Rating:           4.6,
			ReviewCount:      89,
			InStock:          true,
			Ingredients:      "Coconut-derived cleansers, Aloe Vera, Chamomile Extract, Glycerin",
			HowToUse:         "Apply to damp skin, massage gently, rinse with lukewarm water.",
			Benefits:         "Cleanses without stripping, soothes sensitive skin, maintains pH balance",
			SizeOptions:      "150ml, 300ml",
			Tags:             "gentle, sensitive-skin, daily-use",
		},
		{
			Name:             "Brightening Vitamin C Serum",
			Price:            money(44.99),
			Category:         "Serums & Oils",
			Description:      "Powerful vitamin C serum with stabilized L-ascorbic acid to brighten skin and protect against environmental damage.",
			ShortDescription: "Brightening vitamin C serum with antioxidants",
			ImageMain:        "/static/images/cards/vitamin-c.png",
			ImageHover:       "/static/images/cards/vitamin-c.png",
			IsNew:            true,
			Rating:           4.7,
			ReviewCount:      56,
			InStock:          true,
			Ingredients:      "15% L-Ascorbic Acid, Vitamin E, Ferulic Acid, Hyaluronic Acid",
			HowToUse:         "Apply 2-3 drops to clean skin in the morning. Follow with sunscreen.",
			Benefits:         "Brightens complexion, reduces dark spots, provides antioxidant protection",
			SizeOptions:      "30ml",
			Tags:             "brightening, vitamin-c, antioxidant, morning-routine",
		},
		{
			Name:             "Hydrating Night Mask",
			Price:            money(32.99),
			Category:         "Cleansers & Masks",
			Description:      "An overnight hydrating mask that works while you sleep to restore and rejuvenate your skin.",
			ShortDescription: "Overnight hydrating mask for skin restoration",
			ImageMain:        "/static/images/cards/night-mask.png",
			ImageHover:       "/static/images/cards/night-mask.png",
			IsNew:            true,
			Rating:           4.5,
			ReviewCount:      34,
			InStock:          true,
			Ingredients:      "Hyaluronic Acid, Peptides, Nordic Berry Extracts, Ceramides",
			HowToUse:         "Apply generously to clean skin before bed. Leave on overnight, rinse in morning.",
			Benefits:         "Intense hydration, skin repair, improves elasticity and firmness",
			SizeOptions:      "50ml",
			Tags:             "hydrating, night-care, anti-aging, peptides",
		},
		{
			Name:             "Repair Balm",
			Price:            money(28.99),
			Category:         "Balms",
			Description:      "Multi-purpose repair balm for dry, damaged, or irritated skin. Perfect for lips, cuticles, and dry patches.",
			ShortDescription: "Multi-purpose repair balm for dry skin",
			ImageMain:        "/static/images/cards/repair-balm.png",
			ImageHover:       "/static/images/cards/repair-balm.png",
			IsBestseller:     true,
			Rating:           4.9,
			ReviewCount:      203,
			InStock:          true,
			Ingredients:      "Shea Butter, Beeswax, Calendula Extract, Chamomile Oil",
			HowToUse:         "Apply to dry or irritated areas as needed. Safe for lips and sensitive areas.",
			Benefits:         "Soothes irritation, repairs damaged skin, long-lasting moisture",
			SizeOptions:      "15g, 30g",
			Tags:             "healing, multi-purpose, sensitive-skin, natural",
		},
		{
			Name:             "Exfoliating Treatment",
			Price:            money(36.99),
			Category:         "Treatments",
			Description:      "Gentle yet effective exfoliating treatment with natural fruit acids to reveal smoother, brighter skin.",
			ShortDescription: "Gentle exfoliating treatment with fruit acids",
			ImageMain:        "/static/images/cards/exfoliating.png",
			ImageHover:       "/static/images/cards/exfoliating.png",
			Rating:           4.4,
			ReviewCount:      67,
			InStock:          true,
			Ingredients:      "Lactic Acid, Glycolic Acid, Papaya Extract, Aloe Vera",
			HowToUse:         "Use 2-3 times per week on clean skin. Apply thin layer, leave for 5-10 minutes, rinse off.",
			Benefits:         "Removes dead skin cells, improves texture, promotes cell renewal",
			SizeOptions:      "75ml",
			Tags:             "exfoliating, brightening, weekly-treatment, aha",
		},
		{
			Name:             "Body Moisturizer Nordic",
			Price:            money(22.99),
			Category:         "Body",
			Description:      "Rich, fast-absorbing body moisturizer infused with Nordic botanicals to nourish and protect your skin.",
			ShortDescription: "Rich body moisturizer with Nordic botanicals",
			ImageMain:        "/static/images/cards/body-moisturizer.png",
			ImageHover:       "/static/images/cards/body-moisturizer.png",
			Rating:           4.3,
			ReviewCount:      45,
			InStock:          true,
			Ingredients:      "Nordic Sea Buckthorn, Birch Extract, Shea Butter, Coconut Oil",
			HowToUse:         "Apply to clean, dry skin daily. Massage until fully absorbed.",
			Benefits:         "Long-lasting hydration, improves skin elasticity, non-greasy formula",
			SizeOptions:      "200ml, 400ml",
			Tags:             "body-care, hydrating, fast-absorbing, daily-use",
		},
		{
			Name:             "Eye Cream Renewal",
			Price:            money(48.99),
			Category:         "Treatments",
			Description:      "Intensive eye cream targeting fine lines, dark circles, and puffiness with peptides and caffeine.",
			ShortDescription: "Intensive eye cream for fine lines and dark circles",
			ImageMain:        "/static/images/cards/eye-cream.png",
			ImageHover:       "/static/images/cards/eye-cream.png",
			IsBestseller:     true,
			Rating:           4.6,
			ReviewCount:      112,
			InStock:          true,
			Ingredients:      "Peptides, Caffeine, Hyaluronic Acid, Retinol Alternative, Vitamin K",
			HowToUse:         "Gently pat around eye area morning and evening using ring finger.",
			Benefits:         "Reduces fine lines, diminishes dark circles, firms eye area",
			SizeOptions:      "15ml",
			Tags:             "eye-care, anti-aging, peptides, dark-circles",
		},
		{
			Name:             "Purifying Clay Mask",
			Price:            money(29.99),
			Category:         "Cleansers & Masks",
			Description:      "Deep-cleansing clay mask with Nordic white clay to purify pores and balance oily skin.",
			ShortDescription: "Deep-cleansing clay mask with Nordic white clay",
			ImageMain:        "/static/images/cards/clay-mask.png",
			ImageHover:       "/static/images/cards/clay-mask.png",
			IsNew:            true,
			Rating:           4.2,
			ReviewCount:      23,
			InStock:          true,
			Ingredients:      "Nordic White Clay, Tea Tree Oil, Salicylic Acid, Chamomile",
			HowToUse:         "Apply to clean skin 1-2 times per week. Leave for 10-15 minutes, rinse with warm water.",
			Benefits:         "Purifies pores, controls oil, reduces breakouts, balances skin",
			SizeOptions:      "75ml",
			Tags:             "purifying, oily-skin, acne-prone, weekly-treatment",
		},
		{
			Name:             "Lip Balm Set Nordic",
			Price:            money(18.99),
			Category:         "Balms",
			Description:      "Set of three nourishing lip balms with natural Nordic ingredients. Available in Original, Berry, and Mint.",
			ShortDescription: "Set of three nourishing lip balms",
			ImageMain:        "/static/images/cards/lip-balm-set.png",
			ImageHover:       "/static/images/cards/lip-balm-set.png",
			Rating:           4.7,
			ReviewCount:      78,
			InStock:          true,
			Ingredients:      "Beeswax, Coconut Oil, Shea Butter, Nordic Berry Extracts, Vitamin E",
			HowToUse:         "Apply to lips as needed throughout the day.",
			Benefits:         "Long-lasting moisture, prevents chapping, natural ingredients",
			SizeOptions:      "3 x 4.5g",
			Tags:             "lip-care, natural, set, gift-ready",
		},
		{
			Name:             "Toning Mist",
			Price:            money(26.99),
			Category:         "Treatments",
			Description:      "Refreshing toning mist with Nordic spring water and botanical extracts to balance and hydrate skin.",
			ShortDescription: "Refreshing toning mist with Nordic botanicals",
			ImageMain:        "/static/images/cards/toning-mist.png",
			ImageHover:       "/static/images/cards/toning-mist.png",
			IsNew:            true,
			Rating:           4.1,
			ReviewCount:      19,
			InStock:          true,
			Ingredients:      "Nordic Spring Water, Rose Water, Witch Hazel, Hyaluronic Acid",
			HowToUse:         "Spray on clean face or over makeup throughout the day.",
			Benefits:         "Balances pH, provides instant hydration, sets makeup",
			SizeOptions:      "100ml, 200ml",
			Tags:             "toning, hydrating, makeup-setting, refreshing",
		},
		{
			Name:             "Hand Cream Nordic Herbs",
			Price:            money(16.99),
			Category:         "Body",
			Description:      "Intensive hand cream with Nordic herbs and oils to protect and nourish hardworking hands.",
			ShortDescription: "Intensive hand cream with Nordic herbs",
			ImageMain:        "/static/images/cards/hand-cream.png",
			ImageHover:       "/static/images/cards/hand-cream.png",
			Rating:           4.5,
			ReviewCount:      61,
			InStock:          true,
			Ingredients:      "Nordic Herbs Blend, Lanolin, Glycerin, Allantoin",
			HowToUse:         "Apply to hands as needed, especially after washing.",
			Benefits:         "Intensive moisture, protects against dryness, non-greasy",
			SizeOptions:      "50ml, 100ml",
			Tags:             "hand-care, intensive, herbs, daily-use",
		},
	}

	added := 0
	for i := range products {
		count, err := productRepo.CountByName(products[i].Name)
		if err != nil {
			stdLog.Fatalf("seed lookup failed: %v", err)
		}
		if count > 0 {
			stdLog.Printf("product already exists: %s", products[i].Name)
			continue
		}
		if err := productRepo.Create(&products[i]); err != nil {
			stdLog.Fatalf("seed insert failed for %s: %v", products[i].Name, err)
		}
		stdLog.Printf("added product: %s", products[i].Name)
		added++
	}
	stdLog.Printf("seed complete: %d of %d products added", added, len(products))
}
