// Package seed holds the initial catalog and sample records loaded by the in-memory stores.
package seed

import (
	"time"

	"aaamo-store/internal/domain"
)

// SiteName is the storefront's display name
const SiteName = "AAAMO"

func Categories() []*domain.Category {
	return []*domain.Category{
		{ID: "1", Name: "جرابات", Slug: "cases"},
		{ID: "2", Name: "سماعات", Slug: "headphones"},
		{ID: "3", Name: "شواحن وباور بانك", Slug: "chargers-powerbanks"},
		{ID: "4", Name: "اسكرينات حماية", Slug: "screen-protectors"},
		{ID: "5", Name: "كابلات ووصلات", Slug: "cables-adapters"},
		{ID: "6", Name: "اكسسوارات أخرى", Slug: "other-accessories"},
	}
}

func image(seed string) string {
	return "https://picsum.photos/seed/" + seed + "/400/400"
}

func Products(now time.Time) []*domain.Product {
	products := []*domain.Product{
		{
			ID:           "prod_001",
			Name:         "جراب سيليكون فاخر لآيفون 15 برو",
			Description:  "جراب سيليكون عالي الجودة يوفر حماية ممتازة وملمس ناعم لهاتف آيفون 15 برو. متوفر بألوان متعددة.",
			Price:        250,
			ImageURLs:    []string{image("prod_001_a"), image("prod_001_b"), image("prod_001_c")},
			CategorySlug: "cases",
			Stock:        50,
		},
		{
			ID:           "prod_002",
			Name:         "سماعة أذن لاسلكية بخاصية إلغاء الضوضاء",
			Description:  "استمتع بصوت نقي وتجربة استماع غامرة مع سماعات الأذن اللاسلكية المتطورة. عمر بطارية طويل وجودة صوت استثنائية.",
			Price:        1200,
			ImageURLs:    []string{image("prod_002")},
			CategorySlug: "headphones",
			Stock:        30,
		},
		{
			ID:           "prod_003",
			Name:         "شاحن سريع 65 واط GaN Tech",
			Description:  "شاحن فائق السرعة بتقنية GaN، صغير الحجم وقوي. يدعم شحن اللابتوب والهواتف الذكية بسرعة وأمان.",
			Price:        450,
			ImageURLs:    []string{image("prod_003_x"), image("prod_003_y")},
			CategorySlug: "chargers-powerbanks",
			Stock:        75,
		},
		{
			ID:           "prod_004",
			Name:         "اسكرينة حماية زجاجية 9H لهاتف سامسونج جالاكسي S24 ألترا",
			Description:  "اسكرينة زجاجية مقواة بدرجة صلابة 9H لحماية شاشة هاتفك سامسونج جالاكسي S24 ألترا من الخدوش والصدمات.",
			Price:        180,
			ImageURLs:    []string{image("prod_004")},
			CategorySlug: "screen-protectors",
			Stock:        100,
		},
		{
			ID:           "prod_005",
			Name:         "كابل شحن USB-C إلى USB-C سريع",
			Description:  "كابل شحن ونقل بيانات USB-C إلى USB-C عالي الجودة، يدعم الشحن السريع ونقل البيانات بسرعة فائقة. طول 2 متر.",
			Price:        150,
			ImageURLs:    []string{image("prod_005")},
			CategorySlug: "cables-adapters",
			Stock:        60,
		},
		{
			ID:           "prod_006",
			Name:         "حامل موبايل مغناطيسي للسيارة",
			Description:  "حامل موبايل مغناطيسي قوي وسهل التركيب لسيارتك. يوفر تثبيتًا آمنًا لهاتفك أثناء القيادة.",
			Price:        220,
			ImageURLs:    []string{image("prod_006_main"), image("prod_006_angle")},
			CategorySlug: "other-accessories",
			Stock:        40,
		},
		{
			ID:           "prod_007",
			Name:         "باور بانك 20000 مللي أمبير شحن سريع",
			Description:  "باور بانك بسعة كبيرة 20000 مللي أمبير مع دعم الشحن السريع. مثالي للرحلات والاستخدام اليومي.",
			Price:        750,
			ImageURLs:    []string{image("prod_007")},
			CategorySlug: "chargers-powerbanks",
			Stock:        25,
		},
		{
			ID:           "prod_008",
			Name:         "جراب جلد طبيعي لهاتف جوجل بيكسل 8",
			Description:  "جراب أنيق مصنوع من الجلد الطبيعي الفاخر، يوفر حماية ممتازة ومظهرًا راقيًا لهاتف جوجل بيكسل 8.",
			Price:        350,
			ImageURLs:    []string{image("prod_008_front"), image("prod_008_back"), image("prod_008_side"), image("prod_008_open")},
			CategorySlug: "cases",
			Stock:        35,
		},
	}
	for _, p := range products {
		p.CreatedAt = now
		p.UpdatedAt = now
	}
	return products
}

func SiteSettings() *domain.SiteSettings {
	return &domain.SiteSettings{
		SiteName:       SiteName,
		FacebookURL:    "https://facebook.com/yourpage",
		InstagramURL:   "https://instagram.com/yourprofile",
		WhatsappNumber: "+201050543116",
		PhoneNumber:    "+201050543116",
		Email:          "support@aaamo.com",
	}
}

func Messages(now time.Time) []*domain.Message {
	return []*domain.Message{
		{
			ID:        "msg_seed_1",
			Name:      "عميل تجريبي",
			Email:     "test_customer@example.com",
			Subject:   "استفسار عن منتج",
			Content:   "مرحباً، أود الاستفسار عن توفر الجراب السيليكون لآيفون 15 برو باللون الأزرق. شكراً لكم.",
			CreatedAt: now.Add(-100 * time.Second),
			IsRead:    false,
		},
		{
			ID:        "msg_seed_2",
			Name:      "زائر مهتم",
			Email:     "visitor@example.com",
			Subject:   "مشكلة في تتبع الطلب",
			Content:   "أواجه مشكلة في تتبع طلبي رقم ORD12345. هل يمكنكم المساعدة؟",
			CreatedAt: now.Add(-200 * time.Second),
			IsRead:    true,
		},
	}
}

// Orders builds sample orders against the seeded catalog
func Orders(now time.Time) []*domain.Order {
	products := Products(now)
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = *p
	}
	line := func(id string, qty int) domain.CartItem {
		return domain.CartItem{Product: byID[id], Quantity: qty}
	}
	customerID := "cust-seed-1"

	delivered := domain.NewOrder(&customerID, domain.CustomerDetails{
		Name:        "محمد أحمد",
		Phone:       "01012345678",
		Address:     "123 شارع الهرم، قسم الهرم",
		Governorate: "الجيزة",
		Email:       "mohamed.ahmed@example.com",
	}, []domain.CartItem{line("prod_001", 1), line("prod_003", 1)}, domain.PaymentCOD, now.Add(-500*time.Second))
	delivered.Status = domain.OrderStatusDelivered

	shipping := domain.NewOrder(nil, domain.CustomerDetails{
		Name:        "فاطمة علي",
		Phone:       "01198765432",
		Address:     "45 شارع فؤاد، وسط البلد",
		Governorate: "الإسكندرية",
		Email:       "fatima.ali@example.com",
	}, []domain.CartItem{line("prod_002", 1)}, domain.PaymentVodafoneCash, now.Add(-300*time.Second))
	shipping.Status = domain.OrderStatusShipping

	pending := domain.NewOrder(nil, domain.CustomerDetails{
		Name:        "عميل زائر",
		Phone:       "01234567890",
		Address:     "789 كورنيش النيل، المعادي",
		Governorate: "القاهرة",
		Email:       "guest@example.com",
	}, []domain.CartItem{line("prod_004", 2)}, domain.PaymentFawry, now.Add(-100*time.Second))

	return []*domain.Order{delivered, shipping, pending}
}

// Offers returns one live promotion and one scheduled for next week
func Offers(now time.Time) []*domain.Offer {
	twenty := 20.0
	fifteen := 15.0
	return []*domain.Offer{
		{
			ID:                 "offer_seed_1",
			Title:              "خصم 20% على الجرابات",
			Description:        "خصم لفترة محدودة على جميع الجرابات السيليكون.",
			CategorySlug:       "cases",
			DiscountPercentage: &twenty,
			ImageURL:           image("offer_cases"),
			CouponCode:         "CASES20",
			StartDate:          now.AddDate(0, 0, -3),
			EndDate:            now.AddDate(0, 0, 10),
			IsActive:           true,
		},
		{
			ID:                 "offer_seed_2",
			Title:              "عرض الشواحن السريعة",
			ProductID:          "prod_003",
			DiscountPercentage: &fifteen,
			ImageURL:           image("offer_chargers"),
			StartDate:          now.AddDate(0, 0, 7),
			EndDate:            now.AddDate(0, 0, 21),
			IsActive:           true,
		},
	}
}
