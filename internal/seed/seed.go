package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"tripdesk/internal/domain"
	"tripdesk/internal/models"
)

// Hotels loads the mock hotel catalog when the store is empty. Existing
// catalogs are left alone so repeated startups stay idempotent.
func Hotels(ctx context.Context, store domain.HotelStore, logger *zerolog.Logger) error {
	count, err := store.CountHotels(ctx)
	if err != nil {
		return fmt.Errorf("count hotels: %w", err)
	}
	if count > 0 {
		logger.Debug().Int("count", count).Msg("hotel catalog already seeded")
		return nil
	}

	hotels := Catalog()
	for _, hotel := range hotels {
		if err := store.InsertHotel(ctx, hotel); err != nil {
			return fmt.Errorf("insert hotel %s: %w", hotel.Name, err)
		}
	}

	logger.Info().Int("count", len(hotels)).Msg("hotel catalog seeded")
	return nil
}

// Catalog returns the built-in Turkish hotel catalog.
func Catalog() []*models.Hotel {
	now := time.Now().UTC()
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	return []*models.Hotel{
		{
			ID:       uuid.NewString(),
			Name:     "Swissotel The Bosphorus",
			City:     "İstanbul",
			District: "Beşiktaş",
			Address:  "Bayıldım Cad. No:2, 34357 Beşiktaş",
			Stars:    5,
			Description: "Boğaz manzaralı lüks otel, muhteşem spa ve açık havuz imkanları ile.",
			Amenities: []models.HotelAmenity{
				{Name: "Ücretsiz WiFi", Icon: "wifi"},
				{Name: "Spa & Wellness", Icon: "spa"},
				{Name: "Açık Havuz", Icon: "pool"},
				{Name: "Fitness Center", Icon: "fitness"},
				{Name: "Restoran", Icon: "restaurant"},
				{Name: "Otopark", Icon: "parking"},
			},
			RoomTypes: []models.RoomType{
				{ID: uuid.NewString(), Name: "Deluxe Room", Description: "30 m² oda, şehir veya park manzaralı", Capacity: 2, PricePerNight: price("3500.0"), AvailableRooms: 10},
				{ID: uuid.NewString(), Name: "Bosphorus View Room", Description: "35 m² oda, Boğaz manzaralı", Capacity: 2, PricePerNight: price("4500.0"), AvailableRooms: 8},
				{ID: uuid.NewString(), Name: "Executive Suite", Description: "65 m² süit, Boğaz manzaralı, oturma alanı", Capacity: 3, PricePerNight: price("7500.0"), AvailableRooms: 5},
			},
			Images: []string{
				"https://images.unsplash.com/photo-1566073771259-6a8506099945?w=800",
				"https://images.unsplash.com/photo-1582719478250-c89cae4dc85b?w=800",
			},
			TripadvisorRating:  price("4.5"),
			Phone:              "+90 212 326 1100",
			Email:              "istanbul@swissotel.com",
			CancellationPolicy: "Ücretsiz iptal: Giriş tarihinden 48 saat öncesine kadar",
			IsActive:           true,
			CreatedAt:          now,
		},
		{
			ID:       uuid.NewString(),
			Name:     "Four Seasons Sultanahmet",
			City:     "İstanbul",
			District: "Fatih",
			Address:  "Tevkifhane Sok. No:1, 34110 Sultanahmet",
			Stars:    5,
			Description: "Tarihi yarımadada, eski cezaevi binasında butik lüks otel.",
			Amenities: []models.HotelAmenity{
				{Name: "Ücretsiz WiFi", Icon: "wifi"},
				{Name: "Spa & Wellness", Icon: "spa"},
				{Name: "Restoran", Icon: "restaurant"},
				{Name: "Concierge", Icon: "concierge"},
				{Name: "Oda Servisi", Icon: "room_service"},
			},
			RoomTypes: []models.RoomType{
				{ID: uuid.NewString(), Name: "Deluxe Room", Description: "40 m² oda, avlu manzaralı", Capacity: 2, PricePerNight: price("4200.0"), AvailableRooms: 6},
				{ID: uuid.NewString(), Name: "Premium Room", Description: "45 m² oda, şehir manzaralı", Capacity: 2, PricePerNight: price("5500.0"), AvailableRooms: 4},
			},
			Images: []string{
				"https://images.unsplash.com/photo-1551882547-ff40c63fe5fa?w=800",
			},
			TripadvisorRating:  price("4.8"),
			Phone:              "+90 212 402 3000",
			Email:              "sultanahmet@fourseasons.com",
			CancellationPolicy: "Ücretsiz iptal: Giriş tarihinden 72 saat öncesine kadar",
			IsActive:           true,
			CreatedAt:          now,
		},
		{
			ID:       uuid.NewString(),
			Name:     "Hilton Istanbul Bosphorus",
			City:     "İstanbul",
			District: "Şişli",
			Address:  "Cumhuriyet Cad. No:50, 34367 Harbiye",
			Stars:    5,
			Description: "Geniş bahçesi ve Boğaz manzarası ile şehir oteli.",
			Amenities: []models.HotelAmenity{
				{Name: "Ücretsiz WiFi", Icon: "wifi"},
				{Name: "Açık Havuz", Icon: "pool"},
				{Name: "Fitness Center", Icon: "fitness"},
				{Name: "Restoran", Icon: "restaurant"},
				{Name: "Bar", Icon: "bar"},
				{Name: "Otopark", Icon: "parking"},
			},
			RoomTypes: []models.RoomType{
				{ID: uuid.NewString(), Name: "Guest Room", Description: "28 m² oda, şehir manzaralı", Capacity: 2, PricePerNight: price("2800.0"), AvailableRooms: 20},
				{ID: uuid.NewString(), Name: "Bosphorus Room", Description: "32 m² oda, Boğaz manzaralı", Capacity: 2, PricePerNight: price("3800.0"), AvailableRooms: 12},
			},
			Images: []string{
				"https://images.unsplash.com/photo-1542314831-068cd1dbfeeb?w=800",
			},
			TripadvisorRating:  price("4.3"),
			Phone:              "+90 212 315 6000",
			Email:              "istanbul@hilton.com",
			CancellationPolicy: "Ücretsiz iptal: Giriş tarihinden 24 saat öncesine kadar",
			IsActive:           true,
			CreatedAt:          now,
		},
		{
			ID:       uuid.NewString(),
			Name:     "Ramada by Wyndham Ankara",
			City:     "Ankara",
			District: "Çankaya",
			Address:  "Tunalı Hilmi Cad. No:66, 06680 Kavaklıdere",
			Stars:    4,
			Description: "İş seyahatleri için merkezi konumda şehir oteli.",
			Amenities: []models.HotelAmenity{
				{Name: "Ücretsiz WiFi", Icon: "wifi"},
				{Name: "Fitness Center", Icon: "fitness"},
				{Name: "Restoran", Icon: "restaurant"},
				{Name: "Otopark", Icon: "parking"},
				{Name: "Toplantı Odaları", Icon: "meeting"},
			},
			RoomTypes: []models.RoomType{
				{ID: uuid.NewString(), Name: "Standard Room", Description: "24 m² oda", Capacity: 2, PricePerNight: price("1500.0"), AvailableRooms: 25},
				{ID: uuid.NewString(), Name: "Deluxe Room", Description: "28 m² oda", Capacity: 2, PricePerNight: price("1900.0"), AvailableRooms: 15},
			},
			Images: []string{
				"https://images.unsplash.com/photo-1590490360182-c33d57733427?w=800",
			},
			TripadvisorRating:  price("4.1"),
			Phone:              "+90 312 428 2000",
			Email:              "ankara@ramada.com",
			CancellationPolicy: "Ücretsiz iptal: Giriş tarihinden 24 saat öncesine kadar",
			IsActive:           true,
			CreatedAt:          now,
		},
		{
			ID:       uuid.NewString(),
			Name:     "Rixos Downtown Antalya",
			City:     "Antalya",
			District: "Muratpaşa",
			Address:  "Sakıp Sabancı Bulvarı No:26, 07100",
			Stars:    5,
			Description: "Şehir merkezinde her şey dahil tatil oteli.",
			Amenities: []models.HotelAmenity{
				{Name: "Ücretsiz WiFi", Icon: "wifi"},
				{Name: "Her Şey Dahil", Icon: "all_inclusive"},
				{Name: "Spa & Wellness", Icon: "spa"},
				{Name: "Açık Havuz", Icon: "pool"},
				{Name: "Plaj", Icon: "beach"},
				{Name: "Fitness Center", Icon: "fitness"},
				{Name: "Çocuk Kulübü", Icon: "kids_club"},
			},
			RoomTypes: []models.RoomType{
				{ID: uuid.NewString(), Name: "Deluxe Room", Description: "32 m² oda, bahçe manzaralı", Capacity: 2, PricePerNight: price("3200.0"), AvailableRooms: 18},
				{ID: uuid.NewString(), Name: "Family Suite", Description: "55 m² süit, iki yatak odalı", Capacity: 4, PricePerNight: price("5500.0"), AvailableRooms: 6},
			},
			Images: []string{
				"https://images.unsplash.com/photo-1571003123894-1f0594d2b5d9?w=800",
			},
			TripadvisorRating:  price("4.4"),
			Phone:              "+90 242 249 0700",
			Email:              "antalya@rixos.com",
			CancellationPolicy: "Ücretsiz iptal: Giriş tarihinden 7 gün öncesine kadar",
			IsActive:           true,
			CreatedAt:          now,
		},
		{
			ID:       uuid.NewString(),
			Name:     "Swissotel Büyük Efes İzmir",
			City:     "İzmir",
			District: "Konak",
			Address:  "Gaziosmanpaşa Bulvarı No:1, 35210",
			Stars:    5,
			Description: "Körfez manzaralı şehir merkezi otel.",
			Amenities: []models.HotelAmenity{
				{Name: "Ücretsiz WiFi", Icon: "wifi"},
				{Name: "Spa & Wellness", Icon: "spa"},
				{Name: "Açık Havuz", Icon: "pool"},
				{Name: "Fitness Center", Icon: "fitness"},
				{Name: "Restoran", Icon: "restaurant"},
				{Name: "Otopark", Icon: "parking"},
			},
			RoomTypes: []models.RoomType{
				{ID: uuid.NewString(), Name: "Swiss Advantage Room", Description: "32 m² oda, şehir manzaralı", Capacity: 2, PricePerNight: price("2200.0"), AvailableRooms: 14},
				{ID: uuid.NewString(), Name: "Bay View Room", Description: "35 m² oda, körfez manzaralı", Capacity: 2, PricePerNight: price("2800.0"), AvailableRooms: 10},
			},
			Images: []string{
				"https://images.unsplash.com/photo-1564501049412-61c2a3083791?w=800",
			},
			TripadvisorRating:  price("4.4"),
			Phone:              "+90 232 414 0000",
			Email:              "izmir@swissotel.com",
			CancellationPolicy: "Ücretsiz iptal: Giriş tarihinden 48 saat öncesine kadar",
			IsActive:           true,
			CreatedAt:          now,
		},
		{
			ID:       uuid.NewString(),
			Name:     "The Marmara Bodrum",
			City:     "Bodrum",
			District: "Merkez",
			Address:  "Yokuşbaşı Mah. Suluhasan Cad. No:18, 48400",
			Stars:    5,
			Description: "Ege denizi manzaralı butik lüks otel.",
			Amenities: []models.HotelAmenity{
				{Name: "Ücretsiz WiFi", Icon: "wifi"},
				{Name: "Spa & Wellness", Icon: "spa"},
				{Name: "Açık Havuz", Icon: "pool"},
				{Name: "Özel Plaj", Icon: "beach"},
				{Name: "Restoran", Icon: "restaurant"},
			},
			RoomTypes: []models.RoomType{
				{ID: uuid.NewString(), Name: "Deluxe Room", Description: "35 m² oda, bahçe manzaralı", Capacity: 2, PricePerNight: price("2600.0"), AvailableRooms: 12},
				{ID: uuid.NewString(), Name: "Sea View Room", Description: "40 m² oda, deniz manzaralı", Capacity: 2, PricePerNight: price("3400.0"), AvailableRooms: 8},
			},
			Images: []string{
				"https://images.unsplash.com/photo-1569949381669-ecf31ae8e613?w=800",
			},
			TripadvisorRating:  price("4.5"),
			Phone:              "+90 252 313 8130",
			Email:              "bodrum@themarmarahotels.com",
			CancellationPolicy: "Ücretsiz iptal: Giriş tarihinden 72 saat öncesine kadar",
			IsActive:           true,
			CreatedAt:          now,
		},
	}
}
