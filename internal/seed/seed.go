package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type customerSeed struct {
	Name  string
	Email string
	Phone string
}

type addressSeed struct {
	Type       string
	City       string
	Town       string
	StreetLine string
	PostalCode string
}

type stockSeed struct {
	Name  string
	Unit  string
	Price string
}

var customers = []customerSeed{
	{"Levent Kalkavan", "levent.kalkavan@mail.com", "+905001111001"},
	{"Mehmet Yılmaz", "mehmet.yilmaz@mail.com", "+905001111002"},
	{"Ayşe Kaya", "ayse.kaya@mail.com", "+905001111003"},
	{"Fatma Demir", "fatma.demir@mail.com", "+905001111004"},
	{"Can Öztürk", "can.ozturk@mail.com", "+905001111005"},
	{"Merve Çelik", "merve.celik@mail.com", "+905001111006"},
	{"Selim Koç", "selim.koc@mail.com", "+905001111007"},
	{"TLS Ornek", "tls.ornek@mail.com", "+905001111020"},
}

var cities = []addressSeed{
	{"Ev", "İstanbul", "Kadıköy", "Bağdat Cd. 112", "34710"},
	{"Ev", "Ankara", "Çankaya", "Tunalı Hilmi Cd. 44", "06510"},
	{"Ev", "İzmir", "Bornova", "Kazım Dirik Mh. 8", "35030"},
	{"Ev", "Bursa", "Nilüfer", "İzmir Yolu Cd. 21", "16110"},
	{"Ev", "Antalya", "Muratpaşa", "Lara Cd. 59", "07010"},
	{"Ev", "Samsun", "Atakum", "Atatürk Blv. 97", "55200"},
	{"Ev", "Trabzon", "Ortahisar", "Uzun Sk. 14", "61030"},
	{"Ev", "Konya", "Selçuklu", "Nişantaş Mh. 3", "42060"},
}

var workAddress = addressSeed{"İş", "İstanbul", "Şişli", "Büyükdere Cd. 201", "34394"}

var stocks = []stockSeed{
	{"Çelik Vida 4x40", "Kutu", "45.50"},
	{"Ahşap Panel 18mm", "Adet", "320.00"},
	{"Akrilik Boya Beyaz", "Litre", "89.90"},
	{"Zımpara Kağıdı P120", "Paket", "27.25"},
	{"Silikon Tabancası", "Adet", "154.00"},
	{"İzolasyon Bandı", "Adet", "12.75"},
}

// Apply inserts demo data for manual testing. Customers and addresses are
// only created on an empty database; stocks upsert via their barcode.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	var customerCount int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM customers`).Scan(&customerCount); err != nil {
		return fmt.Errorf("count customers: %w", err)
	}

	if customerCount == 0 {
		for i, c := range customers {
			id, err := insertCustomer(ctx, pool, c)
			if err != nil {
				return fmt.Errorf("insert customer %s: %w", c.Email, err)
			}
			addr := cities[i%len(cities)]
			if err := insertAddress(ctx, pool, id, addr); err != nil {
				return fmt.Errorf("insert address for %s: %w", c.Email, err)
			}
			// Every second customer also gets a work address so the
			// different-address and city reports have data.
			if i%2 == 0 {
				if err := insertAddress(ctx, pool, id, workAddress); err != nil {
					return fmt.Errorf("insert work address for %s: %w", c.Email, err)
				}
			}
		}
	}

	for _, s := range stocks {
		if err := upsertStock(ctx, pool, s); err != nil {
			return fmt.Errorf("upsert stock %s: %w", s.Name, err)
		}
	}

	return nil
}

func insertCustomer(ctx context.Context, pool *pgxpool.Pool, c customerSeed) (string, error) {
	password := strings.ReplaceAll(c.Name, " ", "") + "1."
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	const q = `
INSERT INTO customers (name, email, phone, password_hash, active)
VALUES ($1, $2, $3, $4, TRUE)
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, c.Name, c.Email, c.Phone, string(hash)).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func insertAddress(ctx context.Context, pool *pgxpool.Pool, customerID string, a addressSeed) error {
	const q = `
INSERT INTO customer_addresses (customer_id, type, country, city, town, street_line, postal_code, active)
VALUES ($1, $2, 'Türkiye', $3, $4, $5, $6, TRUE)
`
	_, err := pool.Exec(ctx, q, customerID, a.Type, a.City, a.Town, a.StreetLine, a.PostalCode)
	return err
}

func upsertStock(ctx context.Context, pool *pgxpool.Pool, s stockSeed) error {
	const q = `
INSERT INTO stocks (name, unit, price, barcode, active)
VALUES ($1, $2, $3, $4, TRUE)
ON CONFLICT (barcode) DO UPDATE
SET name = EXCLUDED.name,
    unit = EXCLUDED.unit,
    price = EXCLUDED.price
`
	// Barcode derives from the name so reruns update instead of duplicate.
	barcode := uuid.NewSHA1(uuid.NameSpaceOID, []byte(s.Name)).String()
	_, err := pool.Exec(ctx, q, s.Name, s.Unit, s.Price, barcode)
	return err
}
