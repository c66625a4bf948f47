package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the storefront schema. Adapters never automigrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&userRecord{},
		&sessionRecord{},
		&productRecord{},
		&cartRecord{},
		&orderRecord{},
		&contactRecord{},
	)
}

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID           string    `gorm:"primaryKey;column:id;type:uuid"`
	Username     string    `gorm:"column:username;size:50;not null;uniqueIndex"`
	Email        string    `gorm:"column:email;size:255;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	FirstName    string    `gorm:"column:first_name;size:50;not null"`
	LastName     string    `gorm:"column:last_name;size:50;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Session schema mirrors the Postgres session store.
type sessionRecord struct {
	Token     string     `gorm:"primaryKey;column:token;size:512"`
	UserID    string     `gorm:"column:user_id;type:uuid;not null;index"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time  `gorm:"column:created_at;index"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
	User      userRecord `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (sessionRecord) TableName() string { return "user_sessions" }

// Product schema mirrors the catalog Postgres adapter.
type productRecord struct {
	ID            string           `gorm:"primaryKey;column:id;type:uuid"`
	Name          string           `gorm:"column:name;not null"`
	Category      string           `gorm:"column:category;not null;index"`
	Price         decimal.Decimal  `gorm:"column:price;type:numeric(10,2);not null;check:chk_products_price,price >= 0"`
	OriginalPrice *decimal.Decimal `gorm:"column:original_price;type:numeric(10,2)"`
	Rating        *decimal.Decimal `gorm:"column:rating;type:numeric(2,1);check:chk_products_rating,rating >= 0 AND rating <= 5"`
	Image         string           `gorm:"column:image"`
	Description   string           `gorm:"column:description;type:text"`
	InStock       int              `gorm:"column:in_stock;not null;default:0;check:chk_products_in_stock,in_stock >= 0"`
	CreatedAt     time.Time        `gorm:"column:created_at;index"`
	UpdatedAt     time.Time        `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Cart schema mirrors the cart Postgres adapter. The composite unique index backs merge-on-add.
type cartRecord struct {
	ID        string        `gorm:"primaryKey;column:id;type:uuid"`
	UserID    string        `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_cart_user_product,priority:1"`
	ProductID string        `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_cart_user_product,priority:2"`
	Quantity  int           `gorm:"column:quantity;not null;default:1;check:chk_cart_quantity,quantity > 0"`
	CreatedAt time.Time     `gorm:"column:created_at"`
	UpdatedAt time.Time     `gorm:"column:updated_at"`
	User      userRecord    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Product   productRecord `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (cartRecord) TableName() string { return "cart" }

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID              string          `gorm:"primaryKey;column:id;type:uuid"`
	UserID          string          `gorm:"column:user_id;type:uuid;not null;index:idx_orders_user_created,priority:1"`
	Items           []orderLine     `gorm:"column:items;type:text;not null;serializer:json"`
	Subtotal        decimal.Decimal `gorm:"column:subtotal;type:numeric(10,2);not null"`
	Tax             decimal.Decimal `gorm:"column:tax;type:numeric(10,2);not null"`
	Total           decimal.Decimal `gorm:"column:total;type:numeric(10,2);not null"`
	Status          string          `gorm:"column:status;type:varchar(32);not null;default:pending"`
	FirstName       string          `gorm:"column:first_name;not null"`
	LastName        string          `gorm:"column:last_name;not null"`
	Email           string          `gorm:"column:email;not null"`
	Phone           string          `gorm:"column:phone;not null"`
	ShippingAddress string          `gorm:"column:shipping_address;type:text;not null"`
	City            string          `gorm:"column:city;not null"`
	ZipCode         string          `gorm:"column:zip_code;not null"`
	Notes           string          `gorm:"column:notes;type:text"`
	CreatedAt       time.Time       `gorm:"column:created_at;index:idx_orders_user_created,priority:2"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
	User            userRecord      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

type orderLine struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Name      string          `json:"name"`
}

func (orderRecord) TableName() string { return "orders" }

// Contact schema mirrors the contact Postgres adapter.
type contactRecord struct {
	ID          string    `gorm:"primaryKey;column:id;type:uuid"`
	Name        string    `gorm:"column:name;size:100;not null"`
	Email       string    `gorm:"column:email;not null"`
	Message     string    `gorm:"column:message;type:text;not null"`
	OrderNumber *string   `gorm:"column:order_number"`
	Topic       *string   `gorm:"column:topic"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
}

func (contactRecord) TableName() string { return "contacts" }
