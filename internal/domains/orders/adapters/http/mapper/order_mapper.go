package mapper

import (
	"time"

	"github.com/Apurer/go-storefront-api/internal/domains/orders/domain"
)

// Delivery is the JSON shape of delivery details, used for requests and responses.
type Delivery struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	ZipCode   string `json:"zipCode"`
	Notes     string `json:"notes,omitempty"`
}

// LineItem is a purchased product snapshot.
type LineItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
	Total     string `json:"total"`
}

// Order is the HTTP representation of a committed order.
type Order struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Items     []LineItem `json:"items"`
	Subtotal  string     `json:"subtotal"`
	Tax       string     `json:"tax"`
	Total     string     `json:"total"`
	Delivery  Delivery   `json:"delivery"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
}

func ToDomainDelivery(d Delivery) domain.DeliveryInfo {
	return domain.DeliveryInfo{
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
		Phone:     d.Phone,
		Address:   d.Address,
		City:      d.City,
		ZipCode:   d.ZipCode,
		Notes:     d.Notes,
	}
}

func FromDomainDelivery(d domain.DeliveryInfo) Delivery {
	return Delivery{
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
		Phone:     d.Phone,
		Address:   d.Address,
		City:      d.City,
		ZipCode:   d.ZipCode,
		Notes:     d.Notes,
	}
}

// FromDomainOrder renders money with two decimals.
func FromDomainOrder(o *domain.Order) Order {
	items := make([]LineItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, LineItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price.StringFixed(2),
			Quantity:  item.Quantity,
			Total:     item.Total().StringFixed(2),
		})
	}
	return Order{
		ID:        o.ID,
		UserID:    o.UserID,
		Items:     items,
		Subtotal:  o.Subtotal.StringFixed(2),
		Tax:       o.Tax.StringFixed(2),
		Total:     o.Total.StringFixed(2),
		Delivery:  FromDomainDelivery(o.Delivery),
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
	}
}

func FromDomainOrders(orders []*domain.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, FromDomainOrder(o))
	}
	return result
}
