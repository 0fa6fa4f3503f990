package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product representa um produto do estoque
type Product struct {
	ID          string          `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description,omitempty" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Stock       int             `json:"stock" db:"stock"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// NewProduct cria uma nova instância de Product
func NewProduct(name, description string, price decimal.Decimal, stock int) *Product {
	return &Product{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

// Order representa um pedido no sistema
type Order struct {
	ID         string          `json:"id" db:"id"`
	Client     string          `json:"client" db:"client"`
	TotalPrice decimal.Decimal `json:"totalPrice" db:"total_price"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time       `json:"updatedAt" db:"updated_at"`
	Items      []OrderItem     `json:"items" db:"-"`
}

// NewOrder cria um novo pedido com o total já calculado
func NewOrder(client string, totalPrice decimal.Decimal) *Order {
	return &Order{
		ID:         uuid.New().String(),
		Client:     client,
		TotalPrice: totalPrice,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

// OrderItem representa um item de pedido. ProductName e UnitPrice são
// snapshots do produto no momento da criação e não são re-sincronizados
// se o produto mudar depois.
type OrderItem struct {
	ID          string          `json:"id" db:"id"`
	OrderID     string          `json:"orderId" db:"order_id"`
	ProductID   string          `json:"productId" db:"product_id"`
	ProductName string          `json:"productName" db:"product_name"`
	Amount      int             `json:"amount" db:"amount"`
	UnitPrice   decimal.Decimal `json:"unitPrice" db:"unit_price"`
	TotalPrice  decimal.Decimal `json:"totalPrice" db:"total_price"`
}

// NewOrderItem cria um item de pedido a partir do produto e da quantidade
func NewOrderItem(orderID string, product *Product, amount int) *OrderItem {
	return &OrderItem{
		ID:          uuid.New().String(),
		OrderID:     orderID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Amount:      amount,
		UnitPrice:   product.Price,
		TotalPrice:  product.Price.Mul(decimal.NewFromInt(int64(amount))),
	}
}

// CreateProductRequest representa a requisição de criação de produto
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

// UpdateProductRequest representa a requisição de atualização parcial de
// produto (campos nulos são ignorados)
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
}

// OrderItemRequest representa um item dentro da requisição de pedido.
// Na atualização, amount = 0 remove o produto do pedido.
type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Amount    int    `json:"amount"`
}

// CreateOrderRequest representa a requisição de criação de pedido
type CreateOrderRequest struct {
	Client string             `json:"client"`
	Items  []OrderItemRequest `json:"items"`
}

// UpdateOrderRequest representa a requisição de atualização de pedido
type UpdateOrderRequest struct {
	Items []OrderItemRequest `json:"items"`
}
