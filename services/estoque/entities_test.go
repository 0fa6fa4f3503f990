package main

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewProduct(t *testing.T) {
	// Arrange
	price := decimal.RequireFromString("10.50")

	// Act
	product := NewProduct("Caneta", "Esferográfica azul", price, 5)

	// Assert
	if product.ID == "" {
		t.Error("Expected ID to be set")
	}
	if product.Name != "Caneta" {
		t.Errorf("Expected Name Caneta, got %s", product.Name)
	}
	if product.Description != "Esferográfica azul" {
		t.Errorf("Expected Description to be set, got %s", product.Description)
	}
	if !product.Price.Equal(price) {
		t.Errorf("Expected Price %s, got %s", price, product.Price)
	}
	if product.Stock != 5 {
		t.Errorf("Expected Stock 5, got %d", product.Stock)
	}
	if product.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}

	now := time.Now()
	if product.CreatedAt.After(now) || product.CreatedAt.Before(now.Add(-time.Second)) {
		t.Error("CreatedAt is not within expected time range")
	}
}

func TestNewOrder(t *testing.T) {
	// Arrange
	total := decimal.RequireFromString("30.00")

	// Act
	order := NewOrder("Alice", total)

	// Assert
	if order.ID == "" {
		t.Error("Expected ID to be set")
	}
	if order.Client != "Alice" {
		t.Errorf("Expected Client Alice, got %s", order.Client)
	}
	if !order.TotalPrice.Equal(total) {
		t.Errorf("Expected TotalPrice %s, got %s", total, order.TotalPrice)
	}
	if order.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
}

func TestNewOrderItem(t *testing.T) {
	// Arrange
	product := NewProduct("Caneta", "", decimal.RequireFromString("10.00"), 5)

	// Act
	item := NewOrderItem("order-1", product, 3)

	// Assert
	if item.ID == "" {
		t.Error("Expected ID to be set")
	}
	if item.OrderID != "order-1" {
		t.Errorf("Expected OrderID order-1, got %s", item.OrderID)
	}
	if item.ProductID != product.ID {
		t.Errorf("Expected ProductID %s, got %s", product.ID, item.ProductID)
	}
	if item.Amount != 3 {
		t.Errorf("Expected Amount 3, got %d", item.Amount)
	}
	if !item.TotalPrice.Equal(decimal.RequireFromString("30.00")) {
		t.Errorf("Expected TotalPrice 30.00, got %s", item.TotalPrice)
	}
}

// O item guarda o snapshot do produto: mudar o produto depois não muda o item
func TestOrderItemSnapshot(t *testing.T) {
	product := NewProduct("Caneta", "", decimal.RequireFromString("10.00"), 5)
	item := NewOrderItem("order-1", product, 2)

	product.Name = "Caneta Premium"
	product.Price = decimal.RequireFromString("99.90")

	if item.ProductName != "Caneta" {
		t.Errorf("Expected snapshot ProductName Caneta, got %s", item.ProductName)
	}
	if !item.UnitPrice.Equal(decimal.RequireFromString("10.00")) {
		t.Errorf("Expected snapshot UnitPrice 10.00, got %s", item.UnitPrice)
	}
}
