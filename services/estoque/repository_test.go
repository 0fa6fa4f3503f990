package main

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewProductRepository(t *testing.T) {
	// Arrange
	var db *pgxpool.Pool

	// Act
	repo := NewProductRepository(db)

	// Assert
	assert.NotNil(t, repo)
	assert.IsType(t, &PostgresProductRepository{}, repo)
}

func TestNewOrderRepository(t *testing.T) {
	// Arrange
	var db *pgxpool.Pool

	// Act
	repo := NewOrderRepository(db)

	// Assert
	assert.NotNil(t, repo)
	assert.IsType(t, &PostgresOrderRepository{}, repo)
}

func TestInsufficientStockErrorMessage(t *testing.T) {
	err := &InsufficientStockError{ProductName: "Caneta", Available: 2}

	assert.Equal(t, "Estoque insuficiente para o produto Caneta. Disponível: 2", err.Error())
}

func TestNotFoundErrorMessage(t *testing.T) {
	err := NewNotFoundError("Produto com ID %s não encontrado", "abc-123")

	assert.Equal(t, "Produto com ID abc-123 não encontrado", err.Error())
}
