package main

import (
	"context"
	"log"
	"strings"

	"github.com/shopspring/decimal"
)

// ProductUseCase contém a lógica de negócio dos produtos
type ProductUseCase struct {
	repository ProductRepository
}

// NewProductUseCase cria uma nova instância de ProductUseCase
func NewProductUseCase(repository ProductRepository) *ProductUseCase {
	return &ProductUseCase{
		repository: repository,
	}
}

// CreateProduct valida e cria um produto. Estoque zero é rejeitado na
// criação: produto novo entra com estoque positivo.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, NewValidationError("Nome do produto é obrigatório")
	}
	if req.Price.LessThanOrEqual(decimal.Zero) {
		return nil, NewValidationError("Preço deve ser maior que zero")
	}
	if req.Stock <= 0 {
		return nil, NewValidationError("Estoque não pode ser 0")
	}

	product := NewProduct(req.Name, req.Description, req.Price, req.Stock)
	if err := uc.repository.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	log.Printf("✅ [CREATE PRODUCT] ProductID=%s | Name=%s | Stock=%d", product.ID, product.Name, product.Stock)
	return product, nil
}

// ListProducts lista os produtos, mais recentes primeiro
func (uc *ProductUseCase) ListProducts(ctx context.Context) ([]Product, error) {
	return uc.repository.ListProducts(ctx)
}

// GetProduct busca um produto pelo ID
func (uc *ProductUseCase) GetProduct(ctx context.Context, productID string) (*Product, error) {
	if productID == "" {
		return nil, NewValidationError("ID do produto é obrigatório")
	}
	return uc.repository.GetProduct(ctx, productID)
}

// UpdateProduct aplica uma atualização parcial: apenas os campos presentes
// na requisição são alterados
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, productID string, req UpdateProductRequest) (*Product, error) {
	if productID == "" {
		return nil, NewValidationError("ID do produto é obrigatório")
	}

	product, err := uc.repository.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Price != nil && req.Price.LessThanOrEqual(decimal.Zero) {
		return nil, NewValidationError("Preço deve ser maior que zero")
	}
	if req.Stock != nil && *req.Stock < 0 {
		return nil, NewValidationError("Estoque não pode ser negativo")
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, NewValidationError("Nome do produto é obrigatório")
		}
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	if err := uc.repository.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}

	log.Printf("✅ [UPDATE PRODUCT] ProductID=%s", product.ID)
	return product, nil
}

// DeleteProduct remove o produto. A exclusão não verifica referências em
// pedidos: os itens históricos guardam o próprio snapshot de nome e preço.
func (uc *ProductUseCase) DeleteProduct(ctx context.Context, productID string) error {
	if productID == "" {
		return NewValidationError("ID do produto é obrigatório")
	}

	if _, err := uc.repository.GetProduct(ctx, productID); err != nil {
		return err
	}
	if err := uc.repository.DeleteProduct(ctx, productID); err != nil {
		return err
	}

	log.Printf("🗑️  [DELETE PRODUCT] ProductID=%s", productID)
	return nil
}
