package main

import "fmt"

// ValidationError indica uma requisição inválida: campo obrigatório
// ausente, preço não positivo ou quantidade fora do permitido
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError cria um ValidationError com a mensagem formatada
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError indica que um produto ou pedido não foi encontrado
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// NewNotFoundError cria um NotFoundError com a mensagem formatada
func NewNotFoundError(format string, args ...any) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// InsufficientStockError indica que a quantidade solicitada excede o
// estoque disponível do produto
type InsufficientStockError struct {
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Estoque insuficiente para o produto %s. Disponível: %d", e.ProductName, e.Available)
}
