package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"
)

// OrderUseCase contém a lógica de negócio dos pedidos: criação, atualização
// item a item, exclusão e leitura, mantendo itens, total do pedido e estoque
// dos produtos consistentes. Cada fluxo roda dentro de uma única transação,
// então uma falha no meio do caminho não deixa estado parcial.
type OrderUseCase struct {
	orders   OrderRepository
	products ProductRepository
}

// NewOrderUseCase cria uma nova instância de OrderUseCase
func NewOrderUseCase(orders OrderRepository, products ProductRepository) *OrderUseCase {
	return &OrderUseCase{
		orders:   orders,
		products: products,
	}
}

// CreateOrder cria um pedido com seus itens, reservando estoque.
// Todos os itens são validados (existência e estoque suficiente) antes de
// qualquer decremento, para que nenhum item seja aplicado se outro falhar.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if strings.TrimSpace(req.Client) == "" {
		return nil, NewValidationError("Nome do cliente é obrigatório")
	}
	if len(req.Items) == 0 {
		return nil, NewValidationError("Pedido deve ter pelo menos um item")
	}
	seen := make(map[string]bool, len(req.Items))
	for _, item := range req.Items {
		if item.Amount <= 0 {
			return nil, NewValidationError("Quantidade deve ser maior que zero")
		}
		if seen[item.ProductID] {
			return nil, NewValidationError("Produto duplicado nos itens do pedido")
		}
		seen[item.ProductID] = true
	}

	tx, err := uc.orders.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Primeira passada: valida todos os itens com lock pessimista e
	// calcula o total com os preços atuais dos produtos
	totalPrice := decimal.Zero
	products := make(map[string]*Product, len(req.Items))
	for _, item := range req.Items {
		product, err := uc.products.GetProductForUpdate(ctx, tx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product.Stock < item.Amount {
			log.Printf("❌ [CREATE ORDER] Insufficient stock | ProductID=%s | Available=%d | Requested=%d",
				product.ID, product.Stock, item.Amount)
			return nil, &InsufficientStockError{ProductName: product.Name, Available: product.Stock}
		}
		products[item.ProductID] = product
		totalPrice = totalPrice.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Amount))))
	}

	order := NewOrder(req.Client, totalPrice)
	if err := uc.orders.CreateOrder(ctx, tx, order); err != nil {
		return nil, err
	}

	// Segunda passada: persiste os snapshots dos itens e decrementa estoque
	for _, item := range req.Items {
		product := products[item.ProductID]

		orderItem := NewOrderItem(order.ID, product, item.Amount)
		if err := uc.orders.CreateOrderItem(ctx, tx, orderItem); err != nil {
			return nil, err
		}
		if err := uc.products.DecreaseStock(ctx, tx, product, item.Amount); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, *orderItem)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order creation: %w", err)
	}

	log.Printf("✅ [CREATE ORDER] OrderID=%s | Client=%s | Items=%d | Total=%s",
		order.ID, order.Client, len(order.Items), order.TotalPrice)
	return order, nil
}

// UpdateOrder substitui o conjunto de itens do pedido, item a item.
// amount = 0 remove o produto do pedido, devolvendo o estoque reservado;
// para os demais casos o ajuste de estoque é pela diferença em relação ao
// item existente. Ao final o total do pedido é recalculado a partir dos
// itens persistidos, não do acumulado em memória.
func (uc *OrderUseCase) UpdateOrder(ctx context.Context, orderID string, req UpdateOrderRequest) (*Order, error) {
	if orderID == "" {
		return nil, NewValidationError("ID do pedido é obrigatório")
	}
	if len(req.Items) == 0 {
		return nil, NewValidationError("Deve fornecer pelo menos um item para atualizar")
	}
	// IDs repetidos tornariam o ajuste por diferença ambíguo: a segunda
	// entrada enxergaria o item já removido ou já atualizado pela primeira
	seen := make(map[string]bool, len(req.Items))
	for _, item := range req.Items {
		if item.Amount < 0 {
			return nil, NewValidationError("Quantidade não pode ser negativa")
		}
		if seen[item.ProductID] {
			return nil, NewValidationError("Produto duplicado nos itens do pedido")
		}
		seen[item.ProductID] = true
	}

	tx, err := uc.orders.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	order, err := uc.orders.GetOrderForUpdate(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}

	for _, reqItem := range req.Items {
		product, err := uc.products.GetProductForUpdate(ctx, tx, reqItem.ProductID)
		if err != nil {
			return nil, err
		}

		existing := findOrderItem(order.Items, reqItem.ProductID)

		// amount = 0 remove o produto do pedido
		if reqItem.Amount == 0 {
			if existing == nil {
				continue
			}
			if err := uc.products.IncreaseStock(ctx, tx, existing.ProductID, existing.Amount); err != nil {
				return nil, err
			}
			if err := uc.orders.DeleteOrderItem(ctx, tx, existing.ID); err != nil {
				return nil, err
			}
			log.Printf("➖ [UPDATE ORDER] Item removed | OrderID=%s | ProductID=%s | Restored=%d",
				orderID, existing.ProductID, existing.Amount)
			continue
		}

		// Item novo: reserva integral da quantidade pedida
		if existing == nil {
			if product.Stock < reqItem.Amount {
				return nil, &InsufficientStockError{ProductName: product.Name, Available: product.Stock}
			}
			orderItem := NewOrderItem(order.ID, product, reqItem.Amount)
			if err := uc.orders.CreateOrderItem(ctx, tx, orderItem); err != nil {
				return nil, err
			}
			if err := uc.products.DecreaseStock(ctx, tx, product, reqItem.Amount); err != nil {
				return nil, err
			}
			continue
		}

		// Item existente: ajusta pela diferença
		delta := reqItem.Amount - existing.Amount
		if delta > 0 && product.Stock < delta {
			return nil, &InsufficientStockError{ProductName: product.Name, Available: product.Stock}
		}

		existing.Amount = reqItem.Amount
		existing.TotalPrice = existing.UnitPrice.Mul(decimal.NewFromInt(int64(reqItem.Amount)))
		if err := uc.orders.UpdateOrderItem(ctx, tx, existing); err != nil {
			return nil, err
		}

		if delta > 0 {
			if err := uc.products.DecreaseStock(ctx, tx, product, delta); err != nil {
				return nil, err
			}
		} else if delta < 0 {
			if err := uc.products.IncreaseStock(ctx, tx, product.ID, -delta); err != nil {
				return nil, err
			}
		}
	}

	// Recalcula o total a partir dos itens restantes no banco, refletindo
	// remoções e adições
	items, err := uc.orders.ListOrderItems(ctx, tx, order.ID)
	if err != nil {
		return nil, err
	}
	newTotal := decimal.Zero
	for _, item := range items {
		newTotal = newTotal.Add(item.TotalPrice)
	}
	if err := uc.orders.UpdateOrderTotal(ctx, tx, order.ID, newTotal); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order update: %w", err)
	}

	log.Printf("✅ [UPDATE ORDER] OrderID=%s | Items=%d | Total=%s", order.ID, len(items), newTotal)

	order.Items = items
	order.TotalPrice = newTotal
	return order, nil
}

// DeleteOrder exclui o pedido, devolvendo o estoque reservado por cada
// item. A ordem importa: estoque restaurado e itens removidos antes do
// registro do pedido, por causa da chave estrangeira.
func (uc *OrderUseCase) DeleteOrder(ctx context.Context, orderID string) error {
	if orderID == "" {
		return NewValidationError("ID do pedido é obrigatório")
	}

	tx, err := uc.orders.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	order, err := uc.orders.GetOrderForUpdate(ctx, tx, orderID)
	if err != nil {
		return err
	}

	for _, item := range order.Items {
		if err := uc.products.IncreaseStock(ctx, tx, item.ProductID, item.Amount); err != nil {
			return err
		}
	}

	if err := uc.orders.DeleteOrderItems(ctx, tx, order.ID); err != nil {
		return err
	}
	if err := uc.orders.DeleteOrder(ctx, tx, order.ID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order deletion: %w", err)
	}

	log.Printf("🗑️  [DELETE ORDER] OrderID=%s | Items restored=%d", orderID, len(order.Items))
	return nil
}

// GetOrder busca um pedido pelo ID, com seus itens
func (uc *OrderUseCase) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	if orderID == "" {
		return nil, NewValidationError("ID do pedido é obrigatório")
	}
	return uc.orders.GetOrder(ctx, orderID)
}

// ListOrders lista todos os pedidos com seus itens, mais recentes primeiro
func (uc *OrderUseCase) ListOrders(ctx context.Context) ([]Order, error) {
	return uc.orders.ListOrders(ctx)
}

// findOrderItem localiza o item do pedido referente ao produto, se houver
func findOrderItem(items []OrderItem, productID string) *OrderItem {
	for i := range items {
		if items[i].ProductID == productID {
			return &items[i]
		}
	}
	return nil
}
