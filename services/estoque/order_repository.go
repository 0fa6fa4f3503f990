package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// OrderRepository define a interface para operações de banco de dados de
// pedidos e itens de pedido
type OrderRepository interface {
	// BeginTx inicia uma nova transação
	BeginTx(ctx context.Context) (Tx, error)

	CreateOrder(ctx context.Context, tx Tx, order *Order) error
	GetOrder(ctx context.Context, orderID string) (*Order, error)
	GetOrderForUpdate(ctx context.Context, tx Tx, orderID string) (*Order, error)
	ListOrders(ctx context.Context) ([]Order, error)
	UpdateOrderTotal(ctx context.Context, tx Tx, orderID string, total decimal.Decimal) error
	DeleteOrder(ctx context.Context, tx Tx, orderID string) error

	CreateOrderItem(ctx context.Context, tx Tx, item *OrderItem) error
	UpdateOrderItem(ctx context.Context, tx Tx, item *OrderItem) error
	DeleteOrderItem(ctx context.Context, tx Tx, itemID string) error
	DeleteOrderItems(ctx context.Context, tx Tx, orderID string) error
	ListOrderItems(ctx context.Context, tx Tx, orderID string) ([]OrderItem, error)
}

// PostgresOrderRepository implementa OrderRepository usando PostgreSQL
type PostgresOrderRepository struct {
	db *pgxpool.Pool
}

// NewOrderRepository cria uma nova instância de PostgresOrderRepository
func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &PostgresOrderRepository{
		db: db,
	}
}

// BeginTx inicia uma nova transação
func (r *PostgresOrderRepository) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &PostgresTx{tx: tx}, nil
}

// CreateOrder insere um novo pedido
func (r *PostgresOrderRepository) CreateOrder(ctx context.Context, tx Tx, order *Order) error {
	pgTx := tx.(*PostgresTx).tx

	_, err := pgTx.Exec(ctx, `
		INSERT INTO orders (id, client, total_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, order.ID, order.Client, order.TotalPrice, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetOrder busca um pedido pelo ID, com seus itens
func (r *PostgresOrderRepository) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	var order Order
	err := r.db.QueryRow(ctx, `
		SELECT id, client, total_price, created_at, updated_at
		FROM orders WHERE id = $1
	`, orderID).Scan(&order.ID, &order.Client, &order.TotalPrice, &order.CreatedAt, &order.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NewNotFoundError("Pedido não encontrado")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.queryItems(ctx, r.db, orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

// GetOrderForUpdate busca um pedido com lock pessimista (FOR UPDATE),
// com seus itens, dentro da transação
func (r *PostgresOrderRepository) GetOrderForUpdate(ctx context.Context, tx Tx, orderID string) (*Order, error) {
	pgTx := tx.(*PostgresTx).tx

	var order Order
	err := pgTx.QueryRow(ctx, `
		SELECT id, client, total_price, created_at, updated_at
		FROM orders
		WHERE id = $1
		FOR UPDATE
	`, orderID).Scan(&order.ID, &order.Client, &order.TotalPrice, &order.CreatedAt, &order.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NewNotFoundError("Pedido não encontrado")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order with lock: %w", err)
	}

	items, err := r.queryItems(ctx, pgTx, orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

// ListOrders lista todos os pedidos com seus itens, mais recentes primeiro
func (r *PostgresOrderRepository) ListOrders(ctx context.Context) ([]Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, client, total_price, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		var order Order
		if err := rows.Scan(&order.ID, &order.Client, &order.TotalPrice, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.queryItems(ctx, r.db, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

// UpdateOrderTotal persiste o total recalculado do pedido
func (r *PostgresOrderRepository) UpdateOrderTotal(ctx context.Context, tx Tx, orderID string, total decimal.Decimal) error {
	pgTx := tx.(*PostgresTx).tx

	tag, err := pgTx.Exec(ctx, `
		UPDATE orders
		SET total_price = $1, updated_at = NOW()
		WHERE id = $2
	`, total, orderID)
	if err != nil {
		return fmt.Errorf("failed to update order total: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return NewNotFoundError("Pedido não encontrado")
	}
	return nil
}

// DeleteOrder remove o pedido. Os itens devem ter sido removidos antes,
// por causa da chave estrangeira.
func (r *PostgresOrderRepository) DeleteOrder(ctx context.Context, tx Tx, orderID string) error {
	pgTx := tx.(*PostgresTx).tx

	_, err := pgTx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

// CreateOrderItem insere um item de pedido com o snapshot do produto
func (r *PostgresOrderRepository) CreateOrderItem(ctx context.Context, tx Tx, item *OrderItem) error {
	pgTx := tx.(*PostgresTx).tx

	_, err := pgTx.Exec(ctx, `
		INSERT INTO order_items (id, order_id, product_id, product_name, amount, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, item.ID, item.OrderID, item.ProductID, item.ProductName, item.Amount, item.UnitPrice, item.TotalPrice)
	if err != nil {
		return fmt.Errorf("failed to create order item: %w", err)
	}
	return nil
}

// UpdateOrderItem atualiza a quantidade e o total do item
func (r *PostgresOrderRepository) UpdateOrderItem(ctx context.Context, tx Tx, item *OrderItem) error {
	pgTx := tx.(*PostgresTx).tx

	tag, err := pgTx.Exec(ctx, `
		UPDATE order_items
		SET amount = $1, total_price = $2
		WHERE id = $3
	`, item.Amount, item.TotalPrice, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update order item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return NewNotFoundError("Item do pedido não encontrado")
	}
	return nil
}

// DeleteOrderItem remove um item de pedido
func (r *PostgresOrderRepository) DeleteOrderItem(ctx context.Context, tx Tx, itemID string) error {
	pgTx := tx.(*PostgresTx).tx

	_, err := pgTx.Exec(ctx, `DELETE FROM order_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete order item: %w", err)
	}
	return nil
}

// DeleteOrderItems remove todos os itens do pedido
func (r *PostgresOrderRepository) DeleteOrderItems(ctx context.Context, tx Tx, orderID string) error {
	pgTx := tx.(*PostgresTx).tx

	_, err := pgTx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("failed to delete order items: %w", err)
	}
	return nil
}

// ListOrderItems lista os itens do pedido dentro da transação
func (r *PostgresOrderRepository) ListOrderItems(ctx context.Context, tx Tx, orderID string) ([]OrderItem, error) {
	pgTx := tx.(*PostgresTx).tx
	return r.queryItems(ctx, pgTx, orderID)
}

// querier cobre pool e transação para as consultas de itens
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *PostgresOrderRepository) queryItems(ctx context.Context, q querier, orderID string) ([]OrderItem, error) {
	rows, err := q.Query(ctx, `
		SELECT id, order_id, product_id, product_name, amount, unit_price, total_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	defer rows.Close()

	items := []OrderItem{}
	for rows.Next() {
		var item OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Amount, &item.UnitPrice, &item.TotalPrice)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
