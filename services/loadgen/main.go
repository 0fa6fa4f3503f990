package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// product espelha a resposta da API de produtos
type product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// order espelha a resposta da API de pedidos
type order struct {
	ID    string `json:"id"`
	Items []struct {
		ProductID string `json:"productId"`
		Amount    int    `json:"amount"`
	} `json:"items"`
}

type itemRequest struct {
	ProductID string `json:"productId"`
	Amount    int    `json:"amount"`
}

type orderRequest struct {
	Client string        `json:"client"`
	Items  []itemRequest `json:"items"`
}

// Gerador de carga da estoque-api: semeia produtos e dispara rodadas
// concorrentes de criação, atualização e exclusão de pedidos. Ao final
// verifica que nenhum produto ficou com estoque negativo.
func main() {
	baseURL := getEnv("API_URL", "http://localhost:3333")
	numProducts := getEnvInt("PRODUCTS", 5)
	numRounds := getEnvInt("ROUNDS", 50)
	concurrency := getEnvInt("CONCURRENCY", 10)
	initialStock := getEnvInt("INITIAL_STOCK", 1000)

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second)

	products := seedProducts(client, numProducts, initialStock)
	log.Printf("🌱 Seeded %d products with stock %d each", len(products), initialStock)

	var wg sync.WaitGroup
	var mu sync.Mutex
	created, failed := 0, 0

	rounds := make(chan int)
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)))
			for round := range rounds {
				ok := runRound(client, rng, products, round)
				mu.Lock()
				if ok {
					created++
				} else {
					failed++
				}
				mu.Unlock()
			}
		}(w)
	}

	start := time.Now()
	for i := 0; i < numRounds; i++ {
		rounds <- i
	}
	close(rounds)
	wg.Wait()

	log.Printf("🏁 %d rounds in %s | ok=%d failed=%d", numRounds, time.Since(start).Round(time.Millisecond), created, failed)
	verifyStock(client)
}

// seedProducts cria os produtos usados nas rodadas
func seedProducts(client *resty.Client, count, stock int) []product {
	products := make([]product, 0, count)
	for i := 0; i < count; i++ {
		var p product
		resp, err := client.R().
			SetBody(map[string]any{
				"name":  fmt.Sprintf("Produto %d", i+1),
				"price": 10.50 + float64(i),
				"stock": stock,
			}).
			SetResult(&p).
			Post("/products")
		if err != nil {
			log.Fatalf("Failed to seed product: %v", err)
		}
		if resp.IsError() {
			log.Fatalf("Failed to seed product: %s", resp.String())
		}
		products = append(products, p)
	}
	return products
}

// runRound cria um pedido com itens aleatórios, às vezes o atualiza
// (incluindo remoções com amount = 0) e às vezes o exclui
func runRound(client *resty.Client, rng *rand.Rand, products []product, round int) bool {
	items := []itemRequest{}
	picked := rng.Perm(len(products))[:1+rng.Intn(len(products))]
	for _, idx := range picked {
		items = append(items, itemRequest{ProductID: products[idx].ID, Amount: 1 + rng.Intn(3)})
	}

	var created order
	resp, err := client.R().
		SetBody(orderRequest{Client: fmt.Sprintf("Cliente %d", round), Items: items}).
		SetResult(&created).
		Post("/orders")
	if err != nil || resp.IsError() {
		return false
	}

	switch rng.Intn(3) {
	case 0:
		// Atualiza: primeiro item removido, demais com quantidade nova
		update := []itemRequest{}
		for i, item := range items {
			amount := 1 + rng.Intn(5)
			if i == 0 {
				amount = 0
			}
			update = append(update, itemRequest{ProductID: item.ProductID, Amount: amount})
		}
		resp, err = client.R().
			SetBody(map[string]any{"items": update}).
			Put("/orders/" + created.ID)
		if err != nil || (resp.IsError() && resp.StatusCode() != 409) {
			return false
		}
	case 1:
		resp, err = client.R().Delete("/orders/" + created.ID)
		if err != nil || resp.IsError() {
			return false
		}
	}
	return true
}

// verifyStock confere a invariante global: estoque nunca negativo
func verifyStock(client *resty.Client) {
	var products []product
	resp, err := client.R().SetResult(&products).Get("/products")
	if err != nil || resp.IsError() {
		log.Fatalf("Failed to list products: %v", err)
	}

	for _, p := range products {
		if p.Stock < 0 {
			log.Fatalf("❌ INVARIANT VIOLATED: product %s has negative stock %d", p.Name, p.Stock)
		}
	}
	log.Printf("✅ Stock invariant holds for %d products", len(products))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
