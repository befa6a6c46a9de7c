package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/menuplanner/backend/config"
	"github.com/menuplanner/backend/internal/domain"
	"github.com/menuplanner/backend/internal/infrastructure/memory"
	"github.com/menuplanner/backend/internal/usecase"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	// Set Gin to test mode once for all tests
	gin.SetMode(gin.TestMode)

	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:*"},
		},
		RateLimit: config.RateLimitConfig{PerIP: 6000, Burst: 1000},
	}
}

// setupTestRouter creates a router over fresh in-memory stores.
// client may be nil to simulate a missing USDA API key.
func setupTestRouter(client domain.USDAClient, storage Pinger) *gin.Engine {
	ingredientRepo := memory.NewIngredientStore()
	dishRepo := memory.NewDishStore()
	goalsRepo := memory.NewGoalsStore()

	ingredients := usecase.NewIngredientService(ingredientRepo)
	services := Services{
		Ingredients: ingredients,
		Dishes:      usecase.NewDishService(dishRepo, ingredientRepo),
		Menu:        usecase.NewMenuService(dishRepo, ingredientRepo, goalsRepo),
		Goals:       usecase.NewGoalsService(goalsRepo),
		Import: usecase.NewImportService(ingredients, newMockCacheRepository(), client, usecase.ImportServiceConfig{
			CacheTTL:               time.Hour,
			MinConfidenceThreshold: 40,
		}),
	}

	return SetupRouter(testConfig(), NewHandler(services, storage))
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(method, path, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("Failed to unmarshal response %q: %v", w.Body.String(), err)
	}
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("Status = %d, want %d (body: %s)", w.Code, want, w.Body.String())
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// seedCatalog adds Egg and Milk and an Omelette made of 60g egg and 20g milk
func seedCatalog(t *testing.T, router *gin.Engine) int64 {
	t.Helper()

	expectStatus(t, doJSON(t, router, "POST", "/api/v1/ingredients",
		`{"name":"Egg","nutrition":{"proteins":13,"fats":11,"carbohydrates":1}}`), http.StatusCreated)
	expectStatus(t, doJSON(t, router, "POST", "/api/v1/ingredients",
		`{"name":"Milk","nutrition":{"calories":42,"proteins":3.4,"fats":2.5,"carbohydrates":4.8}}`), http.StatusCreated)

	w := doJSON(t, router, "POST", "/api/v1/dishes",
		`{"name":"Omelette","ingredients":[{"name":"egg","amount":60},{"name":"Milk","amount":20}]}`)
	expectStatus(t, w, http.StatusCreated)

	var dish DishResponse
	decode(t, w, &dish)
	return dish.ID
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(ctx context.Context) error { return p.err }

// TestHealthCheckEndpoint tests the health check endpoint
func TestHealthCheckEndpoint(t *testing.T) {
	t.Run("returns healthy status", func(t *testing.T) {
		router := setupTestRouter(nil, nil)

		w := doJSON(t, router, "GET", "/health", "")
		expectStatus(t, w, http.StatusOK)

		var response map[string]interface{}
		decode(t, w, &response)

		if response["status"] != "healthy" {
			t.Errorf("status = %v, want healthy", response["status"])
		}
		if response["service"] != "menuplanner-backend" {
			t.Errorf("service = %v, want menuplanner-backend", response["service"])
		}
		version, ok := response["version"].(string)
		if !ok || strings.TrimSpace(version) == "" {
			t.Errorf("version = %v, want non-empty string", response["version"])
		}
	})

	t.Run("reports unavailable storage", func(t *testing.T) {
		router := setupTestRouter(nil, fakePinger{err: errors.New("connection refused")})

		w := doJSON(t, router, "GET", "/health", "")
		expectStatus(t, w, http.StatusServiceUnavailable)

		var response map[string]interface{}
		decode(t, w, &response)
		if response["status"] != "unhealthy" || response["storage"] != "unavailable" {
			t.Errorf("response = %v, want unhealthy with unavailable storage", response)
		}
	})

	t.Run("accepts GET requests only", func(t *testing.T) {
		router := setupTestRouter(nil, nil)

		for _, method := range []string{"POST", "PUT", "DELETE", "PATCH"} {
			w := doJSON(t, router, method, "/health", "")
			if w.Code != http.StatusNotFound {
				t.Errorf("Method %s: Status = %d, want %d", method, w.Code, http.StatusNotFound)
			}
		}
	})
}

func TestIngredientEndpoints(t *testing.T) {
	t.Run("create derives calories and rounds output", func(t *testing.T) {
		router := setupTestRouter(nil, nil)

		w := doJSON(t, router, "POST", "/api/v1/ingredients",
			`{"name":"Egg","nutrition":{"proteins":13,"fats":11,"carbohydrates":1}}`)
		expectStatus(t, w, http.StatusCreated)

		var ing IngredientResponse
		decode(t, w, &ing)
		if ing.ID == 0 || ing.Name != "Egg" {
			t.Errorf("ingredient = %+v, want Egg with an ID", ing)
		}
		if ing.Nutrition.Calories != 155 {
			t.Errorf("calories = %v, want 155", ing.Nutrition.Calories)
		}

		w = doJSON(t, router, "POST", "/api/v1/ingredients",
			`{"name":"Oats","nutrition":{"proteins":16.891,"fats":6.9,"carbohydrates":66.27}}`)
		expectStatus(t, w, http.StatusCreated)
		decode(t, w, &ing)
		if ing.Nutrition.Proteins != 16.89 {
			t.Errorf("proteins = %v, want 16.89", ing.Nutrition.Proteins)
		}
	})

	t.Run("duplicate name in another case is a conflict", func(t *testing.T) {
		router := setupTestRouter(nil, nil)
		seedCatalog(t, router)

		w := doJSON(t, router, "POST", "/api/v1/ingredients", `{"name":"EGG","nutrition":{"proteins":1}}`)
		expectStatus(t, w, http.StatusConflict)

		var response map[string]interface{}
		decode(t, w, &response)
		if response["status"] != "error" {
			t.Errorf("status = %v, want error", response["status"])
		}
		if id, _ := response["requestId"].(string); id == "" || id != w.Header().Get("X-Request-ID") {
			t.Errorf("requestId = %q, want the X-Request-ID header %q", id, w.Header().Get("X-Request-ID"))
		}
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		router := setupTestRouter(nil, nil)

		bodies := []string{
			`{invalid json}`,
			`{"nutrition":{"proteins":1}}`,
			`{"name":"Bad","nutrition":{"proteins":-1}}`,
			`{"name":"Salt/Pepper","nutrition":{"proteins":1}}`,
		}
		for _, body := range bodies {
			w := doJSON(t, router, "POST", "/api/v1/ingredients", body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("body %s: Status = %d, want %d", body, w.Code, http.StatusBadRequest)
			}
		}
	})

	t.Run("get update and delete by name ignore case", func(t *testing.T) {
		router := setupTestRouter(nil, nil)
		seedCatalog(t, router)

		w := doJSON(t, router, "GET", "/api/v1/ingredients/MILK", "")
		expectStatus(t, w, http.StatusOK)
		var ing IngredientResponse
		decode(t, w, &ing)
		if ing.Name != "Milk" || ing.Nutrition.Calories != 42 {
			t.Errorf("ingredient = %+v, want Milk with 42 kcal", ing)
		}

		w = doJSON(t, router, "PUT", "/api/v1/ingredients/milk", `{"proteins":3,"fats":1,"carbohydrates":5}`)
		expectStatus(t, w, http.StatusOK)
		decode(t, w, &ing)
		if ing.Name != "Milk" || ing.Nutrition.Calories != 41 {
			t.Errorf("updated = %+v, want Milk with derived 41 kcal", ing)
		}

		expectStatus(t, doJSON(t, router, "DELETE", "/api/v1/ingredients/Milk", ""), http.StatusNoContent)
		expectStatus(t, doJSON(t, router, "GET", "/api/v1/ingredients/Milk", ""), http.StatusNotFound)
		expectStatus(t, doJSON(t, router, "DELETE", "/api/v1/ingredients/Milk", ""), http.StatusNotFound)
		expectStatus(t, doJSON(t, router, "PUT", "/api/v1/ingredients/Milk", `{"proteins":1}`), http.StatusNotFound)
	})

	t.Run("list and search", func(t *testing.T) {
		router := setupTestRouter(nil, nil)
		for _, name := range []string{"banana", "Apple", "apricot", "Cherry"} {
			expectStatus(t, doJSON(t, router, "POST", "/api/v1/ingredients",
				fmt.Sprintf(`{"name":%q,"nutrition":{"carbohydrates":10}}`, name)), http.StatusCreated)
		}

		w := doJSON(t, router, "GET", "/api/v1/ingredients?skip=1&limit=2", "")
		expectStatus(t, w, http.StatusOK)
		var list []IngredientResponse
		decode(t, w, &list)
		if len(list) != 2 || list[0].Name != "apricot" || list[1].Name != "banana" {
			t.Errorf("page = %+v, want [apricot banana]", list)
		}

		w = doJSON(t, router, "GET", "/api/v1/ingredients?search=AP", "")
		expectStatus(t, w, http.StatusOK)
		decode(t, w, &list)
		if len(list) != 2 || list[0].Name != "Apple" || list[1].Name != "apricot" {
			t.Errorf("search = %+v, want [Apple apricot]", list)
		}
	})

	t.Run("rejects out of range pagination", func(t *testing.T) {
		router := setupTestRouter(nil, nil)

		for _, query := range []string{"limit=0", "limit=101", "skip=-1", "limit=abc"} {
			w := doJSON(t, router, "GET", "/api/v1/ingredients?"+query, "")
			if w.Code != http.StatusBadRequest {
				t.Errorf("%s: Status = %d, want %d", query, w.Code, http.StatusBadRequest)
			}
		}
	})
}

func TestDishEndpoints(t *testing.T) {
	t.Run("create returns totals with canonical names", func(t *testing.T) {
		router := setupTestRouter(nil, nil)
		id := seedCatalog(t, router)

		w := doJSON(t, router, "GET", fmt.Sprintf("/api/v1/dishes/%d", id), "")
		expectStatus(t, w, http.StatusOK)

		var dish DishResponse
		decode(t, w, &dish)
		if dish.Name != "Omelette" || dish.Weight != 80 {
			t.Errorf("dish = %+v, want Omelette weighing 80g", dish)
		}
		if !approx(dish.Nutrition.Calories, 101.4) || !approx(dish.Nutrition.Proteins, 8.48) ||
			!approx(dish.Nutrition.Fats, 7.1) || !approx(dish.Nutrition.Carbohydrates, 1.56) {
			t.Errorf("nutrition = %+v, want 101.4/8.48/7.1/1.56", dish.Nutrition)
		}
		if len(dish.Ingredients) != 2 || dish.Ingredients[0].Name != "Egg" || dish.Ingredients[1].Name != "Milk" {
			t.Errorf("ingredients = %+v, want [Egg Milk]", dish.Ingredients)
		}
	})

	t.Run("validation failures", func(t *testing.T) {
		router := setupTestRouter(nil, nil)
		seedCatalog(t, router)

		tests := []struct {
			name string
			body string
			want int
		}{
			{"unknown ingredient", `{"name":"Bacon Eggs","ingredients":[{"name":"Egg","amount":50},{"name":"Bacon","amount":30}]}`, http.StatusBadRequest},
			{"empty composition", `{"name":"Nothing","ingredients":[]}`, http.StatusBadRequest},
			{"zero amount", `{"name":"Air","ingredients":[{"name":"Egg","amount":0}]}`, http.StatusBadRequest},
			{"duplicate name", `{"name":"omelette","ingredients":[{"name":"Egg","amount":50}]}`, http.StatusConflict},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				w := doJSON(t, router, "POST", "/api/v1/dishes", tt.body)
				expectStatus(t, w, tt.want)
			})
		}

		w := doJSON(t, router, "POST", "/api/v1/dishes",
			`{"name":"Bacon Eggs","ingredients":[{"name":"Bacon","amount":30}]}`)
		var response map[string]interface{}
		decode(t, w, &response)
		if msg, _ := response["error"].(string); !strings.Contains(msg, "Bacon") {
			t.Errorf("error = %q, want it to name Bacon", msg)
		}
	})

	t.Run("replace composition", func(t *testing.T) {
		router := setupTestRouter(nil, nil)
		id := seedCatalog(t, router)
		path := fmt.Sprintf("/api/v1/dishes/%d/ingredients", id)

		w := doJSON(t, router, "PUT", path, `{"ingredients":[{"name":"Egg","amount":100}]}`)
		expectStatus(t, w, http.StatusOK)
		var dish DishResponse
		decode(t, w, &dish)
		if dish.Weight != 100 || dish.Nutrition.Calories != 155 || len(dish.Ingredients) != 1 {
			t.Errorf("dish = %+v, want only 100g egg", dish)
		}

		expectStatus(t, doJSON(t, router, "PUT", path, `{"ingredients":[]}`), http.StatusBadRequest)
		expectStatus(t, doJSON(t, router, "PUT", "/api/v1/dishes/999/ingredients",
			`{"ingredients":[{"name":"Egg","amount":100}]}`), http.StatusNotFound)
	})

	t.Run("rename", func(t *testing.T) {
		router := setupTestRouter(nil, nil)
		id := seedCatalog(t, router)
		expectStatus(t, doJSON(t, router, "POST", "/api/v1/dishes",
			`{"name":"Scrambled","ingredients":[{"name":"Egg","amount":120}]}`), http.StatusCreated)

		path := fmt.Sprintf("/api/v1/dishes/%d", id)
		expectStatus(t, doJSON(t, router, "PATCH", path, `{"name":"OMELETTE"}`), http.StatusOK)
		expectStatus(t, doJSON(t, router, "PATCH", path, `{"name":"scrambled"}`), http.StatusConflict)
		expectStatus(t, doJSON(t, router, "PATCH", path, `{"name":""}`), http.StatusBadRequest)
		expectStatus(t, doJSON(t, router, "PATCH", "/api/v1/dishes/abc", `{"name":"x"}`), http.StatusBadRequest)
	})

	t.Run("deleted ingredient leaves a line without nutrition", func(t *testing.T) {
		router := setupTestRouter(nil, nil)
		id := seedCatalog(t, router)

		expectStatus(t, doJSON(t, router, "DELETE", "/api/v1/ingredients/Milk", ""), http.StatusNoContent)

		w := doJSON(t, router, "GET", fmt.Sprintf("/api/v1/dishes/%d", id), "")
		expectStatus(t, w, http.StatusOK)
		var dish DishResponse
		decode(t, w, &dish)
		if dish.Weight != 80 || !approx(dish.Nutrition.Calories, 93) {
			t.Errorf("dish = %+v, want weight 80 and 93 kcal", dish)
		}
		if len(dish.Ingredients) != 2 || dish.Ingredients[1].Nutrition != nil {
			t.Errorf("ingredients = %+v, want Milk without nutrition", dish.Ingredients)
		}
	})

	t.Run("list with totals and delete", func(t *testing.T) {
		router := setupTestRouter(nil, nil)
		id := seedCatalog(t, router)

		w := doJSON(t, router, "GET", "/api/v1/dishes?search=OME", "")
		expectStatus(t, w, http.StatusOK)
		var list []DishResponse
		decode(t, w, &list)
		if len(list) != 1 || !approx(list[0].Nutrition.Calories, 101.4) {
			t.Errorf("search = %+v, want Omelette with 101.4 kcal", list)
		}

		path := fmt.Sprintf("/api/v1/dishes/%d", id)
		expectStatus(t, doJSON(t, router, "DELETE", path, ""), http.StatusNoContent)
		expectStatus(t, doJSON(t, router, "GET", path, ""), http.StatusNotFound)
		expectStatus(t, doJSON(t, router, "DELETE", path, ""), http.StatusNotFound)

		w = doJSON(t, router, "GET", "/api/v1/dishes", "")
		expectStatus(t, w, http.StatusOK)
		decode(t, w, &list)
		if len(list) != 0 {
			t.Errorf("dishes = %+v, want none", list)
		}
	})
}

func TestMenuEndpoints(t *testing.T) {
	t.Run("aggregates portions and skips unknown dishes", func(t *testing.T) {
		router := setupTestRouter(nil, nil)
		id := seedCatalog(t, router)

		w := doJSON(t, router, "POST", "/api/v1/menu",
			fmt.Sprintf(`{"dishes":[{"id":999,"portions":1},{"id":%d,"portions":2}]}`, id))
		expectStatus(t, w, http.StatusOK)

		var menu MenuResponse
		decode(t, w, &menu)
		if len(menu.Dishes) != 1 || menu.Dishes[0].Name != "Omelette" || menu.Dishes[0].Portions != 2 {
			t.Errorf("dishes = %+v, want one Omelette x2", menu.Dishes)
		}
		want := []ShoppingItemResponse{{Name: "Egg", Amount: 120}, {Name: "Milk", Amount: 40}}
		if len(menu.ShoppingList) != 2 || menu.ShoppingList[0] != want[0] || menu.ShoppingList[1] != want[1] {
			t.Errorf("shoppingList = %+v, want %+v", menu.ShoppingList, want)
		}
		if !approx(menu.TotalNutrition.Calories, 202.8) {
			t.Errorf("calories = %v, want 202.8", menu.TotalNutrition.Calories)
		}
		if menu.GoalProgress != nil {
			t.Errorf("goalProgress = %+v, want none without goals", menu.GoalProgress)
		}
	})

	t.Run("empty selection", func(t *testing.T) {
		router := setupTestRouter(nil, nil)

		w := doJSON(t, router, "POST", "/api/v1/menu", `{"dishes":[]}`)
		expectStatus(t, w, http.StatusOK)

		var response map[string]interface{}
		decode(t, w, &response)
		if dishes, ok := response["dishes"].([]interface{}); !ok || len(dishes) != 0 {
			t.Errorf("dishes = %v, want []", response["dishes"])
		}
		if items, ok := response["shoppingList"].([]interface{}); !ok || len(items) != 0 {
			t.Errorf("shoppingList = %v, want []", response["shoppingList"])
		}
	})

	t.Run("rejects zero and negative portions", func(t *testing.T) {
		router := setupTestRouter(nil, nil)
		id := seedCatalog(t, router)

		for _, portions := range []int{0, -2} {
			w := doJSON(t, router, "POST", "/api/v1/menu", fmt.Sprintf(`{"dishes":[{"id":%d,"portions":%d}]}`, id, portions))
			expectStatus(t, w, http.StatusBadRequest)
		}
	})

	t.Run("omitted portions count as one", func(t *testing.T) {
		router := setupTestRouter(nil, nil)
		id := seedCatalog(t, router)

		w := doJSON(t, router, "POST", "/api/v1/menu", fmt.Sprintf(`{"dishes":[{"id":%d}]}`, id))
		expectStatus(t, w, http.StatusOK)

		var menu MenuResponse
		decode(t, w, &menu)
		if len(menu.Dishes) != 1 || menu.Dishes[0].Portions != 1 {
			t.Fatalf("dishes = %+v, want one portion", menu.Dishes)
		}
		if len(menu.ShoppingList) != 2 || menu.ShoppingList[0].Amount != 60 {
			t.Errorf("shoppingList = %+v, want Egg 60", menu.ShoppingList)
		}
		if !approx(menu.TotalNutrition.Calories, 101.4) {
			t.Errorf("calories = %v, want 101.4", menu.TotalNutrition.Calories)
		}
	})

	t.Run("reports goal progress", func(t *testing.T) {
		router := setupTestRouter(nil, nil)
		id := seedCatalog(t, router)

		expectStatus(t, doJSON(t, router, "PUT", "/api/v1/goals", `{"calories":2000,"proteins":50}`), http.StatusOK)

		w := doJSON(t, router, "GET", "/api/v1/goals", "")
		expectStatus(t, w, http.StatusOK)
		var goals GoalsResponse
		decode(t, w, &goals)
		if goals.Calories != 2000 || goals.Proteins != 50 || goals.Fats != 0 {
			t.Errorf("goals = %+v, want 2000 kcal and 50g protein", goals)
		}

		w = doJSON(t, router, "POST", "/api/v1/menu", fmt.Sprintf(`{"dishes":[{"id":%d,"portions":2}]}`, id))
		expectStatus(t, w, http.StatusOK)
		var menu MenuResponse
		decode(t, w, &menu)
		if menu.GoalProgress == nil || menu.GoalProgress.Calories == nil || *menu.GoalProgress.Calories != 10.14 {
			t.Fatalf("goalProgress = %+v, want 10.14%% of calories", menu.GoalProgress)
		}
		if menu.GoalProgress.Fats != nil {
			t.Errorf("fats progress = %v, want omitted without a goal", *menu.GoalProgress.Fats)
		}

		expectStatus(t, doJSON(t, router, "PUT", "/api/v1/goals", `{"calories":-1}`), http.StatusBadRequest)
	})

	t.Run("renders the shopping list as PDF", func(t *testing.T) {
		router := setupTestRouter(nil, nil)
		id := seedCatalog(t, router)

		w := doJSON(t, router, "POST", "/api/v1/menu/pdf", fmt.Sprintf(`{"dishes":[{"id":%d,"portions":1}]}`, id))
		expectStatus(t, w, http.StatusOK)

		if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("Content-Type = %q, want application/pdf", ct)
		}
		if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")) {
			t.Error("body does not start with a PDF header")
		}
		if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "shopping-list.pdf") {
			t.Errorf("Content-Disposition = %q", cd)
		}
	})
}

// --- Mock implementations for the import endpoint ---

// mockCacheRepository is a mock implementation of domain.CacheRepository
type mockCacheRepository struct {
	data map[string]interface{}
}

func newMockCacheRepository() *mockCacheRepository {
	return &mockCacheRepository{data: make(map[string]interface{})}
}

func (m *mockCacheRepository) Get(ctx context.Context, key string) (interface{}, error) {
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *mockCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *mockCacheRepository) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *mockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

// mockUSDAClient is a mock implementation of domain.USDAClient
type mockUSDAClient struct {
	searchResult *domain.USDASearchResponse
	searchError  error
}

func (m *mockUSDAClient) SearchFoods(ctx context.Context, query string) (*domain.USDASearchResponse, error) {
	if m.searchError != nil {
		return nil, m.searchError
	}
	return m.searchResult, nil
}

func (m *mockUSDAClient) GetFoodDetails(ctx context.Context, fdcID string) (*domain.USDAFood, error) {
	return nil, domain.ErrProductNotFound
}

func TestImportEndpoint(t *testing.T) {
	eggSearch := &domain.USDASearchResponse{
		Foods: []domain.USDAFood{
			{
				FdcID:       171287,
				Description: "Egg, whole, raw, fresh",
				DataType:    "SR Legacy",
				Nutrients: []domain.USDANutrient{
					{NutrientID: 1008, Value: 143, UnitName: "KCAL"},
					{NutrientID: 1003, Value: 12.56, UnitName: "G"},
					{NutrientID: 1004, Value: 9.51, UnitName: "G"},
					{NutrientID: 1005, Value: 0.72, UnitName: "G"},
				},
			},
		},
	}

	t.Run("returns 503 without an API key", func(t *testing.T) {
		router := setupTestRouter(nil, nil)

		w := doJSON(t, router, "POST", "/api/v1/ingredients/import", `{"query":"egg"}`)
		expectStatus(t, w, http.StatusServiceUnavailable)
	})

	t.Run("creates the ingredient from the best match", func(t *testing.T) {
		router := setupTestRouter(&mockUSDAClient{searchResult: eggSearch}, nil)

		w := doJSON(t, router, "POST", "/api/v1/ingredients/import", `{"query":"egg","name":"Egg"}`)
		expectStatus(t, w, http.StatusCreated)

		var response ImportResponse
		decode(t, w, &response)
		if response.Ingredient.Name != "Egg" || response.Ingredient.Nutrition.Calories != 143 {
			t.Errorf("ingredient = %+v, want Egg with 143 kcal", response.Ingredient)
		}
		if response.Match.FdcID != 171287 {
			t.Errorf("match = %+v, want fdcId 171287", response.Match)
		}

		expectStatus(t, doJSON(t, router, "GET", "/api/v1/ingredients/egg", ""), http.StatusOK)
		expectStatus(t, doJSON(t, router, "POST", "/api/v1/ingredients/import", `{"query":"egg","name":"EGG"}`), http.StatusConflict)
	})

	t.Run("returns 422 for a low confidence match", func(t *testing.T) {
		router := setupTestRouter(&mockUSDAClient{searchResult: &domain.USDASearchResponse{
			Foods: []domain.USDAFood{{FdcID: 1, Description: "Broccoli, raw", DataType: "Foundation"}},
		}}, nil)

		w := doJSON(t, router, "POST", "/api/v1/ingredients/import", `{"query":"chocolate cake"}`)
		expectStatus(t, w, http.StatusUnprocessableEntity)
		expectStatus(t, doJSON(t, router, "GET", "/api/v1/ingredients/chocolate%20cake", ""), http.StatusNotFound)
	})

	t.Run("returns 502 for USDA API failure", func(t *testing.T) {
		router := setupTestRouter(&mockUSDAClient{searchError: domain.ErrUSDAAPIFailure}, nil)

		w := doJSON(t, router, "POST", "/api/v1/ingredients/import", `{"query":"egg"}`)
		expectStatus(t, w, http.StatusBadGateway)

		var response map[string]interface{}
		decode(t, w, &response)
		if response["error"] != "USDA API temporarily unavailable" {
			t.Errorf("error = %v, want 'USDA API temporarily unavailable'", response["error"])
		}
	})

	t.Run("returns 404 when USDA has no match", func(t *testing.T) {
		router := setupTestRouter(&mockUSDAClient{searchError: domain.ErrProductNotFound}, nil)

		w := doJSON(t, router, "POST", "/api/v1/ingredients/import", `{"query":"xyz123"}`)
		expectStatus(t, w, http.StatusNotFound)
	})

	t.Run("requires a query", func(t *testing.T) {
		router := setupTestRouter(&mockUSDAClient{searchResult: eggSearch}, nil)

		expectStatus(t, doJSON(t, router, "POST", "/api/v1/ingredients/import", `{"name":"Egg"}`), http.StatusBadRequest)
	})
}

// TestRecoveryMiddleware tests panic recovery
func TestRecoveryMiddleware(t *testing.T) {
	t.Run("recovers from panic without crashing server", func(t *testing.T) {
		router := setupTestRouter(nil, nil)

		router.GET("/panic", func(c *gin.Context) {
			panic("test panic")
		})

		w := doJSON(t, router, "GET", "/panic", "")
		if w.Code != http.StatusInternalServerError {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusInternalServerError)
		}
	})
}

// TestCORSIntegration tests CORS headers work end-to-end with full router
func TestCORSIntegration(t *testing.T) {
	router := setupTestRouter(nil, nil)

	req, _ := http.NewRequest("GET", "/api/v1/dishes", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	expectStatus(t, w, http.StatusOK)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "http://localhost:5173")
	}
}

// TestAPIVersioning tests that API routes are only served under /api/v1
func TestAPIVersioning(t *testing.T) {
	router := setupTestRouter(nil, nil)

	for _, path := range []string{"/api/ingredients", "/ingredients", "/api/v2/ingredients"} {
		w := doJSON(t, router, "GET", path, "")
		if w.Code != http.StatusNotFound {
			t.Errorf("Path %s: Status = %d, want %d", path, w.Code, http.StatusNotFound)
		}
	}
}

// TestJSONResponses tests that error and success responses are valid JSON
func TestJSONResponses(t *testing.T) {
	endpoints := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/api/v1/ingredients"},
		{"GET", "/api/v1/ingredients/unknown"},
		{"GET", "/api/v1/goals"},
	}

	for _, endpoint := range endpoints {
		t.Run(endpoint.method+" "+endpoint.path, func(t *testing.T) {
			router := setupTestRouter(nil, nil)

			w := doJSON(t, router, endpoint.method, endpoint.path, "")

			gotContentType := w.Header().Get("Content-Type")
			wantContentType := "application/json; charset=utf-8"
			if gotContentType != wantContentType {
				t.Errorf("Content-Type = %q, want %q", gotContentType, wantContentType)
			}

			var response interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Errorf("Response should be valid JSON, got error: %v", err)
			}
		})
	}
}
