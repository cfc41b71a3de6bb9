package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/apolenov/webstore/internal/cart"
	"github.com/apolenov/webstore/internal/models"
	"github.com/apolenov/webstore/internal/render"
	"github.com/apolenov/webstore/internal/store"
)

type testEnv struct {
	T       *testing.T
	E       *echo.Echo
	Catalog *CatalogHandler
	Cart    *CartHandler
	DB      *gorm.DB
}

func InitTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
		return nil
	}

	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newTestEnv(t *testing.T) *testEnv {
	db := InitTestDB(t)

	products := []models.Product{
		{Name: "T-Shirt", Price: decimal.NewFromInt(20), Image: "tshirt.jpg"},
		{Name: "Shoes", Price: decimal.NewFromInt(50), Image: "shoes.jpg"},
		{Name: "Watch", Price: decimal.NewFromInt(100), Image: "watch.jpg"},
	}
	require.NoError(t, db.Create(&products).Error)

	renderer, err := render.New()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer

	productStore := &store.ProductStore{DB: db}
	sessions := &cart.Codec{Secret: []byte("test_secret")}

	return &testEnv{
		T:       t,
		E:       e,
		DB:      db,
		Catalog: &CatalogHandler{Store: productStore},
		Cart: &CartHandler{
			Store:    productStore,
			Sessions: sessions,
			Redirect: "/cart",
		},
	}
}

func (env *testEnv) doRequest(path string, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		if ck != nil {
			req.AddCookie(ck)
		}
	}
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "cart_session" {
			return ck
		}
	}
	return nil
}

// addToCart drives /add/:id and hands back the re-issued session cookie.
func (env *testEnv) addToCart(id string, ck *http.Cookie) *http.Cookie {
	rec, c := env.doRequest("/add/"+id, ck)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(env.T, env.Cart.AddToCart(c))
	require.Equal(env.T, http.StatusFound, rec.Code)

	next := sessionCookie(rec)
	require.NotNil(env.T, next)
	return next
}

func TestGetCatalog(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doRequest("/")
	require.NoError(t, env.Catalog.GetCatalog(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.Contains(t, body, "T-Shirt")
	require.Contains(t, body, "Shoes")
	require.Contains(t, body, "Watch")
	require.Contains(t, body, `href="/add/1"`)
}

func TestAddToCartRedirects(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doRequest("/add/1")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.Cart.AddToCart(c))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/cart", rec.Header().Get(echo.HeaderLocation))
	require.NotNil(t, sessionCookie(rec))
}

func TestAddToCartInvalidID(t *testing.T) {
	env := newTestEnv(t)

	for _, bad := range []string{"abc", "", "-1", "1.5"} {
		_, c := env.doRequest("/add/" + bad)
		c.SetParamNames("id")
		c.SetParamValues(bad)

		err := env.Cart.AddToCart(c)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok, "expected HTTPError for %q", bad)
		require.Equal(t, http.StatusBadRequest, he.Code)
	}
}

func TestCartTotalsDuplicates(t *testing.T) {
	env := newTestEnv(t)

	ck := env.addToCart("1", nil)
	ck = env.addToCart("3", ck)
	ck = env.addToCart("1", ck)

	rec, c := env.doRequest("/cart", ck)
	require.NoError(t, env.Cart.GetCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.Equal(t, 2, strings.Count(body, "<h3>T-Shirt</h3>"))
	require.Equal(t, 1, strings.Count(body, "<h3>Watch</h3>"))
	require.Contains(t, body, "Total: $140")
	require.Contains(t, body, `href="/checkout"`)
}

func TestCartSkipsUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	ck := env.addToCart("999", nil)

	rec, c := env.doRequest("/cart", ck)
	require.NoError(t, env.Cart.GetCart(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Your cart is empty.")
}

func TestCartWithoutSession(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doRequest("/cart")
	require.NoError(t, env.Cart.GetCart(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Your cart is empty.")
}

func TestCheckoutClearsCart(t *testing.T) {
	env := newTestEnv(t)

	ck := env.addToCart("1", nil)

	rec, c := env.doRequest("/checkout", ck)
	require.NoError(t, env.Cart.Checkout(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Order Confirmed!")

	cleared := sessionCookie(rec)
	require.NotNil(t, cleared)
	require.Empty(t, cleared.Value)

	rec, c = env.doRequest("/cart", cleared)
	require.NoError(t, env.Cart.GetCart(c))
	require.Contains(t, rec.Body.String(), "Your cart is empty.")
}

func TestCheckoutOnEmptyCart(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doRequest("/checkout")
	require.NoError(t, env.Cart.Checkout(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Order Confirmed!")

	// a second checkout in a row is a no-op clear, same confirmation
	rec, c = env.doRequest("/checkout", sessionCookie(rec))
	require.NoError(t, env.Cart.Checkout(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Order Confirmed!")
}
