package cart

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const cookieName = "cart_session"

type Claims struct {
	Items []int `json:"cart"`
	jwt.RegisteredClaims
}

// Codec carries the cart in an HS256-signed cookie. There is no server-side
// session table: the signed token is the session.
type Codec struct {
	Secret []byte
}

// Snapshot returns the cart ids in insertion order. A missing, malformed or
// badly-signed cookie is the same as never having had a cart.
func (s *Codec) Snapshot(c echo.Context) []int {
	cookie, err := c.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(cookie.Value, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return s.Secret, nil
	})
	if err != nil || !token.Valid {
		return nil
	}
	return claims.Items
}

// Add appends id to the cart, creating it if absent, and re-issues the
// cookie. Duplicates are kept: two adds of the same product are two entries.
func (s *Codec) Add(c echo.Context, id int) ([]int, error) {
	items := append(s.Snapshot(c), id)
	if err := s.write(c, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Clear drops the cookie entirely so subsequent reads behave as if the
// session never had a cart.
func (s *Codec) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

func (s *Codec) write(c echo.Context, items []int) error {
	claims := Claims{
		Items: items,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
