package jwt

import (
	"crypto/hmac"
	"crypto/sha256"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/iotaledger/hive.go/ierrors"
)

const (
	// ContextKeyClaims is the key under which the Middleware stores the verified claims.
	ContextKeyClaims = "jwtClaims"

	authScheme = "Bearer"
)

var (
	// ErrJWTInvalidClaims is returned when the claims of a token are invalid.
	ErrJWTInvalidClaims = echo.NewHTTPError(http.StatusUnauthorized, "invalid jwt claims")
	// ErrJWTMissing is returned when a protected route is called without a token.
	ErrJWTMissing = echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed jwt")
)

// AuthClaims are the claims of an API token. The subject is the address the holder acts as.
type AuthClaims struct {
	jwt.StandardClaims
}

// Address returns the address the token was issued for.
func (c *AuthClaims) Address() string {
	return c.Subject
}

type Auth struct {
	issuer         string
	sessionTimeout time.Duration
	secret         []byte
}

// NewAuth derives the HMAC secret from the salt and the issuer. A sessionTimeout of 0 issues tokens
// that never expire.
func NewAuth(salt string, sessionTimeout time.Duration, issuer string) (*Auth, error) {
	if len(salt) == 0 {
		return nil, ierrors.New("salt must not be empty")
	}

	if len(issuer) == 0 {
		return nil, ierrors.New("issuer must not be empty")
	}

	mac := hmac.New(sha256.New, []byte(salt))
	if _, err := mac.Write([]byte(issuer)); err != nil {
		return nil, ierrors.Wrap(err, "failed to derive jwt secret")
	}

	return &Auth{
		issuer:         issuer,
		sessionTimeout: sessionTimeout,
		secret:         mac.Sum(nil),
	}, nil
}

// IssueJWT returns a signed token for the given subject.
func (j *Auth) IssueJWT(subject string) (string, error) {
	now := time.Now()

	claims := &AuthClaims{
		StandardClaims: jwt.StandardClaims{
			Subject:   subject,
			Issuer:    j.issuer,
			IssuedAt:  now.Unix(),
			NotBefore: now.Unix(),
		},
	}

	if j.sessionTimeout > 0 {
		claims.ExpiresAt = now.Add(j.sessionTimeout).Unix()
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
}

// VerifyJWT checks the signature, the issuer and the time based claims of the token.
func (j *Auth) VerifyJWT(token string) (*AuthClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierrors.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return j.secret, nil
	})
	if err != nil {
		return nil, ierrors.Wrap(err, "failed to parse jwt")
	}

	claims, ok := parsed.Claims.(*AuthClaims)
	if !ok || !parsed.Valid {
		return nil, ErrJWTInvalidClaims
	}

	if !claims.VerifyIssuer(j.issuer, true) || len(claims.Subject) == 0 {
		return nil, ErrJWTInvalidClaims
	}

	return claims, nil
}

// Middleware verifies the bearer token of every request that is not skipped and stores the claims
// in the context. The allow func can reject a valid token for a specific route.
func (j *Auth) Middleware(skipper middleware.Skipper, allow func(c echo.Context, claims *AuthClaims) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper(c) {
				// public routes still see the claims of a valid token
				if token, err := bearerToken(c); err == nil {
					if claims, err := j.VerifyJWT(token); err == nil {
						c.Set(ContextKeyClaims, claims)
					}
				}

				return next(c)
			}

			token, err := bearerToken(c)
			if err != nil {
				return err
			}

			claims, err := j.VerifyJWT(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error()).SetInternal(err)
			}

			if !allow(c, claims) {
				return ErrJWTInvalidClaims
			}

			c.Set(ContextKeyClaims, claims)

			return next(c)
		}
	}
}

// ClaimsFromContext returns the claims the Middleware stored in the context.
func ClaimsFromContext(c echo.Context) (*AuthClaims, bool) {
	claims, ok := c.Get(ContextKeyClaims).(*AuthClaims)

	return claims, ok
}

func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, authScheme) || len(token) == 0 {
		return "", ErrJWTMissing
	}

	return token, nil
}
