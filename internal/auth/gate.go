package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"time"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	// CookieName holds the signed admin session.
	CookieName = "admin_session"
	// SessionTTL is how long a login stays valid.
	SessionTTL = 7 * 24 * time.Hour

	LoginPath = "/admin/login"

	// InvalidCredentials is shown for every failed login, whatever the cause.
	InvalidCredentials = "Usuario o contraseña incorrectos"
)

type Config struct {
	Username string
	Password string
	// PasswordHash is a bcrypt hash; when set it replaces Password.
	PasswordHash string
	Secret       []byte
	Secure       bool
}

// Gate is the single admin switch: a request is either anonymous or carries a
// valid session cookie.
type Gate struct {
	cfg Config
	log *zap.Logger
	now func() time.Time
}

func NewGate(cfg Config, log *zap.Logger) *Gate {
	if len(cfg.Secret) == 0 {
		cfg.Secret = make([]byte, 32)
		if _, err := rand.Read(cfg.Secret); err != nil {
			panic(err)
		}
		log.Warn("SESSION_SECRET not set, sessions will not survive a restart")
	}
	return &Gate{cfg: cfg, log: log, now: time.Now}
}

func (g *Gate) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.cfg.Username)) == 1
	var passOK bool
	if g.cfg.PasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(g.cfg.PasswordHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(g.cfg.Password)) == 1
	}
	return userOK && passOK
}

// Login sets the session cookie when the pair matches the configured
// credential. It reports whether the caller is now authenticated.
func (g *Gate) Login(c *fiber.Ctx, username, password string) bool {
	if !g.checkCredentials(username, password) {
		g.log.Info("admin login rejected", zap.String("ip", c.IP()))
		return false
	}

	expires := g.now().Add(SessionTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(g.now()),
		ExpiresAt: jwt.NewNumericDate(expires),
	})
	signed, err := token.SignedString(g.cfg.Secret)
	if err != nil {
		g.log.Error("failed to sign session", zap.Error(err))
		return false
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(SessionTTL.Seconds()),
		HTTPOnly: true,
		Secure:   g.cfg.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	g.log.Info("admin logged in", zap.String("ip", c.IP()))
	return true
}

// Logout removes the session cookie.
func (g *Gate) Logout(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   g.cfg.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (g *Gate) IsAuthenticated(c *fiber.Ctx) bool {
	raw := c.Cookies(CookieName)
	if raw == "" {
		return false
	}
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return g.cfg.Secret, nil
	})
	return err == nil && token.Valid
}

// RequireAPI rejects anonymous requests with 401 JSON.
func (g *Gate) RequireAPI() fiber.Handler {
	return g.middleware(func(c *fiber.Ctx, err error) error {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	})
}

// RequirePage sends anonymous browsers to the login form.
func (g *Gate) RequirePage() fiber.Handler {
	return g.middleware(func(c *fiber.Ctx, err error) error {
		return c.Redirect(LoginPath, fiber.StatusSeeOther)
	})
}

func (g *Gate) middleware(deny fiber.ErrorHandler) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    g.cfg.Secret,
		SigningMethod: "HS256",
		TokenLookup:   "cookie:" + CookieName,
		Claims:        &jwt.RegisteredClaims{},
		ErrorHandler:  deny,
	})
}
