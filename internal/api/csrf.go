package api

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// CSRFConfig holds the CSRF protection settings.
type CSRFConfig struct {
	TokenLength    int
	TokenTTL       time.Duration
	HeaderName     string
	CookieName     string
	CookieSecure   bool
	CookieSameSite http.SameSite
}

// DefaultCSRFConfig returns the default settings. CookieSecure stays
// false for development; production deployments sit behind the HTTPS
// redirect.
func DefaultCSRFConfig() *CSRFConfig {
	return &CSRFConfig{
		TokenLength:    32,
		TokenTTL:       24 * time.Hour,
		HeaderName:     "X-CSRF-Token",
		CookieName:     "csrf_token",
		CookieSecure:   false,
		CookieSameSite: http.SameSiteStrictMode,
	}
}

// CSRFStore tracks issued tokens until they expire.
type CSRFStore struct {
	tokens map[string]time.Time
	mu     sync.RWMutex
	config *CSRFConfig
	stop   chan struct{}
}

// NewCSRFStore creates the store and starts the expiry sweeper.
func NewCSRFStore(config *CSRFConfig) *CSRFStore {
	store := &CSRFStore{
		tokens: make(map[string]time.Time),
		config: config,
		stop:   make(chan struct{}),
	}
	go store.sweepExpired()
	return store
}

// Stop terminates the expiry sweeper.
func (s *CSRFStore) Stop() {
	close(s.stop)
}

// GenerateToken mints and records a new token.
func (s *CSRFStore) GenerateToken() (string, error) {
	raw := make([]byte, s.config.TokenLength)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(raw)

	s.mu.Lock()
	s.tokens[token] = time.Now().Add(s.config.TokenTTL)
	s.mu.Unlock()

	return token, nil
}

// ValidateToken reports whether the token was issued by this store and
// has not expired.
func (s *CSRFStore) ValidateToken(token string) bool {
	if token == "" {
		return false
	}

	s.mu.RLock()
	expiresAt, exists := s.tokens[token]
	s.mu.RUnlock()

	if !exists {
		return false
	}
	if time.Now().After(expiresAt) {
		s.mu.Lock()
		delete(s.tokens, token)
		s.mu.Unlock()
		return false
	}
	return true
}

func (s *CSRFStore) sweepExpired() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for token, expiresAt := range s.tokens {
				if now.After(expiresAt) {
					delete(s.tokens, token)
				}
			}
			s.mu.Unlock()
		}
	}
}

// CSRFMiddleware protects mutating methods: the request must echo the
// session-bound cookie token in the configured header, compared in
// constant time, and the token must still be live in the store. Safe
// methods pass through.
func CSRFMiddleware(store *CSRFStore) gin.HandlerFunc {
	config := store.config

	return func(c *gin.Context) {
		c.Set("csrf_store", store)

		if c.Request.Method == http.MethodGet ||
			c.Request.Method == http.MethodHead ||
			c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		headerToken := c.GetHeader(config.HeaderName)
		cookieToken, err := c.Cookie(config.CookieName)
		if err != nil || headerToken == "" ||
			subtle.ConstantTimeCompare([]byte(headerToken), []byte(cookieToken)) != 1 ||
			!store.ValidateToken(headerToken) {
			Fail(c, http.StatusForbidden, T(c, "error.csrf"), nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// IssueCSRFToken mints a token, binds it to the session via cookie, and
// returns it for the client script to echo in the header.
func IssueCSRFToken(c *gin.Context, store *CSRFStore) (string, error) {
	token, err := store.GenerateToken()
	if err != nil {
		return "", err
	}

	config := store.config
	c.SetSameSite(config.CookieSameSite)
	c.SetCookie(
		config.CookieName,
		token,
		int(config.TokenTTL.Seconds()),
		"/",
		"",
		config.CookieSecure,
		true, // HttpOnly
	)

	return token, nil
}
