package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	usersdomain "github.com/tuwebai/tuweb-backend/internal/users/domain"
)

const stateCookie = "oauth_state"

// verify confirms a user's email from the token mailed at signup.
func (h *Handler) verify(c *gin.Context) {
	token := c.Param("token")
	u, err := h.users.GetByVerificationToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, usersdomain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "invalid or expired verification link"})
			return
		}
		log.Printf("[auth] verify lookup: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "verification unavailable"})
		return
	}

	u.EmailVerified = true
	u.VerificationToken = ""
	if err := h.users.Update(c.Request.Context(), u); err != nil {
		log.Printf("[auth] verify update: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "verification unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"email": u.Email, "verified": true}})
}

// devVerify flips the verified flag by email, bypassing the token. Only
// registered outside production.
func (h *Handler) devVerify(c *gin.Context) {
	email := c.Param("email")
	u, err := h.users.GetByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, usersdomain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		log.Printf("[auth] dev-verify lookup: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "verification unavailable"})
		return
	}

	u.EmailVerified = true
	u.VerificationToken = ""
	if err := h.users.Update(c.Request.Context(), u); err != nil {
		log.Printf("[auth] dev-verify update: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "verification unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"email": u.Email, "verified": true}})
}

// googleLogin starts the OAuth code flow.
func (h *Handler) googleLogin(c *gin.Context) {
	if h.oauth == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "google login not configured"})
		return
	}

	state := randomState()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, 600, "/", "", h.production, true)
	c.Redirect(http.StatusFound, h.oauth.AuthCodeURL(state))
}

// googleCallback exchanges the code, reads the Google profile and ensures
// a local user exists for it.
func (h *Handler) googleCallback(c *gin.Context) {
	if h.oauth == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "google login not configured"})
		return
	}

	state, err := c.Cookie(stateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "state mismatch"})
		return
	}
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing authorization code"})
		return
	}

	ctx := c.Request.Context()
	tok, err := h.oauth.Exchange(ctx, code)
	if err != nil {
		log.Printf("[auth] oauth exchange: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not complete google login"})
		return
	}

	info, err := fetchGoogleProfile(ctx, h.oauth, tok)
	if err != nil {
		log.Printf("[auth] google profile: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not complete google login"})
		return
	}

	u, err := h.users.Ensure(ctx, "google:"+info.Sub, info.Email)
	if err != nil {
		log.Printf("[auth] ensure user: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "could not complete google login"})
		return
	}
	if u.Name == "" && info.Name != "" {
		u.Name = info.Name
		if err := h.users.Update(ctx, u); err != nil {
			log.Printf("[auth] update name: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"uid":   u.UID,
		"email": u.Email,
		"name":  u.Name,
	}})
}

type googleProfile struct {
	Sub   string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func fetchGoogleProfile(ctx context.Context, cfg *oauth2.Config, tok *oauth2.Token) (*googleProfile, error) {
	resp, err := cfg.Client(ctx, tok).Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo: status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return nil, fmt.Errorf("read userinfo: %w", err)
	}

	var p googleProfile
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}
	if p.Sub == "" || p.Email == "" {
		return nil, fmt.Errorf("userinfo missing id or email")
	}
	return &p, nil
}

func randomState() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "fallback-state"
	}
	return hex.EncodeToString(b)
}
