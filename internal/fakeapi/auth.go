package fakeapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/giriraj47/helpstudyabroad/internal/upstream"
)

// account pairs a user record with its bcrypt-hashed password.
type account struct {
	profile      upstream.Profile
	passwordHash string
}

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID  int    `json:"userId"`
	Refresh bool   `json:"refresh,omitempty"`
	Name    string `json:"username"`
}

// tokenIssuer mints and parses the HS256 bearer tokens the upstream
// hands out. Access tokens honor expiresInMins; refresh tokens last a
// week.
type tokenIssuer struct {
	secret []byte
}

func newTokenIssuer(secret string) *tokenIssuer {
	return &tokenIssuer{secret: []byte(secret)}
}

func (t *tokenIssuer) mint(userID int, username string, ttl time.Duration, refresh bool) (string, error) {
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "fakeapi",
		},
		UserID:  userID,
		Refresh: refresh,
		Name:    username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *tokenIssuer) parse(tokenString string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

type loginRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	ExpiresInMins int    `json:"expiresInMins"`
}

type refreshRequest struct {
	RefreshToken  string `json:"refreshToken"`
	ExpiresInMins int    `json:"expiresInMins"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	acct, ok := s.findAccount(req.Username)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.passwordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}

	ttl := time.Duration(req.ExpiresInMins) * time.Minute
	if ttl <= 0 {
		ttl = time.Hour
	}

	accessToken, err := s.tokens.mint(acct.profile.ID, acct.profile.Username, ttl, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Token generation failed"})
		return
	}
	refreshToken, err := s.tokens.mint(acct.profile.ID, acct.profile.Username, 7*24*time.Hour, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Token generation failed"})
		return
	}

	c.JSON(http.StatusOK, upstream.LoginResult{
		ID:           acct.profile.ID,
		Username:     acct.profile.Username,
		Email:        acct.profile.Email,
		FirstName:    acct.profile.FirstName,
		LastName:     acct.profile.LastName,
		Gender:       acct.profile.Gender,
		Image:        acct.profile.Image,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

func (s *Server) me(c *gin.Context) {
	bearer, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !found || bearer == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	claims, err := s.tokens.parse(bearer)
	if err != nil || claims.Refresh {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
		return
	}

	acct, ok := s.findAccountByID(claims.UserID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, acct.profile)
}

func (s *Server) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Refresh token required"})
		return
	}

	claims, err := s.tokens.parse(req.RefreshToken)
	if err != nil || !claims.Refresh {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid refresh token"})
		return
	}

	ttl := time.Duration(req.ExpiresInMins) * time.Minute
	if ttl <= 0 {
		ttl = time.Hour
	}

	accessToken, err := s.tokens.mint(claims.UserID, claims.Name, ttl, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Token generation failed"})
		return
	}
	refreshToken, err := s.tokens.mint(claims.UserID, claims.Name, 7*24*time.Hour, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Token generation failed"})
		return
	}

	c.JSON(http.StatusOK, upstream.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

func (s *Server) findAccount(username string) (account, bool) {
	for _, acct := range s.accounts {
		if acct.profile.Username == username {
			return acct, true
		}
	}
	return account{}, false
}

func (s *Server) findAccountByID(id int) (account, bool) {
	for _, acct := range s.accounts {
		if acct.profile.ID == id {
			return acct, true
		}
	}
	return account{}, false
}
