package handlers

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"rafiq/internal/config"
	"rafiq/internal/service"
)

// OAuthProvider defines provider configuration and metadata
type OAuthProvider struct {
	Name        string
	Config      *oauth2.Config
	UserInfoURL string
	AuthParams  map[string]string
}

type oauthUserInfo struct {
	Subject   string
	Email     string
	FirstName string
	LastName  string
}

// OAuthFlow drives the guardian OAuth sign-in for Google and Apple.
// After the callback the browser is redirected back to the web app
// with the token pair in the URL fragment.
type OAuthFlow struct {
	authService     *service.AuthService
	providers       map[string]OAuthProvider
	redirectBaseURL string
	appBaseURL      string
}

// NewOAuthFlow creates the OAuth flow from provider configuration
func NewOAuthFlow(authService *service.AuthService, cfg *config.Config) *OAuthFlow {
	return &OAuthFlow{
		authService:     authService,
		redirectBaseURL: cfg.OAuthRedirectBaseURL,
		appBaseURL:      cfg.AppBaseURL,
		providers: map[string]OAuthProvider{
			"google": {
				Name: "google",
				Config: &oauth2.Config{
					ClientID:     cfg.GoogleClientID,
					ClientSecret: cfg.GoogleClientSecret,
					Scopes:       []string{"openid", "email", "profile"},
					Endpoint:     google.Endpoint,
				},
				UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
			},
			"apple": {
				Name: "apple",
				Config: &oauth2.Config{
					ClientID:     cfg.AppleClientID,
					ClientSecret: cfg.AppleClientSecret,
					Scopes:       []string{"name", "email"},
					Endpoint: oauth2.Endpoint{
						AuthURL:  "https://appleid.apple.com/auth/authorize",
						TokenURL: "https://appleid.apple.com/auth/token",
					},
				},
				AuthParams: map[string]string{"response_mode": "query"},
			},
		},
	}
}

// StartOAuth handles GET /api/auth/oauth/{provider}/start
func (h *AuthHandler) StartOAuth(w http.ResponseWriter, r *http.Request) {
	providerKey := r.PathValue("provider")
	provider, ok := h.oauth.providers[providerKey]
	if !ok || provider.Config.ClientID == "" || provider.Config.ClientSecret == "" {
		writeError(w, http.StatusBadRequest, "OAuth provider not configured", nil)
		return
	}

	state := randomState()
	nonce := randomState()
	setTempCookie(w, "oauth_state", state, 10*time.Minute)
	setTempCookie(w, "oauth_nonce", nonce, 10*time.Minute)

	config := *provider.Config
	config.RedirectURL = h.oauth.callbackURL(providerKey)

	options := []oauth2.AuthCodeOption{oauth2.AccessTypeOnline}
	for key, value := range provider.AuthParams {
		options = append(options, oauth2.SetAuthURLParam(key, value))
	}
	if providerKey == "apple" {
		options = append(options, oauth2.SetAuthURLParam("nonce", nonce))
	}

	http.Redirect(w, r, config.AuthCodeURL(state, options...), http.StatusFound)
}

// OAuthCallback handles GET /api/auth/oauth/{provider}/callback
func (h *AuthHandler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	providerKey := r.PathValue("provider")
	provider, ok := h.oauth.providers[providerKey]
	if !ok || provider.Config.ClientID == "" || provider.Config.ClientSecret == "" {
		writeError(w, http.StatusBadRequest, "OAuth provider not configured", nil)
		return
	}

	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "missing authorization code", nil)
		return
	}
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || stateCookie.Value != state {
		writeError(w, http.StatusBadRequest, "invalid OAuth state", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	config := *provider.Config
	config.RedirectURL = h.oauth.callbackURL(providerKey)

	token, err := config.Exchange(ctx, code)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to exchange OAuth code", nil)
		return
	}

	userInfo, err := h.oauth.fetchUserInfo(ctx, providerKey, provider, token, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	clearTempCookie(w, "oauth_state")
	clearTempCookie(w, "oauth_nonce")

	_, pair, err := h.authService.OAuthLogin(providerKey, userInfo.Subject, userInfo.Email, userInfo.FirstName, userInfo.LastName)
	if err != nil {
		respondError(w, err)
		return
	}

	// Hand tokens to the web app via the URL fragment so they never
	// reach server logs
	redirect := fmt.Sprintf("%s/auth/oauth#%s", strings.TrimRight(h.oauth.appBaseURL, "/"), url.Values{
		"access_token":  []string{pair.AccessToken},
		"refresh_token": []string{pair.RefreshToken},
	}.Encode())
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

func (f *OAuthFlow) callbackURL(providerKey string) string {
	return fmt.Sprintf("%s/api/auth/oauth/%s/callback", strings.TrimRight(f.redirectBaseURL, "/"), providerKey)
}

func (f *OAuthFlow) fetchUserInfo(ctx context.Context, providerKey string, provider OAuthProvider, token *oauth2.Token, r *http.Request) (oauthUserInfo, error) {
	switch providerKey {
	case "google":
		return fetchGoogleUser(ctx, provider, token)
	case "apple":
		return fetchAppleUser(ctx, provider, token, r)
	default:
		return oauthUserInfo{}, errors.New("unsupported OAuth provider")
	}
}

func fetchGoogleUser(ctx context.Context, provider OAuthProvider, token *oauth2.Token) (oauthUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	resp, err := client.Get(provider.UserInfoURL)
	if err != nil {
		return oauthUserInfo{}, errors.New("failed to fetch Google user info")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return oauthUserInfo{}, errors.New("failed to fetch Google user info")
	}

	var payload struct {
		ID         string `json:"id"`
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return oauthUserInfo{}, errors.New("failed to parse Google user info")
	}

	return oauthUserInfo{
		Subject:   payload.ID,
		Email:     payload.Email,
		FirstName: payload.GivenName,
		LastName:  payload.FamilyName,
	}, nil
}

func fetchAppleUser(ctx context.Context, provider OAuthProvider, token *oauth2.Token, r *http.Request) (oauthUserInfo, error) {
	idToken, _ := token.Extra("id_token").(string)
	if idToken == "" {
		return oauthUserInfo{}, errors.New("missing Apple id_token")
	}

	nonce := ""
	if cookie, err := r.Cookie("oauth_nonce"); err == nil {
		nonce = cookie.Value
	}

	claims, err := parseAppleIDToken(ctx, idToken, provider.Config.ClientID, nonce)
	if err != nil {
		return oauthUserInfo{}, err
	}
	return oauthUserInfo{Subject: claims.Subject, Email: claims.Email}, nil
}

type appleTokenClaims struct {
	jwt.RegisteredClaims
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Nonce         string `json:"nonce"`
}

type appleJWK struct {
	Keys []appleJWKKey `json:"keys"`
}

type appleJWKKey struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type appleParsedClaims struct {
	Subject string
	Email   string
}

func parseAppleIDToken(ctx context.Context, idToken, clientID, nonce string) (appleParsedClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"RS256"}))
	claims := &appleTokenClaims{}

	parsedToken, err := parser.ParseWithClaims(idToken, claims, func(token *jwt.Token) (interface{}, error) {
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("missing key id")
		}
		return fetchApplePublicKey(ctx, kid)
	})
	if err != nil || !parsedToken.Valid {
		return appleParsedClaims{}, errors.New("invalid Apple token")
	}

	if claims.Issuer != "https://appleid.apple.com" {
		return appleParsedClaims{}, errors.New("invalid Apple issuer")
	}
	if !audienceContains(claims.Audience, clientID) {
		return appleParsedClaims{}, errors.New("invalid Apple audience")
	}
	if nonce != "" && claims.Nonce != "" && claims.Nonce != nonce {
		return appleParsedClaims{}, errors.New("invalid Apple nonce")
	}
	if claims.Email == "" {
		return appleParsedClaims{}, errors.New("Apple email not available")
	}

	return appleParsedClaims{Subject: claims.Subject, Email: claims.Email}, nil
}

func audienceContains(audience jwt.ClaimStrings, value string) bool {
	for _, entry := range audience {
		if entry == value {
			return true
		}
	}
	return false
}

func fetchApplePublicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://appleid.apple.com/auth/keys", nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("failed to fetch Apple public keys")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var jwk appleJWK
	if err := json.Unmarshal(body, &jwk); err != nil {
		return nil, err
	}

	for _, key := range jwk.Keys {
		if key.Kid != kid {
			continue
		}
		if key.Kty != "RSA" {
			return nil, errors.New("unexpected key type")
		}
		modulusBytes, err := base64.RawURLEncoding.DecodeString(key.N)
		if err != nil {
			return nil, err
		}
		exponentBytes, err := base64.RawURLEncoding.DecodeString(key.E)
		if err != nil {
			return nil, err
		}
		exponent := 0
		for _, b := range exponentBytes {
			exponent = exponent*256 + int(b)
		}
		return &rsa.PublicKey{
			N: new(big.Int).SetBytes(modulusBytes),
			E: exponent,
		}, nil
	}

	return nil, errors.New("Apple public key not found")
}

func randomState() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

func setTempCookie(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
	})
}

func clearTempCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
