package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// GoogleClaims holds the verified fields of a Google ID token
type GoogleClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	Audience      string `json:"aud"`
}

// GoogleVerifier verifies a Google ID token and returns its claims.
// The interface exists so tests can stub the verification round trip.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleClaims, error)
}

// googleTokenVerifier verifies ID tokens against Google's tokeninfo endpoint
type googleTokenVerifier struct {
	clientID   string
	httpClient *http.Client
}

// NewGoogleVerifier creates a tokeninfo-backed verifier
func NewGoogleVerifier(clientID string) GoogleVerifier {
	return &googleTokenVerifier{
		clientID: clientID,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (v *googleTokenVerifier) Verify(ctx context.Context, idToken string) (*GoogleClaims, error) {
	endpoint := googleTokenInfoURL + "?id_token=" + url.QueryEscape(idToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrGoogleTokenInvalid
	}

	var claims GoogleClaims
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return nil, err
	}

	// Token must have been minted for this app
	if v.clientID != "" && claims.Audience != v.clientID {
		return nil, errors.New("google token audience mismatch")
	}
	if claims.EmailVerified != "true" {
		return nil, errors.New("google account email is not verified")
	}

	return &claims, nil
}
