package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"dampit-rental/pkg/utils"
)

const userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// Profile is the identity returned by the provider after consent.
type Profile struct {
	FirstName string `json:"given_name"`
	LastName  string `json:"family_name"`
	Email     string `json:"email"`
	Avatar    string `json:"picture"`
}

// IdentityProvider abstracts the OAuth consent/exchange flow.
type IdentityProvider interface {
	AuthURL(state string) string
	FetchProfile(ctx context.Context, code string) (*Profile, error)
}

type googleProvider struct {
	config *oauth2.Config
}

// NewGoogleProvider builds an IdentityProvider for Google sign-in.
func NewGoogleProvider(config utils.OAuthConfig) IdentityProvider {
	return &googleProvider{
		config: &oauth2.Config{
			ClientID:     config.GoogleClientID,
			ClientSecret: config.GoogleClientSecret,
			RedirectURL:  config.GoogleCallbackURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     google.Endpoint,
		},
	}
}

func (g *googleProvider) AuthURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (g *googleProvider) FetchProfile(ctx context.Context, code string) (*Profile, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange oauth code: %w", err)
	}

	client := g.config.Client(ctx, token)
	resp, err := client.Get(userinfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}

	return &profile, nil
}
