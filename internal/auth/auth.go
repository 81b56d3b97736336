package auth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/goccy/go-json"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"
)

// Authenticator handles the device-code OAuth flow against Azure AD and
// keeps the resulting token in a file so the service survives restarts
// without re-prompting.
type Authenticator struct {
	cfg       *oauth2.Config
	tokenFile string
}

// New creates an authenticator for the given tenant and public client.
func New(tenant, clientID string, scopes []string, tokenFile string) *Authenticator {
	return &Authenticator{
		cfg: &oauth2.Config{
			ClientID: clientID,
			Endpoint: microsoft.AzureADEndpoint(tenant),
			Scopes:   scopes,
		},
		tokenFile: tokenFile,
	}
}

// Login runs the interactive device-code flow, printing the verification
// URL and user code to w, and saves the resulting token. It blocks until
// the user completes the flow in a browser or the context expires.
func (a *Authenticator) Login(ctx context.Context, w io.Writer) error {
	da, err := a.cfg.DeviceAuth(ctx)
	if err != nil {
		return fmt.Errorf("failed to start device code flow: %w", err)
	}

	fmt.Fprintf(w, "To sign in, use a web browser to open %s and enter the code %s\n",
		da.VerificationURI, da.UserCode)

	tok, err := a.cfg.DeviceAccessToken(ctx, da)
	if err != nil {
		return fmt.Errorf("device code flow failed: %w", err)
	}

	return saveToken(a.tokenFile, tok)
}

// TokenSource returns an auto-refreshing token source seeded from the token
// file. Refreshed tokens are written back to the file so the refresh token
// rotation is not lost.
func (a *Authenticator) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	tok, err := loadToken(a.tokenFile)
	if err != nil {
		return nil, fmt.Errorf("could not load token from %s: %w (run the auth command first)", a.tokenFile, err)
	}
	return &savingSource{
		src:  a.cfg.TokenSource(ctx, tok),
		path: a.tokenFile,
		last: tok.AccessToken,
	}, nil
}

// HTTPClient returns an HTTP client that injects and refreshes the bearer
// token on every request.
func (a *Authenticator) HTTPClient(ctx context.Context) (*http.Client, error) {
	ts, err := a.TokenSource(ctx)
	if err != nil {
		return nil, err
	}
	return oauth2.NewClient(ctx, ts), nil
}

// savingSource persists the token whenever the wrapped source hands out a
// new one.
type savingSource struct {
	src  oauth2.TokenSource
	path string

	mu   sync.Mutex
	last string
}

func (s *savingSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken != s.last {
		if err := saveToken(s.path, tok); err != nil {
			return nil, fmt.Errorf("failed to persist refreshed token: %w", err)
		}
		s.last = tok.AccessToken
	}
	return tok, nil
}

// saveToken writes the token as JSON with owner-only permissions.
func saveToken(path string, tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

func loadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tok := &oauth2.Token{}
	if err := json.Unmarshal(data, tok); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	return tok, nil
}
