// Package silae implements the payroll API client: OAuth2 client-credentials
// authentication and accounting-journal retrieval per dossier and period.
package silae

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/payflow-importer/internal/config"
	"github.com/payflow-importer/internal/domain/payroll"
	"github.com/payflow-importer/internal/secrets"
)

// Secret names resolved through the secret provider
const (
	SecretClientID        = "SILAE_CLIENT_ID"
	SecretClientSecret    = "SILAE_CLIENT_SECRET"
	SecretSubscriptionKey = "SILAE_SUBSCRIPTION_KEY"
)

const journalPath = "/EcrituresComptables/EcrituresComptables4"

// Credentials is the credential set for the payroll API, global to a batch
// run (not tenant-scoped).
type Credentials struct {
	ClientID        string
	ClientSecret    string
	SubscriptionKey string
}

// LoadCredentials resolves the three Silae secrets from the provider
func LoadCredentials(ctx context.Context, provider secrets.Provider) (Credentials, error) {
	clientID, err := provider.Get(ctx, SecretClientID)
	if err != nil {
		return Credentials{}, fmt.Errorf("load silae credentials: %w", err)
	}
	clientSecret, err := provider.Get(ctx, SecretClientSecret)
	if err != nil {
		return Credentials{}, fmt.Errorf("load silae credentials: %w", err)
	}
	subscriptionKey, err := provider.Get(ctx, SecretSubscriptionKey)
	if err != nil {
		return Credentials{}, fmt.Errorf("load silae credentials: %w", err)
	}
	return Credentials{
		ClientID:        clientID,
		ClientSecret:    clientSecret,
		SubscriptionKey: subscriptionKey,
	}, nil
}

// AuthError indicates the token endpoint rejected the credentials. Code and
// Description carry the provider's structured error when present.
type AuthError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *AuthError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("silae authentication failed: %s - %s", e.Code, e.Description)
	}
	return fmt.Sprintf("silae authentication failed (status %d): %s", e.StatusCode, e.Description)
}

// APIError indicates a non-2xx response from the payroll API. Body preserves
// the provider's error payload, already bounded for logging.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("silae api error (status %d): %s", e.StatusCode, e.Body)
}

// Client authenticates against the payroll API and opens fetch sessions
type Client struct {
	cfg    config.SilaeConfig
	logger *slog.Logger
}

// NewClient creates a payroll API client from configuration
func NewClient(logger *slog.Logger, cfg config.SilaeConfig) *Client {
	return &Client{
		cfg:    cfg,
		logger: logger,
	}
}

// Authenticate exchanges client credentials for a bearer token and returns a
// session bound to it. One session is valid across many journal fetches
// within a batch run.
func (c *Client) Authenticate(ctx context.Context, creds Credentials) (*Session, error) {
	conf := &clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     c.cfg.AuthURL,
		Scopes:       []string{c.cfg.Scope},
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	authClient := &http.Client{Timeout: c.cfg.AuthTimeout}
	token, err := conf.Token(context.WithValue(ctx, oauth2.HTTPClient, authClient))
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			authErr := &AuthError{
				Code:        retrieveErr.ErrorCode,
				Description: retrieveErr.ErrorDescription,
			}
			if retrieveErr.Response != nil {
				authErr.StatusCode = retrieveErr.Response.StatusCode
			}
			if authErr.Code == "" && authErr.Description == "" {
				authErr.Description = string(retrieveErr.Body)
			}
			return nil, authErr
		}
		return nil, fmt.Errorf("silae token request: %w", err)
	}
	if token.AccessToken == "" {
		return nil, &AuthError{Description: "token endpoint returned an empty access token"}
	}

	c.logger.Debug("silae token obtained", "expires", token.Expiry)

	return &Session{
		token:           token.AccessToken,
		subscriptionKey: creds.SubscriptionKey,
		apiURL:          c.cfg.APIURL,
		httpClient:      &http.Client{Timeout: c.cfg.FetchTimeout},
		logger:          c.logger,
	}, nil
}

// Session is an authenticated payroll API session
type Session struct {
	token           string
	subscriptionKey string
	apiURL          string
	httpClient      *http.Client
	logger          *slog.Logger
}

// journalRequest is the fetch request body. The analytic-breakdown flag is
// always off: the import works on plain accounting lines.
type journalRequest struct {
	NumeroDossier                        string `json:"numeroDossier"`
	PeriodeDebut                         string `json:"periodeDebut"`
	PeriodeFin                           string `json:"periodeFin"`
	AvecToutesLesRepartitionsAnalytiques bool   `json:"avecToutesLesRepartitionsAnalytiques"`
}

// FetchJournal retrieves the payroll journal for one dossier and period.
// A response without breaks decodes to a journal reporting HasNoData; that
// is a valid "nothing to import" outcome, not an error.
func (s *Session) FetchJournal(ctx context.Context, dossier string, period payroll.Period) (*payroll.Journal, error) {
	body := journalRequest{
		NumeroDossier: dossier,
		PeriodeDebut:  period.Start().Format("2006-01-02"),
		PeriodeFin:    period.End().Format("2006-01-02"),
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode journal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL+journalPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build journal request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Ocp-Apim-Subscription-Key", s.subscriptionKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("dossiers", dossier)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch payroll journal (dossier %s): %w", dossier, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		s.logger.Error("silae journal fetch rejected",
			"dossier", dossier,
			"period", period.String(),
			"status", resp.StatusCode,
		)
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var journal payroll.Journal
	if err := json.NewDecoder(resp.Body).Decode(&journal); err != nil {
		return nil, fmt.Errorf("decode payroll journal (dossier %s): %w", dossier, err)
	}

	s.logger.Debug("silae journal fetched",
		"dossier", dossier,
		"period", period.String(),
		"breaks", len(journal.Breaks),
	)

	return &journal, nil
}
