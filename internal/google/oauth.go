package google

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
)

const cacheDirName = "mailfold"

// accountNamePattern restricts account names to filename-safe characters.
var accountNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// validateAccountName rejects account names that could escape the token
// directory or collide with other files.
func validateAccountName(account string) error {
	if account == "" {
		return fmt.Errorf("account name cannot be empty")
	}
	if !accountNamePattern.MatchString(account) {
		return fmt.Errorf("invalid account name %q: only letters, digits, hyphen and underscore are allowed", account)
	}
	return nil
}

// getTokenFilePath returns the token file for an account, one file per
// account under the user cache directory.
func getTokenFilePath(account string) string {
	return filepath.Join(userCacheDir(), cacheDirName, "google-"+account+".token")
}

// HasTokenForAccount checks if a token file exists for the specified account.
func HasTokenForAccount(account string) bool {
	if err := validateAccountName(account); err != nil {
		return false
	}
	_, err := os.ReadFile(getTokenFilePath(account))
	return err == nil
}

// HasToken checks if a valid OAuth token exists for the default account.
func HasToken() bool {
	return HasTokenForAccount("default")
}

// MigrateDefaultToken moves a pre-multi-account token file to the
// per-account naming scheme. Safe to call when there is nothing to migrate.
func MigrateDefaultToken() error {
	oldFile := filepath.Join(userCacheDir(), cacheDirName, "google.token")
	newFile := getTokenFilePath("default")

	if _, err := os.Stat(oldFile); os.IsNotExist(err) {
		return nil
	}
	if _, err := os.Stat(newFile); err == nil {
		// Both exist; the per-account file wins, drop the legacy one.
		return os.Remove(oldFile)
	}
	return os.Rename(oldFile, newFile)
}

// GetAuthenticationErrorMessage returns the user-facing instruction for a
// missing or invalid token.
func GetAuthenticationErrorMessage(account string) string {
	return fmt.Sprintf("no valid Google OAuth token found for account %q. "+
		"Run the google_get_auth_url tool, authorize in the browser, then pass the code to google_save_auth_code with account=%q.",
		account, account)
}

// getOAuthConfig builds the OAuth2 configuration from the environment.
// Client credentials are never hardcoded; they come from GOOGLE_CLIENT_ID
// and GOOGLE_CLIENT_SECRET.
func getOAuthConfig() (*oauth2.Config, error) {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set")
	}

	const oob = "urn:ietf:wg:oauth:2.0:oob"
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  oob,
		Scopes: []string{
			gmail.MailGoogleComScope,                                  // Gmail access (includes send)
			"https://www.googleapis.com/auth/gmail.settings.basic",    // Send-as settings (signature)
			"https://www.googleapis.com/auth/contacts.readonly",       // Google Contacts access
			"https://www.googleapis.com/auth/contacts.other.readonly", // Other contacts (interaction history)
			"https://www.googleapis.com/auth/directory.readonly",      // Directory contacts (Workspace)
		},
	}, nil
}

// GetAuthURL returns the OAuth URL for user authorization.
func GetAuthURL() (string, error) {
	conf, err := getOAuthConfig()
	if err != nil {
		return "", err
	}
	return conf.AuthCodeURL("state"), nil
}

// SaveTokenForAccount exchanges an authorization code for tokens and saves
// them under the given account.
func SaveTokenForAccount(ctx context.Context, account, authCode string) error {
	if err := validateAccountName(account); err != nil {
		return err
	}
	conf, err := getOAuthConfig()
	if err != nil {
		return err
	}

	t, err := conf.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("failed to exchange auth code: %w", err)
	}

	tokenFile := getTokenFilePath(account)
	if err := os.MkdirAll(filepath.Dir(tokenFile), 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tokenData := t.AccessToken + " " + t.RefreshToken
	if err := os.WriteFile(tokenFile, []byte(tokenData), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// SaveToken exchanges an authorization code and saves the token for the
// default account.
func SaveToken(ctx context.Context, authCode string) error {
	return SaveTokenForAccount(ctx, "default", authCode)
}

// GetTokenSourceForAccount returns an OAuth2 token source backed by the
// stored token of the given account.
func GetTokenSourceForAccount(ctx context.Context, account string) (oauth2.TokenSource, error) {
	if err := validateAccountName(account); err != nil {
		return nil, err
	}
	conf, err := getOAuthConfig()
	if err != nil {
		return nil, err
	}

	slurp, err := os.ReadFile(getTokenFilePath(account))
	if err != nil {
		return nil, fmt.Errorf("%s", GetAuthenticationErrorMessage(account))
	}

	f := strings.Fields(strings.TrimSpace(string(slurp)))
	if len(f) != 2 {
		return nil, fmt.Errorf("invalid token format for account %q", account)
	}

	ts := conf.TokenSource(ctx, &oauth2.Token{
		AccessToken:  f[0],
		TokenType:    "Bearer",
		RefreshToken: f[1],
		Expiry:       time.Unix(1, 0),
	})

	if _, err := ts.Token(); err != nil {
		slog.Warn("cached token invalid", "account", account, "error", err)
		return nil, fmt.Errorf("cached token for account %q is invalid: %w", account, err)
	}
	return ts, nil
}

// GetTokenSource returns a token source for the default account.
func GetTokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	return GetTokenSourceForAccount(ctx, "default")
}

// GetHTTPClientForAccount returns an HTTP client carrying OAuth2
// authentication for the given account. The client is pinned to HTTP/1.1
// to avoid HTTP/2 protocol errors against the Google frontends.
func GetHTTPClientForAccount(ctx context.Context, account string) (*http.Client, error) {
	ts, err := GetTokenSourceForAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	client := oauth2.NewClient(ctx, ts)
	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
	}
	return client, nil
}

// GetHTTPClient returns an authenticated HTTP client for the default account.
func GetHTTPClient(ctx context.Context) (*http.Client, error) {
	return GetHTTPClientForAccount(ctx, "default")
}

func userCacheDir() string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir(), "Library", "Caches")
	case "windows":
		for _, ev := range []string{"TEMP", "TMP"} {
			if v := os.Getenv(ev); v != "" {
				return v
			}
		}
		panic("No Windows TEMP or TMP environment variables found")
	}
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return xdg
	}
	return filepath.Join(homeDir(), ".cache")
}

func homeDir() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
	}
	return os.Getenv("HOME")
}
