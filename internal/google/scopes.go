package google

// DefaultOAuthScopes are the Google OAuth scopes required for full
// functionality. These scopes are used consistently across the application
// for OAuth configurations.
//
// The scopes provide access to:
//   - Gmail: read, modify, send, settings
//   - Contacts: read-only (including other contacts and directory)
var DefaultOAuthScopes = []string{
	// OpenID Connect scopes (required for user info)
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",

	// Gmail scopes
	"https://mail.google.com/", // Full Gmail access (includes send)
	"https://www.googleapis.com/auth/gmail.readonly",
	"https://www.googleapis.com/auth/gmail.modify",
	"https://www.googleapis.com/auth/gmail.send",
	"https://www.googleapis.com/auth/gmail.settings.basic",

	// Contacts scopes
	"https://www.googleapis.com/auth/contacts.readonly",
	"https://www.googleapis.com/auth/contacts.other.readonly",
	"https://www.googleapis.com/auth/directory.readonly",
}
