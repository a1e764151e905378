// Package google provides OAuth2 authentication and token management for Google APIs.
//
// Tokens are stored one file per account under the user cache directory.
// OAuth client credentials come from the GOOGLE_CLIENT_ID and
// GOOGLE_CLIENT_SECRET environment variables and are never hardcoded.
//
// The TokenProvider interface allows different token sources to be plugged in,
// keeping Google API access independent of where the token came from.
package google
