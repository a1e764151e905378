// Package google_tools exposes the OAuth token bootstrap as MCP tools.
// google_get_auth_url hands the user an authorization URL and
// google_save_auth_code exchanges the resulting code for a token file,
// keyed by account name so several Google accounts can coexist.
package google_tools
