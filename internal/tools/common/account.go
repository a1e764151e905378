package common

import (
	"context"
)

// GetAccountFromArgs extracts the account name from request arguments.
// Falls back to "default", the account name used when google_save_auth_code
// is called without an explicit account.
func GetAccountFromArgs(_ context.Context, args map[string]interface{}) string {
	if accountVal, ok := args["account"].(string); ok && accountVal != "" {
		return accountVal
	}
	return "default"
}
