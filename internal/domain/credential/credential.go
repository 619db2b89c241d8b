// Package credential models the shared dashboard credential.
//
// There is no identity system: access is a single shared secret with a
// capability flag, provisioned manually through the admin CLI. Multiple
// rows may exist (e.g. during rotation); any admin-flagged row that
// matches the submitted password grants access.
package credential

import "time"

// Credential is one provisioned password row. The hash is bcrypt.
type Credential struct {
	ID           string    `json:"id"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	DisplayName  string    `json:"display_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// VerifyResult is the only observable outcome of a verification attempt.
// Every failure produces the identical zero value so callers cannot learn
// anything beyond pass/fail.
type VerifyResult struct {
	Valid   bool   `json:"valid"`
	IsAdmin bool   `json:"isAdmin"`
	Name    string `json:"name,omitempty"`
}
