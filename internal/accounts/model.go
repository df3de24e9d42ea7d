package accounts

import "time"

// Kind discriminates how an account authenticates.
type Kind string

const (
	KindLocal Kind = "local"
	KindOAuth Kind = "oauth"
)

// Status is the server-owned lifecycle status of an account.
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

// SecurityInfo is the security block of a full account record.
type SecurityInfo struct {
	TwoFactorEnabled      bool `json:"twoFactorEnabled"`
	BackupCodesRemaining  int  `json:"backupCodesRemaining"`
	SessionTimeoutSeconds int  `json:"sessionTimeoutSeconds"`
}

// Account is the full server-owned account record. The client holds a
// cached copy; the authority is the source of truth.
type Account struct {
	ID            string       `json:"id"`
	Kind          Kind         `json:"kind"`
	Status        Status       `json:"status"`
	FirstName     string       `json:"firstName"`
	LastName      string       `json:"lastName"`
	DisplayName   string       `json:"displayName"`
	Email         string       `json:"email"`
	ImageURL      string       `json:"imageUrl"`
	EmailVerified bool         `json:"emailVerified"`
	Security      SecurityInfo `json:"security"`
}

// Summary is the reduced-fidelity projection returned cheaply alongside the
// session document. Same identity as Account.
type Summary struct {
	ID          string `json:"id"`
	Kind        Kind   `json:"kind"`
	Status      Status `json:"status"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// Update is a caller-scoped partial mutation of a cached full record.
// Nil fields are left untouched.
type Update struct {
	Status        *Status
	FirstName     *string
	LastName      *string
	DisplayName   *string
	Email         *string
	ImageURL      *string
	EmailVerified *bool
	Security      *SecurityInfo
}

// State is the single cache entry for one account id.
type State struct {
	Account     *Account
	Summary     *Summary
	Disabled    bool
	Err         error
	LastUpdated time.Time
}

// Full reports whether the entry holds a full record rather than a
// summary-only projection.
func (s State) Full() bool {
	return s.Account != nil
}

func summaryOf(a *Account) *Summary {
	return &Summary{
		ID:          a.ID,
		Kind:        a.Kind,
		Status:      a.Status,
		DisplayName: a.DisplayName,
		Email:       a.Email,
	}
}
