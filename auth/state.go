package auth

// Errors are the last failure messages, "" when none.
type Errors struct {
	Email                string `json:"email"`
	Password             string `json:"password"`
	ConfirmationPassword string `json:"confirmationPassword"`
	Common               string `json:"common"`
}

// Empty reports whether no message is set.
func (e Errors) Empty() bool {
	return e == Errors{}
}

// State is a snapshot of the session.
type State struct {
	Email                string `json:"email"`
	ID                   string `json:"id"`
	IsRegistered         bool   `json:"isRegistered"`
	IsPasswordReset      bool   `json:"isPasswordReset"`
	IsNewPasswordCreated bool   `json:"isNewPasswordCreated"`
	IsLoading            bool   `json:"isLoading"`
	Errors               Errors `json:"errors"`
	// IsAuthenticated is derived from the token when the snapshot is taken.
	IsAuthenticated bool `json:"isAuthenticated"`
}

// Result is returned by Login.
type Result struct {
	Success bool `json:"success"`
}
