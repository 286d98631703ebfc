package cli

import "github.com/viant/tokensale/config"

type Options struct {
	ConfigURL string `short:"c" long:"config" description:"config file"`
	URL       string `short:"u" long:"url" description:"backend base url"`
	Storage   string `short:"s" long:"storage" description:"session storage url (path, mem://, redis://, sqlite://)"`
	LogLevel  string `short:"l" long:"log-level" description:"log level" choice:"debug" choice:"info" choice:"warn" choice:"error"`

	Login         LoginCommand         `command:"login" description:"log in with email and password"`
	Register      RegisterCommand      `command:"register" description:"register an email"`
	ResetPassword ResetPasswordCommand `command:"reset-password" description:"request a password recovery email"`
	NewPassword   NewPasswordCommand   `command:"new-password" description:"set a new password with a recovery token"`
	Logout        struct{}             `command:"logout" description:"clear the stored session"`
	Status        struct{}             `command:"status" description:"print the stored session"`
}

type LoginCommand struct {
	Email    string `short:"e" long:"email" description:"account email" required:"true"`
	Password string `short:"p" long:"password" description:"account password" required:"true"`
}

type RegisterCommand struct {
	Email string `short:"e" long:"email" description:"account email" required:"true"`
}

type ResetPasswordCommand struct {
	Email string `short:"e" long:"email" description:"account email" required:"true"`
}

type NewPasswordCommand struct {
	Token                string `short:"t" long:"token" description:"recovery token" required:"true"`
	Password             string `short:"p" long:"password" description:"new password" required:"true"`
	ConfirmationPassword string `short:"P" long:"password2" description:"new password confirmation" required:"true"`
}

// apply overrides cfg with flags that were set
func (o *Options) apply(cfg *config.Config) {
	if o.URL != "" {
		cfg.BaseURL = o.URL
	}
	if o.Storage != "" {
		cfg.StorageURL = o.Storage
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
}
