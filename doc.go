// Package tokensale wires the client side session of the token sale.
//
// The package glues the auth store with a concrete backend client, the
// session transport and a storage backend selected from configuration. In
// practice it exposes a single entry-point:
//
//	NewSession – returns a Session whose Store is ready for Login, Register,
//	ResetPassword and CreateNewPassword calls.
//
// Example:
//
//	cfg, _ := config.Load("tokensale.yaml")
//	session, _ := tokensale.NewSession(ctx, cfg)
//	defer session.Close()
//	if result := session.Store.Login(ctx, api.Credentials{Email: email, Password: password}); !result.Success {
//		fmt.Println(session.Store.State().Errors)
//	}
package tokensale
