// Package authsdk is the Go client for the sessiond HTTP API, and the home
// of the request and response types both sides share.
//
// # Sessions
//
// Login stores the refresh token the server sets as an HttpOnly cookie in
// the client's cookie jar and keeps the access token in memory. Refresh
// trades the cookie for a new access token; the refresh cookie itself is
// never reissued, so a session lasts at most seven days from login.
//
//	c, err := authsdk.NewClient("https://auth.example.com")
//	if err != nil {
//		return err
//	}
//	user, err := c.Login(ctx, "alice@example.com", "secret1")
//	if err != nil {
//		return err
//	}
//	me, err := c.Me(ctx)
//
// Requests made with an expired access token fail with an *APIError whose
// StatusCode is 401; call Refresh and retry.
//
// # Errors
//
// Every non-2xx response becomes an *APIError carrying the server's message.
// Validation failures on registration also carry the offending fields.
package authsdk
