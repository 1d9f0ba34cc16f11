// Package cookie reads and writes HMAC-signed cookies.
//
// Values are stored as base64(payload).base64(hmac-sha256(name|payload)).
// The cookie name is part of the MAC so a value signed for one cookie cannot
// be replayed under another name. Several secrets may be configured: the
// first signs, all of them verify, which allows rotating the secret without
// invalidating cookies already issued.
//
//	m, err := cookie.New(cookie.WithSecret(current, previous))
//	if err != nil {
//		return err
//	}
//	err = m.SetJSON(w, "consent", state, 180*24*time.Hour)
//	...
//	var state consent.State
//	err = m.GetJSON(r, "consent", &state)
package cookie
