package userctx

import "context"

// Context key type
type contextKey string

const claimsKey contextKey = "identity_claims"

// Claims carries the optional identity claims extracted from the bearer
// token. Either, both or neither of the id and sub claims may be present;
// actor resolution copes with every combination.
type Claims struct {
	ID    int64
	HasID bool
	Sub   string
}

// NumericID reports the numeric id claim when the token carried one.
func (c Claims) NumericID() (int64, bool) {
	return c.ID, c.HasID
}

// Subject reports the sub claim when the token carried one.
func (c Claims) Subject() (string, bool) {
	return c.Sub, c.Sub != ""
}

// WithClaims adds identity claims to the request context
func WithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFrom retrieves identity claims from the request context. A context
// without claims yields the zero value, which resolves to actor 0.
func ClaimsFrom(ctx context.Context) Claims {
	claims, ok := ctx.Value(claimsKey).(Claims)
	if !ok {
		return Claims{}
	}
	return claims
}
