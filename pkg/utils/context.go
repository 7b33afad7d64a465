package utils

import (
	"context"
)

type contextKey string

const PrincipalKey contextKey = "principal"

type PrincipalKind string

const (
	PrincipalAnonymous PrincipalKind = "anonymous"
	PrincipalCustomer  PrincipalKind = "customer"
	PrincipalAdmin     PrincipalKind = "admin"
)

// Principal is the verified caller of a request.
type Principal struct {
	Kind   PrincipalKind `json:"kind"`
	UserID int64         `json:"userId,omitempty"`
	Email  string        `json:"email,omitempty"`
	Name   string        `json:"name,omitempty"`
}

var anonymous = Principal{Kind: PrincipalAnonymous}

func (p Principal) IsAdmin() bool {
	return p.Kind == PrincipalAdmin
}

func (p Principal) IsAuthenticated() bool {
	return p.Kind == PrincipalCustomer || p.Kind == PrincipalAdmin
}

func SetPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, p)
}

// GetPrincipal never fails: requests without a principal are anonymous.
func GetPrincipal(ctx context.Context) Principal {
	p, ok := ctx.Value(PrincipalKey).(Principal)
	if !ok {
		return anonymous
	}
	return p
}

// GetUserIDFromContext returns the logged-in user id, if any.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	p := GetPrincipal(ctx)
	if !p.IsAuthenticated() || p.UserID == 0 {
		return 0, false
	}
	return p.UserID, true
}
