// Package grpcauthctx attaches caller identity to outgoing gRPC metadata.
package grpcauthctx

import (
	"context"
	"strings"

	"google.golang.org/grpc/metadata"
)

// Metadata keys understood by the content backend.
const (
	PrincipalHeader     = "x-caller-principal"
	AuthorizationHeader = "authorization"
)

const bearerPrefix = "Bearer "

// WithPrincipal returns a context with caller-principal metadata when
// principal is non-empty.
func WithPrincipal(ctx context.Context, principal string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	principal = strings.TrimSpace(principal)
	if principal == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, PrincipalHeader, principal)
}

// WithBearerToken returns a context with a bearer authorization header when
// token is non-empty.
func WithBearerToken(ctx context.Context, token string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, AuthorizationHeader, bearerPrefix+token)
}

// PrincipalFromIncoming reads the caller principal a server received.
func PrincipalFromIncoming(ctx context.Context) (string, bool) {
	return firstIncoming(ctx, PrincipalHeader)
}

// BearerTokenFromIncoming reads the bearer token a server received.
func BearerTokenFromIncoming(ctx context.Context) (string, bool) {
	value, ok := firstIncoming(ctx, AuthorizationHeader)
	if !ok || !strings.HasPrefix(value, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(value, bearerPrefix))
	return token, token != ""
}

func firstIncoming(ctx context.Context, key string) (string, bool) {
	if ctx == nil {
		return "", false
	}
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}
	values := md.Get(key)
	if len(values) == 0 {
		return "", false
	}
	value := strings.TrimSpace(values[0])
	return value, value != ""
}
