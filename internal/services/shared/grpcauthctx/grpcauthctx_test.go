package grpcauthctx

import (
	"context"
	"testing"

	"google.golang.org/grpc/metadata"
)

func TestWithPrincipalAppendsMetadataWhenPresent(t *testing.T) {
	ctx := WithPrincipal(context.Background(), " ruth ")
	md, ok := metadata.FromOutgoingContext(ctx)
	if !ok {
		t.Fatalf("expected outgoing metadata context")
	}
	values := md.Get(PrincipalHeader)
	if len(values) != 1 || values[0] != "ruth" {
		t.Fatalf("metadata %s = %v, want [ruth]", PrincipalHeader, values)
	}
}

func TestWithPrincipalNoopWhenEmpty(t *testing.T) {
	ctx := WithPrincipal(context.Background(), "   ")
	md, ok := metadata.FromOutgoingContext(ctx)
	if ok && len(md.Get(PrincipalHeader)) > 0 {
		t.Fatalf("expected no %s metadata, got %v", PrincipalHeader, md.Get(PrincipalHeader))
	}
}

func TestWithBearerTokenAppendsAuthorization(t *testing.T) {
	ctx := WithBearerToken(context.Background(), "tok-1")
	md, _ := metadata.FromOutgoingContext(ctx)
	values := md.Get(AuthorizationHeader)
	if len(values) != 1 || values[0] != "Bearer tok-1" {
		t.Fatalf("metadata %s = %v, want [Bearer tok-1]", AuthorizationHeader, values)
	}

	ctx = WithBearerToken(context.Background(), "")
	if md, ok := metadata.FromOutgoingContext(ctx); ok && len(md.Get(AuthorizationHeader)) > 0 {
		t.Fatalf("expected no authorization metadata for empty token")
	}
}

func TestIncomingReaders(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(
		PrincipalHeader, "ruth",
		AuthorizationHeader, "Bearer tok-1",
	))
	if got, ok := PrincipalFromIncoming(ctx); !ok || got != "ruth" {
		t.Fatalf("PrincipalFromIncoming() = %q, %t, want ruth, true", got, ok)
	}
	if got, ok := BearerTokenFromIncoming(ctx); !ok || got != "tok-1" {
		t.Fatalf("BearerTokenFromIncoming() = %q, %t, want tok-1, true", got, ok)
	}

	basic := metadata.NewIncomingContext(context.Background(), metadata.Pairs(AuthorizationHeader, "Basic abc"))
	if _, ok := BearerTokenFromIncoming(basic); ok {
		t.Fatalf("BearerTokenFromIncoming(Basic) ok = true, want false")
	}
	if _, ok := PrincipalFromIncoming(context.Background()); ok {
		t.Fatalf("PrincipalFromIncoming(no metadata) ok = true, want false")
	}
}
