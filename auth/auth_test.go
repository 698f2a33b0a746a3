package auth

import (
	"context"
	"net"
	"testing"
)

func TestAllRequiresEverySuccess(t *testing.T) {
	ctx := context.Background()
	ok := Func(func(context.Context, net.Conn, string, string) error { return nil })
	fail := Func(func(context.Context, net.Conn, string, string) error { return ErrAuthFailure })

	if err := All(ok, ok).Authenticate(ctx, nil, "glenda", ""); err != nil {
		t.Fatalf("All(ok, ok) = %v, want nil", err)
	}
	if err := All(ok, fail).Authenticate(ctx, nil, "glenda", ""); err == nil {
		t.Fatalf("All(ok, fail) succeeded, want failure")
	}
}

func TestAnySucceedsOnFirstMatch(t *testing.T) {
	ctx := context.Background()
	ok := Func(func(context.Context, net.Conn, string, string) error { return nil })
	fail := Func(func(context.Context, net.Conn, string, string) error { return ErrAuthFailure })

	if err := Any(fail, ok).Authenticate(ctx, nil, "glenda", ""); err != nil {
		t.Fatalf("Any(fail, ok) = %v, want nil", err)
	}
	if err := Any(fail, fail).Authenticate(ctx, nil, "glenda", ""); err == nil {
		t.Fatalf("Any(fail, fail) succeeded, want failure")
	}
}

func TestWhitelist(t *testing.T) {
	w := Whitelist(map[[2]string]bool{
		{"glenda", "src"}: true,
	})
	if err := w.Authenticate(context.Background(), nil, "glenda", "src"); err != nil {
		t.Fatalf("whitelisted pair rejected: %v", err)
	}
	if err := w.Authenticate(context.Background(), nil, "glenda", "other"); err == nil {
		t.Fatal("unlisted pair accepted")
	}
}
