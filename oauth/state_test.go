package oauth

import (
	"testing"
	"time"

	"github.com/goliatone/go-tiktok-business/core"
)

func TestVerifyState(t *testing.T) {
	if err := VerifyState("tok", "tok"); err != nil {
		t.Fatalf("expected match: %v", err)
	}
	for _, tc := range []struct{ expected, actual string }{
		{"tok", "tok2"},
		{"tok", ""},
		{"", ""},
		{"", "tok"},
	} {
		if err := VerifyState(tc.expected, tc.actual); !core.IsKind(err, core.KindStateMismatch) {
			t.Fatalf("expected state_mismatch for %q/%q, got %v", tc.expected, tc.actual, err)
		}
	}
}

func TestTokenData_OAuth2Token(t *testing.T) {
	issued := time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)
	token := TokenData{
		OpenID:                "o1",
		Scope:                 "user.info.basic,video.list",
		AccessToken:           "act.1",
		ExpiresIn:             3600,
		RefreshToken:          "rft.1",
		RefreshTokenExpiresIn: 7200,
	}.OAuth2Token(issued)

	if token.Type() != "Bearer" {
		t.Fatalf("expected bearer type, got %q", token.Type())
	}
	if !token.Expiry.Equal(issued.Add(time.Hour)) {
		t.Fatalf("unexpected expiry %s", token.Expiry)
	}
	if token.Extra("open_id") != "o1" {
		t.Fatalf("expected open id extra, got %v", token.Extra("open_id"))
	}
	if got, ok := token.Extra("refresh_token_expiry").(time.Time); !ok || !got.Equal(issued.Add(2*time.Hour)) {
		t.Fatalf("unexpected refresh expiry %v", token.Extra("refresh_token_expiry"))
	}
}

func TestScopes(t *testing.T) {
	if got := ParseScope("  TikTok:Video.List "); got != ScopeVideoList {
		t.Fatalf("unexpected normalized scope %q", got)
	}
	parsed := ParseScopes("user.info.basic, video.list,,video.list")
	if len(parsed) != 2 || parsed[0] != ScopeUserInfoBasic || parsed[1] != ScopeVideoList {
		t.Fatalf("unexpected parsed scopes %v", parsed)
	}
	missing := MissingScopes(AccountScopes(), parsed)
	for _, scope := range missing {
		if scope == ScopeVideoList || scope == ScopeUserInfoBasic {
			t.Fatalf("granted scope reported missing: %v", missing)
		}
	}
	for _, scope := range AccountScopes() {
		if scope == ScopeVideoUpload || scope == ScopeUserInfoProfile || scope == ScopeResearchAdlib || scope == ScopeResearchData {
			t.Fatalf("unexpected scope %q in account set", scope)
		}
	}
	if len(AllScopes()) != 14 {
		t.Fatalf("expected 14 scopes, got %d", len(AllScopes()))
	}
}
