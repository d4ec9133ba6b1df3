package auth

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	s := NewService(nil, "test-secret")

	token, err := s.issueToken("user_01h000000000000000000000000")
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}

	userID, err := s.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if userID != "user_01h000000000000000000000000" {
		t.Errorf("subject = %q", userID)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewService(nil, "secret-a")
	verifier := NewService(nil, "secret-b")

	token, err := issuer.issueToken("user_x")
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}
	if _, err := verifier.ValidateToken(token); err == nil {
		t.Error("token signed with a different secret was accepted")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	s := NewService(nil, "test-secret")
	if _, err := s.ValidateToken("not.a.token"); err == nil {
		t.Error("malformed token was accepted")
	}
}
