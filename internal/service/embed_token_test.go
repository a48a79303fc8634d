package service

import (
	"testing"
)

func TestJWT_RoundTrip(t *testing.T) {
	InitJWT("test-secret")
	defer InitJWT("")

	token, err := GenerateJWT("member-42")
	if err != nil {
		t.Fatalf("выпуск токена не удался: %v", err)
	}

	memberID, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("проверка токена не удалась: %v", err)
	}
	if memberID != "member-42" {
		t.Fatalf("subject искажен: %q", memberID)
	}
}

func TestJWT_TamperedRejected(t *testing.T) {
	InitJWT("test-secret")
	defer InitJWT("")

	token, err := GenerateJWT("member-42")
	if err != nil {
		t.Fatalf("выпуск токена не удался: %v", err)
	}

	if _, err := ParseJWT(token + "x"); err == nil {
		t.Fatalf("испорченный токен должен отклоняться")
	}

	// токен, подписанный другим секретом
	InitJWT("other-secret")
	if _, err := ParseJWT(token); err == nil {
		t.Fatalf("токен с чужой подписью должен отклоняться")
	}
}

func TestJWT_Disabled(t *testing.T) {
	InitJWT("")

	if JWTEnabled() {
		t.Fatalf("пустой секрет должен отключать токены")
	}
	if _, err := GenerateJWT("m1"); err != ErrTokensDisabled {
		t.Fatalf("выпуск без секрета должен давать ErrTokensDisabled, получено %v", err)
	}
	if _, err := ParseJWT("whatever"); err != ErrTokensDisabled {
		t.Fatalf("проверка без секрета должна давать ErrTokensDisabled, получено %v", err)
	}
}
