package service

import (
	"errors"
	"testing"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Setenv("ADMIN_USERNAME", "admin")
	t.Setenv("ADMIN_PASSWORD", "password123")
	t.Setenv("JWT_SECRET", "test-secret")
	return NewAuthService()
}

func TestLogin(t *testing.T) {
	svc := newTestAuthService(t)

	testCases := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{"valid credentials", "admin", "password123", false},
		{"wrong password", "admin", "wrong", true},
		{"wrong username", "nobody", "password123", true},
		{"empty credentials", "", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := svc.Login(tc.username, tc.password)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidCredentials) {
					t.Errorf("Expected ErrInvalidCredentials, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if resp.Token == "" || resp.AdminID == "" {
				t.Errorf("Expected token and admin id, got %+v", resp)
			}
		})
	}
}

func TestValidateAdminToken(t *testing.T) {
	svc := newTestAuthService(t)

	resp, err := svc.Login("admin", "password123")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	claims, err := svc.ValidateAdminToken(resp.Token)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if claims.AdminID != resp.AdminID {
		t.Errorf("Expected admin id %s, got %s", resp.AdminID, claims.AdminID)
	}

	if _, err := svc.ValidateAdminToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for garbage, got %v", err)
	}
}

func TestRespondentToken(t *testing.T) {
	svc := newTestAuthService(t)

	token, err := svc.GenerateRespondentToken("resp-001", "v1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	claims, err := svc.ValidateRespondentToken(token)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if claims.ResponseID != "resp-001" || claims.SurveyVersion != "v1" {
		t.Errorf("Unexpected claims: %+v", claims)
	}
}

func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	svc := newTestAuthService(t)

	respondentToken, err := svc.GenerateRespondentToken("resp-001", "v1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := svc.ValidateAdminToken(respondentToken); !errors.Is(err, ErrInvalidToken) {
		t.Error("A respondent token must not validate as an admin token")
	}

	login, err := svc.Login("admin", "password123")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := svc.ValidateRespondentToken(login.Token); !errors.Is(err, ErrInvalidToken) {
		t.Error("An admin token must not validate as a respondent token")
	}
}
