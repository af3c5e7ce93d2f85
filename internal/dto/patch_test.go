package dto

import (
	"testing"

	apperrors "github.com/taskhive/taskhive/internal/errors"
	"github.com/taskhive/taskhive/internal/model"
)

func domainCode(t *testing.T, err error) string {
	t.Helper()
	domainErr := apperrors.GetDomainError(err)
	if domainErr == nil {
		t.Fatalf("expected a domain error, got %v", err)
	}
	return domainErr.Code
}

func TestApplyUserPatch(t *testing.T) {
	tests := []struct {
		name     string
		patch    Patch
		wantCode string
		check    func(t *testing.T, u *model.User, changed []string)
	}{
		{
			name:  "applies allowed fields",
			patch: Patch{"name": "Ada", "age": float64(36)},
			check: func(t *testing.T, u *model.User, changed []string) {
				if u.Name != "Ada" || u.Age != 36 {
					t.Errorf("got name=%q age=%d", u.Name, u.Age)
				}
				if len(changed) != 2 {
					t.Errorf("changed = %v, want 2 fields", changed)
				}
			},
		},
		{
			name:  "normalizes email",
			patch: Patch{"email": "  Ada@Example.COM "},
			check: func(t *testing.T, u *model.User, changed []string) {
				if u.Email != "ada@example.com" {
					t.Errorf("email = %q", u.Email)
				}
			},
		},
		{
			name:     "one disallowed key rejects the whole patch",
			patch:    Patch{"name": "Ada", "_id": float64(99)},
			wantCode: "DISALLOWED_FIELD",
			check: func(t *testing.T, u *model.User, changed []string) {
				if u.Name != "" {
					t.Errorf("name was applied despite rejection: %q", u.Name)
				}
			},
		},
		{
			name:     "owner field is never patchable",
			patch:    Patch{"tokens": []string{}},
			wantCode: "DISALLOWED_FIELD",
		},
		{
			name:     "rejects invalid email",
			patch:    Patch{"email": "not-an-email"},
			wantCode: "INVALID_INPUT",
		},
		{
			name:     "rejects fractional age",
			patch:    Patch{"age": 36.5},
			wantCode: "INVALID_INPUT",
		},
		{
			name:     "rejects negative age",
			patch:    Patch{"age": float64(-1)},
			wantCode: "INVALID_INPUT",
		},
		{
			name:     "rejects short password",
			patch:    Patch{"password": "abc"},
			wantCode: "INVALID_INPUT",
		},
		{
			name:     "rejects password containing the forbidden word",
			patch:    Patch{"password": "myPassword123"},
			wantCode: "INVALID_INPUT",
		},
		{
			name:  "empty patch changes nothing",
			patch: Patch{},
			check: func(t *testing.T, u *model.User, changed []string) {
				if len(changed) != 0 {
					t.Errorf("changed = %v, want none", changed)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var user model.User
			changed, err := tt.patch.ApplyUserPatch(&user)

			if tt.wantCode != "" {
				if err == nil {
					t.Fatalf("expected error, got changed=%v", changed)
				}
				if code := domainCode(t, err); code != tt.wantCode {
					t.Errorf("error code = %q, want %q", code, tt.wantCode)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.check != nil {
				tt.check(t, &user, changed)
			}
		})
	}
}

func TestApplyTaskPatch(t *testing.T) {
	tests := []struct {
		name     string
		patch    Patch
		wantCode string
		check    func(t *testing.T, task *model.Task)
	}{
		{
			name:  "applies description and completed",
			patch: Patch{"description": "buy milk", "completed": true},
			check: func(t *testing.T, task *model.Task) {
				if task.Description != "buy milk" || !task.Completed {
					t.Errorf("got %+v", task)
				}
			},
		},
		{
			name:     "owner can never be reassigned",
			patch:    Patch{"completed": true, "user_id": float64(2)},
			wantCode: "DISALLOWED_FIELD",
			check: func(t *testing.T, task *model.Task) {
				if task.Completed {
					t.Error("completed was applied despite rejection")
				}
			},
		},
		{
			name:     "rejects empty description",
			patch:    Patch{"description": "   "},
			wantCode: "INVALID_INPUT",
		},
		{
			name:     "rejects non-boolean completed",
			patch:    Patch{"completed": "yes"},
			wantCode: "INVALID_INPUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var task model.Task
			_, err := tt.patch.ApplyTaskPatch(&task)

			if tt.wantCode != "" {
				if err == nil {
					t.Fatal("expected error")
				}
				if code := domainCode(t, err); code != tt.wantCode {
					t.Errorf("error code = %q, want %q", code, tt.wantCode)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.check != nil {
				tt.check(t, &task)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		wantErr  bool
	}{
		{"short", true},
		{"exactly7", false},
		{"password123", true},
		{"PASSWORD123", true},
		{"MyPassWord", true},
		{"correct horse battery", false},
	}

	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePassword(%q) = %v, wantErr %v", tt.password, err, tt.wantErr)
		}
	}
}

func TestChanged(t *testing.T) {
	changed := []string{"name", "password"}

	if !Changed(changed, "password") {
		t.Error("expected password to be reported as changed")
	}
	if Changed(changed, "email") {
		t.Error("email was not changed")
	}
	if Changed(nil, "name") {
		t.Error("nothing changes in a nil set")
	}
}
