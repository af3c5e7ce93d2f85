package dto

import (
	"fmt"
	"net/mail"
	"strings"

	apperrors "github.com/taskhive/taskhive/internal/errors"
	"github.com/taskhive/taskhive/internal/model"
)

// Patch is a raw partial-update body. Keys are checked against a fixed
// per-entity allow-list before anything is applied; one disallowed key
// rejects the whole patch.
type Patch map[string]any

// userSetters is the complete set of mutable User fields. Each setter
// validates and applies one field; the map keys are the allow-list.
var userSetters = map[string]func(*model.User, any) error{
	"name": func(u *model.User, v any) error {
		name, ok := v.(string)
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return fmt.Errorf("name must be a non-empty string")
		}
		u.Name = name
		return nil
	},
	"email": func(u *model.User, v any) error {
		email, ok := v.(string)
		email = strings.ToLower(strings.TrimSpace(email))
		if !ok || email == "" {
			return fmt.Errorf("email must be a non-empty string")
		}
		if _, err := mail.ParseAddress(email); err != nil {
			return fmt.Errorf("email is invalid")
		}
		u.Email = email
		return nil
	},
	"password": func(u *model.User, v any) error {
		password, ok := v.(string)
		if !ok {
			return fmt.Errorf("password must be a string")
		}
		if err := ValidatePassword(password); err != nil {
			return err
		}
		// Plaintext lands here; the service hashes it exactly once because
		// the patch reports the field as changed.
		u.Password = password
		return nil
	},
	"age": func(u *model.User, v any) error {
		age, ok := v.(float64)
		if !ok || age != float64(int(age)) {
			return fmt.Errorf("age must be an integer")
		}
		if age < 0 {
			return fmt.Errorf("age must not be negative")
		}
		u.Age = int(age)
		return nil
	},
}

// taskSetters is the complete set of mutable Task fields. The owner is
// deliberately absent: it can never be patched.
var taskSetters = map[string]func(*model.Task, any) error{
	"description": func(t *model.Task, v any) error {
		description, ok := v.(string)
		description = strings.TrimSpace(description)
		if !ok || description == "" {
			return fmt.Errorf("description must be a non-empty string")
		}
		t.Description = description
		return nil
	},
	"completed": func(t *model.Task, v any) error {
		completed, ok := v.(bool)
		if !ok {
			return fmt.Errorf("completed must be a boolean")
		}
		t.Completed = completed
		return nil
	},
}

// checkAllowed verifies every patch key against the allow-list before any
// setter runs, so a rejected patch applies nothing.
func checkAllowed(patch Patch, allowed map[string]bool) error {
	var disallowed []string
	for key := range patch {
		if !allowed[key] {
			disallowed = append(disallowed, key)
		}
	}
	if len(disallowed) > 0 {
		return apperrors.WrapError(apperrors.ErrDisallowedField,
			fmt.Errorf("disallowed fields: %s", strings.Join(disallowed, ", ")))
	}
	return nil
}

// ApplyUserPatch validates the patch atomically and applies it to the user.
// Returns the names of the fields that changed.
func (p Patch) ApplyUserPatch(user *model.User) ([]string, error) {
	allowed := make(map[string]bool, len(userSetters))
	for key := range userSetters {
		allowed[key] = true
	}
	if err := checkAllowed(p, allowed); err != nil {
		return nil, err
	}

	changed := make([]string, 0, len(p))
	for key, value := range p {
		if err := userSetters[key](user, value); err != nil {
			return nil, apperrors.WrapError(apperrors.ErrInvalidInput, err)
		}
		changed = append(changed, key)
	}
	return changed, nil
}

// ApplyTaskPatch validates the patch atomically and applies it to the task.
func (p Patch) ApplyTaskPatch(task *model.Task) ([]string, error) {
	allowed := make(map[string]bool, len(taskSetters))
	for key := range taskSetters {
		allowed[key] = true
	}
	if err := checkAllowed(p, allowed); err != nil {
		return nil, err
	}

	changed := make([]string, 0, len(p))
	for key, value := range p {
		if err := taskSetters[key](task, value); err != nil {
			return nil, apperrors.WrapError(apperrors.ErrInvalidInput, err)
		}
		changed = append(changed, key)
	}
	return changed, nil
}

// Changed reports whether a field name is in the changed set.
func Changed(changed []string, field string) bool {
	for _, name := range changed {
		if name == field {
			return true
		}
	}
	return false
}

// ValidatePassword enforces the password policy shared by registration and
// profile patches: at least 7 characters and never containing the literal
// word "password".
func ValidatePassword(password string) error {
	if len(password) < 7 {
		return fmt.Errorf("password must be at least 7 characters")
	}
	if strings.Contains(strings.ToLower(password), "password") {
		return fmt.Errorf("password must not contain the word \"password\"")
	}
	return nil
}
