package validation

import "fmt"

// customMessages carries the per-field overrides; anything not listed here
// falls back to the generic tag messages.
var customMessages = map[string]map[string]string{
	"email": {
		"required": "email is required",
		"email":    "email is invalid",
	},
	"password": {
		"required":    "password is required",
		"min":         "password must be at least 7 characters",
		"notpassword": "password must not contain the word \"password\"",
	},
	"name": {
		"required": "name is required",
	},
	"description": {
		"required": "description is required",
	},
	"age": {
		"gte": "age must not be negative",
	},
}

// MessageFor resolves the message for one failed rule.
func MessageFor(field, tag, param string) string {
	if byTag, ok := customMessages[field]; ok {
		if msg, ok := byTag[tag]; ok {
			return msg
		}
	}

	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	case "email":
		return fmt.Sprintf("%s is invalid", field)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, param)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
