package constants

// Application Information
const (
	AppName    = "Task Service"
	AppVersion = "1.0.0"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Default Application Settings
const (
	DefaultPort        = "8080"
	DefaultEnvironment = EnvDevelopment
)

// Rate Limit Key Prefixes (Redis)
const (
	RateLimitKeyPrefix = "taskhive:ratelimit:"
)

// Avatar Constraints
const (
	AvatarMaxBytes  = 1 << 20 // 1 MB upload cap
	AvatarDimension = 250     // normalized square size in pixels
)
