package message

const (
	InvalidInput = "Invalid input."
	EnvErrFmt    = "environment variable is not set: %s"
	Unexpected   = "Something went wrong. Please try again later."
	DBDown       = "Database connection error. Please try again later."
	RateLimited  = "Too many requests."
	Unauthorized = "Not authenticated."
	Welcome      = "Welcome to the PneumoDetect API"
)
