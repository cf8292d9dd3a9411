package auth

const (
	MsgRegistered          = "User created. Check your Gmail to verify."
	MsgVerified            = "Email verified. You can now log in."
	MsgVerificationResent  = "If the email is registered and not yet verified, a new code was sent."
	MsgLoggedIn            = "Login successful"
	MsgLoggedOut           = "Logged out"
	MsgPasswordMismatch    = "Passwords do not match."
	MsgAlreadyVerified     = "Email is already verified. Please log in."
	MsgPendingVerification = "Email already registered. Please check your inbox to verify your account."
	MsgInvalidToken        = "Invalid token or email."
	MsgTokenExpired        = "Verification token has expired. Please request a new one."
	MsgVerificationLocked  = "Too many verification attempts. Please request a new token."
	MsgInvalidCredentials  = "Invalid credentials."
	MsgNotVerified         = "Please verify your email first."

	verificationSubject  = "Verify your email"
	verificationTemplate = "verification"
)

const (
	MsgFmtFindUserByEmail = "find user by email: %w"

	maskChar = "*"
)
