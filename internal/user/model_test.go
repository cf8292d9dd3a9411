package user_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/ferdiebergado/pneumodetect/internal/user"
)

func TestCreateParams_LogValueMasksSecrets(t *testing.T) {
	t.Parallel()

	params := user.CreateParams{
		Username:          "alice",
		Email:             "alice@example.com",
		PasswordHash:      "$argon2id$v=19$secret",
		VerificationToken: "123456",
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Info("creating user", "params", params)

	out := buf.String()
	for _, secret := range []string{params.Email, params.PasswordHash, params.VerificationToken} {
		if strings.Contains(out, secret) {
			t.Errorf("log output contains %q:\n%s", secret, out)
		}
	}

	if !strings.Contains(out, "params.username=alice") {
		t.Errorf("log output = %q, want the username", out)
	}
}
