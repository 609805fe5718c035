package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturingSender records the codes it was asked to deliver.
type capturingSender struct {
	codes    map[string]string
	failNext error
}

func (s *capturingSender) Send(_ context.Context, email, code string) error {
	if s.failNext != nil {
		err := s.failNext
		s.failNext = nil
		return err
	}
	s.codes[email] = code
	return nil
}

func otpSetup(t *testing.T) (*OtpService, *capturingSender, *miniredis.Miniredis) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	sender := &capturingSender{codes: map[string]string{}}
	return NewOtpService(client, sender, 10*time.Minute), sender, server
}

func TestOtpService_SendAndVerify(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		service, sender, _ := otpSetup(t)

		require.NoError(t, service.Send(context.Background(), "client@example.com"))
		code := sender.codes["client@example.com"]
		require.Len(t, code, 6)

		assert.NoError(t, service.Verify(context.Background(), "client@example.com", code))
	})

	t.Run("a code can be used only once", func(t *testing.T) {
		service, sender, _ := otpSetup(t)

		require.NoError(t, service.Send(context.Background(), "client@example.com"))
		code := sender.codes["client@example.com"]

		require.NoError(t, service.Verify(context.Background(), "client@example.com", code))
		assert.ErrorIs(t, service.Verify(context.Background(), "client@example.com", code), ErrCodeExpired)
	})

	t.Run("wrong code is rejected", func(t *testing.T) {
		service, _, _ := otpSetup(t)

		require.NoError(t, service.Send(context.Background(), "client@example.com"))
		assert.ErrorIs(t, service.Verify(context.Background(), "client@example.com", "000000"), ErrCodeMismatch)
	})

	t.Run("expired code is rejected", func(t *testing.T) {
		service, sender, server := otpSetup(t)

		require.NoError(t, service.Send(context.Background(), "client@example.com"))
		code := sender.codes["client@example.com"]

		server.FastForward(11 * time.Minute)
		assert.ErrorIs(t, service.Verify(context.Background(), "client@example.com", code), ErrCodeExpired)
	})

	t.Run("verify without a prior send is rejected", func(t *testing.T) {
		service, _, _ := otpSetup(t)
		assert.ErrorIs(t, service.Verify(context.Background(), "nobody@example.com", "123456"), ErrCodeExpired)
	})

	t.Run("failed delivery drops the stored code", func(t *testing.T) {
		service, sender, server := otpSetup(t)

		sender.failNext = errors.New("smtp down")
		assert.Error(t, service.Send(context.Background(), "client@example.com"))
		assert.False(t, server.Exists("otp:client@example.com"))
	})
}
