package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Sender delivers a one-time passcode to its recipient. The production
// deployment plugs a mail gateway in here; LogSender just logs the code.
type Sender interface {
	Send(ctx context.Context, email, code string) error
}

type LogSender struct{}

func (LogSender) Send(_ context.Context, email, code string) error {
	log.Infof("one-time passcode for %s: %s", email, code)
	return nil
}

// OtpService issues and verifies 6-digit one-time passcodes. Codes live in
// Redis under a per-email key with a TTL; verification consumes the key, so a
// code can be used once.
type OtpService struct {
	redis  *redis.Client
	sender Sender
	ttl    time.Duration
}

func NewOtpService(redisClient *redis.Client, sender Sender, ttl time.Duration) *OtpService {
	return &OtpService{redis: redisClient, sender: sender, ttl: ttl}
}

func otpKey(email string) string {
	return "otp:" + email
}

func (s *OtpService) Send(ctx context.Context, email string) error {
	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate passcode: %w", err)
	}
	if err := s.redis.Set(ctx, otpKey(email), code, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store passcode: %w", err)
	}
	if err := s.sender.Send(ctx, email, code); err != nil {
		// drop the stored code so a failed delivery cannot be verified later
		s.redis.Del(ctx, otpKey(email))
		return fmt.Errorf("failed to deliver passcode: %w", err)
	}
	return nil
}

func (s *OtpService) Verify(ctx context.Context, email, code string) error {
	stored, err := s.redis.GetDel(ctx, otpKey(email)).Result()
	if err == redis.Nil {
		return ErrCodeExpired
	} else if err != nil {
		return fmt.Errorf("failed to read passcode: %w", err)
	}
	if stored != code {
		return ErrCodeMismatch
	}
	return nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
