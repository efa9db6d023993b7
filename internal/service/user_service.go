package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/vuhoang-dev/store-backend/internal/apperror"
	"github.com/vuhoang-dev/store-backend/internal/model"
	"github.com/vuhoang-dev/store-backend/internal/repository"
	"github.com/vuhoang-dev/store-backend/internal/sqs"
	"golang.org/x/crypto/bcrypt"
)

const (
	MsgUserExists       = "Tên đăng nhập hoặc email đã tồn tại"
	MsgUserNotFound     = "Không tìm thấy người dùng"
	MsgAuthEmailSubject = "Mã xác thực đặt lại mật khẩu"

	otpLength = 6
)

// AuthEmailPublisher publishes messages on the auth-email channel.
type AuthEmailPublisher interface {
	PublishAuthEmail(ctx context.Context, msg sqs.AuthEmailMessage) error
}

// UserService handles signup and the forgot-password flow.
type UserService struct {
	users     repository.UserRepository
	publisher AuthEmailPublisher
}

// NewUserService creates a new UserService.
func NewUserService(users repository.UserRepository, publisher AuthEmailPublisher) *UserService {
	return &UserService{
		users:     users,
		publisher: publisher,
	}
}

// Signup registers a new user with a bcrypt-hashed password.
func (us *UserService) Signup(ctx context.Context, username, email, password, name string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Name:     name,
	}

	created, err := us.users.Create(ctx, user)
	if err != nil {
		var uniqueErr *repository.UniqueConstraintError
		if errors.As(err, &uniqueErr) {
			return nil, apperror.AlreadyExists(MsgUserExists)
		}
		return nil, err
	}

	return created, nil
}

// GetByUsername returns the user with the given username.
func (us *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := us.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound(MsgUserNotFound)
		}
		return nil, err
	}
	return user, nil
}

// ForgotPassword generates a one-time code for the user with the given email
// and enqueues an auth email carrying it.
func (us *UserService) ForgotPassword(ctx context.Context, email string) error {
	user, err := us.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound(MsgUserNotFound)
		}
		return err
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}

	msg := sqs.AuthEmailMessage{
		To:      user.Email,
		Subject: MsgAuthEmailSubject,
		OTP:     otp,
	}
	if err := us.publisher.PublishAuthEmail(ctx, msg); err != nil {
		return fmt.Errorf("failed to enqueue auth email: %w", err)
	}

	slog.Info("Auth email enqueued", slog.String("email", user.Email))
	return nil
}

// generateOTP returns a random numeric one-time code.
func generateOTP() (string, error) {
	digits := make([]byte, otpLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate OTP: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
