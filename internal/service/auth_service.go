// FILE: internal/service/auth_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dms-backend/internal/dto"
	"dms-backend/internal/entity"
	"dms-backend/internal/pkg/mailer"
	"dms-backend/internal/repository/specification"
	"dms-backend/internal/repository/unitofwork"
	"dms-backend/pkg/events"
	pktNats "dms-backend/pkg/nats"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, userId uuid.UUID) (*dto.UserInfo, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
	jwtSecret      string
	jwtTTL         time.Duration
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
	jwtSecret string,
	jwtTTL time.Duration,
) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		jwtSecret:      jwtSecret,
		jwtTTL:         jwtTTL,
	}
}

func (c *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: req.Username})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("username already taken")
	}

	existing, err = uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := entity.User{
		Id:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         entity.UserRoleUser,
		Department:   req.Department,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, &user); err != nil {
		return nil, err
	}

	// Welcome mail is best-effort, registration must not hang on SMTP.
	go func(email, fullName string) {
		if err := c.emailService.SendWelcome(email, fullName); err != nil {
			fmt.Printf("[WARN] Failed to send welcome mail: %v\n", err)
		}
	}(user.Email, user.FullName)

	if c.eventPublisher != nil {
		evt := events.New(events.TypeUserRegistered, map[string]interface{}{
			"user_id":  user.Id,
			"username": user.Username,
		})
		if err := c.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish USER_REGISTERED event: %v\n", err)
		}
	}

	return &dto.RegisterResponse{Id: user.Id}, nil
}

func (c *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: req.Username})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("invalid credentials")
	}
	if !user.IsActive {
		return nil, errors.New("user account is disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	expiresAt := time.Now().Add(c.jwtTTL)
	claims := jwt.MapClaims{
		"user_id":    user.Id.String(),
		"role":       string(user.Role),
		"department": user.Department,
		"exp":        expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(c.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:     signedToken,
		ExpiresAt: expiresAt,
		User:      toUserInfo(user),
	}, nil
}

func (c *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.UserInfo, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	info := toUserInfo(user)
	return &info, nil
}

func toUserInfo(user *entity.User) dto.UserInfo {
	return dto.UserInfo{
		Id:         user.Id,
		Username:   user.Username,
		Email:      user.Email,
		FullName:   user.FullName,
		Role:       string(user.Role),
		Department: user.Department,
	}
}
