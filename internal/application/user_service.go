package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/storefront-api/internal/domain"
	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/policy"
	repo "github.com/oksasatya/storefront-api/internal/domain/repository"
	"github.com/oksasatya/storefront-api/pkg/events"
	"github.com/oksasatya/storefront-api/pkg/helpers"
)

type UserService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Logger *logrus.Logger
	Events EventPublisher
}

func NewUserService(repo repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, pub EventPublisher) *UserService {
	return &UserService{Repo: repo, JWT: jwt, Redis: rdb, Logger: logger, Events: pub}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
}

// Create registers a new account. The account is always created active.
func (s *UserService) Create(ctx context.Context, in SignupInput) (*entity.User, error) {
	hash := ""
	if in.Password != "" {
		h, err := helpers.HashPassword(in.Password)
		if err != nil {
			return nil, domain.NewValidationError(err)
		}
		hash = h
	}
	ts := now()
	u := &entity.User{
		Name:      in.Name,
		Email:     in.Email,
		Password:  hash,
		Phone:     in.Phone,
		Address:   in.Address,
		Active:    true,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	publish(ctx, s.Events, s.Logger, events.New(events.UserCreated, u.ID.Hex(), u.ID.Hex(), nil))
	return u, nil
}

// Login exchanges active credentials for a signed token carrying the public profile.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	if !s.JWT.Configured() {
		return "", configurationError(helpers.ErrMissingSecret)
	}
	u, err := s.Repo.FindOne(ctx, policy.Active(bson.M{"email": email}))
	if errors.Is(err, domain.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return "", ErrInvalidCredentials
	}

	pub := u.Public()
	sid := uuid.NewString()
	token, exp, err := s.JWT.GenerateAccessToken(pub.ID, helpers.Profile{
		Name:    pub.Name,
		Email:   pub.Email,
		Phone:   pub.Phone,
		Address: pub.Address,
	}, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", pub.ID).Error("generate access token failed")
		}
		return "", configurationError(err)
	}

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":    pub.ID,
			"email":      pub.Email,
			"name":       pub.Name,
			"sid":        sid,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		}
		if rErr := helpers.SaveSession(ctx, s.Redis, pub.ID, fields, time.Until(exp)); rErr != nil && s.Logger != nil {
			helpers.LogWarn(s.Logger, "save session failed", rErr, logrus.Fields{"user_id": pub.ID})
		}
	}
	return token, nil
}

func (s *UserService) Get(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	return s.Repo.FindOne(ctx, policy.ByID(id))
}

func (s *UserService) Search(ctx context.Context, q policy.UserQuery) ([]entity.User, error) {
	return s.Repo.Find(ctx, policy.UserSearchFilter(q))
}

// Update changes the caller's own account.
func (s *UserService) Update(ctx context.Context, subject, id primitive.ObjectID, patch entity.UserPatch) (*entity.User, error) {
	if err := policy.AuthorizeMutation(subject, id, policy.ReasonUpdateUser).Err(); err != nil {
		return nil, err
	}
	if patch.Password != nil && *patch.Password != "" {
		h, err := helpers.HashPassword(*patch.Password)
		if err != nil {
			return nil, domain.NewValidationError(err)
		}
		patch.Password = &h
	}
	return s.Repo.Update(ctx, policy.ByID(id), patch)
}

// Delete deactivates the caller's own account and revokes its session.
func (s *UserService) Delete(ctx context.Context, subject, id primitive.ObjectID) (*entity.User, error) {
	if err := policy.AuthorizeMutation(subject, id, policy.ReasonDeleteUser).Err(); err != nil {
		return nil, err
	}
	u, err := s.Repo.Deactivate(ctx, policy.ByID(id))
	if err != nil {
		return nil, err
	}
	if s.Redis != nil {
		if rErr := helpers.DeleteSession(ctx, s.Redis, id.Hex()); rErr != nil && s.Logger != nil {
			helpers.LogWarn(s.Logger, "delete session failed", rErr, logrus.Fields{"user_id": id.Hex()})
		}
	}
	publish(ctx, s.Events, s.Logger, events.New(events.UserDeactivated, id.Hex(), subject.Hex(), nil))
	return u, nil
}
