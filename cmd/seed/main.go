package main

import (
	"context"
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/oksasatya/storefront-api/config"
	"github.com/oksasatya/storefront-api/internal/domain"
	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/policy"
	"github.com/oksasatya/storefront-api/internal/infrastructure/mongodb"
	"github.com/oksasatya/storefront-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoTimeout)
	defer cancel()

	client, err := mongodb.NewClient(ctx, cfg.MongoURI, cfg.MongoTimeout)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to mongodb")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(cfg.MongoDB)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		logger.WithError(err).Fatal("failed to ensure indexes")
	}

	users := mongodb.NewUserRepository(db)
	products := mongodb.NewProductRepository(db)

	email := "demo@storefront.local"
	password := "password123"

	u, err := users.FindOne(ctx, policy.Active(bson.M{"email": email}))
	if errors.Is(err, domain.ErrNotFound) {
		hash, hErr := helpers.HashPassword(password)
		if hErr != nil {
			logger.WithError(hErr).Fatal("failed to hash password")
		}
		now := time.Now().UTC()
		u = &entity.User{
			Name:      "Demo User",
			Email:     email,
			Password:  hash,
			Address:   "1 Market Street",
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		err = users.Create(ctx, u)
	}
	if err != nil {
		logger.WithError(err).Fatal("failed to seed user")
	}
	logger.WithFields(logrus.Fields{"id": u.ID.Hex(), "email": email, "password": password}).Info("seeded user")

	existing, err := products.Search(ctx, policy.Active(bson.M{"user_id": u.ID}))
	if err != nil {
		logger.WithError(err).Fatal("failed to look up products")
	}
	if len(existing) > 0 {
		logger.WithField("count", len(existing)).Info("demo products already present")
		return
	}
	now := time.Now().UTC()
	p := &entity.Product{
		Name:        "Mechanical Keyboard",
		UserID:      u.ID,
		Description: "Tenkeyless, brown switches",
		Price:       89.9,
		Category:    "Electronics",
		Rating:      4.5,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := products.Create(ctx, p); err != nil {
		logger.WithError(err).Fatal("failed to seed product")
	}
	logger.WithField("id", p.ID.Hex()).Info("seeded product")
}
