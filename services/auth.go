package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"caretrack/apperr"
	"caretrack/config/db"
	"caretrack/metrics"
	"caretrack/models"
)

type LoginInput struct {
	LoginID  string `json:"loginId" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func HashPassword(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", apperr.Internal(err)
	}
	return string(hash), nil
}

// Login resolves a credential pair to its account and issues a session claim.
// Unknown login ids and wrong passwords are indistinguishable to the caller.
func Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	var user models.User
	err := db.OpenCollection(db.UserCollection).
		FindOne(ctx, bson.M{"loginId": in.LoginID}).
		Decode(&user)
	if err != nil {
		metrics.LoginAttempt("failure")
		if errors.Is(err, mongo.ErrNoDocuments) {
			return LoginResult{}, apperr.New(apperr.KindInvalidCredentials, "invalid credentials")
		}
		return LoginResult{}, apperr.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		metrics.LoginAttempt("failure")
		return LoginResult{}, apperr.New(apperr.KindInvalidCredentials, "invalid credentials")
	}

	token, err := SignToken(user)
	if err != nil {
		return LoginResult{}, err
	}

	metrics.LoginAttempt("success")
	user.Password = ""
	return LoginResult{Token: token, User: user}, nil
}

// VerifyAccount checks a session claim and resolves the account behind it.
func VerifyAccount(ctx context.Context, token string) (models.User, error) {
	claims, err := VerifyToken(token)
	if err != nil {
		return models.User{}, err
	}

	accountID, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return models.User{}, apperr.New(apperr.KindTokenInvalid, "token is invalid")
	}

	var user models.User
	err = db.OpenCollection(db.UserCollection).
		FindOne(ctx, bson.M{"_id": accountID}).
		Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, apperr.New(apperr.KindNotFound, "account not found")
		}
		return models.User{}, apperr.Internal(err)
	}

	user.Password = ""
	return user, nil
}

// credentialExists is the registration precheck; the unique index on loginId
// still backstops the race between check and insert.
func credentialExists(ctx context.Context, loginID string) (bool, error) {
	n, err := db.OpenCollection(db.UserCollection).
		CountDocuments(ctx, bson.M{"loginId": loginID})
	if err != nil {
		return false, apperr.Internal(err)
	}
	return n > 0, nil
}

// insertAccount creates the login account linked to a profile document. Runs
// inside the same transaction as the profile insert.
func insertAccount(ctx context.Context, loginID, rawPassword, accountRole string, linkedID primitive.ObjectID) error {
	hash, err := HashPassword(rawPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = db.OpenCollection(db.UserCollection).InsertOne(ctx, models.User{
		ID:        primitive.NewObjectID(),
		LoginID:   loginID,
		Password:  hash,
		Role:      accountRole,
		UserID:    linkedID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.New(apperr.KindDuplicateCredential, "login id already registered")
		}
		return apperr.Internal(err)
	}
	return nil
}
