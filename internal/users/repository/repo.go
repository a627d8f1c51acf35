package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tuwebai/tuweb-backend/internal/users/domain"
)

const (
	usersCollection       = "users"
	preferencesCollection = "preferences"
	preferencesDoc        = "settings"
)

// UserRepository persists users in Firestore, keyed by Firebase UID.
type UserRepository struct {
	client *firestore.Client
}

func NewUserRepository(client *firestore.Client) *UserRepository {
	return &UserRepository{client: client}
}

func (r *UserRepository) GetByUID(ctx context.Context, uid string) (*domain.User, error) {
	if uid == "" {
		return nil, fmt.Errorf("uid required")
	}

	snap, err := r.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user %s: %w", uid, err)
	}

	var u domain.User
	if err := snap.DataTo(&u); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", uid, err)
	}
	u.UID = snap.Ref.ID
	return &u, nil
}

// Ensure creates the user document on first authenticated touch. Existing
// documents are left untouched except for a refreshed email.
func (r *UserRepository) Ensure(ctx context.Context, uid, email string) (*domain.User, error) {
	if uid == "" {
		return nil, fmt.Errorf("uid required")
	}

	existing, err := r.GetByUID(ctx, uid)
	if err == nil {
		if email != "" && existing.Email != email {
			existing.Email = email
			if err := r.Update(ctx, existing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	}
	if err != domain.ErrNotFound {
		return nil, err
	}

	now := time.Now().UTC()
	u := &domain.User{
		UID:       uid,
		Email:     email,
		Role:      domain.RoleClient,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.client.Collection(usersCollection).Doc(uid).Create(ctx, u); err != nil {
		// Lost a race with a concurrent first touch; the doc exists now.
		if status.Code(err) == codes.AlreadyExists {
			return r.GetByUID(ctx, uid)
		}
		return nil, fmt.Errorf("create user %s: %w", uid, err)
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	if u.UID == "" {
		return fmt.Errorf("uid required")
	}
	u.UpdatedAt = time.Now().UTC()
	// Full-document write; MergeAll only accepts map data, and callers
	// always hold the complete record anyway.
	if _, err := r.client.Collection(usersCollection).Doc(u.UID).Set(ctx, u); err != nil {
		return fmt.Errorf("update user %s: %w", u.UID, err)
	}
	return nil
}

// GetByVerificationToken looks a user up by their email verification token.
func (r *UserRepository) GetByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrNotFound
	}

	iter := r.client.Collection(usersCollection).
		Where("verificationToken", "==", token).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snaps, err := iter.GetAll()
	if err != nil {
		return nil, fmt.Errorf("query verification token: %w", err)
	}
	if len(snaps) == 0 {
		return nil, domain.ErrNotFound
	}

	var u domain.User
	if err := snaps[0].DataTo(&u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	u.UID = snaps[0].Ref.ID
	return &u, nil
}

// GetByEmail supports the dev-only verification shortcut.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, domain.ErrNotFound
	}

	iter := r.client.Collection(usersCollection).
		Where("email", "==", email).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snaps, err := iter.GetAll()
	if err != nil {
		return nil, fmt.Errorf("query user by email: %w", err)
	}
	if len(snaps) == 0 {
		return nil, domain.ErrNotFound
	}

	var u domain.User
	if err := snaps[0].DataTo(&u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	u.UID = snaps[0].Ref.ID
	return &u, nil
}

func (r *UserRepository) GetPreferences(ctx context.Context, uid string) (*domain.Preferences, error) {
	snap, err := r.client.Collection(usersCollection).Doc(uid).
		Collection(preferencesCollection).Doc(preferencesDoc).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			// Defaults for users who never touched their settings.
			return &domain.Preferences{Notifications: true, Newsletter: false, Language: "es"}, nil
		}
		return nil, fmt.Errorf("get preferences %s: %w", uid, err)
	}

	var p domain.Preferences
	if err := snap.DataTo(&p); err != nil {
		return nil, fmt.Errorf("decode preferences %s: %w", uid, err)
	}
	return &p, nil
}

func (r *UserRepository) SetPreferences(ctx context.Context, uid string, p *domain.Preferences) error {
	_, err := r.client.Collection(usersCollection).Doc(uid).
		Collection(preferencesCollection).Doc(preferencesDoc).Set(ctx, p)
	if err != nil {
		return fmt.Errorf("set preferences %s: %w", uid, err)
	}
	return nil
}
