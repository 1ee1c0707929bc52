// internal/profile/service.go

package profile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"mime/multipart"
)

var (
	ErrProfileExists   = errors.New("profile already exists")
	ErrMismatchedPairs = errors.New("conflict questions and answers must have the same length")
)

// Placeholder photos assigned to profiles without an uploaded picture,
// matching the sample set served by the web client.
var samplePhotos = []string{
	"/profile-photos/1.jpg",
	"/profile-photos/2.jpg",
	"/profile-photos/3.jpg",
	"/profile-photos/4.jpg",
	"/profile-photos/5.jpg",
	"/profile-photos/6.jpg",
	"/profile-photos/7.jpg",
	"/profile-photos/8.jpg",
	"/profile-photos/9.jpg",
	"/profile-photos/10.jpg",
	"/profile-photos/11.jpg",
	"/profile-photos/12.jpg",
}

// UserStore flips account-level flags owned by the auth module
type UserStore interface {
	SetHasProfile(ctx context.Context, userID int64, hasProfile bool) error
}

// Service defines the profile service interface
type Service interface {
	CreateProfile(ctx context.Context, userID int64, req *CreateProfileRequest) (*Profile, error)
	GetMyProfile(ctx context.Context, userID int64) (*Profile, error)
	GetProfileByUserID(ctx context.Context, userID int64) (*Profile, error)
	UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*Profile, error)
	ListProfiles(ctx context.Context) ([]*Profile, error)
	UploadPhoto(ctx context.Context, userID int64, file multipart.File, header *multipart.FileHeader) (string, error)
}

type service struct {
	repo   Repository
	upload UploadService
	users  UserStore
}

// NewService creates a new profile service. users may be nil when no
// account flag needs updating (tests).
func NewService(repo Repository, upload UploadService, users UserStore) Service {
	return &service{
		repo:   repo,
		upload: upload,
		users:  users,
	}
}

func (s *service) CreateProfile(ctx context.Context, userID int64, req *CreateProfileRequest) (*Profile, error) {
	if len(req.ConflictQuestions) != len(req.ConflictAnswers) {
		return nil, ErrMismatchedPairs
	}

	if _, err := s.repo.GetProfileByUserID(ctx, userID); err == nil {
		return nil, ErrProfileExists
	} else if err != ErrProfileNotFound {
		return nil, err
	}

	p := &Profile{
		UserID:                  userID,
		PreferredName:           req.PreferredName,
		Age:                     req.Age,
		Gender:                  req.Gender,
		City:                    req.City,
		Bio:                     req.Bio,
		Occupation:              req.Occupation,
		DebateStyle:             req.DebateStyle,
		CommunicationPreference: req.CommunicationPreference,
		ConflictQuestions:       req.ConflictQuestions,
		ConflictAnswers:         req.ConflictAnswers,
	}

	if err := s.repo.CreateProfile(ctx, p); err != nil {
		return nil, err
	}

	if s.users != nil {
		if err := s.users.SetHasProfile(ctx, userID, true); err != nil {
			// Profile exists either way; the flag catches up on the next update
			log.Printf("profile: failed to set has_profile for user %d: %v", userID, err)
		}
	}

	return p, nil
}

func (s *service) GetMyProfile(ctx context.Context, userID int64) (*Profile, error) {
	return s.repo.GetProfileByUserID(ctx, userID)
}

func (s *service) GetProfileByUserID(ctx context.Context, userID int64) (*Profile, error) {
	p, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	fillPlaceholderPhoto(p)
	return p, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*Profile, error) {
	if req.ConflictQuestions != nil || req.ConflictAnswers != nil {
		if len(req.ConflictQuestions) != len(req.ConflictAnswers) {
			return nil, ErrMismatchedPairs
		}
	}

	return s.repo.UpdateProfile(ctx, userID, req)
}

func (s *service) ListProfiles(ctx context.Context) ([]*Profile, error) {
	profiles, err := s.repo.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}

	for _, p := range profiles {
		fillPlaceholderPhoto(p)
	}

	return profiles, nil
}

func (s *service) UploadPhoto(ctx context.Context, userID int64, file multipart.File, header *multipart.FileHeader) (string, error) {
	url, err := s.upload.UploadFile(ctx, file, header, "profile-photos")
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	if err := s.repo.UpdatePhoto(ctx, userID, url); err != nil {
		return "", err
	}

	return url, nil
}

func fillPlaceholderPhoto(p *Profile) {
	if p.Photo == nil || *p.Photo == "" {
		photo := samplePhotos[rand.Intn(len(samplePhotos))]
		p.Photo = &photo
	}
}
