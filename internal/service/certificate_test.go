package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"aaaquest/internal/domain"
	"aaaquest/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCertificateService_Issue(t *testing.T) {
	existing := &domain.Certificate{ID: uuid.NewString(), UserID: "u-1", FullName: "Ada Lovelace", IssuedAt: fixedNow}

	tests := []struct {
		name          string
		fullName      string
		existing      *domain.Certificate
		progress      *domain.UserProgress
		profile       *domain.User
		expectedName  string
		expectedError error
	}{
		{
			name:         "returns existing certificate",
			existing:     existing,
			expectedName: "Ada Lovelace",
		},
		{
			name:         "issues with given name",
			fullName:     "  Grace Hopper ",
			progress:     testutil.NewCompletedProgress(),
			expectedName: "Grace Hopper",
		},
		{
			name:         "falls back to profile name",
			progress:     testutil.NewCompletedProgress(),
			profile:      &domain.User{ID: "u-1", FullName: "Alan Turing"},
			expectedName: "Alan Turing",
		},
		{
			name:          "not completed",
			fullName:      "Ada",
			progress:      testutil.NewTestProgress(3),
			expectedError: domain.ErrNotEligible,
		},
		{
			name:          "no name anywhere",
			progress:      testutil.NewCompletedProgress(),
			profile:       &domain.User{ID: "u-1"},
			expectedError: domain.ErrInvalidInput,
		},
		{
			name:          "name too long",
			fullName:      strings.Repeat("a", maxNameLength+1),
			progress:      testutil.NewCompletedProgress(),
			expectedError: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progressRepo := new(testutil.MockProgressRepository)
			certRepo := new(testutil.MockCertificateRepository)
			userRepo := new(testutil.MockUserRepository)

			if tt.existing != nil {
				certRepo.On("GetByUser", mock.Anything, "u-1").Return(tt.existing, nil)
			} else {
				certRepo.On("GetByUser", mock.Anything, "u-1").Return(nil, nil).Once()
				progressRepo.On("GetProgress", mock.Anything, "u-1").Return(tt.progress, nil)
			}
			if tt.profile != nil {
				userRepo.On("GetByID", mock.Anything, "u-1").Return(tt.profile, nil)
			}
			if tt.existing == nil && tt.expectedError == nil {
				certRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Certificate")).Return(nil)
				certRepo.On("GetByUser", mock.Anything, "u-1").Return(&domain.Certificate{
					ID: "stored", UserID: "u-1", FullName: tt.expectedName, IssuedAt: fixedNow,
				}, nil).Once()
			}

			service := NewCertificateService(progressRepo, certRepo, userRepo, testutil.NewTestLogger())
			service.now = func() time.Time { return fixedNow }

			cert, err := service.Issue(context.Background(), "u-1", tt.fullName)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, cert)
				certRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedName, cert.FullName)
				assert.Equal(t, "u-1", cert.UserID)
			}

			progressRepo.AssertExpectations(t)
			certRepo.AssertExpectations(t)
			userRepo.AssertExpectations(t)
		})
	}
}

func TestCertificateService_Issue_SavesGivenName(t *testing.T) {
	progressRepo := new(testutil.MockProgressRepository)
	certRepo := new(testutil.MockCertificateRepository)

	certRepo.On("GetByUser", mock.Anything, "u-1").Return(nil, nil).Once()
	progressRepo.On("GetProgress", mock.Anything, "u-1").Return(testutil.NewCompletedProgress(), nil)
	certRepo.On("Save", mock.Anything, mock.MatchedBy(func(c *domain.Certificate) bool {
		_, err := uuid.Parse(c.ID)
		return err == nil && c.FullName == "Ada" && c.IssuedAt.Equal(fixedNow)
	})).Return(nil)
	certRepo.On("GetByUser", mock.Anything, "u-1").Return(&domain.Certificate{ID: "c", UserID: "u-1", FullName: "Ada"}, nil).Once()

	service := NewCertificateService(progressRepo, certRepo, new(testutil.MockUserRepository), testutil.NewTestLogger())
	service.now = func() time.Time { return fixedNow }

	_, err := service.Issue(context.Background(), "u-1", "Ada")

	require.NoError(t, err)
	certRepo.AssertExpectations(t)
}

func TestCertificateService_Get(t *testing.T) {
	id := uuid.NewString()
	cert := &domain.Certificate{ID: id, UserID: "u-1", FullName: "Ada Lovelace", IssuedAt: fixedNow}

	tests := []struct {
		name          string
		id            string
		stored        *domain.Certificate
		expectedError error
	}{
		{name: "found", id: id, stored: cert},
		{name: "missing", id: id, stored: nil, expectedError: domain.ErrNotFound},
		{name: "malformed id", id: "nope", expectedError: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			certRepo := new(testutil.MockCertificateRepository)
			if tt.id == id {
				certRepo.On("Get", mock.Anything, id).Return(tt.stored, nil)
			}

			service := NewCertificateService(new(testutil.MockProgressRepository), certRepo, new(testutil.MockUserRepository), testutil.NewTestLogger())

			got, err := service.Get(context.Background(), tt.id)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, cert, got)
			}

			pdf, err := service.PDF(context.Background(), tt.id)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
				assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
			}
		})
	}
}
