package services_test

import (
	"context"
	"testing"

	"github.com/medmarket/backend/internal/application/services"
	"github.com/medmarket/backend/internal/domain/entities"
	"github.com/medmarket/backend/internal/domain/repositories"
	apperrors "github.com/medmarket/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newDoctorFixture() (*MockUserRepository, *MockAdRepository, *MockCityRepository, *MockCategoryRepository, *MockDoctorSearchRepository, *services.DoctorService) {
	userRepo := new(MockUserRepository)
	adRepo := new(MockAdRepository)
	cityRepo := new(MockCityRepository)
	categoryRepo := new(MockCategoryRepository)
	searchRepo := new(MockDoctorSearchRepository)
	service := services.NewDoctorService(userRepo, adRepo, cityRepo, categoryRepo, searchRepo)
	return userRepo, adRepo, cityRepo, categoryRepo, searchRepo, service
}

func strPtr(v string) *string { return &v }

func TestDoctorService_SearchDoctors(t *testing.T) {
	ctx := context.Background()

	userRepo, _, _, _, _, service := newDoctorFixture()

	filter := repositories.DoctorSearchFilter{
		FirstName: strPtr("Grace"),
		Category:  strPtr("dentistry"),
	}
	userRepo.On("SearchDoctors", mock.Anything, filter).Return([]*entities.User{
		{ID: "doc-1", FirstName: "Grace", Role: entities.RoleDoctor},
	}, nil)

	doctors, err := service.SearchDoctors(ctx, filter)

	assert.NoError(t, err)
	assert.Len(t, doctors, 1)
	assert.Equal(t, "doc-1", doctors[0].ID)
}

func TestDoctorService_SuggestDoctors(t *testing.T) {
	ctx := context.Background()

	t.Run("delegates to the search index", func(t *testing.T) {
		_, _, _, _, searchRepo, service := newDoctorFixture()

		searchRepo.On("Suggest", mock.Anything, "gra", 10).Return([]entities.DoctorSummary{
			{ID: "doc-1", FirstName: "Grace"},
		}, nil)

		doctors, err := service.SuggestDoctors(ctx, "gra")

		assert.NoError(t, err)
		assert.Len(t, doctors, 1)
	})

	t.Run("returns empty without a search index", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := services.NewDoctorService(userRepo, new(MockAdRepository), new(MockCityRepository), new(MockCategoryRepository), nil)

		doctors, err := service.SuggestDoctors(ctx, "gra")

		assert.NoError(t, err)
		assert.Empty(t, doctors)
	})
}

func TestDoctorService_GetDoctorProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("returns a doctor profile", func(t *testing.T) {
		userRepo, _, _, _, _, service := newDoctorFixture()

		userRepo.On("GetByID", mock.Anything, "doc-1").Return(&entities.User{
			ID: "doc-1", Role: entities.RoleDoctor,
		}, nil)

		doctor, err := service.GetDoctorProfile(ctx, "doc-1")

		assert.NoError(t, err)
		assert.Equal(t, "doc-1", doctor.ID)
	})

	t.Run("non-doctor users are reported as not found", func(t *testing.T) {
		userRepo, _, _, _, _, service := newDoctorFixture()

		userRepo.On("GetByID", mock.Anything, "client-1").Return(&entities.User{
			ID: "client-1", Role: entities.RoleClient,
		}, nil)

		_, err := service.GetDoctorProfile(ctx, "client-1")

		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestDoctorService_GetRecommendedAds(t *testing.T) {
	ctx := context.Background()

	t.Run("surfaces well-rated ads in the caller's city", func(t *testing.T) {
		userRepo, adRepo, cityRepo, categoryRepo, _, service := newDoctorFixture()

		userRepo.On("GetByID", mock.Anything, "client-1").Return(&entities.User{
			ID: "client-1", CityID: strPtr("city-1"),
		}, nil)
		cityRepo.On("GetByID", mock.Anything, "city-1").Return(&entities.City{ID: "city-1", Name: "Lagos"}, nil)
		adRepo.On("ListByCityAndRatingBetween", mock.Anything, "Lagos", 3.0, 5.0).Return([]*entities.Ad{
			{ID: "ad-1", DoctorID: "doc-1", CategoryID: "cat-1", Rating: 4.2},
		}, nil)
		userRepo.On("GetByID", mock.Anything, "doc-1").Return(&entities.User{
			ID: "doc-1", FirstName: "Grace", Role: entities.RoleDoctor, Rating: 4.2,
		}, nil)
		categoryRepo.On("GetByID", mock.Anything, "cat-1").Return(&entities.Category{ID: "cat-1", Name: "Dentistry"}, nil)

		ads, err := service.GetRecommendedAds(ctx, "client-1")

		assert.NoError(t, err)
		assert.Len(t, ads, 1)
		assert.Equal(t, "Dentistry", ads[0].Category)
		assert.Equal(t, "Grace", ads[0].Doctor.FirstName)
		adRepo.AssertCalled(t, "ListByCityAndRatingBetween", mock.Anything, "Lagos", 3.0, 5.0)
	})

	t.Run("fails when the caller has no city", func(t *testing.T) {
		userRepo, adRepo, _, _, _, service := newDoctorFixture()

		userRepo.On("GetByID", mock.Anything, "client-1").Return(&entities.User{ID: "client-1"}, nil)

		_, err := service.GetRecommendedAds(ctx, "client-1")

		assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
		adRepo.AssertNotCalled(t, "ListByCityAndRatingBetween")
	})
}

func TestDoctorService_GetAdByID(t *testing.T) {
	ctx := context.Background()

	t.Run("category lookup failures do not fail the request", func(t *testing.T) {
		userRepo, adRepo, _, categoryRepo, _, service := newDoctorFixture()

		adRepo.On("GetByID", mock.Anything, "ad-1").Return(&entities.Ad{
			ID: "ad-1", DoctorID: "doc-1", CategoryID: "cat-1",
		}, nil)
		userRepo.On("GetByID", mock.Anything, "doc-1").Return(&entities.User{ID: "doc-1"}, nil)
		categoryRepo.On("GetByID", mock.Anything, "cat-1").
			Return(nil, apperrors.NewNotFoundError("category not found"))

		ad, err := service.GetAdByID(ctx, "ad-1")

		assert.NoError(t, err)
		assert.Equal(t, "", ad.Category)
	})
}
