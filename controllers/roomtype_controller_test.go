package controllers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hotel-reservation-backend/models"
	"hotel-reservation-backend/services"
)

type mockRoomTypeService struct {
	mock.Mock
}

func (m *mockRoomTypeService) List(ctx context.Context) ([]services.RoomTypeSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.RoomTypeSummary), args.Error(1)
}

func (m *mockRoomTypeService) Get(ctx context.Context, id uint) (*models.RoomType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RoomType), args.Error(1)
}

func (m *mockRoomTypeService) Create(ctx context.Context, in services.CreateRoomTypeInput) (*models.RoomType, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RoomType), args.Error(1)
}

func (m *mockRoomTypeService) Update(ctx context.Context, id uint, in services.UpdateRoomTypeInput) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *mockRoomTypeService) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRoomTypeService) ListImages(ctx context.Context, roomTypeID uint) ([]models.RoomTypeImage, error) {
	args := m.Called(ctx, roomTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RoomTypeImage), args.Error(1)
}

func (m *mockRoomTypeService) AddImageByURL(ctx context.Context, roomTypeID uint, imageURL string, isPrimary bool) error {
	return m.Called(ctx, roomTypeID, imageURL, isPrimary).Error(0)
}

func (m *mockRoomTypeService) SetPrimaryImage(ctx context.Context, imageID uint) error {
	return m.Called(ctx, imageID).Error(0)
}

func (m *mockRoomTypeService) DeleteImage(ctx context.Context, imageID uint) error {
	return m.Called(ctx, imageID).Error(0)
}

func (m *mockRoomTypeService) ListRates(ctx context.Context, roomTypeID uint) ([]models.RoomRate, error) {
	args := m.Called(ctx, roomTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RoomRate), args.Error(1)
}

func (m *mockRoomTypeService) SetRate(ctx context.Context, roomTypeID uint, in services.SetRateInput) (*models.RoomRate, error) {
	args := m.Called(ctx, roomTypeID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RoomRate), args.Error(1)
}

type mockMediaStore struct {
	mock.Mock
}

func (m *mockMediaStore) Upload(ctx context.Context, r io.Reader, folder string) (string, error) {
	args := m.Called(ctx, r, folder)
	return args.String(0), args.Error(1)
}

func newRoomTypeRouter(svc services.RoomTypeService, media services.MediaStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	rt := NewRoomTypeController(svc, media)

	r := gin.New()
	r.GET("/room-types", rt.GetRoomTypes)
	r.GET("/room-types/:id", rt.GetRoomType)
	r.POST("/room-types", rt.CreateRoomType)
	r.PATCH("/room-types/:id", rt.UpdateRoomType)
	r.DELETE("/room-types/:id", rt.DeleteRoomType)
	r.POST("/room-types/:id/images", rt.AddImage)
	r.PATCH("/images/:imageId/primary", rt.SetPrimaryImage)
	r.DELETE("/images/:imageId", rt.DeleteImage)
	r.POST("/room-types/:id/rates", rt.SetRate)
	return r
}

func multipartBody(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for name, content := range files {
		fw, err := mw.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func TestCreateRoomType(t *testing.T) {
	svc := new(mockRoomTypeService)
	media := new(mockMediaStore)
	media.On("Upload", mock.Anything, mock.Anything, "room-types").
		Return("https://cdn.example.com/room-types/a.jpg", nil)
	svc.On("Create", mock.Anything, services.CreateRoomTypeInput{
		Name:         "Deluxe Room",
		Description:  "Sea view",
		MaxGuests:    2,
		ImageURLs:    []string{"https://cdn.example.com/room-types/a.jpg"},
		PrimaryIndex: 0,
	}).Return(&models.RoomType{ID: 3, Name: "Deluxe Room", MaxGuests: 2}, nil)

	body, contentType := multipartBody(t, map[string]string{
		"name":         "Deluxe Room",
		"description":  "Sea view",
		"maxGuests":    "2",
		"primaryIndex": "0",
	}, map[string][]byte{"a.jpg": []byte("img")})

	r := newRoomTypeRouter(svc, media)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/room-types", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Deluxe Room")
	svc.AssertExpectations(t)
	media.AssertExpectations(t)
}

func TestUpdateRoomTypeParsesForm(t *testing.T) {
	svc := new(mockRoomTypeService)
	media := new(mockMediaStore)
	media.On("Upload", mock.Anything, mock.Anything, "room-types").
		Return("https://cdn.example.com/room-types/b.jpg", nil)
	svc.On("Update", mock.Anything, uint(3), services.UpdateRoomTypeInput{
		Name:              "Deluxe Room",
		Description:       "Renovated",
		MaxGuests:         3,
		RemainingImageIDs: []uint{10, 12},
		NewImageURLs:      []string{"https://cdn.example.com/room-types/b.jpg"},
		PrimaryKey:        "new-0",
	}).Return(nil)

	body, contentType := multipartBody(t, map[string]string{
		"name":            "Deluxe Room",
		"description":     "Renovated",
		"maxGuests":       "3",
		"remainingImages": "[10,12]",
		"primaryKey":      "new-0",
	}, map[string][]byte{"b.jpg": []byte("img")})

	r := newRoomTypeRouter(svc, media)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/room-types/3", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestUpdateRoomTypeRejectsBadRemainingImages(t *testing.T) {
	svc := new(mockRoomTypeService)
	media := new(mockMediaStore)

	body, contentType := multipartBody(t, map[string]string{
		"name":            "Deluxe Room",
		"maxGuests":       "3",
		"remainingImages": "not-json",
	}, nil)

	r := newRoomTypeRouter(svc, media)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/room-types/3", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddImage(t *testing.T) {
	svc := new(mockRoomTypeService)
	svc.On("AddImageByURL", mock.Anything, uint(3), "https://cdn.example.com/x.jpg", true).
		Return(nil)

	r := newRoomTypeRouter(svc, new(mockMediaStore))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/room-types/3/images",
		strings.NewReader(`{"imageUrl":"https://cdn.example.com/x.jpg","isPrimary":true}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestSetPrimaryImageUnknown(t *testing.T) {
	svc := new(mockRoomTypeService)
	svc.On("SetPrimaryImage", mock.Anything, uint(99)).Return(services.ErrNotFound)

	r := newRoomTypeRouter(svc, new(mockMediaStore))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/images/99/primary", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetRate(t *testing.T) {
	t.Run("bad range", func(t *testing.T) {
		svc := new(mockRoomTypeService)
		svc.On("SetRate", mock.Anything, uint(3), mock.Anything).
			Return(nil, services.ErrInvalidRateRange)

		r := newRoomTypeRouter(svc, new(mockMediaStore))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/room-types/3/rates",
			strings.NewReader(`{"pricePerNight":"120.00","startDate":"2026-09-10","endDate":"2026-09-01"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("created", func(t *testing.T) {
		svc := new(mockRoomTypeService)
		svc.On("SetRate", mock.Anything, uint(3), services.SetRateInput{
			PricePerNight: "120.00",
			StartDate:     "2026-09-01",
			EndDate:       "2026-09-10",
		}).Return(&models.RoomRate{ID: 1, RoomTypeID: 3}, nil)

		r := newRoomTypeRouter(svc, new(mockMediaStore))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/room-types/3/rates",
			strings.NewReader(`{"pricePerNight":"120.00","startDate":"2026-09-01","endDate":"2026-09-10"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})
}
