package controllers

import (
	"encoding/json"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"hotel-reservation-backend/services"
	"hotel-reservation-backend/utils"
)

// mediaFolder is the folder hint passed to the media store for catalog photos.
const mediaFolder = "room-types"

type RoomTypeController struct {
	roomTypes services.RoomTypeService
	media     services.MediaStore
}

func NewRoomTypeController(roomTypes services.RoomTypeService, media services.MediaStore) *RoomTypeController {
	return &RoomTypeController{roomTypes: roomTypes, media: media}
}

func (rt *RoomTypeController) GetRoomTypes(c *gin.Context) {
	rows, err := rt.roomTypes.List(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rows)
}

func (rt *RoomTypeController) GetRoomType(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	roomType, err := rt.roomTypes.Get(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, roomType)
}

// uploadFiles pushes each multipart file to the media store and returns the
// resulting URLs. Uploads happen before any DB write; if a later step fails
// the remote images are orphaned, which is accepted.
func (rt *RoomTypeController) uploadFiles(c *gin.Context, files []*multipart.FileHeader) ([]string, bool) {
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "unreadable image file")
			return nil, false
		}
		url, err := rt.media.Upload(c.Request.Context(), f, mediaFolder)
		f.Close()
		if err != nil {
			log.Printf("image upload failed: %v", err)
			utils.JSONError(c, http.StatusInternalServerError, "image upload failed")
			return nil, false
		}
		urls = append(urls, url)
	}
	return urls, true
}

// CreateRoomType accepts multipart form data: name, description, maxGuests,
// primaryIndex, images[].
func (rt *RoomTypeController) CreateRoomType(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid form data")
		return
	}

	name := c.PostForm("name")
	description := c.PostForm("description")
	maxGuests, _ := strconv.Atoi(c.PostForm("maxGuests"))
	primaryIndex, err := strconv.Atoi(c.PostForm("primaryIndex"))
	if err != nil {
		primaryIndex = 0
	}

	urls, ok := rt.uploadFiles(c, form.File["images"])
	if !ok {
		return
	}

	roomType, err := rt.roomTypes.Create(c.Request.Context(), services.CreateRoomTypeInput{
		Name:         name,
		Description:  description,
		MaxGuests:    maxGuests,
		ImageURLs:    urls,
		PrimaryIndex: primaryIndex,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, roomType)
}

// UpdateRoomType accepts multipart form data: name, description, maxGuests,
// remainingImages (JSON array of kept image ids), primaryKey
// ("existing-<id>" | "new-<index>"), images[] (new files).
func (rt *RoomTypeController) UpdateRoomType(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid form data")
		return
	}

	maxGuests, _ := strconv.Atoi(c.PostForm("maxGuests"))

	remaining := []uint{}
	if raw := strings.TrimSpace(c.PostForm("remainingImages")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &remaining); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid remainingImages")
			return
		}
	}

	urls, ok := rt.uploadFiles(c, form.File["images"])
	if !ok {
		return
	}

	err = rt.roomTypes.Update(c.Request.Context(), id, services.UpdateRoomTypeInput{
		Name:              c.PostForm("name"),
		Description:       c.PostForm("description"),
		MaxGuests:         maxGuests,
		RemainingImageIDs: remaining,
		NewImageURLs:      urls,
		PrimaryKey:        c.PostForm("primaryKey"),
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Room type updated")
}

func (rt *RoomTypeController) DeleteRoomType(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := rt.roomTypes.Delete(c.Request.Context(), id); err != nil {
		serviceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Room type deleted")
}

func (rt *RoomTypeController) GetImages(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	images, err := rt.roomTypes.ListImages(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, images)
}

type addImagePayload struct {
	ImageURL  string `json:"imageUrl"`
	IsPrimary bool   `json:"isPrimary"`
}

func (rt *RoomTypeController) AddImage(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var payload addImagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	if err := rt.roomTypes.AddImageByURL(c.Request.Context(), id, payload.ImageURL, payload.IsPrimary); err != nil {
		serviceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusCreated, "Image added")
}

func (rt *RoomTypeController) SetPrimaryImage(c *gin.Context) {
	imageID, ok := idParam(c, "imageId")
	if !ok {
		return
	}
	if err := rt.roomTypes.SetPrimaryImage(c.Request.Context(), imageID); err != nil {
		serviceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Primary image updated")
}

func (rt *RoomTypeController) DeleteImage(c *gin.Context) {
	imageID, ok := idParam(c, "imageId")
	if !ok {
		return
	}
	if err := rt.roomTypes.DeleteImage(c.Request.Context(), imageID); err != nil {
		serviceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Image deleted")
}

func (rt *RoomTypeController) GetRates(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	rates, err := rt.roomTypes.ListRates(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rates)
}

type setRatePayload struct {
	PricePerNight string `json:"pricePerNight"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
}

func (rt *RoomTypeController) SetRate(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var payload setRatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	rate, err := rt.roomTypes.SetRate(c.Request.Context(), id, services.SetRateInput{
		PricePerNight: payload.PricePerNight,
		StartDate:     payload.StartDate,
		EndDate:       payload.EndDate,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, rate)
}
