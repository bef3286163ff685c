package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-reservation-backend/services"
	"hotel-reservation-backend/utils"
)

type UploadController struct {
	media services.MediaStore
}

func NewUploadController(media services.MediaStore) *UploadController {
	return &UploadController{media: media}
}

// Upload takes a multipart file plus an optional folder hint and returns the
// durable URL for it.
func (uc *UploadController) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "no file provided")
		return
	}

	f, err := fh.Open()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "unreadable file")
		return
	}
	defer f.Close()

	url, err := uc.media.Upload(c.Request.Context(), f, c.PostForm("folder"))
	if err != nil {
		log.Printf("upload failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "upload failed")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"url": url})
}
