package controllers

import (
	"fmt"
	"log"
	"net/http"

	"gateway/models"
	"gateway/utils"
)

var (
	publicBaseURL = "http://localhost:8000"
	uploadDir     = "uploads"
)

func SetUploadConfig(baseURL, dir string) {
	publicBaseURL = baseURL
	uploadDir = dir
}

// UploadImage persists a base64/data-URI image and returns the URL it will
// be served from.
func UploadImage(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Image string `json:"image"`
	}
	if err := decodeAction(r, &in); err != nil {
		utils.HandleError(w, http.StatusBadRequest, "Invalid action payload")
		return
	}
	if in.Image == "" {
		utils.HandleError(w, http.StatusBadRequest, "Image data is required")
		return
	}

	name, err := utils.SaveDataURI(uploadDir, in.Image)
	if err != nil {
		utils.HandleError(w, http.StatusBadRequest, "Invalid image data: "+err.Error())
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, models.ImageResponse{
		ImageURL: fmt.Sprintf("%s/uploads/%s", publicBaseURL, name),
	})
}
