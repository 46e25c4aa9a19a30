package utils

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SendJSONResponse sends a JSON response with the given status code and data
func SendJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// HandleError standardizes error handling by sending a JSON error response
func HandleError(w http.ResponseWriter, status int, message string) {
	SendJSONResponse(w, status, map[string]string{
		"message": message,
	})
}

// SaveDataURI persists a base64 or data-URI encoded image under dir and
// returns the generated file name. The extension is sniffed from the URI
// header: jpeg/jpg -> .jpg, webp -> .webp, anything else -> .png.
func SaveDataURI(dir, data string) (string, error) {
	header := ""
	payload := data
	if strings.HasPrefix(data, "data:") {
		head, rest, found := strings.Cut(data, ",")
		if !found {
			return "", errors.New("malformed data URI")
		}
		header, payload = head, rest
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", err
	}

	ext := ".png"
	switch {
	case strings.Contains(header, "jpeg"), strings.Contains(header, "jpg"):
		ext = ".jpg"
	case strings.Contains(header, "webp"):
		ext = ".webp"
	}

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}

	name := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(dir, name), raw, 0o644); err != nil {
		return "", err
	}
	return name, nil
}

// HashPassword hashes a plaintext password using bcrypt
func HashPassword(password string) (string, error) {
	hashPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashPassword), nil
}

// DeleteImageFile deletes the specified file from the filesystem
func DeleteImageFile(filePath string) error {
	if err := os.Remove(filePath); err != nil {
		return err
	}
	return nil
}

func ErrorWithTrace(err error, errMessage string) error {
	if err != nil {
		// Skip 1 level to get the caller of this function
		_, file, line, _ := runtime.Caller(1)
		return fmt.Errorf("%s:%d: %v %s", file, line, err, errMessage)
	}
	return nil
}

func CheckPassword(hashedPassword, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	return err
}
