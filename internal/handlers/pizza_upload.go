package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type multipartPizzaInput struct {
	Name           string
	NameSet        bool
	Price          float64
	PriceSet       bool
	Quantity       int
	QuantitySet    bool
	Ingredients    string
	IngredientsSet bool
	Popular        bool
	PopularSet     bool
	PhotoName      string
	PhotoSet       bool
}

// parseMultipartPizzaRequest reads the admin pizza form. Every field tracks
// whether it was present so updates can stay partial.
func parseMultipartPizzaRequest(c *gin.Context, uploadDir string) (multipartPizzaInput, error) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		return multipartPizzaInput{}, err
	}

	input := multipartPizzaInput{}

	if value, ok := c.GetPostForm("name"); ok {
		input.Name = strings.TrimSpace(value)
		input.NameSet = true
	}

	if value, ok := c.GetPostForm("ingredients"); ok {
		input.Ingredients = strings.TrimSpace(value)
		input.IngredientsSet = true
	}

	if value, ok := c.GetPostForm("price"); ok {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return multipartPizzaInput{}, fmt.Errorf("invalid price")
		}
		input.Price = parsed
		input.PriceSet = true
	}

	if value, ok := c.GetPostForm("quantity"); ok {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return multipartPizzaInput{}, fmt.Errorf("invalid quantity")
		}
		input.Quantity = parsed
		input.QuantitySet = true
	}

	if value, ok := c.GetPostForm("popular"); ok {
		parsed, err := parseBoolValue(value)
		if err != nil {
			return multipartPizzaInput{}, fmt.Errorf("popular must be boolean")
		}
		input.Popular = parsed
		input.PopularSet = true
	}

	file, err := c.FormFile("image")
	if err == nil {
		photoName, err := saveImage(file, uploadDir)
		if err != nil {
			return multipartPizzaInput{}, err
		}
		input.PhotoName = photoName
		input.PhotoSet = true
	} else if !errors.Is(err, http.ErrMissingFile) &&
		!strings.Contains(err.Error(), "no such file") {
		return multipartPizzaInput{}, err
	}

	return input, nil
}

const maxImageSize = 5 << 20

var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

func validateImageExtension(filename string) (string, error) {
	extension := strings.ToLower(filepath.Ext(filename))
	if extension == "" {
		return "", fmt.Errorf("image file extension is required")
	}
	if _, ok := allowedImageExtensions[extension]; !ok {
		return "", fmt.Errorf("unsupported image type: %s", extension)
	}
	return extension, nil
}

// saveImage stores an uploaded pizza photo under <uploadDir>/uploads/pizzas
// and returns the relative path persisted on the document.
func saveImage(file *multipart.FileHeader, uploadDir string) (string, error) {
	extension, err := validateImageExtension(file.Filename)
	if err != nil {
		return "", err
	}
	if file.Size > maxImageSize {
		return "", fmt.Errorf("image file too large (max 5MB)")
	}

	filename := uuid.NewString() + extension

	dir := filepath.Join(uploadDir, "uploads", "pizzas")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.WithError(err).Errorf("saveImage: failed to create directory %s", dir)
		return "", err
	}

	fullPath := filepath.Join(dir, filename)

	out, err := os.Create(fullPath)
	if err != nil {
		log.WithError(err).Errorf("saveImage: failed to create file %s", fullPath)
		return "", err
	}
	defer out.Close()

	in, err := file.Open()
	if err != nil {
		return "", err
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		log.WithError(err).Errorf("saveImage: failed to save file %s", fullPath)
		return "", err
	}

	return filepath.ToSlash(filepath.Join("uploads", "pizzas", filename)), nil
}

// safeDeleteUpload removes a stored upload, refusing anything that resolves
// outside <uploadDir>/uploads. Missing files are not an error.
func safeDeleteUpload(uploadDir, relPath string) error {
	trimmed := strings.TrimSpace(relPath)
	if trimmed == "" {
		return nil
	}

	cleanRel := path.Clean("/" + strings.TrimPrefix(trimmed, "/"))
	cleanRel = strings.TrimPrefix(cleanRel, "/")

	if !strings.HasPrefix(cleanRel, "uploads/") {
		return fmt.Errorf("refusing to delete non-upload path: %s", relPath)
	}

	cleanBase := filepath.Clean(uploadDir)
	targetPath := filepath.Join(cleanBase, filepath.FromSlash(cleanRel))
	cleanTarget := filepath.Clean(targetPath)
	if cleanTarget != cleanBase && !strings.HasPrefix(cleanTarget, cleanBase+string(os.PathSeparator)) {
		return fmt.Errorf("refusing to delete path outside upload root: %s", relPath)
	}

	if err := os.Remove(cleanTarget); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return nil
}

func parseBoolValue(value string) (bool, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "on" {
		return true, nil
	}
	return strconv.ParseBool(value)
}
