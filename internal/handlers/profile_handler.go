package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/taskreel/taskreel-api/internal/models"
)

// MaxReelSize caps a sample reel upload at 50 MB.
const MaxReelSize = 50 << 20

type ProfileHandler struct {
	DB        *gorm.DB
	BaseURL   string
	UploadDir string
}

func NewProfileHandler(db *gorm.DB, baseURL, uploadDir string) *ProfileHandler {
	return &ProfileHandler{DB: db, BaseURL: baseURL, UploadDir: uploadDir}
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "unauthorized",
		})
	}

	var u models.User
	if err := h.DB.First(&u, "id = ?", uid).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    userPayload(&u),
	})
}

type UpdateProfileReq struct {
	FullName    *string   `json:"full_name"`
	Phone       *string   `json:"phone"`
	Location    *string   `json:"location"`
	Bio         *string   `json:"bio"`
	InstagramID *string   `json:"instagram_id"`
	SampleReels *[]string `json:"sample_reels"`
}

// UpdateProfile patches the caller's own profile. Absent fields stay
// untouched.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "unauthorized",
		})
	}

	var u models.User
	if err := h.DB.First(&u, "id = ?", uid).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	}

	var req UpdateProfileReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	errs := FieldErrors{}

	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			errs.Add("full_name", "Full name cannot be empty")
		} else {
			u.FullName = name
		}
	}
	if req.Phone != nil {
		u.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Location != nil {
		u.Location = strings.TrimSpace(*req.Location)
	}
	if req.Bio != nil {
		u.Bio = strings.TrimSpace(*req.Bio)
	}
	if req.InstagramID != nil {
		instagram := strings.TrimSpace(*req.InstagramID)
		if instagram != "" && !instagramIDRe.MatchString(instagram) {
			errs.Add("instagram_id", "Instagram handle may only contain letters, numbers, dots and underscores")
		} else {
			u.InstagramID = instagram
		}
	}
	if req.SampleReels != nil {
		reels := make([]string, 0, len(*req.SampleReels))
		for _, r := range *req.SampleReels {
			if r = strings.TrimSpace(r); r != "" {
				reels = append(reels, r)
			}
		}
		if len(reels) > models.SampleReelCount {
			errs.Add("sample_reels", fmt.Sprintf("At most %d sample reels", models.SampleReelCount))
		} else {
			b, _ := json.Marshal(reels)
			u.SampleReels = datatypes.JSON(b)
		}
	}

	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	if err := h.DB.Save(&u).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update profile",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated",
		"data":    userPayload(&u),
	})
}

var reelExts = map[string]bool{
	".mp4": true, ".mov": true, ".webm": true, ".m4v": true, ".avi": true,
}

// UploadReel stores a sample reel video and appends its public URL to the
// caller's reels. A freelancer carries at most three.
func (h *ProfileHandler) UploadReel(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "unauthorized",
		})
	}

	var u models.User
	if err := h.DB.First(&u, "id = ?", uid).Error; err != nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	}

	reels := u.ReelURLs()
	if len(reels) >= models.SampleReelCount {
		return c.Status(http.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": fmt.Sprintf("You already have %d sample reels", models.SampleReelCount),
		})
	}

	file, err := c.FormFile("reel")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Reel file missing",
		})
	}

	if file.Size <= 0 || file.Size > MaxReelSize {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Reel must be a video up to 50 MB",
		})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "video/") && !reelExts[ext] {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Only video files are accepted",
		})
	}

	uploadDir := filepath.Join(h.UploadDir, "reels", uid.String())
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create upload folder",
		})
	}

	filename := fmt.Sprintf("reel_%d%s", time.Now().UnixNano(), ext)
	savePath := filepath.Join(uploadDir, filename)

	if err := c.SaveFile(file, savePath); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to save reel",
		})
	}

	publicPath := "/uploads/reels/" + uid.String() + "/" + filename
	fullURL := publicPath
	if h.BaseURL != "" {
		fullURL = strings.TrimRight(h.BaseURL, "/") + publicPath
	}

	reels = append(reels, fullURL)
	b, _ := json.Marshal(reels)
	u.SampleReels = datatypes.JSON(b)

	if err := h.DB.Save(&u).Error; err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update profile",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"url":     fullURL,
		"data":    fiber.Map{"sample_reels": reels},
	})
}

type DeleteReelReq struct {
	URL string `json:"url"`
}

// DeleteReel drops a reel URL from the caller's profile and removes the
// stored file. A file already gone is not an error.
func (h *ProfileHandler) DeleteReel(c *fiber.Ctx) error {
	uid, err := getUserUUID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "unauthorized",
		})
	}

	var req DeleteReelReq
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Reel url required",
		})
	}

	var u models.User
	if err := h.DB.First(&u, "id = ?", uid).Error; err != nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	}

	target := strings.TrimSpace(req.URL)
	reels := u.ReelURLs()
	kept := make([]string, 0, len(reels))
	found := false
	for _, r := range reels {
		if r == target {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Reel not found on your profile",
		})
	}

	b, _ := json.Marshal(kept)
	u.SampleReels = datatypes.JSON(b)
	if err := h.DB.Save(&u).Error; err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update profile",
		})
	}

	// strip the base URL, then delete only inside the caller's own folder
	path := target
	if h.BaseURL != "" {
		path = strings.TrimPrefix(path, strings.TrimRight(h.BaseURL, "/"))
	}
	prefix := "/uploads/reels/" + uid.String() + "/"
	if strings.HasPrefix(path, prefix) {
		name := filepath.Base(strings.TrimPrefix(path, prefix))
		_ = os.Remove(filepath.Join(h.UploadDir, "reels", uid.String(), name))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Reel removed",
		"data":    fiber.Map{"sample_reels": kept},
	})
}
