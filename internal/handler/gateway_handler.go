package handler

import (
	"net/http"
	"strings"

	"wedding-gateway/internal/gateway"
	"wedding-gateway/internal/model"
	apperrors "wedding-gateway/pkg/app_errors"
	"wedding-gateway/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxPhotoBytes = 25 << 20

type GatewayHandler struct {
	gateway gateway.Gateway
}

func NewGatewayHandler(gateway gateway.Gateway) *GatewayHandler {
	return &GatewayHandler{gateway: gateway}
}

func (h *GatewayHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("photos", h.UploadPhoto)
		router.GET("photos", h.FetchGuestPhotos)
		router.POST("trivia-results", h.SaveTriviaResult)
		router.POST("rsvps", h.SaveRSVP)
		router.POST("song-requests", h.SaveSongRequest)
		router.GET("song-requests", h.FetchSongRequests)
		router.GET("auth/google", h.SignInWithGoogle)
		router.POST("auth/email", h.SignInWithEmail)
		router.GET("auth/user", h.GetCurrentUser)
		router.POST("notifications/photo-upload", h.SendPhotoUploadNotification)
	}
}

// UploadPhoto takes a multipart form: file, uploader_name, and optional email and whatsapp.
func (h *GatewayHandler) UploadPhoto(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		handleError(c, apperrors.InvalidInput("UploadPhoto", "file is required"), "UploadPhoto")
		return
	}
	if header.Size > maxPhotoBytes {
		handleError(c, apperrors.InvalidInput("UploadPhoto", "file is too large"), "UploadPhoto")
		return
	}

	file, err := header.Open()
	if err != nil {
		handleError(c, apperrors.InvalidInput("UploadPhoto", "file could not be read"), "UploadPhoto")
		return
	}
	defer file.Close()

	uploaded, err := h.gateway.UploadPhoto(c, model.PhotoUpload{
		FileName:     header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		Size:         header.Size,
		Content:      file,
		UploaderName: strings.TrimSpace(c.PostForm("uploader_name")),
		Email:        optionalForm(c, "email"),
		Whatsapp:     optionalForm(c, "whatsapp"),
	})
	if err != nil {
		handleError(c, err, "UploadPhoto")
		return
	}

	respond(c, http.StatusCreated, uploaded)
}

func (h *GatewayHandler) FetchGuestPhotos(c *gin.Context) {
	photos, err := h.gateway.FetchGuestPhotos(c)
	if err != nil {
		handleError(c, err, "FetchGuestPhotos")
		return
	}

	respond(c, http.StatusOK, photos)
}

func (h *GatewayHandler) SaveTriviaResult(c *gin.Context) {
	var req model.TriviaSubmission

	if err := BindJson(c, &req); err != nil {
		return
	}

	result, err := h.gateway.SaveTriviaResult(c, req)
	if err != nil {
		handleError(c, err, "SaveTriviaResult")
		return
	}

	respond(c, http.StatusCreated, result)
}

func (h *GatewayHandler) SaveRSVP(c *gin.Context) {
	var payload model.RsvpPayload

	if err := BindJson(c, &payload); err != nil {
		return
	}

	guest, err := h.gateway.SaveRSVP(c, payload)
	if err != nil {
		handleError(c, err, "SaveRSVP")
		return
	}

	respond(c, http.StatusCreated, guest)
}

func (h *GatewayHandler) SaveSongRequest(c *gin.Context) {
	var req model.SongSubmission

	if err := BindJson(c, &req); err != nil {
		return
	}

	song, err := h.gateway.SaveSongRequest(c, req)
	if err != nil {
		handleError(c, err, "SaveSongRequest")
		return
	}

	respond(c, http.StatusCreated, song)
}

func (h *GatewayHandler) FetchSongRequests(c *gin.Context) {
	songs, err := h.gateway.FetchSongRequests(c)
	if err != nil {
		handleError(c, err, "FetchSongRequests")
		return
	}

	respond(c, http.StatusOK, songs)
}

type googleSignInQuery struct {
	Redirect bool `form:"redirect"`
}

// SignInWithGoogle answers with the provider URL, or sends the browser there when ?redirect=true.
func (h *GatewayHandler) SignInWithGoogle(c *gin.Context) {
	var q googleSignInQuery

	if err := BindQuery(c, &q); err != nil {
		return
	}

	redirect, err := h.gateway.SignInWithGoogle(c)
	if err != nil {
		handleError(c, err, "SignInWithGoogle")
		return
	}

	if q.Redirect {
		c.Redirect(http.StatusFound, redirect.URL)
		return
	}
	respond(c, http.StatusOK, redirect)
}

type emailSignInRequest struct {
	Email string `json:"email"`
}

func (h *GatewayHandler) SignInWithEmail(c *gin.Context) {
	var req emailSignInRequest

	if err := BindJson(c, &req); err != nil {
		return
	}

	dispatch, err := h.gateway.SignInWithEmail(c, req.Email)
	if err != nil {
		handleError(c, err, "SignInWithEmail")
		return
	}

	respond(c, http.StatusOK, dispatch)
}

// GetCurrentUser always answers 200; data is null when nobody is signed in.
func (h *GatewayHandler) GetCurrentUser(c *gin.Context) {
	user := h.gateway.GetCurrentUser(c, bearerToken(c))
	if user == nil {
		respond(c, http.StatusOK, nil)
		return
	}

	respond(c, http.StatusOK, user)
}

type photoUploadNotificationRequest struct {
	UploaderName string `json:"uploader_name"`
	Email        string `json:"email"`
}

func (h *GatewayHandler) SendPhotoUploadNotification(c *gin.Context) {
	var req photoUploadNotificationRequest

	if err := BindJson(c, &req); err != nil {
		return
	}

	receipt, err := h.gateway.SendPhotoUploadNotification(c, req.UploaderName, req.Email)
	if err != nil {
		handleError(c, err, "SendPhotoUploadNotification")
		return
	}

	respond(c, http.StatusOK, receipt)
}

// Helper functions

func optionalForm(c *gin.Context, key string) *string {
	v, ok := c.GetPostForm(key)
	if !ok {
		return nil
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "Bearer ") {
		if h != "" {
			logger.WithComponent("handler").Debug("ignoring non-bearer authorization header", zap.Int("length", len(h)))
		}
		return ""
	}
	return strings.TrimSpace(h[7:])
}
