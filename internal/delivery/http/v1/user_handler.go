package v1

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

const photoField = "photo"

type UserHandler struct {
	userUC        domain.UserUsecase
	schemas       *validation.Registry
	maxPhotoBytes int64
}

// NewUserHandler registers the user routes. uploadLimit guards the photo
// upload route.
func NewUserHandler(r gin.IRouter, userUC domain.UserUsecase, schemas *validation.Registry, maxPhotoBytes int64, uploadLimit gin.HandlerFunc) {
	handler := &UserHandler{userUC: userUC, schemas: schemas, maxPhotoBytes: maxPhotoBytes}

	users := r.Group("/users")
	{
		users.GET("", handler.List)
		users.POST("", handler.Create)
		users.GET("/:username", handler.Get)
		users.PATCH("/:username", handler.Update)
		users.DELETE("/:username", handler.Delete)
		users.PUT("/:username/photo", uploadLimit, handler.UploadPhoto)
	}
}

// ListUsers godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        skip   query     int  false  "Number of users to skip"  default(0)
// @Param        limit  query     int  false  "Maximum number of users"  default(1000)
// @Success      200    {object}  response.ListResponse{data=[]UserView}
// @Failure      400    {object}  response.ErrorResponse
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	page, err := parsePagination(c, defaultLimit)
	if err != nil {
		c.Error(err)
		return
	}

	users, total, err := h.userUC.ListUsers(c.Request.Context(), page)
	if err != nil {
		c.Error(err)
		return
	}
	response.List(c, total, toUserViews(users))
}

// CreateUser godoc
// @Summary      Sign up a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user  body      CreateUserRequest  true  "User"
// @Success      201   {object}  response.ItemResponse{data=UserView}
// @Failure      400   {object}  response.ErrorResponse
// @Failure      409   {object}  response.ErrorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if !bindBody(c, h.schemas, schemaUserNew, &req) {
		return
	}

	user, err := h.userUC.CreateUser(c.Request.Context(), req.toDomain())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, toUserView(user))
}

// GetUser godoc
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  response.ItemResponse{data=UserView}
// @Failure      404       {object}  response.ErrorResponse
// @Router       /users/{username} [get]
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userUC.GetUser(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, toUserView(user))
}

// UpdateUser godoc
// @Summary      Update a user
// @Description  An empty currentCompanyId detaches the user from its company.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        username  path      string             true  "Username"
// @Param        user      body      UpdateUserRequest  true  "Fields to change"
// @Success      200       {object}  response.ItemResponse{data=UserView}
// @Failure      400       {object}  response.ErrorResponse
// @Failure      401       {object}  response.ErrorResponse
// @Failure      403       {object}  response.ErrorResponse
// @Failure      404       {object}  response.ErrorResponse
// @Failure      409       {object}  response.ErrorResponse
// @Router       /users/{username} [patch]
// @Security     BearerAuth
func (h *UserHandler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if !bindBody(c, h.schemas, schemaUserUpdate, &req) {
		return
	}

	user, err := h.userUC.UpdateUser(c.Request.Context(), c.GetHeader("Authorization"), c.Param("username"), req.toDomain())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, toUserView(user))
}

// DeleteUser godoc
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  response.ItemResponse{data=UsernameView}
// @Failure      401       {object}  response.ErrorResponse
// @Failure      403       {object}  response.ErrorResponse
// @Failure      404       {object}  response.ErrorResponse
// @Router       /users/{username} [delete]
// @Security     BearerAuth
func (h *UserHandler) Delete(c *gin.Context) {
	username := c.Param("username")
	if err := h.userUC.DeleteUser(c.Request.Context(), c.GetHeader("Authorization"), username); err != nil {
		c.Error(err)
		return
	}
	response.Receipt(c, http.StatusOK, fmt.Sprintf("The user '%s' was deleted successfully.", username), UsernameView{Username: username})
}

// UploadPhoto godoc
// @Summary      Upload a profile photo
// @Description  Accepts JPEG, PNG or GIF. The image is downsized and stored as JPEG.
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Param        photo     formData  file    true  "Image file"
// @Success      200       {object}  response.ItemResponse{data=UserView}
// @Failure      400       {object}  response.ErrorResponse
// @Failure      401       {object}  response.ErrorResponse
// @Failure      403       {object}  response.ErrorResponse
// @Failure      404       {object}  response.ErrorResponse
// @Failure      429       {object}  response.ErrorResponse
// @Router       /users/{username}/photo [put]
// @Security     BearerAuth
func (h *UserHandler) UploadPhoto(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxPhotoBytes+1<<10)

	file, err := c.FormFile(photoField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.Error(photoError(fmt.Sprintf("must be at most %d bytes", h.maxPhotoBytes)))
			return
		}
		c.Error(photoError("is required"))
		return
	}
	if file.Size > h.maxPhotoBytes {
		c.Error(photoError(fmt.Sprintf("must be at most %d bytes", h.maxPhotoBytes)))
		return
	}

	src, err := file.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	user, err := h.userUC.UpdatePhoto(c.Request.Context(), c.GetHeader("Authorization"), c.Param("username"), data)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, toUserView(user))
}

func photoError(message string) *apperror.AppError {
	return apperror.Validation("The photo upload is invalid.", []validation.FieldError{{Field: photoField, Message: message}})
}
