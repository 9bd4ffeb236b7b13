package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC  domain.AuthUsecase
	schemas *validation.Registry
}

func NewAuthHandler(r gin.IRouter, authUC domain.AuthUsecase, schemas *validation.Registry) {
	handler := &AuthHandler{authUC: authUC, schemas: schemas}

	r.POST("/user-auth", handler.LoginUser)
	r.POST("/company-auth", handler.LoginCompany)
}

// LoginUser godoc
// @Summary      Issue a user token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      UserAuthRequest  true  "Credentials"
// @Success      200          {object}  response.ItemResponse{data=TokenView}
// @Failure      400          {object}  response.ErrorResponse
// @Failure      401          {object}  response.ErrorResponse
// @Failure      429          {object}  response.ErrorResponse
// @Router       /user-auth [post]
func (h *AuthHandler) LoginUser(c *gin.Context) {
	var req UserAuthRequest
	if !bindBody(c, h.schemas, schemaUserAuth, &req) {
		return
	}

	token, err := h.authUC.LoginUser(c.Request.Context(), req.Data.Username, req.Data.Password)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, TokenView{Token: token})
}

// LoginCompany godoc
// @Summary      Issue a company token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      CompanyAuthRequest  true  "Credentials"
// @Success      200          {object}  response.ItemResponse{data=TokenView}
// @Failure      400          {object}  response.ErrorResponse
// @Failure      401          {object}  response.ErrorResponse
// @Failure      429          {object}  response.ErrorResponse
// @Router       /company-auth [post]
func (h *AuthHandler) LoginCompany(c *gin.Context) {
	var req CompanyAuthRequest
	if !bindBody(c, h.schemas, schemaCompanyAuth, &req) {
		return
	}

	token, err := h.authUC.LoginCompany(c.Request.Context(), req.Data.Handle, req.Data.Password)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, TokenView{Token: token})
}
