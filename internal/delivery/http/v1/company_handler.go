package v1

import (
	"fmt"
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	companyUC domain.CompanyUsecase
	schemas   *validation.Registry
}

func NewCompanyHandler(r gin.IRouter, companyUC domain.CompanyUsecase, schemas *validation.Registry) {
	handler := &CompanyHandler{companyUC: companyUC, schemas: schemas}

	companies := r.Group("/companies")
	{
		companies.GET("", handler.List)
		companies.POST("", handler.Create)
		companies.GET("/:handle", handler.Get)
		companies.PATCH("/:handle", handler.Update)
		companies.DELETE("/:handle", handler.Delete)
	}
}

// ListCompanies godoc
// @Summary      List companies
// @Tags         companies
// @Produce      json
// @Param        skip   query     int  false  "Number of companies to skip"  default(0)
// @Param        limit  query     int  false  "Maximum number of companies"  default(99)
// @Success      200    {object}  response.ListResponse{data=[]CompanyView}
// @Failure      400    {object}  response.ErrorResponse
// @Router       /companies [get]
func (h *CompanyHandler) List(c *gin.Context) {
	page, err := parsePagination(c, defaultCompanyLimit)
	if err != nil {
		c.Error(err)
		return
	}

	companies, total, err := h.companyUC.ListCompanies(c.Request.Context(), page)
	if err != nil {
		c.Error(err)
		return
	}
	response.List(c, total, toCompanyViews(companies))
}

// CreateCompany godoc
// @Summary      Sign up a company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        company  body      CreateCompanyRequest  true  "Company"
// @Success      201      {object}  response.ItemResponse{data=CompanyView}
// @Failure      400      {object}  response.ErrorResponse
// @Failure      409      {object}  response.ErrorResponse
// @Router       /companies [post]
func (h *CompanyHandler) Create(c *gin.Context) {
	var req CreateCompanyRequest
	if !bindBody(c, h.schemas, schemaCompanyNew, &req) {
		return
	}

	company, err := h.companyUC.CreateCompany(c.Request.Context(), req.toDomain())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, toCompanyView(company))
}

// GetCompany godoc
// @Summary      Get a company
// @Tags         companies
// @Produce      json
// @Param        handle  path      string  true  "Company handle"
// @Success      200     {object}  response.ItemResponse{data=CompanyView}
// @Failure      404     {object}  response.ErrorResponse
// @Router       /companies/{handle} [get]
func (h *CompanyHandler) Get(c *gin.Context) {
	company, err := h.companyUC.GetCompany(c.Request.Context(), c.Param("handle"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, toCompanyView(company))
}

// UpdateCompany godoc
// @Summary      Update a company
// @Description  Renaming a company refreshes the cached name on its users.
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        handle   path      string                true  "Company handle"
// @Param        company  body      UpdateCompanyRequest  true  "Fields to change"
// @Success      200      {object}  response.ItemResponse{data=CompanyView}
// @Failure      400      {object}  response.ErrorResponse
// @Failure      401      {object}  response.ErrorResponse
// @Failure      403      {object}  response.ErrorResponse
// @Failure      404      {object}  response.ErrorResponse
// @Router       /companies/{handle} [patch]
// @Security     BearerAuth
func (h *CompanyHandler) Update(c *gin.Context) {
	var req UpdateCompanyRequest
	if !bindBody(c, h.schemas, schemaCompanyUpdate, &req) {
		return
	}

	company, err := h.companyUC.UpdateCompany(c.Request.Context(), c.GetHeader("Authorization"), c.Param("handle"), req.toDomain())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, toCompanyView(company))
}

// DeleteCompany godoc
// @Summary      Delete a company
// @Description  Refused with 409 while jobs or employees reference the company, unless cascading deletes are enabled.
// @Tags         companies
// @Produce      json
// @Param        handle  path      string  true  "Company handle"
// @Success      200     {object}  response.ItemResponse{data=HandleView}
// @Failure      401     {object}  response.ErrorResponse
// @Failure      403     {object}  response.ErrorResponse
// @Failure      404     {object}  response.ErrorResponse
// @Failure      409     {object}  response.ErrorResponse
// @Router       /companies/{handle} [delete]
// @Security     BearerAuth
func (h *CompanyHandler) Delete(c *gin.Context) {
	handle := c.Param("handle")
	if err := h.companyUC.DeleteCompany(c.Request.Context(), c.GetHeader("Authorization"), handle); err != nil {
		c.Error(err)
		return
	}
	response.Receipt(c, http.StatusOK, fmt.Sprintf("The company '%s' was deleted successfully.", handle), HandleView{Handle: handle})
}
