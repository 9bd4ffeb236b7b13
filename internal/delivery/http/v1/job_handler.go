package v1

import (
	"fmt"
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC   domain.JobUsecase
	userUC  domain.UserUsecase
	schemas *validation.Registry
}

func NewJobHandler(r gin.IRouter, jobUC domain.JobUsecase, userUC domain.UserUsecase, schemas *validation.Registry) {
	handler := &JobHandler{jobUC: jobUC, userUC: userUC, schemas: schemas}

	jobs := r.Group("/jobs")
	{
		jobs.GET("", handler.List)
		jobs.POST("", handler.Create)
		jobs.GET("/:id", handler.Get)
		jobs.PATCH("/:id", handler.Update)
		jobs.DELETE("/:id", handler.Delete)
		jobs.POST("/:id/applications", handler.Apply)
	}
}

// ListJobs godoc
// @Summary      List jobs
// @Tags         jobs
// @Produce      json
// @Param        skip   query     int  false  "Number of jobs to skip"  default(0)
// @Param        limit  query     int  false  "Maximum number of jobs"  default(1000)
// @Success      200    {object}  response.ListResponse{data=[]JobView}
// @Failure      400    {object}  response.ErrorResponse
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	page, err := parsePagination(c, defaultLimit)
	if err != nil {
		c.Error(err)
		return
	}

	jobs, total, err := h.jobUC.ListJobs(c.Request.Context(), page)
	if err != nil {
		c.Error(err)
		return
	}
	response.List(c, total, toJobViews(jobs))
}

// CreateJob godoc
// @Summary      Create a job
// @Description  The token must belong to the company named by companyId.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      CreateJobRequest  true  "Job"
// @Success      201  {object}  response.ItemResponse{data=JobView}
// @Failure      400  {object}  response.ErrorResponse
// @Failure      401  {object}  response.ErrorResponse
// @Failure      403  {object}  response.ErrorResponse
// @Failure      404  {object}  response.ErrorResponse
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req CreateJobRequest
	if !bindBody(c, h.schemas, schemaJobNew, &req) {
		return
	}

	job, err := h.jobUC.CreateJob(c.Request.Context(), c.GetHeader("Authorization"), req.toDomain())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, toJobView(job))
}

// GetJob godoc
// @Summary      Get a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.ItemResponse{data=JobView}
// @Failure      404  {object}  response.ErrorResponse
// @Router       /jobs/{id} [get]
func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.jobUC.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, toJobView(job))
}

// UpdateJob godoc
// @Summary      Update a job
// @Description  Only the fields present are changed. Moving a job requires owning both companies.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      string            true  "Job ID"
// @Param        job  body      UpdateJobRequest  true  "Fields to change"
// @Success      200  {object}  response.ItemResponse{data=JobView}
// @Failure      400  {object}  response.ErrorResponse
// @Failure      401  {object}  response.ErrorResponse
// @Failure      403  {object}  response.ErrorResponse
// @Failure      404  {object}  response.ErrorResponse
// @Router       /jobs/{id} [patch]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	var req UpdateJobRequest
	if !bindBody(c, h.schemas, schemaJobUpdate, &req) {
		return
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), c.GetHeader("Authorization"), c.Param("id"), req.toDomain())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, toJobView(job))
}

// DeleteJob godoc
// @Summary      Delete a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.ItemResponse{data=JobView}
// @Failure      401  {object}  response.ErrorResponse
// @Failure      403  {object}  response.ErrorResponse
// @Failure      404  {object}  response.ErrorResponse
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	job, err := h.jobUC.DeleteJob(c.Request.Context(), c.GetHeader("Authorization"), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Receipt(c, http.StatusOK, fmt.Sprintf("Job '%s' deleted.", job.ID), toJobView(job))
}

// ApplyToJob godoc
// @Summary      Apply to a job
// @Description  Adds the job to the applied list of the user named by the token.
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.ItemResponse{data=UserView}
// @Failure      401  {object}  response.ErrorResponse
// @Failure      403  {object}  response.ErrorResponse
// @Failure      404  {object}  response.ErrorResponse
// @Router       /jobs/{id}/applications [post]
// @Security     BearerAuth
func (h *JobHandler) Apply(c *gin.Context) {
	user, err := h.userUC.ApplyToJob(c.Request.Context(), c.GetHeader("Authorization"), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, toUserView(user))
}
