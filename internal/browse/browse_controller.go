package browse

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/skillswap/internal/common"
	"github.com/DhavalSuthar-24/skillswap/internal/middleware"
	"github.com/DhavalSuthar-24/skillswap/internal/rating"
	"github.com/DhavalSuthar-24/skillswap/pkg/responses"
)

type BrowseController struct {
	service *Service
}

func NewBrowseController(service *Service) *BrowseController {
	return &BrowseController{service: service}
}

// Browse godoc
// @Summary Find members to swap with
// @Tags Browse
// @Produce json
// @Param search query string false "Name or offered skill, case-insensitive"
// @Param category query string false "Exact category of an offered skill"
// @Success 200 {object} responses.SuccessResponse{data=[]Candidate}
// @Router /browse [get]
// @Security BearerAuth
func (bc *BrowseController) Browse(c *gin.Context) {
	identity, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	cands, err := bc.service.Candidates(c.Request.Context(), identity.UserID, c.Query("search"), c.Query("category"))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to browse members", err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Members retrieved successfully", cands)
}

func RegisterBrowseRoutes(router gin.IRouter, deps common.Deps) {
	service := NewService(NewBrowseRepository(deps.DB), rating.NewRatingRepository(deps.DB))
	browseController := NewBrowseController(service)
	router.GET("/browse", browseController.Browse)
}
