package common

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/skillswap/config"
	"github.com/DhavalSuthar-24/skillswap/internal/models"
	"github.com/DhavalSuthar-24/skillswap/internal/realtime"
	"github.com/DhavalSuthar-24/skillswap/pkg/logging"
	"github.com/DhavalSuthar-24/skillswap/pkg/metrics"
	"github.com/DhavalSuthar-24/skillswap/pkg/responses"
)

// Deps is what every Register*Routes function receives.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Bus     realtime.Publisher
	Logger  *logging.Logger
	Metrics *metrics.Metrics
}

// Log returns a component logger, falling back to a discarding one.
func (d Deps) Log(component string) *logging.Logger {
	if d.Logger == nil {
		return logging.Discard()
	}
	return d.Logger.Named(component)
}

// ParamUUID parses a path parameter as a uuid, answering 400 on failure.
func ParamUUID(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid "+label+" ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}

// PageParams reads page and pageSize query values, defaulting pageSize to def.
func PageParams(c *gin.Context, def int) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(def)))
	return models.Page(page, pageSize, def)
}
