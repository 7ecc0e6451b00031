package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studyclub-io/study-club-be/db"
	"github.com/studyclub-io/study-club-be/util"
)

type healthRoutes struct {
	db db.Database
}

func AddHealthRoutes(group *gin.RouterGroup, database db.Database) {
	routes := healthRoutes{db: database}
	health := group.Group("/health")
	health.GET("", util.HandlerWrapper(routes.aliveCheck, &util.HandlerOpts{}))
}

func (hr *healthRoutes) aliveCheck(c *gin.Context) (interface{}, *util.HTTPError) {
	if err := hr.db.GetSQLDB().PingContext(c); err != nil {
		return nil, &util.HTTPError{
			Status:  http.StatusServiceUnavailable,
			Message: "database unreachable",
			Cause:   err,
		}
	}
	return nil, nil
}
