package routes

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studyclub-io/study-club-be/db"
	"github.com/studyclub-io/study-club-be/middleware"
	"github.com/studyclub-io/study-club-be/services"
	"github.com/studyclub-io/study-club-be/util"
)

const maxUploadBytes = 5 << 20

type uploadRoutes struct {
	bucket *services.StorageBucket
}

func AddUploadRoutes(group *gin.RouterGroup, database db.Database, sessions *services.Sessions, bucket *services.StorageBucket) {
	routes := uploadRoutes{bucket: bucket}
	uploads := group.Group("/uploads", middleware.Auth(database, sessions, nil))
	uploads.POST("", util.HandlerWrapper(routes.upload, &util.HandlerOpts{CreatedStatus: true}))
}

func (ur *uploadRoutes) upload(c *gin.Context) (interface{}, *util.HTTPError) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, &util.HTTPError{Status: http.StatusBadRequest, Message: "file is required"}
	}
	if fileHeader.Size > maxUploadBytes {
		return nil, &util.HTTPError{Status: http.StatusRequestEntityTooLarge, Message: "file too large"}
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, &util.HTTPError{Status: http.StatusBadRequest, Message: "could not read the file"}
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return nil, &util.HTTPError{Status: http.StatusBadRequest, Message: "could not read the file"}
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	url, err := ur.bucket.Put(c, data, contentType, "uploads")
	if err != nil {
		return nil, &util.HTTPError{
			Status:  http.StatusInternalServerError,
			Message: "upload failed",
			Cause:   err,
		}
	}
	return gin.H{"url": url}, nil
}
