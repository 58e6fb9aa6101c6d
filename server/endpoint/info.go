package endpoint

import (
	"maps"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/sypnna/version"
)

var startTime = time.Now()

// InfoResponse is the /info body.
type InfoResponse struct {
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	GitCommit string            `json:"git_commit"`
	BuildTime string            `json:"build_time"`
	GoVersion string            `json:"go_version"`
	Dirty     bool              `json:"is_dirty"`
	Uptime    string            `json:"uptime"`
	Details   map[string]string `json:"details,omitempty"`
}

// Info reports build information plus static details such as the active
// transcription provider. details is copied; later changes are not seen.
func Info(serviceName string, details map[string]string) gin.HandlerFunc {
	details = maps.Clone(details)
	return func(c *gin.Context) {
		v := version.GetVersionInfo()
		c.JSON(http.StatusOK, InfoResponse{
			Service:   serviceName,
			Version:   v.Version,
			GitCommit: v.GitCommit,
			BuildTime: v.BuildTime,
			GoVersion: v.GoVersion,
			Dirty:     v.IsDirty,
			Uptime:    time.Since(startTime).Round(time.Second).String(),
			Details:   details,
		})
	}
}
