package auth

import (
	"time"

	"github.com/gin-gonic/gin"
)

var states = NewStateStore(5 * time.Minute)

func Init(e *gin.Engine, stateTTL time.Duration) {
	if stateTTL > 0 {
		states = NewStateStore(stateTTL)
	}

	{
		oauth2 := e.Group("/oauth2")

		oauth2.GET("/enabled", OAuth2EnabledAPI)

		oauth2.GET("/login/:type", OAuth2)

		oauth2.POST("/login/:type", OAuth2API)

		oauth2.GET("/callback/:type", OAuth2Callback)

		oauth2.POST("/callback/:type", OAuth2CallbackAPI)
	}
}
