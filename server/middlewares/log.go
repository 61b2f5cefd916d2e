package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const logKey = "log"

func NewLog(l *logrus.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(logKey, logrus.NewEntry(l).WithFields(logrus.Fields{
			"method": ctx.Request.Method,
			"path":   ctx.FullPath(),
		}))
	}
}

func GetLogger(ctx *gin.Context) *logrus.Entry {
	if v, ok := ctx.Get(logKey); ok {
		if e, ok := v.(*logrus.Entry); ok {
			return e
		}
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
