package middlewares

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shengfai/socialite/internal/conf"
	log "github.com/sirupsen/logrus"
	limiter "github.com/ulule/limiter/v3"
)

func Init(e *gin.Engine) error {
	e.
		Use(gin.LoggerWithWriter(log.StandardLogger().Out), gin.RecoveryWithWriter(log.StandardLogger().Out)).
		Use(NewCors()).
		Use(NewLog(log.StandardLogger()))
	if conf.Conf.RateLimit.Enable {
		d, err := time.ParseDuration(conf.Conf.RateLimit.Period)
		if err != nil {
			return fmt.Errorf("rate limit period: %w", err)
		}
		options := []limiter.Option{
			limiter.WithTrustForwardHeader(conf.Conf.RateLimit.TrustForwardHeader),
		}
		if conf.Conf.RateLimit.TrustedClientIPHeader != "" {
			options = append(options, limiter.WithClientIPHeader(conf.Conf.RateLimit.TrustedClientIPHeader))
		}
		e.Use(NewLimiter(d, conf.Conf.RateLimit.Limit, options...))
	}
	return nil
}
