package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"arogya/queue-service/internal/config"
)

// shutdownGrace bounds how long in-flight requests may run after the stop
// signal arrives.
const shutdownGrace = 10 * time.Second

type Server struct {
	engine *gin.Engine
}

func New(appEnv config.AppEnv) *Server {
	if appEnv == config.ProductionEnv {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.RedirectTrailingSlash = false

	return &Server{
		engine: r,
	}
}

// Serve blocks until the listener fails or ctx is cancelled, then drains
// in-flight requests within the grace period.
func (s *Server) Serve(ctx context.Context, address string) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Infof("queue api listening on %s", address)
	srvError := make(chan error)
	go func() {
		srvError <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("queue api draining in-flight requests")
		drainCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(drainCtx)
	case err := <-srvError:
		return err
	}
}
