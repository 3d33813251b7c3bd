package restserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/chrissnell/lunarday/internal/log"
	"github.com/chrissnell/lunarday/pkg/config"
	"github.com/chrissnell/lunarday/pkg/lunar"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type contextKey string

const requestIDContextKey contextKey = "request-id"

// Controller represents the REST server controller
type Controller struct {
	ctx            context.Context
	wg             *sync.WaitGroup
	configProvider config.ConfigProvider
	serverConfig   config.ServerData
	Server         http.Server
	engine         *lunar.Engine
	observers      map[string]observer
	observerNames  []string
	logger         *zap.SugaredLogger
	handlers       *Handlers
	now            func() time.Time
}

// observer is a configured observer with its time zone loaded
type observer struct {
	config.ObserverData
	loc *time.Location
}

// NewController creates a new REST server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, configProvider config.ConfigProvider, engine *lunar.Engine, logger *zap.SugaredLogger) (*Controller, error) {
	if engine == nil {
		return nil, errors.New("REST server needs a lunar engine")
	}

	ctrl := &Controller{
		ctx:            ctx,
		wg:             wg,
		configProvider: configProvider,
		engine:         engine,
		observers:      make(map[string]observer),
		logger:         logger,
		now:            time.Now,
	}

	sc, err := configProvider.GetServerConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading server configuration: %v", err)
	}
	ctrl.serverConfig = *sc

	observers, err := configProvider.GetObservers()
	if err != nil {
		return nil, fmt.Errorf("error loading observers: %v", err)
	}
	if len(observers) == 0 {
		logger.Info("no observers configured; only coordinate queries will be served")
	}

	for _, o := range observers {
		loc, err := o.Location()
		if err != nil {
			return nil, err
		}
		ctrl.observers[o.Name] = observer{ObserverData: o, loc: loc}
		ctrl.observerNames = append(ctrl.observerNames, o.Name)
	}

	// If a listen address was not provided, listen on all interfaces
	if ctrl.serverConfig.ListenAddr == "" {
		logger.Infof("server.listen-addr not provided; defaulting to %s (all interfaces)", config.DefaultListenAddr)
		ctrl.serverConfig.ListenAddr = config.DefaultListenAddr
	}

	if ctrl.serverConfig.HTTPPort == 0 {
		logger.Infof("server.http-port not provided; defaulting to %d", config.DefaultHTTPPort)
		ctrl.serverConfig.HTTPPort = config.DefaultHTTPPort
	}

	ctrl.handlers = NewHandlers(ctrl)

	ctrl.Server.Addr = fmt.Sprintf("%v:%v", ctrl.serverConfig.ListenAddr, ctrl.serverConfig.HTTPPort)
	ctrl.Server.Handler = handlers.CompressHandler(
		handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{logger}))(ctrl.setupRouter()),
	)
	ctrl.Server.ReadTimeout = ctrl.serverConfig.ReadTimeout
	ctrl.Server.WriteTimeout = ctrl.serverConfig.WriteTimeout

	return ctrl, nil
}

// StartController starts the REST server
func (c *Controller) StartController() error {
	log.Infof("Starting REST server on %s...", c.Server.Addr)
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		var err error
		if c.serverConfig.TLSCertPath != "" && c.serverConfig.TLSKeyPath != "" {
			err = c.Server.ListenAndServeTLS(c.serverConfig.TLSCertPath, c.serverConfig.TLSKeyPath)
		} else {
			err = c.Server.ListenAndServe()
		}
		if !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("REST server error: %v", err)
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the REST server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("REST server shutdown: %v", err)
		}
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()
	router.Use(c.requestLogMiddleware)

	router.HandleFunc("/observers", c.handlers.GetObservers).Methods(http.MethodGet)
	router.HandleFunc("/lunar", c.handlers.GetCoordinateSnapshot).Methods(http.MethodGet)
	router.HandleFunc("/lunar/{observer}", c.handlers.GetObserverSnapshot).Methods(http.MethodGet)
	router.HandleFunc("/lunar/{observer}/range", c.handlers.GetObserverRange).Methods(http.MethodGet)
	router.HandleFunc("/logs/http", c.handlers.GetHTTPLogs).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(c.handlers.NotFound)

	return router
}

// requestLogMiddleware tags each request with an ID and records it in the
// HTTP log buffer once served
func (c *Controller) requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		started := time.Now()

		ctx := context.WithValue(r.Context(), requestIDContextKey, id)
		next.ServeHTTP(rec, r.WithContext(ctx))

		log.LogHTTPRequest(log.HTTPRequest{
			RequestID:  id,
			Method:     r.Method,
			Path:       r.URL.RequestURI(),
			Status:     rec.status,
			Duration:   time.Since(started),
			Size:       rec.size,
			RemoteAddr: r.RemoteAddr,
			UserAgent:  r.UserAgent(),
			Err:        rec.err,
		})
	})
}

// requestID returns the ID assigned by requestLogMiddleware
func requestID(req *http.Request) string {
	if id, ok := req.Context().Value(requestIDContextKey).(string); ok {
		return id
	}
	return ""
}

// lookupObserver finds a configured observer by name
func (c *Controller) lookupObserver(name string) (observer, error) {
	o, ok := c.observers[name]
	if !ok {
		return observer{}, fmt.Errorf("%w: %s", config.ErrUnknownObserver, name)
	}
	return o, nil
}

// statusRecorder captures what a handler wrote so it can be logged
type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
	err    error
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	n, err := s.ResponseWriter.Write(b)
	s.size += n
	if err != nil {
		s.err = err
	}
	return n, err
}

// recoveryLogger reports handler panics through zap
type recoveryLogger struct {
	logger *zap.SugaredLogger
}

func (r recoveryLogger) Println(args ...any) {
	r.logger.Error(args...)
}
