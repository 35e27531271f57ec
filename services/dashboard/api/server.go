package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/plantops/maintenance-kpi-monitoring/services/dashboard/common"
	"github.com/plantops/maintenance-kpi-monitoring/services/dashboard/csvimport"
	"github.com/plantops/maintenance-kpi-monitoring/services/dashboard/dataset"
	"github.com/plantops/maintenance-kpi-monitoring/services/dashboard/engine"
)

var log = logger.GetOrCreate("api")

const importFileField = "file"

type server struct {
	router     *gin.Engine
	httpServer *http.Server
	storage    Storage
	engine     Engine
	serviceKey string
	listenAddr string
	wg         sync.WaitGroup
}

// dashboardResponse is the single JSON document the presentation layer renders from
type dashboardResponse struct {
	Period                common.Period            `json:"period"`
	Series                []common.MonthlyRecord   `json:"series"`
	KPIs                  []common.KPICard         `json:"kpis"`
	Ranking               []common.EquipmentRanked `json:"ranking"`
	Alerts                []common.CriticalAlert   `json:"alerts"`
	Backlog               common.BacklogSummary    `json:"backlog"`
	PreventiveShare       []common.PreventiveShare `json:"preventiveShare"`
	PreventiveShareStatus string                   `json:"preventiveShareStatus"`
}

// ArgsWebServer defines the web server arguments
type ArgsWebServer struct {
	ServiceKeyApi  string
	ListenAddress  string
	Storage        Storage
	Engine         Engine
	GeneralHandler func(http.Handler) http.Handler
}

// NewServer initializes the Gin engine and mounts all routes
func NewServer(args ArgsWebServer) (*server, error) {
	if check.IfNil(args.Storage) {
		return nil, errors.New("storage is required")
	}
	if check.IfNil(args.Engine) {
		return nil, errors.New("engine is required")
	}
	if args.GeneralHandler == nil {
		return nil, errors.New("nil http handler")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &server{
		router:     router,
		storage:    args.Storage,
		engine:     args.Engine,
		serviceKey: args.ServiceKeyApi,
		listenAddr: args.ListenAddress,
	}

	s.setupRoutes(args.GeneralHandler)
	return s, nil
}

func (s *server) setupRoutes(generalHandler func(http.Handler) http.Handler) {
	api := s.router.Group("/api")

	api.GET("/dashboard", s.handleDashboard)
	api.GET("/periods", s.handlePeriods)
	api.GET("/categories", s.handleCategories)
	api.GET("/template", s.handleTemplate)
	api.GET("/chart", s.handleChart)

	// the only mutation, guarded the same way the agents' write path is
	api.POST("/import", s.authAPIKey(), s.handleImport)

	s.httpServer = &http.Server{
		Addr:    s.listenAddr,
		Handler: generalHandler(s.router),
	}
}

// Start listens and serves connections
func (s *server) Start() {
	ln, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		log.Error("failed to listen", "error", err)
		return
	}
	s.listenAddr = ln.Addr().String()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		log.Info("starting HTTP server", "address", s.listenAddr)

		err := s.httpServer.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "error", err)
		}
	}()
}

// Address returns the actual listen address
func (s *server) Address() string {
	return s.listenAddr
}

// Close gracefully stops the server
func (s *server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return err
		}
	}
	s.wg.Wait()
	return nil
}

// --- Middlewares ---

// CORSMiddleware allows the dashboard frontend to be served from another origin
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Api-Key")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *server) authAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Api-Key")
		if key != s.serviceKey {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// --- Handlers ---

func (s *server) handleDashboard(c *gin.Context) {
	period, filtered, ok := s.filteredEquipments(c)
	if !ok {
		return
	}

	series := s.engine.Consolidate(filtered, period)
	shares := engine.PreventiveShare(series)

	c.JSON(http.StatusOK, dashboardResponse{
		Period:                period,
		Series:                series,
		KPIs:                  s.engine.DeriveKPIs(series),
		Ranking:               s.engine.RankByAvailability(filtered, period),
		Alerts:                s.engine.GenerateAlerts(filtered, period),
		Backlog:               engine.SummarizeBacklog(dataset.BacklogOrders, time.Now()),
		PreventiveShare:       shares,
		PreventiveShareStatus: preventiveShareStatus(shares),
	})
}

func (s *server) handlePeriods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"periods": dataset.Periods, "default": dataset.DefaultPeriodID})
}

func (s *server) handleCategories(c *gin.Context) {
	equipments, err := s.storage.GetEquipments(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, equipment := range equipments {
		if _, found := seen[equipment.Category]; found {
			continue
		}
		seen[equipment.Category] = struct{}{}
		categories = append(categories, equipment.Category)
	}
	sort.Strings(categories)

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (s *server) handleTemplate(c *gin.Context) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", csvimport.TemplateFilename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csvimport.Template()))
}

func (s *server) handleImport(c *gin.Context) {
	file, header, err := c.Request.FormFile(importFileField)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'file' form field"})
		return
	}
	defer func() {
		_ = file.Close()
	}()

	equipments, err := csvimport.ParseEquipments(file)
	if err != nil {
		// the previously held dataset stays untouched
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to process file: %s", err.Error())})
		return
	}
	if len(equipments) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no equipment rows found in file"})
		return
	}

	err = s.storage.ReplaceEquipments(c.Request.Context(), equipments)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Info("dataset imported", "file", header.Filename, "equipments", len(equipments))
	c.JSON(http.StatusOK, gin.H{"equipments": len(equipments)})
}

func (s *server) filteredEquipments(c *gin.Context) (common.Period, []common.Equipment, bool) {
	periodID := c.DefaultQuery("period", dataset.DefaultPeriodID)
	period, found := dataset.PeriodByID(periodID)
	if !found {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown period '%s'", periodID)})
		return common.Period{}, nil, false
	}

	equipments, err := s.storage.GetEquipments(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return common.Period{}, nil, false
	}

	filtered := engine.FilterEquipments(equipments, c.Query("category"), c.Query("equipmentId"))
	return period, filtered, true
}

func preventiveShareStatus(shares []common.PreventiveShare) string {
	if len(shares) == 0 {
		return common.KPIStatusWarning
	}

	last := shares[len(shares)-1]
	target := dataset.PreventiveShareTarget
	return engine.Classify(last.Share, &target, false)
}
