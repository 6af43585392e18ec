package server

import (
	"log/slog"
	"net/http"

	"github.com/bensuskins/weekly-planner/internal/config"
	"github.com/bensuskins/weekly-planner/internal/handlers"
	"github.com/bensuskins/weekly-planner/internal/middleware"
	"github.com/bensuskins/weekly-planner/internal/repository"
	"github.com/bensuskins/weekly-planner/internal/services"
	"github.com/bensuskins/weekly-planner/internal/store"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	router *chi.Mux
	config config.Config
}

func New(state *store.State, repo repository.ResourceRepository, cfg config.Config) *Server {
	selection := services.NewSelection()
	clipper := services.NewClipper()

	itemService := services.NewItemService(state, repo, clipper)
	bundleService := services.NewBundleService(state, repo, selection)
	shoppingService := services.NewShoppingService(state, repo)
	weeklyService := services.NewWeeklyPlanService(state, repo)
	activityService := services.NewActivityService(state, repo)
	choreService := services.NewChoreService(state, repo)

	itemHandler := handlers.NewItemHandler(itemService)
	bundleHandler := handlers.NewBundleHandler(bundleService)
	shoppingHandler := handlers.NewShoppingHandler(shoppingService, selection)
	planHandler := handlers.NewPlanHandler(weeklyService, shoppingService, selection)
	activityHandler := handlers.NewActivityHandler(activityService)
	choreHandler := handlers.NewChoreHandler(choreService)
	resourceHandler := handlers.NewResourceHandler(repo, state)
	exportHandler := handlers.NewExportHandler(weeklyService)

	router := chi.NewRouter()

	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Compress(5))
	router.Use(middleware.Metrics)

	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())

	router.Get("/export/ical", exportHandler.Feed)

	router.Route("/api", func(r chi.Router) {
		r.Get("/resources/{name}", resourceHandler.Get)
		r.Put("/resources/{name}", resourceHandler.Put)

		r.Get("/items", itemHandler.List)
		r.Post("/items", itemHandler.Create)
		r.Post("/items/find-or-create", itemHandler.FindOrCreate)
		r.Get("/items/{id}", itemHandler.Get)
		r.Put("/items/{id}", itemHandler.Update)
		r.Delete("/items/{id}", itemHandler.Delete)
		r.Post("/items/{id}/sources", itemHandler.AddSource)

		r.Get("/bundles", bundleHandler.List)
		r.Post("/bundles", bundleHandler.Create)
		r.Get("/bundles/{id}", bundleHandler.Get)
		r.Put("/bundles/{id}", bundleHandler.Update)
		r.Delete("/bundles/{id}", bundleHandler.Delete)
		r.Get("/bundles/{id}/resolved", bundleHandler.Resolved)
		r.Post("/bundles/{id}/items", bundleHandler.AddItemRef)
		r.Put("/bundles/{id}/items/{itemID}", bundleHandler.UpdateItemQty)
		r.Delete("/bundles/{id}/items/{itemID}", bundleHandler.RemoveItemRef)
		r.Post("/bundles/{id}/select", bundleHandler.Select)

		r.Get("/activities", activityHandler.List)
		r.Post("/activities", activityHandler.Create)
		r.Put("/activities/{id}", activityHandler.Update)
		r.Delete("/activities/{id}", activityHandler.Delete)

		r.Get("/chores", choreHandler.List)
		r.Post("/chores", choreHandler.Create)
		r.Put("/chores/{id}", choreHandler.Update)
		r.Delete("/chores/{id}", choreHandler.Delete)

		r.Get("/shopping", shoppingHandler.List)
		r.Post("/shopping", shoppingHandler.AddManual)
		r.Post("/shopping/promote", shoppingHandler.Promote)
		r.Post("/shopping/clear", shoppingHandler.Clear)
		r.Get("/shopping/copy", shoppingHandler.Copy)
		r.Post("/shopping/{index}/{action}", shoppingHandler.Mutate)

		r.Get("/plan", planHandler.Get)
		r.Post("/plan/meals", planHandler.AddMeal)
		r.Delete("/plan/meals/{meal}/{day}/{index}", planHandler.RemoveMeal)
		r.Post("/plan/slots", planHandler.AddSlot)
		r.Delete("/plan/slots/{kind}/{key}/{index}", planHandler.RemoveSlot)
		r.Post("/plan/assign", planHandler.Assign)
		r.Post("/plan/clear", planHandler.Clear)
	})

	return &Server{router: router, config: cfg}
}

// Router exposes the configured mux, mainly for tests.
func (server *Server) Router() *chi.Mux {
	return server.router
}

func (server *Server) Start() error {
	address := ":" + server.config.Port
	slog.Info("starting server", "address", address)
	return http.ListenAndServe(address, server.router)
}
