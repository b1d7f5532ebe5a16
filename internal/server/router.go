package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"petiscaria/internal/analytics"
	cartctrl "petiscaria/internal/cart/controller"
	feedctrl "petiscaria/internal/feed/controller"
	orderctrl "petiscaria/internal/order/controller"
	"petiscaria/internal/product"
	"petiscaria/internal/session"
)

// Handlers groups the controllers mounted by NewRouter.
type Handlers struct {
	Session   *session.Controller
	Guard     session.Checker
	Feed      *feedctrl.Controller
	Cart      *cartctrl.Controller
	Order     *orderctrl.OrderController
	Product   *product.Controller
	Analytics *analytics.Controller
}

func NewRouter(h Handlers, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Post("/auth/login", h.Session.Login)
	r.Post("/auth/logout", h.Session.Logout)
	r.Get("/session", h.Session.Session)

	r.Group(func(r chi.Router) {
		r.Use(session.RequireSession(h.Guard, logger))

		r.Get("/kitchen/orders", h.Feed.KitchenOrders)
		r.Post("/kitchen/orders/{orderId}/advance", h.Feed.Advance)
		r.Get("/waiter/ready", h.Feed.ReadyOrders)
		r.Post("/waiter/ready/{orderId}/ack", h.Feed.Acknowledge)
		r.Get("/ws/kitchen", h.Feed.KitchenStream)
		r.Get("/ws/waiter", h.Feed.WaiterStream)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.Get)
			r.Delete("/", h.Cart.Clear)
			r.Post("/items", h.Cart.AddLine)
			r.Patch("/items", h.Cart.SetQuantity)
			r.Delete("/items", h.Cart.RemoveLine)
			r.Post("/checkout", h.Cart.Checkout)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/recent", h.Order.Recent)
			r.Post("/{orderId}/items", h.Order.AddItems)
			r.Post("/{orderId}/reopen", h.Order.Reopen)
			r.Post("/{orderId}/cancel-reopen", h.Order.CancelReopen)
			r.Post("/{orderId}/paid", h.Order.MarkPaid)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/metrics", h.Analytics.Metrics)
			r.Get("/monthly-sales", h.Analytics.MonthlySales)
			r.Get("/statistics", h.Analytics.Statistics)
			r.Get("/target", h.Analytics.Target)
			r.Get("/goals", h.Analytics.ListGoals)
			r.Post("/goals", h.Analytics.CreateGoal)
			r.Patch("/goals/{goalId}", h.Analytics.UpdateGoal)
			r.Delete("/goals/{goalId}", h.Analytics.DeleteGoal)
		})

		r.Get("/tables", h.Analytics.Tables)
		r.Get("/products", h.Product.HandleListProducts)
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				zap.String("requestId", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("elapsed", time.Since(start)),
			)
		})
	}
}
