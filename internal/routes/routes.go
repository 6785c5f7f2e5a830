package routes

import (
	"time"

	"github.com/aiabusehotline/hotline-core/internal/config"
	"github.com/aiabusehotline/hotline-core/internal/handlers"
	"github.com/aiabusehotline/hotline-core/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	reportHandler *handlers.ReportHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
) {
	// Health stays unthrottled so orchestrator probes never trip a limit.
	app.Get("/health", healthHandler.Check)

	internal := app.Group("/internal")

	// Agent intake: 60 req/min per IP (the gateway batches many agents
	// behind one address)
	internal.Post("/report", ipLimiter(60), reportHandler.CreateInternalReport)

	// Public web form targets get a stricter limit: 10 req/min per IP
	internal.Post("/web-report", ipLimiter(10), reportHandler.CreateWebReport)

	// Operator API, guarded by the shared X-Admin-Token secret. Two
	// routes deliberately sit outside the guard: the key-hash lookup is
	// called by the agent gateway on every authenticated report, and the
	// partner-lead form posts straight from the public site.
	admin := internal.Group("/admin")
	adminToken := middleware.AdminRequired(cfg)

	admin.Get("/stats/summary", adminToken, adminHandler.StatsSummary)
	admin.Get("/reports", adminToken, adminHandler.ListReports)

	admin.Get("/agent_clients", adminToken, adminHandler.ListAgentClients)
	admin.Post("/agent_clients", adminToken, adminHandler.CreateAgentClient)
	// Registered before the :client_id route so "by_key" is never
	// captured as a client id.
	admin.Get("/agent_clients/by_key/:key_hash", adminHandler.GetAgentByKeyHash)
	admin.Get("/agent_clients/:client_id/stats", adminToken, adminHandler.AgentStats)

	admin.Post("/partner_leads", ipLimiter(10), adminHandler.CreatePartnerLead)
	admin.Get("/partner_leads", adminToken, adminHandler.ListPartnerLeads)
}

// ipLimiter returns a fresh sliding-window rate limiter keyed by client
// IP. Each call owns its own counters, so limits on different routes do
// not share a bucket.
func ipLimiter(maxPerMinute int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               maxPerMinute,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
}
