package app

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/timeline/internal/archive"
	"github.com/keyxmakerx/timeline/internal/cache"
	"github.com/keyxmakerx/timeline/internal/middleware"
	"github.com/keyxmakerx/timeline/internal/plugins/admin"
	"github.com/keyxmakerx/timeline/internal/plugins/audit"
	"github.com/keyxmakerx/timeline/internal/plugins/citations"
	"github.com/keyxmakerx/timeline/internal/plugins/events"
	"github.com/keyxmakerx/timeline/internal/plugins/findings"
	"github.com/keyxmakerx/timeline/internal/plugins/groups"
	"github.com/keyxmakerx/timeline/internal/plugins/media"
	"github.com/keyxmakerx/timeline/internal/plugins/timelines"
	"github.com/keyxmakerx/timeline/internal/templates/pages"
	"github.com/keyxmakerx/timeline/internal/widgets/relations"
	"github.com/keyxmakerx/timeline/internal/widgets/themes"
)

// services holds one service per plugin.
type services struct {
	timelines timelines.TimelineService
	events    events.EventService
	groups    groups.GroupService
	findings  findings.FindingService
	citations citations.CitationService
	images    media.ImageService
	relations relations.RelationshipService
	audit     audit.AuditService
	themes    themes.ThemeService
}

// RegisterRoutes builds every plugin's repository and service on the
// shared infrastructure and mounts their routes.
func (a *App) RegisterRoutes() {
	cfg := a.Config
	readCache := cache.New(a.Redis, cfg.Redis.CacheTTL)
	archiver := archive.NewClient(cfg.Archive, nil)

	citationSvc := citations.NewCitationService(citations.NewCitationRepository(a.DB), archiver)

	a.mountRoutes(services{
		timelines: timelines.NewTimelineService(timelines.NewMetaRepository(a.DB), readCache, cfg.Years),
		events:    events.NewEventService(events.NewEventRepository(a.DB), readCache, cfg.Export.Dir, cfg.Upload.MediaURL),
		groups:    groups.NewGroupService(groups.NewGroupRepository(a.DB), readCache),
		findings:  findings.NewFindingService(findings.NewFindingRepository(a.DB)),
		citations: citationSvc,
		images:    media.NewImageService(media.NewImageRepository(a.DB), citationSvc, cfg.Upload.MediaPath, cfg.Upload.MaxSize),
		relations: relations.NewRelationshipService(relations.NewRelationshipRepository(a.DB)),
		audit:     audit.NewAuditService(audit.NewAuditRepository(a.DB)),
		themes:    themes.NewThemeService(themes.NewThemeRepository(a.DB), readCache),
	})
}

// mountRoutes registers the public pages, the slug-scoped read API and,
// when enabled, the admin write API.
func (a *App) mountRoutes(svc services) {
	e := a.Echo

	e.GET("/", a.index(svc.timelines))
	e.GET("/healthz", a.healthz)

	timelineHandler := timelines.NewHandler(svc.timelines)
	eventHandler := events.NewHandler(svc.events)
	groupHandler := groups.NewHandler(svc.groups)
	findingHandler := findings.NewHandler(svc.findings)
	citationHandler := citations.NewHandler(svc.citations)
	mediaHandler := media.NewHandler(svc.images, a.Config.Upload.MediaURL)
	relationHandler := relations.NewHandler(svc.relations)

	// --- Read API (every route resolves :slug first) ---
	timelines.RegisterRoutes(e, timelineHandler, svc.timelines)
	events.RegisterRoutes(e, eventHandler, svc.timelines)
	groups.RegisterRoutes(e, groupHandler, svc.timelines)
	findings.RegisterRoutes(e, findingHandler, svc.timelines)
	media.RegisterRoutes(e, mediaHandler)

	// --- Admin write API ---
	if adminGroup := admin.NewGroup(a.ctx, e, a.Config.Admin.TokenHash); adminGroup != nil {
		adminGroup.Use(audit.Record(svc.audit, admin.Prefix))
		audit.RegisterRoutes(adminGroup, audit.NewHandler(svc.audit))
		citations.RegisterRoutes(adminGroup, citationHandler)
		groups.RegisterAdminRoutes(adminGroup, groupHandler)
		findings.RegisterAdminRoutes(adminGroup, findingHandler)
		media.RegisterAdminRoutes(adminGroup, mediaHandler, a.Config.Upload.MaxSize)
		relations.RegisterRoutes(adminGroup, relationHandler)
		themes.RegisterRoutes(adminGroup, themes.NewHandler(svc.themes))
	}
}

// index renders the list of registered timelines (GET /).
func (a *App) index(svc timelines.TimelineService) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := svc.List(c.Request().Context())
		if err != nil {
			return err
		}
		links := make([]pages.TimelineLink, 0, len(list))
		for _, m := range list {
			links = append(links, pages.TimelineLink{Slug: m.Slug, Title: m.Title, Subtitle: m.Subtitle})
		}
		return middleware.Render(c, http.StatusOK, pages.Index(links))
	}
}

// healthz reports whether MariaDB answers (GET /healthz). Redis is not
// checked since the cache degrades to direct reads.
func (a *App) healthz(c echo.Context) error {
	if a.DB != nil {
		if err := a.DB.PingContext(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "database unavailable"})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
