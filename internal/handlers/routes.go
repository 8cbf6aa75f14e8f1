package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/localnerve/mparser-center/internal/config"
	"github.com/localnerve/mparser-center/internal/middleware"
	"github.com/localnerve/mparser-center/internal/models"
	"github.com/localnerve/mparser-center/internal/probe"
	"github.com/localnerve/mparser-center/internal/services"
	"github.com/localnerve/mparser-center/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MessageRouteNotFound answers requests that match no route
const MessageRouteNotFound = "接口不存在"

// Deps is everything the HTTP layer is built from
type Deps struct {
	Config    *config.Config
	DB        *gorm.DB
	Log       *logrus.Logger
	Prober    *probe.Prober
	StartedAt time.Time
}

// NewApp builds the Fiber app with the shared middleware, every API route and
// the envelope-shaped error and 404 handlers. Metrics and docs are mounted by the caller.
func NewApp(d Deps, mount ...func(app *fiber.App)) *fiber.App {
	hide := d.Config.IsProduction()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return utils.FailFrom(c, err, hide)
		},
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Output: d.Log.Writer(),
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New())

	for _, m := range mount {
		m(app)
	}

	Routes(app, d)

	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, MessageRouteNotFound)
	})

	return app
}

// Routes mounts the root status routes and everything under /api
func Routes(app *fiber.App, d Deps) {
	base := Base{DB: d.DB, Log: d.Log, HideInternal: d.Config.IsProduction()}

	appHandler := &AppHandler{Base: base, Config: d.Config, StartedAt: d.StartedAt}
	app.Get("/", appHandler.Status)
	app.Get("/healthz", appHandler.Health)

	api := app.Group("/api")

	gateways := &NodeHandler[models.Gateway]{Base: base, View: services.GatewayView, Register: services.RegisterGateway}
	gatewayLinks := &LinkHandler{
		Base:  base,
		Links: services.GatewayNDS,
		Render: func(db *gorm.DB, id uint) (interface{}, error) {
			return services.GatewayNDS.List(db, id)
		},
	}
	gw := api.Group("/gateway")
	gw.Post("/register", gateways.HandleRegister)
	gw.Get("/", gateways.List)
	gw.Get("/:id", gateways.Get)
	gw.Put("/:id", gateways.Update)
	gw.Delete("/:id", gateways.Delete)
	gw.Post("/:id/logout", gateways.Logout)
	gw.Get("/:id/nds", gatewayLinks.List)
	gw.Put("/:id/nds", gatewayLinks.Replace)
	gw.Post("/:id/nds", gatewayLinks.AddOne)
	gw.Delete("/:id/nds", gatewayLinks.RemoveMany)
	gw.Delete("/:id/nds/:ndsId", gatewayLinks.RemoveOne)

	scanners := &NodeHandler[models.Scanner]{Base: base, View: services.ScannerView, Register: services.RegisterScanner}
	scannerLinks := &LinkHandler{
		Base:  base,
		Links: services.ScannerNDS,
		Render: func(db *gorm.DB, id uint) (interface{}, error) {
			return services.ScannerView.Get(db, id)
		},
	}
	sc := api.Group("/scanner")
	sc.Post("/register", scanners.HandleRegister)
	sc.Post("/gateway", scanners.SetGateway)
	sc.Post("/nds", scannerLinks.AddMany)
	sc.Delete("/nds", scannerLinks.RemoveMany)
	sc.Get("/", scanners.List)
	sc.Get("/:id", scanners.Get)
	sc.Put("/:id", scanners.Update)
	sc.Delete("/:id", scanners.Delete)
	sc.Post("/:id/logout", scanners.Logout)
	sc.Get("/:id/nds", scannerLinks.List)
	sc.Put("/:id/nds", scannerLinks.Replace)
	sc.Post("/:id/nds", scannerLinks.AddMany)
	sc.Delete("/:id/nds", scannerLinks.RemoveMany)
	sc.Delete("/:id/nds/:ndsId", scannerLinks.RemoveOne)

	parsers := &NodeHandler[models.Parser]{Base: base, View: services.ParserView, Register: services.RegisterParser, Registered: "解析器注册成功"}
	ps := api.Group("/parser")
	ps.Post("/register", parsers.HandleRegister)
	ps.Post("/gateway", parsers.SetGateway)
	ps.Get("/", parsers.List)
	ps.Get("/:id", parsers.Get)
	ps.Put("/:id", parsers.Update)
	ps.Delete("/:id", parsers.Delete)
	ps.Post("/:id/logout", parsers.Logout)

	nds := &NDSHandler{Base: base, Prober: d.Prober, ProbeTimeout: d.Config.ProbeTimeout}
	ng := api.Group("/nds")
	ng.Get("/list", nds.List)
	ng.Post("/add", nds.Create)
	ng.Get("/:id", nds.Get)
	ng.Put("/:id", nds.Update)
	ng.Delete("/:id", nds.Delete)
	ng.Post("/:id/test", nds.Test)

	tasks := &TaskHandler{Base: base}
	tg := api.Group("/task")
	tg.Post("/add", tasks.Create)
	tg.Get("/list", tasks.List)
	tg.Get("/detail/:taskId", tasks.Detail)
	tg.Put("/:taskId/enbs", tasks.UpdateEnbs)
	tg.Delete("/:taskId", tasks.Delete)

	cells := &CellDataHandler{Base: base}
	cg := api.Group("/cell")
	cg.Get("/list", cells.List)
	cg.Post("/add", cells.Create)
	cg.Post("/update", cells.Update)
	cg.Delete("/remove/:cgi", cells.Remove)
	cg.Post("/batch-delete", cells.BatchDelete)
	cg.Get("/check/:cgi", cells.Check)
}
