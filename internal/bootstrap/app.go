package bootstrap

import (
	"strings"

	"github.com/gin-gonic/gin"

	"jobtailor/internal/ailog"
	"jobtailor/internal/generate"
	"jobtailor/internal/llm"
	openai "jobtailor/internal/llm/openai"
	"jobtailor/internal/pdfrender"
	"jobtailor/internal/profiles"
	"jobtailor/internal/services/health"
	"jobtailor/internal/shared/config"
	"jobtailor/internal/shared/server"
	"jobtailor/internal/shared/storage/object"
	localstore "jobtailor/internal/shared/storage/object/local"
	"jobtailor/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	Uploads         object.ObjectStore
	ProfileStore    *profiles.FileStore
	Session         *generate.Session
	AILog           *ailog.Logger
	LLM             llm.Client
	Renderer        pdfrender.Renderer
	ProfileService  *profiles.Service
	GenerateService *generate.Service
	ProfileHandler  *profiles.Handler
	GenerateHandler *generate.Handler
	Health          *health.Service
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	aiLog := ailog.New(cfg.AILogPath, cfg.AILogFullPayload)

	llmClient, err := buildLLM(cfg, aiLog)
	if err != nil {
		return nil, err
	}

	uploads := localstore.New(cfg.UploadDir)
	profileStore := profiles.NewFileStore(cfg.ProfilesDir)
	session := generate.NewSession()

	profileSvc := profiles.NewService(profileStore, llmClient, session)
	generateSvc := &generate.Service{
		Session:   session,
		Generator: &generate.Generator{LLM: llmClient},
		LLM:       llmClient,
		Renderer:  buildRenderer(cfg),
		OutputDir: cfg.OutputDir,
	}

	app := &App{
		Config:          cfg,
		Uploads:         uploads,
		ProfileStore:    profileStore,
		Session:         session,
		AILog:           aiLog,
		LLM:             llmClient,
		Renderer:        generateSvc.Renderer,
		ProfileService:  profileSvc,
		GenerateService: generateSvc,
		ProfileHandler:  profiles.NewHandler(profileSvc, uploads),
		GenerateHandler: generate.NewHandler(session, generateSvc, uploads, profileStore, aiLog),
		Health:          health.NewService(),
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		Health:          app.Health,
		ProfileHandler:  app.ProfileHandler,
		GenerateHandler: app.GenerateHandler,
	})

	return app, nil
}

func buildLLM(cfg config.Config, aiLog *ailog.Logger) (llm.Client, error) {
	if cfg.LLMProvider == "openai" && strings.TrimSpace(cfg.OpenAIAPIKey) != "" {
		return openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, aiLog)
	}
	telemetry.Warn("bootstrap.llm_placeholder", map[string]any{"provider": cfg.LLMProvider})
	return llm.PlaceholderClient{}, nil
}

func buildRenderer(cfg config.Config) pdfrender.Renderer {
	if cfg.PDFRenderer == "chrome" {
		return pdfrender.NewChromeRenderer(cfg.ChromePath)
	}
	return pdfrender.Noop{}
}
