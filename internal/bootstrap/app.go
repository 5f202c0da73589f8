package bootstrap

import (
	"log"

	"github.com/gin-gonic/gin"

	"docclassify-backend/internal/classify"
	"docclassify-backend/internal/extract"
	"docclassify-backend/internal/llm"
	openai "docclassify-backend/internal/llm/openai"
	"docclassify-backend/internal/platforms"
	"docclassify-backend/internal/shared/config"
	"docclassify-backend/internal/shared/server"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	Processor       *extract.Processor
	LLM             llm.Client
	Connector       *platforms.Connector
	ClassifySvc     *classify.Service
	ClassifyHandler *classify.Handler
	PlatformHandler *platforms.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	llmClient, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}

	processor := extract.NewProcessor(extract.NewTesseractOCR(cfg.OCRLanguage))
	connector := platforms.NewConnector(cfg)

	classifySvc := &classify.Service{
		Processor: processor,
		LLM:       llmClient,
	}

	app := &App{
		Config:          cfg,
		Processor:       processor,
		LLM:             llmClient,
		Connector:       connector,
		ClassifySvc:     classifySvc,
		ClassifyHandler: classify.NewHandler(classifySvc, connector, cfg.MaxUploadBytes),
		PlatformHandler: platforms.NewHandler(connector),
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		ClassifyHandler: app.ClassifyHandler,
		PlatformHandler: app.PlatformHandler,
	})

	return app, nil
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	if cfg.MockLLM() {
		log.Printf("bootstrap: using mock LLM client; classification returns sample responses")
		return llm.MockClient{}, nil
	}

	switch cfg.LLMProvider {
	case "openai":
		return openai.NewClient(cfg.OpenAIKey, cfg.LLMModel)
	default:
		return llm.PlaceholderClient{}, nil
	}
}
