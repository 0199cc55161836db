package main

import (
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"

	"github.com/a1j9o94/visual-audio-books/application/services"
	"github.com/a1j9o94/visual-audio-books/config"
	"github.com/a1j9o94/visual-audio-books/infrastructure/adapters"
	"github.com/a1j9o94/visual-audio-books/infrastructure/gin_interface/controllers"
	"github.com/a1j9o94/visual-audio-books/middleware"
)

func main() {
	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}))

	pipelineConfig, err := config.GetPipelineConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get pipeline config")
	}

	openLibraryConfig, err := config.GetOpenLibraryConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get open library config")
	}

	ttsConfig, err := config.GetOpenAiTtsConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get openai tts config")
	}

	anthropicConfig, err := config.GetAnthropicConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get anthropic config")
	}

	stabilityConfig, err := config.GetStabilityConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get stability config")
	}

	s3Config, err := config.GetS3Config()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get s3 config")
	}

	dynamoConfig, err := config.GetDynamoConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get dynamo config")
	}

	jwksUrl := os.Getenv("JWKS_URL")
	if jwksUrl == "" {
		log.Fatal().Msg("JWKS_URL is not set!")
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(120, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	s3Client := s3.New(sess)
	dynamoClient := dynamodb.New(sess)

	contentFetcher := adapters.NewContentFetcher(zeroLogger)

	bookFetcher := adapters.NewOpenLibraryBookFetcher(contentFetcher, openLibraryConfig, zeroLogger)
	speechSynthesizer := adapters.NewOpenAiSpeechSynthesizer(contentFetcher, ttsConfig)
	sceneExtractor := adapters.NewAnthropicSceneExtractor(zeroLogger, anthropicConfig)
	imageSynthesizer := adapters.NewStabilityImageSynthesizer(contentFetcher, stabilityConfig, zeroLogger)

	mediaStore := adapters.NewS3SegmentMediaStore(s3Client, s3Config)
	characterStore := adapters.NewDynamoCharacterStore(zeroLogger, dynamoClient, dynamoConfig)
	sessionLog := adapters.NewDynamoSessionLog(zeroLogger, dynamoClient, dynamoConfig)

	textSegmenter := services.NewTextSegmenter(zeroLogger)
	characterLedger := services.NewCharacterLedger(zeroLogger, characterStore)

	segmentEnricher := services.NewSegmentEnricher(zeroLogger, workerPool, speechSynthesizer,
		sceneExtractor, imageSynthesizer, mediaStore, characterLedger, sessionLog)

	sessionManager := services.NewBookSessionManager(zeroLogger, bookFetcher,
		textSegmenter, segmentEnricher, pipelineConfig.WordsPerSegment)

	visualNovelController := controllers.NewVisualNovelController(zeroLogger, sessionManager)

	router := gin.Default()

	err = router.SetTrustedProxies(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	authHandler, err := middleware.NewAuthHandler(jwksUrl)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth handler!")
	}

	router.Use(authHandler.AuthMiddleware())

	visualNovelController.RegisterRoutes(router)

	err = router.Run(":8080")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
