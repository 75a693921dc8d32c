package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/coolcalc/internal/cloud"
	"github.com/ANIKETSHETTY47/coolcalc/internal/config"
	"github.com/ANIKETSHETTY47/coolcalc/internal/database"
	httpHandlers "github.com/ANIKETSHETTY47/coolcalc/internal/http"
	"github.com/ANIKETSHETTY47/coolcalc/internal/repository"
	"github.com/ANIKETSHETTY47/coolcalc/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	logger := config.Logger()
	ctx := context.Background()

	deps := service.Deps{Log: logger, UseCloud: config.UseCloudServices()}

	if config.DatabaseDSN() == "" {
		logger.Warn().Msg("DB_DSN is empty; form state and history are kept in memory")
		mem := repository.NewMemory()
		deps.Forms, deps.History = mem, mem
	} else {
		db, err := database.Connect()
		if err != nil {
			log.Fatal().Err(err).Msg("db connect failed")
		}
		defer db.Close()
		repos := repository.New(db)
		deps.Forms, deps.History = repos, repos
	}

	if deps.UseCloud {
		s3c, err := cloud.NewS3Client(ctx, config.AWSRegion(), config.S3Bucket(), config.ReportURLTTL())
		if err != nil {
			log.Fatal().Err(err).Msg("s3 client failed")
		}
		deps.Uploader = s3c

		ddb, err := cloud.NewDynamoDBClient(ctx, config.AWSRegion(), config.DynamoDBTable())
		if err != nil {
			log.Fatal().Err(err).Msg("dynamodb client failed")
		}
		deps.History = ddb

		if arn := config.SNSTopicArn(); arn != "" {
			snsc, err := cloud.NewSNSClient(ctx, config.AWSRegion(), arn, logger)
			if err != nil {
				log.Fatal().Err(err).Msg("sns client failed")
			}
			deps.Notifier = snsc
		}
		logger.Info().Str("bucket", config.S3Bucket()).Str("table", config.DynamoDBTable()).Msg("cloud services enabled")
	}

	svcs := service.New(deps)
	app := fiber.New()
	httpHandlers.Register(app, svcs)

	addr := config.APIAddr()
	logger.Info().Str("addr", addr).Msg("api listening")
	log.Fatal().Err(app.Listen(addr)).Msg("server exit")
}
