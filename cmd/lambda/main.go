// Command lambda runs the history dispatcher as an AWS Lambda handler. The
// raw event is passed through undecoded because the dispatcher itself tells
// the gateway and resolver shapes apart.
package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/appconfigdata"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"

	"chronicle/internal/history/configsource/appconfig"
	"chronicle/internal/history/metrics"
	"chronicle/internal/history/service"
	"chronicle/internal/history/store/cloudwatch"
	"chronicle/internal/platform/config"
	"chronicle/internal/platform/logger"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Error("load aws config failed", "error", err)
		os.Exit(1)
	}

	store := cloudwatch.New(cloudwatchlogs.NewFromConfig(awsCfg))
	provider := appconfig.New(appconfigdata.NewFromConfig(awsCfg), appconfig.Identifiers{
		Application: cfg.AppConfig.Application,
		Environment: cfg.AppConfig.Environment,
		Profile:     cfg.AppConfig.Profile,
	})

	svc, err := service.New(provider, store,
		service.WithLogger(log),
		service.WithMetrics(metrics.New()),
		service.WithPollInterval(cfg.PollInterval),
		service.WithSearchTimeout(cfg.SearchTimeout),
	)
	if err != nil {
		log.Error("service setup failed", "error", err)
		os.Exit(1)
	}

	lambda.Start(func(ctx context.Context, raw json.RawMessage) (events.APIGatewayProxyResponse, error) {
		return svc.Handle(ctx, raw), nil
	})
}
