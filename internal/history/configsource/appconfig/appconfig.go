// Package appconfig resolves the storage target from AWS AppConfig via the
// appconfigdata API.
package appconfig

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/appconfigdata"

	"chronicle/internal/history"
	"chronicle/internal/history/configsource"
)

// API is the slice of the appconfigdata client the provider uses.
type API interface {
	StartConfigurationSession(ctx context.Context, in *appconfigdata.StartConfigurationSessionInput, opts ...func(*appconfigdata.Options)) (*appconfigdata.StartConfigurationSessionOutput, error)
	GetLatestConfiguration(ctx context.Context, in *appconfigdata.GetLatestConfigurationInput, opts ...func(*appconfigdata.Options)) (*appconfigdata.GetLatestConfigurationOutput, error)
}

// Identifiers name the AppConfig application, environment, and profile the
// provider reads from.
type Identifiers struct {
	Application string
	Environment string
	Profile     string
}

// Provider fetches the configuration blob from AppConfig on every lookup.
// A fresh session per lookup keeps the provider stateless; the first
// GetLatestConfiguration of a session always returns the full blob.
type Provider struct {
	api API
	ids Identifiers
}

// New constructs an AppConfig-backed provider.
func New(api API, ids Identifiers) *Provider {
	return &Provider{api: api, ids: ids}
}

// StorageTarget implements ports.ConfigProvider.
func (p *Provider) StorageTarget(ctx context.Context) (string, error) {
	session, err := p.api.StartConfigurationSession(ctx, &appconfigdata.StartConfigurationSessionInput{
		ApplicationIdentifier:          aws.String(p.ids.Application),
		EnvironmentIdentifier:          aws.String(p.ids.Environment),
		ConfigurationProfileIdentifier: aws.String(p.ids.Profile),
	})
	if err != nil {
		return "", history.WrapValidation("start configuration session", err)
	}

	out, err := p.api.GetLatestConfiguration(ctx, &appconfigdata.GetLatestConfigurationInput{
		ConfigurationToken: session.InitialConfigurationToken,
	})
	if err != nil {
		return "", history.WrapValidation("retrieve configuration", err)
	}

	return configsource.ParseTarget(out.Configuration)
}
