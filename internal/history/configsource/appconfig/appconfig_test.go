package appconfig

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/appconfigdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chronicle/internal/history"
)

type fakeAPI struct {
	startIn  *appconfigdata.StartConfigurationSessionInput
	startErr error
	latestIn *appconfigdata.GetLatestConfigurationInput
	blob     []byte
	getErr   error
}

func (f *fakeAPI) StartConfigurationSession(_ context.Context, in *appconfigdata.StartConfigurationSessionInput, _ ...func(*appconfigdata.Options)) (*appconfigdata.StartConfigurationSessionOutput, error) {
	f.startIn = in
	if f.startErr != nil {
		return nil, f.startErr
	}
	return &appconfigdata.StartConfigurationSessionOutput{
		InitialConfigurationToken: aws.String("token-1"),
	}, nil
}

func (f *fakeAPI) GetLatestConfiguration(_ context.Context, in *appconfigdata.GetLatestConfigurationInput, _ ...func(*appconfigdata.Options)) (*appconfigdata.GetLatestConfigurationOutput, error) {
	f.latestIn = in
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &appconfigdata.GetLatestConfigurationOutput{Configuration: f.blob}, nil
}

var testIDs = Identifiers{
	Application: "ServiceHistoryApp",
	Environment: "Production",
	Profile:     "ServiceHistoryConfig",
}

func TestStorageTarget(t *testing.T) {
	api := &fakeAPI{blob: []byte(`{"logGroup":"service-history"}`)}
	provider := New(api, testIDs)

	target, err := provider.StorageTarget(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "service-history", target)

	assert.Equal(t, "ServiceHistoryApp", aws.ToString(api.startIn.ApplicationIdentifier))
	assert.Equal(t, "Production", aws.ToString(api.startIn.EnvironmentIdentifier))
	assert.Equal(t, "ServiceHistoryConfig", aws.ToString(api.startIn.ConfigurationProfileIdentifier))
	assert.Equal(t, "token-1", aws.ToString(api.latestIn.ConfigurationToken))
}

func TestStorageTargetSessionFailure(t *testing.T) {
	provider := New(&fakeAPI{startErr: assert.AnError}, testIDs)

	_, err := provider.StorageTarget(context.Background())
	require.Error(t, err)
	verr, ok := history.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Message, "start configuration session")
}

func TestStorageTargetFetchFailure(t *testing.T) {
	provider := New(&fakeAPI{getErr: assert.AnError}, testIDs)

	_, err := provider.StorageTarget(context.Background())
	require.Error(t, err)
	verr, ok := history.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Message, "retrieve configuration")
}

func TestStorageTargetBadBlob(t *testing.T) {
	provider := New(&fakeAPI{blob: []byte(`{}`)}, testIDs)

	_, err := provider.StorageTarget(context.Background())
	require.Error(t, err)
	_, ok := history.AsValidation(err)
	assert.True(t, ok)
}
