package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/piodoi/pdf2pps/internal/adapters/secondary/config"
	"github.com/piodoi/pdf2pps/internal/domain/entities"
)

type MockConfigLoader struct {
	mock.Mock
}

func (m *MockConfigLoader) LoadGlobal(ctx context.Context) (*entities.Config, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Config), args.Error(1)
}

func (m *MockConfigLoader) LoadLocal(ctx context.Context, dir string) (*entities.Config, error) {
	args := m.Called(ctx, dir)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Config), args.Error(1)
}

func (m *MockConfigLoader) CreateDefaults(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *MockConfigLoader) GetGlobalPath() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockConfigLoader) GetLocalPath(dir string) string {
	args := m.Called(dir)
	return args.String(0)
}

func TestConfigService_LoadConfig(t *testing.T) {
	t.Run("defaults when no files exist", func(t *testing.T) {
		loader := new(MockConfigLoader)
		loader.On("LoadGlobal", mock.Anything).Return(nil, nil)
		loader.On("LoadLocal", mock.Anything, "/work").Return(nil, nil)

		service := NewConfigService(loader, config.NewConfigMerger())
		cfg, err := service.LoadConfig(context.Background(), "/work", nil)

		require.NoError(t, err)
		assert.Equal(t, entities.DefaultAPIBaseURL, cfg.API.BaseURL)
		assert.Equal(t, 3000, cfg.Server.Port)
	})

	t.Run("local overrides global", func(t *testing.T) {
		loader := new(MockConfigLoader)
		loader.On("LoadGlobal", mock.Anything).Return(&entities.Config{
			API: entities.APIConfig{BaseURL: "http://global:8000", Timeout: 60},
		}, nil)
		loader.On("LoadLocal", mock.Anything, "/work").Return(&entities.Config{
			API: entities.APIConfig{BaseURL: "http://local:8000"},
		}, nil)

		service := NewConfigService(loader, config.NewConfigMerger())
		cfg, err := service.LoadConfig(context.Background(), "/work", nil)

		require.NoError(t, err)
		assert.Equal(t, "http://local:8000", cfg.API.BaseURL)
		// The global timeout survives the local file's silence.
		assert.Equal(t, 60, cfg.API.Timeout)
	})

	t.Run("flags override files", func(t *testing.T) {
		loader := new(MockConfigLoader)
		loader.On("LoadGlobal", mock.Anything).Return(&entities.Config{
			API: entities.APIConfig{BaseURL: "http://global:8000"},
		}, nil)
		loader.On("LoadLocal", mock.Anything, "/work").Return(nil, nil)

		service := NewConfigService(loader, config.NewConfigMerger())
		cfg, err := service.LoadConfig(context.Background(), "/work", map[string]interface{}{
			"api-base": "http://flag:8000",
		})

		require.NoError(t, err)
		assert.Equal(t, "http://flag:8000", cfg.API.BaseURL)
	})

	t.Run("loader failure propagates", func(t *testing.T) {
		loader := new(MockConfigLoader)
		loader.On("LoadGlobal", mock.Anything).Return(nil, errors.New("disk error"))

		service := NewConfigService(loader, config.NewConfigMerger())
		_, err := service.LoadConfig(context.Background(), "/work", nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk error")
	})

	t.Run("merged result is validated", func(t *testing.T) {
		loader := new(MockConfigLoader)
		loader.On("LoadGlobal", mock.Anything).Return(&entities.Config{
			Server: entities.ServerConfig{Port: 70000},
		}, nil)
		loader.On("LoadLocal", mock.Anything, "/work").Return(nil, nil)

		service := NewConfigService(loader, config.NewConfigMerger())
		_, err := service.LoadConfig(context.Background(), "/work", nil)

		assert.Error(t, err)
	})
}
