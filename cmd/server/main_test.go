package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"finmov/docs"
	"finmov/internal/config"
)

func TestConfigureSwagger(t *testing.T) {
	original := docs.SwaggerInfo.Host
	t.Cleanup(func() { docs.SwaggerInfo.Host = original })

	t.Run("configured host overrides the default", func(t *testing.T) {
		configureSwagger(&config.Config{SwaggerHost: "api.example.com"})
		assert.Equal(t, "api.example.com", docs.SwaggerInfo.Host)
	})

	t.Run("empty host keeps the current value", func(t *testing.T) {
		docs.SwaggerInfo.Host = original
		configureSwagger(&config.Config{})
		assert.Equal(t, original, docs.SwaggerInfo.Host)
	})
}
