package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/techsolutions/storefront/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"REDIS_URL":            "redis://localhost:6379/0",
		"PORT":                 "",
		"APP_ENV":              "",
		"CATALOG_DIR":          "",
		"CATALOG_CACHE_TTL":    "",
		"CART_TTL":             "",
		"CHECKOUT_DELAY":       "",
		"SHIPPING_FLAT_FEE":    "",
		"CORS_ALLOWED_ORIGINS": "",
	})
	require.NoError(t, err)
	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, "data", cfg.CatalogDir)
	require.Equal(t, int64(5000), cfg.ShippingFlatFee)
	require.Equal(t, "2s", cfg.CheckoutDelay.String())
	require.Empty(t, cfg.CORSAllowedOrigins)
}

func TestLoadRequiresRedis(t *testing.T) {
	_, err := config.LoadForTests(map[string]string{"REDIS_URL": ""})
	require.Error(t, err)
}

func TestLoadParsesOrigins(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"REDIS_URL":            "redis://localhost:6379/0",
		"CORS_ALLOWED_ORIGINS": " https://shop.example , https://admin.example ,",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"https://shop.example", "https://admin.example"}, cfg.CORSAllowedOrigins)
}
