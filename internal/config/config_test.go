package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_FromEnvironmentVariables(t *testing.T) {
	// Set up environment variables
	os.Setenv("DB_HOST", "testhost")
	os.Setenv("DB_PORT", "5433")
	os.Setenv("DB_USER", "testuser")
	os.Setenv("DB_PASSWORD", "testpass")
	os.Setenv("DB_NAME", "testdb")
	os.Setenv("API_PORT", "9090")
	os.Setenv("ACTIVITY_API_URL", "https://activity.test.com")
	os.Setenv("ACTIVITY_API_TOKEN", "test_token")
	os.Setenv("WORKER_POLL_INTERVAL", "10s")
	os.Setenv("DEFAULT_PAGE_SIZE", "50")
	os.Setenv("ENABLE_AUTH", "true")
	os.Setenv("SHARED_SECRET", "test_secret")

	defer func() {
		os.Unsetenv("DB_HOST")
		os.Unsetenv("DB_PORT")
		os.Unsetenv("DB_USER")
		os.Unsetenv("DB_PASSWORD")
		os.Unsetenv("DB_NAME")
		os.Unsetenv("API_PORT")
		os.Unsetenv("ACTIVITY_API_URL")
		os.Unsetenv("ACTIVITY_API_TOKEN")
		os.Unsetenv("WORKER_POLL_INTERVAL")
		os.Unsetenv("DEFAULT_PAGE_SIZE")
		os.Unsetenv("ENABLE_AUTH")
		os.Unsetenv("SHARED_SECRET")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Verify database config
	if cfg.Database.Host != "testhost" {
		t.Errorf("Expected DB host testhost, got %s", cfg.Database.Host)
	}
	if cfg.Database.DBName != "testdb" {
		t.Errorf("Expected DB name testdb, got %s", cfg.Database.DBName)
	}

	// Verify API config
	if cfg.API.Port != "9090" {
		t.Errorf("Expected API port 9090, got %s", cfg.API.Port)
	}

	// Verify Activity API config
	if cfg.ActivityAPI.URL != "https://activity.test.com" {
		t.Errorf("Expected Activity API URL, got %s", cfg.ActivityAPI.URL)
	}
	if cfg.ActivityAPI.Token != "test_token" {
		t.Errorf("Expected Activity API token, got %s", cfg.ActivityAPI.Token)
	}

	// Verify worker config
	if cfg.Worker.PollInterval != 10*time.Second {
		t.Errorf("Expected poll interval 10s, got %v", cfg.Worker.PollInterval)
	}

	// Verify pagination config
	if cfg.Pagination.DefaultPageSize != 50 {
		t.Errorf("Expected default page size 50, got %d", cfg.Pagination.DefaultPageSize)
	}

	// Verify auth config
	if !cfg.Auth.Enabled {
		t.Error("Expected auth to be enabled")
	}
	if cfg.Auth.SharedSecret != "test_secret" {
		t.Errorf("Expected shared secret test_secret, got %s", cfg.Auth.SharedSecret)
	}
}

func TestLoad_Defaults(t *testing.T) {
	// Make sure none of the relevant variables are set
	vars := []string{
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"API_PORT", "API_HOST", "ACTIVITY_API_URL", "ACTIVITY_API_TOKEN",
		"WORKER_POLL_INTERVAL", "DEFAULT_PAGE_SIZE", "ENABLE_AUTH", "SHARED_SECRET",
	}
	for _, v := range vars {
		os.Unsetenv(v)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Database.Host != "localhost" {
		t.Errorf("Expected default DB host localhost, got %s", cfg.Database.Host)
	}
	if cfg.Database.DBName != "sales_view" {
		t.Errorf("Expected default DB name sales_view, got %s", cfg.Database.DBName)
	}
	if cfg.API.Port != "8080" {
		t.Errorf("Expected default API port 8080, got %s", cfg.API.Port)
	}
	if cfg.Worker.PollInterval != 5*time.Second {
		t.Errorf("Expected default poll interval 5s, got %v", cfg.Worker.PollInterval)
	}
	if cfg.ActivityAPI.Timeout != 30*time.Second {
		t.Errorf("Expected default Activity API timeout 30s, got %v", cfg.ActivityAPI.Timeout)
	}
	if cfg.Pagination.DefaultPageSize != 20 {
		t.Errorf("Expected default page size 20, got %d", cfg.Pagination.DefaultPageSize)
	}
	if cfg.Auth.Enabled {
		t.Error("Expected auth to be disabled by default")
	}
}

func TestLoad_AuthRequiresSecret(t *testing.T) {
	os.Setenv("ENABLE_AUTH", "true")
	os.Unsetenv("SHARED_SECRET")
	defer os.Unsetenv("ENABLE_AUTH")

	_, err := Load()

	if err == nil {
		t.Fatal("Expected validation error when auth is enabled without a secret")
	}
}

func TestLoad_RejectsInvalidPageSize(t *testing.T) {
	os.Setenv("DEFAULT_PAGE_SIZE", "-3")
	defer os.Unsetenv("DEFAULT_PAGE_SIZE")

	_, err := Load()

	if err == nil {
		t.Fatal("Expected validation error for negative page size")
	}
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	os.Setenv("WORKER_POLL_INTERVAL", "not-a-duration")
	defer os.Unsetenv("WORKER_POLL_INTERVAL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Worker.PollInterval != 5*time.Second {
		t.Errorf("Expected fallback poll interval 5s, got %v", cfg.Worker.PollInterval)
	}
}
