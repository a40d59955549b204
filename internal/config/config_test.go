package config

import "testing"

func validConfig() *Config {
	return &Config{
		Port:        50051,
		MetricsPort: 9100,
		Model:       "model.xml",
		OutputNames: []string{"output"},
		OutputDims:  [][]int64{{1000}},
	}
}

func TestValidateOK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Expected valid config, got: %v", err)
	}
}

func TestValidatePortRange(t *testing.T) {
	cfg := validConfig()
	cfg.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for port 0")
	}

	cfg = validConfig()
	cfg.MetricsPort = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for out-of-range metrics port")
	}
}

func TestValidatePortCollision(t *testing.T) {
	cfg := validConfig()
	cfg.MetricsPort = cfg.Port
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error when port equals metrics_port")
	}
}

func TestValidateModelRequired(t *testing.T) {
	cfg := validConfig()
	cfg.Model = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for empty model path")
	}

	// The mock engine needs neither model nor output dims.
	cfg.UseMockEngine = true
	cfg.OutputDims = nil
	if err := cfg.Validate(); err != nil {
		t.Errorf("Mock engine config should validate, got: %v", err)
	}
}

func TestValidateOutputDimsRequired(t *testing.T) {
	cfg := validConfig()
	cfg.OutputDims = nil
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for missing output dims")
	}
}

func TestValidateMultiOutputDims(t *testing.T) {
	cfg := validConfig()
	cfg.OutputNames = []string{"logits", "boxes"}
	cfg.OutputDims = [][]int64{{1000}, {4, 2}}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Multi-output config should validate, got: %v", err)
	}

	// One dims entry per output name.
	cfg.OutputDims = [][]int64{{1000}}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for output_dims/output_names count mismatch")
	}
}

func TestValidateBatchSize(t *testing.T) {
	cfg := validConfig()
	cfg.BatchSize = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for negative batch size")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 50051 {
		t.Errorf("Expected default port 50051, got %d", cfg.Port)
	}
	if cfg.Model != "model.xml" {
		t.Errorf("Expected default model model.xml, got %s", cfg.Model)
	}
	if cfg.BatchSize != 0 {
		t.Errorf("Expected default batch size 0 (read from IR), got %d", cfg.BatchSize)
	}
	if cfg.OTELEnabled {
		t.Error("OTEL should be disabled by default")
	}
}

func TestLoadHonorsStandardOTELEnv(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.OTELEnabled {
		t.Error("Expected OTEL_EXPORTER_OTLP_ENDPOINT to enable tracing")
	}
	if cfg.OTELEndpoint != "collector:4317" {
		t.Errorf("Expected endpoint collector:4317, got %s", cfg.OTELEndpoint)
	}
}
