package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadPromptsFromFiles(t *testing.T) {
	tempDir := t.TempDir()

	systemPromptContent := "Test system prompt for parsing"
	userPromptContent := "Test user prompt template: %s"

	systemPromptFile := filepath.Join(tempDir, "system.parse.md")
	userPromptFile := filepath.Join(tempDir, "user.forge.md")

	if err := os.WriteFile(systemPromptFile, []byte(systemPromptContent), 0600); err != nil {
		t.Fatalf("Failed to create test system prompt file: %v", err)
	}
	if err := os.WriteFile(userPromptFile, []byte(userPromptContent), 0600); err != nil {
		t.Fatalf("Failed to create test user prompt file: %v", err)
	}

	config := &Config{
		AI: AIConfig{
			Parse: OperationAIConfig{
				CustomPrompts: PromptConfig{
					SystemPrompts: SystemPrompts{
						ParseCVFile: systemPromptFile,
					},
				},
			},
			Forge: OperationAIConfig{
				CustomPrompts: PromptConfig{
					UserPrompts: UserPrompts{
						ForgeCVFile: userPromptFile,
					},
				},
			},
		},
	}

	if err := config.loadPromptsFromFiles(); err != nil {
		t.Fatalf("Failed to load prompts from files: %v", err)
	}

	if config.AI.Parse.CustomPrompts.SystemPrompts.ParseCV != systemPromptContent {
		t.Errorf("Expected loaded system prompt content '%s', got '%s'",
			systemPromptContent, config.AI.Parse.CustomPrompts.SystemPrompts.ParseCV)
	}
	if config.AI.Forge.CustomPrompts.UserPrompts.ForgeCV != userPromptContent {
		t.Errorf("Expected loaded user prompt content '%s', got '%s'",
			userPromptContent, config.AI.Forge.CustomPrompts.UserPrompts.ForgeCV)
	}

	// File paths are preserved after loading
	if config.AI.Parse.CustomPrompts.SystemPrompts.ParseCVFile != systemPromptFile {
		t.Error("Expected system prompt file path to be preserved")
	}
}

func TestLoadPromptFromFileErrors(t *testing.T) {
	tempDir := t.TempDir()

	emptyFile := filepath.Join(tempDir, "empty.md")
	if err := os.WriteFile(emptyFile, []byte("   \n"), 0600); err != nil {
		t.Fatalf("Failed to create empty test file: %v", err)
	}

	tests := []struct {
		name string
		file string
	}{
		{"non-existent file", filepath.Join(tempDir, "nonexistent.md")},
		{"empty file", emptyFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadPromptFromFile(tt.file, "system", "parseCV"); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestGetParseConfigFallbacks(t *testing.T) {
	globalTimeout := 45 * time.Second

	config := &Config{
		AI: AIConfig{
			Provider:         "gemini",
			Model:            "gemini-2.5-flash",
			Timeout:          globalTimeout,
			APIKey:           "global-key",
			MaxRetries:       3,
			Temperature:      0.2,
			UseSystemPrompts: true,
			CustomPrompts: PromptConfig{
				SystemPrompts: SystemPrompts{ParseCV: "global parse system prompt"},
			},
			Parse: OperationAIConfig{
				Model: "gemini-2.5-pro",
			},
		},
	}

	parseConfig := config.GetParseConfig()

	if parseConfig.Model != "gemini-2.5-pro" {
		t.Errorf("Expected operation model to win, got %s", parseConfig.Model)
	}
	if parseConfig.Provider != "gemini" {
		t.Errorf("Expected provider fallback to global, got %s", parseConfig.Provider)
	}
	if parseConfig.APIKey != "global-key" {
		t.Errorf("Expected API key fallback to global, got %s", parseConfig.APIKey)
	}
	if parseConfig.Timeout == nil || *parseConfig.Timeout != globalTimeout {
		t.Error("Expected timeout fallback to global")
	}
	if parseConfig.MaxRetries == nil || *parseConfig.MaxRetries != 3 {
		t.Error("Expected max retries fallback to global")
	}
	if parseConfig.CustomPrompts.SystemPrompts.ParseCV != "global parse system prompt" {
		t.Error("Expected parse system prompt fallback to global")
	}
}

func TestGetForgeConfigOperationOverrides(t *testing.T) {
	opTimeout := 90 * time.Second
	opTemp := float32(0.4)

	config := &Config{
		AI: AIConfig{
			Provider:    "gemini",
			Model:       "gemini-2.5-flash",
			Timeout:     30 * time.Second,
			APIKey:      "global-key",
			Temperature: 0.0,
			Forge: OperationAIConfig{
				Timeout:     &opTimeout,
				Temperature: &opTemp,
				CustomPrompts: PromptConfig{
					UserPrompts: UserPrompts{ForgeCV: "custom forge prompt"},
				},
			},
		},
	}

	forgeConfig := config.GetForgeConfig()

	if *forgeConfig.Timeout != opTimeout {
		t.Errorf("Expected operation timeout %v, got %v", opTimeout, *forgeConfig.Timeout)
	}
	if *forgeConfig.Temperature != opTemp {
		t.Errorf("Expected operation temperature %v, got %v", opTemp, *forgeConfig.Temperature)
	}
	if forgeConfig.CustomPrompts.UserPrompts.ForgeCV != "custom forge prompt" {
		t.Error("Expected operation forge prompt to win over global")
	}
}

func TestValidateTLSConfig(t *testing.T) {
	tests := []struct {
		name        string
		tls         TLSConfig
		expectError bool
	}{
		{
			name:        "disabled mode",
			tls:         TLSConfig{Mode: "disabled"},
			expectError: false,
		},
		{
			name:        "empty mode treated as disabled",
			tls:         TLSConfig{},
			expectError: false,
		},
		{
			name:        "server mode with cert and key",
			tls:         TLSConfig{Mode: "server", CertFile: "cert.pem", KeyFile: "key.pem"},
			expectError: false,
		},
		{
			name:        "server mode missing key",
			tls:         TLSConfig{Mode: "server", CertFile: "cert.pem"},
			expectError: true,
		},
		{
			name:        "invalid mode",
			tls:         TLSConfig{Mode: "mutual"},
			expectError: true,
		},
		{
			name:        "invalid min version",
			tls:         TLSConfig{Mode: "server", CertFile: "cert.pem", KeyFile: "key.pem", MinVersion: "1.0"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{Server: ServerConfig{TLS: tt.tls}}
			err := config.ValidateTLSConfig()
			if tt.expectError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestLoadMatrixFromFile(t *testing.T) {
	tempDir := t.TempDir()
	t.Cleanup(func() { setArchetypeMatrix(DefaultArchetypeMatrix) })

	matrixFile := filepath.Join(tempDir, "matrix.txt")
	customMatrix := "Custom Industry:\nDNA: Testing. Archetype: \"Tester.\"\n"
	if err := os.WriteFile(matrixFile, []byte(customMatrix), 0600); err != nil {
		t.Fatalf("Failed to create matrix file: %v", err)
	}

	config := &Config{}
	config.AI.Matrix.File = matrixFile

	if err := config.loadMatrix(); err != nil {
		t.Fatalf("Failed to load matrix: %v", err)
	}
	if ArchetypeMatrix() != customMatrix {
		t.Error("Expected custom matrix to be active")
	}

	// Missing file is an error
	config.AI.Matrix.File = filepath.Join(tempDir, "missing.txt")
	if err := config.loadMatrix(); err == nil {
		t.Error("Expected error for missing matrix file")
	}

	// Unset file restores the built-in default
	config.AI.Matrix.File = ""
	if err := config.loadMatrix(); err != nil {
		t.Fatalf("Failed to load default matrix: %v", err)
	}
	if ArchetypeMatrix() != DefaultArchetypeMatrix {
		t.Error("Expected built-in default matrix to be active")
	}
}

func TestDefaultMatrixContent(t *testing.T) {
	archetypes := []string{
		"Mini-CEO", "Founder-Builder", "Pioneer", "Intellectual Killer",
		"Rigorous Thinker", "Grinder", "Intellectual Athlete", "Corporate Surgeon",
	}
	for _, archetype := range archetypes {
		if !strings.Contains(DefaultArchetypeMatrix, archetype) {
			t.Errorf("Expected default matrix to contain archetype %q", archetype)
		}
	}
}

func TestMatrixWatcherReload(t *testing.T) {
	tempDir := t.TempDir()
	t.Cleanup(func() { setArchetypeMatrix(DefaultArchetypeMatrix) })

	matrixFile := filepath.Join(tempDir, "matrix.txt")
	if err := os.WriteFile(matrixFile, []byte("initial matrix"), 0600); err != nil {
		t.Fatalf("Failed to create matrix file: %v", err)
	}
	setArchetypeMatrix("initial matrix")

	watcher, err := NewMatrixWatcher(matrixFile, 50*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	if err := watcher.Start(); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}
	defer func() {
		if err := watcher.Stop(); err != nil {
			t.Errorf("Failed to stop watcher: %v", err)
		}
	}()

	if !watcher.IsRunning() {
		t.Fatal("Expected watcher to be running")
	}

	// Filesystem mtime granularity can be coarse
	time.Sleep(1100 * time.Millisecond)
	if err := os.WriteFile(matrixFile, []byte("updated matrix"), 0600); err != nil {
		t.Fatalf("Failed to update matrix file: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if ArchetypeMatrix() == "updated matrix" {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Error("Expected matrix to be reloaded after file change")
}

func TestApplyFallbacksAPIKeys(t *testing.T) {
	t.Setenv("TRADCV_SERVER_APIKEYS", "key-one, key-two")

	config := &Config{}
	config.Observability.ServiceName = "tradcv"
	config.applyFallbacks()

	if len(config.Server.APIKeys) != 2 {
		t.Fatalf("Expected 2 API keys, got %d", len(config.Server.APIKeys))
	}
	if config.Server.APIKeys[1] != "key-two" {
		t.Errorf("Expected trimmed key 'key-two', got %q", config.Server.APIKeys[1])
	}
}
