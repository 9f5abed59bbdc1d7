package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// loadPromptsFromFiles loads custom prompts from external files when file
// paths are specified. File content fills the matching inline prompt field so
// the rest of the application only ever reads the inline fields.
func (c *Config) loadPromptsFromFiles() error {
	log.Println("[CONFIG] Starting custom prompt loading from files")

	promptSets := []struct {
		scope   string
		prompts *PromptConfig
	}{
		{"global", &c.AI.CustomPrompts},
		{"parse", &c.AI.Parse.CustomPrompts},
		{"forge", &c.AI.Forge.CustomPrompts},
	}

	loaded := 0
	for _, set := range promptSets {
		n, err := loadPromptSet(set.scope, set.prompts)
		if err != nil {
			return fmt.Errorf("failed to load %s prompts: %w", set.scope, err)
		}
		loaded += n
	}

	if loaded == 0 {
		log.Println("[CONFIG] No custom prompts loaded - using built-in defaults")
	} else {
		log.Printf("[CONFIG] Total custom prompts loaded from files: %d", loaded)
	}

	return nil
}

// loadPromptSet resolves all file-backed prompts in one PromptConfig
func loadPromptSet(scope string, prompts *PromptConfig) (int, error) {
	entries := []struct {
		file       string
		target     *string
		promptType string
		operation  string
	}{
		{prompts.SystemPrompts.ParseCVFile, &prompts.SystemPrompts.ParseCV, "system", "parseCV"},
		{prompts.SystemPrompts.ForgeCVFile, &prompts.SystemPrompts.ForgeCV, "system", "forgeCV"},
		{prompts.UserPrompts.ParseCVFile, &prompts.UserPrompts.ParseCV, "user", "parseCV"},
		{prompts.UserPrompts.ForgeCVFile, &prompts.UserPrompts.ForgeCV, "user", "forgeCV"},
	}

	loaded := 0
	for _, entry := range entries {
		if entry.file == "" {
			continue
		}
		content, err := loadPromptFromFile(entry.file, entry.promptType, entry.operation)
		if err != nil {
			return loaded, err
		}
		*entry.target = content
		log.Printf("[CONFIG] Loaded %s %s %s prompt from file", scope, entry.promptType, entry.operation)
		loaded++
	}

	return loaded, nil
}

// loadPromptFromFile loads a prompt from a file with proper error handling
func loadPromptFromFile(filePath, promptType, operation string) (string, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s %s prompt file '%s': %w", promptType, operation, filePath, err)
	}

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%s %s prompt file not found: %s", promptType, operation, absPath)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s %s prompt file '%s': %w", promptType, operation, absPath, err)
	}

	trimmedContent := strings.TrimSpace(string(content))
	if trimmedContent == "" {
		return "", fmt.Errorf("%s %s prompt file '%s' is empty", promptType, operation, absPath)
	}

	log.Printf("[CONFIG] Successfully loaded %s %s prompt from file: %s (%d characters)",
		promptType, operation, absPath, len(trimmedContent))

	return trimmedContent, nil
}
