package config

// applyOperationDefaults applies global defaults to operation-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.MaxRetries == nil {
		opCfg.MaxRetries = &c.AI.MaxRetries
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
	if opCfg.UseSystemPrompts == nil {
		opCfg.UseSystemPrompts = &c.AI.UseSystemPrompts
	}
}

// GetParseConfig returns the AI configuration for parse operations with
// fallback to global config
func (c *Config) GetParseConfig() OperationAIConfig {
	config := c.AI.Parse

	c.applyOperationDefaults(&config)

	if config.CustomPrompts.SystemPrompts.ParseCV == "" {
		config.CustomPrompts.SystemPrompts.ParseCV = c.AI.CustomPrompts.SystemPrompts.ParseCV
	}
	if config.CustomPrompts.UserPrompts.ParseCV == "" {
		config.CustomPrompts.UserPrompts.ParseCV = c.AI.CustomPrompts.UserPrompts.ParseCV
	}
	if config.CustomPrompts.SystemPrompts.ParseCVFile == "" {
		config.CustomPrompts.SystemPrompts.ParseCVFile = c.AI.CustomPrompts.SystemPrompts.ParseCVFile
	}
	if config.CustomPrompts.UserPrompts.ParseCVFile == "" {
		config.CustomPrompts.UserPrompts.ParseCVFile = c.AI.CustomPrompts.UserPrompts.ParseCVFile
	}

	return config
}

// GetForgeConfig returns the AI configuration for forge operations with
// fallback to global config
func (c *Config) GetForgeConfig() OperationAIConfig {
	config := c.AI.Forge

	c.applyOperationDefaults(&config)

	if config.CustomPrompts.SystemPrompts.ForgeCV == "" {
		config.CustomPrompts.SystemPrompts.ForgeCV = c.AI.CustomPrompts.SystemPrompts.ForgeCV
	}
	if config.CustomPrompts.UserPrompts.ForgeCV == "" {
		config.CustomPrompts.UserPrompts.ForgeCV = c.AI.CustomPrompts.UserPrompts.ForgeCV
	}
	if config.CustomPrompts.SystemPrompts.ForgeCVFile == "" {
		config.CustomPrompts.SystemPrompts.ForgeCVFile = c.AI.CustomPrompts.SystemPrompts.ForgeCVFile
	}
	if config.CustomPrompts.UserPrompts.ForgeCVFile == "" {
		config.CustomPrompts.UserPrompts.ForgeCVFile = c.AI.CustomPrompts.UserPrompts.ForgeCVFile
	}

	return config
}
