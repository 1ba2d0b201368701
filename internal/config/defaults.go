package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Shop.Name == "" {
		cfg.Shop.Name = "YOUR_SHOP_NAME"
	}
	if cfg.Shop.APIVersion == "" {
		cfg.Shop.APIVersion = "2024-07"
	}
	if cfg.Shop.Protocol == "" {
		cfg.Shop.Protocol = ProtocolStorefront
	}
	if cfg.Shop.StorefrontToken == "" {
		cfg.Shop.StorefrontToken = "YOUR_SHOPIFY_ACCESS_TOKEN"
	}
	if cfg.Shop.StoreURL == "" {
		cfg.Shop.StoreURL = "https://zincsforboats.com"
	}
	if cfg.Shop.PageSize == 0 {
		cfg.Shop.PageSize = 10
	}
	if cfg.Advice.BaseURL == "" {
		cfg.Advice.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Advice.Model == "" {
		cfg.Advice.Model = "gpt-3.5-turbo"
	}
	if cfg.Advice.MaxTokens == 0 {
		cfg.Advice.MaxTokens = 150
	}
	if cfg.Reply.DefaultPerPage == 0 {
		cfg.Reply.DefaultPerPage = 10
	}
}
