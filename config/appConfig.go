package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"catalogsync_api/config/values"
)

type MarketplaceConfig interface {
}

type SupplierConfig struct {
	BaseURL string `yaml:"base_url"`
	SiteURL string `yaml:"site_url"`
	Token   string `yaml:"token"`
}

type StorefrontConfig struct {
	Domain      string `yaml:"domain"`
	AccessToken string `yaml:"access_token"`
	ApiVersion  string `yaml:"api_version"`
}

// CategoryMappingEntry is the yaml fallback for the sync.category_mappings
// table, used when the table is still empty.
type CategoryMappingEntry struct {
	SupplierCategoryID int    `yaml:"supplier_category_id"`
	CollectionID       string `yaml:"collection_id"`
	BusinessName       string `yaml:"business_name"`
}

type AppConfig struct {
	Supplier         SupplierConfig         `yaml:"supplier"`
	Storefront       StorefrontConfig       `yaml:"storefront"`
	Postgres         PostgresConfig         `yaml:"postgres"`
	Sync             values.SyncValues      `yaml:"sync"`
	CategoryMappings []CategoryMappingEntry `yaml:"category_mappings"`
}

func LoadConfig(filename string) (*AppConfig, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	config := &AppConfig{}
	if err := decoder.Decode(config); err != nil {
		return nil, err
	}
	config.applyEnv()
	config.Sync = config.Sync.Merge()
	return config, nil
}

// applyEnv lets secrets come from the environment instead of the yaml file.
func (c *AppConfig) applyEnv() {
	c.Supplier.Token = getEnv("SUPPLIER_TOKEN", c.Supplier.Token)
	c.Storefront.AccessToken = getEnv("STOREFRONT_ACCESS_TOKEN", c.Storefront.AccessToken)
	c.Storefront.Domain = getEnv("STOREFRONT_DOMAIN", c.Storefront.Domain)
	if c.Postgres.Host == "" {
		c.Postgres = *GetPostgresConfig()
	}
}
