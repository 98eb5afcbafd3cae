// Package config carrega a configuração do projeto a partir do arquivo
// prisma.conf (TOML) e do .env, com expansão de variáveis de ambiente.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/carlosnayan/prisma-schema/internal/logger"
	"github.com/carlosnayan/prisma-schema/internal/schemaerr"
)

// Config representa a configuração completa do projeto
type Config struct {
	Schema     string            `toml:"schema"`              // Caminho para schema.prisma
	Migrations *MigrationsConfig `toml:"migrations"`          // Diretório de migrations
	Datasource *DatasourceConfig `toml:"datasource"`          // Configuração do banco de dados
	Generator  *GeneratorConfig  `toml:"generator,omitempty"` // Configuração do gerador (opcional, pode estar no schema)
	Log        []string          `toml:"log,omitempty"`       // Níveis de log: debug, info, warn, error
}

// MigrationsConfig aponta para o diretório de migrations do projeto
type MigrationsConfig struct {
	Path string `toml:"path"` // ex: "prisma/migrations"
	Seed string `toml:"seed,omitempty"`
}

// DatasourceConfig configura a fonte de dados
type DatasourceConfig struct {
	URL               string `toml:"url"` // URL do banco (pode usar env("DATABASE_URL") ou ${DATABASE_URL})
	ShadowDatabaseURL string `toml:"shadowDatabaseUrl,omitempty"`
}

// GeneratorConfig configura a geração de código
type GeneratorConfig struct {
	Provider        string   `toml:"provider"`
	Output          string   `toml:"output"`
	PreviewFeatures []string `toml:"previewFeatures,omitempty"`
}

// Load carrega a configuração do arquivo prisma.conf. Se configPath for
// vazio, procura prisma.conf subindo os diretórios a partir do atual.
// O arquivo .env, se existir, é carregado antes da expansão de variáveis.
func Load(configPath string) (*Config, error) {
	wd, _ := os.Getwd()
	_ = LoadDotEnv(wd)

	if configPath == "" {
		found, err := findConfig(wd)
		if err != nil {
			return nil, err
		}
		configPath = found
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler prisma.conf: %w", err)
	}

	var config Config
	if _, err := toml.Decode(string(data), &config); err != nil {
		return nil, fmt.Errorf("erro ao parsear prisma.conf: %w", err)
	}

	if err := config.expandEnvVars(); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuração inválida: %w", err)
	}

	return &config, nil
}

// findConfig procura prisma.conf subindo os diretórios até a raiz
func findConfig(fromDir string) (string, error) {
	dir := fromDir
	if dir == "" {
		dir = "."
	}

	for {
		configPath := filepath.Join(dir, "prisma.conf")
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", schemaerr.ErrConfigNotFound
		}
		dir = parent
	}
}

// expandEnvVars expande variáveis de ambiente nos campos que aceitam
// referências. A URL do datasource usa expansão estrita: variável não
// definida é erro P1011.
func (c *Config) expandEnvVars() error {
	if c.Datasource != nil {
		url, err := ExpandStrict(c.Datasource.URL)
		if err != nil {
			return err
		}
		c.Datasource.URL = url

		if c.Datasource.ShadowDatabaseURL != "" {
			shadow, err := ExpandStrict(c.Datasource.ShadowDatabaseURL)
			if err != nil {
				return err
			}
			c.Datasource.ShadowDatabaseURL = shadow
		}
	}

	if c.Generator != nil {
		c.Generator.Output = Expand(c.Generator.Output)
	}

	if c.Migrations != nil {
		c.Migrations.Seed = Expand(c.Migrations.Seed)
	}

	return nil
}

// Validate valida a configuração e aplica os valores padrão
func (c *Config) Validate() error {
	if c.Schema == "" {
		c.Schema = "prisma/schema.prisma" // Padrão
	}

	if c.Migrations == nil {
		c.Migrations = &MigrationsConfig{Path: "prisma/migrations"}
	} else if c.Migrations.Path == "" {
		c.Migrations.Path = "prisma/migrations"
	}

	if c.Datasource == nil {
		return fmt.Errorf("datasource é obrigatório")
	}

	if c.Datasource.URL == "" {
		return fmt.Errorf("datasource.url é obrigatório (use env(\"DATABASE_URL\") ou ${DATABASE_URL})")
	}

	return nil
}

// GetSchemaPath retorna o caminho do schema.prisma
func (c *Config) GetSchemaPath() string {
	if c.Schema != "" {
		return c.Schema
	}
	return "prisma/schema.prisma"
}

// ApplyLogLevels configura o logger padrão com os níveis do campo log
func (c *Config) ApplyLogLevels() {
	if len(c.Log) > 0 {
		logger.SetLogLevels(c.Log)
	}
}
