package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// SysConfig system config
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
	NodeId   int64  `yaml:"node_id"`
}

// WebConfig admin api server config
type WebConfig struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	Secret string `yaml:"secret"`
}

// DBConfig database config
type DBConfig struct {
	Type     string `yaml:"type"` // postgres or sqlite
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
	Debug    bool   `yaml:"debug"`
}

// LogConfig logger config
type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

// CrmConfig business settings
type CrmConfig struct {
	LowStockThreshold int  `yaml:"low_stock_threshold"`
	SeedDemoProducts  bool `yaml:"seed_demo_products"`
	MaxBulkSize       int  `yaml:"max_bulk_size"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system"`
	Web      WebConfig `yaml:"web"`
	Database DBConfig  `yaml:"database"`
	Logger   LogConfig `yaml:"logger"`
	Crm      CrmConfig `yaml:"crm"`
}

func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

func (c *AppConfig) initDirs() {
	_ = os.MkdirAll(c.GetLogDir(), 0o755)
	_ = os.MkdirAll(c.GetDataDir(), 0o755)
}

// DefaultAppConfig returns the built-in configuration used when no file is given.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		System: SysConfig{
			Appid:    "ToughCRM",
			Location: "Asia/Shanghai",
			Workdir:  "/var/toughcrm",
			NodeId:   1,
		},
		Web: WebConfig{
			Host: "0.0.0.0",
			Port: 1816,
		},
		Database: DBConfig{
			Type:     "postgres",
			Host:     "127.0.0.1",
			Port:     5432,
			Name:     "toughcrm",
			User:     "postgres",
			Passwd:   "myroot",
			MaxConn:  100,
			IdleConn: 10,
		},
		Logger: LogConfig{
			Mode:       "development",
			FileEnable: false,
			Filename:   "/var/toughcrm/logs/toughcrm.log",
		},
		Crm: CrmConfig{
			LowStockThreshold: 5,
			SeedDemoProducts:  false,
			MaxBulkSize:       1000,
		},
	}
}

// LoadConfig reads cfile over the defaults and applies TOUGHCRM_* environment overrides.
// An empty or missing file yields the defaults.
func LoadConfig(cfile string) (*AppConfig, error) {
	cfg := DefaultAppConfig()
	if cfile != "" {
		data, err := os.ReadFile(cfile)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		case !os.IsNotExist(err):
			return nil, err
		}
	}
	applyEnv(cfg)
	return cfg, nil
}

// MustLoadConfig is LoadConfig that panics on a malformed file and creates the work dirs.
func MustLoadConfig(cfile string) *AppConfig {
	cfg, err := LoadConfig(cfile)
	if err != nil {
		panic(err)
	}
	cfg.initDirs()
	return cfg
}

func setEnvValue(name string, val *string) {
	if v := os.Getenv(name); v != "" {
		*val = v
	}
}

func setEnvBoolValue(name string, val *bool) {
	if v := os.Getenv(name); v != "" {
		*val = cast.ToBool(strings.TrimSpace(v))
	}
}

func setEnvIntValue(name string, val *int) {
	if v := os.Getenv(name); v != "" {
		if i, err := cast.ToIntE(strings.TrimSpace(v)); err == nil {
			*val = i
		}
	}
}

func setEnvInt64Value(name string, val *int64) {
	if v := os.Getenv(name); v != "" {
		if i, err := cast.ToInt64E(strings.TrimSpace(v)); err == nil {
			*val = i
		}
	}
}

func applyEnv(cfg *AppConfig) {
	setEnvValue("TOUGHCRM_SYSTEM_WORKER_DIR", &cfg.System.Workdir)
	setEnvValue("TOUGHCRM_SYSTEM_LOCATION", &cfg.System.Location)
	setEnvBoolValue("TOUGHCRM_SYSTEM_DEBUG", &cfg.System.Debug)
	setEnvInt64Value("TOUGHCRM_SYSTEM_NODE_ID", &cfg.System.NodeId)

	setEnvValue("TOUGHCRM_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("TOUGHCRM_WEB_PORT", &cfg.Web.Port)
	setEnvValue("TOUGHCRM_WEB_SECRET", &cfg.Web.Secret)

	setEnvValue("TOUGHCRM_DB_TYPE", &cfg.Database.Type)
	setEnvValue("TOUGHCRM_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("TOUGHCRM_DB_PORT", &cfg.Database.Port)
	setEnvValue("TOUGHCRM_DB_NAME", &cfg.Database.Name)
	setEnvValue("TOUGHCRM_DB_USER", &cfg.Database.User)
	setEnvValue("TOUGHCRM_DB_PWD", &cfg.Database.Passwd)
	setEnvIntValue("TOUGHCRM_DB_MAX_CONN", &cfg.Database.MaxConn)
	setEnvIntValue("TOUGHCRM_DB_IDLE_CONN", &cfg.Database.IdleConn)
	setEnvBoolValue("TOUGHCRM_DB_DEBUG", &cfg.Database.Debug)

	setEnvValue("TOUGHCRM_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("TOUGHCRM_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)
	setEnvValue("TOUGHCRM_LOGGER_FILENAME", &cfg.Logger.Filename)

	setEnvIntValue("TOUGHCRM_CRM_LOW_STOCK_THRESHOLD", &cfg.Crm.LowStockThreshold)
	setEnvBoolValue("TOUGHCRM_CRM_SEED_DEMO_PRODUCTS", &cfg.Crm.SeedDemoProducts)
	setEnvIntValue("TOUGHCRM_CRM_MAX_BULK_SIZE", &cfg.Crm.MaxBulkSize)
}
