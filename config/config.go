package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported Cardano networks.
const (
	Mainnet = "mainnet"
	Preprod = "preprod"
	Preview = "preview"
)

type config struct {
	// Debug indicates if in debug mode.
	Debug bool

	// Label is used as prefix in log output, e.g., mainnet, preprod.
	Label string

	// Network selects which entry of APIs is used.
	Network string

	// ProjectID is the Blockfrost project key sent with every request.
	ProjectID string `mapstructure:"projectid"`

	// APIs maps network name to the Blockfrost base url.
	APIs map[string]string `mapstructure:"apis"`

	// IPFSGateway is the base url content-addressed image links are rewritten to.
	IPFSGateway string `mapstructure:"ipfsgateway"`

	// Timeout of a single metadata request, in seconds.
	Timeout int

	// RetryDelay before the single metadata retry, in milliseconds.
	RetryDelay int `mapstructure:"retrydelay"`

	// CacheSize is the number of resolved asset metadata kept in memory.
	CacheSize int `mapstructure:"cachesize"`

	// Decimals used when converting quantity text to base units.
	Decimals int32

	MaxConnsPerHost int `mapstructure:"maxconnsperhost"`
}

var cfg config

func init() {
	setDefaults()
}

// Load reads config file and validates it.
func Load(display bool) {
	viper.SetConfigName("config")
	viper.AddConfigPath("./config")
	// Incase test cases require loading configs
	viper.AddConfigPath("../config")

	if err := load(display); err != nil {
		panic(err)
	}

	trimURLs()

	if err := validateConfig(); err != nil {
		panic(err)
	}
}

/* ------------------------------
        `Get` functions
------------------------------ */

// DebugMode tells if running in debug mode.
func DebugMode() bool {
	return cfg.Debug
}

// GetLabel returns custome label as part of the log output prefix.
func GetLabel() string {
	return cfg.Label
}

// GetNetwork returns the selected network name.
func GetNetwork() string {
	return cfg.Network
}

// GetProjectID returns the Blockfrost project id.
func GetProjectID() string {
	return cfg.ProjectID
}

// GetAPI returns the Blockfrost base url of the selected network.
func GetAPI() string {
	return cfg.APIs[cfg.Network]
}

// GetIPFSGateway returns the gateway base url for ipfs links.
func GetIPFSGateway() string {
	return cfg.IPFSGateway
}

// GetTimeout returns the metadata request timeout.
func GetTimeout() time.Duration {
	return time.Duration(cfg.Timeout) * time.Second
}

// GetRetryDelay returns the delay before retrying a failed metadata request.
func GetRetryDelay() time.Duration {
	return time.Duration(cfg.RetryDelay) * time.Millisecond
}

// GetCacheSize returns the metadata cache capacity.
func GetCacheSize() int {
	return cfg.CacheSize
}

// GetDecimals returns the decimal places used for quantity conversion.
func GetDecimals() int32 {
	return cfg.Decimals
}

// GetMaxConnsPerHost returns the http connection limit per host.
func GetMaxConnsPerHost() int {
	return cfg.MaxConnsPerHost
}

/* ------------------------------
         Utility Functions
------------------------------ */

func setDefaults() {
	viper.SetDefault("debug", false)
	viper.SetDefault("network", Mainnet)
	viper.SetDefault("apis", map[string]string{
		Mainnet: "https://cardano-mainnet.blockfrost.io/api/v0",
		Preprod: "https://cardano-preprod.blockfrost.io/api/v0",
		Preview: "https://cardano-preview.blockfrost.io/api/v0",
	})
	viper.SetDefault("ipfsgateway", "https://ipfs.blockfrost.dev/ipfs")
	viper.SetDefault("timeout", 10)
	viper.SetDefault("retrydelay", 500)
	viper.SetDefault("cachesize", 256)
	viper.SetDefault("decimals", 0)
	viper.SetDefault("maxconnsperhost", 20)

	_ = viper.BindEnv("projectid", "BLOCKFROST_PROJECT_ID")
}

func load(display bool) error {
	err := viper.ReadInConfig()
	if err != nil {
		// Defaults and environment are enough to run.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return err
	}

	if display {
		projectID := cfg.ProjectID
		if len(projectID) != 0 {
			cfg.ProjectID = "******"
		}

		configContent, err := json.MarshalIndent(cfg, "", "    ")
		if err != nil {
			panic(err)
		}

		log.Println(string(configContent))
		cfg.ProjectID = projectID
	}

	return nil
}

func trimURLs() {
	for network, api := range cfg.APIs {
		cfg.APIs[network] = strings.TrimRight(api, "/")
	}

	cfg.IPFSGateway = strings.TrimRight(cfg.IPFSGateway, "/")
}

func validateConfig() error {
	if _, ok := cfg.APIs[cfg.Network]; !ok {
		return fmt.Errorf("no api url configured for network %q", cfg.Network)
	}

	for _, u := range []string{GetAPI(), cfg.IPFSGateway} {
		if err := checkHTTPURL(u); err != nil {
			return err
		}
	}

	if cfg.Decimals != 0 {
		return errors.New("decimals other than 0 are not supported")
	}

	if cfg.Timeout <= 0 {
		return errors.New("timeout must be great than 0")
	}

	if cfg.CacheSize <= 0 {
		return errors.New("cachesize must be great than 0")
	}

	return nil
}

func checkHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url %q must use http or https", raw)
	}

	if u.Host == "" {
		return fmt.Errorf("url %q has no host", raw)
	}

	return nil
}
