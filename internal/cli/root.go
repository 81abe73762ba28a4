package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/multisell/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time
var Version = "v0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "multisell",
	Short: "Multisell - Steam Community Market bulk-listing links for CS2 containers",
	Long: `Multisell builds Steam Community Market "multi-sell" links for CS2
containers (weapon cases and sticker capsules).

It can read a public inventory to find the containers an account owns, or
work from a manual list of names. It never logs in, never lists anything on
your behalf and never stores what you picked: the link opens the market's
own bulk-listing page where you confirm prices yourself.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "multisell %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.multisell/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	setDefaults(model.DefaultConfig())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.multisell")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// MULTISELL_HTTP_TIMEOUT maps to http.timeout
	viper.SetEnvPrefix("MULTISELL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every key so environment variables reach Unmarshal
func setDefaults(d *model.Config) {
	viper.SetDefault("http.timeout", d.HTTP.Timeout)
	viper.SetDefault("http.user_agent", d.HTTP.UserAgent)
	viper.SetDefault("http.max_body_bytes", d.HTTP.MaxBodyBytes)
	viper.SetDefault("http.insecure_tls", d.HTTP.InsecureTLS)
	viper.SetDefault("http.http_proxy", d.HTTP.HTTPProxy)
	viper.SetDefault("http.https_proxy", d.HTTP.HTTPSProxy)
	viper.SetDefault("http.no_proxy", d.HTTP.NoProxy)

	viper.SetDefault("steam.community_url", d.Steam.CommunityURL)
	viper.SetDefault("steam.app_id", d.Steam.AppID)
	viper.SetDefault("steam.context_id", d.Steam.ContextID)
	viper.SetDefault("steam.language", d.Steam.Language)
	viper.SetDefault("steam.count", d.Steam.Count)

	viper.SetDefault("server.addr", d.Server.Addr)
	viper.SetDefault("server.allowed_origins", d.Server.AllowedOrigins)
	viper.SetDefault("server.max_link_units", d.Server.MaxLinkUnits)
	viper.SetDefault("server.max_body_bytes", d.Server.MaxBodyBytes)

	viper.SetDefault("resolver.alias_cache_ttl", d.Resolver.AliasCacheTTL)

	viper.SetDefault("rate_limiting.requests_per_second", d.RateLimiting.RequestsPerSecond)
	viper.SetDefault("rate_limiting.burst_size", d.RateLimiting.BurstSize)
	viper.SetDefault("rate_limiting.respect_robots", d.RateLimiting.RespectRobots)

	viper.SetDefault("concurrency.workers", d.Concurrency.Workers)

	viper.SetDefault("output.verbose", d.Output.Verbose)
}

// loadConfig merges defaults, config file and environment. Command flags are
// applied on top by each command.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	return cfg, nil
}

// logf prints progress to stderr when verbose output is on
func logf(cfg *model.Config, format string, args ...interface{}) {
	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
